package catalog

// InventoryCategory is a browsable group of replacement property types.
type InventoryCategory struct {
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	Route     string `json:"route"`
	Note      string `json:"note,omitempty"`
	HeroImage string `json:"heroImage,omitempty"`
}

// PropertyType is a single kind of replacement property.
type PropertyType struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Route string `json:"route"`
}

// Tool is an interactive calculator or checklist.
type Tool struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Route       string `json:"route"`
	Description string `json:"description"`
}

// InventoryRoute is the page of an inventory category or property type.
func InventoryRoute(slug string) string { return "/inventory/" + slug }

// ToolRoute is the page of a tool.
func ToolRoute(slug string) string { return "/tools/" + slug }

var inventoryCategories = []InventoryCategory{
	{
		Slug:      "nnn",
		Name:      "NNN Properties",
		Note:      "Triple net lease properties with tenant responsibility for taxes, insurance, and maintenance",
		HeroImage: "/property-types/1031-exchange-nnn-tx.jpg",
	},
	{
		Slug:      "retail",
		Name:      "Retail Properties",
		Note:      "Single tenant retail properties suitable for 1031 exchange",
		HeroImage: "/property-types/1031-exchange-retail-tx.jpg",
	},
	{
		Slug:      "industrial",
		Name:      "Industrial Properties",
		Note:      "Industrial and logistics properties for exchange",
		HeroImage: "/property-types/1031-exchange-industrial-tx.jpg",
	},
	{
		Slug:      "medical",
		Name:      "Medical Properties",
		Note:      "Medical office buildings and clinics",
		HeroImage: "/property-types/1031-exchange-medical-tx.jpg",
	},
	{
		Slug:      "auto",
		Name:      "Auto Related Properties",
		Note:      "Auto parts, service, and tire stores",
		HeroImage: "/property-types/1031-exchange-auto-tx.jpg",
	},
	{
		Slug:      "food-service",
		Name:      "Food Service Properties",
		Note:      "Quick service restaurants and drive thru properties",
		HeroImage: "/property-types/1031-exchange-food-service-tx.jpg",
	},
}

var propertyTypes = []PropertyType{
	{Slug: "pharmacy", Name: "Pharmacy"},
	{Slug: "convenience-store-gas", Name: "Convenience Store and Gas"},
	{Slug: "drive-thru-qsr", Name: "Drive-Thru QSR"},
	{Slug: "dollar-store", Name: "Dollar Store"},
	{Slug: "coffee-drive-thru", Name: "Coffee Drive-Thru"},
	{Slug: "auto-parts-retail", Name: "Auto Parts Retail"},
	{Slug: "telecom-wireless-retail", Name: "Telecom and Wireless Retail"},
	{Slug: "last-mile-logistics-flex", Name: "Last-Mile Logistics and Flex"},
	{Slug: "urgent-care-medical-clinic", Name: "Urgent Care and Medical Clinic"},
	{Slug: "dialysis-center", Name: "Dialysis Center"},
	{Slug: "veterinary-clinic", Name: "Veterinary Clinic"},
	{Slug: "auto-service-oil-change", Name: "Auto Service and Oil Change"},
	{Slug: "tire-store", Name: "Tire Store"},
	{Slug: "tractor-supply-farm-ranch", Name: "Tractor Supply and Farm and Ranch"},
	{Slug: "casual-dining-drive-thru-pickup", Name: "Casual Dining with Drive-Thru Pickup"},
}

var categoryPropertyTypes = map[string][]string{
	"nnn":          {"pharmacy", "convenience-store-gas", "drive-thru-qsr"},
	"retail":       {"dollar-store", "coffee-drive-thru", "auto-parts-retail", "telecom-wireless-retail"},
	"industrial":   {"last-mile-logistics-flex"},
	"medical":      {"urgent-care-medical-clinic", "dialysis-center", "veterinary-clinic"},
	"auto":         {"auto-parts-retail", "auto-service-oil-change", "tire-store", "tractor-supply-farm-ranch"},
	"food-service": {"drive-thru-qsr", "coffee-drive-thru", "casual-dining-drive-thru-pickup"},
}

var tools = []Tool{
	{
		Slug:        "boot-calculator",
		Name:        "Boot Calculator",
		Description: "Estimate cash and mortgage boot when the replacement property costs less than the relinquished property.",
	},
	{
		Slug:        "identification-rules-checker",
		Name:        "Identification Rules Checker",
		Description: "Check a replacement property list against the three-property, 200 percent and 95 percent identification rules.",
	},
	{
		Slug:        "deadline-calculator",
		Name:        "Deadline Calculator",
		Description: "Find the 45-day identification and 180-day closing deadlines from your sale date.",
	},
	{
		Slug:        "identification-letter-helper",
		Name:        "Identification Letter Helper",
		Description: "Draft the written identification of replacement properties for your qualified intermediary.",
	},
	{
		Slug:        "timeline-tracker",
		Name:        "Timeline Tracker",
		Description: "Track every milestone of an exchange from listing the relinquished property to closing on the replacement.",
	},
}

func init() {
	for i := range inventoryCategories {
		inventoryCategories[i].Route = InventoryRoute(inventoryCategories[i].Slug)
	}
	for i := range propertyTypes {
		propertyTypes[i].Route = InventoryRoute(propertyTypes[i].Slug)
	}
	for i := range tools {
		tools[i].Route = ToolRoute(tools[i].Slug)
	}
}

// InventoryCategories returns the fixed category list in display order.
func InventoryCategories() []InventoryCategory {
	return append([]InventoryCategory(nil), inventoryCategories...)
}

// PropertyTypes returns the fixed property type list in display order.
func PropertyTypes() []PropertyType {
	return append([]PropertyType(nil), propertyTypes...)
}

// CategoryPropertyTypes returns the property type slugs listed under a category.
func CategoryPropertyTypes(category string) []string {
	return append([]string(nil), categoryPropertyTypes[category]...)
}

// Tools returns the tool registry in display order.
func Tools() []Tool {
	return append([]Tool(nil), tools...)
}
