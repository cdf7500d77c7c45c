package service

import (
	"fmt"
	"strings"
	"time"
)

const (
	identificationPeriodDays = 45
	exchangePeriodDays       = 180
	threePropertyLimit       = 3
)

// Deadlines are the two statutory dates that follow the relinquished property sale.
type Deadlines struct {
	SaleDate               time.Time
	IdentificationDeadline time.Time
	ExchangeDeadline       time.Time
}

// Deadlines counts calendar days from the sale date. Weekends and holidays do not extend either period.
func (s *service) Deadlines(saleDate time.Time) Deadlines {
	sale := dateOf(saleDate)
	return Deadlines{
		SaleDate:               sale,
		IdentificationDeadline: sale.AddDate(0, 0, identificationPeriodDays),
		ExchangeDeadline:       sale.AddDate(0, 0, exchangePeriodDays),
	}
}

// Phase names where an exchange stands on a given day.
type Phase string

const (
	PhaseBeforeSale     Phase = "before-sale"
	PhaseIdentification Phase = "identification"
	PhaseAcquisition    Phase = "acquisition"
	PhaseClosed         Phase = "closed"
)

// Timeline is the state of an exchange as of Today.
type Timeline struct {
	Deadlines
	Today                time.Time
	Phase                Phase
	DaysElapsed          int
	DaysToIdentification int
	DaysToExchange       int
}

func (s *service) Timeline(saleDate time.Time) Timeline {
	deadlines := s.Deadlines(saleDate)
	today := dateOf(s.now())

	t := Timeline{
		Deadlines:            deadlines,
		Today:                today,
		DaysElapsed:          max(daysBetween(deadlines.SaleDate, today), 0),
		DaysToIdentification: max(daysBetween(today, deadlines.IdentificationDeadline), 0),
		DaysToExchange:       max(daysBetween(today, deadlines.ExchangeDeadline), 0),
	}
	switch {
	case today.Before(deadlines.SaleDate):
		t.Phase = PhaseBeforeSale
	case !today.After(deadlines.IdentificationDeadline):
		t.Phase = PhaseIdentification
	case !today.After(deadlines.ExchangeDeadline):
		t.Phase = PhaseAcquisition
	default:
		t.Phase = PhaseClosed
	}
	return t
}

// Rule identifies which identification rule a property list satisfies.
type Rule string

const (
	RuleThreeProperty     Rule = "three-property"
	RuleTwoHundredPercent Rule = "200-percent"
	RuleNinetyFivePercent Rule = "95-percent"
)

const (
	twoHundredPercentRatio     = 2
	ninetyFivePercentNumerator = 95
)

// IdentificationCheck evaluates a list of identified replacement properties.
type IdentificationCheck struct {
	Relinquished       Money
	Count              int
	Total              Money
	ThreeProperty      bool
	TwoHundredPercent  bool
	TwoHundredLimit    Money
	Rule               Rule
	MinimumAcquisition Money
}

// CheckIdentification applies the three-property rule, then the 200% rule. A list that
// meets neither falls back to the 95% rule, which requires acquiring at least 95% of the
// identified value.
func (s *service) CheckIdentification(relinquished Money, identified []Money) (IdentificationCheck, error) {
	fields := FieldErrors{}
	if relinquished <= 0 {
		fields.Add("relinquished", "Enter the relinquished property sale price.")
	}
	if len(identified) == 0 {
		fields.Add("values", "List at least one identified property value.")
	}
	for _, v := range identified {
		if v <= 0 {
			fields.Add("values", "Identified property values must be greater than zero.")
			break
		}
	}
	if len(fields) > 0 {
		return IdentificationCheck{}, &ValidationError{Fields: fields}
	}

	check := IdentificationCheck{
		Relinquished:    relinquished,
		Count:           len(identified),
		TwoHundredLimit: relinquished * twoHundredPercentRatio,
	}
	for _, v := range identified {
		check.Total += v
	}
	check.ThreeProperty = check.Count <= threePropertyLimit
	check.TwoHundredPercent = check.Total <= check.TwoHundredLimit

	switch {
	case check.ThreeProperty:
		check.Rule = RuleThreeProperty
	case check.TwoHundredPercent:
		check.Rule = RuleTwoHundredPercent
	default:
		check.Rule = RuleNinetyFivePercent
		// Round up so the minimum never falls below 95%.
		check.MinimumAcquisition = (check.Total*ninetyFivePercentNumerator + 99) / 100
	}
	return check, nil
}

// BootInput describes both sides of an exchange.
type BootInput struct {
	RelinquishedPrice Money
	RelinquishedDebt  Money
	ReplacementPrice  Money
	ReplacementDebt   Money
}

// BootResult splits taxable boot into cash and mortgage components.
type BootResult struct {
	EquityOut     Money
	EquityIn      Money
	CashBoot      Money
	MortgageBoot  Money
	TotalBoot     Money
	FullyDeferred bool
}

// Boot treats equity the exchanger does not reinvest as cash boot. Debt relief is mortgage
// boot, reduced by any extra cash the exchanger adds on the replacement side.
func (s *service) Boot(in BootInput) (BootResult, error) {
	fields := FieldErrors{}
	if in.RelinquishedPrice <= 0 {
		fields.Add("relinquishedPrice", "Enter the relinquished property sale price.")
	}
	if in.ReplacementPrice <= 0 {
		fields.Add("replacementPrice", "Enter the replacement property purchase price.")
	}
	if in.RelinquishedDebt > in.RelinquishedPrice {
		fields.Add("relinquishedDebt", "Debt paid off cannot exceed the sale price.")
	}
	if in.ReplacementDebt > in.ReplacementPrice {
		fields.Add("replacementDebt", "New debt cannot exceed the purchase price.")
	}
	if len(fields) > 0 {
		return BootResult{}, &ValidationError{Fields: fields}
	}

	res := BootResult{
		EquityOut: in.RelinquishedPrice - in.RelinquishedDebt,
		EquityIn:  in.ReplacementPrice - in.ReplacementDebt,
	}
	res.CashBoot = max(res.EquityOut-res.EquityIn, 0)
	addedCash := max(res.EquityIn-res.EquityOut, 0)
	res.MortgageBoot = max(in.RelinquishedDebt-in.ReplacementDebt-addedCash, 0)
	res.TotalBoot = res.CashBoot + res.MortgageBoot
	res.FullyDeferred = res.TotalBoot == 0
	return res, nil
}

// LetterInput holds what an identification notice to the intermediary needs.
type LetterInput struct {
	Taxpayer            string
	Intermediary        string
	RelinquishedAddress string
	SaleDate            time.Time
	Properties          []string
}

// Letter is a drafted identification notice.
type Letter struct {
	Body     string
	Deadline time.Time
	Warning  string
}

// IdentificationLetter drafts the written notice that must reach the intermediary by the
// identification deadline.
func (s *service) IdentificationLetter(in LetterInput) (Letter, error) {
	in.Taxpayer = strings.TrimSpace(in.Taxpayer)
	in.Intermediary = strings.TrimSpace(in.Intermediary)
	in.RelinquishedAddress = strings.TrimSpace(in.RelinquishedAddress)

	var properties []string
	for _, p := range in.Properties {
		if p = strings.TrimSpace(p); p != "" {
			properties = append(properties, p)
		}
	}

	fields := FieldErrors{}
	if in.Taxpayer == "" {
		fields.Add("taxpayer", "Enter the taxpayer name.")
	}
	if in.Intermediary == "" {
		fields.Add("intermediary", "Enter the qualified intermediary.")
	}
	if in.RelinquishedAddress == "" {
		fields.Add("relinquished", "Enter the relinquished property address.")
	}
	if in.SaleDate.IsZero() {
		fields.Add("saleDate", "Enter the sale closing date.")
	}
	if len(properties) == 0 {
		fields.Add("properties", "List at least one replacement property.")
	}
	if len(fields) > 0 {
		return Letter{}, &ValidationError{Fields: fields}
	}

	deadlines := s.Deadlines(in.SaleDate)

	var b strings.Builder
	fmt.Fprintf(&b, "To: %s\n\n", in.Intermediary)
	fmt.Fprintf(&b, "Re: Identification of replacement property for the exchange of %s, transferred on %s.\n\n",
		in.RelinquishedAddress, deadlines.SaleDate.Format("January 2, 2006"))
	b.WriteString("Pursuant to Section 1031 of the Internal Revenue Code, I identify the following replacement property:\n\n")
	for i, p := range properties {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	fmt.Fprintf(&b, "\nThis identification is delivered on or before %s.\n\n",
		deadlines.IdentificationDeadline.Format("January 2, 2006"))
	fmt.Fprintf(&b, "Signed,\n%s\n", in.Taxpayer)

	letter := Letter{Body: b.String(), Deadline: deadlines.IdentificationDeadline}
	if len(properties) > threePropertyLimit {
		letter.Warning = "More than three properties are listed, so the 200% rule or the 95% rule must be met."
	}
	return letter, nil
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(dateOf(to).Sub(dateOf(from)).Hours() / 24)
}
