// Package site exposes the business details shared by every page.
package site

import (
	"io/fs"
	"strings"

	"github.com/exchangedesk/fortworth1031/content"
)

const (
	defaultCity    = "Fort Worth"
	defaultState   = "TX"
	defaultWebsite = "1031exchangefortworth.com"

	// DateLocale is the locale used when formatting dates for visitors.
	DateLocale = "en-US"
)

// FormInputIDs are the element ids of the contact form fields.
var FormInputIDs = map[string]string{
	"name":           "contact-name-input",
	"email":          "contact-email-input",
	"phone":          "contact-phone-input",
	"propertySold":   "contact-property-sold-input",
	"estimatedClose": "contact-estimated-close-input",
	"city":           "contact-city-input",
	"message":        "contact-message-input",
}

// Info is the decoded site.json.
type Info struct {
	Company     string `json:"company"`
	MainCity    string `json:"mainCity"`
	State       string `json:"state"`
	Website     string `json:"website"`
	Phone       string `json:"phone"`
	PhoneDigits string `json:"phoneDigits"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

// Load reads site.json from fsys.
func Load(fsys fs.FS) (Info, error) {
	var info Info
	if err := content.ReadJSON(fsys, content.SiteFile, &info); err != nil {
		return Info{}, err
	}
	return info, nil
}

// PrimaryCity falls back to Fort Worth.
func (i Info) PrimaryCity() string {
	if strings.TrimSpace(i.MainCity) == "" {
		return defaultCity
	}
	return i.MainCity
}

// StateAbbr falls back to TX.
func (i Info) StateAbbr() string {
	if strings.TrimSpace(i.State) == "" {
		return defaultState
	}
	return i.State
}

// SiteURL is the canonical https origin without a trailing slash.
func (i Info) SiteURL() string {
	host := strings.TrimSpace(i.Website)
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	host = strings.TrimRight(host, "/")
	if host == "" {
		host = defaultWebsite
	}
	return "https://" + host
}

// AbsoluteURL joins the site origin with a path.
func (i Info) AbsoluteURL(path string) string {
	if path == "" || path == "/" {
		return i.SiteURL()
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return i.SiteURL() + path
}
