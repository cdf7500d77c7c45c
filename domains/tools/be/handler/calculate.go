package handler

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/exchangedesk/fortworth1031/domains/tools/be/service"
)

const dateLayout = "2006-01-02"

// submitted reports whether the tool form carried any input.
func submitted(form url.Values) bool {
	for _, values := range form {
		for _, v := range values {
			if strings.TrimSpace(v) != "" {
				return true
			}
		}
	}
	return false
}

func (h *Handler) calculate(slug string, form url.Values) (any, error) {
	fields := service.FieldErrors{}

	switch slug {
	case service.DeadlineCalculator:
		sale := parseDate(form, "saleDate", fields)
		if len(fields) > 0 {
			return nil, &service.ValidationError{Fields: fields}
		}
		return h.svc.Deadlines(sale), nil

	case service.TimelineTracker:
		sale := parseDate(form, "saleDate", fields)
		if len(fields) > 0 {
			return nil, &service.ValidationError{Fields: fields}
		}
		return h.svc.Timeline(sale), nil

	case service.IdentificationRulesChecker:
		relinquished := parseMoney(form, "relinquished", fields, true)
		var identified []service.Money
		for _, line := range lines(form.Get("values")) {
			v, err := service.ParseMoney(line)
			if err != nil {
				fields.Add("values", fmt.Sprintf("%q is not a dollar amount.", line))
				continue
			}
			identified = append(identified, v)
		}
		if len(fields) > 0 {
			return nil, &service.ValidationError{Fields: fields}
		}
		return h.svc.CheckIdentification(relinquished, identified)

	case service.BootCalculator:
		in := service.BootInput{
			RelinquishedPrice: parseMoney(form, "relinquishedPrice", fields, true),
			RelinquishedDebt:  parseMoney(form, "relinquishedDebt", fields, false),
			ReplacementPrice:  parseMoney(form, "replacementPrice", fields, true),
			ReplacementDebt:   parseMoney(form, "replacementDebt", fields, false),
		}
		if len(fields) > 0 {
			return nil, &service.ValidationError{Fields: fields}
		}
		return h.svc.Boot(in)

	case service.IdentificationLetterHelper:
		in := service.LetterInput{
			Taxpayer:            form.Get("taxpayer"),
			Intermediary:        form.Get("intermediary"),
			RelinquishedAddress: form.Get("relinquished"),
			Properties:          lines(form.Get("properties")),
		}
		if strings.TrimSpace(form.Get("saleDate")) != "" {
			in.SaleDate = parseDate(form, "saleDate", fields)
		}
		if len(fields) > 0 {
			return nil, &service.ValidationError{Fields: fields}
		}
		return h.svc.IdentificationLetter(in)
	}
	return nil, fmt.Errorf("no calculator for tool %q", slug)
}

func parseDate(form url.Values, field string, fields service.FieldErrors) time.Time {
	raw := strings.TrimSpace(form.Get(field))
	if raw == "" {
		fields.Add(field, "Enter the sale closing date.")
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		fields.Add(field, "Enter the date as YYYY-MM-DD.")
		return time.Time{}
	}
	return t
}

// parseMoney treats a blank optional field as zero.
func parseMoney(form url.Values, field string, fields service.FieldErrors, required bool) service.Money {
	raw := strings.TrimSpace(form.Get(field))
	if raw == "" && !required {
		return 0
	}
	v, err := service.ParseMoney(raw)
	if err != nil {
		fields.Add(field, fmt.Sprintf("Enter a dollar amount for %s.", fieldLabels[field]))
		return 0
	}
	return v
}

var fieldLabels = map[string]string{
	"relinquished":      "the relinquished property",
	"relinquishedPrice": "the relinquished sale price",
	"relinquishedDebt":  "the debt paid off at sale",
	"replacementPrice":  "the replacement purchase price",
	"replacementDebt":   "the new debt on the replacement",
}

func lines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
