package service

import (
	"context"
	"errors"
	"maps"
	"slices"
	"time"

	"github.com/exchangedesk/fortworth1031/platform/go/catalog"
	"github.com/exchangedesk/fortworth1031/platform/go/slugs"
)

// ErrNotFound is returned for an unknown tool slug.
var ErrNotFound = errors.New("tool not found")

// Disclaimer is shown on every tool page.
const Disclaimer = "Not tax, legal, or investment advice. Results are estimates only. Consult a qualified intermediary and tax advisor before making decisions."

// Tool slugs with a calculator behind them.
const (
	BootCalculator             = "boot-calculator"
	IdentificationRulesChecker = "identification-rules-checker"
	DeadlineCalculator         = "deadline-calculator"
	IdentificationLetterHelper = "identification-letter-helper"
	TimelineTracker            = "timeline-tracker"
)

var calculators = map[string]struct{}{
	BootCalculator:             {},
	IdentificationRulesChecker: {},
	DeadlineCalculator:         {},
	IdentificationLetterHelper: {},
	TimelineTracker:            {},
}

// FieldErrors maps an input name to its problems.
type FieldErrors map[string][]string

// Add records a problem for field.
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// ValidationError reports calculator inputs that cannot produce a result.
type ValidationError struct {
	Fields FieldErrors
}

func (v *ValidationError) Error() string {
	return "validation error"
}

// Messages returns every reported problem ordered by field name.
func (v *ValidationError) Messages() []string {
	var out []string
	for _, field := range slices.Sorted(maps.Keys(v.Fields)) {
		out = append(out, v.Fields[field]...)
	}
	return out
}

// Service exposes the tool registry and the calculators behind each tool.
type Service interface {
	List(ctx context.Context) ([]catalog.Tool, error)
	Get(ctx context.Context, slug string) (catalog.Tool, error)

	Deadlines(saleDate time.Time) Deadlines
	Timeline(saleDate time.Time) Timeline
	CheckIdentification(relinquished Money, identified []Money) (IdentificationCheck, error)
	Boot(in BootInput) (BootResult, error)
	IdentificationLetter(in LetterInput) (Letter, error)
}

type service struct {
	now func() time.Time
}

func New() Service {
	return &service{now: time.Now}
}

func (s *service) List(ctx context.Context) ([]catalog.Tool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return catalog.Tools(), nil
}

// Get returns a registered tool. Tools without a calculator are not found.
func (s *service) Get(ctx context.Context, slug string) (catalog.Tool, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Tool{}, err
	}
	if !slugs.Valid(slug) {
		return catalog.Tool{}, ErrNotFound
	}
	if _, ok := calculators[slug]; !ok {
		return catalog.Tool{}, ErrNotFound
	}
	for _, tool := range catalog.Tools() {
		if tool.Slug == slug {
			return tool, nil
		}
	}
	return catalog.Tool{}, ErrNotFound
}
