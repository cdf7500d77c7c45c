package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainrepo "github.com/exchangedesk/fortworth1031/domains/contact/be/repo"
	platformlogging "github.com/exchangedesk/fortworth1031/platform/go/logging"
	"github.com/exchangedesk/fortworth1031/platform/go/notify"
	"github.com/exchangedesk/fortworth1031/platform/go/persistence"
	"github.com/exchangedesk/fortworth1031/platform/go/requesttrace"
)

// FieldErrors maps request fields to validation issues.
type FieldErrors map[string][]string

func (f FieldErrors) add(field, message string) {
	f[field] = append(f[field], message)
}

// ValidationError captures input validation problems surfaced by the service.
// Only the first failing field is reported.
type ValidationError struct {
	Fields FieldErrors
}

func (v *ValidationError) Error() string {
	return "validation error"
}

// Message returns the reported problem.
func (v *ValidationError) Message() string {
	for _, messages := range v.Fields {
		if len(messages) > 0 {
			return messages[0]
		}
	}
	return ""
}

// ErrSubmitFailed wraps storage failures during Submit.
var ErrSubmitFailed = errors.New("submit lead failed")

// SubmitFailedMessage is shown to visitors when a lead cannot be stored.
const SubmitFailedMessage = "We could not send that message. Please try again or call us."

// Input is a contact form submission.
type Input struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	PropertySold   string `json:"propertySold"`
	EstimatedClose string `json:"estimatedClose"`
	City           string `json:"city"`
	Message        string `json:"message"`
	CaptchaToken   string `json:"captchaToken"`
	ProjectType    string `json:"projectType"`
	Timezone       string `json:"timezone"`
}

// Service exposes the contact domain operations.
type Service interface {
	Prefill(projectType string) Input
	Submit(ctx context.Context, input Input) (persistence.Lead, error)
	List(ctx context.Context, params persistence.ListLeadsParams) ([]persistence.Lead, error)
}

type service struct {
	repo     domainrepo.Repository
	notifier notify.Notifier
	logger   *zap.Logger
	now      func() time.Time
	newID    func() uuid.UUID
}

// New builds a contact Service. notifier may be nil to disable notifications.
func New(repo domainrepo.Repository, notifier notify.Notifier, logger *zap.Logger) Service {
	if repo == nil {
		panic("lead repository is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	if notifier == nil {
		notifier = notify.Noop{Logger: logger}
	}
	return &service{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.New,
	}
}

// Prefill seeds the form from a ?projectType= link.
func (s *service) Prefill(projectType string) Input {
	projectType = strings.TrimSpace(projectType)
	if projectType == "" {
		return Input{}
	}
	return Input{ProjectType: projectType, Message: "Requested focus: " + projectType}
}

func (s *service) Submit(ctx context.Context, input Input) (persistence.Lead, error) {
	input = trimInput(input)
	if err := validate(input); err != nil {
		return persistence.Lead{}, err
	}

	lead, err := s.repo.Create(ctx, persistence.Lead{
		LeadID:         s.newID(),
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		PropertySold:   input.PropertySold,
		EstimatedClose: input.EstimatedClose,
		City:           input.City,
		Message:        input.Message,
		ProjectType:    input.ProjectType,
		Timezone:       input.Timezone,
		CreatedAt:      s.now().UTC(),
	})
	if err != nil {
		return persistence.Lead{}, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	visit := requesttrace.FromContextOrSystem(ctx)
	logger := s.loggerFrom(ctx)
	logger.Info("lead captured",
		zap.String("lead_id", lead.LeadID.String()),
		zap.String("source", string(visit.Source)),
		zap.String("remote_ip", visit.RemoteIP),
		zap.String("referrer", visit.Referrer),
	)

	if err := s.notifier.NotifyLead(ctx, lead); err != nil {
		logger.Warn("lead notification failed",
			zap.String("lead_id", lead.LeadID.String()),
			zap.Error(err),
		)
	}
	return lead, nil
}

func (s *service) List(ctx context.Context, params persistence.ListLeadsParams) ([]persistence.Lead, error) {
	return s.repo.List(ctx, params)
}

func (s *service) loggerFrom(ctx context.Context) *zap.Logger {
	if logger, ok := platformlogging.FromContext(ctx); ok {
		return logger
	}
	return s.logger
}

func trimInput(in Input) Input {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.PropertySold = strings.TrimSpace(in.PropertySold)
	in.EstimatedClose = strings.TrimSpace(in.EstimatedClose)
	in.City = strings.TrimSpace(in.City)
	in.Message = strings.TrimSpace(in.Message)
	in.CaptchaToken = strings.TrimSpace(in.CaptchaToken)
	in.ProjectType = strings.TrimSpace(in.ProjectType)
	in.Timezone = strings.TrimSpace(in.Timezone)
	return in
}

type rule struct {
	field   string
	message string
	failed  func(Input) bool
}

var rules = []rule{
	{"name", "Please add your name.", func(in Input) bool { return in.Name == "" }},
	{"email", "Please add a valid email.", func(in Input) bool { return !validEmail(in.Email) }},
	{"phone", "Please add a phone number.", func(in Input) bool { return in.Phone == "" }},
	{"propertySold", "Tell us what property you sold.", func(in Input) bool { return in.PropertySold == "" }},
	{"estimatedClose", "Add your target closing date.", func(in Input) bool { return in.EstimatedClose == "" }},
	{"city", "Share the city you are investing from.", func(in Input) bool { return in.City == "" }},
	{"message", "Add a brief message.", func(in Input) bool { return in.Message == "" }},
	{"captchaToken", "Please complete the CAPTCHA challenge.", func(in Input) bool { return in.CaptchaToken == "" }},
}

func validate(in Input) error {
	for _, r := range rules {
		if r.failed(in) {
			fields := FieldErrors{}
			fields.add(r.field, r.message)
			return &ValidationError{Fields: fields}
		}
	}
	return nil
}

// validEmail accepts a bare address only, not "Name <addr>".
func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
