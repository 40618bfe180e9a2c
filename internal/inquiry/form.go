package inquiry

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf16"

	"git.home.luguber.info/inful/sitegen/internal/config"
)

// Kind identifies which form was submitted.
type Kind string

const (
	KindPricing Kind = "pricing"
	KindContact Kind = "contact"
)

// ParseKind accepts "pricing" or "contact".
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindPricing, KindContact:
		return k, nil
	default:
		return "", fmt.Errorf("unknown inquiry kind %q", s)
	}
}

// SuccessMessage is returned for every accepted submission.
const SuccessMessage = "Thank you for your inquiry! We'll be in touch within 1-2 business days."

// Timeline options offered by the pricing form. An empty timeline is allowed.
var Timelines = []string{"immediate", "soon", "planning", "future"}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Catalog holds the choices the pricing form accepts.
type Catalog struct {
	ProgramTypes []string             `json:"programTypes"`
	Services     []config.ServiceItem `json:"services"`
	Timelines    []string             `json:"timelines"`
}

// CatalogFromConfig builds the catalog from the inquiry configuration.
func CatalogFromConfig(cfg config.InquiryConfig) Catalog {
	c := Catalog{ProgramTypes: cfg.ProgramTypes, Services: cfg.Services, Timelines: Timelines}
	if len(c.ProgramTypes) == 0 {
		c.ProgramTypes = config.DefaultProgramTypes()
	}
	if len(c.Services) == 0 {
		c.Services = config.DefaultServices()
	}
	return c
}

// ServiceLabel returns the display label of a service id.
func (c Catalog) ServiceLabel(id string) (string, bool) {
	for _, s := range c.Services {
		if s.ID == id {
			return s.Label, true
		}
	}
	return "", false
}

// FieldError is a validation message for one form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors lists field errors in form order.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "invalid inquiry: " + strings.Join(parts, "; ")
}

// Map returns the errors keyed by field name.
func (v ValidationErrors) Map() map[string]string {
	m := make(map[string]string, len(v))
	for _, fe := range v {
		m[fe.Field] = fe.Message
	}
	return m
}

// Form is a submitted inquiry form.
type Form interface {
	Kind() Kind
	// Validate trims the fields in place and checks them against c.
	Validate(c Catalog) error
	contact() party
}

// party is the part of a form that is stored and shown in notifications.
type party struct {
	Name         string
	Email        string
	Organization string
	Subject      string
}

// PricingForm is the custom quote request.
type PricingForm struct {
	OrganizationName string   `json:"organizationName"`
	ContactName      string   `json:"contactName"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone,omitempty"`
	ProgramType      string   `json:"programType"`
	Services         []string `json:"services"`
	Timeline         string   `json:"timeline,omitempty"`
	AdditionalInfo   string   `json:"additionalInfo,omitempty"`
}

func (*PricingForm) Kind() Kind { return KindPricing }

func (f *PricingForm) Validate(c Catalog) error {
	f.OrganizationName = strings.TrimSpace(f.OrganizationName)
	f.ContactName = strings.TrimSpace(f.ContactName)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Timeline = strings.TrimSpace(f.Timeline)
	f.AdditionalInfo = strings.TrimSpace(f.AdditionalInfo)

	var errs ValidationErrors
	add := func(field, msg string) { errs = append(errs, FieldError{Field: field, Message: msg}) }

	if msg := requiredMax(f.OrganizationName, 100, "Organization name"); msg != "" {
		add("organizationName", msg)
	}
	if msg := requiredMax(f.ContactName, 100, "Contact name"); msg != "" {
		add("contactName", msg)
	}
	if msg := checkEmail(f.Email); msg != "" {
		add("email", msg)
	}
	if tooLong(f.Phone, 20) {
		add("phone", "Phone number must be less than 20 characters")
	}
	switch {
	case f.ProgramType == "":
		add("programType", "Please select a program type")
	case !slices.Contains(c.ProgramTypes, f.ProgramType):
		add("programType", "Please select a valid program type")
	}
	switch {
	case len(f.Services) == 0:
		add("services", "Please select at least one service")
	default:
		for _, id := range f.Services {
			if _, ok := c.ServiceLabel(id); !ok {
				add("services", fmt.Sprintf("Unknown service %q", id))
				break
			}
		}
	}
	if f.Timeline != "" && !slices.Contains(c.Timelines, f.Timeline) {
		add("timeline", "Please select a valid timeline")
	}
	if tooLong(f.AdditionalInfo, 1000) {
		add("additionalInfo", "Additional information must be less than 1000 characters")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (f *PricingForm) contact() party {
	return party{
		Name:         f.ContactName,
		Email:        f.Email,
		Organization: f.OrganizationName,
		Subject:      "Pricing inquiry: " + f.ProgramType,
	}
}

// ContactForm is the general contact form.
type ContactForm struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Organization string `json:"organization,omitempty"`
	Subject      string `json:"subject,omitempty"`
	Message      string `json:"message"`
}

func (*ContactForm) Kind() Kind { return KindContact }

func (f *ContactForm) Validate(Catalog) error {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Organization = strings.TrimSpace(f.Organization)
	f.Subject = strings.TrimSpace(f.Subject)
	f.Message = strings.TrimSpace(f.Message)

	var errs ValidationErrors
	add := func(field, msg string) { errs = append(errs, FieldError{Field: field, Message: msg}) }

	if msg := requiredMax(f.Name, 100, "Name"); msg != "" {
		add("name", msg)
	}
	if msg := checkEmail(f.Email); msg != "" {
		add("email", msg)
	}
	if tooLong(f.Organization, 100) {
		add("organization", "Organization must be less than 100 characters")
	}
	if tooLong(f.Subject, 150) {
		add("subject", "Subject must be less than 150 characters")
	}
	if msg := requiredMax(f.Message, 2000, "Message"); msg != "" {
		add("message", msg)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (f *ContactForm) contact() party {
	subject := f.Subject
	if subject == "" {
		subject = "Contact form message"
	}
	return party{Name: f.Name, Email: f.Email, Organization: f.Organization, Subject: subject}
}

// NewForm returns an empty form of the given kind for decoding.
func NewForm(k Kind) (Form, error) {
	switch k {
	case KindPricing:
		return &PricingForm{}, nil
	case KindContact:
		return &ContactForm{}, nil
	default:
		return nil, fmt.Errorf("unknown inquiry kind %q", k)
	}
}

func requiredMax(v string, limit int, label string) string {
	if v == "" {
		return label + " is required"
	}
	if tooLong(v, limit) {
		return fmt.Sprintf("%s must be less than %d characters", label, limit)
	}
	return ""
}

func checkEmail(v string) string {
	if !emailPattern.MatchString(v) {
		return "Invalid email address"
	}
	if tooLong(v, 255) {
		return "Email must be less than 255 characters"
	}
	return ""
}

// tooLong measures v in UTF-16 code units, so characters outside the Basic
// Multilingual Plane count twice, matching the browser-side form limits.
func tooLong(v string, limit int) bool {
	n := 0
	for _, r := range v {
		n += utf16.RuneLen(r)
	}
	return n > limit
}
