// Package contact backs the public contact page.
package contact

import (
	"context"
	"regexp"
	"strings"

	"github.com/honeycarbs/silver-talent/internal/domain"
	"github.com/honeycarbs/silver-talent/internal/listing"
	"github.com/honeycarbs/silver-talent/pkg/logging"
	"github.com/honeycarbs/silver-talent/pkg/silvertalent"
)

// Unavailable replaces every contact field the backend could not supply
const Unavailable = "N/A"

const infoFallback = "Failed to load contact information. Please try again later."

// InfoSource loads the contact block
type InfoSource interface {
	GetContactInfo(ctx context.Context) (domain.ContactInfo, error)
}

var _ InfoSource = (*silvertalent.Client)(nil)

// Info is the contact block as displayed. Message is set when the load failed.
type Info struct {
	domain.ContactInfo
	Message string
}

// HasMap reports whether a map embed can be shown
func (i Info) HasMap() bool {
	u := strings.TrimSpace(i.LocationMapURL)
	return u != "" && u != Unavailable
}

// Load fetches the contact block. It never fails: on error the text fields
// read N/A and Message carries the reason.
func Load(ctx context.Context, src InfoSource, logger *logging.Logger) Info {
	info, err := src.GetContactInfo(ctx)
	if err != nil {
		logging.OrNop(logger).Component("contact").Warn("contact info unavailable", "err", err)
		return Info{
			ContactInfo: domain.ContactInfo{
				Address: Unavailable,
				Phone:   Unavailable,
				Email:   Unavailable,
			},
			Message: listing.MessageOf(err, infoFallback),
		}
	}
	return Info{ContactInfo: info}
}

// Country is a dial code offered by the enquiry form
type Country struct {
	Code string
	Name string
}

// Countries lists the selectable dial codes, default first
var Countries = []Country{
	{Code: "+91", Name: "India"},
	{Code: "+1", Name: "USA"},
	{Code: "+44", Name: "UK"},
	{Code: "+61", Name: "Australia"},
	{Code: "+81", Name: "Japan"},
	{Code: "+49", Name: "Germany"},
	{Code: "+33", Name: "France"},
	{Code: "+86", Name: "China"},
}

var (
	enquiryEmailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern        = regexp.MustCompile(`^\d{7,15}$`)
)

// Enquiry is the contact form
type Enquiry struct {
	Name    string
	Email   string
	Phone   string // local part, digits only
	Message string
}

// Validate reports every invalid field at once
func (e Enquiry) Validate() error {
	var errs listing.ValidationErrors
	if strings.TrimSpace(e.Name) == "" {
		errs = append(errs, listing.ValidationError{Field: "name", Reason: "Please enter your name."})
	}
	if !enquiryEmailPattern.MatchString(e.Email) {
		errs = append(errs, listing.ValidationError{Field: "email", Reason: "Please enter a valid email address."})
	}
	if !phonePattern.MatchString(strings.TrimSpace(e.Phone)) {
		errs = append(errs, listing.ValidationError{Field: "phone", Reason: "Please enter a valid phone number (7-15 digits)."})
	}
	if strings.TrimSpace(e.Message) == "" {
		errs = append(errs, listing.ValidationError{Field: "message", Reason: "Please enter a message."})
	}
	return errs.Err()
}

// Submission is a validated enquiry with its full phone number
type Submission struct {
	Enquiry
	CountryCode     string
	FullPhoneNumber string
}

// Submission validates e and attaches the dial code. An unknown country falls
// back to the default one.
func (e Enquiry) Submission(country Country) (Submission, error) {
	if err := e.Validate(); err != nil {
		return Submission{}, err
	}
	if country.Code == "" {
		country = Countries[0]
	}
	phone := strings.TrimSpace(e.Phone)
	return Submission{
		Enquiry:         e,
		CountryCode:     country.Code,
		FullPhoneNumber: country.Code + phone,
	}, nil
}

// LookupCountry finds a dial code by code or name
func LookupCountry(s string) (Country, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Countries {
		if c.Code == s || strings.EqualFold(c.Name, s) {
			return c, true
		}
	}
	return Country{}, false
}

// Submit records a valid enquiry. The site has no enquiry endpoint, so the
// submission is only logged.
func Submit(e Enquiry, country Country, logger *logging.Logger) (string, error) {
	sub, err := e.Submission(country)
	if err != nil {
		return "", err
	}
	logging.OrNop(logger).Component("contact").Info("enquiry received",
		"name", sub.Name,
		"email", sub.Email,
		"phone", sub.FullPhoneNumber,
	)
	return "Thank you for your message! We'll be in touch soon.", nil
}
