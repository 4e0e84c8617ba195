package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/silver-talent/internal/contact"
	"github.com/honeycarbs/silver-talent/internal/listing"
	"github.com/honeycarbs/silver-talent/internal/vacancies"
)

// ContactBackend is the part of the REST client the contact tools use
type ContactBackend interface {
	contact.InfoSource
	vacancies.Subscriber
}

// SubscribeParams defines the arguments for the subscribe tool
type SubscribeParams struct {
	Email string `json:"email,omitempty" jsonschema:"Address that receives new job alerts"`
}

// EnquiryParams defines the arguments for the contact_enquiry tool
type EnquiryParams struct {
	Name    string `json:"name,omitempty" jsonschema:"Sender name"`
	Email   string `json:"email,omitempty" jsonschema:"Sender email"`
	Country string `json:"country,omitempty" jsonschema:"Dial code or country name, default +91"`
	Phone   string `json:"phone,omitempty" jsonschema:"Local phone number, 7 to 15 digits"`
	Message string `json:"message,omitempty" jsonschema:"Enquiry text"`
}

type contactTools struct {
	reg     *registry
	backend ContactBackend
}

// WithContact registers contact_info, contact_enquiry and subscribe
func WithContact(backend ContactBackend) Option {
	return func(reg *registry) {
		t := contactTools{reg: reg, backend: backend}

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "contact_info",
			Description: "Get the agency address, phone, email and map link",
		}, t.info)

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "contact_enquiry",
			Description: "Validate and submit a contact form enquiry",
		}, t.enquiry)

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "subscribe",
			Description: "Subscribe an email address to job alerts",
		}, t.subscribe)
	}
}

func (t contactTools) info(ctx context.Context, _ *sdkmcp.CallToolRequest, _ *struct{}) (*sdkmcp.CallToolResult, any, error) {
	ctx, cancel := t.reg.call(ctx)
	defer cancel()

	info := contact.Load(ctx, t.backend, t.reg.logger)

	msg := fmt.Sprintf("Address: %s\nPhone: %s\nEmail: %s", info.Address, info.Phone, info.Email)
	if info.HasMap() {
		msg += "\nMap: " + info.LocationMapURL
	}
	if info.Message != "" {
		msg += "\n" + info.Message
	}
	return textResult(msg), info.ContactInfo, nil
}

func (t contactTools) enquiry(_ context.Context, _ *sdkmcp.CallToolRequest, params *EnquiryParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil {
		params = &EnquiryParams{}
	}

	country, ok := contact.LookupCountry(params.Country)
	if !ok && params.Country != "" {
		return errorResult(listing.ValidationError{Field: "country", Reason: "Unknown country code."}.Error()), nil, nil
	}

	msg, err := contact.Submit(contact.Enquiry{
		Name:    params.Name,
		Email:   params.Email,
		Phone:   params.Phone,
		Message: params.Message,
	}, country, t.reg.logger)
	if err != nil {
		return errorResult(listing.MessageOf(err, "")), nil, nil
	}
	return textResult(msg), nil, nil
}

func (t contactTools) subscribe(ctx context.Context, _ *sdkmcp.CallToolRequest, params *SubscribeParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil {
		params = &SubscribeParams{}
	}

	ctx, cancel := t.reg.call(ctx)
	defer cancel()

	msg, err := vacancies.Subscribe(ctx, t.backend, params.Email, t.reg.logger)
	if err != nil {
		return errorResult(listing.MessageOf(err, vacancies.SubscribeFallback)), nil, nil
	}
	return textResult(msg), nil, nil
}
