// Package common declares what every document carries regardless of enabled
// features: the error envelope, currency and address types, the health check
// and the API key security scheme. It also exports shared definitions that
// several optional providers register themselves.
package common

import (
	"github.com/kolah/paydoc/internal/domains/decl"
	"github.com/kolah/paydoc/internal/model"
	"github.com/kolah/paydoc/internal/selector"
)

const (
	APIKey         = "api_key"
	PublishableKey = "publishable_key"

	Currency      model.SchemaID = "Currency"
	Address       model.SchemaID = "Address"
	Metadata      model.SchemaID = "Metadata"
	PaymentMethod model.SchemaID = "PaymentMethod"
	MethodType    model.SchemaID = "PaymentMethodType"
)

func Provider() selector.Provider {
	return selector.Provider{
		Name: "common",
		Variants: map[model.APIVersion]selector.DescribeFunc{
			model.V1: func() selector.Contribution { return describe(model.V1) },
			model.V2: func() selector.Contribution { return describe(model.V2) },
		},
	}
}

// Prefix returns the path prefix routes of version v live under.
func Prefix(v model.APIVersion) string {
	if v == model.V2 {
		return "/v2"
	}
	return ""
}

func describe(v model.APIVersion) selector.Contribution {
	s := decl.NewSet(v)

	s.Object(decl.ErrorSchema, "Error envelope returned with every non-2xx response",
		decl.Req("error", model.Ref("ApiError"), ""),
	).Example(decl.ErrorSchema, map[string]any{
		"error": map[string]any{"type": "invalid_request", "code": "IR_06", "message": "Missing required param: amount"},
	})
	s.Object("ApiError", "",
		decl.Req("type", model.Ref("ApiErrorType"), "Category of the error"),
		decl.Req("code", model.String, "Stable error code"),
		decl.Req("message", model.String, "Human readable description"),
	)
	s.Enum("ApiErrorType", "", "invalid_request", "object_not_found", "duplicate_request", "connector_error", "server_not_available", "api")

	s.Enum(Currency, "Three-letter ISO 4217 currency code", "AUD", "CAD", "EUR", "GBP", "INR", "JPY", "SGD", "USD").
		Example(Currency, "USD")
	s.Object(Address, "Billing or shipping address",
		decl.Opt("line1", model.String, "First line of the street address"),
		decl.Opt("line2", model.String, ""),
		decl.Opt("city", model.String, ""),
		decl.Opt("state", model.String, ""),
		decl.Opt("zip", model.String, ""),
		decl.Opt("country", model.String, "Two-letter ISO 3166-1 country code"),
		decl.Opt("first_name", model.String, ""),
		decl.Opt("last_name", model.String, ""),
	).Example(Address, map[string]any{"line1": "1467 Harrison Street", "city": "San Francisco", "zip": "94122", "country": "US"})

	s.Object("HealthResponse", "",
		decl.Req("status", model.String, "Always \"ok\" when the service can take traffic"),
	)
	s.Op(model.OperationDef{
		ID:          "healthCheck",
		Method:      model.MethodGet,
		Path:        Prefix(v) + "/health",
		Summary:     "Health check",
		Description: "Reports whether the service is accepting requests. Does not require authentication.",
		Responses:   []model.Response{decl.OK("Service is healthy", "HealthResponse")},
	})

	scheme := model.SecurityScheme{
		Name:        APIKey,
		Type:        model.SecurityTypeAPIKey,
		Description: "Secret API key issued from the dashboard.",
		In:          "header",
		ParamName:   "api-key",
	}
	if v == model.V2 {
		scheme.ParamName = "Authorization"
		scheme.Description = "Secret API key sent as `api-key=<key>`."
	}
	s.Security(scheme)
	s.Security(model.SecurityScheme{
		Name:        PublishableKey,
		Type:        model.SecurityTypeAPIKey,
		Description: "Publishable key for client side calls. Grants read access to a single payment.",
		In:          "header",
		ParamName:   "api-key",
	})

	return s.Contribution()
}

// DeclareMetadata registers the free-form metadata object.
func DeclareMetadata(s *decl.Set) {
	s.Object(Metadata, "Free-form key-value pairs attached to the resource")
}

// DeclarePaymentMethods registers the payment method enums.
func DeclarePaymentMethods(s *decl.Set) {
	s.Enum(PaymentMethod, "Category of payment method", "card", "wallet", "bank_transfer", "bank_debit", "bank_redirect", "pay_later")
	s.Enum(MethodType, "Specific payment method within a category", "credit", "debit", "apple_pay", "google_pay", "paypal", "sepa", "ach", "klarna")
}
