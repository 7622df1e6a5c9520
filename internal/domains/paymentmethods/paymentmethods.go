// Package paymentmethods declares stored payment methods, gated by the
// payment-methods feature.
package paymentmethods

import (
	"github.com/kolah/paydoc/internal/domains/common"
	"github.com/kolah/paydoc/internal/domains/decl"
	"github.com/kolah/paydoc/internal/model"
	"github.com/kolah/paydoc/internal/selector"
)

const (
	Tag          = "Payment Methods"
	CustomersTag = "Customers"
)

func Provider() selector.Provider {
	return selector.Provider{
		Name:    "paymentmethods",
		Feature: selector.FeaturePaymentMethods,
		Variants: map[model.APIVersion]selector.DescribeFunc{
			model.V1: describeV1,
			model.V2: describeV2,
		},
	}
}

func shared(s *decl.Set) {
	s.Tag(Tag, "Save, list and remove payment methods for customers.")
	common.DeclarePaymentMethods(s)
	common.DeclareMetadata(s)
	s.Object("CardDetail", "Card data supplied by the customer",
		decl.Req("card_number", model.String, ""),
		decl.Req("card_exp_month", model.String, "Two-digit expiry month"),
		decl.Req("card_exp_year", model.String, "Four-digit expiry year"),
		decl.Opt("card_holder_name", model.String, ""),
	)
	s.Object("CardDetailFromLocker", "Non-sensitive card data returned from the vault",
		decl.Opt("last4_digits", model.String, ""),
		decl.Opt("expiry_month", model.String, ""),
		decl.Opt("expiry_year", model.String, ""),
		decl.Opt("card_network", model.String, ""),
		decl.Opt("card_holder_name", model.String, ""),
	)
}

func describeV1() selector.Contribution {
	s := decl.NewSet(model.V1)
	shared(s)

	s.Object("PaymentMethodCreate", "",
		decl.Req("payment_method", model.Ref(common.PaymentMethod), ""),
		decl.Opt("payment_method_type", model.Ref(common.MethodType), ""),
		decl.Opt("customer_id", model.String, ""),
		decl.Opt("card", model.Ref("CardDetail"), ""),
		decl.Opt("metadata", model.Ref(common.Metadata), ""),
	)
	s.Object("PaymentMethodResponse", "A stored payment method",
		decl.Req("payment_method_id", model.String, ""),
		decl.Req("merchant_id", model.String, ""),
		decl.Null("customer_id", model.String, ""),
		decl.Req("payment_method", model.Ref(common.PaymentMethod), ""),
		decl.Opt("payment_method_type", model.Ref(common.MethodType), ""),
		decl.Null("card", model.Ref("CardDetailFromLocker"), ""),
		decl.Req("recurring_enabled", model.Boolean, ""),
		decl.Null("metadata", model.Ref(common.Metadata), ""),
		decl.Opt("created", model.DateTime, ""),
	).Example("PaymentMethodResponse", map[string]any{
		"payment_method_id": "pm_iouuy468iyuowqs",
		"merchant_id":       "merchant_1671528864",
		"customer_id":       "cus_y3oqhf46pyzuxjbcn2giaqnb44",
		"payment_method":    "card",
		"card":              map[string]any{"last4_digits": "4242", "expiry_month": "10", "expiry_year": "2030", "card_network": "Visa"},
		"recurring_enabled": true,
	})
	s.Object("PaymentMethodDeleteResponse", "",
		decl.Req("payment_method_id", model.String, ""),
		decl.Req("deleted", model.Boolean, ""),
	)
	s.Object("CustomerPaymentMethodsListResponse", "",
		decl.Req("customer_payment_methods", model.ArrayOf(model.Ref("PaymentMethodResponse")), ""),
	)

	id := model.PathParam("method_id", "The identifier for the payment method")
	security := []string{common.APIKey}
	s.Op(model.OperationDef{
		ID: "createPaymentMethod", Method: model.MethodPost, Path: "/payment_methods",
		Summary:   "Create a payment method",
		Tags:      []string{Tag},
		Request:   decl.Body("PaymentMethodCreate"),
		Responses: decl.Responses(decl.OK("Payment method created", "PaymentMethodResponse")),
		Security:  security,
	})
	s.Op(model.OperationDef{
		ID: "retrievePaymentMethod", Method: model.MethodGet, Path: "/payment_methods/{method_id}",
		Summary:    "Retrieve a payment method",
		Tags:       []string{Tag},
		Parameters: []model.Parameter{id},
		Responses:  decl.Responses(decl.OK("Payment method retrieved", "PaymentMethodResponse")),
		Security:   security,
	})
	s.Op(model.OperationDef{
		ID: "deletePaymentMethod", Method: model.MethodDelete, Path: "/payment_methods/{method_id}",
		Summary:    "Delete a payment method",
		Tags:       []string{Tag},
		Parameters: []model.Parameter{id},
		Responses:  decl.Responses(decl.OK("Payment method deleted", "PaymentMethodDeleteResponse")),
		Security:   security,
	})
	s.Op(model.OperationDef{
		ID: "listCustomerPaymentMethods", Method: model.MethodGet, Path: "/customers/{customer_id}/payment_methods",
		Summary: "List a customer's payment methods",
		Tags:    []string{Tag, CustomersTag},
		Parameters: []model.Parameter{
			model.PathParam("customer_id", "The identifier for the customer"),
			decl.Query("recurring_enabled", model.Boolean, "Only return methods usable for recurring payments"),
		},
		Responses: decl.Responses(decl.OK("Payment methods listed", "CustomerPaymentMethodsListResponse")),
		Security:  security,
	})

	return s.Contribution()
}

func describeV2() selector.Contribution {
	s := decl.NewSet(model.V2)
	shared(s)

	s.Object("PaymentMethodCreate", "",
		decl.Req("payment_method_type", model.Ref(common.PaymentMethod), ""),
		decl.Req("payment_method_subtype", model.Ref(common.MethodType), ""),
		decl.Req("customer_id", model.String, "Global customer identifier"),
		decl.Opt("card", model.Ref("CardDetail"), ""),
		decl.Opt("metadata", model.Ref(common.Metadata), ""),
	)
	s.Object("PaymentMethodResponse", "A stored payment method",
		decl.Req("id", model.String, "Global payment method identifier"),
		decl.Req("customer_id", model.String, ""),
		decl.Req("payment_method_type", model.Ref(common.PaymentMethod), ""),
		decl.Req("payment_method_subtype", model.Ref(common.MethodType), ""),
		decl.Null("card", model.Ref("CardDetailFromLocker"), ""),
		decl.Req("recurring_enabled", model.Boolean, ""),
		decl.Null("metadata", model.Ref(common.Metadata), ""),
		decl.Req("created", model.DateTime, ""),
	).Example("PaymentMethodResponse", map[string]any{
		"id":                     "12345_pm_01926c58bc6e77c09e809964e72af8c8",
		"customer_id":            "12345_cus_01926c58bc6e77c09e809964e72af8c8",
		"payment_method_type":    "card",
		"payment_method_subtype": "credit",
		"recurring_enabled":      true,
		"created":                "2024-02-24T11:04:09Z",
	})
	s.Object("PaymentMethodDeleteResponse", "",
		decl.Req("id", model.String, ""),
	)

	id := model.PathParam("id", "Global payment method identifier")
	security := []string{common.APIKey}
	s.Op(model.OperationDef{
		ID: "createPaymentMethodV2", Method: model.MethodPost, Path: "/v2/payment-methods",
		Summary:   "Create a payment method",
		Tags:      []string{Tag},
		Request:   decl.Body("PaymentMethodCreate"),
		Responses: decl.Responses(decl.OK("Payment method created", "PaymentMethodResponse")),
		Security:  security,
	})
	s.Op(model.OperationDef{
		ID: "retrievePaymentMethodV2", Method: model.MethodGet, Path: "/v2/payment-methods/{id}",
		Summary:    "Retrieve a payment method",
		Tags:       []string{Tag},
		Parameters: []model.Parameter{id},
		Responses:  decl.Responses(decl.OK("Payment method retrieved", "PaymentMethodResponse")),
		Security:   security,
	})
	s.Op(model.OperationDef{
		ID: "deletePaymentMethodV2", Method: model.MethodDelete, Path: "/v2/payment-methods/{id}",
		Summary:    "Delete a payment method",
		Tags:       []string{Tag},
		Parameters: []model.Parameter{id},
		Responses:  decl.Responses(decl.OK("Payment method deleted", "PaymentMethodDeleteResponse")),
		Security:   security,
	})

	return s.Contribution()
}
