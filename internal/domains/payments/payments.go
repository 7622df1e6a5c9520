// Package payments declares the payment intent resources. It is always part
// of the document.
package payments

import (
	"github.com/kolah/paydoc/internal/domains/common"
	"github.com/kolah/paydoc/internal/domains/decl"
	"github.com/kolah/paydoc/internal/model"
	"github.com/kolah/paydoc/internal/selector"
)

const Tag = "Payments"

const (
	IntentStatus  model.SchemaID = "IntentStatus"
	CaptureMethod model.SchemaID = "CaptureMethod"
)

func Provider() selector.Provider {
	return selector.Provider{
		Name: "payments",
		Variants: map[model.APIVersion]selector.DescribeFunc{
			model.V1: describeV1,
			model.V2: describeV2,
		},
	}
}

func shared(s *decl.Set) {
	s.Tag(Tag, "Create, confirm, capture and cancel payments.")
	s.Enum(IntentStatus, "Lifecycle state of a payment",
		"succeeded", "failed", "cancelled", "processing",
		"requires_customer_action", "requires_merchant_action", "requires_payment_method",
		"requires_confirmation", "requires_capture", "partially_captured",
	)
	s.Enum(CaptureMethod, "When the authorized amount is captured", "automatic", "manual", "manual_multiple", "scheduled")
	common.DeclareMetadata(s)
}

func paymentID() model.Parameter {
	return model.PathParam("payment_id", "The identifier for the payment")
}

func describeV1() selector.Contribution {
	s := decl.NewSet(model.V1)
	shared(s)

	s.Object("PaymentsCreateRequest", "",
		decl.Req("amount", model.Integer, "Amount in the lowest denomination of the currency"),
		decl.Req("currency", model.Ref(common.Currency), ""),
		decl.Opt("customer_id", model.String, ""),
		decl.Opt("description", model.String, ""),
		decl.Opt("capture_method", model.Ref(CaptureMethod), ""),
		decl.Opt("confirm", model.Boolean, "Confirm the payment immediately after creating it"),
		decl.Opt("billing", model.Ref(common.Address), ""),
		decl.Opt("shipping", model.Ref(common.Address), ""),
		decl.Opt("metadata", model.Ref(common.Metadata), ""),
	)
	s.Object("PaymentsResponse", "A payment",
		decl.Req("payment_id", model.String, "Unique identifier for the payment"),
		decl.Req("status", model.Ref(IntentStatus), ""),
		decl.Req("amount", model.Integer, ""),
		decl.Opt("amount_capturable", model.Integer, "Amount that can still be captured"),
		decl.Opt("amount_received", model.Integer, ""),
		decl.Req("currency", model.Ref(common.Currency), ""),
		decl.Opt("capture_method", model.Ref(CaptureMethod), ""),
		decl.Null("customer_id", model.String, ""),
		decl.Null("description", model.String, ""),
		decl.Null("billing", model.Ref(common.Address), ""),
		decl.Null("metadata", model.Ref(common.Metadata), ""),
		decl.Opt("client_secret", model.String, "Secret used by client side integrations"),
		decl.Req("created", model.DateTime, ""),
	).Example("PaymentsResponse", map[string]any{
		"payment_id": "pay_mbabizu24mvu3mela5njyhpit4",
		"status":     "succeeded",
		"amount":     6540,
		"currency":   "USD",
		"created":    "2024-07-10T09:41:00Z",
	})
	s.Object("PaymentsCaptureRequest", "",
		decl.Opt("amount_to_capture", model.Integer, "Defaults to the full capturable amount"),
		decl.Opt("statement_descriptor_suffix", model.String, ""),
	)
	s.Object("PaymentsCancelRequest", "",
		decl.Opt("cancellation_reason", model.String, ""),
	)
	s.Object("PaymentListResponse", "",
		decl.Req("size", model.Integer, "Number of payments in this page"),
		decl.Req("data", model.ArrayOf(model.Ref("PaymentsResponse")), ""),
	)

	security := []string{common.APIKey}
	s.Op(model.OperationDef{
		ID: "createPayment", Method: model.MethodPost, Path: "/payments",
		Summary:   "Create a payment",
		Tags:      []string{Tag},
		Request:   decl.Body("PaymentsCreateRequest"),
		Responses: decl.Responses(decl.OK("Payment created", "PaymentsResponse")),
		Security:  security,
	})
	s.Op(model.OperationDef{
		ID: "retrievePayment", Method: model.MethodGet, Path: "/payments/{payment_id}",
		Summary:    "Retrieve a payment",
		Tags:       []string{Tag},
		Parameters: []model.Parameter{paymentID(), decl.Query("force_sync", model.Boolean, "Sync status with the connector before responding")},
		Responses:  decl.Responses(decl.OK("Payment retrieved", "PaymentsResponse")),
		Security:   []string{common.APIKey, common.PublishableKey},
	})
	s.Op(model.OperationDef{
		ID: "capturePayment", Method: model.MethodPost, Path: "/payments/{payment_id}/capture",
		Summary:    "Capture an authorized payment",
		Tags:       []string{Tag},
		Parameters: []model.Parameter{paymentID()},
		Request:    decl.Body("PaymentsCaptureRequest"),
		Responses:  decl.Responses(decl.OK("Payment captured", "PaymentsResponse")),
		Security:   security,
	})
	s.Op(model.OperationDef{
		ID: "cancelPayment", Method: model.MethodPost, Path: "/payments/{payment_id}/cancel",
		Summary:    "Cancel a payment",
		Tags:       []string{Tag},
		Parameters: []model.Parameter{paymentID()},
		Request:    decl.Body("PaymentsCancelRequest"),
		Responses:  decl.Responses(decl.OK("Payment cancelled", "PaymentsResponse")),
		Security:   security,
	})
	s.Op(model.OperationDef{
		ID: "listPayments", Method: model.MethodGet, Path: "/payments/list",
		Summary: "List payments",
		Tags:    []string{Tag},
		Parameters: []model.Parameter{
			decl.Query("customer_id", model.String, ""),
			decl.Query("limit", model.Integer, "Page size, at most 100"),
			decl.Query("created_gte", model.DateTime, ""),
		},
		Responses: decl.Responses(decl.OK("Payments listed", "PaymentListResponse")),
		Security:  security,
	})

	return s.Contribution()
}

func describeV2() selector.Contribution {
	s := decl.NewSet(model.V2)
	shared(s)
	common.DeclarePaymentMethods(s)

	s.Object("AmountDetails", "",
		decl.Req("order_amount", model.Integer, "Amount in the lowest denomination of the currency"),
		decl.Req("currency", model.Ref(common.Currency), ""),
		decl.Opt("shipping_cost", model.Integer, ""),
		decl.Opt("order_tax_amount", model.Integer, ""),
	)
	s.Object("PaymentsCreateIntentRequest", "",
		decl.Req("amount_details", model.Ref("AmountDetails"), ""),
		decl.Opt("merchant_reference_id", model.String, "Merchant's own identifier for the order"),
		decl.Opt("customer_id", model.String, ""),
		decl.Opt("capture_method", model.Ref(CaptureMethod), ""),
		decl.Opt("billing", model.Ref(common.Address), ""),
		decl.Opt("metadata", model.Ref(common.Metadata), ""),
	)
	s.Object("PaymentsIntentResponse", "A payment intent",
		decl.Req("id", model.String, "Global payment identifier"),
		decl.Req("status", model.Ref(IntentStatus), ""),
		decl.Req("amount_details", model.Ref("AmountDetails"), ""),
		decl.Req("client_secret", model.String, ""),
		decl.Null("merchant_reference_id", model.String, ""),
		decl.Opt("capture_method", model.Ref(CaptureMethod), ""),
		decl.Null("billing", model.Ref(common.Address), ""),
		decl.Null("metadata", model.Ref(common.Metadata), ""),
		decl.Req("created", model.DateTime, ""),
	).Example("PaymentsIntentResponse", map[string]any{
		"id":             "12345_pay_01926c58bc6e77c09e809964e72af8c8",
		"status":         "requires_payment_method",
		"amount_details": map[string]any{"order_amount": 6540, "currency": "USD"},
		"client_secret":  "12345_pay_01926c58_secret_01926c58",
		"created":        "2024-07-10T09:41:00Z",
	})
	s.Object("PaymentsConfirmIntentRequest", "",
		decl.Req("payment_method_type", model.Ref(common.PaymentMethod), ""),
		decl.Req("payment_method_subtype", model.Ref(common.MethodType), ""),
		decl.Opt("return_url", model.String, "Where the customer is sent after authentication"),
	)

	security := []string{common.APIKey}
	s.Op(model.OperationDef{
		ID: "createPaymentIntent", Method: model.MethodPost, Path: "/v2/payments/create-intent",
		Summary:   "Create a payment intent",
		Tags:      []string{Tag},
		Request:   decl.Body("PaymentsCreateIntentRequest"),
		Responses: decl.Responses(decl.OK("Payment intent created", "PaymentsIntentResponse")),
		Security:  security,
	})
	s.Op(model.OperationDef{
		ID: "getPaymentIntent", Method: model.MethodGet, Path: "/v2/payments/{id}/get-intent",
		Summary:    "Retrieve a payment intent",
		Tags:       []string{Tag},
		Parameters: []model.Parameter{model.PathParam("id", "The global payment identifier")},
		Responses:  decl.Responses(decl.OK("Payment intent retrieved", "PaymentsIntentResponse")),
		Security:   []string{common.APIKey, common.PublishableKey},
	})
	s.Op(model.OperationDef{
		ID: "confirmPaymentIntent", Method: model.MethodPost, Path: "/v2/payments/{id}/confirm-intent",
		Summary:    "Confirm a payment intent",
		Tags:       []string{Tag},
		Parameters: []model.Parameter{model.PathParam("id", "The global payment identifier"), decl.Header("X-Profile-Id", true, "Business profile the payment belongs to")},
		Request:    decl.Body("PaymentsConfirmIntentRequest"),
		Responses:  decl.Responses(decl.OK("Payment intent confirmed", "PaymentsIntentResponse")),
		Security:   security,
	})

	return s.Contribution()
}
