// Package refunds declares refund resources, gated by the refunds feature.
package refunds

import (
	"github.com/kolah/paydoc/internal/domains/common"
	"github.com/kolah/paydoc/internal/domains/decl"
	"github.com/kolah/paydoc/internal/model"
	"github.com/kolah/paydoc/internal/selector"
)

const Tag = "Refunds"

const (
	RefundStatus   model.SchemaID = "RefundStatus"
	RefundResponse model.SchemaID = "RefundResponse"
)

func Provider() selector.Provider {
	return selector.Provider{
		Name:    "refunds",
		Feature: selector.FeatureRefunds,
		Variants: map[model.APIVersion]selector.DescribeFunc{
			model.V1: describeV1,
			model.V2: describeV2,
		},
	}
}

func status(s *decl.Set) {
	s.Tag(Tag, "Return funds from a succeeded payment to the customer.")
	s.Enum(RefundStatus, "Lifecycle state of a refund", "succeeded", "failed", "pending", "review")
}

func describeV1() selector.Contribution {
	s := decl.NewSet(model.V1)
	status(s)
	common.DeclareMetadata(s)

	s.Enum("RefundType", "", "scheduled", "instant")
	s.Object("RefundRequest", "",
		decl.Req("payment_id", model.String, "The payment to refund"),
		decl.Opt("refund_id", model.String, "Idempotency key; generated when omitted"),
		decl.Opt("amount", model.Integer, "Defaults to the full captured amount"),
		decl.Opt("reason", model.String, ""),
		decl.Opt("refund_type", model.Ref("RefundType"), ""),
		decl.Opt("metadata", model.Ref(common.Metadata), ""),
	)
	s.Object(RefundResponse, "A refund",
		decl.Req("refund_id", model.String, "Unique identifier for the refund"),
		decl.Req("payment_id", model.String, ""),
		decl.Req("amount", model.Integer, ""),
		decl.Req("currency", model.String, "Currency of the refunded payment"),
		decl.Req("status", model.Ref(RefundStatus), ""),
		decl.Null("reason", model.String, ""),
		decl.Null("error_message", model.String, "Connector error when status is failed"),
		decl.Null("metadata", model.Ref(common.Metadata), ""),
		decl.Opt("created_at", model.DateTime, ""),
		decl.Opt("updated_at", model.DateTime, ""),
	).Example(RefundResponse, map[string]any{
		"refund_id":  "ref_mbabizu24mvu3mela5njyhpit4",
		"payment_id": "pay_mbabizu24mvu3mela5njyhpit4",
		"amount":     6540,
		"currency":   "USD",
		"status":     "succeeded",
	})
	s.Object("RefundUpdateRequest", "",
		decl.Opt("reason", model.String, ""),
		decl.Opt("metadata", model.Ref(common.Metadata), ""),
	)
	s.Object("RefundListRequest", "",
		decl.Opt("payment_id", model.String, ""),
		decl.Opt("limit", model.Integer, ""),
		decl.Opt("offset", model.Integer, ""),
		decl.Opt("refund_status", model.ArrayOf(model.Ref(RefundStatus)), ""),
	)
	s.Object("RefundListResponse", "",
		decl.Req("count", model.Integer, "Number of refunds in this page"),
		decl.Req("total_count", model.Integer, ""),
		decl.Req("data", model.ArrayOf(model.Ref(RefundResponse)), ""),
	)

	refundID := model.PathParam("refund_id", "The identifier for the refund")
	security := []string{common.APIKey}
	s.Op(model.OperationDef{
		ID: "createRefund", Method: model.MethodPost, Path: "/refunds",
		Summary:   "Create a refund",
		Tags:      []string{Tag},
		Request:   decl.Body("RefundRequest"),
		Responses: decl.Responses(decl.OK("Refund created", RefundResponse)),
		Security:  security,
	})
	s.Op(model.OperationDef{
		ID: "retrieveRefund", Method: model.MethodGet, Path: "/refunds/{refund_id}",
		Summary:    "Retrieve a refund",
		Tags:       []string{Tag},
		Parameters: []model.Parameter{refundID},
		Responses:  decl.Responses(decl.OK("Refund retrieved", RefundResponse)),
		Security:   security,
	})
	s.Op(model.OperationDef{
		ID: "updateRefund", Method: model.MethodPost, Path: "/refunds/{refund_id}",
		Summary:    "Update a refund",
		Tags:       []string{Tag},
		Parameters: []model.Parameter{refundID},
		Request:    decl.Body("RefundUpdateRequest"),
		Responses:  decl.Responses(decl.OK("Refund updated", RefundResponse)),
		Security:   security,
	})
	s.Op(model.OperationDef{
		ID: "listRefunds", Method: model.MethodPost, Path: "/refunds/list",
		Summary:   "List refunds",
		Tags:      []string{Tag},
		Request:   decl.Body("RefundListRequest"),
		Responses: decl.Responses(decl.OK("Refunds listed", "RefundListResponse")),
		Security:  security,
	})

	return s.Contribution()
}

func describeV2() selector.Contribution {
	s := decl.NewSet(model.V2)
	status(s)

	s.Object("RefundsCreateRequest", "",
		decl.Req("payment_id", model.String, "Global identifier of the payment to refund"),
		decl.Req("merchant_reference_id", model.String, "Merchant's own identifier, used for idempotency"),
		decl.Opt("amount", model.Integer, "Defaults to the full captured amount"),
		decl.Opt("reason", model.String, ""),
	)
	s.Object(RefundResponse, "A refund",
		decl.Req("id", model.String, "Global refund identifier"),
		decl.Req("payment_id", model.String, ""),
		decl.Req("merchant_reference_id", model.String, ""),
		decl.Req("amount", model.Integer, ""),
		decl.Req("currency", model.Ref(common.Currency), ""),
		decl.Req("status", model.Ref(RefundStatus), ""),
		decl.Null("reason", model.String, ""),
		decl.Null("error_details", model.Ref("RefundErrorDetails"), ""),
		decl.Req("created_at", model.DateTime, ""),
		decl.Req("updated_at", model.DateTime, ""),
	).Example(RefundResponse, map[string]any{
		"id":                    "12345_ref_01926c58bc6e77c09e809964e72af8c8",
		"payment_id":            "12345_pay_01926c58bc6e77c09e809964e72af8c8",
		"merchant_reference_id": "ref_123",
		"amount":                654,
		"currency":              "EUR",
		"status":                "pending",
		"created_at":            "2024-07-10T09:41:00Z",
		"updated_at":            "2024-07-10T09:41:00Z",
	})
	s.Object("RefundErrorDetails", "",
		decl.Req("code", model.String, ""),
		decl.Req("message", model.String, ""),
	)

	security := []string{common.APIKey}
	s.Op(model.OperationDef{
		ID: "createRefundV2", Method: model.MethodPost, Path: "/v2/refunds",
		Summary:   "Create a refund",
		Tags:      []string{Tag},
		Request:   decl.Body("RefundsCreateRequest"),
		Responses: decl.Responses(decl.OK("Refund created", RefundResponse)),
		Security:  security,
	})
	s.Op(model.OperationDef{
		ID: "retrieveRefundV2", Method: model.MethodGet, Path: "/v2/refunds/{id}",
		Summary:    "Retrieve a refund",
		Tags:       []string{Tag},
		Parameters: []model.Parameter{model.PathParam("id", "Global refund identifier")},
		Responses:  decl.Responses(decl.OK("Refund retrieved", RefundResponse)),
		Security:   security,
	})

	return s.Contribution()
}
