// Package payouts declares payout resources, gated by the payouts feature.
package payouts

import (
	"github.com/kolah/paydoc/internal/domains/common"
	"github.com/kolah/paydoc/internal/domains/decl"
	"github.com/kolah/paydoc/internal/model"
	"github.com/kolah/paydoc/internal/selector"
)

const Tag = "Payouts"

const (
	PayoutStatus   model.SchemaID = "PayoutStatus"
	PayoutType     model.SchemaID = "PayoutType"
	PayoutResponse model.SchemaID = "PayoutCreateResponse"
)

func Provider() selector.Provider {
	return selector.Provider{
		Name:    "payouts",
		Feature: selector.FeaturePayouts,
		Variants: map[model.APIVersion]selector.DescribeFunc{
			model.V1: func() selector.Contribution { return describe(model.V1) },
			model.V2: func() selector.Contribution { return describe(model.V2) },
		},
	}
}

func describe(v model.APIVersion) selector.Contribution {
	s := decl.NewSet(v)
	s.Tag(Tag, "Send funds to a bank account, card or wallet.")

	s.Enum(PayoutStatus, "", "success", "failed", "cancelled", "initiated", "expired", "reversed", "pending", "ineligible", "requires_creation", "requires_fulfillment")
	s.Enum(PayoutType, "", "card", "bank", "wallet")

	s.Object("PayoutCreateRequest", "",
		decl.Req("amount", model.Integer, "Amount in the lowest denomination of the currency"),
		decl.Req("currency", model.Ref(common.Currency), ""),
		decl.Opt("customer_id", model.String, ""),
		decl.Opt("payout_type", model.Ref(PayoutType), ""),
		decl.Opt("billing", model.Ref(common.Address), "Address of the payout recipient"),
		decl.Opt("auto_fulfill", model.Boolean, "Fulfill the payout right after creating it"),
		decl.Opt("description", model.String, ""),
	)
	s.Object(PayoutResponse, "A payout",
		decl.Req("payout_id", model.String, "Unique identifier for the payout"),
		decl.Req("amount", model.Integer, ""),
		decl.Req("currency", model.Ref(common.Currency), ""),
		decl.Req("status", model.Ref(PayoutStatus), ""),
		decl.Opt("payout_type", model.Ref(PayoutType), ""),
		decl.Null("billing", model.Ref(common.Address), ""),
		decl.Null("error_message", model.String, ""),
		decl.Opt("created", model.DateTime, ""),
	).Example(PayoutResponse, map[string]any{
		"payout_id":   "po_2c4vFOLPxFcBqxFpa0fB",
		"amount":      1000,
		"currency":    "EUR",
		"status":      "initiated",
		"payout_type": "bank",
	})
	s.Object("PayoutActionRequest", "",
		decl.Opt("cancellation_reason", model.String, "Only read when cancelling"),
	)

	prefix := common.Prefix(v)
	idName := "payout_id"
	createPath := "/payouts/create"
	if v == model.V2 {
		idName = "id"
		createPath = "/payouts"
	}
	id := model.PathParam(idName, "The identifier for the payout")
	item := prefix + "/payouts/{" + idName + "}"
	security := []string{common.APIKey}

	s.Op(model.OperationDef{
		Method: model.MethodPost, Path: prefix + createPath,
		Summary:   "Create a payout",
		Tags:      []string{Tag},
		Request:   decl.Body("PayoutCreateRequest"),
		Responses: decl.Responses(decl.OK("Payout created", PayoutResponse)),
		Security:  security,
	})
	s.Op(model.OperationDef{
		Method: model.MethodGet, Path: item,
		Summary:    "Retrieve a payout",
		Tags:       []string{Tag},
		Parameters: []model.Parameter{id},
		Responses:  decl.Responses(decl.OK("Payout retrieved", PayoutResponse)),
		Security:   security,
	})
	s.Op(model.OperationDef{
		Method: model.MethodPost, Path: item + "/cancel",
		Summary:    "Cancel a payout",
		Tags:       []string{Tag},
		Parameters: []model.Parameter{id},
		Request:    decl.Body("PayoutActionRequest"),
		Responses:  decl.Responses(decl.OK("Payout cancelled", PayoutResponse)),
		Security:   security,
	})
	s.Op(model.OperationDef{
		Method: model.MethodPost, Path: item + "/fulfill",
		Summary:    "Fulfill a payout",
		Tags:       []string{Tag},
		Parameters: []model.Parameter{id},
		Request:    decl.Body("PayoutActionRequest"),
		Responses:  decl.Responses(decl.OK("Payout fulfilled", PayoutResponse)),
		Security:   security,
	})

	return s.Contribution()
}
