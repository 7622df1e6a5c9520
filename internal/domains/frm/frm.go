// Package frm declares fraud and risk management routes. They exist only in
// the v1 surface.
package frm

import (
	"github.com/kolah/paydoc/internal/domains/common"
	"github.com/kolah/paydoc/internal/domains/decl"
	"github.com/kolah/paydoc/internal/model"
	"github.com/kolah/paydoc/internal/selector"
)

const Tag = "Fraud Check"

func Provider() selector.Provider {
	return selector.Provider{
		Name:    "frm",
		Feature: selector.FeatureFRM,
		Variants: map[model.APIVersion]selector.DescribeFunc{
			model.V1: describeV1,
		},
	}
}

func describeV1() selector.Contribution {
	s := decl.NewSet(model.V1)
	s.Tag(Tag, "Inspect and act on fraud decisions for a payment.")

	s.Enum("FraudCheckStatus", "", "fraud", "manual_review", "pending", "legit", "transaction_failure")
	s.Enum("FrmTransactionType", "Whether the check ran before or after authorization", "pre_frm", "post_frm")
	s.Object("FraudCheckResponse", "Outcome of the fraud check for a payment",
		decl.Req("payment_id", model.String, ""),
		decl.Req("frm_name", model.String, "Fraud provider that ran the check"),
		decl.Req("frm_status", model.Ref("FraudCheckStatus"), ""),
		decl.Req("frm_transaction_type", model.Ref("FrmTransactionType"), ""),
		decl.Null("frm_score", model.Integer, "Risk score from 0 to 100"),
		decl.Null("frm_reason", model.String, ""),
	).Example("FraudCheckResponse", map[string]any{
		"payment_id":           "pay_mbabizu24mvu3mela5njyhpit4",
		"frm_name":             "signifyd",
		"frm_status":           "manual_review",
		"frm_transaction_type": "pre_frm",
		"frm_score":            72,
	})
	s.Object("FraudReviewRequest", "",
		decl.Opt("reason", model.String, "Recorded with the manual decision"),
	)

	id := model.PathParam("payment_id", "The identifier for the payment")
	security := []string{common.APIKey}
	s.Op(model.OperationDef{
		ID: "retrieveFraudCheck", Method: model.MethodGet, Path: "/payments/{payment_id}/fraud_check",
		Summary:    "Retrieve the fraud check of a payment",
		Tags:       []string{Tag},
		Parameters: []model.Parameter{id},
		Responses:  decl.Responses(decl.OK("Fraud check retrieved", "FraudCheckResponse")),
		Security:   security,
	})
	s.Op(model.OperationDef{
		ID: "approveFraudCheck", Method: model.MethodPost, Path: "/payments/{payment_id}/fraud_check/approve",
		Summary:     "Approve a payment held for review",
		Description: "Resumes a payment the fraud provider placed in manual review.",
		Tags:        []string{Tag},
		Parameters:  []model.Parameter{id},
		Request:     &model.RequestBody{Schema: model.Ref("FraudReviewRequest")},
		Responses:   decl.Responses(decl.OK("Payment approved", "FraudCheckResponse")),
		Security:    security,
	})
	s.Op(model.OperationDef{
		ID: "rejectFraudCheck", Method: model.MethodPost, Path: "/payments/{payment_id}/fraud_check/reject",
		Summary:    "Reject a payment held for review",
		Tags:       []string{Tag},
		Parameters: []model.Parameter{id},
		Request:    &model.RequestBody{Schema: model.Ref("FraudReviewRequest")},
		Responses:  decl.Responses(decl.OK("Payment rejected", "FraudCheckResponse")),
		Security:   security,
	})

	return s.Contribution()
}
