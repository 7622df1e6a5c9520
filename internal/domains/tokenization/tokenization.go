// Package tokenization declares the generic vault tokenization routes, which
// the v2 surface introduced.
package tokenization

import (
	"github.com/kolah/paydoc/internal/domains/common"
	"github.com/kolah/paydoc/internal/domains/decl"
	"github.com/kolah/paydoc/internal/model"
	"github.com/kolah/paydoc/internal/selector"
)

const Tag = "Tokenization"

func Provider() selector.Provider {
	return selector.Provider{
		Name:    "tokenization",
		Feature: selector.FeatureTokenization,
		Variants: map[model.APIVersion]selector.DescribeFunc{
			model.V2: describeV2,
		},
	}
}

func describeV2() selector.Contribution {
	s := decl.NewSet(model.V2)
	s.Tag(Tag, "Store arbitrary sensitive data in the vault and reference it by token.")

	s.Enum("TokenizationFlag", "", "enabled", "disabled")
	s.Object("GenericTokenizationRequest", "",
		decl.Req("customer_id", model.String, "Customer the data belongs to"),
		decl.Req("token_request", model.Ref(common.Metadata), "Data to store, as a JSON object"),
	)
	common.DeclareMetadata(s)
	s.Object("GenericTokenizationResponse", "",
		decl.Req("id", model.String, "Token identifier"),
		decl.Req("flag", model.Ref("TokenizationFlag"), ""),
		decl.Req("created_at", model.DateTime, ""),
	).Example("GenericTokenizationResponse", map[string]any{
		"id":         "12345_tok_01926c58bc6e77c09e809964e72af8c8",
		"flag":       "enabled",
		"created_at": "2024-02-24T11:04:09Z",
	})
	s.Object("DeleteTokenDataResponse", "",
		decl.Req("id", model.String, "Token identifier"),
	)

	security := []string{common.APIKey}
	s.Op(model.OperationDef{
		ID: "createTokenVault", Method: model.MethodPost, Path: "/v2/tokenize",
		Summary:   "Create a token",
		Tags:      []string{Tag},
		Request:   decl.Body("GenericTokenizationRequest"),
		Responses: decl.Responses(decl.OK("Token created", "GenericTokenizationResponse")),
		Security:  security,
	})
	s.Op(model.OperationDef{
		ID: "deleteTokenVault", Method: model.MethodDelete, Path: "/v2/tokenize/{id}",
		Summary:    "Delete a token",
		Tags:       []string{Tag},
		Parameters: []model.Parameter{model.PathParam("id", "Token identifier")},
		Responses:  decl.Responses(decl.OK("Token deleted", "DeleteTokenDataResponse")),
		Security:   security,
	})

	return s.Contribution()
}
