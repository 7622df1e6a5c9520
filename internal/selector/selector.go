// Package selector picks, for every domain provider, the single variant that
// matches the active API version and the enabled capabilities.
//
// Version exclusivity is structural: the describe function of the inactive
// variant is never called, so its definitions never reach the registries.
package selector

import (
	"fmt"
	"slices"
	"sort"

	"github.com/kolah/paydoc/internal/model"
	"github.com/kolah/paydoc/internal/specerr"
)

// Feature toggles an optional capability of the API surface.
type Feature string

const (
	FeatureRefunds        Feature = "refunds"
	FeaturePayouts        Feature = "payouts"
	FeatureFRM            Feature = "frm"
	FeatureTokenization   Feature = "tokenization"
	FeaturePaymentMethods Feature = "payment-methods"
)

// Features lists every known capability toggle.
func Features() []Feature {
	return []Feature{FeatureRefunds, FeaturePayouts, FeatureFRM, FeatureTokenization, FeaturePaymentMethods}
}

// ParseFeatures converts feature names, rejecting unknown ones.
func ParseFeatures(names []string) ([]Feature, error) {
	out := make([]Feature, 0, len(names))
	for _, n := range names {
		f := Feature(n)
		if !slices.Contains(Features(), f) {
			return nil, &specerr.ConfigError{
				Option:  "features",
				Value:   n,
				Message: "unknown feature (valid: refunds, payouts, frm, tokenization, payment-methods)",
			}
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out, nil
}

// Contribution is everything a provider declares for one API version.
type Contribution struct {
	Schemas         []model.SchemaDef
	Operations      []model.OperationDef
	Tags            []model.Tag
	SecuritySchemes []model.SecurityScheme
}

// DescribeFunc returns a provider's declarations for one version.
type DescribeFunc func() Contribution

// Provider is a domain package's registration entry point.
type Provider struct {
	Name string
	// Feature gates the provider; empty means always enabled.
	Feature  Feature
	Variants map[model.APIVersion]DescribeFunc
}

// Versions returns the API versions the provider has variants for, in order.
func (p Provider) Versions() []model.APIVersion {
	var out []model.APIVersion
	for _, v := range model.Versions() {
		if _, ok := p.Variants[v]; ok {
			out = append(out, v)
		}
	}
	return out
}

// Selected is a provider reduced to its active variant.
type Selected struct {
	Name     string
	Describe DescribeFunc
}

// Skipped records why a provider did not participate.
type Skipped struct {
	Name   string
	Reason string
}

type Selector struct {
	active   model.APIVersion
	features map[Feature]bool
}

func New(active model.APIVersion, features []Feature) (*Selector, error) {
	if !active.Valid() {
		return nil, &specerr.ConfigError{Option: "version", Value: string(active), Message: "must be v1 or v2"}
	}
	s := &Selector{
		active:   active,
		features: make(map[Feature]bool, len(features)),
	}
	for _, f := range features {
		if !slices.Contains(Features(), f) {
			return nil, &specerr.ConfigError{Option: "features", Value: string(f), Message: "unknown feature"}
		}
		s.features[f] = true
	}
	return s, nil
}

func (s *Selector) Active() model.APIVersion {
	return s.active
}

// Enabled reports whether a provider gated by f participates.
func (s *Selector) Enabled(f Feature) bool {
	return f == "" || s.features[f]
}

// EnabledFeatures returns the enabled features in sorted order.
func (s *Selector) EnabledFeatures() []Feature {
	out := make([]Feature, 0, len(s.features))
	for f := range s.features {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Select keeps provider order and returns the active variant of every enabled
// provider, along with the providers left out and why.
func (s *Selector) Select(providers []Provider) ([]Selected, []Skipped, error) {
	seen := make(map[string]bool, len(providers))
	var selected []Selected
	var skipped []Skipped

	for _, p := range providers {
		if p.Name == "" {
			return nil, nil, fmt.Errorf("provider without a name")
		}
		if seen[p.Name] {
			return nil, nil, fmt.Errorf("provider %q listed twice", p.Name)
		}
		seen[p.Name] = true

		if !s.Enabled(p.Feature) {
			skipped = append(skipped, Skipped{Name: p.Name, Reason: fmt.Sprintf("feature %q disabled", p.Feature)})
			continue
		}
		describe, ok := p.Variants[s.active]
		if !ok || describe == nil {
			skipped = append(skipped, Skipped{Name: p.Name, Reason: fmt.Sprintf("no %s variant", s.active)})
			continue
		}
		selected = append(selected, Selected{Name: p.Name, Describe: describe})
	}

	return selected, skipped, nil
}
