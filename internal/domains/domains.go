// Package domains lists the providers that make up the payments API.
package domains

import (
	"github.com/kolah/paydoc/internal/domains/common"
	"github.com/kolah/paydoc/internal/domains/frm"
	"github.com/kolah/paydoc/internal/domains/paymentmethods"
	"github.com/kolah/paydoc/internal/domains/payments"
	"github.com/kolah/paydoc/internal/domains/payouts"
	"github.com/kolah/paydoc/internal/domains/refunds"
	"github.com/kolah/paydoc/internal/domains/tokenization"
	"github.com/kolah/paydoc/internal/selector"
)

// All returns every provider in registration order.
func All() []selector.Provider {
	return []selector.Provider{
		common.Provider(),
		payments.Provider(),
		refunds.Provider(),
		payouts.Provider(),
		frm.Provider(),
		tokenization.Provider(),
		paymentmethods.Provider(),
	}
}
