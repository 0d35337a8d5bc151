package payment

import (
	"github.com/agripay/agripay/internal/domain/subscriber"
	"github.com/agripay/agripay/internal/types"
)

// Classify decides the payment type from subscriber state alone: a
// subscriber who has never paid an access fee owes the access fee; everyone
// else is paying recurring dues. Type hints supplied by the provider are
// ignored. Ordering is enforced by what the ledger has already recorded,
// not by what the caller declares.
func Classify(sub *subscriber.Subscriber) types.PaymentType {
	if sub.TotalAccessFeePaid.IsZero() {
		return types.PaymentTypeAccessFee
	}
	return types.PaymentTypeContribution
}
