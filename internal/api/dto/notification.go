package dto

import (
	"time"

	ierr "github.com/agripay/agripay/internal/errors"
	"github.com/agripay/agripay/internal/types"
	"github.com/agripay/agripay/internal/validator"
	"github.com/shopspring/decimal"
)

// NotifyPaymentRequest is the provider webhook body. Field names are the
// provider's wire contract and stay in French.
type NotifyPaymentRequest struct {
	TransactionID string          `json:"transaction_id" validate:"required"`
	Telephone     string          `json:"telephone" validate:"required"`
	Montant       decimal.Decimal `json:"montant"`
	// DatePaiement defaults to the delivery time when the provider omits it
	DatePaiement *time.Time `json:"date_paiement,omitempty"`
	// TypePaiement is the provider's advisory type hint. Classification is
	// derived from subscriber state; this is stored in the raw payload only.
	TypePaiement           string         `json:"type_paiement,omitempty"`
	DonneesSupplementaires types.Metadata `json:"donnees_supplementaires,omitempty"`
}

// Validate validates the notification request
func (r *NotifyPaymentRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Montant.IsZero() || r.Montant.IsNegative() {
		return ierr.NewError("invalid montant").
			WithHint("montant must be greater than 0").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PaidAt returns the payment timestamp, defaulting to now
func (r *NotifyPaymentRequest) PaidAt() time.Time {
	if r.DatePaiement != nil {
		return r.DatePaiement.UTC()
	}
	return time.Now().UTC()
}

// NotifyPaymentResponse acknowledges a recorded payment
type NotifyPaymentResponse struct {
	PaiementID     string            `json:"paiement_id"`
	SouscripteurID string            `json:"souscripteur_id"`
	TypePaiement   types.PaymentType `json:"type_paiement"`
	Montant        decimal.Decimal   `json:"montant"`
}
