package dto

import (
	"time"

	"github.com/agripay/agripay/internal/domain/payment"
	"github.com/agripay/agripay/internal/domain/providertx"
	"github.com/agripay/agripay/internal/types"
	"github.com/shopspring/decimal"
)

// PaymentResponse is the API shape of a normalized ledger entry
type PaymentResponse struct {
	ID               string            `json:"id"`
	SouscripteurID   string            `json:"souscripteur_id"`
	ParcelleID       string            `json:"parcelle_id,omitempty"`
	TypePaiement     types.PaymentType `json:"type_paiement"`
	MontantDu        decimal.Decimal   `json:"montant_du"`
	MontantPaye      decimal.Decimal   `json:"montant_paye"`
	NombreVersements int               `json:"nombre_versements"`
	DatePaiement     time.Time         `json:"date_paiement"`
	ModePaiement     types.PaymentMode `json:"mode_paiement"`
	TransactionID    string            `json:"transaction_id"`
	AnneeFiscale     string            `json:"annee_fiscale"`
	CreatedAt        time.Time         `json:"created_at"`
}

// NewPaymentResponse converts a normalized entry to the API shape
func NewPaymentResponse(p *payment.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:               p.ID,
		SouscripteurID:   p.SubscriberID,
		ParcelleID:       p.ParcelID,
		TypePaiement:     p.PaymentType,
		MontantDu:        p.AmountDue,
		MontantPaye:      p.AmountPaid,
		NombreVersements: p.InstallmentCount,
		DatePaiement:     p.PaidAt,
		ModePaiement:     p.PaymentMode,
		TransactionID:    p.ProviderTxID,
		AnneeFiscale:     p.FiscalYear,
		CreatedAt:        p.CreatedAt,
	}
}

// ListPaymentsResponse is a paginated list of normalized entries
type ListPaymentsResponse struct {
	Items      []*PaymentResponse       `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}

// ProviderTransactionResponse is the API shape of a provider ledger entry
type ProviderTransactionResponse struct {
	ID             string            `json:"id"`
	TransactionID  string            `json:"transaction_id"`
	Telephone      string            `json:"telephone"`
	Montant        decimal.Decimal   `json:"montant"`
	TypePaiement   types.PaymentType `json:"type_paiement"`
	DatePaiement   time.Time         `json:"date_paiement"`
	SouscripteurID string            `json:"souscripteur_id,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

// NewProviderTransactionResponse converts a provider entry to the API shape
func NewProviderTransactionResponse(tx *providertx.ProviderTransaction) *ProviderTransactionResponse {
	return &ProviderTransactionResponse{
		ID:             tx.ID,
		TransactionID:  tx.TransactionID,
		Telephone:      tx.Telephone,
		Montant:        tx.Amount,
		TypePaiement:   tx.PaymentType,
		DatePaiement:   tx.PaidAt,
		SouscripteurID: tx.SubscriberID,
		CreatedAt:      tx.CreatedAt,
	}
}

// ListProviderTransactionsResponse is a paginated list of provider entries
type ListProviderTransactionsResponse struct {
	Items      []*ProviderTransactionResponse `json:"items"`
	Pagination types.PaginationResponse       `json:"pagination"`
}
