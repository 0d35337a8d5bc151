package dto

import (
	"github.com/agripay/agripay/internal/types"
	"github.com/shopspring/decimal"
)

// Incoherence is a single discrepancy found during a reconciliation sweep
type Incoherence struct {
	TransactionID string                `json:"transaction_id"`
	Type          types.IncoherenceType `json:"type"`
	Telephone     string                `json:"telephone"`
	Montant       decimal.Decimal       `json:"montant"`
	Detail        string                `json:"detail,omitempty"`
}

// ReconciliationSummary reports the outcome of a full sweep
type ReconciliationSummary struct {
	TotalVerifies int           `json:"total_verifies"`
	Incoherences  []Incoherence `json:"incoherences"`
	Corriges      int           `json:"corriges"`
}
