package types

import (
	"fmt"

	"github.com/samber/lo"
)

// PaymentType is the category a payment is classified under. The labels are
// the wire values the mobile-money integration has always used, so they are
// kept verbatim.
type PaymentType string

const (
	// PaymentTypeAccessFee is the one-time enrollment fee, priced per
	// hectare of enrolled land.
	PaymentTypeAccessFee PaymentType = "droit_acces"
	// PaymentTypeContribution is the recurring dues payment, priced per
	// elapsed day at a fixed daily rate.
	PaymentTypeContribution PaymentType = "contribution_annuelle"
)

func (t PaymentType) String() string {
	return string(t)
}

func (t PaymentType) Validate() error {
	allowed := []PaymentType{
		PaymentTypeAccessFee,
		PaymentTypeContribution,
	}
	if !lo.Contains(allowed, t) {
		return fmt.Errorf("invalid payment type: %s", t)
	}
	return nil
}

// PaymentMode is how the money moved. Only mobile money reaches this core
// today; the column exists because the normalized ledger schema carries it.
type PaymentMode string

const (
	PaymentModeMobileMoney PaymentMode = "mobile_money"
)

func (m PaymentMode) String() string {
	return string(m)
}

// ArrearsStatus classifies a subscriber's recurring-dues standing.
type ArrearsStatus string

const (
	ArrearsStatusUpToDate ArrearsStatus = "a_jour"
	ArrearsStatusLate     ArrearsStatus = "en_retard"
	ArrearsStatusUnknown  ArrearsStatus = "inconnu"
)

func (s ArrearsStatus) String() string {
	return string(s)
}

// IncoherenceType labels a cross-ledger inconsistency found by the
// reconciliation sweep.
type IncoherenceType string

const (
	// IncoherenceOrphanTransaction: the provider ledger references a
	// subscriber that no longer resolves. Never auto-repaired.
	IncoherenceOrphanTransaction IncoherenceType = "souscripteur_introuvable"
	// IncoherenceMissingEntry: no normalized ledger entry correlates to the
	// provider transaction. Repaired by re-deriving the entry.
	IncoherenceMissingEntry IncoherenceType = "ecriture_manquante"
	// IncoherenceRepairFailed: the re-derived insert failed even after
	// retries; surfaced for the next sweep run.
	IncoherenceRepairFailed IncoherenceType = "erreur_reparation"
)

func (t IncoherenceType) String() string {
	return string(t)
}
