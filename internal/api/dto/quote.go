package dto

import (
	"github.com/agripay/agripay/internal/types"
	"github.com/shopspring/decimal"
)

// QuoteSubscriberInfo echoes the resolved subscriber on a quote
type QuoteSubscriberInfo struct {
	SouscripteurID    string          `json:"souscripteur_id"`
	NomComplet        string          `json:"nom_complet"`
	Telephone         string          `json:"telephone"`
	SuperficieTotale  decimal.Decimal `json:"superficie_totale"`
	NombreDeParcelles int             `json:"nombre_de_parcelles"`
}

// PromotionDisclosure is attached to a quote when a promotion window
// covers the quote time
type PromotionDisclosure struct {
	Nom           string          `json:"nom"`
	TauxRemise    decimal.Decimal `json:"taux_remise"`
	MontantNormal decimal.Decimal `json:"montant_normal"`
	Economie      decimal.Decimal `json:"economie"`
}

// QuoteResponse is the amount the subscriber should pay next, with the
// computation inputs disclosed
type QuoteResponse struct {
	Souscripteur      QuoteSubscriberInfo  `json:"souscripteur"`
	TypePaiement      types.PaymentType    `json:"type_paiement"`
	MontantRecommande decimal.Decimal      `json:"montant_recommande"`
	Statut            types.ArrearsStatus  `json:"statut"`
	Promotion         *PromotionDisclosure `json:"promotion,omitempty"`
}
