package types

import (
	ierr "github.com/agripay/agripay/internal/errors"
	"github.com/agripay/agripay/internal/validator"
	"github.com/samber/lo"
)

// BaseFilter defines common filtering capabilities
type BaseFilter interface {
	GetLimit() int
	GetOffset() int
	GetOrder() string
	Validate() error
	IsUnlimited() bool
}

// QueryFilter represents a generic query filter with optional fields
type QueryFilter struct {
	Limit  *int    `json:"limit,omitempty" form:"limit" validate:"omitempty,min=1,max=1000"`
	Offset *int    `json:"offset,omitempty" form:"offset" validate:"omitempty,min=0"`
	Order  *string `json:"order,omitempty" form:"order" validate:"omitempty,oneof=asc desc"`
}

// NewDefaultQueryFilter defines default values for query filters
func NewDefaultQueryFilter() *QueryFilter {
	return &QueryFilter{
		Limit:  lo.ToPtr(50),
		Offset: lo.ToPtr(0),
		Order:  lo.ToPtr(OrderDesc),
	}
}

// NewNoLimitQueryFilter returns a filter with no pagination limits, used by
// the reconciliation sweep which always scans the full provider ledger.
func NewNoLimitQueryFilter() *QueryFilter {
	return &QueryFilter{
		Order: lo.ToPtr(OrderDesc),
	}
}

const (
	OrderDesc = "desc"
	OrderAsc  = "asc"
)

// GetLimit returns the limit value or default if not set
func (f *QueryFilter) GetLimit() int {
	if f == nil || f.Limit == nil {
		return *NewDefaultQueryFilter().Limit
	}
	return *f.Limit
}

// GetOffset returns the offset value or default if not set
func (f *QueryFilter) GetOffset() int {
	if f == nil || f.Offset == nil {
		return *NewDefaultQueryFilter().Offset
	}
	return *f.Offset
}

// GetOrder returns the order value or default if not set
func (f *QueryFilter) GetOrder() string {
	if f == nil || f.Order == nil {
		return *NewDefaultQueryFilter().Order
	}
	return *f.Order
}

// IsUnlimited returns true if the filter has no limit
func (f *QueryFilter) IsUnlimited() bool {
	if f == nil {
		return false
	}
	return f.Limit == nil && f.Offset == nil
}

// Validate validates the query filter against its field tags
func (f *QueryFilter) Validate() error {
	if f == nil {
		return nil
	}
	// omitempty reads a dereferenced 0 as absent, so a literal limit=0
	// needs its own check
	if f.Limit != nil && *f.Limit < 1 {
		return ierr.NewError("limit must be at least 1").
			WithHint("limit must be between 1 and 1000").
			Mark(ierr.ErrValidation)
	}
	return validator.ValidateRequest(f)
}
