package types

import (
	"testing"

	"github.com/agripay/agripay/internal/validator"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestQueryFilterValidate(t *testing.T) {
	validator.NewValidator()

	testCases := []struct {
		name    string
		filter  *QueryFilter
		wantErr bool
	}{
		{"defaults", NewDefaultQueryFilter(), false},
		{"no limit", NewNoLimitQueryFilter(), false},
		{"nil filter", nil, false},
		{"limit at upper bound", &QueryFilter{Limit: lo.ToPtr(1000)}, false},
		{"limit above upper bound", &QueryFilter{Limit: lo.ToPtr(1001)}, true},
		{"zero limit", &QueryFilter{Limit: lo.ToPtr(0)}, true},
		{"negative offset", &QueryFilter{Offset: lo.ToPtr(-1)}, true},
		{"unknown order", &QueryFilter{Order: lo.ToPtr("sideways")}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.filter.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
