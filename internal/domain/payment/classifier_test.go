package payment

import (
	"testing"

	"github.com/agripay/agripay/internal/domain/subscriber"
	"github.com/agripay/agripay/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name          string
		accessFeePaid decimal.Decimal
		want          types.PaymentType
	}{
		{
			name:          "no access fee recorded yet",
			accessFeePaid: decimal.Zero,
			want:          types.PaymentTypeAccessFee,
		},
		{
			name:          "access fee already paid",
			accessFeePaid: decimal.NewFromInt(60000),
			want:          types.PaymentTypeContribution,
		},
		{
			name:          "partial access fee still counts as paid",
			accessFeePaid: decimal.NewFromInt(1),
			want:          types.PaymentTypeContribution,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &subscriber.Subscriber{
				ID:                 "sub_test",
				Telephone:          "0700000001",
				TotalAccessFeePaid: tt.accessFeePaid,
			}
			assert.Equal(t, tt.want, Classify(sub))
		})
	}
}
