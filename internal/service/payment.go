package service

import (
	"context"

	"github.com/agripay/agripay/internal/api/dto"
	"github.com/agripay/agripay/internal/domain/payment"
	"github.com/agripay/agripay/internal/domain/providertx"
	ierr "github.com/agripay/agripay/internal/errors"
	"github.com/agripay/agripay/internal/types"
	"github.com/samber/lo"
)

// PaymentService exposes read access to both ledgers
type PaymentService interface {
	GetPayment(ctx context.Context, id string) (*dto.PaymentResponse, error)
	ListPayments(ctx context.Context, filter *types.QueryFilter) (*dto.ListPaymentsResponse, error)
	ListProviderTransactions(ctx context.Context, filter *types.QueryFilter) (*dto.ListProviderTransactionsResponse, error)
}

type paymentService struct {
	ServiceParams
}

// NewPaymentService creates a new payment service
func NewPaymentService(params ServiceParams) PaymentService {
	return &paymentService{
		ServiceParams: params,
	}
}

func (s *paymentService) GetPayment(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	if id == "" {
		return nil, ierr.NewError("payment id is required").
			WithHint("Payment ID is required").
			Mark(ierr.ErrValidation)
	}

	pay, err := s.PaymentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewPaymentResponse(pay), nil
}

func (s *paymentService) ListPayments(ctx context.Context, filter *types.QueryFilter) (*dto.ListPaymentsResponse, error) {
	if filter == nil {
		filter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	pays, err := s.PaymentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.PaymentRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.ListPaymentsResponse{
		Items: lo.Map(pays, func(p *payment.Payment, _ int) *dto.PaymentResponse {
			return dto.NewPaymentResponse(p)
		}),
		Pagination: types.NewPaginationResponse(count, filter.GetLimit(), filter.GetOffset()),
	}, nil
}

func (s *paymentService) ListProviderTransactions(ctx context.Context, filter *types.QueryFilter) (*dto.ListProviderTransactionsResponse, error) {
	if filter == nil {
		filter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	txs, err := s.ProviderTxRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.ProviderTxRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.ListProviderTransactionsResponse{
		Items: lo.Map(txs, func(tx *providertx.ProviderTransaction, _ int) *dto.ProviderTransactionResponse {
			return dto.NewProviderTransactionResponse(tx)
		}),
		Pagination: types.NewPaginationResponse(count, filter.GetLimit(), filter.GetOffset()),
	}, nil
}
