package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lorean-shop/lorean/internal/billing"
	"github.com/lorean-shop/lorean/internal/domain"
	"github.com/lorean-shop/lorean/internal/repository"
)

// ReturnService manages the return request lifecycle:
// pending -> approved|rejected, approved -> refunded.
type ReturnService interface {
	CreateReturn(ctx context.Context, params CreateReturnParams) (domain.ReturnRequest, error)
	ApproveReturn(ctx context.Context, returnID uuid.UUID) (domain.ReturnRequest, error)
	RejectReturn(ctx context.Context, returnID uuid.UUID) (domain.ReturnRequest, error)

	// RefundReturn marks an approved return refunded, refunding the payment
	// at the provider when the order was prepaid.
	RefundReturn(ctx context.Context, returnID uuid.UUID) (domain.ReturnRequest, error)

	ListReturns(ctx context.Context, status string) ([]domain.ReturnRequest, error)
}

// CreateReturnParams is a shopper's return submission.
type CreateReturnParams struct {
	OrderID uuid.UUID
	Reason  string
	Details string
	Amount  float64
}

type returnService struct {
	repo     repository.Querier
	provider billing.Provider
	logger   zerolog.Logger
}

// NewReturnService creates a new ReturnService instance.
func NewReturnService(repo repository.Querier, provider billing.Provider, logger zerolog.Logger) ReturnService {
	return &returnService{
		repo:     repo,
		provider: provider,
		logger:   logger,
	}
}

func (s *returnService) CreateReturn(ctx context.Context, params CreateReturnParams) (domain.ReturnRequest, error) {
	order, err := s.repo.GetOrder(ctx, params.OrderID)
	if err != nil {
		if isNoRows(err) {
			return domain.ReturnRequest{}, domain.ErrOrderNotFound
		}
		return domain.ReturnRequest{}, fmt.Errorf("failed to get order: %w", err)
	}
	if params.Amount <= 0 || params.Amount > order.TotalAmount {
		return domain.ReturnRequest{}, domain.ErrInvalidReturnAmount
	}
	if params.Reason == "" {
		return domain.ReturnRequest{}, domain.Invalid("return.create", "reason is required")
	}

	return s.repo.CreateReturnRequest(ctx, repository.CreateReturnRequestParams{
		OrderID: params.OrderID,
		Reason:  params.Reason,
		Details: params.Details,
		Amount:  params.Amount,
	})
}

func (s *returnService) ApproveReturn(ctx context.Context, returnID uuid.UUID) (domain.ReturnRequest, error) {
	return s.transition(ctx, returnID, domain.ReturnStatusApproved)
}

func (s *returnService) RejectReturn(ctx context.Context, returnID uuid.UUID) (domain.ReturnRequest, error) {
	return s.transition(ctx, returnID, domain.ReturnStatusRejected)
}

func (s *returnService) RefundReturn(ctx context.Context, returnID uuid.UUID) (domain.ReturnRequest, error) {
	request, err := s.getReturn(ctx, returnID)
	if err != nil {
		return domain.ReturnRequest{}, err
	}
	if !domain.CanTransitionReturn(request.Status, domain.ReturnStatusRefunded) {
		return domain.ReturnRequest{}, domain.ErrReturnNotApproved
	}

	order, err := s.repo.GetOrder(ctx, request.OrderID)
	if err != nil && !isNoRows(err) {
		return domain.ReturnRequest{}, fmt.Errorf("failed to get order for refund: %w", err)
	}
	if err == nil && order.ProviderPaymentID != "" {
		if err := s.provider.RefundPayment(ctx, order.ProviderPaymentID, request.Amount); err != nil {
			return domain.ReturnRequest{}, err
		}
	}

	return s.applyStatus(ctx, request, domain.ReturnStatusRefunded)
}

func (s *returnService) ListReturns(ctx context.Context, status string) ([]domain.ReturnRequest, error) {
	return s.repo.ListReturnRequests(ctx, status)
}

func (s *returnService) transition(ctx context.Context, returnID uuid.UUID, to string) (domain.ReturnRequest, error) {
	request, err := s.getReturn(ctx, returnID)
	if err != nil {
		return domain.ReturnRequest{}, err
	}
	if !domain.CanTransitionReturn(request.Status, to) {
		return domain.ReturnRequest{}, domain.ErrReturnNotPending
	}
	return s.applyStatus(ctx, request, to)
}

func (s *returnService) getReturn(ctx context.Context, returnID uuid.UUID) (domain.ReturnRequest, error) {
	request, err := s.repo.GetReturnRequest(ctx, returnID)
	if err != nil {
		if isNoRows(err) {
			return domain.ReturnRequest{}, domain.ErrReturnNotFound
		}
		return domain.ReturnRequest{}, fmt.Errorf("failed to get return request: %w", err)
	}
	return request, nil
}

func (s *returnService) applyStatus(ctx context.Context, request domain.ReturnRequest, to string) (domain.ReturnRequest, error) {
	if err := s.repo.UpdateReturnStatus(ctx, request.ID, to); err != nil {
		if isNoRows(err) {
			return domain.ReturnRequest{}, domain.NotFound("return.update_status", "return request", request.ID.String())
		}
		return domain.ReturnRequest{}, fmt.Errorf("failed to update return status: %w", err)
	}
	request.Status = to
	return request, nil
}
