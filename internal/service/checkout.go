package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lorean-shop/lorean/internal/billing"
	"github.com/lorean-shop/lorean/internal/cart"
	"github.com/lorean-shop/lorean/internal/domain"
	"github.com/lorean-shop/lorean/internal/realtime"
	"github.com/lorean-shop/lorean/internal/repository"
	"github.com/lorean-shop/lorean/internal/tax"
)

// FlatShippingRate is the single shipping tier. Rate selection by weight or
// carrier quotes is an external concern.
const FlatShippingRate = 7.95

// CheckoutService converts a cart into an order with frozen totals.
type CheckoutService interface {
	// Checkout creates a pending order from the cart: snapshot items,
	// compute totals, freeze the tax breakdown, decrement stock, and for
	// prepaid methods open a payment intent. The cart itself is untouched;
	// clearing it is the caller's follow-up.
	Checkout(ctx context.Context, params CheckoutParams) (*CheckoutResult, error)
}

// CheckoutParams is the shopper's checkout submission.
type CheckoutParams struct {
	Cart           *cart.Cart
	Country        string
	PaymentMethod  string
	CustomerEmail  string
	DiscountAmount float64
}

// CheckoutResult is the created order plus, for card payments, the client
// secret the storefront needs to confirm the charge.
type CheckoutResult struct {
	Order               domain.Order
	PaymentClientSecret string
}

type checkoutService struct {
	repo       repository.Querier
	calculator tax.Calculator
	provider   billing.Provider
	publisher  realtime.Publisher
	logger     zerolog.Logger
}

// NewCheckoutService creates a new CheckoutService instance.
func NewCheckoutService(
	repo repository.Querier,
	calculator tax.Calculator,
	provider billing.Provider,
	publisher realtime.Publisher,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		repo:       repo,
		calculator: calculator,
		provider:   provider,
		publisher:  publisher,
		logger:     logger,
	}
}

func (s *checkoutService) Checkout(ctx context.Context, params CheckoutParams) (*CheckoutResult, error) {
	if params.Cart == nil || len(params.Cart.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	if params.PaymentMethod != domain.PaymentMethodCOD &&
		params.PaymentMethod != domain.PaymentMethodCard &&
		params.PaymentMethod != domain.PaymentMethodWallet {
		return nil, domain.Invalid("checkout", "unknown payment method")
	}
	if params.DiscountAmount < 0 {
		return nil, domain.Invalid("checkout", "discount cannot be negative")
	}

	items := make([]domain.OrderItem, 0, len(params.Cart.Items))
	for _, line := range params.Cart.Items {
		items = append(items, domain.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}
	subtotal := params.Cart.Subtotal()

	// Tax on the cart subtotal. The product identifier goes along when the
	// cart holds a single product so per-product overrides apply; mixed
	// carts are taxed at the country's base rules.
	productID := ""
	if len(items) == 1 {
		productID = items[0].ProductID.String()
	}
	taxResult, err := s.calculator.CalculateTax(ctx, subtotal, params.Country, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate tax: %w", err)
	}

	shipping := FlatShippingRate
	total := subtotal + shipping + taxResult.TaxAmount - params.DiscountAmount

	shortID, err := GenerateOrderShortID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order reference: %w", err)
	}

	// Reserve stock before the order row exists. On a mid-cart failure the
	// already-reserved lines are compensated; there is no cross-row
	// transaction promise.
	decremented := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		if err := s.repo.DecrementProductStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.restoreStock(ctx, decremented)
			if isNoRows(err) {
				return nil, domain.ErrInsufficientStock
			}
			return nil, fmt.Errorf("failed to reserve stock: %w", err)
		}
		decremented = append(decremented, item)
	}

	var clientSecret, providerPaymentID string
	if params.PaymentMethod == domain.PaymentMethodCard || params.PaymentMethod == domain.PaymentMethodWallet {
		intent, err := s.provider.CreatePaymentIntent(ctx, billing.CreatePaymentIntentParams{
			Amount:        total,
			OrderShortID:  shortID,
			CustomerEmail: params.CustomerEmail,
		})
		if err != nil {
			s.restoreStock(ctx, decremented)
			return nil, err
		}
		clientSecret = intent.ClientSecret
		providerPaymentID = intent.ProviderPaymentID
	}

	order := domain.Order{
		ShortID:        shortID,
		Status:         domain.OrderStatusPending,
		Items:          items,
		SubtotalAmount: subtotal,
		ShippingAmount: shipping,
		TaxAmount:      taxResult.TaxAmount,
		DiscountAmount: params.DiscountAmount,
		TotalAmount:    total,
		TaxBreakdown:   taxResult.Breakdown,
		PaymentMethod:  params.PaymentMethod,
	}
	if err := order.ValidateTotals(); err != nil {
		s.restoreStock(ctx, decremented)
		return nil, err
	}

	created, err := s.repo.CreateOrder(ctx, repository.CreateOrderParams{
		ShortID:           shortID,
		Items:             items,
		SubtotalAmount:    subtotal,
		ShippingAmount:    shipping,
		TaxAmount:         taxResult.TaxAmount,
		DiscountAmount:    params.DiscountAmount,
		TotalAmount:       total,
		TaxBreakdown:      taxResult.Breakdown,
		PaymentMethod:     params.PaymentMethod,
		CustomerEmail:     params.CustomerEmail,
		ProviderPaymentID: providerPaymentID,
	})
	if err != nil {
		s.restoreStock(ctx, decremented)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.publishOrderInsert(created)
	return &CheckoutResult{Order: created, PaymentClientSecret: clientSecret}, nil
}

func (s *checkoutService) restoreStock(ctx context.Context, items []domain.OrderItem) {
	for _, item := range items {
		if err := s.repo.RestoreProductStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.Error().Err(err).
				Str("product_id", item.ProductID.String()).
				Msg("failed to compensate stock reservation")
		}
	}
}

func (s *checkoutService) publishOrderInsert(order domain.Order) {
	payload, err := json.Marshal(order)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to encode order event")
		return
	}
	if err := s.publisher.Publish(realtime.ChangeEvent{
		Table:    realtime.TableOrders,
		Op:       realtime.OpInsert,
		RecordID: order.ID,
		Payload:  payload,
	}); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to publish order event")
	}
}
