package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/markvilla/selfcheckout-api/internal/domain/entity"
	"github.com/markvilla/selfcheckout-api/internal/domain/repository"
	"github.com/markvilla/selfcheckout-api/pkg/apperror"
	"github.com/markvilla/selfcheckout-api/pkg/qrpayload"
	"github.com/markvilla/selfcheckout-api/pkg/txnumber"
)

// CheckoutService owns the customer-side half of the handoff: the pending
// cart stash, payload encoding for the scannable QR, and submission to the
// remote transaction service.
type CheckoutService struct {
	stash       repository.CartStashRepository
	gateway     repository.TransactionGateway
	generator   *txnumber.Generator
	storeOrigin string
	qrEndpoint  string
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	stash repository.CartStashRepository,
	gateway repository.TransactionGateway,
	generator *txnumber.Generator,
	storeOrigin string,
	qrEndpoint string,
) *CheckoutService {
	return &CheckoutService{
		stash:       stash,
		gateway:     gateway,
		generator:   generator,
		storeOrigin: storeOrigin,
		qrEndpoint:  qrEndpoint,
	}
}

// HandoffResult is the scannable outcome of encoding a cart or store entry.
type HandoffResult struct {
	Reference entity.TransactionReference `json:"reference"`
	Payload   string                      `json:"payload"`
	ImageURL  string                      `json:"image_url"`
}

// StartCart begins a fresh pending cart for a terminal, replacing any
// previous stash.
func (s *CheckoutService) StartCart(ctx context.Context, terminalID uuid.UUID, businessID string) (*entity.PendingCart, error) {
	if businessID == "" {
		return nil, apperror.NewBadRequestError("Business ID is required")
	}

	cart := &entity.PendingCart{
		TerminalID: terminalID,
		BusinessID: businessID,
	}
	if err := s.stash.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem appends a line item to the terminal's pending cart. Adding an
// already-present product increments its quantity.
func (s *CheckoutService) AddItem(ctx context.Context, terminalID uuid.UUID, item entity.CartItem) (*entity.PendingCart, error) {
	if item.Quantity <= 0 {
		return nil, apperror.NewBadRequestError("Quantity must be greater than zero")
	}
	if item.UnitPrice < 0 {
		return nil, apperror.NewBadRequestError("Unit price cannot be negative")
	}
	if item.ProductID == "" {
		return nil, apperror.NewBadRequestError("Product ID is required")
	}

	cart, err := s.requireCart(ctx, terminalID)
	if err != nil {
		return nil, err
	}

	items := cart.Items()
	merged := false
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, item)
	}

	if err := cart.SetItems(items); err != nil {
		return nil, err
	}
	if err := s.stash.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops a product line from the pending cart.
func (s *CheckoutService) RemoveItem(ctx context.Context, terminalID uuid.UUID, productID string) (*entity.PendingCart, error) {
	cart, err := s.requireCart(ctx, terminalID)
	if err != nil {
		return nil, err
	}

	items := cart.Items()
	kept := items[:0]
	for _, it := range items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return nil, apperror.NewNotFoundError("Cart item")
	}

	if err := cart.SetItems(kept); err != nil {
		return nil, err
	}
	if err := s.stash.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// CurrentCart returns the terminal's pending cart.
func (s *CheckoutService) CurrentCart(ctx context.Context, terminalID uuid.UUID) (*entity.PendingCart, error) {
	return s.requireCart(ctx, terminalID)
}

// Abandon clears the terminal's pending cart without creating a transaction.
func (s *CheckoutService) Abandon(ctx context.Context, terminalID uuid.UUID) error {
	return s.stash.Delete(ctx, terminalID)
}

// Handoff assigns a transaction number to the pending cart and encodes it as
// a scannable payload. The cart stays stashed until submitted or abandoned.
func (s *CheckoutService) Handoff(ctx context.Context, terminalID uuid.UUID) (*HandoffResult, error) {
	cart, err := s.requireCart(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	items := cart.Items()
	if len(items) == 0 {
		return nil, apperror.NewBadRequestError("Cart is empty")
	}

	if cart.TransactionNumber == "" {
		cart.TransactionNumber = s.generator.Generate(cart.BusinessID)
		if err := s.stash.Save(ctx, cart); err != nil {
			return nil, err
		}
	}

	payload, err := qrpayload.EncodeCart(cartPayload(cart))
	if err != nil {
		return nil, err
	}

	return &HandoffResult{
		Reference: cart.Reference(),
		Payload:   payload,
		ImageURL:  qrpayload.ImageURL(s.qrEndpoint, payload),
	}, nil
}

// Submit creates the transaction on the remote service and clears the stash.
// If the remote service rejects the transaction number as a duplicate, the
// number is regenerated once before surfacing the conflict.
func (s *CheckoutService) Submit(ctx context.Context, terminalID uuid.UUID) (*entity.TransactionReference, error) {
	cart, err := s.requireCart(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items()) == 0 {
		return nil, apperror.NewBadRequestError("Cart is empty")
	}
	if cart.TransactionNumber == "" {
		cart.TransactionNumber = s.generator.Generate(cart.BusinessID)
	}

	ref, err := s.gateway.CreateTransaction(ctx, cart)
	if isConflict(err) {
		cart.TransactionNumber = s.generator.Generate(cart.BusinessID)
		ref, err = s.gateway.CreateTransaction(ctx, cart)
	}
	if err != nil {
		return nil, err
	}

	if err := s.stash.Delete(ctx, terminalID); err != nil {
		return nil, err
	}
	return ref, nil
}

// StoreEntry encodes a store-entry reference as a scannable URL payload.
func (s *CheckoutService) StoreEntry(businessID string) (*HandoffResult, error) {
	if businessID == "" {
		return nil, apperror.NewBadRequestError("Business ID is required")
	}
	payload := qrpayload.EncodeStoreEntry(s.storeOrigin, businessID)
	return &HandoffResult{
		Reference: entity.TransactionReference{BusinessID: businessID},
		Payload:   payload,
		ImageURL:  qrpayload.ImageURL(s.qrEndpoint, payload),
	}, nil
}

// Scan decodes a scanned payload into a business reference. Decoding never
// fails outright: unrecognized input is passed through raw for the remote
// service to validate.
func (s *CheckoutService) Scan(raw string) (*qrpayload.Decoded, error) {
	if raw == "" {
		return nil, apperror.ErrInvalidPayload
	}
	decoded := qrpayload.Decode(raw)
	return &decoded, nil
}

func (s *CheckoutService) requireCart(ctx context.Context, terminalID uuid.UUID) (*entity.PendingCart, error) {
	cart, err := s.stash.Get(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, apperror.NewNotFoundError("Pending cart")
	}
	return cart, nil
}

func cartPayload(cart *entity.PendingCart) *qrpayload.CartPayload {
	items := cart.Items()
	payloadItems := make([]qrpayload.CartItem, 0, len(items))
	for _, it := range items {
		payloadItems = append(payloadItems, qrpayload.CartItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice.Float64(),
		})
	}
	return &qrpayload.CartPayload{
		BusinessID:        cart.BusinessID,
		TransactionNumber: cart.TransactionNumber,
		Items:             payloadItems,
	}
}

func isConflict(err error) bool {
	if err == nil {
		return false
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Code == http.StatusConflict
	}
	return false
}
