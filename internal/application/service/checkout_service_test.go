package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/markvilla/selfcheckout-api/internal/domain/entity"
	infraRepo "github.com/markvilla/selfcheckout-api/internal/infrastructure/repository"
	"github.com/markvilla/selfcheckout-api/pkg/apperror"
	"github.com/markvilla/selfcheckout-api/pkg/money"
	"github.com/markvilla/selfcheckout-api/pkg/qrpayload"
	"github.com/markvilla/selfcheckout-api/pkg/txnumber"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqRand hands out suffixes in sequence so regenerated transaction numbers
// are distinct and predictable.
type seqRand struct{ next int }

func (r *seqRand) Intn(n int) int {
	v := r.next % n
	r.next++
	return v
}

func newTestCheckout(gw *stubGateway) (*CheckoutService, uuid.UUID) {
	clock := func() time.Time {
		return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	}
	svc := NewCheckoutService(
		infraRepo.NewMemoryCartStash(),
		gw,
		txnumber.NewGenerator(clock, &seqRand{}),
		"https://shop.example.com",
		"https://qr.example.com/render",
	)
	return svc, uuid.New()
}

func TestAddItemMergesQuantities(t *testing.T) {
	svc, terminal := newTestCheckout(&stubGateway{})
	ctx := context.Background()

	_, err := svc.StartCart(ctx, terminal, "17")
	require.NoError(t, err)

	item := entity.CartItem{ProductID: "p1", Name: "Rice 5kg", Quantity: 1, UnitPrice: money.Cents(3675)}
	_, err = svc.AddItem(ctx, terminal, item)
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, terminal, item)
	require.NoError(t, err)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, money.Cents(7350), cart.Total())
}

func TestAddItemValidation(t *testing.T) {
	svc, terminal := newTestCheckout(&stubGateway{})
	ctx := context.Background()
	_, err := svc.StartCart(ctx, terminal, "17")
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, terminal, entity.CartItem{ProductID: "p1", Quantity: 0, UnitPrice: 100})
	assert.Error(t, err)
	_, err = svc.AddItem(ctx, terminal, entity.CartItem{ProductID: "", Quantity: 1, UnitPrice: 100})
	assert.Error(t, err)
	_, err = svc.AddItem(ctx, terminal, entity.CartItem{ProductID: "p1", Quantity: 1, UnitPrice: -1})
	assert.Error(t, err)
}

func TestRemoveItem(t *testing.T) {
	svc, terminal := newTestCheckout(&stubGateway{})
	ctx := context.Background()
	_, err := svc.StartCart(ctx, terminal, "17")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, terminal, entity.CartItem{ProductID: "p1", Name: "Soap", Quantity: 1, UnitPrice: 500})
	require.NoError(t, err)

	cart, err := svc.RemoveItem(ctx, terminal, "p1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items())

	_, err = svc.RemoveItem(ctx, terminal, "p1")
	assert.Error(t, err)
}

func TestCurrentCartWithoutStash(t *testing.T) {
	svc, terminal := newTestCheckout(&stubGateway{})
	_, err := svc.CurrentCart(context.Background(), terminal)
	assert.Error(t, err)
}

func TestHandoffAssignsStableNumber(t *testing.T) {
	svc, terminal := newTestCheckout(&stubGateway{})
	ctx := context.Background()
	_, err := svc.StartCart(ctx, terminal, "17")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, terminal, entity.CartItem{ProductID: "p1", Name: "Rice 5kg", Quantity: 1, UnitPrice: 3675})
	require.NoError(t, err)

	first, err := svc.Handoff(ctx, terminal)
	require.NoError(t, err)
	assert.Equal(t, "T-17-20260829120000-0000", first.Reference.TransactionNumber)
	assert.Contains(t, first.ImageURL, "https://qr.example.com/render?data=")

	// Re-rendering the QR screen must not mint a new number.
	second, err := svc.Handoff(ctx, terminal)
	require.NoError(t, err)
	assert.Equal(t, first.Reference.TransactionNumber, second.Reference.TransactionNumber)

	// The payload round-trips through the scan path.
	decoded, err := svc.Scan(first.Payload)
	require.NoError(t, err)
	assert.Equal(t, qrpayload.SourceJSON, decoded.Source)
	assert.Equal(t, "17", decoded.BusinessID)
	assert.Equal(t, first.Reference.TransactionNumber, decoded.TransactionNumber)
}

func TestHandoffEmptyCart(t *testing.T) {
	svc, terminal := newTestCheckout(&stubGateway{})
	ctx := context.Background()
	_, err := svc.StartCart(ctx, terminal, "17")
	require.NoError(t, err)

	_, err = svc.Handoff(ctx, terminal)
	assert.Error(t, err)
}

func TestSubmitClearsStash(t *testing.T) {
	var submitted []string
	gw := &stubGateway{
		create: func(ctx context.Context, cart *entity.PendingCart) (*entity.TransactionReference, error) {
			submitted = append(submitted, cart.TransactionNumber)
			ref := cart.Reference()
			return &ref, nil
		},
	}
	svc, terminal := newTestCheckout(gw)
	ctx := context.Background()
	_, err := svc.StartCart(ctx, terminal, "17")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, terminal, entity.CartItem{ProductID: "p1", Name: "Soap", Quantity: 1, UnitPrice: 500})
	require.NoError(t, err)

	ref, err := svc.Submit(ctx, terminal)
	require.NoError(t, err)
	assert.Equal(t, "17", ref.BusinessID)
	require.Len(t, submitted, 1)

	_, err = svc.CurrentCart(ctx, terminal)
	assert.Error(t, err)
}

// A duplicate transaction number is regenerated once before the conflict is
// surfaced to the terminal.
func TestSubmitRetriesDuplicateNumberOnce(t *testing.T) {
	var submitted []string
	gw := &stubGateway{
		create: func(ctx context.Context, cart *entity.PendingCart) (*entity.TransactionReference, error) {
			submitted = append(submitted, cart.TransactionNumber)
			if len(submitted) == 1 {
				return nil, apperror.NewConflictError("Transaction number already exists")
			}
			ref := cart.Reference()
			return &ref, nil
		},
	}
	svc, terminal := newTestCheckout(gw)
	ctx := context.Background()
	_, err := svc.StartCart(ctx, terminal, "17")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, terminal, entity.CartItem{ProductID: "p1", Name: "Soap", Quantity: 1, UnitPrice: 500})
	require.NoError(t, err)

	ref, err := svc.Submit(ctx, terminal)
	require.NoError(t, err)
	require.Len(t, submitted, 2)
	assert.NotEqual(t, submitted[0], submitted[1])
	assert.Equal(t, submitted[1], ref.TransactionNumber)
}

func TestSubmitGivesUpAfterSecondConflict(t *testing.T) {
	calls := 0
	gw := &stubGateway{
		create: func(ctx context.Context, cart *entity.PendingCart) (*entity.TransactionReference, error) {
			calls++
			return nil, apperror.NewConflictError("Transaction number already exists")
		},
	}
	svc, terminal := newTestCheckout(gw)
	ctx := context.Background()
	_, err := svc.StartCart(ctx, terminal, "17")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, terminal, entity.CartItem{ProductID: "p1", Name: "Soap", Quantity: 1, UnitPrice: 500})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, terminal)
	assert.Error(t, err)
	assert.Equal(t, 2, calls)

	// The cart survives a failed submission.
	_, err = svc.CurrentCart(ctx, terminal)
	assert.NoError(t, err)
}

func TestScan(t *testing.T) {
	svc, _ := newTestCheckout(&stubGateway{})

	_, err := svc.Scan("")
	assert.ErrorIs(t, err, apperror.ErrInvalidPayload)

	decoded, err := svc.Scan("https://shop.example.com/enter-store?business_id=17")
	require.NoError(t, err)
	assert.Equal(t, qrpayload.SourceURL, decoded.Source)
	assert.Equal(t, "17", decoded.BusinessID)

	// Unrecognized input passes through raw for the server to validate.
	decoded, err = svc.Scan("some-legacy-code")
	require.NoError(t, err)
	assert.Equal(t, qrpayload.SourceRaw, decoded.Source)
	assert.Equal(t, "some-legacy-code", decoded.BusinessID)
}

func TestStoreEntry(t *testing.T) {
	svc, _ := newTestCheckout(&stubGateway{})

	result, err := svc.StoreEntry("17")
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/enter-store?business_id=17", result.Payload)
	assert.Contains(t, result.ImageURL, "data=")

	_, err = svc.StoreEntry("")
	assert.Error(t, err)
}
