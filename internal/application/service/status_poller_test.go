package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/markvilla/selfcheckout-api/internal/domain/entity"
	"github.com/markvilla/selfcheckout-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGateway is a hand-written test double for the remote transaction
// service. Behavior is injected per test through function fields.
type stubGateway struct {
	getStatus func(ctx context.Context, transactionID string) (*entity.StatusResult, error)
	getSale   func(ctx context.Context, transactionNumber string) (*entity.SaleRecord, error)
	create    func(ctx context.Context, cart *entity.PendingCart) (*entity.TransactionReference, error)
}

func (g *stubGateway) GetPublicStatus(ctx context.Context, transactionID string) (*entity.StatusResult, error) {
	return g.getStatus(ctx, transactionID)
}

func (g *stubGateway) GetSaleDetails(ctx context.Context, transactionNumber string) (*entity.SaleRecord, error) {
	return g.getSale(ctx, transactionNumber)
}

func (g *stubGateway) CreateTransaction(ctx context.Context, cart *entity.PendingCart) (*entity.TransactionReference, error) {
	return g.create(ctx, cart)
}

// scriptedStatuses returns a gateway whose status endpoint walks through the
// given results one call at a time, holding on the last one.
func scriptedStatuses(calls *int32, results ...entity.StatusResult) *stubGateway {
	return &stubGateway{
		getStatus: func(ctx context.Context, transactionID string) (*entity.StatusResult, error) {
			n := atomic.AddInt32(calls, 1)
			if int(n) > len(results) {
				n = int32(len(results))
			}
			r := results[n-1]
			return &r, nil
		},
	}
}

func waitDone(t *testing.T, p *StatusPoller) {
	t.Helper()
	select {
	case <-p.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop in time")
	}
}

var testRef = entity.TransactionReference{
	BusinessID:        "17",
	TransactionNumber: "T-17-20260829120000-0042",
}

func TestPollerCompletesExactlyOnce(t *testing.T) {
	var calls int32
	gw := scriptedStatuses(&calls,
		entity.StatusResult{Status: enum.TransactionPending},
		entity.StatusResult{Status: enum.TransactionPending},
		entity.StatusResult{Status: enum.TransactionPending},
		entity.StatusResult{Status: enum.TransactionCompleted, TransactionNumber: testRef.TransactionNumber},
	)

	p := NewStatusPoller(gw, 5*time.Millisecond)
	var completed int32
	var gotTN string
	err := p.Start(context.Background(), testRef, PollCallbacks{
		OnCompleted: func(tn string) {
			atomic.AddInt32(&completed, 1)
			gotTN = tn
		},
		OnError: func(err error) { t.Errorf("unexpected error callback: %v", err) },
	})
	require.NoError(t, err)
	waitDone(t, p)

	assert.Equal(t, int32(1), atomic.LoadInt32(&completed))
	assert.Equal(t, testRef.TransactionNumber, gotTN)
	assert.Equal(t, PollerCompleted, p.State())
	// Polling stops at the terminal status; no further requests are issued.
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
}

func TestPollerFailedStatus(t *testing.T) {
	var calls int32
	gw := scriptedStatuses(&calls,
		entity.StatusResult{Status: enum.TransactionPending},
		entity.StatusResult{Status: enum.TransactionFailed},
	)

	p := NewStatusPoller(gw, 5*time.Millisecond)
	var gotErr error
	err := p.Start(context.Background(), testRef, PollCallbacks{
		OnCompleted: func(tn string) { t.Errorf("unexpected completion: %s", tn) },
		OnError:     func(err error) { gotErr = err },
	})
	require.NoError(t, err)
	waitDone(t, p)

	assert.Error(t, gotErr)
	assert.Equal(t, PollerFailed, p.State())
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestPollerTransportError(t *testing.T) {
	transportErr := errors.New("connection refused")
	gw := &stubGateway{
		getStatus: func(ctx context.Context, transactionID string) (*entity.StatusResult, error) {
			return nil, transportErr
		},
	}

	p := NewStatusPoller(gw, 5*time.Millisecond)
	var gotErr error
	err := p.Start(context.Background(), testRef, PollCallbacks{
		OnError: func(err error) { gotErr = err },
	})
	require.NoError(t, err)
	waitDone(t, p)

	assert.ErrorIs(t, gotErr, transportErr)
	assert.Equal(t, PollerFailed, p.State())
}

// Cancelling while a request is in flight must suppress the callback even if
// the request later resolves with a terminal status.
func TestPollerCancelDiscardsInFlightResponse(t *testing.T) {
	inFlight := make(chan struct{})
	release := make(chan struct{})
	gw := &stubGateway{
		getStatus: func(ctx context.Context, transactionID string) (*entity.StatusResult, error) {
			close(inFlight)
			<-release
			return &entity.StatusResult{Status: enum.TransactionCompleted}, nil
		},
	}

	p := NewStatusPoller(gw, 5*time.Millisecond)
	var mu sync.Mutex
	fired := false
	err := p.Start(context.Background(), testRef, PollCallbacks{
		OnCompleted: func(string) { mu.Lock(); fired = true; mu.Unlock() },
		OnError:     func(error) { mu.Lock(); fired = true; mu.Unlock() },
	})
	require.NoError(t, err)

	<-inFlight
	p.Cancel()
	close(release)
	waitDone(t, p)

	mu.Lock()
	defer mu.Unlock()
	assert.False(t, fired, "callback fired after cancellation")
	assert.Equal(t, PollerCancelled, p.State())
}

func TestPollerCancelIsIdempotent(t *testing.T) {
	gw := scriptedStatuses(new(int32), entity.StatusResult{Status: enum.TransactionPending})
	p := NewStatusPoller(gw, time.Hour)
	require.NoError(t, p.Start(context.Background(), testRef, PollCallbacks{}))

	p.Cancel()
	p.Cancel()
	waitDone(t, p)
	assert.Equal(t, PollerCancelled, p.State())
}

func TestPollerIsSingleUse(t *testing.T) {
	gw := scriptedStatuses(new(int32), entity.StatusResult{Status: enum.TransactionCompleted})
	p := NewStatusPoller(gw, 5*time.Millisecond)

	require.NoError(t, p.Start(context.Background(), testRef, PollCallbacks{}))
	assert.Error(t, p.Start(context.Background(), testRef, PollCallbacks{}))
	waitDone(t, p)

	// A finished poller cannot be restarted either.
	assert.Error(t, p.Start(context.Background(), testRef, PollCallbacks{}))
}

func TestPollerRequiresReference(t *testing.T) {
	p := NewStatusPoller(&stubGateway{}, 5*time.Millisecond)
	err := p.Start(context.Background(), entity.TransactionReference{}, PollCallbacks{})
	assert.Error(t, err)
	assert.Equal(t, PollerIdle, p.State())
}

func TestWaitForCompletion(t *testing.T) {
	var calls int32
	gw := scriptedStatuses(&calls,
		entity.StatusResult{Status: enum.TransactionPending},
		entity.StatusResult{Status: enum.TransactionCompleted, TransactionNumber: testRef.TransactionNumber},
	)

	s := NewStatusService(gw, 5*time.Millisecond)
	tn, err := s.WaitForCompletion(context.Background(), testRef)
	require.NoError(t, err)
	assert.Equal(t, testRef.TransactionNumber, tn)
}

func TestWaitForCompletionClientDisconnect(t *testing.T) {
	gw := scriptedStatuses(new(int32), entity.StatusResult{Status: enum.TransactionPending})
	s := NewStatusService(gw, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := s.WaitForCompletion(ctx, testRef)
	assert.ErrorIs(t, err, context.Canceled)
}
