package service

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/markvilla/selfcheckout-api/internal/domain/entity"
	"github.com/markvilla/selfcheckout-api/internal/domain/enum"
	"github.com/markvilla/selfcheckout-api/internal/domain/repository"
	"github.com/markvilla/selfcheckout-api/pkg/apperror"
)

// DefaultPollInterval is how often the poller queries the remote transaction
// service when no interval is configured.
const DefaultPollInterval = 3 * time.Second

// PollerState is the lifecycle state of a StatusPoller.
type PollerState int

const (
	PollerIdle PollerState = iota
	PollerPolling
	PollerCompleted
	PollerFailed
	PollerCancelled
)

func (s PollerState) String() string {
	return [...]string{"Idle", "Polling", "Completed", "Failed", "Cancelled"}[s]
}

// PollCallbacks are invoked at most once, on the terminal transition of a
// polling session. Neither callback ever fires after cancellation.
type PollCallbacks struct {
	// OnCompleted receives the finalized transaction number.
	OnCompleted func(transactionNumber string)
	// OnError receives the terminal failure: a failed status from the remote
	// service or a transport error. The message distinguishes the two.
	OnError func(err error)
}

// StatusPoller repeatedly queries the remote transaction service for one
// transaction until it observes a terminal state, then notifies exactly once
// and stops. One poller owns one timer and one session; it is not resumable —
// a new session requires a fresh poller.
type StatusPoller struct {
	gateway  repository.TransactionGateway
	interval time.Duration

	mu     sync.Mutex
	state  PollerState
	cancel context.CancelFunc
	done   chan struct{}
}

// NewStatusPoller creates a poller in the idle state.
func NewStatusPoller(gateway repository.TransactionGateway, interval time.Duration) *StatusPoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &StatusPoller{
		gateway:  gateway,
		interval: interval,
		state:    PollerIdle,
	}
}

// State returns the current poller state.
func (p *StatusPoller) State() PollerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Start begins polling for the given reference. Only an idle poller can
// start; the first request is issued one interval after Start. Each request
// is awaited before the next is scheduled, so a slow remote service never
// causes overlapping in-flight requests.
func (p *StatusPoller) Start(ctx context.Context, ref entity.TransactionReference, cb PollCallbacks) error {
	if ref.TransactionNumber == "" {
		return apperror.NewBadRequestError("Transaction reference is required to start polling")
	}

	p.mu.Lock()
	if p.state != PollerIdle {
		p.mu.Unlock()
		return apperror.NewBadRequestError("Poller already used; start a new session with a fresh poller")
	}
	pollCtx, cancel := context.WithCancel(ctx)
	p.state = PollerPolling
	p.cancel = cancel
	p.done = make(chan struct{})
	p.mu.Unlock()

	go p.loop(pollCtx, ref, cb)
	return nil
}

// Cancel tears down a polling session. Idempotent. After Cancel returns the
// timer is released and no callback will ever fire, even if an in-flight
// request later resolves.
func (p *StatusPoller) Cancel() {
	p.mu.Lock()
	if p.state == PollerPolling {
		p.state = PollerCancelled
		p.cancel()
	}
	p.mu.Unlock()
}

// Done is closed when the polling goroutine has fully stopped.
func (p *StatusPoller) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

func (p *StatusPoller) loop(ctx context.Context, ref entity.TransactionReference, cb PollCallbacks) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.transition(PollerCancelled)
			return
		case <-ticker.C:
		}

		result, err := p.gateway.GetPublicStatus(ctx, ref.TransactionNumber)

		// A response arriving after cancellation is a no-op, not an error.
		if ctx.Err() != nil {
			p.transition(PollerCancelled)
			return
		}

		if err != nil {
			if p.transition(PollerFailed) && cb.OnError != nil {
				cb.OnError(err)
			}
			return
		}

		switch result.Status {
		case enum.TransactionCompleted:
			tn := result.TransactionNumber
			if tn == "" {
				tn = ref.TransactionNumber
			}
			if p.transition(PollerCompleted) && cb.OnCompleted != nil {
				cb.OnCompleted(tn)
			}
			return
		case enum.TransactionFailed:
			if p.transition(PollerFailed) && cb.OnError != nil {
				cb.OnError(apperror.NewAppError(http.StatusUnprocessableEntity,
					"Transaction was marked failed by the transaction service"))
			}
			return
		default:
			// still pending, keep polling
		}
	}
}

// transition moves the poller to a terminal state. It only succeeds from
// PollerPolling, which is what makes the terminal notification exactly-once.
func (p *StatusPoller) transition(to PollerState) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != PollerPolling {
		return false
	}
	p.state = to
	return true
}
