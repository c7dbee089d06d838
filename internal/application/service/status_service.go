package service

import (
	"context"
	"time"

	"github.com/markvilla/selfcheckout-api/internal/domain/entity"
	"github.com/markvilla/selfcheckout-api/internal/domain/repository"
)

// StatusService exposes transaction status reads and blocking waits over the
// remote transaction service.
type StatusService struct {
	gateway  repository.TransactionGateway
	interval time.Duration
}

// NewStatusService creates a new status service
func NewStatusService(gateway repository.TransactionGateway, interval time.Duration) *StatusService {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &StatusService{gateway: gateway, interval: interval}
}

// GetStatus performs a single status read.
func (s *StatusService) GetStatus(ctx context.Context, transactionID string) (*entity.StatusResult, error) {
	return s.gateway.GetPublicStatus(ctx, transactionID)
}

// WaitForCompletion blocks until the transaction reaches a terminal state or
// ctx is cancelled. Every call runs a fresh polling session; cancelling the
// context (e.g. the waiting client disconnects) tears the session down and
// suppresses any late in-flight result.
func (s *StatusService) WaitForCompletion(ctx context.Context, ref entity.TransactionReference) (string, error) {
	type outcome struct {
		tn  string
		err error
	}
	results := make(chan outcome, 1)

	poller := NewStatusPoller(s.gateway, s.interval)
	err := poller.Start(ctx, ref, PollCallbacks{
		OnCompleted: func(tn string) { results <- outcome{tn: tn} },
		OnError:     func(err error) { results <- outcome{err: err} },
	})
	if err != nil {
		return "", err
	}

	select {
	case <-ctx.Done():
		poller.Cancel()
		return "", ctx.Err()
	case o := <-results:
		return o.tn, o.err
	}
}
