package service

import (
	"sync"
	"time"

	"github.com/markvilla/selfcheckout-api/internal/domain/entity"
	"github.com/markvilla/selfcheckout-api/internal/domain/enum"
	"github.com/markvilla/selfcheckout-api/pkg/apperror"
	"github.com/markvilla/selfcheckout-api/pkg/money"
)

// tenderSlot holds the latest tender input for one transaction: either the
// last explicitly typed amount or the exact-amount flag, never both.
type tenderSlot struct {
	exact     bool
	amount    money.Cents
	hasAmount bool
}

// PaymentService is the cash reconciliation engine. Tender input is staged
// per transaction behind a mutex so confirmation always reads the latest
// explicit input or the exact-amount flag — a confirm racing a UI update can
// never submit a stale point-in-time read.
type PaymentService struct {
	mu    sync.Mutex
	slots map[string]*tenderSlot
}

// NewPaymentService creates a new payment service
func NewPaymentService() *PaymentService {
	return &PaymentService{slots: make(map[string]*tenderSlot)}
}

// Reconcile validates sufficiency and computes change. Both inputs are
// already integral cents, so display-equal values compare equal and the
// change is exact and never negative.
func (s *PaymentService) Reconcile(total, tendered money.Cents) (money.Cents, error) {
	if tendered < total {
		return 0, apperror.ErrInsufficientAmount
	}
	return tendered - total, nil
}

// SetAmount stages a user-typed tender amount for a transaction, replacing
// any previous input including an exact-amount flag.
func (s *PaymentService) SetAmount(transactionNumber, raw string) (money.Cents, error) {
	amount, err := money.Parse(raw)
	if err != nil {
		return 0, apperror.NewBadRequestError("Invalid tendered amount: " + raw)
	}
	if amount < 0 {
		return 0, apperror.NewBadRequestError("Tendered amount cannot be negative")
	}

	s.mu.Lock()
	s.slots[transactionNumber] = &tenderSlot{amount: amount, hasAmount: true}
	s.mu.Unlock()
	return amount, nil
}

// SetExact stages the exact-amount flag for a transaction. The total due is
// substituted verbatim at confirmation time, bypassing input parsing.
func (s *PaymentService) SetExact(transactionNumber string) {
	s.mu.Lock()
	s.slots[transactionNumber] = &tenderSlot{exact: true}
	s.mu.Unlock()
}

// Confirm settles a transaction with the staged tender input and produces an
// immutable payment record. For non-cash methods no tender is read and the
// record carries no amounts. The slot is consumed on success.
func (s *PaymentService) Confirm(transactionNumber string, total money.Cents, method enum.PaymentMethod) (*entity.PaymentRecord, error) {
	if !method.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown payment method: " + method.String())
	}

	record := &entity.PaymentRecord{
		TransactionNumber: transactionNumber,
		Method:            method,
		RecordedAt:        time.Now().UTC(),
	}

	if !method.RequiresTender() {
		s.clear(transactionNumber)
		return record, nil
	}

	s.mu.Lock()
	slot := s.slots[transactionNumber]
	var tendered money.Cents
	switch {
	case slot == nil:
		s.mu.Unlock()
		return nil, apperror.NewBadRequestError("No tendered amount entered for this transaction")
	case slot.exact:
		tendered = total
	case slot.hasAmount:
		tendered = slot.amount
	default:
		s.mu.Unlock()
		return nil, apperror.NewBadRequestError("No tendered amount entered for this transaction")
	}
	s.mu.Unlock()

	change, err := s.Reconcile(total, tendered)
	if err != nil {
		return nil, err
	}

	record.AmountTendered = &tendered
	record.Change = &change
	s.clear(transactionNumber)
	return record, nil
}

func (s *PaymentService) clear(transactionNumber string) {
	s.mu.Lock()
	delete(s.slots, transactionNumber)
	s.mu.Unlock()
}
