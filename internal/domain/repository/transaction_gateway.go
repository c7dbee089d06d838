package repository

import (
	"context"

	"github.com/markvilla/selfcheckout-api/internal/domain/entity"
)

// TransactionGateway is the client-side view of the remote transaction
// service, the single source of truth for transaction state. Reads are
// idempotent; this service never writes a status.
type TransactionGateway interface {
	// GetPublicStatus reads the current status of a transaction.
	// Consumes GET /transactions/public/{transactionId}.
	GetPublicStatus(ctx context.Context, transactionID string) (*entity.StatusResult, error)
	// GetSaleDetails fetches the full finalized transaction record.
	// Consumes GET /sales/details/{transactionNumber}.
	GetSaleDetails(ctx context.Context, transactionNumber string) (*entity.SaleRecord, error)
	// CreateTransaction submits a pending cart to the remote service, which
	// performs the authoritative uniqueness check on the transaction number.
	CreateTransaction(ctx context.Context, cart *entity.PendingCart) (*entity.TransactionReference, error)
}
