package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/markvilla/selfcheckout-api/internal/domain/entity"
	domainRepo "github.com/markvilla/selfcheckout-api/internal/domain/repository"
	"github.com/markvilla/selfcheckout-api/pkg/apperror"
)

type transactionClient struct {
	baseURL string
	client  *http.Client
}

// NewTransactionClient creates an HTTP client for the remote transaction
// service, the authoritative owner of transaction state.
func NewTransactionClient(baseURL string, timeout time.Duration) domainRepo.TransactionGateway {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &transactionClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *transactionClient) GetPublicStatus(ctx context.Context, transactionID string) (*entity.StatusResult, error) {
	var result entity.StatusResult
	if err := c.get(ctx, "/transactions/public/"+transactionID, &result); err != nil {
		return nil, err
	}
	if !result.Status.IsValid() {
		return nil, apperror.NewPollingTransportError(fmt.Sprintf("transaction service returned unknown status %q", result.Status))
	}
	return &result, nil
}

func (c *transactionClient) GetSaleDetails(ctx context.Context, transactionNumber string) (*entity.SaleRecord, error) {
	var record entity.SaleRecord
	if err := c.get(ctx, "/sales/details/"+transactionNumber, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *transactionClient) CreateTransaction(ctx context.Context, cart *entity.PendingCart) (*entity.TransactionReference, error) {
	body := map[string]interface{}{
		"business_id": cart.BusinessID,
		"tn":          cart.TransactionNumber,
		"items":       cart.Items(),
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transactions", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperror.NewPollingTransportError("transaction service unreachable: " + err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		return nil, apperror.NewConflictError("Transaction number already exists")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperror.NewAppError(http.StatusBadGateway,
			fmt.Sprintf("transaction service rejected the transaction (status %d)", resp.StatusCode))
	}

	var ref entity.TransactionReference
	if err := json.NewDecoder(resp.Body).Decode(&ref); err != nil {
		return nil, apperror.NewPollingTransportError("transaction service returned an unreadable response: " + err.Error())
	}
	return &ref, nil
}

// get issues a GET and decodes the JSON response. Transport failures and
// non-success statuses both surface as typed errors so callers can tell the
// user which side failed.
func (c *transactionClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return apperror.NewPollingTransportError("transaction service unreachable: " + err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return apperror.NewNotFoundError("Transaction")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperror.NewPollingTransportError(
			fmt.Sprintf("transaction service returned status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.NewPollingTransportError("transaction service returned an unreadable response: " + err.Error())
	}
	return nil
}
