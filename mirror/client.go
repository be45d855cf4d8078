// Package mirror queries a ledger mirror node's REST API. The pipeline
// uses it as a last-chance receipt lookup when neither the signer-scoped
// nor the plain receipt operation succeeds.
package mirror

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/hashstay/contract-executor/contract"
)

// Client is a read-only mirror node REST client.
type Client struct {
	http *resty.Client
	log  logrus.FieldLogger
}

// NewClient builds a client for the mirror node at baseURL.
func NewClient(baseURL string, log logrus.FieldLogger) *Client {
	if log == nil {
		log = logrus.StandardLogger()
	}
	httpc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
	return &Client{http: httpc, log: log.WithField("component", "mirror")}
}

// transactionsEnvelope is the mirror node response shape for the
// transactions endpoint; only the fields we consume are mapped.
type transactionsEnvelope struct {
	Transactions []transactionEntry `json:"transactions"`
}

type transactionEntry struct {
	TransactionID string `json:"transaction_id"`
	Result        string `json:"result"`
	CallResult    string `json:"call_result,omitempty"`
}

// TransactionReceipt looks up the receipt for a transaction id. It
// implements contract.ReceiptSource.
func (c *Client) TransactionReceipt(ctx context.Context, transactionID string) (*contract.Receipt, error) {
	var env transactionsEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&env).
		Get("/api/v1/transactions/" + url.PathEscape(transactionID))
	if err != nil {
		return nil, fmt.Errorf("mirror: transaction lookup: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("mirror: transaction lookup: status %s", resp.Status())
	}
	if len(env.Transactions) == 0 {
		return nil, fmt.Errorf("mirror: transaction %s not found", transactionID)
	}

	entry := env.Transactions[0]
	receipt := &contract.Receipt{Status: entry.Result}
	if entry.CallResult != "" {
		raw, err := hex.DecodeString(strings.TrimPrefix(entry.CallResult, "0x"))
		if err != nil {
			c.log.WithError(err).WithField("txId", transactionID).Warn("undecodable call result")
		} else {
			receipt.ContractResult = &contract.ContractResult{Raw: raw, Verified: true}
		}
	}
	return receipt, nil
}
