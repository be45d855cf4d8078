package mirror

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_TransactionReceipt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/transactions/0.0.1001-1700000000-000000001":
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"transactions":[{"transaction_id":"0.0.1001-1700000000-000000001","result":"SUCCESS","call_result":"0x0001"}]}`)
		case "/api/v1/transactions/0.0.1001-1700000000-000000002":
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"transactions":[]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)

	t.Run("found with call result", func(t *testing.T) {
		receipt, err := c.TransactionReceipt(context.Background(), "0.0.1001-1700000000-000000001")
		require.NoError(t, err)

		assert.Equal(t, "SUCCESS", receipt.Status)
		require.NotNil(t, receipt.ContractResult)
		assert.Equal(t, []byte{0x00, 0x01}, receipt.ContractResult.Raw)
		assert.True(t, receipt.ContractResult.Verified)
	})

	t.Run("empty result set", func(t *testing.T) {
		_, err := c.TransactionReceipt(context.Background(), "0.0.1001-1700000000-000000002")
		assert.ErrorContains(t, err, "not found")
	})

	t.Run("http error status", func(t *testing.T) {
		_, err := c.TransactionReceipt(context.Background(), "missing")
		assert.ErrorContains(t, err, "status")
	})
}

func TestClient_ReceiptWithoutCallResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"transactions":[{"transaction_id":"tx","result":"SUCCESS"}]}`)
	}))
	defer srv.Close()

	receipt, err := NewClient(srv.URL, nil).TransactionReceipt(context.Background(), "tx")
	require.NoError(t, err)

	assert.Equal(t, "SUCCESS", receipt.Status)
	assert.Nil(t, receipt.ContractResult)
}
