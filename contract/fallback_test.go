package contract

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashstay/contract-executor/wallet"
)

func TestFallback_RevalidatesPairing(t *testing.T) {
	t.Run("no paired accounts", func(t *testing.T) {
		f := NewFallbackExecutor(newReadySession(t, newRawConnector()), testLogger())

		_, err := f.ExecuteDirect(context.Background(), transferRequest())
		assert.True(t, wallet.IsPairingCode(err, wallet.NoPairedAccounts))
	})

	t.Run("account not paired", func(t *testing.T) {
		f := NewFallbackExecutor(newReadySession(t, newRawConnector("0.0.9999")), testLogger())

		_, err := f.ExecuteDirect(context.Background(), transferRequest())
		assert.True(t, wallet.IsPairingCode(err, wallet.AccountNotPaired))
	})
}

func TestFallback_UnavailableWithoutRawSender(t *testing.T) {
	f := NewFallbackExecutor(newReadySession(t, newSignerConnector("0.0.1001")), testLogger())

	_, err := f.ExecuteDirect(context.Background(), transferRequest())

	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, DirectExecutionUnavailable, se.Class)
}

func TestFallback_UsesReportedTransactionID(t *testing.T) {
	conn := newRawConnector("0.0.1001")
	conn.result = &wallet.RawResult{TransactionID: "raw-tx-7"}
	f := NewFallbackExecutor(newReadySession(t, conn), testLogger())

	res, err := f.ExecuteDirect(context.Background(), transferRequest())
	require.NoError(t, err)

	assert.Equal(t, "raw-tx-7", res.TransactionID)
	assert.True(t, res.Success)
}

func TestFallback_SynthesizesPlaceholderID(t *testing.T) {
	conn := newRawConnector("0.0.1001")
	conn.result = &wallet.RawResult{} // connector reported no id
	f := NewFallbackExecutor(newReadySession(t, conn), testLogger())

	res, err := f.ExecuteDirect(context.Background(), transferRequest())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.TransactionID, "direct-"))
	assert.Greater(t, len(res.TransactionID), len("direct-"))
	require.NotNil(t, res.Receipt)
	assert.Equal(t, "UNKNOWN", res.Receipt.Status)
	assert.False(t, res.Receipt.ContractResult.Verified)
}

func TestFallback_SendErrorIsDirectExecutionFailed(t *testing.T) {
	conn := newRawConnector("0.0.1001")
	conn.sendErr = errBoom
	f := NewFallbackExecutor(newReadySession(t, conn), testLogger())

	_, err := f.ExecuteDirect(context.Background(), transferRequest())

	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, DirectExecutionFailed, se.Class)
	assert.ErrorIs(t, err, errBoom)
}

func TestFallback_FixedFeeCeilingAndGasDefault(t *testing.T) {
	conn := newRawConnector("0.0.1001")
	f := NewFallbackExecutor(newReadySession(t, conn), testLogger())

	req := transferRequest()
	req.Gas = 0
	req.FeeCeiling = 999 // ignored by the direct path
	_, err := f.ExecuteDirect(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, conn.calls, 1)
	assert.Equal(t, SuggestedGas(FuncTransferAsset), conn.calls[0].Gas)
	assert.Equal(t, DirectFeeCeilingTinybar, conn.calls[0].FeeCeiling)
}
