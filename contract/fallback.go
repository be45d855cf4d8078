package contract

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hashstay/contract-executor/wallet"
)

// FallbackExecutor submits a contract call straight through the wallet
// connector's low-level send primitive, without freeze or signer-handle
// binding. It is a deliberate last-resort degradation: its results are
// best-effort and its contract result is never authoritative.
type FallbackExecutor struct {
	session *wallet.Session
	log     logrus.FieldLogger
}

// NewFallbackExecutor builds a fallback executor over the session.
func NewFallbackExecutor(session *wallet.Session, log logrus.FieldLogger) *FallbackExecutor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &FallbackExecutor{session: session, log: log}
}

// ExecuteDirect submits the original logical request through the raw send
// primitive. Pairing is re-validated here because the primary pipeline's
// signer handle is never reused.
func (f *FallbackExecutor) ExecuteDirect(ctx context.Context, req CallRequest) (*ExecutionResult, error) {
	accounts := f.session.Accounts()
	if len(accounts) == 0 {
		return nil, &wallet.PairingError{Code: wallet.NoPairedAccounts, Account: req.Account}
	}
	paired := false
	for _, a := range accounts {
		if a == req.Account {
			paired = true
			break
		}
	}
	if !paired {
		return nil, &wallet.PairingError{Code: wallet.AccountNotPaired, Account: req.Account}
	}

	sender, ok := f.session.Connector().(wallet.RawSender)
	if !ok {
		return nil, &StageError{
			Stage: StageSubmitted,
			Class: DirectExecutionUnavailable,
			Err:   fmt.Errorf("connector exposes no raw send primitive"),
		}
	}

	gas := req.Gas
	if gas == 0 {
		gas = SuggestedGas(req.Function)
	}
	call := wallet.RawCall{
		Contract:   req.Contract,
		Function:   req.Function,
		Gas:        gas,
		FeeCeiling: DirectFeeCeilingTinybar,
		Params:     req.Params,
	}

	f.log.WithFields(logrus.Fields{
		"account":  req.Account,
		"contract": req.Contract,
		"function": req.Function,
	}).Warn("executing through direct send path")

	res, err := sender.SendRaw(ctx, call)
	if err != nil {
		return nil, &StageError{Stage: StageSubmitted, Class: DirectExecutionFailed, Err: err}
	}

	txID := ""
	if res != nil {
		txID = res.TransactionID
	}
	if txID == "" {
		// The connector reported no id; synthesize a local placeholder so
		// callers still get a handle to correlate logs with.
		txID = "direct-" + uuid.NewString()
	}
	return &ExecutionResult{
		Success:       true,
		TransactionID: txID,
		Receipt: &Receipt{
			Status:         "UNKNOWN",
			ContractResult: &ContractResult{Verified: false},
		},
	}, nil
}
