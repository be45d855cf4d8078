package contract

import (
	"context"
	"errors"

	"github.com/hashstay/contract-executor/wallet"
)

// Envelope is the opaque transaction-envelope builder of the ledger SDK.
// Setters accumulate state; Freeze binds the envelope to a signer and
// fixes its content.
type Envelope interface {
	SetTarget(contract string)
	SetGas(gas uint64)
	SetFunction(name string, params *ParameterBlock)
	SetPayableAmount(tinybar uint64)
	SetFeeCeiling(tinybar uint64)
	Freeze(ctx context.Context, signer wallet.Signer) (FrozenTransaction, error)
}

// FrozenTransaction is an immutable signable artifact produced by Freeze.
type FrozenTransaction interface {
	Submit(ctx context.Context, signer wallet.Signer) (PendingResponse, error)
}

// PendingResponse is the token returned by a successful submission.
type PendingResponse interface {
	TransactionID() string
	// ReceiptWithSigner requests the receipt through the signer. It
	// returns ErrReceiptUnsupported when the signer-scoped receipt
	// operation is not available in this session.
	ReceiptWithSigner(ctx context.Context, signer wallet.Signer) (*Receipt, error)
	// Receipt is the plain receipt request, without signer scoping.
	Receipt(ctx context.Context) (*Receipt, error)
}

// ErrReceiptUnsupported signals that the signer-scoped receipt operation
// is absent and the caller should degrade to a plain receipt request.
var ErrReceiptUnsupported = errors.New("contract: signer-scoped receipt not supported")

// LedgerClient is the opaque ledger SDK capability consumed by the
// pipeline. One envelope is created per call attempt.
type LedgerClient interface {
	NewContractCall() Envelope
}

// ReceiptSource is an optional read-only receipt lookup used as a last
// chance before giving up on a receipt, typically backed by a mirror node.
type ReceiptSource interface {
	TransactionReceipt(ctx context.Context, transactionID string) (*Receipt, error)
}
