// Package contract implements the transaction execution pipeline for
// remote smart-contract calls: parameter encoding against the per-function
// ABI schemas, the build/freeze/submit/receipt state machine, and the
// direct-send fallback used when the signed pipeline fails in a
// recognized, retryable way.
package contract

import "github.com/hashstay/contract-executor/wallet"

// Function names form the closed set of callable contract functions. The
// strings are the wire-level names and contribute to the ABI signatures.
const (
	FuncCreateAsset        = "createAsset"
	FuncMintAsset          = "mintAsset"
	FuncUpdateAvailability = "updateAvailability"
	FuncTransferAsset      = "transferAsset"
)

// FunctionNames returns the closed set in a stable order.
func FunctionNames() []string {
	return []string{FuncCreateAsset, FuncMintAsset, FuncUpdateAvailability, FuncTransferAsset}
}

// CallRequest is the immutable logical description of one contract call.
// The parameter bag is loosely typed; it is validated and converted to a
// typed parameter block before anything touches the network.
type CallRequest struct {
	Account    wallet.AccountID
	Contract   string
	Function   string
	Params     map[string]any
	Gas        uint64
	FeeCeiling uint64
}

// ContractResult is the contract return value reported by a receipt.
// Verified is false when the value was synthesized by the direct execution
// path and must be treated as a guess, not authoritative chain state.
type ContractResult struct {
	Raw      []byte
	Verified bool
}

// Receipt is the post-submission confirmation record.
type Receipt struct {
	Status         string
	ContractResult *ContractResult
}

// ExecutionResult is returned by value to the caller and not retained.
// Receipt may be nil on success: receipt absence after a successful
// submission is informational, not fatal.
type ExecutionResult struct {
	Success       bool
	TransactionID string
	Receipt       *Receipt
	FailureClass  FailureClass
}
