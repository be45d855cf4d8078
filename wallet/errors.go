package wallet

import (
	"errors"
	"fmt"
)

// PairingCode classifies pairing failures. All of them are terminal for
// the current session: the user has to reconnect the wallet.
type PairingCode int

const (
	// NoPairedAccounts means the session has no paired accounts at all.
	NoPairedAccounts PairingCode = iota
	// AccountNotPaired means the requested account is not among the
	// paired ones.
	AccountNotPaired
	// SignerUnavailable means every signer acquisition strategy came up
	// empty for this session.
	SignerUnavailable
)

// String returns the code name.
func (c PairingCode) String() string {
	switch c {
	case NoPairedAccounts:
		return "NoPairedAccounts"
	case AccountNotPaired:
		return "AccountNotPaired"
	case SignerUnavailable:
		return "SignerUnavailable"
	default:
		return fmt.Sprintf("PairingCode(%d)", int(c))
	}
}

// PairingError reports that a signer could not be resolved because of the
// pairing state of the session.
type PairingError struct {
	Code    PairingCode
	Account AccountID
}

// Error implements error.
func (e *PairingError) Error() string {
	switch e.Code {
	case NoPairedAccounts:
		return "wallet: no paired accounts in session"
	case AccountNotPaired:
		return fmt.Sprintf("wallet: account %s is not paired", e.Account)
	case SignerUnavailable:
		return fmt.Sprintf("wallet: no signer available for account %s, reconnect the wallet", e.Account)
	default:
		return fmt.Sprintf("wallet: pairing failure %s for account %s", e.Code, e.Account)
	}
}

// IsPairingCode reports whether err is a PairingError with the given code.
func IsPairingCode(err error, code PairingCode) bool {
	var pe *PairingError
	if !errors.As(err, &pe) {
		return false
	}
	return pe.Code == code
}
