// Package wallet manages the session with an external wallet connector and
// resolves signer capabilities used to authorize ledger transactions.
//
// The connector itself lives in a separate process or extension; this
// package only consumes its boundary. Different connector versions expose
// different capability surfaces, so every operation beyond the basic
// lifecycle is an optional interface probed by type assertion.
package wallet

import "context"

// AccountID identifies a ledger account. It is opaque and compared only by
// exact string equality; no normalization is applied.
type AccountID string

// EventKind discriminates connector events.
type EventKind int

const (
	// EventPaired reports a new or changed set of paired accounts.
	EventPaired EventKind = iota
	// EventDisconnected reports that the connector tore the session down.
	EventDisconnected
)

// Event is a pairing or disconnection notification from the connector.
type Event struct {
	Kind     EventKind
	Accounts []AccountID
}

// Connector is the mandatory boundary to the external wallet connector.
// Everything else (signing, providers, raw sends, metadata) is optional
// and discovered through the capability interfaces below.
type Connector interface {
	// Connect performs the asynchronous handshake with the connector.
	Connect(ctx context.Context) error
	// Disconnect requests session teardown. Implementations must tolerate
	// being called when no session is established.
	Disconnect(ctx context.Context) error
	// Accounts returns the currently paired accounts in pairing order.
	Accounts() []AccountID
	// Events returns the channel on which pairing and disconnection
	// notifications arrive. The connector owns the channel.
	Events() <-chan Event
}

// ConnectionMetadata carries the known locations a connection topic may be
// stored under. Connector versions disagree about which one they populate,
// so consumers take the first non-empty candidate in declaration order.
type ConnectionMetadata struct {
	Topic        string
	PairingTopic string
	SessionTopic string
}

// topic returns the first non-empty candidate, or "".
func (m ConnectionMetadata) topic() string {
	for _, c := range []string{m.Topic, m.PairingTopic, m.SessionTopic} {
		if c != "" {
			return c
		}
	}
	return ""
}

// MetadataCarrier is the optional capability exposing connection metadata.
type MetadataCarrier interface {
	Metadata() ConnectionMetadata
}

// Signer authorizes transactions on behalf of exactly one account.
// Concrete signers are produced by the connector and are opaque to this
// package beyond the account they are bound to.
type Signer interface {
	Account() AccountID
}

// SignerDirect is the optional capability of connectors that can hand out
// a signer bound straight to an account.
type SignerDirect interface {
	Signer(ctx context.Context, account AccountID) (Signer, error)
}

// Provider is a signing provider scoped to one (network, topic, account)
// triple, obtained from a ProviderDialer.
type Provider interface {
	Signer(ctx context.Context, account AccountID) (Signer, error)
}

// ProviderDialer is the optional capability of connectors that mediate
// signing through a scoped provider.
type ProviderDialer interface {
	Provider(ctx context.Context, network, topic string, account AccountID) (Provider, error)
}

// RawCall is the untyped transaction description accepted by the
// connector's lowest-level send primitive.
type RawCall struct {
	Contract   string
	Function   string
	Gas        uint64
	FeeCeiling uint64
	Params     map[string]any
}

// RawResult is what the low-level send primitive reports back. The
// transaction id may be empty when the connector did not surface one.
type RawResult struct {
	TransactionID string
	Response      map[string]any
}

// RawSender is the optional capability for direct, unfrozen submission.
type RawSender interface {
	SendRaw(ctx context.Context, call RawCall) (*RawResult, error)
}
