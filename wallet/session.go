package wallet

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// State is the connection state of a Session.
type State int

const (
	// StateDisconnected is the initial and post-teardown state.
	StateDisconnected State = iota
	// StateInitializing means the connector handshake is in progress.
	StateInitializing
	// StateReady means the handshake completed and events are flowing.
	StateReady
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "Disconnected"
	case StateInitializing:
		return "Initializing"
	case StateReady:
		return "Ready"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session owns the lifecycle of the connection to the external wallet
// connector. It is constructed once per application instance, connected
// once, and torn down with Disconnect.
//
// The paired account sequence preserves pairing order; by convention the
// first element is the active account.
type Session struct {
	connector Connector
	network   string
	log       logrus.FieldLogger

	mu       sync.Mutex
	state    State
	accounts []AccountID
	paired   []func([]AccountID)
	dropped  []func()
	watching bool
}

// NewSession wraps a connector for the named ledger network. A nil logger
// falls back to the standard logrus logger.
func NewSession(connector Connector, network string, log logrus.FieldLogger) *Session {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Session{
		connector: connector,
		network:   network,
		log:       log.WithField("network", network),
	}
}

// Connect drives the connector handshake. On success the session is Ready
// and starts consuming connector events. On failure the session downgrades
// to Disconnected; retry policy belongs to the caller.
func (s *Session) Connect(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateReady {
		s.mu.Unlock()
		return nil
	}
	s.state = StateInitializing
	s.mu.Unlock()

	if err := s.connector.Connect(ctx); err != nil {
		s.mu.Lock()
		s.state = StateDisconnected
		s.mu.Unlock()
		return fmt.Errorf("wallet: connector handshake failed: %w", err)
	}

	s.mu.Lock()
	s.state = StateReady
	s.accounts = append([]AccountID(nil), s.connector.Accounts()...)
	start := !s.watching
	s.watching = true
	s.mu.Unlock()

	if start {
		go s.watch(s.connector.Events())
	}
	s.log.WithField("accounts", len(s.Accounts())).Info("wallet session ready")
	return nil
}

// watch consumes pairing and disconnection events until the connector
// closes its event channel.
func (s *Session) watch(events <-chan Event) {
	for ev := range events {
		switch ev.Kind {
		case EventPaired:
			s.handlePaired(ev.Accounts)
		case EventDisconnected:
			s.handleDisconnected()
		}
	}
}

func (s *Session) handlePaired(accounts []AccountID) {
	s.mu.Lock()
	s.accounts = append([]AccountID(nil), accounts...)
	if s.state != StateReady {
		s.state = StateReady
	}
	handlers := append(s.paired[:0:0], s.paired...)
	s.mu.Unlock()

	s.log.WithField("accounts", len(accounts)).Info("wallet paired")
	for _, fn := range handlers {
		fn(append([]AccountID(nil), accounts...))
	}
}

func (s *Session) handleDisconnected() {
	s.mu.Lock()
	s.accounts = nil
	s.state = StateDisconnected
	handlers := append(s.dropped[:0:0], s.dropped...)
	s.mu.Unlock()

	s.log.Info("wallet disconnected")
	for _, fn := range handlers {
		fn()
	}
}

// Accounts returns the paired accounts in pairing order. An empty result
// means no wallet is paired.
func (s *Session) Accounts() []AccountID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]AccountID(nil), s.accounts...)
}

// Active returns the active account, the first of the paired sequence.
func (s *Session) Active() (AccountID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.accounts) == 0 {
		return "", false
	}
	return s.accounts[0], true
}

// State returns the current connection state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// OnPaired registers a handler invoked with the new account sequence
// whenever the connector reports a pairing.
func (s *Session) OnPaired(fn func([]AccountID)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paired = append(s.paired, fn)
}

// OnDisconnected registers a handler invoked whenever the connector
// reports a disconnection.
func (s *Session) OnDisconnected(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dropped = append(s.dropped, fn)
}

// Disconnect requests session teardown. It is idempotent: calling it on an
// already disconnected session is a no-op.
func (s *Session) Disconnect(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateDisconnected {
		s.mu.Unlock()
		return nil
	}
	s.accounts = nil
	s.state = StateDisconnected
	s.mu.Unlock()

	if err := s.connector.Disconnect(ctx); err != nil {
		return fmt.Errorf("wallet: disconnect: %w", err)
	}
	return nil
}

// Connector exposes the underlying connector so capability interfaces can
// be probed against it.
func (s *Session) Connector() Connector {
	return s.connector
}

// Network returns the ledger network name this session was built for.
func (s *Session) Network() string {
	return s.network
}

// Topic returns the connection topic from the first non-empty metadata
// candidate, or "" when the connector carries no metadata at all.
func (s *Session) Topic() string {
	mc, ok := s.connector.(MetadataCarrier)
	if !ok {
		return ""
	}
	return mc.Metadata().topic()
}
