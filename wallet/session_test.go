package wallet

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// stubConnector is a scriptable connector with an open event channel.
type stubConnector struct {
	accounts    []AccountID
	connectErr  error
	events      chan Event
	disconnects int
}

func newStubConnector(accounts ...AccountID) *stubConnector {
	return &stubConnector{accounts: accounts, events: make(chan Event, 4)}
}

func (c *stubConnector) Connect(context.Context) error { return c.connectErr }
func (c *stubConnector) Disconnect(context.Context) error {
	c.disconnects++
	return nil
}
func (c *stubConnector) Accounts() []AccountID { return c.accounts }
func (c *stubConnector) Events() <-chan Event  { return c.events }

func TestSession_ConnectSeedsAccounts(t *testing.T) {
	conn := newStubConnector("0.0.1001", "0.0.2002")
	s := NewSession(conn, "testnet", testLogger())

	require.Equal(t, StateDisconnected, s.State())
	require.NoError(t, s.Connect(context.Background()))

	assert.Equal(t, StateReady, s.State())
	assert.Equal(t, []AccountID{"0.0.1001", "0.0.2002"}, s.Accounts())

	active, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, AccountID("0.0.1001"), active, "first paired account is active")
}

func TestSession_ConnectFailureDowngrades(t *testing.T) {
	conn := newStubConnector()
	conn.connectErr = errors.New("relay unreachable")
	s := NewSession(conn, "testnet", testLogger())

	err := s.Connect(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateDisconnected, s.State(), "no inline retry, caller decides")
}

func TestSession_PairedEvent(t *testing.T) {
	conn := newStubConnector()
	s := NewSession(conn, "testnet", testLogger())
	require.NoError(t, s.Connect(context.Background()))

	notified := make(chan []AccountID, 1)
	s.OnPaired(func(accounts []AccountID) { notified <- accounts })

	conn.events <- Event{Kind: EventPaired, Accounts: []AccountID{"0.0.3003"}}

	select {
	case accounts := <-notified:
		assert.Equal(t, []AccountID{"0.0.3003"}, accounts)
	case <-time.After(time.Second):
		t.Fatal("paired handler was not invoked")
	}
	assert.Equal(t, []AccountID{"0.0.3003"}, s.Accounts())
}

func TestSession_DisconnectedEvent(t *testing.T) {
	conn := newStubConnector("0.0.1001")
	s := NewSession(conn, "testnet", testLogger())
	require.NoError(t, s.Connect(context.Background()))

	notified := make(chan struct{}, 1)
	s.OnDisconnected(func() { notified <- struct{}{} })

	conn.events <- Event{Kind: EventDisconnected}

	select {
	case <-notified:
	case <-time.After(time.Second):
		t.Fatal("disconnected handler was not invoked")
	}
	assert.Empty(t, s.Accounts())
	assert.Equal(t, StateDisconnected, s.State())
}

func TestSession_HandlerRegistrationDuringDispatch(t *testing.T) {
	conn := newStubConnector()
	s := NewSession(conn, "testnet", testLogger())
	require.NoError(t, s.Connect(context.Background()))

	paired := make(chan struct{}, 2)
	dropped := make(chan struct{}, 1)
	registered := false
	s.OnPaired(func([]AccountID) {
		// Dispatch runs over a copied handler list outside the session
		// lock, so handlers may register further handlers.
		if !registered {
			registered = true
			s.OnDisconnected(func() { dropped <- struct{}{} })
		}
		paired <- struct{}{}
	})

	conn.events <- Event{Kind: EventPaired, Accounts: []AccountID{"0.0.1001"}}
	select {
	case <-paired:
	case <-time.After(time.Second):
		t.Fatal("paired handler was not invoked")
	}

	conn.events <- Event{Kind: EventDisconnected}
	select {
	case <-dropped:
	case <-time.After(time.Second):
		t.Fatal("handler registered during dispatch was not invoked")
	}
}

func TestSession_DisconnectIsIdempotent(t *testing.T) {
	conn := newStubConnector("0.0.1001")
	s := NewSession(conn, "testnet", testLogger())
	require.NoError(t, s.Connect(context.Background()))

	require.NoError(t, s.Disconnect(context.Background()))
	assert.Equal(t, StateDisconnected, s.State())
	assert.Empty(t, s.Accounts())

	require.NoError(t, s.Disconnect(context.Background()))
	assert.Equal(t, 1, conn.disconnects, "second disconnect is a no-op")
}

func TestSession_ConnectTwiceIsNoOp(t *testing.T) {
	conn := newStubConnector("0.0.1001")
	s := NewSession(conn, "testnet", testLogger())
	require.NoError(t, s.Connect(context.Background()))
	require.NoError(t, s.Connect(context.Background()))
	assert.Equal(t, StateReady, s.State())
}

// metaConnector adds connection metadata to the stub.
type metaConnector struct {
	*stubConnector
	meta ConnectionMetadata
}

func (c *metaConnector) Metadata() ConnectionMetadata { return c.meta }

func TestSession_TopicCandidateOrder(t *testing.T) {
	cases := []struct {
		name string
		meta ConnectionMetadata
		want string
	}{
		{"primary topic wins", ConnectionMetadata{Topic: "a", PairingTopic: "b", SessionTopic: "c"}, "a"},
		{"pairing topic second", ConnectionMetadata{PairingTopic: "b", SessionTopic: "c"}, "b"},
		{"session topic last", ConnectionMetadata{SessionTopic: "c"}, "c"},
		{"all empty", ConnectionMetadata{}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			conn := &metaConnector{stubConnector: newStubConnector(), meta: tc.meta}
			s := NewSession(conn, "testnet", testLogger())
			assert.Equal(t, tc.want, s.Topic())
		})
	}
}

func TestSession_TopicWithoutMetadataCarrier(t *testing.T) {
	s := NewSession(newStubConnector(), "testnet", testLogger())
	assert.Equal(t, "", s.Topic())
}
