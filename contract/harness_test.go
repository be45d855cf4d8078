package contract

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/hashstay/contract-executor/wallet"
)

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fakeSigner struct {
	account wallet.AccountID
}

func (s fakeSigner) Account() wallet.AccountID { return s.account }

// baseConnector pairs the configured accounts and exposes no optional
// capability at all.
type baseConnector struct {
	accounts   []wallet.AccountID
	connectErr error
	events     chan wallet.Event
}

func newBaseConnector(accounts ...wallet.AccountID) *baseConnector {
	events := make(chan wallet.Event)
	close(events)
	return &baseConnector{accounts: accounts, events: events}
}

func (c *baseConnector) Connect(context.Context) error    { return c.connectErr }
func (c *baseConnector) Disconnect(context.Context) error { return nil }
func (c *baseConnector) Accounts() []wallet.AccountID     { return c.accounts }
func (c *baseConnector) Events() <-chan wallet.Event      { return c.events }

// signerConnector adds the direct signer capability.
type signerConnector struct {
	*baseConnector
	signerErr error
}

func newSignerConnector(accounts ...wallet.AccountID) *signerConnector {
	return &signerConnector{baseConnector: newBaseConnector(accounts...)}
}

func (c *signerConnector) Signer(_ context.Context, account wallet.AccountID) (wallet.Signer, error) {
	if c.signerErr != nil {
		return nil, c.signerErr
	}
	return fakeSigner{account: account}, nil
}

// rawConnector adds the low-level send capability and records calls.
type rawConnector struct {
	*signerConnector
	sendErr error
	result  *wallet.RawResult
	calls   []wallet.RawCall
}

func newRawConnector(accounts ...wallet.AccountID) *rawConnector {
	return &rawConnector{signerConnector: newSignerConnector(accounts...)}
}

func (c *rawConnector) SendRaw(_ context.Context, call wallet.RawCall) (*wallet.RawResult, error) {
	c.calls = append(c.calls, call)
	if c.sendErr != nil {
		return nil, c.sendErr
	}
	return c.result, nil
}

func newReadySession(t *testing.T, conn wallet.Connector) *wallet.Session {
	t.Helper()
	s := wallet.NewSession(conn, "testnet", testLogger())
	require.NoError(t, s.Connect(context.Background()))
	return s
}

// fakePending implements PendingResponse with scripted receipt behavior.
type fakePending struct {
	txID          string
	signerReceipt *Receipt
	signerErr     error
	plainReceipt  *Receipt
	plainErr      error
	signerCalls   int
	plainCalls    int
}

func (p *fakePending) TransactionID() string { return p.txID }

func (p *fakePending) ReceiptWithSigner(context.Context, wallet.Signer) (*Receipt, error) {
	p.signerCalls++
	if p.signerErr != nil {
		return nil, p.signerErr
	}
	return p.signerReceipt, nil
}

func (p *fakePending) Receipt(context.Context) (*Receipt, error) {
	p.plainCalls++
	if p.plainErr != nil {
		return nil, p.plainErr
	}
	return p.plainReceipt, nil
}

// fakeFrozen implements FrozenTransaction.
type fakeFrozen struct {
	submitErr error
	pending   *fakePending
	submits   int
}

func (f *fakeFrozen) Submit(context.Context, wallet.Signer) (PendingResponse, error) {
	f.submits++
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return f.pending, nil
}

// fakeEnvelope records builder calls and freezes into a fakeFrozen.
type fakeEnvelope struct {
	target   string
	gas      uint64
	function string
	block    *ParameterBlock
	payable  uint64
	ceiling  uint64

	freezeErr     error
	freezeEntered chan struct{}
	freezeGate    chan struct{}
	frozen        *fakeFrozen
	freezes       int
}

func (e *fakeEnvelope) SetTarget(contract string) { e.target = contract }
func (e *fakeEnvelope) SetGas(gas uint64)         { e.gas = gas }
func (e *fakeEnvelope) SetFunction(name string, params *ParameterBlock) {
	e.function = name
	e.block = params
}
func (e *fakeEnvelope) SetPayableAmount(tinybar uint64) { e.payable = tinybar }
func (e *fakeEnvelope) SetFeeCeiling(tinybar uint64)    { e.ceiling = tinybar }

func (e *fakeEnvelope) Freeze(ctx context.Context, _ wallet.Signer) (FrozenTransaction, error) {
	e.freezes++
	if e.freezeEntered != nil {
		close(e.freezeEntered)
		e.freezeEntered = nil
	}
	if e.freezeGate != nil {
		select {
		case <-e.freezeGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if e.freezeErr != nil {
		return nil, e.freezeErr
	}
	return e.frozen, nil
}

// fakeLedger hands out a single scripted envelope.
type fakeLedger struct {
	env   *fakeEnvelope
	calls int
}

func (l *fakeLedger) NewContractCall() Envelope {
	l.calls++
	return l.env
}

// healthyLedger builds a ledger whose envelope freezes, submits and
// reports a receipt without complaint.
func healthyLedger(txID string) *fakeLedger {
	return &fakeLedger{
		env: &fakeEnvelope{
			frozen: &fakeFrozen{
				pending: &fakePending{
					txID: txID,
					signerReceipt: &Receipt{
						Status:         "SUCCESS",
						ContractResult: &ContractResult{Raw: []byte{0x01}, Verified: true},
					},
				},
			},
		},
	}
}

var errBoom = fmt.Errorf("boom")
