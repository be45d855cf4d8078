package contract

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/hashstay/contract-executor/wallet"
)

// ErrCallInFlight is returned when a second call is attempted for an
// account whose previous call has not returned yet. Signer handles are
// bound to a single session snapshot; overlapping calls for the same
// account risk cross-binding or a stale provider.
var ErrCallInFlight = errors.New("contract: a call for this account is already in flight")

// Executor is the top-level entry point: it resolves a signer, encodes the
// parameters, drives the pipeline and redirects recognized retryable stage
// failures to the direct execution fallback, exactly once.
type Executor struct {
	session      *wallet.Session
	resolver     *wallet.Resolver
	pipeline     *Pipeline
	fallback     *FallbackExecutor
	metrics      *Metrics
	log          logrus.FieldLogger
	pipelineOpts []PipelineOption

	mu       sync.Mutex
	inFlight map[wallet.AccountID]struct{}
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithLogger overrides the executor logger.
func WithLogger(log logrus.FieldLogger) ExecutorOption {
	return func(e *Executor) { e.log = log }
}

// WithMetrics installs metrics on the executor and its pipeline.
func WithMetrics(m *Metrics) ExecutorOption {
	return func(e *Executor) { e.metrics = m }
}

// WithPipeline replaces the default pipeline.
func WithPipeline(p *Pipeline) ExecutorOption {
	return func(e *Executor) { e.pipeline = p }
}

// WithPipelineOptions forwards options to the default pipeline, so
// application config such as gas and fee defaults reaches it without the
// caller assembling a pipeline by hand. Ignored when WithPipeline is used.
func WithPipelineOptions(opts ...PipelineOption) ExecutorOption {
	return func(e *Executor) { e.pipelineOpts = append(e.pipelineOpts, opts...) }
}

// NewExecutor wires an executor over a connected wallet session and the
// ledger boundary.
func NewExecutor(session *wallet.Session, ledger LedgerClient, opts ...ExecutorOption) *Executor {
	e := &Executor{
		session:  session,
		log:      logrus.StandardLogger(),
		inFlight: make(map[wallet.AccountID]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.resolver = wallet.NewResolver(e.log)
	if e.pipeline == nil {
		opts := append([]PipelineOption{WithPipelineLogger(e.log), WithPipelineMetrics(e.metrics)}, e.pipelineOpts...)
		e.pipeline = NewPipeline(ledger, opts...)
	}
	e.fallback = NewFallbackExecutor(session, e.log)
	return e
}

// ExecuteContractFunction runs one contract call end to end. Validation
// and pairing failures surface immediately and are never retried; freeze
// and submission failures trigger one fallback attempt with the original
// logical request, and the fallback's own outcome is what the caller sees.
func (e *Executor) ExecuteContractFunction(ctx context.Context, req CallRequest) (*ExecutionResult, error) {
	if !e.acquire(req.Account) {
		return nil, ErrCallInFlight
	}
	defer e.release(req.Account)

	handle, err := e.resolver.Resolve(ctx, req.Account, e.session)
	if err != nil {
		return nil, err
	}

	block, err := Encode(req.Function, req.Params)
	if err != nil {
		return nil, err
	}

	res, err := e.pipeline.Run(ctx, req, handle, block)
	if err == nil {
		return res, nil
	}

	var se *StageError
	if errors.As(err, &se) && se.Class.Retryable() {
		e.log.WithError(se).WithFields(logrus.Fields{
			"account": req.Account,
			"class":   se.Class,
		}).Warn("signed pipeline failed, attempting direct execution")
		e.metrics.fallbackAttempt()
		return e.fallback.ExecuteDirect(ctx, req)
	}
	return nil, err
}

// acquire takes the account's single pending-call slot.
func (e *Executor) acquire(account wallet.AccountID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, busy := e.inFlight[account]; busy {
		return false
	}
	e.inFlight[account] = struct{}{}
	return true
}

func (e *Executor) release(account wallet.AccountID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.inFlight, account)
}
