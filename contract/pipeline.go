package contract

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hashstay/contract-executor/wallet"
)

// Stage is the position of a call in the pipeline state machine. Stages
// advance strictly forward; any stage can move to StageFailed.
type Stage int

const (
	StageBuilding Stage = iota
	StageFrozen
	StageSubmitted
	StageAwaitingReceipt
	StageConfirmed
	StageFailed
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageBuilding:
		return "Building"
	case StageFrozen:
		return "Frozen"
	case StageSubmitted:
		return "Submitted"
	case StageAwaitingReceipt:
		return "AwaitingReceipt"
	case StageConfirmed:
		return "Confirmed"
	case StageFailed:
		return "Failed"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// TransactionRecord tracks one call's progress through the pipeline. It is
// created per call and discarded when the call returns; nothing persists.
type TransactionRecord struct {
	Stage         Stage
	TransactionID string
	Failure       *StageError
}

// fail marks the record failed and returns the stage error.
func (r *TransactionRecord) fail(stage Stage, class FailureClass, err error) *StageError {
	se := &StageError{Stage: stage, Class: class, Err: err}
	r.Stage = StageFailed
	r.Failure = se
	return se
}

// DefaultStageTimeout bounds each freeze/submit/receipt call so a stalled
// connector or network cannot hang the caller indefinitely.
const DefaultStageTimeout = 30 * time.Second

// Pipeline drives the build, freeze, submit and receipt stages of one
// contract call against the ledger boundary.
type Pipeline struct {
	ledger         LedgerClient
	receipts       ReceiptSource
	stageTimeout   time.Duration
	defaultGas     uint64
	defaultCeiling uint64
	log            logrus.FieldLogger
	metrics        *Metrics
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithStageTimeout overrides the per-stage deadline.
func WithStageTimeout(d time.Duration) PipelineOption {
	return func(p *Pipeline) { p.stageTimeout = d }
}

// WithDefaultGas sets the gas budget used when a request carries none,
// overriding the per-function suggested gas table. Zero keeps the table.
func WithDefaultGas(gas uint64) PipelineOption {
	return func(p *Pipeline) { p.defaultGas = gas }
}

// WithDefaultFeeCeiling sets the fee ceiling in tinybar used when a
// request carries none. Zero keeps the built-in default.
func WithDefaultFeeCeiling(tinybar uint64) PipelineOption {
	return func(p *Pipeline) {
		if tinybar != 0 {
			p.defaultCeiling = tinybar
		}
	}
}

// WithReceiptSource installs a last-chance receipt lookup.
func WithReceiptSource(src ReceiptSource) PipelineOption {
	return func(p *Pipeline) { p.receipts = src }
}

// WithPipelineLogger overrides the logger.
func WithPipelineLogger(log logrus.FieldLogger) PipelineOption {
	return func(p *Pipeline) { p.log = log }
}

// WithPipelineMetrics installs pipeline metrics.
func WithPipelineMetrics(m *Metrics) PipelineOption {
	return func(p *Pipeline) { p.metrics = m }
}

// NewPipeline builds a pipeline over the ledger boundary.
func NewPipeline(ledger LedgerClient, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		ledger:         ledger,
		stageTimeout:   DefaultStageTimeout,
		defaultCeiling: DefaultFeeCeilingTinybar,
		log:            logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one call through the five stages. The signer handle is
// owned by this run; pairing state is not re-checked after resolution, so
// a mid-flight disconnection surfaces as a freeze or submission failure.
func (p *Pipeline) Run(ctx context.Context, req CallRequest, handle *wallet.SignerHandle, block *ParameterBlock) (*ExecutionResult, error) {
	rec := &TransactionRecord{Stage: StageBuilding}
	log := p.log.WithFields(logrus.Fields{
		"account":  req.Account,
		"contract": req.Contract,
		"function": req.Function,
	})

	env, err := p.build(req, block)
	if err != nil {
		p.metrics.stageFailure(ConstructionFailed)
		return nil, rec.fail(StageBuilding, ConstructionFailed, err)
	}

	frozen, err := p.freeze(ctx, env, handle.Signer())
	if err != nil {
		p.metrics.stageFailure(FreezeFailed)
		return nil, rec.fail(StageFrozen, FreezeFailed, err)
	}
	rec.Stage = StageFrozen

	pending, err := p.submit(ctx, frozen, handle.Signer())
	if err != nil {
		p.metrics.stageFailure(SubmissionFailed)
		if isRecoverableSubmitError(err) {
			log.WithError(err).Warn("submission rejected with malformed payload, recoverable via direct path")
		}
		return nil, rec.fail(StageSubmitted, SubmissionFailed, err)
	}
	rec.Stage = StageSubmitted
	rec.TransactionID = pending.TransactionID()
	log = log.WithField("txId", rec.TransactionID)
	log.Info("transaction submitted")

	rec.Stage = StageAwaitingReceipt
	receipt := p.awaitReceipt(ctx, pending, handle.Signer(), log)

	rec.Stage = StageConfirmed
	p.metrics.confirmedInc()
	return &ExecutionResult{
		Success:       true,
		TransactionID: rec.TransactionID,
		Receipt:       receipt,
	}, nil
}

// build assembles the transaction envelope. createAsset calls carry the
// fixed payable creation amount on top of the execution fee ceiling.
func (p *Pipeline) build(req CallRequest, block *ParameterBlock) (Envelope, error) {
	if req.Contract == "" {
		return nil, fmt.Errorf("empty target contract")
	}
	env := p.ledger.NewContractCall()
	if env == nil {
		return nil, fmt.Errorf("ledger client returned no envelope")
	}
	gas := req.Gas
	if gas == 0 {
		gas = p.defaultGas
	}
	if gas == 0 {
		gas = SuggestedGas(req.Function)
	}
	ceiling := req.FeeCeiling
	if ceiling == 0 {
		ceiling = p.defaultCeiling
	}
	env.SetTarget(req.Contract)
	env.SetGas(gas)
	env.SetFunction(block.Function(), block)
	env.SetFeeCeiling(ceiling)
	if req.Function == FuncCreateAsset {
		env.SetPayableAmount(CreateAssetPayableTinybar)
	}
	return env, nil
}

func (p *Pipeline) freeze(ctx context.Context, env Envelope, signer wallet.Signer) (FrozenTransaction, error) {
	sctx, cancel := context.WithTimeout(ctx, p.stageTimeout)
	defer cancel()
	return env.Freeze(sctx, signer)
}

func (p *Pipeline) submit(ctx context.Context, frozen FrozenTransaction, signer wallet.Signer) (PendingResponse, error) {
	sctx, cancel := context.WithTimeout(ctx, p.stageTimeout)
	defer cancel()
	return frozen.Submit(sctx, signer)
}

// awaitReceipt degrades through the receipt paths: signer-scoped, plain,
// then the configured receipt source. The submission already succeeded, so
// no receipt path failing is informational and yields a nil receipt.
func (p *Pipeline) awaitReceipt(ctx context.Context, pending PendingResponse, signer wallet.Signer, log logrus.FieldLogger) *Receipt {
	sctx, cancel := context.WithTimeout(ctx, p.stageTimeout)
	defer cancel()

	receipt, err := pending.ReceiptWithSigner(sctx, signer)
	if err == nil {
		return receipt
	}
	log.WithError(err).Debug("signer-scoped receipt unavailable, trying plain receipt")

	receipt, err = pending.Receipt(sctx)
	if err == nil {
		return receipt
	}
	log.WithError(err).Debug("plain receipt unavailable")

	if p.receipts != nil {
		receipt, err = p.receipts.TransactionReceipt(sctx, pending.TransactionID())
		if err == nil {
			return receipt
		}
		log.WithError(err).Debug("receipt source lookup failed")
	}

	log.Warn("confirming without a receipt")
	return nil
}
