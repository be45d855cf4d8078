package wallet

import (
	"context"

	"github.com/sirupsen/logrus"
)

// SignerHandle binds a resolved signer to one account and one session
// snapshot. A handle is owned by the single in-flight call that requested
// it and must not be reused across calls: the topic/provider pairing it
// was resolved against may be stale by the next call.
type SignerHandle struct {
	signer  Signer
	account AccountID
	topic   string
}

// Signer returns the underlying signer capability.
func (h *SignerHandle) Signer() Signer { return h.signer }

// Account returns the account the handle is bound to.
func (h *SignerHandle) Account() AccountID { return h.account }

// Topic returns the session topic snapshot the handle was resolved under.
func (h *SignerHandle) Topic() string { return h.topic }

// strategy attempts one signer acquisition path. Returning (nil, nil)
// means the capability is absent or unusable in this session and the next
// strategy should be tried.
type strategy interface {
	name() string
	tryResolve(ctx context.Context, s *Session, account AccountID) (Signer, error)
}

// directStrategy asks the connector for a signer bound straight to the
// account, when the connector version exposes that operation.
type directStrategy struct{}

func (directStrategy) name() string { return "direct" }

func (directStrategy) tryResolve(ctx context.Context, s *Session, account AccountID) (Signer, error) {
	sd, ok := s.Connector().(SignerDirect)
	if !ok {
		return nil, nil
	}
	return sd.Signer(ctx, account)
}

// providerStrategy derives a topic from the session connection metadata,
// obtains a provider scoped to (network, topic, account) and asks it for
// a signer.
type providerStrategy struct{}

func (providerStrategy) name() string { return "provider" }

func (providerStrategy) tryResolve(ctx context.Context, s *Session, account AccountID) (Signer, error) {
	pd, ok := s.Connector().(ProviderDialer)
	if !ok {
		return nil, nil
	}
	topic := s.Topic()
	if topic == "" {
		return nil, nil
	}
	provider, err := pd.Provider(ctx, s.Network(), topic, account)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, nil
	}
	return provider.Signer(ctx, account)
}

// Resolver produces signer handles by probing acquisition strategies in a
// fixed priority order. Strategy probing is mandatory: different connector
// versions expose different capability surfaces, and only the absence of
// every strategy is unrecoverable within a session.
type Resolver struct {
	strategies []strategy
	log        logrus.FieldLogger
}

// NewResolver builds a resolver with the standard strategy order:
// direct first, provider-mediated second.
func NewResolver(log logrus.FieldLogger) *Resolver {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Resolver{
		strategies: []strategy{directStrategy{}, providerStrategy{}},
		log:        log,
	}
}

// Resolve produces a signer handle for the account, bound to the current
// session snapshot. It fails with NoPairedAccounts when the session has no
// accounts, AccountNotPaired when the account is absent from the paired
// sequence, and SignerUnavailable when every strategy comes up empty.
func (r *Resolver) Resolve(ctx context.Context, account AccountID, session *Session) (*SignerHandle, error) {
	accounts := session.Accounts()
	if len(accounts) == 0 {
		return nil, &PairingError{Code: NoPairedAccounts, Account: account}
	}
	paired := false
	for _, a := range accounts {
		if a == account {
			paired = true
			break
		}
	}
	if !paired {
		return nil, &PairingError{Code: AccountNotPaired, Account: account}
	}

	for _, st := range r.strategies {
		signer, err := st.tryResolve(ctx, session, account)
		if err != nil {
			// A failing strategy yields nothing; fall through to the next.
			r.log.WithError(err).WithFields(logrus.Fields{
				"strategy": st.name(),
				"account":  account,
			}).Warn("signer strategy failed")
			continue
		}
		if signer != nil {
			r.log.WithFields(logrus.Fields{
				"strategy": st.name(),
				"account":  account,
			}).Debug("signer resolved")
			return &SignerHandle{signer: signer, account: account, topic: session.Topic()}, nil
		}
	}
	return nil, &PairingError{Code: SignerUnavailable, Account: account}
}
