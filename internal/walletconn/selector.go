package walletconn

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/domain"
	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/observability"
)

// Selector picks and executes connection strategies in a fixed priority
// order per environment.
type Selector struct {
	handshake *ExtensionHandshake
	deepLink  *DeepLink
	universal *UniversalLink
	qr        *QRHandoff
	metrics   *observability.Metrics
	logger    *logrus.Logger
}

// Options for creating Selector.
type Options struct {
	Handshaker  Handshaker
	Navigator   Navigator
	QRPresenter QRPresenter

	// Wallet endpoints; zero values select defaults.
	DeepLinkScheme    string
	UniversalLinkBase string

	Metrics *observability.Metrics
	Logger  *logrus.Logger
}

// NewSelector creates a new Selector.
func NewSelector(opts Options) *Selector {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
	}
	return &Selector{
		handshake: NewExtensionHandshake(opts.Handshaker),
		deepLink:  NewDeepLink(opts.DeepLinkScheme, opts.Navigator),
		universal: NewUniversalLink(opts.UniversalLinkBase, opts.Navigator),
		qr:        NewQRHandoff(opts.UniversalLinkBase, opts.QRPresenter),
		metrics:   opts.Metrics,
		logger:    logger,
	}
}

// strategiesFor returns the strategy chain for an environment.
// Priority order:
//   - desktop-extension: in-page handshake only
//   - mobile: deep link → universal link → QR hand-off
//   - in-wallet-browser: in-page handshake (host exposes the interface)
func (s *Selector) strategiesFor(env domain.Environment) []Strategy {
	switch env {
	case domain.EnvMobile:
		return []Strategy{s.deepLink, s.universal, s.qr}
	case domain.EnvInWalletBrowser:
		return []Strategy{s.handshake}
	default:
		return []Strategy{s.handshake}
	}
}

// Connect walks the environment's strategy chain and stops at the first
// successful initiation. Fails with *ConnectionError only when every
// strategy has been exhausted.
//
// On mobile, a successful link strategy triggers a full navigation away
// from the page; the result reports the initiated strategy but the
// workflow must be resumable after the user returns.
func (s *Selector) Connect(ctx context.Context, env domain.Environment) (*domain.ConnectionStrategyResult, error) {
	return s.ConnectSession(ctx, env, Session{})
}

// ConnectSession is Connect with explicit session parameters for the
// link strategies.
func (s *Selector) ConnectSession(ctx context.Context, env domain.Environment, sess Session) (*domain.ConnectionStrategyResult, error) {
	result := &domain.ConnectionStrategyResult{Environment: env}

	var lastErr error
	for _, strat := range s.strategiesFor(env) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result.Attempted = append(result.Attempted, strat.Name())
		s.metrics.RecordConnectionAttempt(strat.Name())

		if err := strat.Initiate(ctx, sess); err != nil {
			s.logger.WithFields(logrus.Fields{
				"environment": env.String(),
				"strategy":    strat.Name(),
			}).Warnf("connection strategy failed: %v", err)
			lastErr = err
			continue
		}

		name := strat.Name()
		result.Succeeded = &name
		return result, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no strategies configured for environment %s", env)
	}
	s.metrics.RecordConnectionFailure(env.String())
	return nil, &ConnectionError{
		Environment: env,
		Attempted:   result.Attempted,
		Reason:      lastErr,
	}
}
