// Package walletconn selects and executes wallet connection strategies.
// Each environment has a fixed priority order of strategies; the selector
// walks the chain and stops at the first successful initiation.
package walletconn

import (
	"context"
	"fmt"
	"strings"

	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/domain"
)

// Strategy names in attempt order per environment.
const (
	StrategyExtensionHandshake = "extension-handshake"
	StrategyDeepLink           = "deep-link"
	StrategyUniversalLink      = "universal-link"
	StrategyQRHandoff          = "qr-handoff"
)

// Session carries the per-request parameters a strategy needs to build
// its connection URL or payload.
type Session struct {
	// AppURL is the dapp's own URL, passed to the wallet so it can
	// navigate back after approval.
	AppURL string

	// RedirectPath is appended to AppURL as the post-approval return
	// location. The mobile workflow must be resumable at this path.
	RedirectPath string
}

// Strategy initiates one wallet connection mechanism.
//
// Initiate returning nil means the strategy was successfully started.
// For link strategies on mobile this triggers a full navigation away
// from the page: control may never return to the calling process, and
// a non-return within the session is an implicit abandonment, not a
// failure. Callers must not assume synchronous completion.
type Strategy interface {
	// Name returns the stable strategy name.
	Name() string

	// Initiate starts the connection attempt for the session.
	Initiate(ctx context.Context, s Session) error
}

// Navigator performs the navigation a link strategy requires.
// The production implementation hands the URL to the client for a
// full-page redirect; tests substitute a recorder.
type Navigator interface {
	Navigate(url string) error
}

// Handshaker performs the in-page handshake against an injected or
// host-provided wallet interface.
type Handshaker interface {
	Handshake(ctx context.Context) error
}

// QRPresenter surfaces a connection payload for cross-device approval.
type QRPresenter interface {
	Present(payload string) error
}

// ConnectionError is returned when every strategy for an environment
// has been exhausted.
type ConnectionError struct {
	Environment domain.Environment
	Attempted   []string
	Reason      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("wallet connection failed (%s): tried [%s]: %v",
		e.Environment, strings.Join(e.Attempted, ", "), e.Reason)
}

func (e *ConnectionError) Unwrap() error {
	return e.Reason
}
