package walletconn

import (
	"context"
	"fmt"
	"net/url"
)

// Default wallet endpoints (Phantom-compatible).
const (
	DefaultDeepLinkScheme    = "phantom"
	DefaultUniversalLinkBase = "https://phantom.app/ul/v1"
)

// ExtensionHandshake connects through the in-page wallet interface,
// either an injected browser extension or the wallet's own embedded
// browser.
type ExtensionHandshake struct {
	handshaker Handshaker
}

// NewExtensionHandshake creates the in-page handshake strategy.
func NewExtensionHandshake(h Handshaker) *ExtensionHandshake {
	return &ExtensionHandshake{handshaker: h}
}

func (s *ExtensionHandshake) Name() string { return StrategyExtensionHandshake }

func (s *ExtensionHandshake) Initiate(ctx context.Context, _ Session) error {
	if s.handshaker == nil {
		return fmt.Errorf("no wallet interface available")
	}
	if err := s.handshaker.Handshake(ctx); err != nil {
		return fmt.Errorf("extension handshake: %w", err)
	}
	return nil
}

// DeepLink hands off to an installed wallet app via a custom URI scheme.
// A successful Navigate means a full navigation away from the page.
type DeepLink struct {
	scheme    string
	navigator Navigator
}

// NewDeepLink creates the deep-link strategy. An empty scheme selects
// the default wallet scheme.
func NewDeepLink(scheme string, nav Navigator) *DeepLink {
	if scheme == "" {
		scheme = DefaultDeepLinkScheme
	}
	return &DeepLink{scheme: scheme, navigator: nav}
}

func (s *DeepLink) Name() string { return StrategyDeepLink }

func (s *DeepLink) Initiate(_ context.Context, sess Session) error {
	if s.navigator == nil {
		return fmt.Errorf("no navigator available")
	}

	target := fmt.Sprintf("%s://v1/connect?%s", s.scheme, connectQuery(sess))
	if err := s.navigator.Navigate(target); err != nil {
		return fmt.Errorf("deep link navigate: %w", err)
	}
	return nil
}

// UniversalLink hands off to the wallet app via an https link that the
// OS routes to the app when installed, or to the wallet's web page
// otherwise. Same navigation semantics as DeepLink.
type UniversalLink struct {
	base      string
	navigator Navigator
}

// NewUniversalLink creates the universal-link strategy. An empty base
// selects the default wallet universal-link base.
func NewUniversalLink(base string, nav Navigator) *UniversalLink {
	if base == "" {
		base = DefaultUniversalLinkBase
	}
	return &UniversalLink{base: base, navigator: nav}
}

func (s *UniversalLink) Name() string { return StrategyUniversalLink }

func (s *UniversalLink) Initiate(_ context.Context, sess Session) error {
	if s.navigator == nil {
		return fmt.Errorf("no navigator available")
	}

	target := fmt.Sprintf("%s/connect?%s", s.base, connectQuery(sess))
	if err := s.navigator.Navigate(target); err != nil {
		return fmt.Errorf("universal link navigate: %w", err)
	}
	return nil
}

// QRHandoff surfaces the connection URI as a QR payload so the user can
// approve from the wallet on another device.
type QRHandoff struct {
	base      string
	presenter QRPresenter
}

// NewQRHandoff creates the QR hand-off strategy.
func NewQRHandoff(base string, p QRPresenter) *QRHandoff {
	if base == "" {
		base = DefaultUniversalLinkBase
	}
	return &QRHandoff{base: base, presenter: p}
}

func (s *QRHandoff) Name() string { return StrategyQRHandoff }

func (s *QRHandoff) Initiate(_ context.Context, sess Session) error {
	if s.presenter == nil {
		return fmt.Errorf("no QR presenter available")
	}

	payload := fmt.Sprintf("%s/connect?%s", s.base, connectQuery(sess))
	if err := s.presenter.Present(payload); err != nil {
		return fmt.Errorf("qr handoff present: %w", err)
	}
	return nil
}

// connectQuery builds the common connect query string for link strategies.
func connectQuery(sess Session) string {
	q := url.Values{}
	if sess.AppURL != "" {
		q.Set("app_url", sess.AppURL)
		redirect := sess.AppURL
		if sess.RedirectPath != "" {
			redirect += sess.RedirectPath
		}
		q.Set("redirect_link", redirect)
	}
	return q.Encode()
}

var (
	_ Strategy = (*ExtensionHandshake)(nil)
	_ Strategy = (*DeepLink)(nil)
	_ Strategy = (*UniversalLink)(nil)
	_ Strategy = (*QRHandoff)(nil)
)
