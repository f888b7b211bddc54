package walletconn

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"

	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/domain"
	"github.com/KORR-AI/MaytaToken-v2-sub001/internal/observability"
)

// recordingNavigator records navigation targets without performing a
// real redirect.
type recordingNavigator struct {
	urls []string
	err  error
}

func (n *recordingNavigator) Navigate(url string) error {
	if n.err != nil {
		return n.err
	}
	n.urls = append(n.urls, url)
	return nil
}

type stubHandshaker struct {
	err   error
	calls int
}

func (h *stubHandshaker) Handshake(_ context.Context) error {
	h.calls++
	return h.err
}

type recordingPresenter struct {
	payloads []string
	err      error
}

func (p *recordingPresenter) Present(payload string) error {
	if p.err != nil {
		return p.err
	}
	p.payloads = append(p.payloads, payload)
	return nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestSelector_DesktopExtensionHandshakeOnly(t *testing.T) {
	hs := &stubHandshaker{}
	nav := &recordingNavigator{}
	sel := NewSelector(Options{Handshaker: hs, Navigator: nav, Logger: quietLogger()})

	result, err := sel.Connect(context.Background(), domain.EnvDesktopExtension)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	if hs.calls != 1 {
		t.Errorf("expected 1 handshake call, got %d", hs.calls)
	}
	if len(nav.urls) != 0 {
		t.Errorf("expected no navigation, got %v", nav.urls)
	}
	if result.Succeeded == nil || *result.Succeeded != StrategyExtensionHandshake {
		t.Errorf("expected %s to succeed, got %v", StrategyExtensionHandshake, result.Succeeded)
	}
}

func TestSelector_MobileDeepLinkFirst(t *testing.T) {
	nav := &recordingNavigator{}
	sel := NewSelector(Options{Navigator: nav, Logger: quietLogger()})

	result, err := sel.ConnectSession(context.Background(), domain.EnvMobile, Session{
		AppURL:       "https://maytatoken.example",
		RedirectPath: "/create",
	})
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	if result.Succeeded == nil || *result.Succeeded != StrategyDeepLink {
		t.Errorf("expected %s to succeed, got %v", StrategyDeepLink, result.Succeeded)
	}
	if len(nav.urls) != 1 {
		t.Fatalf("expected 1 navigation, got %d", len(nav.urls))
	}
	if !strings.HasPrefix(nav.urls[0], "phantom://v1/connect?") {
		t.Errorf("unexpected deep link url: %s", nav.urls[0])
	}
	if !strings.Contains(nav.urls[0], "redirect_link=") {
		t.Errorf("deep link url missing redirect: %s", nav.urls[0])
	}
}

func TestSelector_MobileFallsThroughToQR(t *testing.T) {
	nav := &recordingNavigator{err: fmt.Errorf("navigation blocked")}
	qr := &recordingPresenter{}
	sel := NewSelector(Options{Navigator: nav, QRPresenter: qr, Logger: quietLogger()})

	result, err := sel.Connect(context.Background(), domain.EnvMobile)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	want := []string{StrategyDeepLink, StrategyUniversalLink, StrategyQRHandoff}
	if len(result.Attempted) != len(want) {
		t.Fatalf("expected %d attempts, got %v", len(want), result.Attempted)
	}
	for i, name := range want {
		if result.Attempted[i] != name {
			t.Errorf("attempt %d: expected %s, got %s", i, name, result.Attempted[i])
		}
	}
	if result.Succeeded == nil || *result.Succeeded != StrategyQRHandoff {
		t.Errorf("expected %s to succeed, got %v", StrategyQRHandoff, result.Succeeded)
	}
	if len(qr.payloads) != 1 {
		t.Errorf("expected 1 QR payload, got %d", len(qr.payloads))
	}
}

func TestSelector_MobileAllExhausted(t *testing.T) {
	nav := &recordingNavigator{err: fmt.Errorf("navigation blocked")}
	qr := &recordingPresenter{err: fmt.Errorf("no display")}
	sel := NewSelector(Options{Navigator: nav, QRPresenter: qr, Logger: quietLogger()})

	_, err := sel.Connect(context.Background(), domain.EnvMobile)

	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected *ConnectionError, got %v", err)
	}
	if connErr.Environment != domain.EnvMobile {
		t.Errorf("expected environment %s, got %s", domain.EnvMobile, connErr.Environment)
	}
	if len(connErr.Attempted) != 3 {
		t.Errorf("expected 3 attempted strategies, got %v", connErr.Attempted)
	}
}

func TestSelector_InWalletBrowserUsesHandshake(t *testing.T) {
	hs := &stubHandshaker{}
	sel := NewSelector(Options{Handshaker: hs, Logger: quietLogger()})

	result, err := sel.Connect(context.Background(), domain.EnvInWalletBrowser)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if result.Succeeded == nil || *result.Succeeded != StrategyExtensionHandshake {
		t.Errorf("expected %s to succeed, got %v", StrategyExtensionHandshake, result.Succeeded)
	}
}

func TestSelector_HandshakeFailureExhaustsDesktop(t *testing.T) {
	hs := &stubHandshaker{err: fmt.Errorf("user rejected")}
	sel := NewSelector(Options{Handshaker: hs, Logger: quietLogger()})

	_, err := sel.Connect(context.Background(), domain.EnvDesktopExtension)

	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected *ConnectionError, got %v", err)
	}
}

func TestSelector_RecordsConnectionMetrics(t *testing.T) {
	metrics := observability.NewMetrics("walletconn_test")

	nav := &recordingNavigator{err: fmt.Errorf("navigation blocked")}
	sel := NewSelector(Options{Navigator: nav, Metrics: metrics, Logger: quietLogger()})

	_, err := sel.Connect(context.Background(), domain.EnvMobile)
	if err == nil {
		t.Fatal("expected exhaustion error")
	}

	for _, name := range []string{StrategyDeepLink, StrategyUniversalLink, StrategyQRHandoff} {
		if got := testutil.ToFloat64(metrics.ConnectionAttempts.WithLabelValues(name)); got != 1 {
			t.Errorf("expected 1 recorded attempt for %s, got %v", name, got)
		}
	}
	if got := testutil.ToFloat64(metrics.ConnectionFailures.WithLabelValues(domain.EnvMobile.String())); got != 1 {
		t.Errorf("expected 1 recorded failure, got %v", got)
	}
}

func TestSelector_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sel := NewSelector(Options{Navigator: &recordingNavigator{}, Logger: quietLogger()})
	_, err := sel.Connect(ctx, domain.EnvMobile)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
