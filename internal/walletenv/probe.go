// Package walletenv classifies the runtime context a connection request
// originates from: desktop browser with a wallet extension, plain mobile
// browser, or a wallet's embedded browser.
package walletenv

// Probe exposes the ambient browser context needed for classification.
// Implementations are queried once per Classify call; the production
// implementation is fed from request headers, tests substitute fixtures.
type Probe interface {
	// UserAgent returns the client user-agent string, empty if unknown.
	UserAgent() string

	// HasWalletExtension reports whether an injected wallet-extension
	// object was detected in the page.
	HasWalletExtension() bool

	// IsWalletHost reports whether the hosting browser itself exposes a
	// wallet-compatible interface (in-wallet browser).
	IsWalletHost() bool
}

// StaticProbe is a Probe with fixed values.
type StaticProbe struct {
	UA         string
	Extension  bool
	WalletHost bool
}

func (p StaticProbe) UserAgent() string        { return p.UA }
func (p StaticProbe) HasWalletExtension() bool { return p.Extension }
func (p StaticProbe) IsWalletHost() bool       { return p.WalletHost }

var _ Probe = StaticProbe{}
