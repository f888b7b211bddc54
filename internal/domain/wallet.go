package domain

// Environment classifies the runtime context a wallet connection is
// attempted from.
type Environment string

const (
	EnvDesktopExtension Environment = "desktop-extension"
	EnvMobile           Environment = "mobile"
	EnvInWalletBrowser  Environment = "in-wallet-browser"
)

// String returns the string representation of Environment.
func (e Environment) String() string {
	return string(e)
}

// IsValid checks if the environment is a valid value.
func (e Environment) IsValid() bool {
	return e == EnvDesktopExtension || e == EnvMobile || e == EnvInWalletBrowser
}

// ConnectionStrategyResult records the outcome of a wallet connection
// attempt: which strategies were tried, in order, and which one (if any)
// succeeded.
type ConnectionStrategyResult struct {
	Environment Environment
	Attempted   []string // strategy names in attempt order
	Succeeded   *string  // nil when no strategy succeeded
}
