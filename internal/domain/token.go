package domain

// AuthorityFlags controls which authorities the creator retains on the
// new mint.
type AuthorityFlags struct {
	Mintable  bool // mint authority kept (further supply can be minted)
	Freezable bool // freeze authority kept
	Updatable bool // metadata update authority kept
}

// TokenCreationRequest carries the user-entered parameters for one token
// creation. Treated as immutable once handed to the orchestrator.
type TokenCreationRequest struct {
	Name      string         // token display name
	Symbol    string         // ticker symbol
	Decimals  int            // decimal places, 0..9 for SPL mints
	Supply    string         // initial supply, non-negative decimal string
	ImageData []byte         // optional raw image bytes
	ImageName string         // original filename of the image, may be empty
	Flags     AuthorityFlags // retained authorities
}

// HasImage reports whether the request carries an image asset.
func (r *TokenCreationRequest) HasImage() bool {
	return len(r.ImageData) > 0
}

// StoredToken is the durable record of a successfully minted token.
// At most one record exists per MintAddress; records are never updated
// in place and are removed only by an explicit clear-all.
type StoredToken struct {
	ID          string // deterministic record hash
	Name        string
	Symbol      string
	MintAddress string // on-chain mint address, natural key
	ImageURI    string // asset reference URI, empty when no image
	CreatedAt   int64  // Unix timestamp in milliseconds
	Supply      string
	Decimals    string
}
