package domain

// AssetOrigin identifies which upload tier produced an asset reference.
type AssetOrigin string

const (
	OriginRemotePinned  AssetOrigin = "remote-pinned"
	OriginLocalFallback AssetOrigin = "local-fallback"
)

// String returns the string representation of AssetOrigin.
func (o AssetOrigin) String() string {
	return string(o)
}

// IsValid checks if the origin is a valid value.
func (o AssetOrigin) IsValid() bool {
	return o == OriginRemotePinned || o == OriginLocalFallback
}

// AssetReference is the stable reference to an uploaded asset.
// Produced exactly once per successful upload and never mutated.
type AssetReference struct {
	URI    string      // fetchable URI for the asset
	Origin AssetOrigin // tier that produced the reference
}
