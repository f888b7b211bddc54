// Package idhash computes deterministic identifiers for stored records.
package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ComputeTokenRecordID computes a deterministic token record ID using SHA256.
// Formula: SHA256(mint_address|name|symbol|created_at)
// Returns hex-encoded hash (64 characters).
func ComputeTokenRecordID(
	mintAddress string,
	name string,
	symbol string,
	createdAt int64,
) string {
	data := fmt.Sprintf("%s|%s|%s|%d",
		mintAddress,
		name,
		symbol,
		createdAt,
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

// ComputeEventID computes a deterministic creation event ID using SHA256.
// Formula: SHA256(mint_address|stage|outcome|created_at)
func ComputeEventID(
	mintAddress string,
	stage string,
	outcome string,
	createdAt int64,
) string {
	data := fmt.Sprintf("%s|%s|%s|%d",
		mintAddress,
		stage,
		outcome,
		createdAt,
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
