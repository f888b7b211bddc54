package minting

import (
	"crypto/sha256"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// Well-known program addresses.
const (
	TokenProgramID         = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	TokenMetadataProgramID = "metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s"
)

// ValidateMintAddress checks that addr is a well-formed base58-encoded
// 32-byte public key.
func ValidateMintAddress(addr string) error {
	if addr == "" {
		return fmt.Errorf("empty mint address")
	}
	decoded, err := base58.Decode(addr)
	if err != nil {
		return fmt.Errorf("decode mint address: %w", err)
	}
	if len(decoded) != 32 {
		return fmt.Errorf("mint address must decode to 32 bytes, got %d", len(decoded))
	}
	return nil
}

// DeriveMetadataAddress derives the token metadata account for a mint.
// Seeds: "metadata" | metadata program | mint, per the metadata program
// convention.
func DeriveMetadataAddress(mint string) (string, error) {
	mintBytes, err := base58.Decode(mint)
	if err != nil {
		return "", fmt.Errorf("decode mint: %w", err)
	}
	programBytes, err := base58.Decode(TokenMetadataProgramID)
	if err != nil {
		return "", fmt.Errorf("decode metadata program id: %w", err)
	}

	seeds := [][]byte{[]byte("metadata"), programBytes, mintBytes}
	addr := findProgramAddress(seeds, programBytes)
	if addr == "" {
		return "", fmt.Errorf("no off-curve address found for mint %s", mint)
	}
	return addr, nil
}

// findProgramAddress finds the first off-curve derived address by
// walking bump seeds downward from 255.
func findProgramAddress(seeds [][]byte, programID []byte) string {
	for bump := byte(255); bump > 0; bump-- {
		data := make([]byte, 0)
		for _, seed := range seeds {
			data = append(data, seed...)
		}
		data = append(data, bump)
		data = append(data, programID...)
		data = append(data, []byte("ProgramDerivedAddress")...)

		hash := sha256.Sum256(data)

		// Program addresses must be off the ed25519 curve.
		if !isOnCurve(hash[:]) {
			return base58.Encode(hash[:])
		}
	}

	return ""
}

func isOnCurve(point []byte) bool {
	if len(point) != 32 {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(point)
	return err == nil
}
