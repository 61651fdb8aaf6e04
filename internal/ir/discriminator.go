package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// AnchorDiscriminator computes Anchor's 8-byte instruction discriminator:
// the first 8 bytes of sha256("global:<name>"). Every public instruction
// and CPI target carries one in the generated Rust and the IDL.
func AnchorDiscriminator(name string) [8]byte {
	sum := sha256.Sum256([]byte("global:" + name))
	var out [8]byte
	copy(out[:], sum[:8])
	return out
}

// AnchorDiscriminatorHex renders AnchorDiscriminator as a 16-character
// lowercase hex string with no separators (e.g. "abcd...").
func AnchorDiscriminatorHex(name string) string {
	d := AnchorDiscriminator(name)
	return hex.EncodeToString(d[:])
}

// AnchorAccountDiscriminator computes the 8-byte discriminator Anchor
// prefixes onto every `#[account]`-tagged account's on-chain bytes: the
// first 8 bytes of sha256("account:<StructName>"). It shares
// AnchorDiscriminator's algorithm but a different namespace prefix, since
// Anchor hashes instructions and accounts into disjoint discriminator
// spaces.
func AnchorAccountDiscriminator(structName string) [8]byte {
	sum := sha256.Sum256([]byte("account:" + structName))
	var out [8]byte
	copy(out[:], sum[:8])
	return out
}

// SoliditySelectorComment renders the informational, Solidity-compatible
// 4-byte Keccak-256 function selector for a CPI call, purely as a
// human-readable comment alongside the generated Anchor discriminator — it
// has no bearing on the actual on-chain dispatch, which is Anchor's sha256
// scheme above.
func SoliditySelectorComment(signature string) string {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(signature))
	sum := h.Sum(nil)
	return fmt.Sprintf("solidity-compatible selector: 0x%s", hex.EncodeToString(sum[:4]))
}
