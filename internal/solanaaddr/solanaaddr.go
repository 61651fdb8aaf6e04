// Package solanaaddr provides minimal Solana Pubkey helpers: base58
// encode/decode for address strings and the all-zero address constant.
// No other package of the compiler imports it.
package solanaaddr

import (
	"fmt"

	"github.com/mr-tron/base58"
)

// Size is the byte length of a Solana public key.
const Size = 32

// Pubkey is a 32-byte Solana account address.
type Pubkey [Size]byte

// Zero is the all-zero Pubkey; its base58 form is
// `11111111111111111111111111111111`, the System Program's address.
var Zero = Pubkey{}

// String base58-encodes the key, Solana's canonical textual form.
func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

// Decode parses a base58-encoded Solana address literal. It rejects any
// string that doesn't decode to exactly Size bytes.
func Decode(s string) (Pubkey, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return Pubkey{}, fmt.Errorf("solanaaddr: invalid base58 address %q: %w", s, err)
	}
	if len(raw) != Size {
		return Pubkey{}, fmt.Errorf("solanaaddr: address %q decodes to %d bytes, want %d", s, len(raw), Size)
	}
	var pk Pubkey
	copy(pk[:], raw)
	return pk, nil
}

// IsValid reports whether s is a well-formed base58 Solana address literal.
func IsValid(s string) bool {
	_, err := Decode(s)
	return err == nil
}
