package runtime

import (
	"crypto/sha256"

	"github.com/chain/txvm/crypto/ed25519"
	"github.com/chain/txvm/errors"
	"github.com/mr-tron/base58"
)

// Pubkey is a 32-byte account address.
type Pubkey [32]byte

// SystemProgramID is the address of the built-in system program. It owns
// every plain balance account and is the only program that moves lamports
// or creates accounts.
var SystemProgramID = mustParsePubkey("11111111111111111111111111111111")

// ErrBadPubkey means a pubkey's text form did not decode to 32 bytes.
var ErrBadPubkey = errors.New("malformed pubkey")

func (p Pubkey) String() string { return base58.Encode(p[:]) }

// ParsePubkey decodes the base58 text form of an address.
func ParsePubkey(s string) (Pubkey, error) {
	var p Pubkey
	bits, err := base58.Decode(s)
	if err != nil {
		return p, errors.Wrap(ErrBadPubkey, err.Error())
	}
	if len(bits) != len(p) {
		return p, ErrBadPubkey
	}
	copy(p[:], bits)
	return p, nil
}

func mustParsePubkey(s string) Pubkey {
	p, err := ParsePubkey(s)
	if err != nil {
		panic(err)
	}
	return p
}

// PubkeyFromKey converts an ed25519 public key to an address.
func PubkeyFromKey(key ed25519.PublicKey) Pubkey {
	var p Pubkey
	copy(p[:], key)
	return p
}

// NamedID derives a stable program deployment identity from a name.
// It stands in for the keypair-generated program IDs a public deployment
// would embed at build time.
func NamedID(name string) Pubkey {
	return Pubkey(sha256.Sum256([]byte(name)))
}

func (p Pubkey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Pubkey) UnmarshalText(text []byte) error {
	q, err := ParsePubkey(string(text))
	if err != nil {
		return err
	}
	*p = q
	return nil
}
