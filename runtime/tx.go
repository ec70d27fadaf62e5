package runtime

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"

	"github.com/chain/txvm/crypto/ed25519"
)

// Instruction names a program, the accounts it touches, and opaque call
// data. By convention the first 8 bytes of Data select a method and the
// remainder is that method's little-endian argument encoding.
type Instruction struct {
	Program  Pubkey        `json:"program"`
	Accounts []AccountMeta `json:"accounts"`
	Data     []byte        `json:"data"`
}

// Transaction is a signed list of instructions that the runtime applies
// atomically: either every instruction succeeds and every mutation lands,
// or none do.
type Transaction struct {
	// Nonce distinguishes otherwise identical submissions; clients set it
	// to a wall-clock reading. It feeds the transaction ID, which the
	// duplicate-submission guard keys on.
	Nonce        int64         `json:"nonce"`
	Instructions []Instruction `json:"instructions"`
	Signatures   []Signature   `json:"signatures"`
}

// Signature is one signer's ed25519 signature over the transaction message.
type Signature struct {
	Key Pubkey `json:"key"`
	Sig []byte `json:"sig"`
}

// Message returns the canonical byte string signers sign: the nonce and
// every instruction, length-prefixed field by field. Signatures are not
// part of the message.
func (tx *Transaction) Message() []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, tx.Nonce)
	binary.Write(&buf, binary.LittleEndian, uint32(len(tx.Instructions)))
	for _, inst := range tx.Instructions {
		buf.Write(inst.Program[:])
		binary.Write(&buf, binary.LittleEndian, uint32(len(inst.Accounts)))
		for _, m := range inst.Accounts {
			buf.Write(m.Key[:])
			var flags byte
			if m.IsSigner {
				flags |= 1
			}
			if m.IsWritable {
				flags |= 2
			}
			buf.WriteByte(flags)
		}
		binary.Write(&buf, binary.LittleEndian, uint32(len(inst.Data)))
		buf.Write(inst.Data)
	}
	return buf.Bytes()
}

// ID is the transaction's unique hash, the SHA-256 of its message.
func (tx *Transaction) ID() [32]byte {
	return sha256.Sum256(tx.Message())
}

// Sign appends prv's signature over the transaction message. Call after
// the instruction list is final; earlier signatures do not cover later
// edits.
func (tx *Transaction) Sign(prv ed25519.PrivateKey) {
	tx.Signatures = append(tx.Signatures, Signature{
		Key: PubkeyFromKey(prv.Public().(ed25519.PublicKey)),
		Sig: ed25519.Sign(prv, tx.Message()),
	})
}
