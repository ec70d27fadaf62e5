package coinchain

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"math"

	"github.com/chain/txvm/errors"

	"lightrail/coinchain/runtime"
)

// StateSize is the byte length of the packed ProgramState record,
// including the 8-byte discriminator prefix.
const StateSize = 8 + 32 + 8 + 8 + 1 + 64

// TransferRecordSize is the byte length of a packed TransferRecord.
const TransferRecordSize = 8 + 32 + 32 + 8 + 8 + 1

// ErrBadRecord means account data did not carry the expected discriminator
// or length.
var ErrBadRecord = errors.New("malformed account record")

var (
	stateDiscriminator          = accountDiscriminator("ProgramState")
	transferRecordDiscriminator = accountDiscriminator("TransferRecord")
)

// accountDiscriminator is the fixed tag distinguishing account layouts:
// the first eight bytes of SHA-256 over "account:<name>".
func accountDiscriminator(name string) (d [8]byte) {
	h := sha256.Sum256([]byte("account:" + name))
	copy(d[:], h[:8])
	return d
}

// ProgramState is the singleton metadata record created by initialize. The
// counters only move through RecordTransfer and only upward.
type ProgramState struct {
	Authority      runtime.Pubkey
	TotalTransfers uint64
	TotalVolume    uint64
	Version        uint8
}

// Init sets the authority, zeroes the counters, and stamps the layout
// version.
func (s *ProgramState) Init(authority runtime.Pubkey) {
	s.Authority = authority
	s.TotalTransfers = 0
	s.TotalVolume = 0
	s.Version = 1
}

// RecordTransfer bumps the running counters, saturating at the top of the
// range. No handler calls this yet; the statistics it would feed remain an
// unfinished feature.
func (s *ProgramState) RecordTransfer(amount uint64) {
	s.TotalTransfers = satAdd(s.TotalTransfers, 1)
	s.TotalVolume = satAdd(s.TotalVolume, amount)
}

func satAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

// Marshal packs the record into its fixed layout: discriminator, 32-byte
// authority, two little-endian u64 counters, a version byte, and 64
// reserved bytes.
func (s *ProgramState) Marshal() []byte {
	out := make([]byte, StateSize)
	copy(out, stateDiscriminator[:])
	copy(out[8:], s.Authority[:])
	binary.LittleEndian.PutUint64(out[40:], s.TotalTransfers)
	binary.LittleEndian.PutUint64(out[48:], s.TotalVolume)
	out[56] = s.Version
	return out
}

// UnmarshalProgramState parses a packed ProgramState record.
func UnmarshalProgramState(data []byte) (*ProgramState, error) {
	if len(data) != StateSize {
		return nil, errors.Wrapf(ErrBadRecord, "state record is %d bytes, want %d", len(data), StateSize)
	}
	if !bytes.Equal(data[:8], stateDiscriminator[:]) {
		return nil, errors.Wrap(ErrBadRecord, "state record discriminator mismatch")
	}
	s := new(ProgramState)
	copy(s.Authority[:], data[8:40])
	s.TotalTransfers = binary.LittleEndian.Uint64(data[40:48])
	s.TotalVolume = binary.LittleEndian.Uint64(data[48:56])
	s.Version = data[56]
	return s, nil
}

// TransferRecord is the per-transfer record shape. The layout is defined
// for forward compatibility but no handler creates one; the daemon-level
// transfer log covers the bookkeeping instead.
type TransferRecord struct {
	Sender    runtime.Pubkey
	Recipient runtime.Pubkey
	Amount    uint64
	Timestamp int64
	Bump      uint8
}

// Marshal packs the record into its fixed layout.
func (r *TransferRecord) Marshal() []byte {
	out := make([]byte, TransferRecordSize)
	copy(out, transferRecordDiscriminator[:])
	copy(out[8:], r.Sender[:])
	copy(out[40:], r.Recipient[:])
	binary.LittleEndian.PutUint64(out[72:], r.Amount)
	binary.LittleEndian.PutUint64(out[80:], uint64(r.Timestamp))
	out[88] = r.Bump
	return out
}

// UnmarshalTransferRecord parses a packed TransferRecord.
func UnmarshalTransferRecord(data []byte) (*TransferRecord, error) {
	if len(data) != TransferRecordSize {
		return nil, errors.Wrapf(ErrBadRecord, "transfer record is %d bytes, want %d", len(data), TransferRecordSize)
	}
	if !bytes.Equal(data[:8], transferRecordDiscriminator[:]) {
		return nil, errors.Wrap(ErrBadRecord, "transfer record discriminator mismatch")
	}
	r := new(TransferRecord)
	copy(r.Sender[:], data[8:40])
	copy(r.Recipient[:], data[40:72])
	r.Amount = binary.LittleEndian.Uint64(data[72:80])
	r.Timestamp = int64(binary.LittleEndian.Uint64(data[80:88]))
	r.Bump = data[88]
	return r, nil
}
