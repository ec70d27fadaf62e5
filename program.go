package coinchain

import (
	"crypto/sha256"
	"encoding/binary"

	"lightrail/coinchain/runtime"
)

// ProgramID is the coin-transfer program's deployment identity.
var ProgramID = runtime.NamedID("lightrail/coinchain/transfer/v1")

// StateSeed is the fixed seed the singleton state account is derived from.
const StateSeed = "program_state"

// Method discriminators, the first eight bytes of SHA-256 over
// "global:<name>".
var (
	initializeMethod = methodID("initialize")
	transferMethod   = methodID("transfer")
	getBalanceMethod = methodID("get_balance")
)

func methodID(name string) (d [8]byte) {
	h := sha256.Sum256([]byte("global:" + name))
	copy(d[:], h[:8])
	return d
}

// StateAddress is the derived address of the singleton state account.
func StateAddress() (runtime.Pubkey, uint8) {
	return runtime.DeriveAddress(ProgramID, []byte(StateSeed))
}

// Program dispatches the three coin-transfer instructions by method
// discriminator.
type Program struct{}

// Execute implements runtime.Program.
func (Program) Execute(ctx *runtime.Context, data []byte) error {
	if len(data) < 8 {
		return runtime.ErrBadInstruction
	}
	var method [8]byte
	copy(method[:], data[:8])
	args := data[8:]

	switch method {
	case initializeMethod:
		if len(args) != 0 {
			return runtime.ErrBadInstruction
		}
		return handleInitialize(ctx)
	case transferMethod:
		if len(args) != 8 {
			return runtime.ErrBadInstruction
		}
		return handleTransfer(ctx, binary.LittleEndian.Uint64(args))
	case getBalanceMethod:
		if len(args) != 0 {
			return runtime.ErrBadInstruction
		}
		return handleGetBalance(ctx)
	default:
		return runtime.ErrBadInstruction
	}
}

// NewInitialize builds the initialize instruction for authority.
func NewInitialize(authority runtime.Pubkey) runtime.Instruction {
	state, _ := StateAddress()
	return runtime.Instruction{
		Program: ProgramID,
		Accounts: []runtime.AccountMeta{
			{Key: state, IsWritable: true},
			{Key: authority, IsSigner: true, IsWritable: true},
			{Key: runtime.SystemProgramID},
		},
		Data: initializeMethod[:],
	}
}

// NewTransfer builds the transfer instruction moving amount lamports from
// sender to recipient.
func NewTransfer(sender, recipient runtime.Pubkey, amount uint64) runtime.Instruction {
	data := make([]byte, 8+8)
	copy(data, transferMethod[:])
	binary.LittleEndian.PutUint64(data[8:], amount)
	return runtime.Instruction{
		Program: ProgramID,
		Accounts: []runtime.AccountMeta{
			{Key: sender, IsSigner: true, IsWritable: true},
			{Key: recipient, IsWritable: true},
			{Key: runtime.SystemProgramID},
		},
		Data: data,
	}
}

// NewGetBalance builds the read-only balance query for account.
func NewGetBalance(account runtime.Pubkey) runtime.Instruction {
	return runtime.Instruction{
		Program: ProgramID,
		Accounts: []runtime.AccountMeta{
			{Key: account},
		},
		Data: getBalanceMethod[:],
	}
}
