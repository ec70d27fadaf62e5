package runtime

import (
	"encoding/binary"
	"math"

	"github.com/chain/txvm/errors"
)

// System instruction selectors, a u32 little-endian prefix on the
// instruction data.
const (
	sysCreateAccount uint32 = 0
	sysTransfer      uint32 = 2
)

// Failure conditions the runtime and system program raise. Program-defined
// error taxonomies layer on top of these; see the coinchain package.
var (
	ErrAccountExists       = errors.New("account already exists")
	ErrInsufficientBalance = errors.New("insufficient lamports for debit")
	ErrBelowRentMinimum    = errors.New("balance below rent-exempt minimum")
	ErrMissingSigner       = errors.New("required signature is missing")
	ErrNotWritable         = errors.New("account is not declared writable")
	ErrUnknownProgram      = errors.New("no such program")
	ErrBadInstruction      = errors.New("malformed instruction")
	ErrBadSignature        = errors.New("signature verification failed")
	ErrDuplicateTx         = errors.New("transaction already seen")
	ErrBalanceOverflow     = errors.New("credit would overflow balance")
)

// NewCreateAccount builds the system instruction that creates a funded
// account at addr, owned by owner and sized to space bytes, debiting the
// creation balance from payer. Creation fails if addr is already present.
func NewCreateAccount(payer, addr, owner Pubkey, lamports, space uint64) Instruction {
	data := make([]byte, 4+8+8+32)
	binary.LittleEndian.PutUint32(data, sysCreateAccount)
	binary.LittleEndian.PutUint64(data[4:], lamports)
	binary.LittleEndian.PutUint64(data[12:], space)
	copy(data[20:], owner[:])
	return Instruction{
		Program: SystemProgramID,
		Accounts: []AccountMeta{
			{Key: payer, IsSigner: true, IsWritable: true},
			{Key: addr, IsSigner: true, IsWritable: true},
		},
		Data: data,
	}
}

// NewTransfer builds the native transfer moving lamports from sender to
// recipient. This is the only primitive that moves balance between
// existing accounts.
func NewTransfer(sender, recipient Pubkey, lamports uint64) Instruction {
	data := make([]byte, 4+8)
	binary.LittleEndian.PutUint32(data, sysTransfer)
	binary.LittleEndian.PutUint64(data[4:], lamports)
	return Instruction{
		Program: SystemProgramID,
		Accounts: []AccountMeta{
			{Key: sender, IsSigner: true, IsWritable: true},
			{Key: recipient, IsWritable: true},
		},
		Data: data,
	}
}

// systemProgram is the built-in home of account creation and native
// transfers. It is registered at SystemProgramID on every runtime.
type systemProgram struct{}

func (systemProgram) Execute(ctx *Context, data []byte) error {
	if len(data) < 4 {
		return ErrBadInstruction
	}
	switch binary.LittleEndian.Uint32(data) {
	case sysCreateAccount:
		return sysDoCreateAccount(ctx, data[4:])
	case sysTransfer:
		return sysDoTransfer(ctx, data[4:])
	default:
		return ErrBadInstruction
	}
}

func sysDoCreateAccount(ctx *Context, args []byte) error {
	if len(args) != 8+8+32 || ctx.NumAccounts() != 2 {
		return ErrBadInstruction
	}
	lamports := binary.LittleEndian.Uint64(args)
	space := binary.LittleEndian.Uint64(args[8:])
	var owner Pubkey
	copy(owner[:], args[16:])

	payer, acct := ctx.Account(0), ctx.Account(1)
	if !ctx.IsSigner(0) || !ctx.IsSigner(1) {
		return ErrMissingSigner
	}
	if !ctx.IsWritable(0) || !ctx.IsWritable(1) {
		return ErrNotWritable
	}
	if acct.Exists() {
		return errors.Wrapf(ErrAccountExists, "create %s", acct.Key)
	}
	if lamports < RentExemptMinimum(int(space)) {
		return errors.Wrapf(ErrBelowRentMinimum, "create %s with %d lamports", acct.Key, lamports)
	}
	if payer.Lamports < lamports {
		return errors.Wrapf(ErrInsufficientBalance, "payer %s", payer.Key)
	}

	payer.Lamports -= lamports
	acct.Lamports = lamports
	acct.Owner = owner
	acct.Data = make([]byte, space)
	return nil
}

func sysDoTransfer(ctx *Context, args []byte) error {
	if len(args) != 8 || ctx.NumAccounts() != 2 {
		return ErrBadInstruction
	}
	lamports := binary.LittleEndian.Uint64(args)

	sender, recipient := ctx.Account(0), ctx.Account(1)
	if !ctx.IsSigner(0) {
		return ErrMissingSigner
	}
	if !ctx.IsWritable(0) || !ctx.IsWritable(1) {
		return ErrNotWritable
	}
	if sender.Lamports < lamports {
		return errors.Wrapf(ErrInsufficientBalance, "sender %s", sender.Key)
	}
	if recipient.Lamports > math.MaxUint64-lamports {
		return errors.Wrapf(ErrBalanceOverflow, "recipient %s", recipient.Key)
	}

	sender.Lamports -= lamports
	recipient.Lamports += lamports
	return nil
}
