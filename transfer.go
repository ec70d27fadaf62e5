package coinchain

import (
	"lightrail/coinchain/runtime"
)

// Account positions within the transfer instruction.
const (
	transferSenderAcct = iota
	transferRecipientAcct
	transferSystemAcct
)

// handleTransfer moves amount lamports from the signing sender to the
// recipient. Two checks, in order, first failure wins; the actual debit
// and credit are delegated to the system program's transfer primitive,
// which owns atomicity and rent enforcement.
func handleTransfer(ctx *runtime.Context, amount uint64) error {
	if ctx.NumAccounts() != 3 {
		return runtime.ErrBadInstruction
	}
	if !ctx.IsSigner(transferSenderAcct) {
		return runtime.ErrMissingSigner
	}

	if amount == 0 {
		return ErrInvalidAmount
	}

	sender := ctx.Account(transferSenderAcct)
	recipient := ctx.Account(transferRecipientAcct)

	// The recipient is deliberately unchecked: any account can receive.
	if sender.Lamports < amount {
		return ErrInsufficientFunds
	}

	ctx.Logf("=== coin transfer ===")
	ctx.Logf("amount: %d lamports", amount)
	ctx.Logf("from: %s", sender.Key)
	ctx.Logf("to: %s", recipient.Key)

	return ctx.Invoke(runtime.NewTransfer(sender.Key, recipient.Key, amount))
}
