package coinchain

// TransferError is one of the program's named failure conditions. Codes
// are stable and start at 6000, after the range the runtime reserves for
// its own failures.
type TransferError struct {
	Code int
	Name string
	msg  string
}

func (e *TransferError) Error() string { return e.msg }

var (
	// ErrInvalidAmount rejects transfers of zero lamports.
	ErrInvalidAmount = &TransferError{6000, "InvalidAmount", "transfer amount must be greater than 0"}

	// ErrInsufficientFunds rejects transfers exceeding the sender's balance.
	ErrInsufficientFunds = &TransferError{6001, "InsufficientFunds", "sender has insufficient funds for this transfer"}

	// ErrInvalidRecipient and ErrUnauthorized are declared for callers but
	// raised by no present check.
	ErrInvalidRecipient = &TransferError{6002, "InvalidRecipient", "invalid recipient address"}
	ErrUnauthorized     = &TransferError{6003, "Unauthorized", "signer does not have permission"}
)
