package coinchain

import (
	"lightrail/coinchain/runtime"
)

// Account positions within the initialize instruction.
const (
	initStateAcct = iota
	initAuthorityAcct
	initSystemAcct
)

// handleInitialize creates the singleton state account at its derived
// address, funded by the signing authority, and writes the initial record.
// Running at most once is enforced entirely by create-if-absent at the
// derived address; there is no in-program guard.
func handleInitialize(ctx *runtime.Context) error {
	if ctx.NumAccounts() != 3 {
		return runtime.ErrBadInstruction
	}
	if !ctx.IsSigner(initAuthorityAcct) {
		return runtime.ErrMissingSigner
	}

	state := ctx.Account(initStateAcct)
	authority := ctx.Account(initAuthorityAcct)

	derived, _ := StateAddress()
	if state.Key != derived {
		return runtime.ErrBadInstruction
	}

	err := ctx.Invoke(
		runtime.NewCreateAccount(authority.Key, derived, ProgramID, runtime.RentExemptMinimum(StateSize), StateSize),
		[][]byte{[]byte(StateSeed)},
	)
	if err != nil {
		return err
	}

	var s ProgramState
	s.Init(authority.Key)
	copy(state.Data, s.Marshal())

	ctx.Logf("coin transfer program initialized")
	ctx.Logf("authority: %s", authority.Key)
	return nil
}
