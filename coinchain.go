// Package coinchain is a coin-transfer program over an embedded account
// ledger: three instructions (initialize, transfer, get_balance), a
// fixed-layout singleton state record, and the daemon glue that exposes
// them over HTTP and keeps a transfer log.
package coinchain

import (
	"context"
	"database/sql"

	"github.com/chain/txvm/errors"

	"lightrail/coinchain/runtime"
	"lightrail/coinchain/store"
)

// TransferLogPin names the pin that mirrors applied transfers into the
// transfers table.
const TransferLogPin = "transferlog"

// Conductor ties the embedded runtime, its sqlite store, and the
// coin-transfer program to the HTTP surface.
type Conductor struct {
	DB *sql.DB
	RT *runtime.Runtime
}

// GetConductor creates the schema on db if needed, boots the runtime with
// the coin-transfer program registered, and launches the transfer-log pin.
// The pin stops when ctx is canceled.
func GetConductor(ctx context.Context, db *sql.DB) (*Conductor, error) {
	_, err := db.Exec(schema)
	if err != nil {
		return nil, errors.Wrap(err, "creating db schema")
	}

	accounts, err := store.New(db)
	if err != nil {
		return nil, errors.Wrap(err, "opening account store")
	}

	rt, err := runtime.New(ctx, accounts)
	if err != nil {
		return nil, errors.Wrap(err, "booting runtime")
	}
	rt.Register(ProgramID, Program{})

	c := &Conductor{DB: db, RT: rt}
	go c.RunPin(ctx, TransferLogPin, c.recordTransfers)
	return c, nil
}
