package coinchain

import (
	"context"
	"database/sql"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/chain/txvm/errors"
	"github.com/davecgh/go-spew/spew"

	"lightrail/coinchain/runtime"
)

func TestInitializeOnce(t *testing.T) {
	withTestConductor(context.Background(), t, func(ctx context.Context, c *Conductor, db *sql.DB, server *httptest.Server) {
		authority, prv := genKey(t)

		_, err := c.RT.Airdrop(ctx, authority, 5_000_000_000)
		if err != nil {
			t.Fatal(err)
		}

		initTx := func() *runtime.Transaction {
			tx := &runtime.Transaction{
				Nonce:        time.Now().UnixNano(),
				Instructions: []runtime.Instruction{NewInitialize(authority)},
			}
			tx.Sign(prv)
			return tx
		}

		_, err = c.RT.Apply(ctx, initTx())
		if err != nil {
			t.Fatal(err)
		}

		stateAddr, _ := StateAddress()
		acct, err := c.RT.Account(ctx, stateAddr)
		if err != nil {
			t.Fatal(err)
		}
		if !acct.Exists() {
			t.Fatal("state account missing after initialize")
		}
		if acct.Owner != ProgramID {
			t.Errorf("state account owned by %s, want %s", acct.Owner, ProgramID)
		}
		if acct.Lamports < runtime.RentExemptMinimum(StateSize) {
			t.Errorf("state account balance %d is below the rent-exempt minimum", acct.Lamports)
		}

		first, err := UnmarshalProgramState(acct.Data)
		if err != nil {
			t.Fatal(err)
		}
		want := &ProgramState{Authority: authority, Version: 1}
		if !reflect.DeepEqual(first, want) {
			t.Fatalf("unexpected state after initialize: %s", spew.Sdump(first))
		}

		// The create-if-absent semantics at the derived address are the
		// entire once-only guarantee.
		_, err = c.RT.Apply(ctx, initTx())
		if errors.Root(err) != runtime.ErrAccountExists {
			t.Fatalf("got error %v reinitializing, want %v", err, runtime.ErrAccountExists)
		}

		acct, err = c.RT.Account(ctx, stateAddr)
		if err != nil {
			t.Fatal(err)
		}
		second, err := UnmarshalProgramState(acct.Data)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("state changed across a failed reinitialize: %s", spew.Sdump(second))
		}

		// The authority paid for the state account out of its own balance.
		payer, err := c.RT.Account(ctx, authority)
		if err != nil {
			t.Fatal(err)
		}
		if want := 5_000_000_000 - acct.Lamports; payer.Lamports != want {
			t.Errorf("authority balance is %d, want %d", payer.Lamports, want)
		}
	})
}
