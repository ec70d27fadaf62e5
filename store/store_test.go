package store

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"lightrail/coinchain/runtime"
)

func withTestStore(t *testing.T, fn func(ctx context.Context, s *AccountStore)) {
	f, err := os.CreateTemp("", "teststore")
	if err != nil {
		t.Fatal(err)
	}
	tmpfile := f.Name()
	f.Close()
	defer os.Remove(tmpfile)

	db, err := sql.Open("sqlite3", tmpfile)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	s, err := New(db)
	if err != nil {
		t.Fatal(err)
	}
	fn(context.Background(), s)
}

func TestAccountRoundTrip(t *testing.T) {
	withTestStore(t, func(ctx context.Context, s *AccountStore) {
		key := runtime.NamedID("test-account")

		got, err := s.GetAccount(ctx, key)
		if err != nil {
			t.Fatal(err)
		}
		if got != nil {
			t.Fatalf("loading an absent account returned %+v, want nil", got)
		}

		acct := &runtime.Account{
			Key:      key,
			Lamports: 42,
			Owner:    runtime.SystemProgramID,
			Data:     []byte{1, 2, 3},
		}
		err = s.PutAccount(ctx, acct)
		if err != nil {
			t.Fatal(err)
		}

		got, err = s.GetAccount(ctx, key)
		if err != nil {
			t.Fatal(err)
		}
		if got.Lamports != 42 || got.Owner != runtime.SystemProgramID || string(got.Data) != string(acct.Data) {
			t.Errorf("account round-tripped to %+v", got)
		}

		// Put replaces.
		acct.Lamports = 7
		err = s.PutAccount(ctx, acct)
		if err != nil {
			t.Fatal(err)
		}
		got, err = s.GetAccount(ctx, key)
		if err != nil {
			t.Fatal(err)
		}
		if got.Lamports != 7 {
			t.Errorf("account balance is %d after replace, want 7", got.Lamports)
		}
	})
}

func TestTxHeight(t *testing.T) {
	withTestStore(t, func(ctx context.Context, s *AccountStore) {
		height, err := s.TxHeight(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if height != 0 {
			t.Fatalf("fresh ledger has height %d, want 0", height)
		}

		for seq := uint64(1); seq <= 3; seq++ {
			atx := &runtime.AppliedTx{
				Seq:  seq,
				Time: time.Now(),
				Tx:   &runtime.Transaction{Nonce: int64(seq)},
			}
			err = s.SaveTx(ctx, atx)
			if err != nil {
				t.Fatal(err)
			}
		}

		height, err = s.TxHeight(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if height != 3 {
			t.Errorf("height is %d after three txs, want 3", height)
		}
	})
}
