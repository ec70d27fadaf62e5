package coinchain

import (
	"context"
	"database/sql"
	"encoding/binary"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chain/txvm/errors"

	"lightrail/coinchain/runtime"
)

func TestTransferChecks(t *testing.T) {
	withTestConductor(context.Background(), t, func(ctx context.Context, c *Conductor, db *sql.DB, server *httptest.Server) {
		sender, prv := genKey(t)
		recipient, _ := genKey(t)

		_, err := c.RT.Airdrop(ctx, sender, 5_000_000_000)
		if err != nil {
			t.Fatal(err)
		}

		// Zero amount fails first, before any balance inspection.
		_, err = c.RT.Apply(ctx, signedTransfer(prv, sender, recipient, 0))
		if errors.Root(err) != ErrInvalidAmount {
			t.Fatalf("got error %v, want %v", err, ErrInvalidAmount)
		}
		assertBalances(ctx, t, c, sender, recipient, 5_000_000_000, 0)

		// A shortfall fails with no balance movement.
		_, err = c.RT.Apply(ctx, signedTransfer(prv, sender, recipient, 5_000_000_001))
		if errors.Root(err) != ErrInsufficientFunds {
			t.Fatalf("got error %v, want %v", err, ErrInsufficientFunds)
		}
		assertBalances(ctx, t, c, sender, recipient, 5_000_000_000, 0)

		// An affordable amount moves exactly that amount.
		_, err = c.RT.Apply(ctx, signedTransfer(prv, sender, recipient, 1_000_000_000))
		if err != nil {
			t.Fatal(err)
		}
		assertBalances(ctx, t, c, sender, recipient, 4_000_000_000, 1_000_000_000)

		// The whole balance is spendable.
		_, err = c.RT.Apply(ctx, signedTransfer(prv, sender, recipient, 4_000_000_000))
		if err != nil {
			t.Fatal(err)
		}
		assertBalances(ctx, t, c, sender, recipient, 0, 5_000_000_000)
	})
}

func assertBalances(ctx context.Context, t *testing.T, c *Conductor, sender, recipient runtime.Pubkey, wantSender, wantRecipient uint64) {
	t.Helper()

	senderAcct, err := c.RT.Account(ctx, sender)
	if err != nil {
		t.Fatal(err)
	}
	recipientAcct, err := c.RT.Account(ctx, recipient)
	if err != nil {
		t.Fatal(err)
	}
	if senderAcct.Lamports != wantSender {
		t.Errorf("sender balance is %d, want %d", senderAcct.Lamports, wantSender)
	}
	if recipientAcct.Lamports != wantRecipient {
		t.Errorf("recipient balance is %d, want %d", recipientAcct.Lamports, wantRecipient)
	}
	if total := senderAcct.Lamports + recipientAcct.Lamports; total != wantSender+wantRecipient {
		t.Errorf("lamports not conserved: %d", total)
	}
}

func TestTransferRejectsUnsignedSender(t *testing.T) {
	withTestConductor(context.Background(), t, func(ctx context.Context, c *Conductor, db *sql.DB, server *httptest.Server) {
		sender, _ := genKey(t)
		recipient, thiefPrv := genKey(t)

		_, err := c.RT.Airdrop(ctx, sender, 1_000_000)
		if err != nil {
			t.Fatal(err)
		}

		// Signed, but not by the sender.
		tx := &runtime.Transaction{
			Nonce:        time.Now().UnixNano(),
			Instructions: []runtime.Instruction{NewTransfer(sender, recipient, 1_000)},
		}
		tx.Sign(thiefPrv)
		_, err = c.RT.Apply(ctx, tx)
		if errors.Root(err) != runtime.ErrMissingSigner {
			t.Fatalf("got error %v, want %v", err, runtime.ErrMissingSigner)
		}
		assertBalances(ctx, t, c, sender, recipient, 1_000_000, 0)
	})
}

func TestGetBalanceReadsExactly(t *testing.T) {
	withTestConductor(context.Background(), t, func(ctx context.Context, c *Conductor, db *sql.DB, server *httptest.Server) {
		account, _ := genKey(t)

		_, err := c.RT.Airdrop(ctx, account, 123_456_789)
		if err != nil {
			t.Fatal(err)
		}

		for i := 0; i < 2; i++ {
			tx := &runtime.Transaction{
				Nonce:        time.Now().UnixNano(),
				Instructions: []runtime.Instruction{NewGetBalance(account)},
			}
			res, err := c.RT.Simulate(ctx, tx)
			if err != nil {
				t.Fatal(err)
			}
			if got := binary.LittleEndian.Uint64(res.ReturnData); got != 123_456_789 {
				t.Errorf("get_balance returned %d, want 123456789", got)
			}
		}

		// Querying an account nobody has ever funded is not an error.
		ghost, _ := genKey(t)
		tx := &runtime.Transaction{
			Nonce:        time.Now().UnixNano(),
			Instructions: []runtime.Instruction{NewGetBalance(ghost)},
		}
		res, err := c.RT.Simulate(ctx, tx)
		if err != nil {
			t.Fatal(err)
		}
		if got := binary.LittleEndian.Uint64(res.ReturnData); got != 0 {
			t.Errorf("get_balance on an unused account returned %d, want 0", got)
		}
	})
}
