package coinchain

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log"

	"github.com/bobg/sqlutil"
	"github.com/chain/txvm/errors"

	"lightrail/coinchain/runtime"
)

// RunPin runs as a goroutine, feeding every applied transaction at or
// after the pin's recorded position to f, in order, exactly once per
// position. The pin resumes where it left off across restarts.
func (c *Conductor) RunPin(ctx context.Context, name string, f func(context.Context, *runtime.AppliedTx) error) {
	defer log.Printf("RunPin(%s) exiting", name)

	r := c.RT.W.Reader()
	defer r.Dispose()

	_, err := c.DB.ExecContext(ctx, `INSERT OR IGNORE INTO pins (name, seq) VALUES ($1, 0)`, name)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		log.Fatalf("creating pin %s: %s", name, err)
	}

	var lastSeq uint64
	err = c.DB.QueryRowContext(ctx, `SELECT seq FROM pins WHERE name = $1`, name).Scan(&lastSeq)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		log.Fatalf("getting position of pin %s: %s", name, err)
	}

	// Process the backlog after lastSeq before going live.

	var backlog []*runtime.AppliedTx
	err = sqlutil.ForQueryRows(ctx, c.DB, `SELECT bits, seq FROM txs WHERE seq > $1 ORDER BY seq`, lastSeq, func(bits []byte, seq uint64) error {
		atx := new(runtime.AppliedTx)
		err := json.Unmarshal(bits, atx)
		if err != nil {
			return errors.Wrapf(err, "unmarshaling applied tx %d", seq)
		}
		backlog = append(backlog, atx)
		return nil
	})
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		log.Fatalf("reading backlog for pin %s: %s", name, err)
	}

	processTx := func(atx *runtime.AppliedTx) error {
		if atx.Seq != lastSeq+1 {
			return fmt.Errorf("missing applied tx %d", lastSeq+1)
		}
		err := f(ctx, atx)
		if err != nil {
			return errors.Wrapf(err, "running pin %s on tx %d", name, atx.Seq)
		}
		_, err = c.DB.Exec(`UPDATE pins SET seq = $1 WHERE name = $2`, atx.Seq, name) // n.b. not ExecContext
		if err != nil {
			return errors.Wrapf(err, "updating pin %s after tx %d", name, atx.Seq)
		}
		lastSeq = atx.Seq
		return nil
	}

	for _, atx := range backlog {
		err = processTx(atx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			log.Fatalf("processing backlog tx %d: %s", atx.Seq, err)
		}
	}

	for {
		x, ok := r.Read(ctx)
		if !ok {
			if ctx.Err() != nil {
				return
			}
			log.Fatalf("error waiting for applied tx %d", lastSeq+1)
		}
		atx := x.(*runtime.AppliedTx)
		if atx.Seq <= lastSeq {
			continue
		}
		err = processTx(atx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			log.Fatalf("processing live tx %d: %s", atx.Seq, err)
		}
	}
}

// recordTransfers mirrors every successful transfer instruction of an
// applied transaction into the transfers table.
func (c *Conductor) recordTransfers(ctx context.Context, atx *runtime.AppliedTx) error {
	txid := atx.Tx.ID()
	for ix, inst := range atx.Tx.Instructions {
		sender, recipient, amount, ok := parseTransfer(inst)
		if !ok {
			continue
		}
		const q = `INSERT OR IGNORE INTO transfers
			(txid, ix, sender, recipient, amount, timestamp)
			VALUES ($1, $2, $3, $4, $5, $6)`
		_, err := c.DB.ExecContext(ctx, q, txid[:], ix, sender[:], recipient[:], amount, atx.Time.Unix())
		if err != nil {
			return errors.Wrap(err, "inserting transfer in db")
		}
		log.Printf("recorded transfer of %d lamports from %s to %s", amount, sender, recipient)
	}
	return nil
}

// parseTransfer recognizes a coin-transfer program transfer instruction.
func parseTransfer(inst runtime.Instruction) (sender, recipient runtime.Pubkey, amount uint64, ok bool) {
	if inst.Program != ProgramID || len(inst.Data) != 16 || len(inst.Accounts) != 3 {
		return sender, recipient, 0, false
	}
	var method [8]byte
	copy(method[:], inst.Data[:8])
	if method != transferMethod {
		return sender, recipient, 0, false
	}
	return inst.Accounts[transferSenderAcct].Key,
		inst.Accounts[transferRecipientAcct].Key,
		binary.LittleEndian.Uint64(inst.Data[8:]),
		true
}
