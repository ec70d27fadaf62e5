// Package runtime is the embedded host ledger: accounts keyed by 32-byte
// addresses, an atomic transaction applier, the built-in system program
// that creates accounts and moves lamports, and a feed of applied
// transactions for followers.
package runtime

import (
	"context"
	"encoding/hex"
	"math"
	"sync"
	"time"

	"github.com/bobg/multichan"
	"github.com/chain/txvm/crypto/ed25519"
	"github.com/chain/txvm/errors"
	"github.com/patrickmn/go-cache"
)

// Store is the persistence the runtime drives. Absent accounts load as
// (nil, nil).
type Store interface {
	GetAccount(ctx context.Context, key Pubkey) (*Account, error)
	PutAccount(ctx context.Context, acct *Account) error
	TxHeight(ctx context.Context) (uint64, error)
	SaveTx(ctx context.Context, atx *AppliedTx) error
}

// Program is one executable registered with the runtime. Execute runs with
// the instruction's declared accounts materialized as working copies; an
// error discards the whole transaction.
type Program interface {
	Execute(ctx *Context, data []byte) error
}

// AppliedTx is one successfully applied transaction as recorded in the
// store and published on the feed. Seq increases by one per transaction.
type AppliedTx struct {
	Seq  uint64       `json:"seq"`
	Time time.Time    `json:"time"`
	Tx   *Transaction `json:"tx"`
}

// Result is the outcome of applying or simulating a transaction.
type Result struct {
	Logs       []string
	ReturnData []byte
}

// Dedup window for resubmitted transactions.
const seenTTL = 2 * time.Minute

// Runtime applies transactions against a Store. One transaction runs at a
// time: a single writer is the degenerate, always-correct schedule of the
// host's declared read/write-set scheduling, and nothing here is hot
// enough to need better.
type Runtime struct {
	mu       sync.Mutex
	store    Store
	programs map[Pubkey]Program
	seen     *cache.Cache
	height   uint64

	// W publishes *AppliedTx to any number of followers.
	W *multichan.W
}

// New boots a runtime over store with the system program registered.
func New(ctx context.Context, store Store) (*Runtime, error) {
	height, err := store.TxHeight(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "getting applied-tx height")
	}
	rt := &Runtime{
		store:    store,
		programs: map[Pubkey]Program{SystemProgramID: systemProgram{}},
		seen:     cache.New(seenTTL, 2*seenTTL),
		height:   height,
		W:        multichan.New((*AppliedTx)(nil)),
	}
	return rt, nil
}

// Register installs a program at id. Programs register once, at boot.
func (rt *Runtime) Register(id Pubkey, p Program) {
	rt.programs[id] = p
}

// Apply verifies, executes, and commits tx. All instructions succeed or no
// mutation is persisted. The applied transaction is saved to the store and
// published on W.
func (rt *Runtime) Apply(ctx context.Context, tx *Transaction) (*Result, error) {
	signed, err := verifySignatures(tx)
	if err != nil {
		return nil, err
	}

	txid := tx.ID()
	id := hex.EncodeToString(txid[:])

	rt.mu.Lock()
	defer rt.mu.Unlock()

	// Only successfully applied transactions occupy the dedup window; a
	// rejected transaction may be resubmitted byte for byte.
	if _, ok := rt.seen.Get(id); ok {
		return nil, errors.Wrapf(ErrDuplicateTx, "tx %s", id)
	}

	working := make(map[Pubkey]*Account)
	res := new(Result)
	for _, inst := range tx.Instructions {
		err := rt.invoke(ctx, inst, working, signed, res)
		if err != nil {
			return nil, err
		}
	}

	for _, acct := range working {
		// Accounts that came out of the store are persisted even when
		// drained; an address never seen before and still empty is not.
		if !acct.Exists() && !acct.stored {
			continue
		}
		err := rt.store.PutAccount(ctx, acct)
		if err != nil {
			return nil, errors.Wrapf(err, "persisting account %s", acct.Key)
		}
	}

	rt.height++
	atx := &AppliedTx{Seq: rt.height, Time: time.Now(), Tx: tx}
	err = rt.store.SaveTx(ctx, atx)
	if err != nil {
		return nil, errors.Wrapf(err, "recording applied tx %d", atx.Seq)
	}
	rt.seen.Set(id, struct{}{}, cache.DefaultExpiration)
	rt.W.Write(atx)

	return res, nil
}

// Simulate executes tx against the current ledger without persisting,
// publishing, or consuming the transaction's ID. Read-only queries ride on
// this.
func (rt *Runtime) Simulate(ctx context.Context, tx *Transaction) (*Result, error) {
	signed, err := verifySignatures(tx)
	if err != nil {
		return nil, err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	working := make(map[Pubkey]*Account)
	res := new(Result)
	for _, inst := range tx.Instructions {
		err := rt.invoke(ctx, inst, working, signed, res)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Account loads one account from the store, or an empty account if the
// address has never been used.
func (rt *Runtime) Account(ctx context.Context, key Pubkey) (*Account, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	working := make(map[Pubkey]*Account)
	return rt.loadAccount(ctx, working, key)
}

// Airdrop credits lamports to key outside any transaction and returns the
// new balance. It exists for test ledgers; a public deployment has no
// faucet.
func (rt *Runtime) Airdrop(ctx context.Context, key Pubkey, lamports uint64) (uint64, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	working := make(map[Pubkey]*Account)
	acct, err := rt.loadAccount(ctx, working, key)
	if err != nil {
		return 0, err
	}
	if acct.Lamports > math.MaxUint64-lamports {
		return 0, errors.Wrapf(ErrBalanceOverflow, "account %s", key)
	}
	acct.Lamports += lamports
	err = rt.store.PutAccount(ctx, acct)
	if err != nil {
		return 0, errors.Wrapf(err, "persisting account %s", key)
	}
	return acct.Lamports, nil
}

func verifySignatures(tx *Transaction) (map[Pubkey]bool, error) {
	msg := tx.Message()
	signed := make(map[Pubkey]bool, len(tx.Signatures))
	for _, sig := range tx.Signatures {
		if !ed25519.Verify(ed25519.PublicKey(sig.Key[:]), msg, sig.Sig) {
			return nil, errors.Wrapf(ErrBadSignature, "key %s", sig.Key)
		}
		signed[sig.Key] = true
	}
	return signed, nil
}

func (rt *Runtime) invoke(ctx context.Context, inst Instruction, working map[Pubkey]*Account, signed map[Pubkey]bool, res *Result) error {
	prog, ok := rt.programs[inst.Program]
	if !ok {
		return errors.Wrapf(ErrUnknownProgram, "program %s", inst.Program)
	}

	accounts := make([]*Account, 0, len(inst.Accounts))
	for _, m := range inst.Accounts {
		if m.IsSigner && !signed[m.Key] {
			return errors.Wrapf(ErrMissingSigner, "account %s", m.Key)
		}
		acct, err := rt.loadAccount(ctx, working, m.Key)
		if err != nil {
			return err
		}
		accounts = append(accounts, acct)
	}

	icc := &Context{
		ctx:      ctx,
		rt:       rt,
		program:  inst.Program,
		metas:    inst.Accounts,
		accounts: accounts,
		working:  working,
		signed:   signed,
		res:      res,
	}
	return prog.Execute(icc, inst.Data)
}

func (rt *Runtime) loadAccount(ctx context.Context, working map[Pubkey]*Account, key Pubkey) (*Account, error) {
	if acct, ok := working[key]; ok {
		return acct, nil
	}
	acct, err := rt.store.GetAccount(ctx, key)
	if err != nil {
		return nil, errors.Wrapf(err, "loading account %s", key)
	}
	if acct == nil {
		acct = &Account{Key: key, Owner: SystemProgramID}
	} else {
		acct.stored = true
	}
	working[key] = acct
	return acct, nil
}
