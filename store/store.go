// Package store persists the ledger in sqlite: one row per live account,
// one row per applied transaction.
package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/chain/txvm/errors"

	"lightrail/coinchain/runtime"
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
  address BLOB NOT NULL PRIMARY KEY,
  lamports INTEGER NOT NULL,
  owner BLOB NOT NULL,
  data BLOB NOT NULL
);

CREATE TABLE IF NOT EXISTS txs (
  seq INTEGER NOT NULL PRIMARY KEY,
  txid BLOB NOT NULL UNIQUE,
  bits BLOB NOT NULL
);
`

// AccountStore is a sqlite-backed runtime.Store.
type AccountStore struct {
	db *sql.DB
}

// New creates the schema on db if needed and returns the store.
func New(db *sql.DB) (*AccountStore, error) {
	_, err := db.Exec(schema)
	if err != nil {
		return nil, errors.Wrap(err, "creating db schema")
	}
	return &AccountStore{db: db}, nil
}

// GetAccount loads the account at key, or (nil, nil) if the address has no
// row.
func (s *AccountStore) GetAccount(ctx context.Context, key runtime.Pubkey) (*runtime.Account, error) {
	const q = `SELECT lamports, owner, data FROM accounts WHERE address = $1`

	acct := &runtime.Account{Key: key}
	var owner []byte
	err := s.db.QueryRowContext(ctx, q, key[:]).Scan(&acct.Lamports, &owner, &acct.Data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading account %s from db", key)
	}
	copy(acct.Owner[:], owner)
	return acct, nil
}

// PutAccount writes acct, replacing any existing row at its address.
func (s *AccountStore) PutAccount(ctx context.Context, acct *runtime.Account) error {
	const q = `INSERT OR REPLACE INTO accounts (address, lamports, owner, data) VALUES ($1, $2, $3, $4)`

	data := acct.Data
	if data == nil {
		data = []byte{}
	}
	_, err := s.db.ExecContext(ctx, q, acct.Key[:], acct.Lamports, acct.Owner[:], data)
	return errors.Wrapf(err, "writing account %s to db", acct.Key)
}

// TxHeight returns the sequence number of the last applied transaction, or
// zero for a fresh ledger.
func (s *AccountStore) TxHeight(ctx context.Context) (uint64, error) {
	var height uint64
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM txs`).Scan(&height)
	return height, errors.Wrap(err, "getting applied-tx height")
}

// SaveTx records one applied transaction.
func (s *AccountStore) SaveTx(ctx context.Context, atx *runtime.AppliedTx) error {
	bits, err := json.Marshal(atx)
	if err != nil {
		return errors.Wrapf(err, "marshaling applied tx %d for writing to db", atx.Seq)
	}
	txid := atx.Tx.ID()
	_, err = s.db.ExecContext(ctx, `INSERT OR IGNORE INTO txs (seq, txid, bits) VALUES ($1, $2, $3)`, atx.Seq, txid[:], bits)
	return errors.Wrapf(err, "writing applied tx %d to db", atx.Seq)
}
