package coinchain

// Conductor-level tables. The account and applied-tx tables belong to the
// store package.
const schema = `
CREATE TABLE IF NOT EXISTS transfers (
  txid BLOB NOT NULL,
  ix INTEGER NOT NULL,
  sender BLOB NOT NULL,
  recipient BLOB NOT NULL,
  amount INTEGER NOT NULL,
  timestamp INTEGER NOT NULL,
  PRIMARY KEY (txid, ix)
);

CREATE TABLE IF NOT EXISTS pins (
  name TEXT NOT NULL PRIMARY KEY,
  seq INTEGER NOT NULL
);
`
