package runtime

// Account is the ledger's view of one address: its lamport balance, the
// program that owns it, and the owner's opaque data record.
type Account struct {
	Key      Pubkey
	Lamports uint64
	Owner    Pubkey
	Data     []byte

	// stored records that this copy was loaded from the store, so a
	// mutation that empties the account still has to be written back.
	stored bool
}

// Exists reports whether the account is present on the ledger. An address
// that has never been funded or created loads as an empty system-owned
// account, which is indistinguishable from absence.
func (a *Account) Exists() bool {
	return a.Lamports > 0 || len(a.Data) > 0
}

// AccountMeta declares how an instruction touches one account: whether the
// transaction must carry its signature and whether the instruction may
// mutate it. The runtime schedules and checks access from these
// declarations; programs never widen them.
type AccountMeta struct {
	Key        Pubkey `json:"key"`
	IsSigner   bool   `json:"signer"`
	IsWritable bool   `json:"writable"`
}
