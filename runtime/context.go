package runtime

import (
	"context"
	"fmt"
)

// Context carries one instruction's account view while a transaction is
// being applied. The accounts are working copies shared across the
// transaction; nothing reaches the store until every instruction has
// succeeded.
type Context struct {
	ctx      context.Context
	rt       *Runtime
	program  Pubkey
	metas    []AccountMeta
	accounts []*Account
	working  map[Pubkey]*Account
	signed   map[Pubkey]bool
	res      *Result
}

func (c *Context) NumAccounts() int { return len(c.accounts) }

// Account returns the i'th account of the instruction's declared list.
func (c *Context) Account(i int) *Account { return c.accounts[i] }

// IsSigner reports whether the i'th account is declared a signer and its
// signature was actually verified (or supplied by a derived-address signer
// during a sub-invocation).
func (c *Context) IsSigner(i int) bool {
	return c.metas[i].IsSigner && c.signed[c.metas[i].Key]
}

// IsWritable reports whether the instruction declared the i'th account
// mutable.
func (c *Context) IsWritable(i int) bool { return c.metas[i].IsWritable }

// Logf appends a line to the transaction's diagnostic log. Log lines are
// not part of any contract.
func (c *Context) Logf(format string, args ...interface{}) {
	c.res.Logs = append(c.res.Logs, fmt.Sprintf(format, args...))
}

// SetReturnData records the instruction's scalar result for the caller.
func (c *Context) SetReturnData(data []byte) {
	c.res.ReturnData = append([]byte(nil), data...)
}

// Invoke makes a sub-invocation into another program against the same
// working account set. Each entry of signerSeeds authorizes, as a signer,
// the address those seeds derive under the calling program; this is how a
// program signs for accounts it controls without a private key.
func (c *Context) Invoke(inst Instruction, signerSeeds ...[][]byte) error {
	signed := c.signed
	if len(signerSeeds) > 0 {
		signed = make(map[Pubkey]bool, len(c.signed)+len(signerSeeds))
		for k := range c.signed {
			signed[k] = true
		}
		for _, seeds := range signerSeeds {
			derived, _ := DeriveAddress(c.program, seeds...)
			signed[derived] = true
		}
	}
	return c.rt.invoke(c.ctx, inst, c.working, signed, c.res)
}
