package coinchain

import (
	"encoding/binary"
	"encoding/json"
	"net/http"
	"time"

	"lightrail/coinchain/net"
	"lightrail/coinchain/runtime"
)

// handleGetBalance reports the lamport balance of the single declared
// account. Read-only, no constraints on the account, no failure
// conditions.
func handleGetBalance(ctx *runtime.Context) error {
	if ctx.NumAccounts() != 1 {
		return runtime.ErrBadInstruction
	}
	acct := ctx.Account(0)

	ctx.Logf("account: %s", acct.Key)
	ctx.Logf("balance: %d lamports", acct.Lamports)

	var ret [8]byte
	binary.LittleEndian.PutUint64(ret[:], acct.Lamports)
	ctx.SetReturnData(ret[:])
	return nil
}

// Balance handles GET /balance?account=ADDR by simulating a get_balance
// instruction against the current ledger.
func (c *Conductor) Balance(w http.ResponseWriter, req *http.Request) {
	key, err := runtime.ParsePubkey(req.FormValue("account"))
	if err != nil {
		net.Errorf(w, http.StatusBadRequest, "parsing account: %s", err)
		return
	}

	tx := &runtime.Transaction{
		Nonce:        time.Now().UnixNano(),
		Instructions: []runtime.Instruction{NewGetBalance(key)},
	}
	res, err := c.RT.Simulate(req.Context(), tx)
	if err != nil {
		net.Errorf(w, http.StatusInternalServerError, "querying balance of %s: %s", key, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"account":  key.String(),
		"lamports": binary.LittleEndian.Uint64(res.ReturnData),
	})
}
