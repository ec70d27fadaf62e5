package coinchain

import (
	"encoding/hex"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/chain/txvm/errors"

	"lightrail/coinchain/net"
	"lightrail/coinchain/runtime"
)

// Submit handles POST /submit: a JSON-encoded signed transaction. Program
// failures come back as 400 with the stable error code; runtime-level
// rejections as plain 400s; everything else is a 500.
func (c *Conductor) Submit(w http.ResponseWriter, req *http.Request) {
	bits, err := io.ReadAll(req.Body)
	if err != nil {
		net.Errorf(w, http.StatusInternalServerError, "reading request body: %s", err)
		return
	}

	var tx runtime.Transaction
	err = json.Unmarshal(bits, &tx)
	if err != nil {
		net.Errorf(w, http.StatusBadRequest, "parsing request body: %s", err)
		return
	}

	res, err := c.RT.Apply(req.Context(), &tx)
	if err != nil {
		if terr, ok := errors.Root(err).(*TransferError); ok {
			net.ProgramErrorf(w, http.StatusBadRequest, terr.Code, terr.Name, terr.Error())
			return
		}
		switch errors.Root(err) {
		case runtime.ErrBadSignature, runtime.ErrMissingSigner, runtime.ErrDuplicateTx,
			runtime.ErrBadInstruction, runtime.ErrUnknownProgram, runtime.ErrAccountExists,
			runtime.ErrInsufficientBalance, runtime.ErrBelowRentMinimum, runtime.ErrNotWritable,
			runtime.ErrBalanceOverflow:
			net.Errorf(w, http.StatusBadRequest, "applying tx: %s", err)
		default:
			net.Errorf(w, http.StatusInternalServerError, "applying tx: %s", err)
		}
		return
	}

	txid := tx.ID()
	for _, line := range res.Logs {
		log.Printf("tx %x: %s", txid[:8], line)
	}
	log.Printf("applied tx %x", txid)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"txid": hex.EncodeToString(txid[:]),
		"logs": res.Logs,
	})
}
