package coinchain

import (
	"encoding/json"
	"log"
	"net/http"

	"lightrail/coinchain/net"
	"lightrail/coinchain/runtime"
)

type airdropRequest struct {
	Account  string `json:"account"`
	Lamports uint64 `json:"lamports"`
}

// Airdrop handles POST /airdrop, crediting test funds to an account. This
// is the local stand-in for the public faucet that funds fresh accounts on
// a test network; a real deployment would not mount it.
func (c *Conductor) Airdrop(w http.ResponseWriter, req *http.Request) {
	var r airdropRequest
	err := json.NewDecoder(req.Body).Decode(&r)
	if err != nil {
		net.Errorf(w, http.StatusBadRequest, "parsing request body: %s", err)
		return
	}

	key, err := runtime.ParsePubkey(r.Account)
	if err != nil {
		net.Errorf(w, http.StatusBadRequest, "parsing account: %s", err)
		return
	}

	balance, err := c.RT.Airdrop(req.Context(), key, r.Lamports)
	if err != nil {
		net.Errorf(w, http.StatusInternalServerError, "funding %s: %s", key, err)
		return
	}
	log.Printf("funded %s with %d lamports (balance now %d)", key, r.Lamports, balance)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"account":  key.String(),
		"lamports": balance,
	})
}

// State handles GET /state, decoding the singleton state record.
func (c *Conductor) State(w http.ResponseWriter, req *http.Request) {
	addr, _ := StateAddress()
	acct, err := c.RT.Account(req.Context(), addr)
	if err != nil {
		net.Errorf(w, http.StatusInternalServerError, "loading state account: %s", err)
		return
	}
	if !acct.Exists() {
		net.Errorf(w, http.StatusNotFound, "program not initialized")
		return
	}

	s, err := UnmarshalProgramState(acct.Data)
	if err != nil {
		net.Errorf(w, http.StatusInternalServerError, "parsing state record: %s", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"address":         addr.String(),
		"authority":       s.Authority.String(),
		"total_transfers": s.TotalTransfers,
		"total_volume":    s.TotalVolume,
		"version":         s.Version,
	})
}
