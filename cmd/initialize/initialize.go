// Command initialize creates the program's singleton state account, funded
// and signed by the given authority key.
package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/chain/txvm/crypto/ed25519"

	"lightrail/coinchain"
	"lightrail/coinchain/runtime"
)

func main() {
	var (
		prvHex = flag.String("prv", "", "hex private key of the authority")
		server = flag.String("server", "http://localhost:2423", "daemon URL")
	)
	flag.Parse()

	if *prvHex == "" {
		flag.Usage()
		os.Exit(1)
	}

	prvBits, err := hex.DecodeString(*prvHex)
	if err != nil {
		log.Fatalf("parsing private key: %s", err)
	}
	prv := ed25519.PrivateKey(prvBits)
	authority := runtime.PubkeyFromKey(prv.Public().(ed25519.PublicKey))

	tx := &runtime.Transaction{
		Nonce:        time.Now().UnixNano(),
		Instructions: []runtime.Instruction{coinchain.NewInitialize(authority)},
	}
	tx.Sign(prv)

	bits, err := json.Marshal(tx)
	if err != nil {
		log.Fatalf("marshaling tx: %s", err)
	}

	resp, err := http.Post(*server+"/submit", "application/json", bytes.NewReader(bits))
	if err != nil {
		log.Fatalf("submitting tx: %s", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		log.Fatalf("status %d submitting tx: %s", resp.StatusCode, body)
	}
	fmt.Printf("%s", body)
}
