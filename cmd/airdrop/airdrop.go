// Command airdrop requests test funds for an account from the daemon's
// faucet endpoint.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
)

func main() {
	var (
		account  = flag.String("account", "", "base58 address to fund")
		lamports = flag.Uint64("lamports", 1_000_000_000, "amount to credit")
		server   = flag.String("server", "http://localhost:2423", "daemon URL")
	)
	flag.Parse()

	if *account == "" {
		flag.Usage()
		os.Exit(1)
	}

	bits, err := json.Marshal(map[string]interface{}{
		"account":  *account,
		"lamports": *lamports,
	})
	if err != nil {
		log.Fatal(err)
	}

	resp, err := http.Post(*server+"/airdrop", "application/json", bytes.NewReader(bits))
	if err != nil {
		log.Fatalf("requesting airdrop: %s", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		log.Fatalf("status %d requesting airdrop: %s", resp.StatusCode, body)
	}
	fmt.Printf("%s", body)
}
