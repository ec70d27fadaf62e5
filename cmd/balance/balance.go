// Command balance queries an account's lamport balance.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
)

func main() {
	var (
		account = flag.String("account", "", "base58 address to query")
		server  = flag.String("server", "http://localhost:2423", "daemon URL")
	)
	flag.Parse()

	if *account == "" {
		flag.Usage()
		os.Exit(1)
	}

	resp, err := http.Get(*server + "/balance?account=" + url.QueryEscape(*account))
	if err != nil {
		log.Fatalf("querying balance: %s", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		log.Fatalf("status %d querying balance: %s", resp.StatusCode, body)
	}
	fmt.Printf("%s", body)
}
