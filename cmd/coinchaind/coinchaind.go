// Command coinchaind runs the coin-transfer daemon: the embedded ledger,
// the program, and the HTTP surface.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net"
	"net/http"

	_ "github.com/mattn/go-sqlite3"

	"lightrail/coinchain"
)

func main() {
	ctx := context.Background()

	var (
		addr   = flag.String("addr", "localhost:2423", "server listen address")
		dbfile = flag.String("db", "coinchain.db", "path to db")
	)

	flag.Parse()

	db, err := sql.Open("sqlite3", *dbfile)
	if err != nil {
		log.Fatalf("error opening db: %s", err)
	}
	defer db.Close()

	c, err := coinchain.GetConductor(ctx, db)
	if err != nil {
		log.Fatal(err)
	}

	listener, err := net.Listen("tcp", *addr)
	if err != nil {
		log.Fatal(err)
	}

	stateAddr, _ := coinchain.StateAddress()
	log.Printf("listening on %s, program %s, state account %s", listener.Addr(), coinchain.ProgramID, stateAddr)

	http.HandleFunc("/submit", c.Submit)
	http.HandleFunc("/balance", c.Balance)
	http.HandleFunc("/state", c.State)
	http.HandleFunc("/airdrop", c.Airdrop)
	http.Serve(listener, nil)
}
