// Command key generates an ed25519 keypair and prints the hex private key
// and the base58 address.
package main

import (
	"fmt"
	"log"

	"github.com/chain/txvm/crypto/ed25519"

	"lightrail/coinchain/runtime"
)

func main() {
	pub, prv, err := ed25519.GenerateKey(nil)
	if err != nil {
		log.Fatalf("generating keypair: %s", err)
	}

	fmt.Printf("prv: %x\n", prv)
	fmt.Printf("address: %s\n", runtime.PubkeyFromKey(pub))
}
