// Command keygen prints a fresh VECTOR_ENCRYPTION_KEY for provisioning.
package main

import (
	"fmt"
	"log"

	"github.com/facegate/facegate/pkg/vectorcrypt"
)

func main() {
	key, err := vectorcrypt.GenerateKey()
	if err != nil {
		log.Fatalf("generate key: %s", err)
	}

	fmt.Println(key)
}
