// +build ignore

package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
)

// Generates a random API key and its bcrypt hash. Put the hash in
// API_KEY_HASH on the server and hand the key to the operator.
func main() {
	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		log.Fatalf("Failed to generate random key: %v", err)
	}
	apiKey := hex.EncodeToString(raw)

	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash API key: %v", err)
	}

	fmt.Println("API key (give to the operator, not stored server-side):")
	fmt.Printf("  %s\n", apiKey)
	fmt.Println("API_KEY_HASH (set on the server):")
	fmt.Printf("  %s\n", string(hash))
}
