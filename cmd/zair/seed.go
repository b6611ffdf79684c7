package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// loadBaseKey reads a BIP-39 mnemonic from path and derives the 32-byte
// spend-auth base key from its seed. A full ZIP-32 derivation path is out
// of scope; the seed's first 32 bytes stand in for the account-derived
// spending key the real wallet hierarchy would produce.
func loadBaseKey(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	mnemonic := strings.TrimSpace(string(raw))
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("seed file does not contain a valid BIP-39 mnemonic")
	}

	seed := bip39.NewSeed(mnemonic, "")
	return seed[:32], nil
}
