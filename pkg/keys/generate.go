package keys

import (
	"crypto/rand"
	"fmt"
	"io"
)

// AddressEntry is a throwaway account used to populate authorization batches.
type AddressEntry struct {
	Address   string `json:"address"`
	SecretKey string `json:"secretKey"`
}

// GenerateAddresses creates size fresh Ed25519 accounts.
func GenerateAddresses(size int) ([]AddressEntry, error) {
	return generateAddresses(rand.Reader, size)
}

func generateAddresses(source io.Reader, size int) ([]AddressEntry, error) {
	if size < 0 {
		return nil, fmt.Errorf("size must not be negative")
	}
	entries := make([]AddressEntry, 0, size)
	for i := 0; i < size; i++ {
		seed := make([]byte, 32)
		if _, err := io.ReadFull(source, seed); err != nil {
			return nil, fmt.Errorf("generate key: %w", err)
		}
		signer, err := NewEd25519Signer(seed)
		if err != nil {
			return nil, err
		}
		secretKey, err := signer.SecretKey()
		if err != nil {
			return nil, err
		}
		entries = append(entries, AddressEntry{Address: signer.Address(), SecretKey: secretKey})
	}
	return entries, nil
}
