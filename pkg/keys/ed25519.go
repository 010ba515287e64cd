package keys

import (
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/ed25519"
)

// Ed25519Signer signs with an Ed25519 key.
type Ed25519Signer struct {
	privateKey ed25519.PrivateKey
	address    string
}

// NewEd25519Signer builds a signer from a 32-byte seed.
func NewEd25519Signer(seed []byte) (*Ed25519Signer, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("ed25519 seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	privateKey := ed25519.NewKeyFromSeed(seed)
	publicKey := privateKey.Public().(ed25519.PublicKey)
	return &Ed25519Signer{
		privateKey: privateKey,
		address:    DeriveAddress(SchemeEd25519, publicKey),
	}, nil
}

func (s *Ed25519Signer) Address() string {
	return s.address
}

func (s *Ed25519Signer) Scheme() Scheme {
	return SchemeEd25519
}

func (s *Ed25519Signer) PublicKey() []byte {
	return append([]byte(nil), s.privateKey.Public().(ed25519.PublicKey)...)
}

func (s *Ed25519Signer) SignTransaction(txBytes []byte) (string, error) {
	digest := TransactionDigest(txBytes)
	signature := ed25519.Sign(s.privateKey, digest[:])
	return base64.StdEncoding.EncodeToString(
		serializeSignature(SchemeEd25519, signature, s.PublicKey()),
	), nil
}

func (s *Ed25519Signer) SecretKey() (string, error) {
	return encodeSecretKey(SchemeEd25519, s.privateKey.Seed())
}
