package keys

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// Secp256k1Signer signs with a secp256k1 key. Signatures are the 64-byte
// low-s r||s form over SHA-256 of the transaction digest.
type Secp256k1Signer struct {
	privateKey *btcec.PrivateKey
	address    string
}

// NewSecp256k1Signer builds a signer from a 32-byte scalar.
func NewSecp256k1Signer(secret []byte) (*Secp256k1Signer, error) {
	if len(secret) != btcec.PrivKeyBytesLen {
		return nil, fmt.Errorf("secp256k1 key must be %d bytes, got %d", btcec.PrivKeyBytesLen, len(secret))
	}
	privateKey, publicKey := btcec.PrivKeyFromBytes(secret)
	return &Secp256k1Signer{
		privateKey: privateKey,
		address:    DeriveAddress(SchemeSecp256k1, publicKey.SerializeCompressed()),
	}, nil
}

func (s *Secp256k1Signer) Address() string {
	return s.address
}

func (s *Secp256k1Signer) Scheme() Scheme {
	return SchemeSecp256k1
}

func (s *Secp256k1Signer) PublicKey() []byte {
	return s.privateKey.PubKey().SerializeCompressed()
}

func (s *Secp256k1Signer) SignTransaction(txBytes []byte) (string, error) {
	digest := TransactionDigest(txBytes)
	hash := sha256.Sum256(digest[:])
	compact := ecdsa.SignCompact(s.privateKey, hash[:], true)
	// first byte is the recovery id
	return base64.StdEncoding.EncodeToString(
		serializeSignature(SchemeSecp256k1, compact[1:], s.PublicKey()),
	), nil
}

func (s *Secp256k1Signer) SecretKey() (string, error) {
	return encodeSecretKey(SchemeSecp256k1, s.privateKey.Serialize())
}
