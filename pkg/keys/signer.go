package keys

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Scheme is the signature scheme flag byte.
type Scheme byte

const (
	SchemeEd25519   Scheme = 0x00
	SchemeSecp256k1 Scheme = 0x01
)

func (s Scheme) String() string {
	switch s {
	case SchemeEd25519:
		return "ED25519"
	case SchemeSecp256k1:
		return "Secp256k1"
	default:
		return fmt.Sprintf("scheme(%d)", byte(s))
	}
}

// Signer signs transaction data on behalf of one account.
type Signer interface {
	Address() string
	Scheme() Scheme
	PublicKey() []byte
	// SignTransaction returns the base64 serialized signature over the
	// intent-prefixed transaction bytes.
	SignTransaction(txBytes []byte) (string, error)
	// SecretKey exports the key in bech32 "suiprivkey" form.
	SecretKey() (string, error)
}

// transaction intent: scope TransactionData, version V0, app Sui
var transactionIntent = []byte{0, 0, 0}

// TransactionDigest is the Blake2b-256 hash signed for a transaction.
func TransactionDigest(txBytes []byte) [32]byte {
	message := make([]byte, 0, len(transactionIntent)+len(txBytes))
	message = append(message, transactionIntent...)
	message = append(message, txBytes...)
	return blake2b.Sum256(message)
}

// DeriveAddress hashes flag || public key into a 0x-prefixed account address.
func DeriveAddress(scheme Scheme, publicKey []byte) string {
	payload := make([]byte, 0, len(publicKey)+1)
	payload = append(payload, byte(scheme))
	payload = append(payload, publicKey...)
	digest := blake2b.Sum256(payload)
	return "0x" + hex.EncodeToString(digest[:])
}

func serializeSignature(scheme Scheme, signature, publicKey []byte) []byte {
	serialized := make([]byte, 0, 1+len(signature)+len(publicKey))
	serialized = append(serialized, byte(scheme))
	serialized = append(serialized, signature...)
	return append(serialized, publicKey...)
}
