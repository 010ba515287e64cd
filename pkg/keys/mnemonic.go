package keys

import (
	"fmt"
	"strings"

	"github.com/anyproto/go-slip10"
	"github.com/tyler-smith/go-bip39"
)

// DefaultDerivationPath is the first Ed25519 account.
const DefaultDerivationPath = "m/44'/784'/0'/0'/0'"

// FromMnemonic derives the Ed25519 signer at DefaultDerivationPath.
func FromMnemonic(mnemonic, passphrase string) (*Ed25519Signer, error) {
	return DeriveEd25519(mnemonic, passphrase, DefaultDerivationPath)
}

// DeriveEd25519 derives an Ed25519 signer along a fully hardened SLIP-0010 path.
func DeriveEd25519(mnemonic, passphrase, path string) (*Ed25519Signer, error) {
	normalized := strings.Join(strings.Fields(mnemonic), " ")
	seed, err := bip39.NewSeedWithErrorChecking(normalized, passphrase)
	if err != nil {
		return nil, fmt.Errorf("mnemonic: %w", err)
	}
	node, err := slip10.DeriveForPath(strings.TrimSpace(path), seed)
	if err != nil {
		return nil, fmt.Errorf("derivation path %q: %w", path, err)
	}
	return NewEd25519Signer(node.RawSeed())
}
