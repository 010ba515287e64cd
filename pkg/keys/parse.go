package keys

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// SecretKeyPrefix is the bech32 human readable part of exported keys.
const SecretKeyPrefix = "suiprivkey"

// ErrUnsupportedKey is returned when a key string matches no known format.
var ErrUnsupportedKey = errors.New("unsupported private key format")

// ParsePrivateKey accepts the key formats an operator may paste into the
// environment and returns the matching signer.
func ParsePrivateKey(raw string) (Signer, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("private key is required")
	}

	switch {
	case strings.HasPrefix(strings.ToLower(trimmed), SecretKeyPrefix+"1"):
		scheme, secret, err := decodeSecretKey(trimmed)
		if err != nil {
			return nil, err
		}
		return newSigner(scheme, secret)
	case strings.HasPrefix(trimmed, "0x"):
		decoded, err := hex.DecodeString(trimmed[2:])
		if err != nil {
			return nil, fmt.Errorf("hex private key: %w", err)
		}
		return newSigner(SchemeEd25519, decoded)
	case len(strings.Fields(trimmed)) >= 12:
		signer, err := FromMnemonic(trimmed, "")
		if err != nil {
			return nil, err
		}
		return signer, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedKey, err)
	}
	switch len(decoded) {
	case 33:
		// flag || secret, as written by the node keystore
		return newSigner(Scheme(decoded[0]), decoded[1:])
	case 32:
		return newSigner(SchemeEd25519, decoded)
	case 64:
		// legacy ed25519 seed || public key
		return newSigner(SchemeEd25519, decoded[:32])
	default:
		return nil, fmt.Errorf("%w: base64 key decodes to %d bytes", ErrUnsupportedKey, len(decoded))
	}
}

func newSigner(scheme Scheme, secret []byte) (Signer, error) {
	switch scheme {
	case SchemeEd25519:
		signer, err := NewEd25519Signer(secret)
		if err != nil {
			return nil, err
		}
		return signer, nil
	case SchemeSecp256k1:
		signer, err := NewSecp256k1Signer(secret)
		if err != nil {
			return nil, err
		}
		return signer, nil
	default:
		return nil, fmt.Errorf("%w: scheme flag %d", ErrUnsupportedKey, byte(scheme))
	}
}

func decodeSecretKey(value string) (Scheme, []byte, error) {
	hrp, data, err := bech32.Decode(value)
	if err != nil {
		return 0, nil, fmt.Errorf("bech32 private key: %w", err)
	}
	if hrp != SecretKeyPrefix {
		return 0, nil, fmt.Errorf("%w: prefix %q", ErrUnsupportedKey, hrp)
	}
	decoded, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return 0, nil, fmt.Errorf("bech32 private key: %w", err)
	}
	if len(decoded) != 33 {
		return 0, nil, fmt.Errorf("%w: bech32 payload is %d bytes", ErrUnsupportedKey, len(decoded))
	}
	return Scheme(decoded[0]), decoded[1:], nil
}

func encodeSecretKey(scheme Scheme, secret []byte) (string, error) {
	payload := append([]byte{byte(scheme)}, secret...)
	converted, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(SecretKeyPrefix, converted)
}
