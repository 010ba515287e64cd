// Package keys parses operator keys and signs transaction bytes.
//
// Keys may be given as bech32 "suiprivkey1..." strings, base64 flag||key
// strings, 0x-prefixed hex Ed25519 seeds or BIP-39 mnemonics. Every signer
// produces the serialized signature expected by the node:
// flag || signature || public key, base64 encoded.
package keys
