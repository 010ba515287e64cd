// Package recrd is the Go operator toolkit for the RECRD contracts on Sui.
// It builds, signs and submits programmable transaction batches against the
// profile, master, receipt and display modules of a deployed package, and
// reads the resulting objects back as typed values.
//
// # Packages
//
//   - pkg/profile: profile creation, field updates, authorizations, purchases
//   - pkg/master: Master and Metadata minting, sale status, titles, burns
//   - pkg/receipt: purchase receipts
//   - pkg/display: display objects and the standard display migration
//   - pkg/effects: object-change extraction and execution status checks
//   - pkg/sui, pkg/rpc: transaction execution and node JSON-RPC access
//   - pkg/ptb, pkg/bcs: transaction batches and their wire encoding
//   - pkg/keys: Ed25519 and Secp256k1 operator keys
//   - pkg/workflow: end-to-end operator scenarios used by cmd/recrd
//
// # Configuration
//
// Commands read SUI_NETWORK, RECRD_PACKAGE_ID, CORE_ADMIN_CAP,
// MASTER_PUBLISHER, REGISTRY, RECRD_PRIVATE_KEY and USER_PRIVATE_KEY from the
// environment or a .env file.
//
// # Installation
//
//	go install github.com/recrd-io/recrd-sdk-go/cmd/recrd@latest
package recrd
