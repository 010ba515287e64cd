// Package shared provides common utilities used across the RECRD SDK for Go.
// It includes network normalisation, deployment configuration loading from
// environment variables or a .env file, and logger construction.
//
// This package is typically used by the workflow and command packages but is
// also available for direct use when building custom operator tooling.
//
// # Environment Variables
//
//	SUI_NETWORK        full node URL or one of mainnet, testnet, devnet, localnet
//	RECRD_PACKAGE_ID   published contract package address
//	CORE_ADMIN_CAP     admin capability object id
//	MASTER_PUBLISHER   publisher object id (display creation)
//	REGISTRY           receipt registry object id
//	RECRD_PRIVATE_KEY  operator key
//	USER_PRIVATE_KEY   test-user key
//	PUBLISH_DIGEST     digest of the package publish transaction (display lookup)
//	RECRD_STATE_DIR    directory for scratch identifier files
//
// The first four marked required by [LoadConfig] are SUI_NETWORK,
// RECRD_PACKAGE_ID, CORE_ADMIN_CAP and RECRD_PRIVATE_KEY.
package shared
