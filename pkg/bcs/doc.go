// Package bcs implements the subset of Binary Canonical Serialization needed
// to encode Sui transaction data: little-endian fixed width integers,
// ULEB128 length prefixes, byte vectors, strings, options and 32-byte
// account addresses. ULEB128 comes from github.com/fardream/go-bcs; the
// encoder writes the transaction layout field by field around it.
package bcs
