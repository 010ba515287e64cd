// Package rpc is a JSON-RPC 2.0 client for a Sui full node.
//
// It covers the read methods the operator workflows need (objects, owned
// objects, dynamic fields, transaction blocks, coins, gas price) and the
// execute and dry-run submission methods. Paged methods follow the cursor
// until the node reports no further pages.
package rpc
