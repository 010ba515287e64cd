// Package sui turns a ptb.Batch into signed TransactionData and submits it.
//
// Compile assigns transaction inputs to the batch's object and pure
// arguments; the executor then resolves object versions through the node,
// selects gas coins, signs the intent-prefixed bytes and executes with
// WaitForLocalExecution. PrintExecutor replaces submission with a JSON dump
// of the batch.
package sui
