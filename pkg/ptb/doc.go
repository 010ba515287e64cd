// Package ptb models a batch of chained contract calls submitted as one
// programmable transaction.
//
// A [Batch] is an ordered list of steps. Each step is either a [MoveCall] or a
// [TransferObjects]. Step arguments are a closed set of variants: an object
// reference, a declared pure value, the result of an earlier step, one output
// of an earlier step, or the gas coin. References between steps are
// positional and always point backwards, so [Batch.Validate] can check the
// data flow of a batch without a network.
//
// Building a batch has no side effects; nothing is sent until an executor
// submits it.
package ptb
