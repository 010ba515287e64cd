// Package effects reads the outcome of an executed batch: execution status,
// abort codes and the objects the batch created, mutated or deleted.
package effects
