// Package profile builds and submits Profile transactions for the RECRD
// contract and projects Profile objects into typed values.
//
// Builders are pure: they validate their inputs and return a ptb.Batch
// without touching the network. The Client submits those batches through a
// sui.Executor and re-reads the affected profiles.
//
//	client, err := profile.NewClient(profile.ClientConfig{
//		Contract: cfg.Contract(),
//		Executor: executor,
//		Reader:   node,
//		Signer:   operator,
//	})
//
//	created, err := client.Create(ctx, []string{"user-1"}, []string{"alice"})
package profile
