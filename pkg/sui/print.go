package sui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/recrd-io/recrd-sdk-go/pkg/keys"
	"github.com/recrd-io/recrd-sdk-go/pkg/ptb"
	"github.com/recrd-io/recrd-sdk-go/pkg/rpc"
)

// PrintExecutor writes each batch as indented JSON and submits nothing.
type PrintExecutor struct {
	Writer io.Writer
}

type printedBatch struct {
	Sender    string     `json:"sender,omitempty"`
	GasBudget uint64     `json:"gasBudget,omitempty"`
	Steps     []ptb.Step `json:"steps"`
}

// Execute validates and prints batch, then returns ErrNotSubmitted.
func (p *PrintExecutor) Execute(
	_ context.Context,
	batch *ptb.Batch,
	signer keys.Signer,
) (*rpc.TransactionBlockResponse, error) {
	if err := batch.Validate(); err != nil {
		return nil, err
	}
	printed := printedBatch{GasBudget: batch.GasBudget, Steps: batch.Steps}
	if signer != nil {
		printed.Sender = signer.Address()
	}
	payload, err := json.MarshalIndent(printed, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode batch: %w", err)
	}
	if _, err := fmt.Fprintln(p.Writer, string(payload)); err != nil {
		return nil, err
	}
	return nil, ErrNotSubmitted
}
