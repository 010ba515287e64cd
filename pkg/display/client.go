package display

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/recrd-io/recrd-sdk-go/pkg/effects"
	"github.com/recrd-io/recrd-sdk-go/pkg/keys"
	"github.com/recrd-io/recrd-sdk-go/pkg/ptb"
	"github.com/recrd-io/recrd-sdk-go/pkg/rpc"
	"github.com/recrd-io/recrd-sdk-go/pkg/shared"
	"github.com/recrd-io/recrd-sdk-go/pkg/sui"
	"github.com/rs/zerolog"
)

type ClientConfig struct {
	Contract shared.Contract
	Executor sui.Executor
	Reader   sui.ObjectReader
	Signer   keys.Signer
	Logger   *zerolog.Logger
}

// Client locates the package's Display objects and edits them.
type Client struct {
	contract shared.Contract
	executor sui.Executor
	reader   sui.ObjectReader
	signer   keys.Signer
	logger   zerolog.Logger
}

func NewClient(config ClientConfig) (*Client, error) {
	if strings.TrimSpace(config.Contract.PackageID) == "" {
		return nil, errors.New("package ID is required")
	}
	if config.Executor == nil || config.Reader == nil || config.Signer == nil {
		return nil, errors.New("display client requires an executor, an object reader and a signer")
	}
	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = config.Logger.With().Str("module", module).Logger()
	}
	return &Client{
		contract: config.Contract,
		executor: config.Executor,
		reader:   config.Reader,
		signer:   config.Signer,
		logger:   logger,
	}, nil
}

// Objects finds the Display object of every standard type among the objects
// created by the package's publish transaction.
func (c *Client) Objects(ctx context.Context, publishDigest string) (map[string]string, error) {
	if strings.TrimSpace(publishDigest) == "" {
		return nil, ptb.Invalidf("publish digest is required")
	}
	response, err := c.reader.GetTransactionBlock(ctx, publishDigest, rpc.TransactionBlockOptions{ShowObjectChanges: true})
	if err != nil {
		return nil, fmt.Errorf("get publish transaction %s: %w", publishDigest, err)
	}
	ids, err := effects.DisplayObjects(response.ObjectChanges, StandardTypes(c.contract).List())
	if err != nil {
		return nil, fmt.Errorf("display objects: %w", err)
	}
	return ids, nil
}

// Apply submits ops as one batch.
func (c *Client) Apply(ctx context.Context, ops []Op) (*rpc.TransactionBlockResponse, error) {
	batch, err := BuildUpdateBatch(ops)
	if err != nil {
		return nil, err
	}
	response, err := c.executor.Execute(ctx, batch, c.signer)
	if err != nil {
		return nil, fmt.Errorf("update display: %w", err)
	}
	if err := effects.CheckStatus(response); err != nil {
		return nil, fmt.Errorf("update display: %w", err)
	}
	c.logger.Info().Str("digest", response.Digest).Int("ops", len(ops)).Msg("display updated")
	return response, nil
}

// UpdateStandard applies StandardUpdates to the displays created by the
// publish transaction.
func (c *Client) UpdateStandard(ctx context.Context, publishDigest string) (*rpc.TransactionBlockResponse, error) {
	ids, err := c.Objects(ctx, publishDigest)
	if err != nil {
		return nil, err
	}
	ops, err := StandardUpdates(ids, StandardTypes(c.contract))
	if err != nil {
		return nil, err
	}
	return c.Apply(ctx, ops)
}

// Create makes a new Display for displayed and returns its id. An empty
// recipient sends it to the signer.
func (c *Client) Create(ctx context.Context, displayed string, fields []Field, recipient string) (string, error) {
	if recipient == "" {
		recipient = c.signer.Address()
	}
	batch, err := BuildNewBatch(c.contract, displayed, fields, recipient)
	if err != nil {
		return "", err
	}
	response, err := c.executor.Execute(ctx, batch, c.signer)
	if err != nil {
		return "", fmt.Errorf("create display: %w", err)
	}
	if err := effects.CheckStatus(response); err != nil {
		return "", fmt.Errorf("create display: %w", err)
	}
	ids, err := effects.DisplayObjects(response.ObjectChanges, []string{displayed})
	if err != nil {
		return "", fmt.Errorf("create display: %w", err)
	}
	return ids[displayed], nil
}
