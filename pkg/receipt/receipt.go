// Package receipt issues purchase receipts and finds the receipts a buyer
// profile holds.
package receipt

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

const (
	Module = "receipt"

	objectPattern = "::receipt::Receipt"
)

// Receipt entitles UserProfile to buy MasterID.
type Receipt struct {
	ID          string `json:"id"`
	MasterID    string `json:"masterId"`
	UserProfile string `json:"userProfile"`
}

// StructType is the Receipt type of the deployment.
func StructType(contract shared.Contract) string {
	return contract.Type(Module, "Receipt")
}

// BuildNewBatch issues a receipt for profileID to buy masterID.
func BuildNewBatch(contract shared.Contract, masterID, profileID string) (*ptb.Batch, error) {
	if err := contract.Validate(); err != nil {
		return nil, ptb.Invalidf("%v", err)
	}
	if strings.TrimSpace(contract.Registry) == "" {
		return nil, ptb.Invalidf("registry is required")
	}
	if strings.TrimSpace(masterID) == "" {
		return nil, ptb.Invalidf("master ID is required")
	}
	if strings.TrimSpace(profileID) == "" {
		return nil, ptb.Invalidf("profile ID is required")
	}

	batch := ptb.New()
	batch.MoveCall(
		ptb.NewTarget(contract.PackageID, Module, "new"),
		nil,
		ptb.Object(contract.AdminCap),
		ptb.ID(masterID),
		ptb.Address(profileID),
		ptb.Object(contract.Registry),
	)
	return batch, nil
}

type ClientConfig struct {
	Contract shared.Contract
	Executor sui.Executor
	Reader   sui.ObjectReader
	Signer   keys.Signer
	Logger   *zerolog.Logger
}

type Client struct {
	contract shared.Contract
	executor sui.Executor
	reader   sui.ObjectReader
	signer   keys.Signer
	logger   zerolog.Logger
}

func NewClient(config ClientConfig) (*Client, error) {
	if err := config.Contract.Validate(); err != nil {
		return nil, err
	}
	if config.Executor == nil || config.Reader == nil || config.Signer == nil {
		return nil, errors.New("receipt client requires an executor, an object reader and a signer")
	}
	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = config.Logger.With().Str("module", Module).Logger()
	}
	return &Client{
		contract: config.Contract,
		executor: config.Executor,
		reader:   config.Reader,
		signer:   config.Signer,
		logger:   logger,
	}, nil
}

// Mint issues a receipt and returns its id.
func (c *Client) Mint(ctx context.Context, masterID, profileID string) (string, error) {
	batch, err := BuildNewBatch(c.contract, masterID, profileID)
	if err != nil {
		return "", err
	}
	response, err := c.executor.Execute(ctx, batch, c.signer)
	if err != nil {
		return "", fmt.Errorf("mint receipt: %w", err)
	}
	if err := effects.CheckStatus(response); err != nil {
		return "", fmt.Errorf("mint receipt: %w", err)
	}
	created, err := effects.FindCreated(response.ObjectChanges, objectPattern)
	if err != nil {
		return "", fmt.Errorf("mint receipt: %w", err)
	}
	c.logger.Info().Str("digest", response.Digest).Str("receipt_id", created.ObjectID).Msg("receipt minted")
	return created.ObjectID, nil
}

// OwnedBy lists every receipt held by owner, usually a buyer profile.
func (c *Client) OwnedBy(ctx context.Context, owner string) ([]Receipt, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, ptb.Invalidf("owner is required")
	}
	responses, err := c.reader.GetOwnedObjects(ctx, owner, rpc.OwnedObjectsQuery{
		Filter:  rpc.StructTypeFilter(StructType(c.contract)),
		Options: &rpc.ObjectDataOptions{ShowType: true, ShowOwner: true, ShowContent: true},
	})
	if err != nil {
		return nil, fmt.Errorf("list receipts of %s: %w", owner, err)
	}

	receipts := make([]Receipt, 0, len(responses))
	for _, response := range responses {
		if response.Data == nil {
			continue
		}
		receipt, err := FromObject(response.Data)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, *receipt)
	}
	return receipts, nil
}

// GetByID fetches one receipt.
func (c *Client) GetByID(ctx context.Context, receiptID string) (*Receipt, error) {
	response, err := c.reader.GetObject(ctx, receiptID, rpc.ObjectDataOptions{ShowType: true, ShowContent: true})
	if err != nil {
		return nil, fmt.Errorf("get receipt %s: %w", receiptID, err)
	}
	if response.Data == nil {
		return nil, fmt.Errorf("receipt %s: not found", receiptID)
	}
	return FromObject(response.Data)
}

// FromObject projects a Receipt object.
func FromObject(data *rpc.ObjectData) (*Receipt, error) {
	if data == nil {
		return nil, errors.New("receipt object has no data")
	}
	if data.Type != "" && !strings.Contains(data.Type, objectPattern) {
		return nil, fmt.Errorf("object %s is a %s, not a receipt", data.ObjectID, data.Type)
	}
	fields := data.Fields()
	if fields == nil {
		return nil, fmt.Errorf("receipt %s has no content", data.ObjectID)
	}
	return &Receipt{
		ID:          data.ObjectID,
		MasterID:    fields.String("master_id"),
		UserProfile: fields.String("user_profile"),
	}, nil
}
