package master

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
	masterPattern   = "::master::Master<"
	metadataPattern = "::master::Metadata<"
)

type ClientConfig struct {
	Contract shared.Contract
	Executor sui.Executor
	Reader   sui.ObjectReader
	Signer   keys.Signer
	Logger   *zerolog.Logger
}

// Client mints, updates and reads Masters and their Metadata.
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
	if config.Executor == nil || config.Reader == nil {
		return nil, errors.New("master client requires an executor and an object reader")
	}
	if config.Signer == nil {
		return nil, errors.New("master client requires a signer")
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

func (c *Client) submit(ctx context.Context, operation string, batch *ptb.Batch) (*rpc.TransactionBlockResponse, error) {
	response, err := c.executor.Execute(ctx, batch, c.signer)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	if err := effects.CheckStatus(response); err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	c.logger.Info().Str("operation", operation).Str("digest", response.Digest).Msg("master transaction succeeded")
	return response, nil
}

// Mint creates a Master and returns its id together with the id of the
// Metadata created alongside it.
func (c *Client) Mint(ctx context.Context, params MintParams) (*MintResult, error) {
	batch, err := BuildMintBatch(c.contract, params)
	if err != nil {
		return nil, err
	}
	response, err := c.submit(ctx, "mint master", batch)
	if err != nil {
		return nil, err
	}

	created, err := effects.FindCreated(response.ObjectChanges, masterPattern)
	if err != nil {
		return nil, fmt.Errorf("mint master: %w", err)
	}
	result := &MintResult{Digest: response.Digest, MasterID: created.ObjectID}

	if metadata, err := effects.FindCreated(response.ObjectChanges, metadataPattern); err == nil {
		result.MetadataID = metadata.ObjectID
		return result, nil
	}
	minted, err := c.GetByID(ctx, result.MasterID)
	if err != nil {
		return nil, fmt.Errorf("mint master: read back %s: %w", result.MasterID, err)
	}
	if minted.MetadataRef == "" {
		return nil, fmt.Errorf("mint master: %w", &effects.NotFoundError{Kind: rpc.ChangeCreated, Pattern: metadataPattern})
	}
	result.MetadataID = minted.MetadataRef
	return result, nil
}

// GetByID fetches and projects a Master.
func (c *Client) GetByID(ctx context.Context, masterID string) (*Master, error) {
	data, err := c.object(ctx, "master ID", masterID)
	if err != nil {
		return nil, err
	}
	return FromObject(data)
}

// GetMetadataByID fetches and projects a Metadata object.
func (c *Client) GetMetadataByID(ctx context.Context, metadataID string) (*Metadata, error) {
	data, err := c.object(ctx, "metadata ID", metadataID)
	if err != nil {
		return nil, err
	}
	return MetadataFromObject(data)
}

func (c *Client) object(ctx context.Context, name, objectID string) (*rpc.ObjectData, error) {
	if err := requireID(name, objectID); err != nil {
		return nil, err
	}
	response, err := c.reader.GetObject(ctx, objectID, rpc.ObjectDataOptions{ShowType: true, ShowContent: true})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", objectID, err)
	}
	if response.Data == nil {
		if response.Error != nil {
			return nil, fmt.Errorf("object %s: %s", objectID, response.Error.String())
		}
		return nil, fmt.Errorf("object %s: not found", objectID)
	}
	return response.Data, nil
}

// kindType reads the type argument of a Master or Metadata object.
func (c *Client) kindType(ctx context.Context, objectID, structName string) (string, error) {
	name := strings.ToLower(structName) + " ID"
	data, err := c.object(ctx, name, objectID)
	if err != nil {
		return "", err
	}
	kind, err := effects.TypeArgument(data.Type, structName)
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", strings.ToLower(structName), objectID, err)
	}
	return kind, nil
}

// SetSaleStatus changes the status of a Master held by profileID.
func (c *Client) SetSaleStatus(ctx context.Context, profileID, masterID string, status SaleStatus) (*Master, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	kind, err := c.kindType(ctx, masterID, "Master")
	if err != nil {
		return nil, err
	}
	batch, err := BuildSetSaleStatusBatch(c.contract, profileID, masterID, kind, status)
	if err != nil {
		return nil, err
	}
	if _, err := c.submit(ctx, "set sale status", batch); err != nil {
		return nil, err
	}
	return c.GetByID(ctx, masterID)
}

// Retain sets a Master back to retained.
func (c *Client) Retain(ctx context.Context, profileID, masterID string) (*Master, error) {
	return c.SetSaleStatus(ctx, profileID, masterID, StatusRetained)
}

// SetMetadataTitle changes a Metadata title and returns the stored Metadata.
func (c *Client) SetMetadataTitle(ctx context.Context, metadataID, title string) (*Metadata, error) {
	kind, err := c.kindType(ctx, metadataID, "Metadata")
	if err != nil {
		return nil, err
	}
	batch, err := BuildSetMetadataTitleBatch(c.contract, metadataID, kind, title)
	if err != nil {
		return nil, err
	}
	if _, err := c.submit(ctx, "set metadata title", batch); err != nil {
		return nil, err
	}
	return c.GetMetadataByID(ctx, metadataID)
}

// SyncTitle copies the Metadata title onto the Master and verifies both
// agree afterwards.
func (c *Client) SyncTitle(ctx context.Context, profileID, masterID, metadataID string) (*Master, error) {
	kind, err := c.kindType(ctx, masterID, "Master")
	if err != nil {
		return nil, err
	}
	batch, err := BuildSyncTitleBatch(c.contract, profileID, masterID, metadataID, kind)
	if err != nil {
		return nil, err
	}
	if _, err := c.submit(ctx, "sync title", batch); err != nil {
		return nil, err
	}

	master, err := c.GetByID(ctx, masterID)
	if err != nil {
		return nil, err
	}
	metadata, err := c.GetMetadataByID(ctx, metadataID)
	if err != nil {
		return nil, err
	}
	if master.Title != metadata.Title {
		return nil, fmt.Errorf("master title %q does not match metadata title %q after sync", master.Title, metadata.Title)
	}
	return master, nil
}

// Burn destroys a Master owned by the operator.
func (c *Client) Burn(ctx context.Context, masterID string) error {
	kind, err := c.kindType(ctx, masterID, "Master")
	if err != nil {
		return err
	}
	return c.BurnWithKind(ctx, masterID, kind)
}

// BurnWithKind destroys a Master whose type argument is already known.
func (c *Client) BurnWithKind(ctx context.Context, masterID, kindType string) error {
	batch, err := BuildBurnBatch(c.contract, masterID, kindType)
	if err != nil {
		return err
	}
	response, err := c.submit(ctx, "burn master", batch)
	if err != nil {
		return err
	}
	if _, err := effects.FindDeleted(response.ObjectChanges, masterPattern); err != nil {
		return fmt.Errorf("burn master %s: %w", masterID, err)
	}
	return nil
}

// BurnMetadata destroys a Metadata object.
func (c *Client) BurnMetadata(ctx context.Context, metadataID string) error {
	kind, err := c.kindType(ctx, metadataID, "Metadata")
	if err != nil {
		return err
	}
	return c.BurnMetadataWithKind(ctx, metadataID, kind)
}

func (c *Client) BurnMetadataWithKind(ctx context.Context, metadataID, kindType string) error {
	batch, err := BuildBurnMetadataBatch(c.contract, metadataID, kindType)
	if err != nil {
		return err
	}
	response, err := c.submit(ctx, "burn metadata", batch)
	if err != nil {
		return err
	}
	if _, err := effects.FindDeleted(response.ObjectChanges, metadataPattern); err != nil {
		return fmt.Errorf("burn metadata %s: %w", metadataID, err)
	}
	return nil
}

// FromObject projects a Master object.
func FromObject(data *rpc.ObjectData) (*Master, error) {
	fields, kind, err := content(data, "Master")
	if err != nil {
		return nil, err
	}
	royalty, status, err := royaltyAndStatus(data.ObjectID, fields)
	if err != nil {
		return nil, err
	}
	return &Master{
		ID:                  data.ObjectID,
		Type:                data.Type,
		Kind:                kind,
		Title:               fields.String("title"),
		Description:         fields.String("description"),
		ImageURL:            fields.String("image_url"),
		MediaURL:            fields.String("media_url"),
		Hashtags:            fields.Strings("hashtags"),
		CreatorProfileID:    fields.String("creator_profile_id"),
		RoyaltyPercentageBP: royalty,
		MetadataRef:         firstNonEmpty(fields.OptionID("metadata_ref"), fields.String("metadata_ref")),
		SaleStatus:          status,
	}, nil
}

// MetadataFromObject projects a Metadata object.
func MetadataFromObject(data *rpc.ObjectData) (*Metadata, error) {
	fields, kind, err := content(data, "Metadata")
	if err != nil {
		return nil, err
	}
	royalty, status, err := royaltyAndStatus(data.ObjectID, fields)
	if err != nil {
		return nil, err
	}
	return &Metadata{
		ID:                  data.ObjectID,
		Type:                data.Type,
		Kind:                kind,
		MasterID:            fields.String("master_id"),
		Title:               fields.String("title"),
		Description:         fields.String("description"),
		ImageURL:            fields.String("image_url"),
		MediaURL:            fields.String("media_url"),
		Hashtags:            fields.Strings("hashtags"),
		CreatorProfileID:    fields.String("creator_profile_id"),
		RoyaltyPercentageBP: royalty,
		Parent:              firstNonEmpty(fields.OptionID("master_metadata_parent"), fields.OptionID("parent")),
		Origin:              firstNonEmpty(fields.OptionID("master_metadata_origin"), fields.OptionID("origin")),
		SaleStatus:          status,
	}, nil
}

func content(data *rpc.ObjectData, structName string) (rpc.Fields, Kind, error) {
	if data == nil {
		return nil, "", fmt.Errorf("%s object has no data", strings.ToLower(structName))
	}
	kindType, err := effects.TypeArgument(data.Type, structName)
	if err != nil {
		return nil, "", fmt.Errorf("object %s: %w", data.ObjectID, err)
	}
	kind, err := ParseKind(kindType)
	if err != nil {
		return nil, "", fmt.Errorf("object %s: %w", data.ObjectID, err)
	}
	fields := data.Fields()
	if fields == nil {
		return nil, "", fmt.Errorf("object %s has no content", data.ObjectID)
	}
	return fields, kind, nil
}

func royaltyAndStatus(objectID string, fields rpc.Fields) (uint16, SaleStatus, error) {
	royalty, err := fields.Uint64("royalty_percentage_bp")
	if err != nil {
		return 0, 0, fmt.Errorf("object %s: %w", objectID, err)
	}
	if royalty > MaxRoyaltyBP {
		return 0, 0, fmt.Errorf("object %s: royalty %d bp out of range", objectID, royalty)
	}
	status, err := fields.Uint64("sale_status")
	if err != nil {
		return 0, 0, fmt.Errorf("object %s: %w", objectID, err)
	}
	return uint16(royalty), SaleStatus(status), nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
