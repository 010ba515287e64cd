package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/recrd-io/recrd-sdk-go/pkg/bcs"
	"github.com/recrd-io/recrd-sdk-go/pkg/effects"
	"github.com/recrd-io/recrd-sdk-go/pkg/keys"
	"github.com/recrd-io/recrd-sdk-go/pkg/ptb"
	"github.com/recrd-io/recrd-sdk-go/pkg/rpc"
	"github.com/recrd-io/recrd-sdk-go/pkg/shared"
	"github.com/recrd-io/recrd-sdk-go/pkg/sui"
	"github.com/rs/zerolog"
)

const objectPattern = "::profile::Profile"

// ClientConfig wires a Client to the contract and the node.
type ClientConfig struct {
	Contract shared.Contract
	Executor sui.Executor
	Reader   sui.ObjectReader
	// Signer is the operator that signs every admin call.
	Signer keys.Signer
	Logger *zerolog.Logger
}

// Client submits profile batches and reads profiles back.
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
	if config.Executor == nil {
		return nil, errors.New("profile client requires an executor")
	}
	if config.Reader == nil {
		return nil, errors.New("profile client requires an object reader")
	}
	if config.Signer == nil {
		return nil, errors.New("profile client requires a signer")
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

func (c *Client) submit(
	ctx context.Context,
	operation string,
	batch *ptb.Batch,
	signer keys.Signer,
) (*rpc.TransactionBlockResponse, error) {
	response, err := c.executor.Execute(ctx, batch, signer)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	if err := effects.CheckStatus(response); err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	c.logger.Info().Str("operation", operation).Str("digest", response.Digest).Msg("profile transaction succeeded")
	return response, nil
}

// Create mints one profile per (userID, username) pair and returns the new
// profile ids in creation order.
func (c *Client) Create(ctx context.Context, userIDs, usernames []string) ([]string, error) {
	batch, err := BuildNewBatch(c.contract, userIDs, usernames)
	if err != nil {
		return nil, err
	}
	response, err := c.submit(ctx, "create profile", batch, c.signer)
	if err != nil {
		return nil, err
	}
	return createdProfiles(response, len(userIDs))
}

func createdProfiles(response *rpc.TransactionBlockResponse, expected int) ([]string, error) {
	created := effects.FilterCreated(response.ObjectChanges, objectPattern)
	if len(created) == 0 {
		return nil, &effects.NotFoundError{Kind: rpc.ChangeCreated, Pattern: objectPattern}
	}
	if len(created) != expected {
		return nil, fmt.Errorf("expected %d created profiles, found %d", expected, len(created))
	}
	return effects.IDs(created), nil
}

// Update changes one field and returns the profile as stored afterwards.
func (c *Client) Update(ctx context.Context, profileID string, field Field, value, address string) (*Profile, error) {
	batch, err := BuildUpdateBatch(c.contract, profileID, field, value, address)
	if err != nil {
		return nil, err
	}
	response, err := c.submit(ctx, "update profile", batch, c.signer)
	if err != nil {
		return nil, err
	}
	if _, err := effects.FindMutated(response.ObjectChanges, objectPattern); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return c.GetByID(ctx, profileID)
}

// Authorize grants every authorization in one batch.
func (c *Client) Authorize(ctx context.Context, authorizations []Authorization) error {
	profileIDs := make([]string, 0, len(authorizations))
	users := make([]string, 0, len(authorizations))
	levels := make([]int, 0, len(authorizations))
	for _, authorization := range authorizations {
		profileIDs = append(profileIDs, authorization.ProfileID)
		users = append(users, authorization.User)
		levels = append(levels, authorization.Level)
	}

	batch, err := BuildAuthorizeBatch(c.contract, profileIDs, users, levels)
	if err != nil {
		return err
	}
	_, err = c.submit(ctx, "authorize", batch, c.signer)
	return err
}

// Combo creates profiles and grants authorizations in one batch. It returns
// the created profile ids.
func (c *Client) Combo(ctx context.Context, params ComboParams) ([]string, error) {
	batch, err := BuildComboBatch(c.contract, params)
	if err != nil {
		return nil, err
	}
	response, err := c.submit(ctx, "batch combo", batch, c.signer)
	if err != nil {
		return nil, err
	}
	if len(params.UserIDs) == 0 {
		return []string{}, nil
	}
	return createdProfiles(response, len(params.UserIDs))
}

// Deauthorize removes user from the profile and verifies it is gone.
func (c *Client) Deauthorize(ctx context.Context, profileID, user string) (*Profile, error) {
	if _, err := c.GetByID(ctx, profileID); err != nil {
		return nil, err
	}
	batch, err := BuildDeauthorizeBatch(c.contract, profileID, user)
	if err != nil {
		return nil, err
	}
	if _, err := c.submit(ctx, "deauthorize", batch, c.signer); err != nil {
		return nil, err
	}

	profile, err := c.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile.HasAuthorization(user) {
		return nil, fmt.Errorf("user %s was not deauthorized from profile %s", user, profileID)
	}
	return profile, nil
}

// Burn destroys the listed profiles.
func (c *Client) Burn(ctx context.Context, profileIDs []string) error {
	batch, err := BuildBurnBatch(c.contract, profileIDs)
	if err != nil {
		return err
	}
	_, err = c.submit(ctx, "burn profiles", batch, c.signer)
	return err
}

// Buy moves a Master into the buyer's profile. The Master's kind is looked
// up when params.MasterKind is empty. buyer signs the call; nil uses the
// operator.
func (c *Client) Buy(ctx context.Context, params BuyParams, buyer keys.Signer) (*rpc.TransactionBlockResponse, error) {
	if params.MasterKind == "" {
		kind, err := c.masterKind(ctx, params.MasterID)
		if err != nil {
			return nil, err
		}
		params.MasterKind = kind
	}
	batch, err := BuildBuyBatch(c.contract, params)
	if err != nil {
		return nil, err
	}
	if buyer == nil {
		buyer = c.signer
	}
	return c.submit(ctx, "buy master", batch, buyer)
}

// ReceiveMaster takes a Master held by a profile and sends it to recipient,
// or to the operator when recipient is empty.
func (c *Client) ReceiveMaster(
	ctx context.Context,
	profileID, masterID, recipient string,
) (*rpc.TransactionBlockResponse, error) {
	kind, err := c.masterKind(ctx, masterID)
	if err != nil {
		return nil, err
	}
	if recipient == "" {
		recipient = c.signer.Address()
	}
	batch, err := BuildReceiveMasterBatch(c.contract, ReceiveParams{
		ProfileID:  profileID,
		MasterID:   masterID,
		MasterKind: kind,
		Recipient:  recipient,
	})
	if err != nil {
		return nil, err
	}
	return c.submit(ctx, "receive master", batch, c.signer)
}

func (c *Client) masterKind(ctx context.Context, masterID string) (string, error) {
	if err := requireID("master ID", masterID); err != nil {
		return "", err
	}
	response, err := c.reader.GetObject(ctx, masterID, rpc.ObjectDataOptions{ShowType: true})
	if err != nil {
		return "", fmt.Errorf("get master %s: %w", masterID, err)
	}
	if response.Data == nil {
		return "", objectMissing(masterID, response.Error)
	}
	kind, err := effects.TypeArgument(response.Data.Type, "Master")
	if err != nil {
		return "", fmt.Errorf("master %s: %w", masterID, err)
	}
	return kind, nil
}

// GetByID fetches a profile and its authorization table.
func (c *Client) GetByID(ctx context.Context, profileID string) (*Profile, error) {
	if err := requireID("profile ID", profileID); err != nil {
		return nil, err
	}
	response, err := c.reader.GetObject(ctx, profileID, rpc.ObjectDataOptions{ShowType: true, ShowContent: true})
	if err != nil {
		return nil, fmt.Errorf("get profile %s: %w", profileID, err)
	}
	if response.Data == nil {
		return nil, objectMissing(profileID, response.Error)
	}

	profile, err := FromObject(response.Data)
	if err != nil {
		return nil, err
	}

	table := response.Data.Fields().Struct("authorizations")
	size, err := table.Uint64("size")
	if err != nil {
		return nil, fmt.Errorf("profile %s authorizations: %w", profileID, err)
	}
	if size == 0 {
		return profile, nil
	}
	authorizations, err := c.readAuthorizations(ctx, table.UID("id"))
	if err != nil {
		return nil, fmt.Errorf("profile %s authorizations: %w", profileID, err)
	}
	profile.Authorizations = authorizations
	return profile, nil
}

func (c *Client) readAuthorizations(ctx context.Context, tableID string) (map[string]uint8, error) {
	if tableID == "" {
		return nil, errors.New("authorization table has no id")
	}
	entries, err := c.reader.GetDynamicFields(ctx, tableID)
	if err != nil {
		return nil, err
	}

	authorizations := make(map[string]uint8, len(entries))
	for _, entry := range entries {
		response, err := c.reader.GetObject(ctx, entry.ObjectID, rpc.ObjectDataOptions{ShowContent: true})
		if err != nil {
			return nil, fmt.Errorf("get authorization %s: %w", entry.ObjectID, err)
		}
		if response.Data == nil || response.Data.Content == nil || response.Data.Content.DataType != "moveObject" {
			c.logger.Warn().Str("object_id", entry.ObjectID).Msg("authorization entry is not a move object")
			continue
		}
		fields := response.Data.Fields()
		level, err := fields.Uint64("value")
		if err != nil {
			return nil, fmt.Errorf("authorization %s: %w", entry.ObjectID, err)
		}
		if level > MaxAccessLevel {
			return nil, fmt.Errorf("authorization %s: level %d out of range", entry.ObjectID, level)
		}
		authorizations[fields.String("name")] = uint8(level)
	}
	return authorizations, nil
}

// FromObject projects the scalar fields of a Profile object. The
// authorization table is left empty; GetByID fills it.
func FromObject(data *rpc.ObjectData) (*Profile, error) {
	if data == nil {
		return nil, errors.New("profile object has no data")
	}
	if data.Type != "" && !strings.Contains(data.Type, objectPattern) {
		return nil, fmt.Errorf("object %s is a %s, not a profile", data.ObjectID, data.Type)
	}
	fields := data.Fields()
	if fields == nil {
		return nil, fmt.Errorf("profile %s has no content", data.ObjectID)
	}

	profile := &Profile{
		ID:             data.ObjectID,
		UserID:         fields.String("user_id"),
		Username:       fields.String("username"),
		Authorizations: map[string]uint8{},
	}
	counters := []struct {
		name   string
		target *uint64
	}{
		{"watch_time", &profile.WatchTime},
		{"videos_watched", &profile.VideosWatched},
		{"adverts_watched", &profile.AdvertsWatched},
		{"number_of_followers", &profile.NumberOfFollowers},
		{"number_of_following", &profile.NumberOfFollowing},
		{"ad_revenue", &profile.AdRevenue},
		{"commission_revenue", &profile.CommissionRevenue},
	}
	for _, counter := range counters {
		value, err := fields.Uint64(counter.name)
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", data.ObjectID, err)
		}
		*counter.target = value
	}
	return profile, nil
}

// HasAuthorization reports whether user holds any level on the profile.
func (p *Profile) HasAuthorization(user string) bool {
	if p == nil {
		return false
	}
	if _, ok := p.Authorizations[user]; ok {
		return true
	}
	normalized, err := bcs.NormalizeAddress(user)
	if err != nil {
		return false
	}
	for address := range p.Authorizations {
		if other, err := bcs.NormalizeAddress(address); err == nil && other == normalized {
			return true
		}
	}
	return false
}

func objectMissing(objectID string, objectErr *rpc.ObjectError) error {
	if objectErr != nil {
		return fmt.Errorf("object %s: %s", objectID, objectErr.String())
	}
	return fmt.Errorf("object %s: not found", objectID)
}
