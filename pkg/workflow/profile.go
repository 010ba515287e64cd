package workflow

import (
	"context"
	"fmt"

	"github.com/recrd-io/recrd-sdk-go/pkg/idstore"
	"github.com/recrd-io/recrd-sdk-go/pkg/profile"
	"github.com/recrd-io/recrd-sdk-go/pkg/shared"
)

// Sample identities used by the profile scenarios.
const (
	SampleUserID        = "ab12345"
	SampleUsername      = "alina-chan"
	SampleBuyerUserID   = "buyer12345"
	SampleBuyerUsername = "buyer-chan"
)

// CreateProfile creates one profile and stores its id as the current profile.
func (r *Runner) CreateProfile(ctx context.Context, userID, username string) (string, error) {
	ids, err := r.Profiles.Create(ctx, []string{userID}, []string{username})
	if err != nil {
		return "", err
	}
	if err := r.store.Save(idstore.ProfileFile, ids[0]); err != nil {
		return "", err
	}
	r.logger.Info().Str("profile_id", ids[0]).Msg("profile created")
	return ids[0], nil
}

// BatchNewProfiles creates count profiles with generated user ids and blank
// usernames, storing every id.
func (r *Runner) BatchNewProfiles(ctx context.Context, count int) ([]string, error) {
	if count <= 0 {
		return nil, fmt.Errorf("profile count must be positive, got %d", count)
	}
	userIDs := make([]string, count)
	usernames := make([]string, count)
	for index := range userIDs {
		userIDs[index] = r.newUserID()
	}

	ids, err := r.Profiles.Create(ctx, userIDs, usernames)
	if err != nil {
		return nil, err
	}
	if err := r.store.SaveList(idstore.ProfileFile, ids); err != nil {
		return nil, err
	}
	r.logger.Info().Int("count", len(ids)).Msg("profiles created")
	return ids, nil
}

// Authorize grants user level on profileID (the stored profile when empty).
// An empty user means the configured end-user account.
func (r *Runner) Authorize(ctx context.Context, profileID, user string, level int) (*profile.Profile, error) {
	profileID, err := r.stored(idstore.ProfileFile, profileID)
	if err != nil {
		return nil, err
	}
	if user == "" {
		if r.user == nil {
			return nil, fmt.Errorf("no user address given and %s is not configured", shared.EnvUserKey)
		}
		user = r.user.Address()
	}
	if err := r.Profiles.Authorize(ctx, []profile.Authorization{{ProfileID: profileID, User: user, Level: level}}); err != nil {
		return nil, err
	}
	return r.Profiles.GetByID(ctx, profileID)
}

// BatchAuthorize authorizes a fresh generated address on each of the first
// count stored profiles.
func (r *Runner) BatchAuthorize(ctx context.Context, count, level int) ([]profile.Authorization, error) {
	profileIDs, err := r.storedProfiles(count)
	if err != nil {
		return nil, err
	}
	entries, err := r.addresses(len(profileIDs))
	if err != nil {
		return nil, err
	}

	authorizations := make([]profile.Authorization, len(profileIDs))
	for index, profileID := range profileIDs {
		authorizations[index] = profile.Authorization{ProfileID: profileID, User: entries[index].Address, Level: level}
	}
	if err := r.Profiles.Authorize(ctx, authorizations); err != nil {
		return nil, err
	}
	return authorizations, nil
}

// AuthorizeFromFile grants the authorizations listed in a parameter file.
func (r *Runner) AuthorizeFromFile(ctx context.Context, path string) ([]profile.Authorization, error) {
	authorizations, err := LoadAuthorizations(r.store.FS(), path)
	if err != nil {
		return nil, err
	}
	if err := r.Profiles.Authorize(ctx, authorizations); err != nil {
		return nil, err
	}
	return authorizations, nil
}

// BatchCombo creates newCount profiles and authorizes generated addresses on
// the first authorizeCount stored profiles in the same batch.
func (r *Runner) BatchCombo(ctx context.Context, newCount, authorizeCount, level int) ([]string, error) {
	userIDs := make([]string, newCount)
	usernames := make([]string, newCount)
	for index := range userIDs {
		userIDs[index] = r.newUserID()
	}

	params := profile.ComboParams{UserIDs: userIDs, Usernames: usernames}
	if authorizeCount > 0 {
		profileIDs, err := r.storedProfiles(authorizeCount)
		if err != nil {
			return nil, err
		}
		entries, err := r.addresses(len(profileIDs))
		if err != nil {
			return nil, err
		}
		params.ProfileIDs = profileIDs
		for _, entry := range entries {
			params.Addresses = append(params.Addresses, entry.Address)
			params.AccessLevels = append(params.AccessLevels, level)
		}
	}
	return r.Profiles.Combo(ctx, params)
}

func (r *Runner) storedProfiles(limit int) ([]string, error) {
	profileIDs, err := r.store.LoadList(idstore.ProfileFile)
	if err != nil {
		return nil, fmt.Errorf("run batch-new first: %w", err)
	}
	if limit > 0 && limit < len(profileIDs) {
		profileIDs = profileIDs[:limit]
	}
	return profileIDs, nil
}

// FieldUpdate is one profile field assignment.
type FieldUpdate struct {
	Field   profile.Field `yaml:"field"`
	Value   string        `yaml:"value"`
	Address string        `yaml:"address,omitempty"`
}

// DefaultUpdates are the updates applied when none are given.
var DefaultUpdates = []FieldUpdate{
	{Field: profile.FieldWatchTime, Value: "3600"},
	{Field: profile.FieldVideosWatched, Value: "42"},
}

// UpdateProfile applies updates in order and returns the profile as stored
// after the last one.
func (r *Runner) UpdateProfile(ctx context.Context, profileID string, updates []FieldUpdate) (*profile.Profile, error) {
	profileID, err := r.stored(idstore.ProfileFile, profileID)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		updates = DefaultUpdates
	}

	var updated *profile.Profile
	for _, update := range updates {
		updated, err = r.Profiles.Update(ctx, profileID, update.Field, update.Value, update.Address)
		if err != nil {
			return nil, fmt.Errorf("update %s: %w", update.Field, err)
		}
	}
	return updated, nil
}

// Deauthorize removes user from the profile.
func (r *Runner) Deauthorize(ctx context.Context, profileID, user string) (*profile.Profile, error) {
	profileID, err := r.stored(idstore.ProfileFile, profileID)
	if err != nil {
		return nil, err
	}
	if user == "" && r.user != nil {
		user = r.user.Address()
	}
	return r.Profiles.Deauthorize(ctx, profileID, user)
}

// ReceiveMaster takes the stored Master out of the stored profile and sends
// it to the operator.
func (r *Runner) ReceiveMaster(ctx context.Context) (string, error) {
	profileID, err := r.stored(idstore.ProfileFile, "")
	if err != nil {
		return "", err
	}
	masterID, err := r.stored(idstore.MasterFile, "")
	if err != nil {
		return "", err
	}
	response, err := r.Profiles.ReceiveMaster(ctx, profileID, masterID, "")
	if err != nil {
		return "", err
	}
	return response.Digest, nil
}

// BatchBurnProfiles burns every stored profile.
func (r *Runner) BatchBurnProfiles(ctx context.Context) ([]string, error) {
	profileIDs, err := r.storedProfiles(0)
	if err != nil {
		return nil, err
	}
	if err := r.Profiles.Burn(ctx, profileIDs); err != nil {
		return nil, err
	}
	return profileIDs, nil
}

// GetProfile reads a profile, the stored one when profileID is empty.
func (r *Runner) GetProfile(ctx context.Context, profileID string) (*profile.Profile, error) {
	profileID, err := r.stored(idstore.ProfileFile, profileID)
	if err != nil {
		return nil, err
	}
	return r.Profiles.GetByID(ctx, profileID)
}
