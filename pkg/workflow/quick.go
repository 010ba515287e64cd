package workflow

import (
	"context"
	"strconv"

	"github.com/recrd-io/recrd-sdk-go/pkg/master"
	"github.com/recrd-io/recrd-sdk-go/pkg/profile"
)

// Quick commands submit one fixed batch each, without touching the id store.

const (
	quickUserID   = "1d2f3c"
	quickUsername = "Test User"

	freeImageURL = "https://images.pexels.com/photos/19987062/pexels-photo-19987062/" +
		"free-photo-of-a-close-up-of-pink-flowers-in-a-field.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2"
)

// QuickMintProfile mints a sample profile and returns its id.
func (r *Runner) QuickMintProfile(ctx context.Context) (string, error) {
	ids, err := r.Profiles.Create(ctx, []string{quickUserID}, []string{quickUsername})
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

// QuickUpdateProfile sets the watch time of profileID. The contract rejects
// a watch time lower than the current one.
func (r *Runner) QuickUpdateProfile(ctx context.Context, profileID string, watchTime uint64) (*profile.Profile, error) {
	return r.Profiles.Update(ctx, profileID, profile.FieldWatchTime, strconv.FormatUint(watchTime, 10), "")
}

// QuickMintMaster mints a sample video Master owned by the operator.
func (r *Runner) QuickMintMaster(ctx context.Context) (*master.MintResult, error) {
	return r.Masters.Mint(ctx, master.MintParams{
		Kind:                master.KindVideo,
		Title:               "Floweressence",
		Description:         "Flowers of Spring",
		ImageURL:            freeImageURL,
		MediaURL:            freeImageURL,
		Hashtags:            []string{"Flower", "Spring", "Nature"},
		CreatorProfileID:    r.operator.Address(),
		RoyaltyPercentageBP: 100,
		SaleStatus:          master.StatusRetained,
	})
}

// QuickBurnMaster burns a video Master owned by the operator.
func (r *Runner) QuickBurnMaster(ctx context.Context, masterID string) error {
	return r.Masters.BurnWithKind(ctx, masterID, master.KindVideo.Type(r.contract))
}

// QuickBurnMetadata burns a video Metadata object.
func (r *Runner) QuickBurnMetadata(ctx context.Context, metadataID string) error {
	return r.Masters.BurnMetadataWithKind(ctx, metadataID, master.KindVideo.Type(r.contract))
}
