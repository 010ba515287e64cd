package workflow

import (
	"context"
	"fmt"

	"github.com/recrd-io/recrd-sdk-go/pkg/idstore"
	"github.com/recrd-io/recrd-sdk-go/pkg/master"
	"github.com/recrd-io/recrd-sdk-go/pkg/profile"
	"github.com/recrd-io/recrd-sdk-go/pkg/rpc"
	"github.com/recrd-io/recrd-sdk-go/pkg/shared"
)

// SampleMint is the Master minted when no parameter file is given.
func SampleMint() master.MintParams {
	return master.MintParams{
		Kind:                master.KindVideo,
		Title:               "Test Video",
		Description:         "This is a test video",
		ImageURL:            "https://example.com/image.jpg",
		MediaURL:            "https://example.com/video.mp4",
		Hashtags:            []string{"test", "video"},
		RoyaltyPercentageBP: 1000,
		SaleStatus:          master.StatusRetained,
	}
}

// MintMaster mints a Master and stores the Master and Metadata ids. Without
// a creator profile a new one is created first and becomes the stored
// profile.
func (r *Runner) MintMaster(ctx context.Context, params master.MintParams) (*master.MintResult, error) {
	if params.CreatorProfileID == "" {
		profileID, err := r.CreateProfile(ctx, "testUserId", "testUsername")
		if err != nil {
			return nil, fmt.Errorf("create creator profile: %w", err)
		}
		params.CreatorProfileID = profileID
	}

	result, err := r.Masters.Mint(ctx, params)
	if err != nil {
		return nil, err
	}
	if err := r.store.Save(idstore.MasterFile, result.MasterID); err != nil {
		return nil, err
	}
	if err := r.store.Save(idstore.MetadataFile, result.MetadataID); err != nil {
		return nil, err
	}
	r.logger.Info().Str("master_id", result.MasterID).Str("metadata_id", result.MetadataID).Msg("master minted")
	return result, nil
}

// GetMaster reads a Master, the stored one when masterID is empty.
func (r *Runner) GetMaster(ctx context.Context, masterID string) (*master.Master, error) {
	masterID, err := r.stored(idstore.MasterFile, masterID)
	if err != nil {
		return nil, err
	}
	return r.Masters.GetByID(ctx, masterID)
}

// GetMetadata reads a Metadata object, the stored one when metadataID is empty.
func (r *Runner) GetMetadata(ctx context.Context, metadataID string) (*master.Metadata, error) {
	metadataID, err := r.stored(idstore.MetadataFile, metadataID)
	if err != nil {
		return nil, err
	}
	return r.Masters.GetMetadataByID(ctx, metadataID)
}

func (r *Runner) profileAndMaster() (string, string, error) {
	profileID, err := r.stored(idstore.ProfileFile, "")
	if err != nil {
		return "", "", err
	}
	masterID, err := r.stored(idstore.MasterFile, "")
	if err != nil {
		return "", "", err
	}
	return profileID, masterID, nil
}

// SetOnSale lists the stored Master for sale.
func (r *Runner) SetOnSale(ctx context.Context) (*master.Master, error) {
	profileID, masterID, err := r.profileAndMaster()
	if err != nil {
		return nil, err
	}
	return r.Masters.SetSaleStatus(ctx, profileID, masterID, master.StatusOnSale)
}

// Retain takes the stored Master off sale.
func (r *Runner) Retain(ctx context.Context) (*master.Master, error) {
	profileID, masterID, err := r.profileAndMaster()
	if err != nil {
		return nil, err
	}
	return r.Masters.Retain(ctx, profileID, masterID)
}

// SetTitleAndSync renames the stored Metadata and copies the title onto the
// stored Master.
func (r *Runner) SetTitleAndSync(ctx context.Context, title string) (*master.Master, error) {
	profileID, masterID, err := r.profileAndMaster()
	if err != nil {
		return nil, err
	}
	metadataID, err := r.stored(idstore.MetadataFile, "")
	if err != nil {
		return nil, err
	}
	if title == "" {
		title = "This is a new title"
	}

	if _, err := r.Masters.SetMetadataTitle(ctx, metadataID, title); err != nil {
		return nil, err
	}
	return r.Masters.SyncTitle(ctx, profileID, masterID, metadataID)
}

// ReceiveAndBurn takes the stored Master out of its profile and burns it.
func (r *Runner) ReceiveAndBurn(ctx context.Context) error {
	profileID, masterID, err := r.profileAndMaster()
	if err != nil {
		return err
	}
	if _, err := r.Profiles.ReceiveMaster(ctx, profileID, masterID, ""); err != nil {
		return err
	}
	return r.Masters.Burn(ctx, masterID)
}

// BurnMetadata burns a Metadata object, the stored one when metadataID is
// empty.
func (r *Runner) BurnMetadata(ctx context.Context, metadataID string) error {
	metadataID, err := r.stored(idstore.MetadataFile, metadataID)
	if err != nil {
		return err
	}
	return r.Masters.BurnMetadata(ctx, metadataID)
}

// Buy spends the first receipt held by the stored buyer profile on the
// Master it names, signed by the end user.
func (r *Runner) Buy(ctx context.Context) (*rpc.TransactionBlockResponse, error) {
	if r.user == nil {
		return nil, fmt.Errorf("buying requires %s", shared.EnvUserKey)
	}
	sellerID, err := r.stored(idstore.ProfileFile, "")
	if err != nil {
		return nil, err
	}
	buyerID, err := r.stored(idstore.BuyerProfileFile, "")
	if err != nil {
		return nil, err
	}

	receipts, err := r.Receipts.OwnedBy(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if len(receipts) == 0 {
		return nil, fmt.Errorf("no receipt objects found for buyer profile %s", buyerID)
	}
	chosen := receipts[0]
	r.logger.Info().Str("receipt_id", chosen.ID).Str("master_id", chosen.MasterID).Msg("buying master")

	return r.Profiles.Buy(ctx, profile.BuyParams{
		SellerProfileID: sellerID,
		MasterID:        chosen.MasterID,
		BuyerProfileID:  buyerID,
		ReceiptID:       chosen.ID,
	}, r.user)
}
