package workflow

import (
	"context"
	"fmt"

	"github.com/recrd-io/recrd-sdk-go/pkg/idstore"
	"github.com/recrd-io/recrd-sdk-go/pkg/ptb"
	"github.com/recrd-io/recrd-sdk-go/pkg/rpc"
)

// ReceiptResult is the outcome of MintReceipt.
type ReceiptResult struct {
	BuyerProfileID string `json:"buyerProfileId"`
	ReceiptID      string `json:"receiptId"`
}

// MintReceipt creates a buyer profile, stores it, and issues it a receipt for
// the stored Master.
func (r *Runner) MintReceipt(ctx context.Context) (*ReceiptResult, error) {
	masterID, err := r.stored(idstore.MasterFile, "")
	if err != nil {
		return nil, err
	}
	ids, err := r.Profiles.Create(ctx, []string{SampleBuyerUserID}, []string{SampleBuyerUsername})
	if err != nil {
		return nil, fmt.Errorf("create buyer profile: %w", err)
	}
	buyerID := ids[0]
	if err := r.store.Save(idstore.BuyerProfileFile, buyerID); err != nil {
		return nil, err
	}

	receiptID, err := r.Receipts.Mint(ctx, masterID, buyerID)
	if err != nil {
		return nil, err
	}
	return &ReceiptResult{BuyerProfileID: buyerID, ReceiptID: receiptID}, nil
}

// UpdateDisplay applies the standard display migration to the displays
// created by the publish transaction.
func (r *Runner) UpdateDisplay(ctx context.Context, publishDigest string) (*rpc.TransactionBlockResponse, error) {
	if publishDigest == "" {
		publishDigest = r.config.PublishDigest
	}
	if publishDigest == "" {
		return nil, ptb.Invalidf("a publish digest is required, set PUBLISH_DIGEST or pass one")
	}
	return r.Displays.UpdateStandard(ctx, publishDigest)
}
