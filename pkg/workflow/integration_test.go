package workflow

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/recrd-io/recrd-sdk-go/pkg/shared"
)

func TestIntegration_ProfileAndMasterLifecycle(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION") != "1" {
		t.Skip("set RUN_INTEGRATION=1 to run live integration tests")
	}

	config, err := shared.LoadConfig()
	if err != nil {
		t.Skipf("skipping integration test: %v", err)
	}
	if config.Network == shared.NetworkMainnet && os.Getenv("ALLOW_MAINNET_INTEGRATION") != "1" {
		t.Skip("resolved mainnet configuration; set ALLOW_MAINNET_INTEGRATION=1 to allow live mainnet writes")
	}
	config.StateDir = t.TempDir()

	runner, err := Connect(config, Options{Out: os.Stdout})
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	profileID, err := runner.CreateProfile(ctx, SampleUserID, SampleUsername)
	if err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	updated, err := runner.UpdateProfile(ctx, profileID, nil)
	if err != nil {
		t.Fatalf("failed to update profile: %v", err)
	}
	if updated.WatchTime != 3600 || updated.VideosWatched != 42 {
		t.Fatalf("unexpected counters after update: %+v", updated)
	}

	params := SampleMint()
	params.CreatorProfileID = profileID
	minted, err := runner.MintMaster(ctx, params)
	if err != nil {
		t.Fatalf("failed to mint master: %v", err)
	}
	found, err := runner.GetMaster(ctx, minted.MasterID)
	if err != nil {
		t.Fatalf("failed to read master: %v", err)
	}
	if found.Title != params.Title || found.CreatorProfileID != profileID {
		t.Fatalf("unexpected master: %+v", found)
	}

	if _, err := runner.SetOnSale(ctx); err != nil {
		t.Fatalf("failed to list master: %v", err)
	}
	if _, err := runner.Retain(ctx); err != nil {
		t.Fatalf("failed to retain master: %v", err)
	}
}
