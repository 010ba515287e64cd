package master

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/recrd-io/recrd-sdk-go/pkg/effects"
	"github.com/recrd-io/recrd-sdk-go/pkg/ptb"
	"github.com/recrd-io/recrd-sdk-go/pkg/rpc"
	"github.com/recrd-io/recrd-sdk-go/pkg/sui/suitest"
)

func masterObject(id string, kind Kind, title string, status SaleStatus) rpc.ObjectData {
	return suitest.MoveObject(id, MasterType(testContract, kind), map[string]any{
		"id":                    map[string]any{"id": id},
		"title":                 title,
		"description":           "This is a test video",
		"image_url":             "https://example.com/image.jpg",
		"media_url":             "https://example.com/video.mp4",
		"hashtags":              []any{"test", "video"},
		"creator_profile_id":    suitest.ID(1),
		"royalty_percentage_bp": float64(1000),
		"metadata_ref":          suitest.ID(6),
		"sale_status":           float64(status),
	})
}

func metadataObject(id string, kind Kind, title string) rpc.ObjectData {
	return suitest.MoveObject(id, MetadataType(testContract, kind), map[string]any{
		"id":                     map[string]any{"id": id},
		"master_id":              suitest.ID(5),
		"title":                  title,
		"hashtags":               []any{},
		"creator_profile_id":     suitest.ID(1),
		"royalty_percentage_bp":  float64(1000),
		"master_metadata_parent": map[string]any{"vec": []any{}},
		"master_metadata_origin": map[string]any{"vec": []any{suitest.ID(0x10)}},
		"sale_status":            float64(StatusRetained),
	})
}

func newTestClient(t *testing.T, executor *suitest.Executor, reader *suitest.Reader) *Client {
	t.Helper()
	client, err := NewClient(ClientConfig{
		Contract: testContract,
		Executor: executor,
		Reader:   reader,
		Signer:   suitest.Signer(1),
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestMintReturnsMasterAndMetadata(t *testing.T) {
	executor := &suitest.Executor{Responses: []*rpc.TransactionBlockResponse{suitest.Success(
		suitest.Created(suitest.ID(6), MetadataType(testContract, KindVideo)),
		suitest.Created(suitest.ID(5), MasterType(testContract, KindVideo)),
	)}}
	client := newTestClient(t, executor, suitest.NewReader())

	result, err := client.Mint(context.Background(), mintParams())
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if result.MasterID != suitest.ID(5) || result.MetadataID != suitest.ID(6) {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestMintFallsBackToMetadataRef(t *testing.T) {
	reader := suitest.NewReader()
	reader.Put(masterObject(suitest.ID(5), KindVideo, "Test Video", StatusRetained))
	executor := &suitest.Executor{Responses: []*rpc.TransactionBlockResponse{suitest.Success(
		suitest.Created(suitest.ID(5), MasterType(testContract, KindVideo)),
	)}}
	client := newTestClient(t, executor, reader)

	result, err := client.Mint(context.Background(), mintParams())
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if result.MetadataID != suitest.ID(6) {
		t.Fatalf("expected metadata from metadata_ref, got %+v", result)
	}
}

func TestMintWithoutMetadataFails(t *testing.T) {
	reader := suitest.NewReader()
	minted := masterObject(suitest.ID(5), KindVideo, "Test Video", StatusRetained)
	delete(minted.Content.Fields, "metadata_ref")
	reader.Put(minted)
	executor := &suitest.Executor{Responses: []*rpc.TransactionBlockResponse{suitest.Success(
		suitest.Created(suitest.ID(5), MasterType(testContract, KindVideo)),
	)}}
	client := newTestClient(t, executor, reader)

	result, err := client.Mint(context.Background(), mintParams())
	var notFound *effects.NotFoundError
	if !errors.As(err, &notFound) || notFound.Pattern != metadataPattern {
		t.Fatalf("expected missing metadata error, got %+v, %v", result, err)
	}
}

func TestGetByIDProjection(t *testing.T) {
	reader := suitest.NewReader()
	reader.Put(masterObject(suitest.ID(5), KindSound, "Song", StatusOnSale))
	reader.Put(metadataObject(suitest.ID(6), KindSound, "Song"))
	client := newTestClient(t, &suitest.Executor{}, reader)

	master, err := client.GetByID(context.Background(), suitest.ID(5))
	if err != nil {
		t.Fatalf("get master: %v", err)
	}
	if master.Kind != KindSound || master.SaleStatus != StatusOnSale || master.RoyaltyPercentageBP != 1000 {
		t.Fatalf("unexpected master %+v", master)
	}
	if len(master.Hashtags) != 2 || master.MetadataRef != suitest.ID(6) {
		t.Fatalf("unexpected master %+v", master)
	}

	metadata, err := client.GetMetadataByID(context.Background(), suitest.ID(6))
	if err != nil {
		t.Fatalf("get metadata: %v", err)
	}
	if metadata.MasterID != suitest.ID(5) || metadata.Parent != "" || metadata.Origin != suitest.ID(0x10) {
		t.Fatalf("unexpected metadata %+v", metadata)
	}

	if _, err := client.GetByID(context.Background(), suitest.ID(6)); err == nil {
		t.Fatal("reading metadata as a master should fail")
	}
}

func TestSetSaleStatusReadsKindAndRefetches(t *testing.T) {
	reader := suitest.NewReader()
	reader.Put(masterObject(suitest.ID(5), KindVideo, "Test Video", StatusRetained))
	executor := &suitest.Executor{OnExecute: func(*ptb.Batch) {
		reader.Put(masterObject(suitest.ID(5), KindVideo, "Test Video", StatusOnSale))
	}}
	client := newTestClient(t, executor, reader)

	master, err := client.SetSaleStatus(context.Background(), suitest.ID(1), suitest.ID(5), StatusOnSale)
	if err != nil {
		t.Fatalf("set sale status: %v", err)
	}
	if master.SaleStatus != StatusOnSale {
		t.Fatalf("expected on-sale, got %s", master.SaleStatus)
	}
	borrow := executor.Last().Steps[0].(ptb.MoveCall)
	if borrow.TypeArguments[0] != KindVideo.Type(testContract) {
		t.Fatalf("unexpected type argument %v", borrow.TypeArguments)
	}
}

func TestSyncTitleDetectsMismatch(t *testing.T) {
	reader := suitest.NewReader()
	reader.Put(masterObject(suitest.ID(5), KindVideo, "Old", StatusRetained))
	reader.Put(metadataObject(suitest.ID(6), KindVideo, "New"))
	executor := &suitest.Executor{}
	client := newTestClient(t, executor, reader)

	if _, err := client.SyncTitle(context.Background(), suitest.ID(1), suitest.ID(5), suitest.ID(6)); err == nil ||
		!strings.Contains(err.Error(), "does not match") {
		t.Fatalf("expected mismatch error, got %v", err)
	}

	executor.OnExecute = func(*ptb.Batch) {
		reader.Put(masterObject(suitest.ID(5), KindVideo, "New", StatusRetained))
	}
	master, err := client.SyncTitle(context.Background(), suitest.ID(1), suitest.ID(5), suitest.ID(6))
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if master.Title != "New" {
		t.Fatalf("expected synced title, got %q", master.Title)
	}
}

func TestBurnMetadataUsesMetadataKind(t *testing.T) {
	reader := suitest.NewReader()
	reader.Put(metadataObject(suitest.ID(6), KindSound, "Song"))
	executor := &suitest.Executor{Responses: []*rpc.TransactionBlockResponse{suitest.Success(
		suitest.Deleted(suitest.ID(6), MetadataType(testContract, KindSound)),
	)}}
	client := newTestClient(t, executor, reader)

	if err := client.BurnMetadata(context.Background(), suitest.ID(6)); err != nil {
		t.Fatalf("burn metadata: %v", err)
	}
	call := executor.Last().Steps[0].(ptb.MoveCall)
	if call.Target.Function != "burn_metadata" || call.TypeArguments[0] != KindSound.Type(testContract) {
		t.Fatalf("unexpected call %s<%v>", call.Target, call.TypeArguments)
	}
}

func TestBurnRequiresDeletedObject(t *testing.T) {
	gasOnly := suitest.Success(suitest.Mutated(suitest.ID(0x99), "0x2::coin::Coin<0x2::sui::SUI>"))
	executor := &suitest.Executor{Responses: []*rpc.TransactionBlockResponse{gasOnly}}
	client := newTestClient(t, executor, suitest.NewReader())
	ctx := context.Background()

	var notFound *effects.NotFoundError
	err := client.BurnWithKind(ctx, suitest.ID(5), KindVideo.Type(testContract))
	if !errors.As(err, &notFound) || notFound.Pattern != masterPattern {
		t.Fatalf("expected missing master deletion, got %v", err)
	}
	err = client.BurnMetadataWithKind(ctx, suitest.ID(6), KindVideo.Type(testContract))
	if !errors.As(err, &notFound) || notFound.Pattern != metadataPattern {
		t.Fatalf("expected missing metadata deletion, got %v", err)
	}

	executor.Responses = []*rpc.TransactionBlockResponse{suitest.Success(
		suitest.Deleted(suitest.ID(5), MasterType(testContract, KindVideo)),
	)}
	if err := client.BurnWithKind(ctx, suitest.ID(5), KindVideo.Type(testContract)); err != nil {
		t.Fatalf("burn: %v", err)
	}
}
