package display

import (
	"context"
	"errors"
	"testing"

	"github.com/recrd-io/recrd-sdk-go/pkg/effects"
	"github.com/recrd-io/recrd-sdk-go/pkg/ptb"
	"github.com/recrd-io/recrd-sdk-go/pkg/rpc"
	"github.com/recrd-io/recrd-sdk-go/pkg/shared"
	"github.com/recrd-io/recrd-sdk-go/pkg/sui/suitest"
)

var testContract = shared.Contract{
	PackageID: suitest.ID(0xaa),
	AdminCap:  suitest.ID(0xac),
	Publisher: suitest.ID(0xab),
}

func standardIDs(types Types) map[string]string {
	return map[string]string{
		types.MasterSound:   suitest.ID(0x21),
		types.MasterVideo:   suitest.ID(0x22),
		types.MetadataSound: suitest.ID(0x23),
		types.MetadataVideo: suitest.ID(0x24),
	}
}

func TestBuildUpdateBatchKeepsOrder(t *testing.T) {
	displayed := testContract.Type("master", "Master") + "<" + testContract.Type("master", "Video") + ">"
	ops := []Op{
		Remove(suitest.ID(1), displayed, "Name"),
		Add(suitest.ID(1), displayed, "name", "{title}"),
		Edit(suitest.ID(1), displayed, "creator", "RECRD"),
		UpdateVersion(suitest.ID(1), displayed),
	}
	batch, err := BuildUpdateBatch(ops)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantArgs := []int{2, 3, 3, 1}
	for index, op := range ops {
		call := batch.Steps[index].(ptb.MoveCall)
		if call.Target.String() != "0x2::display::"+string(op.Kind) {
			t.Fatalf("step %d: unexpected target %s", index, call.Target)
		}
		if len(call.Arguments) != wantArgs[index] {
			t.Fatalf("step %d: expected %d arguments, got %d", index, wantArgs[index], len(call.Arguments))
		}
		if call.TypeArguments[0] != displayed {
			t.Fatalf("step %d: unexpected type argument %v", index, call.TypeArguments)
		}
	}
}

func TestBuildUpdateBatchRejectsBadOps(t *testing.T) {
	cases := map[string]Op{
		"missing display": Add("", "0x2::sui::SUI", "name", "x"),
		"bad type":        Add(suitest.ID(1), "not a type<", "name", "x"),
		"missing field":   Remove(suitest.ID(1), "0x2::sui::SUI", ""),
		"unknown kind":    {Kind: "rename", DisplayID: suitest.ID(1), Type: "0x2::sui::SUI"},
	}
	for name, op := range cases {
		if _, err := BuildUpdateBatch([]Op{op}); !errors.Is(err, ptb.ErrInvalidArgument) {
			t.Fatalf("%s: expected invalid argument, got %v", name, err)
		}
	}
	if _, err := BuildUpdateBatch(nil); err == nil {
		t.Fatal("expected error for no ops")
	}
}

func TestStandardUpdates(t *testing.T) {
	types := StandardTypes(testContract)
	ops, err := StandardUpdates(standardIDs(types), types)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ops) != 28 {
		t.Fatalf("expected 28 ops, got %d", len(ops))
	}
	if ops[0] != Remove(suitest.ID(0x21), types.MasterSound, "Name") {
		t.Fatalf("unexpected first op %+v", ops[0])
	}
	if ops[12] != Remove(suitest.ID(0x24), types.MetadataVideo, "Title") {
		t.Fatalf("metadata video rename should come third, got %+v", ops[12])
	}
	if ops[17] != Add(suitest.ID(0x24), types.MetadataVideo, "creator", Creator) {
		t.Fatalf("unexpected op %+v", ops[17])
	}
	bumps := ops[24:]
	for index, displayed := range types.List() {
		if bumps[index].Kind != OpUpdateVersion || bumps[index].Type != displayed {
			t.Fatalf("bump %d: unexpected %+v", index, bumps[index])
		}
	}

	if _, err := BuildUpdateBatch(ops); err != nil {
		t.Fatalf("standard ops should build: %v", err)
	}

	missing := standardIDs(types)
	delete(missing, types.MetadataSound)
	if _, err := StandardUpdates(missing, types); err == nil {
		t.Fatal("expected error for missing display")
	}
}

func TestBuildNewBatch(t *testing.T) {
	displayed := StandardTypes(testContract).MasterVideo
	batch, err := BuildNewBatch(testContract, displayed, []Field{{Name: "name", Value: "{title}"}}, suitest.ID(9))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if batch.Len() != 3 {
		t.Fatalf("expected new, update_version, transfer; got %d", batch.Len())
	}
	bump := batch.Steps[1].(ptb.MoveCall)
	if result := bump.Arguments[0].(ptb.ResultArg); result.Step != 0 {
		t.Fatalf("update_version should take result(0), got %#v", result)
	}
	if err := batch.Validate(); err != nil {
		t.Fatalf("batch should validate: %v", err)
	}

	noPublisher := testContract
	noPublisher.Publisher = ""
	if _, err := BuildNewBatch(noPublisher, displayed, nil, suitest.ID(9)); err == nil {
		t.Fatal("expected error without publisher")
	}
}

func TestUpdateStandardReadsPublishTransaction(t *testing.T) {
	types := StandardTypes(testContract)
	changes := []rpc.ObjectChange{{Type: rpc.ChangePublished, PackageID: testContract.PackageID}}
	for displayed, id := range standardIDs(types) {
		changes = append(changes, suitest.Created(id, "0x2::display::Display<"+displayed+">"))
	}
	reader := suitest.NewReader()
	reader.Transactions["publish"] = rpc.TransactionBlockResponse{Digest: "publish", ObjectChanges: changes}

	executor := &suitest.Executor{}
	client, err := NewClient(ClientConfig{Contract: testContract, Executor: executor, Reader: reader, Signer: suitest.Signer(1)})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.UpdateStandard(context.Background(), "publish"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if executor.Last().Len() != 28 {
		t.Fatalf("expected 28 steps, got %d", executor.Last().Len())
	}

	reader.Transactions["partial"] = rpc.TransactionBlockResponse{Digest: "partial", ObjectChanges: changes[:2]}
	_, err = client.UpdateStandard(context.Background(), "partial")
	var notFound *effects.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}
