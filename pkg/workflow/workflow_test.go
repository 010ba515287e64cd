package workflow

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/recrd-io/recrd-sdk-go/pkg/idstore"
	"github.com/recrd-io/recrd-sdk-go/pkg/keys"
	"github.com/recrd-io/recrd-sdk-go/pkg/master"
	"github.com/recrd-io/recrd-sdk-go/pkg/profile"
	"github.com/recrd-io/recrd-sdk-go/pkg/ptb"
	"github.com/recrd-io/recrd-sdk-go/pkg/rpc"
	"github.com/recrd-io/recrd-sdk-go/pkg/shared"
	"github.com/recrd-io/recrd-sdk-go/pkg/sui"
	"github.com/recrd-io/recrd-sdk-go/pkg/sui/suitest"
	"github.com/spf13/afero"
)

var testConfig = shared.Config{
	Network:   "localnet",
	PackageID: suitest.ID(0xaa),
	AdminCap:  suitest.ID(0xac),
	Publisher: suitest.ID(0xab),
	Registry:  suitest.ID(0xad),
	StateDir:  "state",
}

// chain applies the profile and master calls of a batch to the reader.
type chain struct {
	reader   *suitest.Reader
	profiles map[string]map[string]any
}

func newChain() *chain {
	return &chain{reader: suitest.NewReader(), profiles: map[string]map[string]any{}}
}

func (c *chain) putProfile(id string) {
	fields := map[string]any{
		"id":       map[string]any{"id": id},
		"user_id":  "user",
		"username": "name",
		"authorizations": map[string]any{
			"type": "0x2::table::Table<address, u8>",
			"fields": map[string]any{"id": map[string]any{"id": suitest.ID(0x70)}, "size": "0"},
		},
		"watch_time":          "0",
		"videos_watched":      "0",
		"adverts_watched":     "0",
		"number_of_followers": "0",
		"number_of_following": "0",
		"ad_revenue":          "0",
		"commission_revenue":  "0",
	}
	c.profiles[id] = fields
	c.reader.Put(suitest.MoveObject(id, testConfig.Contract().Type("profile", "Profile"), fields))
}

func (c *chain) apply(batch *ptb.Batch) {
	for _, step := range batch.Steps {
		call, ok := step.(ptb.MoveCall)
		if !ok {
			continue
		}
		field := map[string]string{
			"update_watch_time":     "watch_time",
			"update_videos_watched": "videos_watched",
		}[call.Target.Function]
		if field == "" {
			continue
		}
		profileID := call.Arguments[0].(ptb.ObjectArg).ID
		value := call.Arguments[1].(ptb.PureArg).Value.(uint64)
		c.profiles[profileID][field] = strconv.FormatUint(value, 10)
	}
}

func newRunner(t *testing.T, executor sui.Executor, reader sui.ObjectReader, user keys.Signer) (*Runner, *idstore.Store) {
	t.Helper()
	store := idstore.New(afero.NewMemMapFs(), testConfig.StateDir)
	counter := 0
	runner, err := New(Deps{
		Config:   testConfig,
		Executor: executor,
		Reader:   reader,
		Store:    store,
		Operator: suitest.Signer(1),
		User:     user,
		NewUserID: func() string {
			counter++
			return fmt.Sprintf("generated-%d", counter)
		},
		Addresses: func(size int) ([]keys.AddressEntry, error) {
			entries := make([]keys.AddressEntry, size)
			for index := range entries {
				entries[index] = keys.AddressEntry{Address: suitest.ID(byte(0x40 + index))}
			}
			return entries, nil
		},
	})
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	return runner, store
}

func TestProfileCreatePersistReadUpdate(t *testing.T) {
	profileID := suitest.ID(1)
	profileType := testConfig.Contract().Type("profile", "Profile")
	state := newChain()

	executor := &suitest.Executor{
		Responses: []*rpc.TransactionBlockResponse{
			suitest.Success(suitest.Created(profileID, profileType)),
			suitest.Success(suitest.Mutated(profileID, profileType)),
		},
	}
	executor.OnExecute = func(batch *ptb.Batch) {
		if len(executor.Batches) == 1 {
			state.putProfile(profileID)
			return
		}
		state.apply(batch)
	}
	runner, store := newRunner(t, executor, state.reader, nil)
	ctx := context.Background()

	id, err := runner.CreateProfile(ctx, SampleUserID, SampleUsername)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if stored, _ := store.Load(idstore.ProfileFile); stored != id {
		t.Fatalf("expected stored id %s, got %s", id, stored)
	}

	updated, err := runner.UpdateProfile(ctx, "", nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.WatchTime != 3600 || updated.VideosWatched != 42 {
		t.Fatalf("unexpected profile after updates %+v", updated)
	}

	first, err := runner.GetProfile(ctx, "")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	second, err := runner.GetProfile(ctx, "")
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated reads differ:\n%+v\n%+v", first, second)
	}
}

func TestBatchNewStoresEveryID(t *testing.T) {
	profileType := testConfig.Contract().Type("profile", "Profile")
	executor := &suitest.Executor{Responses: []*rpc.TransactionBlockResponse{suitest.Success(
		suitest.Created(suitest.ID(1), profileType),
		suitest.Created(suitest.ID(2), profileType),
		suitest.Created(suitest.ID(3), profileType),
	)}}
	runner, store := newRunner(t, executor, suitest.NewReader(), nil)

	ids, err := runner.BatchNewProfiles(context.Background(), 3)
	if err != nil {
		t.Fatalf("batch new: %v", err)
	}
	stored, err := store.LoadList(idstore.ProfileFile)
	if err != nil || !reflect.DeepEqual(stored, ids) {
		t.Fatalf("stored %v, %v; want %v", stored, err, ids)
	}
	first := executor.Last().Steps[0].(ptb.MoveCall)
	if userID := first.Arguments[1].(ptb.PureArg).Value; userID != "generated-1" {
		t.Fatalf("expected generated user id, got %v", userID)
	}
}

func TestBatchAuthorizeTruncatesToStoredProfiles(t *testing.T) {
	executor := &suitest.Executor{}
	runner, store := newRunner(t, executor, suitest.NewReader(), nil)
	if err := store.SaveList(idstore.ProfileFile, []string{suitest.ID(1), suitest.ID(2), suitest.ID(3)}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	authorizations, err := runner.BatchAuthorize(context.Background(), 2, profile.AccessUpdate)
	if err != nil {
		t.Fatalf("batch authorize: %v", err)
	}
	if len(authorizations) != 2 || executor.Last().Len() != 2 {
		t.Fatalf("expected two authorizations, got %+v", authorizations)
	}
	if authorizations[1].User != suitest.ID(0x41) || authorizations[1].Level != profile.AccessUpdate {
		t.Fatalf("unexpected authorization %+v", authorizations[1])
	}
}

func TestMintMasterCreatesProfileAndStoresIDs(t *testing.T) {
	contract := testConfig.Contract()
	executor := &suitest.Executor{Responses: []*rpc.TransactionBlockResponse{
		suitest.Success(suitest.Created(suitest.ID(1), contract.Type("profile", "Profile"))),
		suitest.Success(
			suitest.Created(suitest.ID(5), master.MasterType(contract, master.KindVideo)),
			suitest.Created(suitest.ID(6), master.MetadataType(contract, master.KindVideo)),
		),
	}}
	runner, store := newRunner(t, executor, suitest.NewReader(), nil)

	result, err := runner.MintMaster(context.Background(), SampleMint())
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if result.MasterID != suitest.ID(5) || result.MetadataID != suitest.ID(6) {
		t.Fatalf("unexpected result %+v", result)
	}
	for name, want := range map[string]string{
		idstore.ProfileFile:  suitest.ID(1),
		idstore.MasterFile:   suitest.ID(5),
		idstore.MetadataFile: suitest.ID(6),
	} {
		if got, _ := store.Load(name); got != want {
			t.Fatalf("%s: expected %s, got %s", name, want, got)
		}
	}

	transfer := executor.Last().Steps[3].(ptb.TransferObjects)
	if recipient := transfer.Recipient.(ptb.PureArg).Value; recipient != suitest.ID(1) {
		t.Fatalf("master should go to the creator profile, got %v", recipient)
	}
}

func TestScenariosNeedStoredIDs(t *testing.T) {
	executor := &suitest.Executor{}
	runner, _ := newRunner(t, executor, suitest.NewReader(), nil)

	if _, err := runner.SetOnSale(context.Background()); !errors.Is(err, idstore.ErrNotFound) {
		t.Fatalf("expected missing id error, got %v", err)
	}
	if len(executor.Batches) != 0 {
		t.Fatal("nothing should be submitted")
	}
}

func TestBuySpendsFirstReceiptAsUser(t *testing.T) {
	contract := testConfig.Contract()
	buyerID := suitest.ID(6)
	reader := suitest.NewReader()
	reader.Owned[buyerID] = []rpc.ObjectData{
		suitest.MoveObject(suitest.ID(7), contract.Type("receipt", "Receipt"), map[string]any{
			"master_id":    suitest.ID(5),
			"user_profile": buyerID,
		}),
	}
	reader.Put(suitest.MoveObject(suitest.ID(5), master.MasterType(contract, master.KindSound), map[string]any{}))

	user := suitest.Signer(2)
	executor := &suitest.Executor{}
	runner, store := newRunner(t, executor, reader, user)
	_ = store.Save(idstore.ProfileFile, suitest.ID(1))
	_ = store.Save(idstore.BuyerProfileFile, buyerID)

	if _, err := runner.Buy(context.Background()); err != nil {
		t.Fatalf("buy: %v", err)
	}
	call := executor.Last().Steps[0].(ptb.MoveCall)
	if call.Target.Function != "buy" || call.Arguments[3].(ptb.ObjectArg).ID != suitest.ID(7) {
		t.Fatalf("unexpected buy call %#v", call)
	}
	if executor.Signers[0].Address() != user.Address() {
		t.Fatal("buy must be signed by the user")
	}
}

func TestBuyWithoutUserKey(t *testing.T) {
	runner, _ := newRunner(t, &suitest.Executor{}, suitest.NewReader(), nil)
	if _, err := runner.Buy(context.Background()); err == nil {
		t.Fatal("expected error without a user signer")
	}
}

func TestDryRunPrintsInsteadOfSubmitting(t *testing.T) {
	var out bytes.Buffer
	runner, store := newRunner(t, &sui.PrintExecutor{Writer: &out}, suitest.NewReader(), nil)

	_, err := runner.CreateProfile(context.Background(), SampleUserID, SampleUsername)
	if !errors.Is(err, sui.ErrNotSubmitted) {
		t.Fatalf("expected ErrNotSubmitted, got %v", err)
	}
	if !strings.Contains(out.String(), "::profile::new") {
		t.Fatalf("expected the printed batch, got %s", out.String())
	}
	if _, err := store.Load(idstore.ProfileFile); !errors.Is(err, idstore.ErrNotFound) {
		t.Fatal("a dry run must not store ids")
	}
}

func TestUpdateDisplayNeedsDigest(t *testing.T) {
	runner, _ := newRunner(t, &suitest.Executor{}, suitest.NewReader(), nil)
	if _, err := runner.UpdateDisplay(context.Background(), ""); !errors.Is(err, ptb.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestQuickBurnMasterUsesVideoKind(t *testing.T) {
	executor := &suitest.Executor{Responses: []*rpc.TransactionBlockResponse{suitest.Success(
		suitest.Deleted(suitest.ID(5), master.MasterType(testConfig.Contract(), master.KindVideo)),
	)}}
	runner, _ := newRunner(t, executor, suitest.NewReader(), nil)

	if err := runner.QuickBurnMaster(context.Background(), suitest.ID(5)); err != nil {
		t.Fatalf("burn: %v", err)
	}
	call := executor.Last().Steps[0].(ptb.MoveCall)
	if call.TypeArguments[0] != master.KindVideo.Type(testConfig.Contract()) {
		t.Fatalf("unexpected type argument %v", call.TypeArguments)
	}
}
