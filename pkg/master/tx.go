package master

import (
	"strings"

	"github.com/recrd-io/recrd-sdk-go/pkg/ptb"
	"github.com/recrd-io/recrd-sdk-go/pkg/shared"
)

var optionNone = ptb.NewTarget(ptb.StdAddress, "option", "none")

func target(contract shared.Contract, function string) ptb.Target {
	return ptb.NewTarget(contract.PackageID, Module, function)
}

func profileTarget(contract shared.Contract, function string) ptb.Target {
	return ptb.NewTarget(contract.PackageID, profileModule, function)
}

func requireID(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return ptb.Invalidf("%s is required", name)
	}
	return nil
}

type requiredID struct {
	name, value string
}

// prepare checks the contract, then each id in order; the first empty one
// is reported.
func prepare(contract shared.Contract, ids ...requiredID) error {
	if err := contract.Validate(); err != nil {
		return ptb.Invalidf("%v", err)
	}
	for _, id := range ids {
		if err := requireID(id.name, id.value); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the parameters the contract would otherwise abort on.
func (p MintParams) Validate() error {
	if _, err := ParseKind(string(p.Kind)); err != nil {
		return err
	}
	if strings.TrimSpace(p.Title) == "" {
		return ptb.Invalidf("master title is required")
	}
	if err := requireID("creator profile ID", p.CreatorProfileID); err != nil {
		return err
	}
	if p.RoyaltyPercentageBP > MaxRoyaltyBP {
		return ptb.Invalidf("royalty %d bp exceeds %d bp", p.RoyaltyPercentageBP, MaxRoyaltyBP)
	}
	return p.SaleStatus.Validate()
}

// BuildMintBatch mints a Master and transfers it to the creator's profile.
// Empty parent or origin ids are passed as option::none.
func BuildMintBatch(contract shared.Contract, params MintParams) (*ptb.Batch, error) {
	if err := contract.Validate(); err != nil {
		return nil, ptb.Invalidf("%v", err)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	kind, _ := ParseKind(string(params.Kind))

	batch := ptb.New()
	option := func(id string) ptb.Argument {
		if strings.TrimSpace(id) == "" {
			return batch.MoveCall(optionNone, []string{ptb.IDType})
		}
		return ptb.OptionID(id)
	}
	parent := option(params.Parent)
	origin := option(params.Origin)

	hashtags := params.Hashtags
	if hashtags == nil {
		hashtags = []string{}
	}
	master := batch.MoveCall(
		target(contract, "new"),
		[]string{kind.Type(contract)},
		ptb.Object(contract.AdminCap),
		ptb.String(params.Title),
		ptb.String(params.Description),
		ptb.String(params.ImageURL),
		ptb.String(params.MediaURL),
		ptb.Strings(hashtags),
		ptb.Address(params.CreatorProfileID),
		ptb.U16(params.RoyaltyPercentageBP),
		parent,
		origin,
		ptb.U8(uint8(params.SaleStatus)),
	)
	batch.TransferObjects([]ptb.Argument{master}, ptb.Address(params.CreatorProfileID))
	return batch, nil
}

// borrow appends the borrow step for a Master held by a profile and returns
// the borrowed Master and the borrow receipt.
func borrow(batch *ptb.Batch, contract shared.Contract, profileID, masterID, kindType string) (ptb.Argument, ptb.Argument) {
	borrowed := batch.MoveCall(
		profileTarget(contract, "borrow_master"),
		[]string{kindType},
		ptb.Object(profileID),
		ptb.Receiving(masterID),
	)
	return borrowed.Nested(0), borrowed.Nested(1)
}

func giveBack(batch *ptb.Batch, contract shared.Contract, profileID, kindType string, master, receipt ptb.Argument) {
	batch.MoveCall(
		profileTarget(contract, "return_master"),
		[]string{kindType},
		ptb.Object(profileID),
		master,
		receipt,
	)
}

// BuildSetSaleStatusBatch borrows the Master from its profile, sets the
// status and returns it in one batch.
func BuildSetSaleStatusBatch(
	contract shared.Contract,
	profileID, masterID, kindType string,
	status SaleStatus,
) (*ptb.Batch, error) {
	if err := prepare(contract,
		requiredID{"profile ID", profileID},
		requiredID{"master ID", masterID},
		requiredID{"master kind", kindType},
	); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	batch := ptb.New()
	master, receipt := borrow(batch, contract, profileID, masterID, kindType)
	batch.MoveCall(
		target(contract, "set_sale_status"),
		[]string{kindType},
		ptb.Object(contract.AdminCap),
		master,
		ptb.U8(uint8(status)),
	)
	giveBack(batch, contract, profileID, kindType, master, receipt)
	return batch, nil
}

// BuildRetainBatch sets the Master back to retained.
func BuildRetainBatch(contract shared.Contract, profileID, masterID, kindType string) (*ptb.Batch, error) {
	return BuildSetSaleStatusBatch(contract, profileID, masterID, kindType, StatusRetained)
}

// BuildSetMetadataTitleBatch changes the title stored on the Metadata.
func BuildSetMetadataTitleBatch(contract shared.Contract, metadataID, kindType, title string) (*ptb.Batch, error) {
	if err := prepare(contract,
		requiredID{"metadata ID", metadataID},
		requiredID{"master kind", kindType},
	); err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		return nil, ptb.Invalidf("metadata title is required")
	}

	batch := ptb.New()
	batch.MoveCall(
		target(contract, "set_metadata_title"),
		[]string{kindType},
		ptb.Object(contract.AdminCap),
		ptb.Object(metadataID),
		ptb.String(title),
	)
	return batch, nil
}

// BuildSyncTitleBatch copies the Metadata title onto the borrowed Master.
func BuildSyncTitleBatch(contract shared.Contract, profileID, masterID, metadataID, kindType string) (*ptb.Batch, error) {
	if err := prepare(contract,
		requiredID{"profile ID", profileID},
		requiredID{"master ID", masterID},
		requiredID{"metadata ID", metadataID},
		requiredID{"master kind", kindType},
	); err != nil {
		return nil, err
	}

	batch := ptb.New()
	master, receipt := borrow(batch, contract, profileID, masterID, kindType)
	batch.MoveCall(
		target(contract, "sync_title"),
		[]string{kindType},
		master,
		ptb.ReadOnlyObject(metadataID),
	)
	giveBack(batch, contract, profileID, kindType, master, receipt)
	return batch, nil
}

// BuildBurnBatch destroys a Master owned by the operator.
func BuildBurnBatch(contract shared.Contract, masterID, kindType string) (*ptb.Batch, error) {
	return burnBatch(contract, "burn", "master ID", masterID, kindType)
}

// BuildBurnMetadataBatch destroys a Metadata object.
func BuildBurnMetadataBatch(contract shared.Contract, metadataID, kindType string) (*ptb.Batch, error) {
	return burnBatch(contract, "burn_metadata", "metadata ID", metadataID, kindType)
}

func burnBatch(contract shared.Contract, function, name, objectID, kindType string) (*ptb.Batch, error) {
	if err := prepare(contract,
		requiredID{name, objectID},
		requiredID{"master kind", kindType},
	); err != nil {
		return nil, err
	}
	batch := ptb.New()
	batch.MoveCall(
		target(contract, function),
		[]string{kindType},
		ptb.Object(contract.AdminCap),
		ptb.Object(objectID),
	)
	return batch, nil
}
