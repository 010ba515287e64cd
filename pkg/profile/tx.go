package profile

import (
	"strconv"
	"strings"

	"github.com/recrd-io/recrd-sdk-go/pkg/ptb"
	"github.com/recrd-io/recrd-sdk-go/pkg/shared"
)

func target(contract shared.Contract, function string) ptb.Target {
	return ptb.NewTarget(contract.PackageID, Module, function)
}

// BuildNewBatch creates one profile per (userID, username) pair.
func BuildNewBatch(contract shared.Contract, userIDs, usernames []string) (*ptb.Batch, error) {
	if err := contract.Validate(); err != nil {
		return nil, ptb.Invalidf("%v", err)
	}
	if err := requireSameLength("userId and username", len(userIDs), len(usernames)); err != nil {
		return nil, err
	}
	if len(userIDs) == 0 {
		return nil, ptb.Invalidf("at least one profile is required")
	}

	batch := ptb.New()
	appendNew(batch, contract, userIDs, usernames)
	return batch, nil
}

func appendNew(batch *ptb.Batch, contract shared.Contract, userIDs, usernames []string) {
	for index := range userIDs {
		batch.MoveCall(
			target(contract, "new"),
			nil,
			ptb.Object(contract.AdminCap),
			ptb.String(userIDs[index]),
			ptb.String(usernames[index]),
		)
	}
}

// BuildUpdateBatch updates one field of a profile. value is parsed according
// to the field: text for userId and username, a decimal u64 for counters and
// an access level for authorization, which also needs address.
func BuildUpdateBatch(
	contract shared.Contract,
	profileID string,
	field Field,
	value string,
	address string,
) (*ptb.Batch, error) {
	if err := contract.Validate(); err != nil {
		return nil, ptb.Invalidf("%v", err)
	}
	if err := requireID("profile ID", profileID); err != nil {
		return nil, err
	}
	function, ok := UpdateFunction(field)
	if !ok {
		return nil, ptb.Invalidf("invalid update type %q", field)
	}

	var arguments []ptb.Argument
	switch field {
	case FieldUserID:
		arguments = []ptb.Argument{ptb.Object(contract.AdminCap), ptb.Object(profileID), ptb.String(value)}
	case FieldUsername:
		arguments = []ptb.Argument{ptb.Object(profileID), ptb.String(value)}
	case FieldAuthorization:
		if err := requireID("authorization address", address); err != nil {
			return nil, err
		}
		level, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, ptb.Invalidf("access level %q is not a number", value)
		}
		if err := ValidateAccessLevel(level); err != nil {
			return nil, err
		}
		arguments = []ptb.Argument{
			ptb.Object(contract.AdminCap),
			ptb.Object(profileID),
			ptb.Address(address),
			ptb.U8(uint8(level)),
		}
	default:
		number, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return nil, ptb.Invalidf("%s value %q is not an unsigned integer", field, value)
		}
		arguments = []ptb.Argument{ptb.Object(profileID), ptb.U64(number)}
	}

	batch := ptb.New()
	batch.MoveCall(target(contract, function), nil, arguments...)
	return batch, nil
}

// BuildAuthorizeBatch grants each user its level on the matching profile.
func BuildAuthorizeBatch(contract shared.Contract, profileIDs, users []string, levels []int) (*ptb.Batch, error) {
	if err := contract.Validate(); err != nil {
		return nil, ptb.Invalidf("%v", err)
	}
	if err := requireSameLength("profileId, user, and accessLevel", len(profileIDs), len(users), len(levels)); err != nil {
		return nil, err
	}
	if len(profileIDs) == 0 {
		return nil, ptb.Invalidf("at least one authorization is required")
	}

	batch := ptb.New()
	if err := appendAuthorize(batch, contract, profileIDs, users, levels); err != nil {
		return nil, err
	}
	return batch, nil
}

func appendAuthorize(batch *ptb.Batch, contract shared.Contract, profileIDs, users []string, levels []int) error {
	for index := range profileIDs {
		if err := ValidateAccessLevel(levels[index]); err != nil {
			return err
		}
		if err := requireID("profile ID", profileIDs[index]); err != nil {
			return err
		}
		batch.MoveCall(
			target(contract, "authorize"),
			nil,
			ptb.Object(contract.AdminCap),
			ptb.Object(profileIDs[index]),
			ptb.Address(users[index]),
			ptb.U8(uint8(levels[index])),
		)
	}
	return nil
}

// BuildDeauthorizeBatch removes user from the profile's authorizations.
func BuildDeauthorizeBatch(contract shared.Contract, profileID, user string) (*ptb.Batch, error) {
	if err := contract.Validate(); err != nil {
		return nil, ptb.Invalidf("%v", err)
	}
	if err := requireID("profile ID", profileID); err != nil {
		return nil, err
	}
	if err := requireID("user address", user); err != nil {
		return nil, err
	}
	batch := ptb.New()
	batch.MoveCall(
		target(contract, "deauthorize"),
		nil,
		ptb.Object(contract.AdminCap),
		ptb.Object(profileID),
		ptb.Address(user),
	)
	return batch, nil
}

// BuildComboBatch creates profiles and then authorizes users in one batch.
func BuildComboBatch(contract shared.Contract, params ComboParams) (*ptb.Batch, error) {
	if err := contract.Validate(); err != nil {
		return nil, ptb.Invalidf("%v", err)
	}
	if err := requireSameLength("userId and username", len(params.UserIDs), len(params.Usernames)); err != nil {
		return nil, err
	}
	if err := requireSameLength(
		"profileId, authorizationAddress, and accessLevel",
		len(params.ProfileIDs),
		len(params.Addresses),
		len(params.AccessLevels),
	); err != nil {
		return nil, err
	}
	if len(params.UserIDs)+len(params.ProfileIDs) == 0 {
		return nil, ptb.Invalidf("batch combo needs at least one profile or authorization")
	}

	batch := ptb.New()
	appendNew(batch, contract, params.UserIDs, params.Usernames)
	if err := appendAuthorize(batch, contract, params.ProfileIDs, params.Addresses, params.AccessLevels); err != nil {
		return nil, err
	}
	return batch, nil
}

// BuildBurnBatch destroys each listed profile.
func BuildBurnBatch(contract shared.Contract, profileIDs []string) (*ptb.Batch, error) {
	if err := contract.Validate(); err != nil {
		return nil, ptb.Invalidf("%v", err)
	}
	if len(profileIDs) == 0 {
		return nil, ptb.Invalidf("at least one profile ID is required")
	}
	batch := ptb.New()
	for _, profileID := range profileIDs {
		if err := requireID("profile ID", profileID); err != nil {
			return nil, err
		}
		batch.MoveCall(target(contract, "burn"), nil, ptb.Object(contract.AdminCap), ptb.Object(profileID))
	}
	return batch, nil
}

// BuildBuyBatch moves a Master to the buyer's profile against a receipt.
func BuildBuyBatch(contract shared.Contract, params BuyParams) (*ptb.Batch, error) {
	if strings.TrimSpace(contract.PackageID) == "" {
		return nil, ptb.Invalidf("package ID is required")
	}
	if err := requireIDs(
		requiredID{"seller profile ID", params.SellerProfileID},
		requiredID{"master ID", params.MasterID},
		requiredID{"buyer profile ID", params.BuyerProfileID},
		requiredID{"receipt ID", params.ReceiptID},
		requiredID{"master kind", params.MasterKind},
	); err != nil {
		return nil, err
	}

	batch := ptb.New()
	batch.MoveCall(
		target(contract, "buy"),
		[]string{params.MasterKind},
		ptb.Object(params.SellerProfileID),
		ptb.Object(params.MasterID),
		ptb.Object(params.BuyerProfileID),
		ptb.Object(params.ReceiptID),
	)
	return batch, nil
}

// BuildReceiveMasterBatch pulls a Master sent to a profile out with the admin
// cap and transfers it to params.Recipient.
func BuildReceiveMasterBatch(contract shared.Contract, params ReceiveParams) (*ptb.Batch, error) {
	if err := contract.Validate(); err != nil {
		return nil, ptb.Invalidf("%v", err)
	}
	if err := requireIDs(
		requiredID{"profile ID", params.ProfileID},
		requiredID{"master ID", params.MasterID},
		requiredID{"master kind", params.MasterKind},
		requiredID{"recipient", params.Recipient},
	); err != nil {
		return nil, err
	}

	batch := ptb.New()
	master := batch.MoveCall(
		target(contract, "admin_receive_master"),
		[]string{params.MasterKind},
		ptb.Object(contract.AdminCap),
		ptb.Object(params.ProfileID),
		ptb.Receiving(params.MasterID),
	)
	batch.TransferObjects([]ptb.Argument{master}, ptb.Address(params.Recipient))
	return batch, nil
}
