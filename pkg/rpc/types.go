package rpc

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Execute request types.
const (
	WaitForLocalExecution = "WaitForLocalExecution"
	WaitForEffectsCert    = "WaitForEffectsCert"
)

// Object change kinds.
const (
	ChangeCreated     = "created"
	ChangeMutated     = "mutated"
	ChangeDeleted     = "deleted"
	ChangeWrapped     = "wrapped"
	ChangeTransferred = "transferred"
	ChangePublished   = "published"
)

type ObjectDataOptions struct {
	ShowType                bool `json:"showType,omitempty"`
	ShowOwner               bool `json:"showOwner,omitempty"`
	ShowPreviousTransaction bool `json:"showPreviousTransaction,omitempty"`
	ShowDisplay             bool `json:"showDisplay,omitempty"`
	ShowContent             bool `json:"showContent,omitempty"`
	ShowBcs                 bool `json:"showBcs,omitempty"`
	ShowStorageRebate       bool `json:"showStorageRebate,omitempty"`
}

// FullObjectOptions requests everything the typed readers project from.
var FullObjectOptions = ObjectDataOptions{
	ShowType:    true,
	ShowOwner:   true,
	ShowContent: true,
	ShowDisplay: true,
}

type ObjectResponse struct {
	Data  *ObjectData  `json:"data,omitempty"`
	Error *ObjectError `json:"error,omitempty"`
}

type ObjectData struct {
	ObjectID            string          `json:"objectId"`
	Version             Uint64String    `json:"version"`
	Digest              string          `json:"digest"`
	Type                string          `json:"type,omitempty"`
	Owner               *Owner          `json:"owner,omitempty"`
	PreviousTransaction string          `json:"previousTransaction,omitempty"`
	Content             *MoveContent    `json:"content,omitempty"`
	Display             *DisplayContent `json:"display,omitempty"`
}

// Fields returns the Move struct fields of the object, or nil.
func (d *ObjectData) Fields() Fields {
	if d == nil || d.Content == nil {
		return nil
	}
	return d.Content.Fields
}

type MoveContent struct {
	DataType          string `json:"dataType"`
	Type              string `json:"type,omitempty"`
	HasPublicTransfer bool   `json:"hasPublicTransfer,omitempty"`
	Fields            Fields `json:"fields,omitempty"`
}

type DisplayContent struct {
	Data  map[string]string `json:"data,omitempty"`
	Error any               `json:"error,omitempty"`
}

// Owner kinds.
const (
	OwnerAddress   = "AddressOwner"
	OwnerObject    = "ObjectOwner"
	OwnerShared    = "Shared"
	OwnerImmutable = "Immutable"
)

// Owner is the ownership of an object. Address is set for address and object
// owners; InitialSharedVersion for shared objects.
type Owner struct {
	Kind                 string
	Address              string
	InitialSharedVersion uint64
}

func (o *Owner) UnmarshalJSON(data []byte) error {
	var literal string
	if err := json.Unmarshal(data, &literal); err == nil {
		o.Kind = literal
		return nil
	}

	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("owner: %w", err)
	}
	for kind, value := range tagged {
		o.Kind = kind
		switch kind {
		case OwnerAddress, OwnerObject:
			return json.Unmarshal(value, &o.Address)
		case OwnerShared:
			var shared struct {
				InitialSharedVersion Uint64String `json:"initial_shared_version"`
			}
			if err := json.Unmarshal(value, &shared); err != nil {
				return fmt.Errorf("shared owner: %w", err)
			}
			o.InitialSharedVersion = uint64(shared.InitialSharedVersion)
			return nil
		}
	}
	return nil
}

func (o Owner) MarshalJSON() ([]byte, error) {
	switch o.Kind {
	case OwnerAddress, OwnerObject:
		return json.Marshal(map[string]string{o.Kind: o.Address})
	case OwnerShared:
		return json.Marshal(map[string]any{o.Kind: map[string]uint64{"initial_shared_version": o.InitialSharedVersion}})
	default:
		return json.Marshal(o.Kind)
	}
}

// Uint64String accepts u64 values encoded either as JSON numbers or strings.
type Uint64String uint64

func (u *Uint64String) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		*u = 0
		return nil
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid u64 %q: %w", raw, err)
	}
	*u = Uint64String(value)
	return nil
}

func (u Uint64String) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatUint(uint64(u), 10))
}

type ObjectChange struct {
	Type            string       `json:"type"`
	Sender          string       `json:"sender,omitempty"`
	Owner           *Owner       `json:"owner,omitempty"`
	ObjectType      string       `json:"objectType,omitempty"`
	ObjectID        string       `json:"objectId,omitempty"`
	Version         Uint64String `json:"version,omitempty"`
	PreviousVersion Uint64String `json:"previousVersion,omitempty"`
	Digest          string       `json:"digest,omitempty"`
	PackageID       string       `json:"packageId,omitempty"`
	Modules         []string     `json:"modules,omitempty"`
}

type ExecutionStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type GasCostSummary struct {
	ComputationCost Uint64String `json:"computationCost"`
	StorageCost     Uint64String `json:"storageCost"`
	StorageRebate   Uint64String `json:"storageRebate"`
}

type OwnedObjectRef struct {
	Owner     *Owner    `json:"owner"`
	Reference ObjectRef `json:"reference"`
}

type ObjectRef struct {
	ObjectID string       `json:"objectId"`
	Version  Uint64String `json:"version"`
	Digest   string       `json:"digest"`
}

type Effects struct {
	Status            ExecutionStatus  `json:"status"`
	GasUsed           GasCostSummary   `json:"gasUsed"`
	TransactionDigest string           `json:"transactionDigest"`
	Created           []OwnedObjectRef `json:"created,omitempty"`
	Mutated           []OwnedObjectRef `json:"mutated,omitempty"`
	Deleted           []ObjectRef      `json:"deleted,omitempty"`
}

type TransactionBlockOptions struct {
	ShowInput          bool `json:"showInput,omitempty"`
	ShowRawInput       bool `json:"showRawInput,omitempty"`
	ShowEffects        bool `json:"showEffects,omitempty"`
	ShowEvents         bool `json:"showEvents,omitempty"`
	ShowObjectChanges  bool `json:"showObjectChanges,omitempty"`
	ShowBalanceChanges bool `json:"showBalanceChanges,omitempty"`
}

type TransactionBlockResponse struct {
	Digest                  string         `json:"digest"`
	Effects                 *Effects       `json:"effects,omitempty"`
	ObjectChanges           []ObjectChange `json:"objectChanges,omitempty"`
	Errors                  []string       `json:"errors,omitempty"`
	ConfirmedLocalExecution *bool          `json:"confirmedLocalExecution,omitempty"`
	TimestampMs             Uint64String   `json:"timestampMs,omitempty"`
	Checkpoint              Uint64String   `json:"checkpoint,omitempty"`
}

type DryRunResponse struct {
	Effects       Effects        `json:"effects"`
	ObjectChanges []ObjectChange `json:"objectChanges,omitempty"`
}

type Coin struct {
	CoinType     string       `json:"coinType"`
	CoinObjectID string       `json:"coinObjectId"`
	Version      Uint64String `json:"version"`
	Digest       string       `json:"digest"`
	Balance      Uint64String `json:"balance"`
}

type DynamicFieldName struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

type DynamicFieldInfo struct {
	Name       DynamicFieldName `json:"name"`
	BcsName    string           `json:"bcsName,omitempty"`
	Type       string           `json:"type"`
	ObjectType string           `json:"objectType"`
	ObjectID   string           `json:"objectId"`
	Version    Uint64String     `json:"version"`
	Digest     string           `json:"digest"`
}

// OwnedObjectsQuery filters and shapes suix_getOwnedObjects results.
type OwnedObjectsQuery struct {
	Filter  map[string]any     `json:"filter,omitempty"`
	Options *ObjectDataOptions `json:"options,omitempty"`
}

// StructTypeFilter matches owned objects of one Move struct type.
func StructTypeFilter(structType string) map[string]any {
	return map[string]any{"StructType": structType}
}

type page[T any] struct {
	Data        []T     `json:"data"`
	NextCursor  *string `json:"nextCursor"`
	HasNextPage bool    `json:"hasNextPage"`
}
