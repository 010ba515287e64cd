// Package display edits the Display objects that tell wallets and explorers
// how to render Masters and Metadata.
package display

import (
	"strings"

	"github.com/recrd-io/recrd-sdk-go/pkg/master"
	"github.com/recrd-io/recrd-sdk-go/pkg/ptb"
	"github.com/recrd-io/recrd-sdk-go/pkg/shared"
)

const module = "display"

// OpKind is one of the framework display entry points.
type OpKind string

const (
	OpAdd           OpKind = "add"
	OpRemove        OpKind = "remove"
	OpEdit          OpKind = "edit"
	OpUpdateVersion OpKind = "update_version"
)

// Op is a single edit of the Display<Type> object DisplayID.
type Op struct {
	Kind      OpKind `json:"kind" yaml:"kind"`
	DisplayID string `json:"displayId" yaml:"display_id"`
	Type      string `json:"type" yaml:"type"`
	Field     string `json:"field,omitempty" yaml:"field,omitempty"`
	Value     string `json:"value,omitempty" yaml:"value,omitempty"`
}

func Add(displayID, displayed, field, value string) Op {
	return Op{Kind: OpAdd, DisplayID: displayID, Type: displayed, Field: field, Value: value}
}

func Remove(displayID, displayed, field string) Op {
	return Op{Kind: OpRemove, DisplayID: displayID, Type: displayed, Field: field}
}

func Edit(displayID, displayed, field, value string) Op {
	return Op{Kind: OpEdit, DisplayID: displayID, Type: displayed, Field: field, Value: value}
}

func UpdateVersion(displayID, displayed string) Op {
	return Op{Kind: OpUpdateVersion, DisplayID: displayID, Type: displayed}
}

func (o Op) validate(index int) error {
	if strings.TrimSpace(o.DisplayID) == "" {
		return ptb.Invalidf("display op %d: display ID is required", index)
	}
	if _, err := ptb.ParseTypeTag(o.Type); err != nil {
		return ptb.Invalidf("display op %d: %v", index, err)
	}
	switch o.Kind {
	case OpAdd, OpEdit, OpRemove:
		if o.Field == "" {
			return ptb.Invalidf("display op %d: %s needs a field name", index, o.Kind)
		}
	case OpUpdateVersion:
	default:
		return ptb.Invalidf("display op %d: unknown kind %q", index, o.Kind)
	}
	return nil
}

func (o Op) arguments() []ptb.Argument {
	display := ptb.Object(o.DisplayID)
	switch o.Kind {
	case OpAdd, OpEdit:
		return []ptb.Argument{display, ptb.String(o.Field), ptb.String(o.Value)}
	case OpRemove:
		return []ptb.Argument{display, ptb.String(o.Field)}
	default:
		return []ptb.Argument{display}
	}
}

// BuildUpdateBatch turns ops into framework calls, keeping their order.
func BuildUpdateBatch(ops []Op) (*ptb.Batch, error) {
	if len(ops) == 0 {
		return nil, ptb.Invalidf("at least one display op is required")
	}
	batch := ptb.New()
	for index, op := range ops {
		if err := op.validate(index); err != nil {
			return nil, err
		}
		batch.MoveCall(
			ptb.NewTarget(ptb.SuiFramework, module, string(op.Kind)),
			[]string{op.Type},
			op.arguments()...,
		)
	}
	return batch, nil
}

// Field is one key/value template of a Display.
type Field struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// BuildNewBatch creates a Display<displayed> from the publisher with the
// given fields, publishes its first version and sends it to recipient.
func BuildNewBatch(contract shared.Contract, displayed string, fields []Field, recipient string) (*ptb.Batch, error) {
	if strings.TrimSpace(contract.Publisher) == "" {
		return nil, ptb.Invalidf("publisher is required")
	}
	if _, err := ptb.ParseTypeTag(displayed); err != nil {
		return nil, err
	}
	if strings.TrimSpace(recipient) == "" {
		return nil, ptb.Invalidf("recipient is required")
	}

	names := make([]string, 0, len(fields))
	values := make([]string, 0, len(fields))
	for _, field := range fields {
		if field.Name == "" {
			return nil, ptb.Invalidf("display field names must not be empty")
		}
		names = append(names, field.Name)
		values = append(values, field.Value)
	}

	batch := ptb.New()
	display := batch.MoveCall(
		ptb.NewTarget(ptb.SuiFramework, module, "new_with_fields"),
		[]string{displayed},
		ptb.Object(contract.Publisher),
		ptb.Strings(names),
		ptb.Strings(values),
	)
	batch.MoveCall(ptb.NewTarget(ptb.SuiFramework, module, string(OpUpdateVersion)), []string{displayed}, display)
	batch.TransferObjects([]ptb.Argument{display}, ptb.Address(recipient))
	return batch, nil
}

// Types are the four displayed types of a deployment.
type Types struct {
	MasterSound   string
	MasterVideo   string
	MetadataSound string
	MetadataVideo string
}

func StandardTypes(contract shared.Contract) Types {
	return Types{
		MasterSound:   master.MasterType(contract, master.KindSound),
		MasterVideo:   master.MasterType(contract, master.KindVideo),
		MetadataSound: master.MetadataType(contract, master.KindSound),
		MetadataVideo: master.MetadataType(contract, master.KindVideo),
	}
}

// List returns the types in publish order.
func (t Types) List() []string {
	return []string{t.MasterSound, t.MasterVideo, t.MetadataSound, t.MetadataVideo}
}

const (
	ProjectURL = "https://www.recrd.com/"
	Creator    = "RECRD"
)

// StandardUpdates renames the legacy "Name"/"Title" and "Image URL" fields
// to the wallet standard names, adds project_url and creator, and bumps the
// version of all four displays. ids maps each displayed type to its Display
// object id.
func StandardUpdates(ids map[string]string, types Types) ([]Op, error) {
	for _, displayed := range types.List() {
		if ids[displayed] == "" {
			return nil, ptb.Invalidf("no display object for %s", displayed)
		}
	}

	renames := []struct {
		displayed string
		nameField string
	}{
		{types.MasterSound, "Name"},
		{types.MasterVideo, "Name"},
		{types.MetadataVideo, "Title"},
		{types.MetadataSound, "Title"},
	}

	ops := make([]Op, 0, 28)
	for _, rename := range renames {
		id := ids[rename.displayed]
		ops = append(ops,
			Remove(id, rename.displayed, rename.nameField),
			Add(id, rename.displayed, "name", "{title}"),
			Remove(id, rename.displayed, "Image URL"),
			Add(id, rename.displayed, "image_url", "{image_url}"),
			Add(id, rename.displayed, "project_url", ProjectURL),
			Add(id, rename.displayed, "creator", Creator),
		)
	}
	for _, displayed := range types.List() {
		ops = append(ops, UpdateVersion(ids[displayed], displayed))
	}
	return ops, nil
}
