package ptb

import (
	"encoding/json"
	"strings"
)

// MaxSteps is the largest number of commands one programmable transaction may hold.
const MaxSteps = 1024

// Step is one command of a batch: [MoveCall] or [TransferObjects].
type Step interface {
	step()
	arguments() []Argument
}

// MoveCall invokes a contract entry point.
type MoveCall struct {
	Target        Target
	TypeArguments []string
	Arguments     []Argument
}

// TransferObjects sends the listed values to a recipient address.
type TransferObjects struct {
	Objects   []Argument
	Recipient Argument
}

func (MoveCall) step()        {}
func (TransferObjects) step() {}

func (c MoveCall) arguments() []Argument {
	return c.Arguments
}

func (c TransferObjects) arguments() []Argument {
	return append(append([]Argument{}, c.Objects...), c.Recipient)
}

func (c MoveCall) MarshalJSON() ([]byte, error) {
	typeArguments := c.TypeArguments
	if typeArguments == nil {
		typeArguments = []string{}
	}
	arguments := c.Arguments
	if arguments == nil {
		arguments = []Argument{}
	}
	return json.Marshal(struct {
		Kind          string     `json:"kind"`
		Target        string     `json:"target"`
		TypeArguments []string   `json:"typeArguments"`
		Arguments     []Argument `json:"arguments"`
	}{"moveCall", c.Target.String(), typeArguments, arguments})
}

func (c TransferObjects) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind      string     `json:"kind"`
		Objects   []Argument `json:"objects"`
		Recipient Argument   `json:"recipient"`
	}{"transferObjects", c.Objects, c.Recipient})
}

// Batch is an ordered list of steps submitted atomically. Steps are never
// reordered: later steps address earlier outputs by position.
type Batch struct {
	Steps     []Step `json:"steps"`
	GasBudget uint64 `json:"gasBudget,omitempty"`
}

func New() *Batch {
	return &Batch{}
}

// MoveCall appends a call and returns a reference to its result.
func (b *Batch) MoveCall(target Target, typeArguments []string, arguments ...Argument) ResultArg {
	b.Steps = append(b.Steps, MoveCall{
		Target:        target,
		TypeArguments: append([]string(nil), typeArguments...),
		Arguments:     arguments,
	})
	return Result(len(b.Steps) - 1)
}

// TransferObjects appends a transfer of objects to recipient.
func (b *Batch) TransferObjects(objects []Argument, recipient Argument) {
	b.Steps = append(b.Steps, TransferObjects{
		Objects:   append([]Argument(nil), objects...),
		Recipient: recipient,
	})
}

func (b *Batch) Len() int {
	return len(b.Steps)
}

// Validate checks every step is well formed and that step references only
// point to earlier steps.
func (b *Batch) Validate() error {
	if b == nil || len(b.Steps) == 0 {
		return invalidBatchf("batch has no steps")
	}
	if len(b.Steps) > MaxSteps {
		return invalidBatchf("batch has %d steps, limit is %d", len(b.Steps), MaxSteps)
	}

	for index, current := range b.Steps {
		switch typed := current.(type) {
		case MoveCall:
			if err := typed.Target.Validate(); err != nil {
				return invalidBatchf("step %d: %v", index, err)
			}
			for _, typeArgument := range typed.TypeArguments {
				if _, err := ParseTypeTag(typeArgument); err != nil {
					return invalidBatchf("step %d: %v", index, err)
				}
			}
		case TransferObjects:
			if len(typed.Objects) == 0 {
				return invalidBatchf("step %d: transfer has no objects", index)
			}
			if typed.Recipient == nil {
				return invalidBatchf("step %d: transfer has no recipient", index)
			}
		default:
			return invalidBatchf("step %d: unsupported step %T", index, current)
		}

		for _, argument := range current.arguments() {
			if err := validateArgument(index, argument); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateArgument(index int, argument Argument) error {
	if argument == nil {
		return invalidBatchf("step %d: nil argument", index)
	}
	if referenced, ok := referencedStep(argument); ok {
		if referenced < 0 || referenced >= index {
			return invalidBatchf("step %d references step %d which is not an earlier step", index, referenced)
		}
	}
	if nested, ok := argument.(NestedResultArg); ok && nested.Index < 0 {
		return invalidBatchf("step %d: negative nested result index", index)
	}
	switch typed := argument.(type) {
	case ObjectArg:
		if strings.TrimSpace(typed.ID) == "" {
			return invalidBatchf("step %d: object argument has no id", index)
		}
	case PureArg:
		if _, err := typed.Encode(); err != nil {
			return invalidBatchf("step %d: %v", index, err)
		}
	}
	return nil
}

// ObjectIDs lists the distinct object ids referenced by the batch in first-use order.
func (b *Batch) ObjectIDs() []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, current := range b.Steps {
		for _, argument := range current.arguments() {
			object, ok := argument.(ObjectArg)
			if !ok {
				continue
			}
			if _, exists := seen[object.ID]; exists {
				continue
			}
			seen[object.ID] = struct{}{}
			ids = append(ids, object.ID)
		}
	}
	return ids
}

// Targets lists the call targets in step order, for logs and assertions.
func (b *Batch) Targets() []string {
	targets := make([]string, 0, len(b.Steps))
	for _, current := range b.Steps {
		switch typed := current.(type) {
		case MoveCall:
			targets = append(targets, typed.Target.String())
		case TransferObjects:
			targets = append(targets, "transferObjects")
		}
	}
	return targets
}
