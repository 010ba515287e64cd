package ptb

import (
	"encoding/json"
	"strings"
)

// Argument is one input to a step. The concrete types are [ObjectArg],
// [PureArg], [ResultArg], [NestedResultArg] and [GasCoinArg].
type Argument interface {
	argument()
}

// ObjectArg references an on-chain object by id. The executor resolves its
// version and ownership at submission time.
type ObjectArg struct {
	ID        string
	Receiving bool
	ReadOnly  bool
}

// PureArg is a declared value with an explicit serialisation type.
type PureArg struct {
	Type  string
	Value any
}

// ResultArg is the whole output of an earlier step.
type ResultArg struct {
	Step int
}

// NestedResultArg is one output of an earlier step that returns a tuple.
type NestedResultArg struct {
	Step  int
	Index int
}

// GasCoinArg is the coin paying for the transaction.
type GasCoinArg struct{}

func (ObjectArg) argument()       {}
func (PureArg) argument()         {}
func (ResultArg) argument()       {}
func (NestedResultArg) argument() {}
func (GasCoinArg) argument()      {}

// Object references a mutable (or owned) object.
func Object(id string) ObjectArg {
	return ObjectArg{ID: strings.TrimSpace(id)}
}

// ReadOnlyObject references a shared object used by immutable reference.
func ReadOnlyObject(id string) ObjectArg {
	return ObjectArg{ID: strings.TrimSpace(id), ReadOnly: true}
}

// Receiving references an object sent to another object's address.
func Receiving(id string) ObjectArg {
	return ObjectArg{ID: strings.TrimSpace(id), Receiving: true}
}

// Result references the output of step.
func Result(step int) ResultArg {
	return ResultArg{Step: step}
}

// Nested references output index of step.
func Nested(step, index int) NestedResultArg {
	return NestedResultArg{Step: step, Index: index}
}

// Nested selects one element of a tuple-returning step.
func (r ResultArg) Nested(index int) NestedResultArg {
	return NestedResultArg{Step: r.Step, Index: index}
}

// Gas references the gas coin.
func Gas() GasCoinArg {
	return GasCoinArg{}
}

func (a ObjectArg) MarshalJSON() ([]byte, error) {
	mode := "default"
	switch {
	case a.Receiving:
		mode = "receiving"
	case a.ReadOnly:
		mode = "readOnly"
	}
	return json.Marshal(struct {
		Kind     string `json:"kind"`
		ObjectID string `json:"objectId"`
		Mode     string `json:"mode"`
	}{"object", a.ID, mode})
}

func (a PureArg) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  string `json:"kind"`
		Type  string `json:"type"`
		Value any    `json:"value"`
	}{"pure", a.Type, a.Value})
}

func (a ResultArg) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string `json:"kind"`
		Step int    `json:"step"`
	}{"result", a.Step})
}

func (a NestedResultArg) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  string `json:"kind"`
		Step  int    `json:"step"`
		Index int    `json:"index"`
	}{"nestedResult", a.Step, a.Index})
}

func (a GasCoinArg) MarshalJSON() ([]byte, error) {
	return []byte(`{"kind":"gasCoin"}`), nil
}

// referencedStep returns the step an argument depends on, if any.
func referencedStep(argument Argument) (int, bool) {
	switch typed := argument.(type) {
	case ResultArg:
		return typed.Step, true
	case NestedResultArg:
		return typed.Step, true
	default:
		return 0, false
	}
}
