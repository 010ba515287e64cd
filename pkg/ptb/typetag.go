package ptb

import (
	"fmt"
	"strings"

	"github.com/recrd-io/recrd-sdk-go/pkg/bcs"
)

// TypeTag is a parsed Move type used as a type argument.
type TypeTag struct {
	Primitive string
	Vector    *TypeTag
	Struct    *StructTag
}

type StructTag struct {
	Address    bcs.Address
	Module     string
	Name       string
	TypeParams []TypeTag
}

// type tag variant order of the on-chain enum
var primitiveVariants = map[string]int{
	"bool":    0,
	"u8":      1,
	"u64":     2,
	"u128":    3,
	"address": 4,
	"signer":  5,
	"u16":     8,
	"u32":     9,
	"u256":    10,
}

const (
	vectorVariant = 6
	structVariant = 7
)

// ParseTypeTag parses strings such as "u64", "vector<u8>" or
// "0x2::display::Display<0xabc::master::Master<0xabc::master::Video>>".
func ParseTypeTag(raw string) (TypeTag, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return TypeTag{}, Invalidf("type tag is empty")
	}
	if _, ok := primitiveVariants[trimmed]; ok {
		return TypeTag{Primitive: trimmed}, nil
	}
	if strings.HasPrefix(trimmed, "vector<") && strings.HasSuffix(trimmed, ">") {
		inner, err := ParseTypeTag(trimmed[len("vector<") : len(trimmed)-1])
		if err != nil {
			return TypeTag{}, err
		}
		return TypeTag{Vector: &inner}, nil
	}

	head := trimmed
	var params []string
	if open := strings.Index(trimmed, "<"); open >= 0 {
		if !strings.HasSuffix(trimmed, ">") {
			return TypeTag{}, Invalidf("type tag %q has unbalanced brackets", raw)
		}
		head = trimmed[:open]
		split, err := splitTopLevel(trimmed[open+1 : len(trimmed)-1])
		if err != nil {
			return TypeTag{}, Invalidf("type tag %q: %v", raw, err)
		}
		params = split
	}

	parts := strings.Split(head, "::")
	if len(parts) != 3 {
		return TypeTag{}, Invalidf("type tag %q must be address::module::Name", raw)
	}
	address, err := bcs.ParseAddress(parts[0])
	if err != nil {
		return TypeTag{}, Invalidf("type tag %q: %v", raw, err)
	}
	if !identifierPattern.MatchString(parts[1]) || !identifierPattern.MatchString(parts[2]) {
		return TypeTag{}, Invalidf("type tag %q has invalid identifiers", raw)
	}

	tag := &StructTag{Address: address, Module: parts[1], Name: parts[2]}
	for _, param := range params {
		parsed, err := ParseTypeTag(param)
		if err != nil {
			return TypeTag{}, err
		}
		tag.TypeParams = append(tag.TypeParams, parsed)
	}
	return TypeTag{Struct: tag}, nil
}

func splitTopLevel(raw string) ([]string, error) {
	parts := make([]string, 0, 1)
	depth := 0
	start := 0
	for index, character := range raw {
		switch character {
		case '<':
			depth++
		case '>':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced brackets")
			}
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(raw[start:index]))
				start = index + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced brackets")
	}
	last := strings.TrimSpace(raw[start:])
	if last == "" {
		return nil, fmt.Errorf("empty type parameter")
	}
	return append(parts, last), nil
}

// Encode writes the tag as its on-chain enum representation.
func (t TypeTag) Encode(encoder *bcs.Encoder) {
	switch {
	case t.Vector != nil:
		encoder.Variant(vectorVariant)
		t.Vector.Encode(encoder)
	case t.Struct != nil:
		encoder.Variant(structVariant)
		encoder.Address(t.Struct.Address)
		encoder.String(t.Struct.Module)
		encoder.String(t.Struct.Name)
		encoder.Length(len(t.Struct.TypeParams))
		for _, param := range t.Struct.TypeParams {
			param.Encode(encoder)
		}
	default:
		encoder.Variant(primitiveVariants[t.Primitive])
	}
}

func (t TypeTag) String() string {
	switch {
	case t.Vector != nil:
		return fmt.Sprintf("vector<%s>", t.Vector.String())
	case t.Struct != nil:
		base := fmt.Sprintf("%s::%s::%s", t.Struct.Address, t.Struct.Module, t.Struct.Name)
		if len(t.Struct.TypeParams) == 0 {
			return base
		}
		params := make([]string, 0, len(t.Struct.TypeParams))
		for _, param := range t.Struct.TypeParams {
			params = append(params, param.String())
		}
		return fmt.Sprintf("%s<%s>", base, strings.Join(params, ", "))
	default:
		return t.Primitive
	}
}
