package ptb

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/recrd-io/recrd-sdk-go/pkg/bcs"
)

// Pure value types understood by [PureArg.Encode].
const (
	TypeBool      = "bool"
	TypeU8        = "u8"
	TypeU16       = "u16"
	TypeU32       = "u32"
	TypeU64       = "u64"
	TypeU128      = "u128"
	TypeU256      = "u256"
	TypeAddress   = "address"
	TypeID        = "id"
	TypeString    = "string"
	TypeStrings   = "vector<string>"
	TypeAddresses = "vector<address>"
	TypeBytes     = "vector<u8>"
	TypeOptionID  = "option<id>"
)

func Bool(value bool) PureArg       { return PureArg{Type: TypeBool, Value: value} }
func U8(value uint8) PureArg        { return PureArg{Type: TypeU8, Value: value} }
func U16(value uint16) PureArg      { return PureArg{Type: TypeU16, Value: value} }
func U32(value uint32) PureArg      { return PureArg{Type: TypeU32, Value: value} }
func U64(value uint64) PureArg      { return PureArg{Type: TypeU64, Value: value} }
func U128(value *big.Int) PureArg   { return PureArg{Type: TypeU128, Value: value} }
func U256(value *big.Int) PureArg   { return PureArg{Type: TypeU256, Value: value} }
func String(value string) PureArg   { return PureArg{Type: TypeString, Value: value} }
func Bytes(value []byte) PureArg    { return PureArg{Type: TypeBytes, Value: value} }
func Strings(value []string) PureArg {
	return PureArg{Type: TypeStrings, Value: append([]string(nil), value...)}
}

// Address declares an account address argument.
func Address(value string) PureArg {
	return PureArg{Type: TypeAddress, Value: strings.TrimSpace(value)}
}

// ID declares an object id passed by value rather than as an object input.
func ID(value string) PureArg {
	return PureArg{Type: TypeID, Value: strings.TrimSpace(value)}
}

// Addresses declares a vector of addresses.
func Addresses(value []string) PureArg {
	return PureArg{Type: TypeAddresses, Value: append([]string(nil), value...)}
}

// OptionID declares Option<ID>; an empty string encodes None.
func OptionID(value string) PureArg {
	return PureArg{Type: TypeOptionID, Value: strings.TrimSpace(value)}
}

// Encode serialises the value as BCS bytes for a pure transaction input.
func (a PureArg) Encode() ([]byte, error) {
	encoder := bcs.NewEncoder()
	if err := a.encodeInto(encoder); err != nil {
		return nil, err
	}
	return encoder.Bytes(), nil
}

func (a PureArg) encodeInto(encoder *bcs.Encoder) error {
	switch a.Type {
	case TypeBool:
		value, ok := a.Value.(bool)
		if !ok {
			return a.mismatch()
		}
		encoder.Bool(value)
	case TypeU8:
		value, ok := a.Value.(uint8)
		if !ok {
			return a.mismatch()
		}
		encoder.U8(value)
	case TypeU16:
		value, ok := a.Value.(uint16)
		if !ok {
			return a.mismatch()
		}
		encoder.U16(value)
	case TypeU32:
		value, ok := a.Value.(uint32)
		if !ok {
			return a.mismatch()
		}
		encoder.U32(value)
	case TypeU64:
		value, ok := a.Value.(uint64)
		if !ok {
			return a.mismatch()
		}
		encoder.U64(value)
	case TypeU128, TypeU256:
		value, ok := a.Value.(*big.Int)
		if !ok {
			return a.mismatch()
		}
		if a.Type == TypeU128 {
			return encoder.U128(value)
		}
		return encoder.U256(value)
	case TypeAddress, TypeID:
		value, ok := a.Value.(string)
		if !ok {
			return a.mismatch()
		}
		address, err := bcs.ParseAddress(value)
		if err != nil {
			return Invalidf("%s argument: %v", a.Type, err)
		}
		encoder.Address(address)
	case TypeString:
		value, ok := a.Value.(string)
		if !ok {
			return a.mismatch()
		}
		encoder.String(value)
	case TypeStrings:
		values, ok := a.Value.([]string)
		if !ok {
			return a.mismatch()
		}
		encoder.Length(len(values))
		for _, value := range values {
			encoder.String(value)
		}
	case TypeAddresses:
		values, ok := a.Value.([]string)
		if !ok {
			return a.mismatch()
		}
		encoder.Length(len(values))
		for _, value := range values {
			address, err := bcs.ParseAddress(value)
			if err != nil {
				return Invalidf("address vector element: %v", err)
			}
			encoder.Address(address)
		}
	case TypeBytes:
		value, ok := a.Value.([]byte)
		if !ok {
			return a.mismatch()
		}
		encoder.ByteVector(value)
	case TypeOptionID:
		value, ok := a.Value.(string)
		if !ok {
			return a.mismatch()
		}
		if value == "" {
			encoder.OptionNone()
			return nil
		}
		address, err := bcs.ParseAddress(value)
		if err != nil {
			return Invalidf("option<id> argument: %v", err)
		}
		encoder.OptionSome()
		encoder.Address(address)
	default:
		return Invalidf("unsupported pure type %q", a.Type)
	}
	return nil
}

func (a PureArg) mismatch() error {
	return Invalidf("pure %s argument holds %T", a.Type, a.Value)
}

// Describe renders the value for log lines.
func (a PureArg) Describe() string {
	return fmt.Sprintf("%s(%v)", a.Type, a.Value)
}
