package ptb

import (
	"bytes"
	"errors"
	"math/big"
	"testing"
)

func TestPureEncode(t *testing.T) {
	cases := []struct {
		name     string
		arg      PureArg
		expected []byte
	}{
		{"bool", Bool(true), []byte{0x01}},
		{"u8", U8(200), []byte{0xc8}},
		{"u16", U16(500), []byte{0xf4, 0x01}},
		{"u32", U32(1), []byte{0x01, 0x00, 0x00, 0x00}},
		{"u64", U64(258), []byte{0x02, 0x01, 0, 0, 0, 0, 0, 0}},
		{"string", String("hi"), []byte{0x02, 'h', 'i'}},
		{"strings", Strings([]string{"a", "bc"}), []byte{0x02, 0x01, 'a', 0x02, 'b', 'c'}},
		{"bytes", Bytes([]byte{9, 8}), []byte{0x02, 0x09, 0x08}},
		{"none", OptionID(""), []byte{0x00}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := tc.arg.Encode()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(encoded, tc.expected) {
				t.Fatalf("expected %x, got %x", tc.expected, encoded)
			}
		})
	}
}

func TestPureEncodeAddresses(t *testing.T) {
	encoded, err := Address("0x2").Encode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(encoded) != 32 || encoded[31] != 0x02 {
		t.Fatalf("unexpected address encoding: %x", encoded)
	}

	some, err := OptionID("0x3").Encode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(some) != 33 || some[0] != 0x01 || some[32] != 0x03 {
		t.Fatalf("unexpected option encoding: %x", some)
	}

	vector, err := Addresses([]string{"0x1", "0x2"}).Encode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vector) != 65 || vector[0] != 0x02 {
		t.Fatalf("unexpected vector encoding: %x", vector)
	}

	if _, err := Address("0xnothex").Encode(); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestPureEncodeBigIntegers(t *testing.T) {
	encoded, err := U128(big.NewInt(1)).Encode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(encoded) != 16 || encoded[0] != 0x01 {
		t.Fatalf("unexpected u128 encoding: %x", encoded)
	}
	if _, err := U256(big.NewInt(-5)).Encode(); err == nil {
		t.Fatal("expected negative u256 error")
	}
}

func TestPureEncodeUnsupportedType(t *testing.T) {
	if _, err := (PureArg{Type: "f64", Value: 1.0}).Encode(); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}
