package bcs

import (
	"bytes"
	"math/big"
	"testing"
)

func TestULEB128(t *testing.T) {
	cases := []struct {
		value    uint64
		expected []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{300, []byte{0xac, 0x02}},
		{16384, []byte{0x80, 0x80, 0x01}},
	}

	for _, tc := range cases {
		encoder := NewEncoder()
		encoder.ULEB128(tc.value)
		if !bytes.Equal(encoder.Bytes(), tc.expected) {
			t.Fatalf("uleb128(%d): expected %x, got %x", tc.value, tc.expected, encoder.Bytes())
		}
		decoded, consumed, err := DecodeULEB128(encoder.Bytes())
		if err != nil {
			t.Fatalf("decode %d: %v", tc.value, err)
		}
		if decoded != tc.value || consumed != len(tc.expected) {
			t.Fatalf("decode %d: got %d (%d bytes)", tc.value, decoded, consumed)
		}
	}
}

func TestDecodeULEB128Truncated(t *testing.T) {
	if _, _, err := DecodeULEB128([]byte{0x80}); err == nil {
		t.Fatal("expected truncation error")
	}
}

func TestFixedWidthIntegers(t *testing.T) {
	encoder := NewEncoder()
	encoder.U8(1)
	encoder.U16(0x0102)
	encoder.U32(0x01020304)
	encoder.U64(0x0102030405060708)
	encoder.Bool(true)
	encoder.Bool(false)

	expected := []byte{
		0x01,
		0x02, 0x01,
		0x04, 0x03, 0x02, 0x01,
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
		0x01, 0x00,
	}
	if !bytes.Equal(encoder.Bytes(), expected) {
		t.Fatalf("expected %x, got %x", expected, encoder.Bytes())
	}
}

func TestU128AndU256(t *testing.T) {
	encoder := NewEncoder()
	if err := encoder.U128(big.NewInt(0x0102)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	output := encoder.Bytes()
	if len(output) != 16 || output[0] != 0x02 || output[1] != 0x01 {
		t.Fatalf("unexpected u128 encoding: %x", output)
	}

	overflow := new(big.Int).Lsh(big.NewInt(1), 128)
	if err := NewEncoder().U128(overflow); err == nil {
		t.Fatal("expected overflow error")
	}
	if err := NewEncoder().U256(overflow); err != nil {
		t.Fatalf("unexpected u256 error: %v", err)
	}
	if err := NewEncoder().U256(big.NewInt(-1)); err == nil {
		t.Fatal("expected error for negative value")
	}
}

func TestStringAndVectors(t *testing.T) {
	encoder := NewEncoder()
	encoder.String("abc")
	encoder.ByteVector(nil)
	encoder.OptionNone()
	encoder.OptionSome()
	encoder.U8(9)

	expected := []byte{0x03, 'a', 'b', 'c', 0x00, 0x00, 0x01, 0x09}
	if !bytes.Equal(encoder.Bytes(), expected) {
		t.Fatalf("expected %x, got %x", expected, encoder.Bytes())
	}
}

func TestParseAddress(t *testing.T) {
	address, err := ParseAddress("0x2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if address.String() != "0x0000000000000000000000000000000000000000000000000000000000000002" {
		t.Fatalf("unexpected address: %s", address)
	}

	normalized, err := NormalizeAddress("0xABC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if normalized[len(normalized)-3:] != "abc" {
		t.Fatalf("expected lower-case hex, got %s", normalized)
	}

	for _, invalid := range []string{"", "0x", "0xzz", "0x" + string(bytes.Repeat([]byte("1"), 65))} {
		if _, err := ParseAddress(invalid); err == nil {
			t.Fatalf("expected error for %q", invalid)
		}
	}
}
