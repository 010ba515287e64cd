package bcs

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	gobcs "github.com/fardream/go-bcs/bcs"
)

// AddressLength is the byte width of object ids and account addresses.
const AddressLength = 32

type Address [AddressLength]byte

// ParseAddress accepts short or full 0x-prefixed hex and left-pads it to 32 bytes.
func ParseAddress(raw string) (Address, error) {
	var address Address
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(strings.TrimPrefix(trimmed, "0x"), "0X")
	if trimmed == "" {
		return address, fmt.Errorf("address is empty")
	}
	if len(trimmed) > AddressLength*2 {
		return address, fmt.Errorf("address %q is longer than %d bytes", raw, AddressLength)
	}
	if len(trimmed)%2 == 1 {
		trimmed = "0" + trimmed
	}
	decoded, err := hex.DecodeString(trimmed)
	if err != nil {
		return address, fmt.Errorf("address %q is not hex: %w", raw, err)
	}
	copy(address[AddressLength-len(decoded):], decoded)
	return address, nil
}

// NormalizeAddress returns the canonical 66-character form of raw.
func NormalizeAddress(raw string) (string, error) {
	address, err := ParseAddress(raw)
	if err != nil {
		return "", err
	}
	return address.String(), nil
}

func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// Encoder accumulates BCS output. The zero value is ready to use.
type Encoder struct {
	buffer bytes.Buffer
}

func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) Bytes() []byte {
	return append([]byte(nil), e.buffer.Bytes()...)
}

func (e *Encoder) Len() int {
	return e.buffer.Len()
}

func (e *Encoder) Bool(value bool) {
	if value {
		e.buffer.WriteByte(1)
		return
	}
	e.buffer.WriteByte(0)
}

func (e *Encoder) U8(value uint8) {
	e.buffer.WriteByte(value)
}

func (e *Encoder) U16(value uint16) {
	var scratch [2]byte
	binary.LittleEndian.PutUint16(scratch[:], value)
	e.buffer.Write(scratch[:])
}

func (e *Encoder) U32(value uint32) {
	var scratch [4]byte
	binary.LittleEndian.PutUint32(scratch[:], value)
	e.buffer.Write(scratch[:])
}

func (e *Encoder) U64(value uint64) {
	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], value)
	e.buffer.Write(scratch[:])
}

// U128 writes a non-negative integer below 2^128.
func (e *Encoder) U128(value *big.Int) error {
	return e.bigUnsigned(value, 16)
}

// U256 writes a non-negative integer below 2^256.
func (e *Encoder) U256(value *big.Int) error {
	return e.bigUnsigned(value, 32)
}

func (e *Encoder) bigUnsigned(value *big.Int, width int) error {
	if value == nil || value.Sign() < 0 {
		return fmt.Errorf("u%d value must be non-negative", width*8)
	}
	if value.BitLen() > width*8 {
		return fmt.Errorf("value overflows u%d", width*8)
	}
	bigEndian := value.FillBytes(make([]byte, width))
	for left, right := 0, width-1; left < right; left, right = left+1, right-1 {
		bigEndian[left], bigEndian[right] = bigEndian[right], bigEndian[left]
	}
	e.buffer.Write(bigEndian)
	return nil
}

// ULEB128 writes an unsigned LEB128 integer, the BCS length and variant prefix.
func (e *Encoder) ULEB128(value uint64) {
	e.buffer.Write(gobcs.ULEB128Encode(value))
}

// Length writes a sequence length.
func (e *Encoder) Length(length int) {
	e.ULEB128(uint64(length))
}

// Variant writes an enum discriminant.
func (e *Encoder) Variant(index int) {
	e.ULEB128(uint64(index))
}

// Fixed writes bytes without a length prefix.
func (e *Encoder) Fixed(value []byte) {
	e.buffer.Write(value)
}

// ByteVector writes a length-prefixed vector<u8>.
func (e *Encoder) ByteVector(value []byte) {
	e.Length(len(value))
	e.buffer.Write(value)
}

func (e *Encoder) String(value string) {
	e.ByteVector([]byte(value))
}

func (e *Encoder) Address(value Address) {
	e.buffer.Write(value[:])
}

// OptionNone writes the absent variant of Option<T>.
func (e *Encoder) OptionNone() {
	e.buffer.WriteByte(0)
}

// OptionSome writes the present tag; the caller encodes the value next.
func (e *Encoder) OptionSome() {
	e.buffer.WriteByte(1)
}

// DecodeULEB128 reads a ULEB128 value and returns it with the bytes consumed.
func DecodeULEB128(data []byte) (uint64, int, error) {
	value, consumed, err := gobcs.ULEB128Decode[uint64](bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("uleb128: %w", err)
	}
	return value, consumed, nil
}
