package sui

import (
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/recrd-io/recrd-sdk-go/pkg/bcs"
	"github.com/recrd-io/recrd-sdk-go/pkg/ptb"
	"github.com/recrd-io/recrd-sdk-go/pkg/rpc"
)

const (
	transactionDataV1       = 0
	programmableTransaction = 0
	expirationNone          = 0

	callArgPure   = 0
	callArgObject = 1

	objectArgOwned     = 0
	objectArgShared    = 1
	objectArgReceiving = 2

	commandMoveCall        = 0
	commandTransferObjects = 1

	argumentGasCoin      = 0
	argumentInput        = 1
	argumentResult       = 2
	argumentNestedResult = 3
)

// Input is one entry of the transaction input table.
type Input struct {
	Pure      []byte
	ObjectID  string
	Mutable   bool
	Receiving bool

	resolved             bool
	shared               bool
	initialSharedVersion uint64
	version              uint64
	digest               string
}

// IsObject reports whether the input refers to an on-chain object.
func (i Input) IsObject() bool {
	return i.ObjectID != ""
}

// Transaction is a compiled batch whose object inputs still need versions.
type Transaction struct {
	Inputs   []Input
	commands []byte
	objects  map[string]int
}

// GasData selects the coins and price paying for a transaction.
type GasData struct {
	Payment []rpc.ObjectRef
	Owner   string
	Price   uint64
	Budget  uint64
}

// Compile validates the batch and encodes its commands against an input table.
func Compile(batch *ptb.Batch) (*Transaction, error) {
	if err := batch.Validate(); err != nil {
		return nil, err
	}

	tx := &Transaction{objects: map[string]int{}}
	commands := bcs.NewEncoder()
	commands.Length(len(batch.Steps))
	for index, step := range batch.Steps {
		switch typed := step.(type) {
		case ptb.MoveCall:
			if err := tx.encodeMoveCall(commands, typed); err != nil {
				return nil, fmt.Errorf("step %d: %w", index, err)
			}
		case ptb.TransferObjects:
			commands.Variant(commandTransferObjects)
			if err := tx.encodeArguments(commands, typed.Objects); err != nil {
				return nil, fmt.Errorf("step %d: %w", index, err)
			}
			if err := tx.encodeArgument(commands, typed.Recipient); err != nil {
				return nil, fmt.Errorf("step %d: %w", index, err)
			}
		}
	}
	tx.commands = commands.Bytes()
	return tx, nil
}

func (t *Transaction) encodeMoveCall(encoder *bcs.Encoder, call ptb.MoveCall) error {
	packageID, err := bcs.ParseAddress(call.Target.Package)
	if err != nil {
		return fmt.Errorf("target package: %w", err)
	}
	encoder.Variant(commandMoveCall)
	encoder.Address(packageID)
	encoder.String(call.Target.Module)
	encoder.String(call.Target.Function)
	encoder.Length(len(call.TypeArguments))
	for _, raw := range call.TypeArguments {
		tag, err := ptb.ParseTypeTag(raw)
		if err != nil {
			return err
		}
		tag.Encode(encoder)
	}
	return t.encodeArguments(encoder, call.Arguments)
}

func (t *Transaction) encodeArguments(encoder *bcs.Encoder, arguments []ptb.Argument) error {
	encoder.Length(len(arguments))
	for _, argument := range arguments {
		if err := t.encodeArgument(encoder, argument); err != nil {
			return err
		}
	}
	return nil
}

func (t *Transaction) encodeArgument(encoder *bcs.Encoder, argument ptb.Argument) error {
	switch typed := argument.(type) {
	case ptb.GasCoinArg:
		encoder.Variant(argumentGasCoin)
	case ptb.ResultArg:
		encoder.Variant(argumentResult)
		encoder.U16(uint16(typed.Step))
	case ptb.NestedResultArg:
		encoder.Variant(argumentNestedResult)
		encoder.U16(uint16(typed.Step))
		encoder.U16(uint16(typed.Index))
	case ptb.PureArg:
		value, err := typed.Encode()
		if err != nil {
			return err
		}
		encoder.Variant(argumentInput)
		encoder.U16(uint16(t.addInput(Input{Pure: value})))
	case ptb.ObjectArg:
		index, err := t.addObject(typed)
		if err != nil {
			return err
		}
		encoder.Variant(argumentInput)
		encoder.U16(uint16(index))
	default:
		return fmt.Errorf("unsupported argument %T", argument)
	}
	return nil
}

func (t *Transaction) addInput(input Input) int {
	t.Inputs = append(t.Inputs, input)
	return len(t.Inputs) - 1
}

// addObject assigns one input per object id; any mutable use makes the
// input mutable.
func (t *Transaction) addObject(argument ptb.ObjectArg) (int, error) {
	id, err := bcs.NormalizeAddress(argument.ID)
	if err != nil {
		return 0, fmt.Errorf("object %q: %w", argument.ID, err)
	}
	if index, ok := t.objects[id]; ok {
		existing := &t.Inputs[index]
		if existing.Receiving != argument.Receiving {
			return 0, fmt.Errorf("object %s is used both as a receiving and a regular input", id)
		}
		existing.Mutable = existing.Mutable || !argument.ReadOnly
		return index, nil
	}
	index := t.addInput(Input{ObjectID: id, Mutable: !argument.ReadOnly, Receiving: argument.Receiving})
	t.objects[id] = index
	return index, nil
}

// ObjectIDs lists the object inputs in input order.
func (t *Transaction) ObjectIDs() []string {
	ids := make([]string, 0, len(t.objects))
	for _, input := range t.Inputs {
		if input.IsObject() {
			ids = append(ids, input.ObjectID)
		}
	}
	return ids
}

// Resolve records the current version and ownership of an object input.
func (t *Transaction) Resolve(data rpc.ObjectData) error {
	id, err := bcs.NormalizeAddress(data.ObjectID)
	if err != nil {
		return err
	}
	index, ok := t.objects[id]
	if !ok {
		return fmt.Errorf("object %s is not an input of this transaction", id)
	}
	input := &t.Inputs[index]
	if data.Owner != nil && data.Owner.Kind == rpc.OwnerShared {
		if input.Receiving {
			return fmt.Errorf("shared object %s cannot be received", id)
		}
		input.shared = true
		input.initialSharedVersion = data.Owner.InitialSharedVersion
	}
	input.version = uint64(data.Version)
	input.digest = data.Digest
	input.resolved = true
	return nil
}

// Encode serialises TransactionData V1 for sender.
func (t *Transaction) Encode(sender string, gas GasData) ([]byte, error) {
	senderAddress, err := bcs.ParseAddress(sender)
	if err != nil {
		return nil, fmt.Errorf("sender: %w", err)
	}
	gasOwner := gas.Owner
	if gasOwner == "" {
		gasOwner = sender
	}
	ownerAddress, err := bcs.ParseAddress(gasOwner)
	if err != nil {
		return nil, fmt.Errorf("gas owner: %w", err)
	}

	encoder := bcs.NewEncoder()
	encoder.Variant(transactionDataV1)
	encoder.Variant(programmableTransaction)
	encoder.Length(len(t.Inputs))
	for index, input := range t.Inputs {
		if err := encodeInput(encoder, input); err != nil {
			return nil, fmt.Errorf("input %d: %w", index, err)
		}
	}
	encoder.Fixed(t.commands)
	encoder.Address(senderAddress)

	encoder.Length(len(gas.Payment))
	for _, coin := range gas.Payment {
		if err := encodeObjectRef(encoder, coin.ObjectID, uint64(coin.Version), coin.Digest); err != nil {
			return nil, fmt.Errorf("gas payment: %w", err)
		}
	}
	encoder.Address(ownerAddress)
	encoder.U64(gas.Price)
	encoder.U64(gas.Budget)
	encoder.Variant(expirationNone)
	return encoder.Bytes(), nil
}

func encodeInput(encoder *bcs.Encoder, input Input) error {
	if !input.IsObject() {
		encoder.Variant(callArgPure)
		encoder.ByteVector(input.Pure)
		return nil
	}
	if !input.resolved {
		return fmt.Errorf("object %s has not been resolved", input.ObjectID)
	}
	encoder.Variant(callArgObject)
	switch {
	case input.shared:
		id, err := bcs.ParseAddress(input.ObjectID)
		if err != nil {
			return err
		}
		encoder.Variant(objectArgShared)
		encoder.Address(id)
		encoder.U64(input.initialSharedVersion)
		encoder.Bool(input.Mutable)
		return nil
	case input.Receiving:
		encoder.Variant(objectArgReceiving)
	default:
		encoder.Variant(objectArgOwned)
	}
	return encodeObjectRef(encoder, input.ObjectID, input.version, input.digest)
}

func encodeObjectRef(encoder *bcs.Encoder, objectID string, version uint64, digest string) error {
	id, err := bcs.ParseAddress(objectID)
	if err != nil {
		return err
	}
	decoded, err := base58.Decode(digest)
	if err != nil {
		return fmt.Errorf("object %s digest: %w", objectID, err)
	}
	if len(decoded) != 32 {
		return fmt.Errorf("object %s digest is %d bytes", objectID, len(decoded))
	}
	encoder.Address(id)
	encoder.U64(version)
	encoder.ByteVector(decoded)
	return nil
}
