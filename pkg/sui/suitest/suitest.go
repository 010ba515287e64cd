// Package suitest provides in-memory stand-ins for the executor and the
// object reader so clients can be tested without a node.
package suitest

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/recrd-io/recrd-sdk-go/pkg/keys"
	"github.com/recrd-io/recrd-sdk-go/pkg/ptb"
	"github.com/recrd-io/recrd-sdk-go/pkg/rpc"
	"github.com/recrd-io/recrd-sdk-go/pkg/sui"
)

var (
	_ sui.Executor     = (*Executor)(nil)
	_ sui.ObjectReader = (*Reader)(nil)
)

// Executor records submitted batches and replays canned responses in order.
// The last response is reused once the queue is exhausted.
type Executor struct {
	mu        sync.Mutex
	Batches   []*ptb.Batch
	Signers   []keys.Signer
	Responses []*rpc.TransactionBlockResponse
	Err       error
	// OnExecute runs before the response is returned, typically to update a
	// Reader with the state the transaction produced.
	OnExecute func(batch *ptb.Batch)
}

func (e *Executor) Execute(_ context.Context, batch *ptb.Batch, signer keys.Signer) (*rpc.TransactionBlockResponse, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := batch.Validate(); err != nil {
		return nil, err
	}
	e.Batches = append(e.Batches, batch)
	e.Signers = append(e.Signers, signer)
	if e.Err != nil {
		return nil, e.Err
	}
	if e.OnExecute != nil {
		e.OnExecute(batch)
	}

	index := len(e.Batches) - 1
	if len(e.Responses) == 0 {
		return Success(), nil
	}
	if index >= len(e.Responses) {
		index = len(e.Responses) - 1
	}
	return e.Responses[index], nil
}

// Last returns the most recently submitted batch, or nil.
func (e *Executor) Last() *ptb.Batch {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.Batches) == 0 {
		return nil
	}
	return e.Batches[len(e.Batches)-1]
}

// Reader serves objects, dynamic fields, owned objects and transaction
// blocks from maps.
type Reader struct {
	mu            sync.Mutex
	Objects       map[string]rpc.ObjectData
	DynamicFields map[string][]rpc.DynamicFieldInfo
	// Owned is keyed by owner address.
	Owned        map[string][]rpc.ObjectData
	Transactions map[string]rpc.TransactionBlockResponse
	Reads        int
}

func NewReader() *Reader {
	return &Reader{
		Objects:       map[string]rpc.ObjectData{},
		DynamicFields: map[string][]rpc.DynamicFieldInfo{},
		Owned:         map[string][]rpc.ObjectData{},
		Transactions:  map[string]rpc.TransactionBlockResponse{},
	}
}

// Put stores or replaces an object.
func (r *Reader) Put(data rpc.ObjectData) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Objects[data.ObjectID] = data
}

func (r *Reader) GetObject(_ context.Context, objectID string, _ rpc.ObjectDataOptions) (rpc.ObjectResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Reads++

	data, ok := r.Objects[objectID]
	if !ok {
		return rpc.ObjectResponse{Error: &rpc.ObjectError{Code: "notExists", ObjectID: objectID}}, nil
	}
	return rpc.ObjectResponse{Data: &data}, nil
}

func (r *Reader) GetOwnedObjects(_ context.Context, owner string, query rpc.OwnedObjectsQuery) ([]rpc.ObjectResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Reads++

	structType, _ := query.Filter["StructType"].(string)
	responses := make([]rpc.ObjectResponse, 0)
	for _, data := range r.Owned[owner] {
		if structType != "" && data.Type != structType {
			continue
		}
		copied := data
		responses = append(responses, rpc.ObjectResponse{Data: &copied})
	}
	return responses, nil
}

func (r *Reader) GetDynamicFields(_ context.Context, parentID string) ([]rpc.DynamicFieldInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Reads++
	return r.DynamicFields[parentID], nil
}

func (r *Reader) GetTransactionBlock(
	_ context.Context,
	digest string,
	_ rpc.TransactionBlockOptions,
) (rpc.TransactionBlockResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Reads++

	response, ok := r.Transactions[digest]
	if !ok {
		return rpc.TransactionBlockResponse{}, &rpc.Error{Code: -32602, Message: "transaction not found", Method: "sui_getTransactionBlock"}
	}
	return response, nil
}

// MoveObject builds object data carrying Move struct content.
func MoveObject(objectID, objectType string, fields map[string]any) rpc.ObjectData {
	return rpc.ObjectData{
		ObjectID: objectID,
		Version:  1,
		Digest:   "11111111111111111111111111111111",
		Type:     objectType,
		Content: &rpc.MoveContent{
			DataType: "moveObject",
			Type:     objectType,
			Fields:   fields,
		},
	}
}

// Success is a successful response carrying changes.
func Success(changes ...rpc.ObjectChange) *rpc.TransactionBlockResponse {
	return &rpc.TransactionBlockResponse{
		Digest: "digest",
		Effects: &rpc.Effects{
			Status:            rpc.ExecutionStatus{Status: "success"},
			TransactionDigest: "digest",
		},
		ObjectChanges: changes,
	}
}

// Failure is a failed response with the node's error text.
func Failure(message string) *rpc.TransactionBlockResponse {
	return &rpc.TransactionBlockResponse{
		Digest: "digest",
		Effects: &rpc.Effects{
			Status:            rpc.ExecutionStatus{Status: "failure", Error: message},
			TransactionDigest: "digest",
		},
	}
}

func Created(objectID, objectType string) rpc.ObjectChange {
	return rpc.ObjectChange{Type: rpc.ChangeCreated, ObjectID: objectID, ObjectType: objectType}
}

func Mutated(objectID, objectType string) rpc.ObjectChange {
	return rpc.ObjectChange{Type: rpc.ChangeMutated, ObjectID: objectID, ObjectType: objectType}
}

func Deleted(objectID, objectType string) rpc.ObjectChange {
	return rpc.ObjectChange{Type: rpc.ChangeDeleted, ObjectID: objectID, ObjectType: objectType}
}

// Signer returns a deterministic Ed25519 signer whose seed repeats fill.
func Signer(fill byte) keys.Signer {
	signer, err := keys.NewEd25519Signer(bytes.Repeat([]byte{fill}, 32))
	if err != nil {
		panic(fmt.Sprintf("suitest: %v", err))
	}
	return signer
}

// ID returns a 32-byte object id whose last byte is n.
func ID(n byte) string {
	return fmt.Sprintf("0x%064x", n)
}
