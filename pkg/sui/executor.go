package sui

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sort"

	"github.com/recrd-io/recrd-sdk-go/pkg/bcs"
	"github.com/recrd-io/recrd-sdk-go/pkg/keys"
	"github.com/recrd-io/recrd-sdk-go/pkg/ptb"
	"github.com/recrd-io/recrd-sdk-go/pkg/rpc"
	"github.com/rs/zerolog"
)

// DefaultGasBudget is used when a batch does not carry its own budget.
const DefaultGasBudget uint64 = 100_000_000

// maximum number of coins in one gas payment
const maxGasObjects = 256

// ErrNotSubmitted is returned by executors that describe a batch instead of
// sending it.
var ErrNotSubmitted = errors.New("batch was not submitted")

// Executor submits a batch signed by signer.
type Executor interface {
	Execute(ctx context.Context, batch *ptb.Batch, signer keys.Signer) (*rpc.TransactionBlockResponse, error)
}

// ObjectReader is the read side of the node used by the typed clients.
type ObjectReader interface {
	GetObject(ctx context.Context, objectID string, options rpc.ObjectDataOptions) (rpc.ObjectResponse, error)
	GetOwnedObjects(ctx context.Context, owner string, query rpc.OwnedObjectsQuery) ([]rpc.ObjectResponse, error)
	GetDynamicFields(ctx context.Context, parentID string) ([]rpc.DynamicFieldInfo, error)
	GetTransactionBlock(ctx context.Context, digest string, options rpc.TransactionBlockOptions) (rpc.TransactionBlockResponse, error)
}

// Node is the subset of the JSON-RPC client the executor submits through.
type Node interface {
	MultiGetObjects(ctx context.Context, objectIDs []string, options rpc.ObjectDataOptions) ([]rpc.ObjectResponse, error)
	GetReferenceGasPrice(ctx context.Context) (uint64, error)
	GetCoins(ctx context.Context, owner, coinType string) ([]rpc.Coin, error)
	ExecuteTransactionBlock(
		ctx context.Context,
		txBytes string,
		signatures []string,
		options rpc.TransactionBlockOptions,
	) (rpc.TransactionBlockResponse, error)
	DryRunTransactionBlock(ctx context.Context, txBytes string) (rpc.DryRunResponse, error)
}

var (
	_ Executor     = (*RPCExecutor)(nil)
	_ Executor     = (*PrintExecutor)(nil)
	_ ObjectReader = (*rpc.Client)(nil)
	_ Node         = (*rpc.Client)(nil)
)

type ExecutorConfig struct {
	Node             Node
	Logger           *zerolog.Logger
	DefaultGasBudget uint64
	// Simulate evaluates batches with a dry run instead of executing them.
	Simulate bool
}

// RPCExecutor signs and submits batches through a full node.
type RPCExecutor struct {
	node      Node
	logger    zerolog.Logger
	gasBudget uint64
	simulate  bool
}

// NewExecutor creates a new RPCExecutor.
func NewExecutor(config ExecutorConfig) (*RPCExecutor, error) {
	if config.Node == nil {
		return nil, fmt.Errorf("node is required")
	}
	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = *config.Logger
	}
	budget := config.DefaultGasBudget
	if budget == 0 {
		budget = DefaultGasBudget
	}
	return &RPCExecutor{
		node:      config.Node,
		logger:    logger,
		gasBudget: budget,
		simulate:  config.Simulate,
	}, nil
}

// Execute compiles, signs and submits batch, returning effects and object
// changes. A failed execution status is returned as part of the response.
func (e *RPCExecutor) Execute(
	ctx context.Context,
	batch *ptb.Batch,
	signer keys.Signer,
) (*rpc.TransactionBlockResponse, error) {
	if signer == nil {
		return nil, fmt.Errorf("signer is required")
	}
	txBytes, err := e.Prepare(ctx, batch, signer.Address())
	if err != nil {
		return nil, err
	}
	encoded := base64.StdEncoding.EncodeToString(txBytes)

	if e.simulate {
		dryRun, err := e.node.DryRunTransactionBlock(ctx, encoded)
		if err != nil {
			return nil, fmt.Errorf("dry run failed: %w", err)
		}
		e.logger.Info().
			Str("status", dryRun.Effects.Status.Status).
			Strs("targets", batch.Targets()).
			Msg("transaction simulated")
		effects := dryRun.Effects
		return &rpc.TransactionBlockResponse{
			Digest:        effects.TransactionDigest,
			Effects:       &effects,
			ObjectChanges: dryRun.ObjectChanges,
		}, nil
	}

	signature, err := signer.SignTransaction(txBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	response, err := e.node.ExecuteTransactionBlock(ctx, encoded, []string{signature}, rpc.TransactionBlockOptions{
		ShowEffects:       true,
		ShowObjectChanges: true,
	})
	if err != nil {
		return nil, fmt.Errorf("transaction execution failed: %w", err)
	}

	event := e.logger.Info().Str("digest", response.Digest).Strs("targets", batch.Targets())
	if response.Effects != nil {
		event = event.Str("status", response.Effects.Status.Status)
	}
	event.Msg("transaction executed")
	return &response, nil
}

// Prepare resolves inputs and gas for batch and returns TransactionData bytes.
func (e *RPCExecutor) Prepare(ctx context.Context, batch *ptb.Batch, sender string) ([]byte, error) {
	tx, err := Compile(batch)
	if err != nil {
		return nil, err
	}
	if err := e.resolveObjects(ctx, tx); err != nil {
		return nil, err
	}

	budget := batch.GasBudget
	if budget == 0 {
		budget = e.gasBudget
	}
	gas, err := e.selectGas(ctx, tx, sender, budget)
	if err != nil {
		return nil, err
	}
	return tx.Encode(sender, gas)
}

func (e *RPCExecutor) resolveObjects(ctx context.Context, tx *Transaction) error {
	ids := tx.ObjectIDs()
	if len(ids) == 0 {
		return nil
	}
	responses, err := e.node.MultiGetObjects(ctx, ids, rpc.ObjectDataOptions{ShowOwner: true, ShowType: true})
	if err != nil {
		return fmt.Errorf("failed to resolve transaction inputs: %w", err)
	}
	for index, response := range responses {
		if response.Data == nil {
			reason := "not found"
			if response.Error != nil {
				reason = response.Error.String()
			}
			return fmt.Errorf("input object %s: %s", ids[index], reason)
		}
		if err := tx.Resolve(*response.Data); err != nil {
			return err
		}
		e.logger.Debug().
			Str("object", response.Data.ObjectID).
			Uint64("version", uint64(response.Data.Version)).
			Str("type", response.Data.Type).
			Msg("resolved input")
	}
	return nil
}

// selectGas picks the largest SUI coins of sender not already used as inputs
// until they cover budget.
func (e *RPCExecutor) selectGas(ctx context.Context, tx *Transaction, sender string, budget uint64) (GasData, error) {
	price, err := e.node.GetReferenceGasPrice(ctx)
	if err != nil {
		return GasData{}, fmt.Errorf("failed to read gas price: %w", err)
	}
	coins, err := e.node.GetCoins(ctx, sender, rpc.SuiCoinType)
	if err != nil {
		return GasData{}, fmt.Errorf("failed to list gas coins: %w", err)
	}

	used := map[string]struct{}{}
	for _, id := range tx.ObjectIDs() {
		used[id] = struct{}{}
	}
	candidates := make([]rpc.Coin, 0, len(coins))
	for _, coin := range coins {
		normalized, err := bcs.NormalizeAddress(coin.CoinObjectID)
		if err != nil {
			continue
		}
		if _, taken := used[normalized]; taken {
			continue
		}
		candidates = append(candidates, coin)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Balance > candidates[j].Balance
	})

	payment := make([]rpc.ObjectRef, 0)
	var total uint64
	for _, coin := range candidates {
		if total >= budget || len(payment) == maxGasObjects {
			break
		}
		payment = append(payment, rpc.ObjectRef{ObjectID: coin.CoinObjectID, Version: coin.Version, Digest: coin.Digest})
		total += uint64(coin.Balance)
	}
	if total < budget {
		return GasData{}, fmt.Errorf("insufficient gas: %s holds %d MIST in usable coins, budget is %d", sender, total, budget)
	}
	e.logger.Debug().Uint64("price", price).Uint64("budget", budget).Int("coins", len(payment)).Msg("selected gas")
	return GasData{Payment: payment, Owner: sender, Price: price, Budget: budget}, nil
}
