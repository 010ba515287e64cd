package rpc

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// SuiCoinType is the native gas coin.
const SuiCoinType = "0x2::sui::SUI"

// GetObject returns the requested value.
func (c *Client) GetObject(ctx context.Context, objectID string, options ObjectDataOptions) (ObjectResponse, error) {
	var result ObjectResponse
	normalized := strings.TrimSpace(objectID)
	if normalized == "" {
		return result, fmt.Errorf("object ID is required")
	}
	if err := c.Call(ctx, "sui_getObject", &result, normalized, options); err != nil {
		return result, err
	}
	return result, nil
}

// MultiGetObjects returns one response per id, in request order.
func (c *Client) MultiGetObjects(
	ctx context.Context,
	objectIDs []string,
	options ObjectDataOptions,
) ([]ObjectResponse, error) {
	if len(objectIDs) == 0 {
		return []ObjectResponse{}, nil
	}
	result := make([]ObjectResponse, 0, len(objectIDs))
	if err := c.Call(ctx, "sui_multiGetObjects", &result, objectIDs, options); err != nil {
		return nil, err
	}
	if len(result) != len(objectIDs) {
		return nil, fmt.Errorf("sui_multiGetObjects returned %d objects for %d ids", len(result), len(objectIDs))
	}
	return result, nil
}

// GetOwnedObjects returns every object owned by owner matching query.
func (c *Client) GetOwnedObjects(
	ctx context.Context,
	owner string,
	query OwnedObjectsQuery,
) ([]ObjectResponse, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, fmt.Errorf("owner address is required")
	}
	return collectPages[ObjectResponse](ctx, c, "suix_getOwnedObjects", strings.TrimSpace(owner), query)
}

// GetDynamicFields lists every dynamic field of parentID.
func (c *Client) GetDynamicFields(ctx context.Context, parentID string) ([]DynamicFieldInfo, error) {
	if strings.TrimSpace(parentID) == "" {
		return nil, fmt.Errorf("parent object ID is required")
	}
	return collectPages[DynamicFieldInfo](ctx, c, "suix_getDynamicFields", strings.TrimSpace(parentID))
}

// GetDynamicFieldObject returns the object stored under name in parentID.
func (c *Client) GetDynamicFieldObject(
	ctx context.Context,
	parentID string,
	name DynamicFieldName,
) (ObjectResponse, error) {
	var result ObjectResponse
	if strings.TrimSpace(parentID) == "" {
		return result, fmt.Errorf("parent object ID is required")
	}
	if err := c.Call(ctx, "suix_getDynamicFieldObject", &result, strings.TrimSpace(parentID), name); err != nil {
		return result, err
	}
	return result, nil
}

// GetTransactionBlock returns the requested value.
func (c *Client) GetTransactionBlock(
	ctx context.Context,
	digest string,
	options TransactionBlockOptions,
) (TransactionBlockResponse, error) {
	var result TransactionBlockResponse
	normalized := strings.TrimSpace(digest)
	if normalized == "" {
		return result, fmt.Errorf("transaction digest is required")
	}
	if err := c.Call(ctx, "sui_getTransactionBlock", &result, normalized, options); err != nil {
		return result, err
	}
	return result, nil
}

// GetReferenceGasPrice returns the current epoch's reference gas price.
func (c *Client) GetReferenceGasPrice(ctx context.Context) (uint64, error) {
	var result Uint64String
	if err := c.Call(ctx, "suix_getReferenceGasPrice", &result); err != nil {
		return 0, err
	}
	return uint64(result), nil
}

// GetCoins returns every coin of coinType owned by owner. An empty coinType
// means SUI.
func (c *Client) GetCoins(ctx context.Context, owner, coinType string) ([]Coin, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, fmt.Errorf("owner address is required")
	}
	if strings.TrimSpace(coinType) == "" {
		coinType = SuiCoinType
	}
	return collectPages[Coin](ctx, c, "suix_getCoins", strings.TrimSpace(owner), coinType)
}

// ExecuteTransactionBlock submits signed transaction bytes and waits for
// local execution.
func (c *Client) ExecuteTransactionBlock(
	ctx context.Context,
	txBytes string,
	signatures []string,
	options TransactionBlockOptions,
) (TransactionBlockResponse, error) {
	var result TransactionBlockResponse
	if txBytes == "" {
		return result, fmt.Errorf("transaction bytes are required")
	}
	if len(signatures) == 0 {
		return result, fmt.Errorf("at least one signature is required")
	}
	err := c.Call(
		ctx,
		"sui_executeTransactionBlock",
		&result,
		txBytes,
		signatures,
		options,
		WaitForLocalExecution,
	)
	if err != nil {
		return result, err
	}
	return result, nil
}

// DryRunTransactionBlock evaluates unsigned transaction bytes without committing.
func (c *Client) DryRunTransactionBlock(ctx context.Context, txBytes string) (DryRunResponse, error) {
	var result DryRunResponse
	if txBytes == "" {
		return result, fmt.Errorf("transaction bytes are required")
	}
	if err := c.Call(ctx, "sui_dryRunTransactionBlock", &result, txBytes); err != nil {
		return result, err
	}
	return result, nil
}

// collectPages calls a cursor-paged method, appending cursor and limit to
// params, until the node reports no further pages.
func collectPages[T any](ctx context.Context, c *Client, method string, params ...any) ([]T, error) {
	result := make([]T, 0)
	var cursor *string
	for {
		var current page[T]
		args := append(append([]any{}, params...), cursor, nil)
		if err := c.Call(ctx, method, &current, args...); err != nil {
			return nil, err
		}
		result = append(result, current.Data...)
		if !current.HasNextPage || current.NextCursor == nil {
			return result, nil
		}
		if cursor != nil && *cursor == *current.NextCursor {
			return nil, fmt.Errorf("%s returned the same cursor twice: %s", method, strconv.Quote(*cursor))
		}
		cursor = current.NextCursor
	}
}
