package rpc

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
)

type capturedRequest struct {
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

func newTestServer(t *testing.T, handler func(request capturedRequest) (any, *Error)) (*Client, *[]capturedRequest) {
	t.Helper()
	requests := make([]capturedRequest, 0)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		var captured capturedRequest
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		requests = append(requests, captured)
		result, rpcErr := handler(captured)
		w.Header().Set("Content-Type", "application/json")
		envelope := map[string]any{"jsonrpc": "2.0", "id": 1}
		if rpcErr != nil {
			envelope["error"] = rpcErr
		} else {
			envelope["result"] = result
		}
		_ = json.NewEncoder(w).Encode(envelope)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{URL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return client, &requests
}

func TestNewClientNetworkName(t *testing.T) {
	client, err := NewClient(Config{Network: "devnet"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.URL() != "https://fullnode.devnet.sui.io:443" || client.Network() != "devnet" {
		t.Fatalf("unexpected endpoint %s (%s)", client.URL(), client.Network())
	}
	if _, err := NewClient(Config{Network: "badnet"}); err == nil {
		t.Fatal("expected error for unsupported network")
	}
}

func TestGetObjectDecodesOwnerAndFields(t *testing.T) {
	client, requests := newTestServer(t, func(request capturedRequest) (any, *Error) {
		return json.RawMessage(`{"data":{"objectId":"0xp","version":"12","digest":"d",
			"type":"0xabc::profile::Profile","owner":{"Shared":{"initial_shared_version":7}},
			"content":{"dataType":"moveObject","type":"0xabc::profile::Profile",
			"fields":{"id":{"id":"0xp"},"watch_time":"42","username":"alice"}}}}`), nil
	})

	response, err := client.GetObject(context.Background(), " 0xp ", FullObjectOptions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if (*requests)[0].Method != "sui_getObject" || string((*requests)[0].Params[0]) != `"0xp"` {
		t.Fatalf("unexpected request: %+v", (*requests)[0])
	}
	data := response.Data
	if data.Version != 12 || data.Owner.Kind != OwnerShared || data.Owner.InitialSharedVersion != 7 {
		t.Fatalf("unexpected object data: %+v %+v", data, data.Owner)
	}
	watchTime, err := data.Fields().Uint64("watch_time")
	if err != nil || watchTime != 42 {
		t.Fatalf("unexpected watch_time: %d %v", watchTime, err)
	}
	if data.Fields().UID("id") != "0xp" || data.Fields().String("username") != "alice" {
		t.Fatalf("unexpected fields: %+v", data.Fields())
	}
}

func TestOwnerVariants(t *testing.T) {
	cases := map[string]Owner{
		`"Immutable"`:                   {Kind: OwnerImmutable},
		`{"AddressOwner":"0x1"}`:        {Kind: OwnerAddress, Address: "0x1"},
		`{"ObjectOwner":"0x2"}`:         {Kind: OwnerObject, Address: "0x2"},
		`{"Shared":{"initial_shared_version":"9"}}`: {Kind: OwnerShared, InitialSharedVersion: 9},
	}
	for raw, expected := range cases {
		var owner Owner
		if err := json.Unmarshal([]byte(raw), &owner); err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
		if owner != expected {
			t.Fatalf("decode %s: got %+v", raw, owner)
		}
	}
}

func TestCallReturnsRPCError(t *testing.T) {
	client, _ := newTestServer(t, func(capturedRequest) (any, *Error) {
		return nil, &Error{Code: -32602, Message: "Invalid params"}
	})

	_, err := client.GetReferenceGasPrice(context.Background())
	var rpcErr *Error
	if !errors.As(err, &rpcErr) {
		t.Fatalf("expected rpc error, got %v", err)
	}
	if rpcErr.Code != -32602 || rpcErr.Method != "suix_getReferenceGasPrice" {
		t.Fatalf("unexpected rpc error: %+v", rpcErr)
	}
}

func TestCallHTTPStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := NewClient(Config{URL: server.URL, Headers: map[string]string{"X-Client": "recrd"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = client.Call(context.Background(), "sui_getChainIdentifier", nil)
	if err == nil || !strings.Contains(err.Error(), "status 503") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestGetOwnedObjectsFollowsCursor(t *testing.T) {
	client, requests := newTestServer(t, func(request capturedRequest) (any, *Error) {
		if string(request.Params[2]) == "null" {
			return json.RawMessage(`{"data":[{"data":{"objectId":"0x1","version":"1","digest":"a"}}],
				"nextCursor":"0x1","hasNextPage":true}`), nil
		}
		return json.RawMessage(`{"data":[{"data":{"objectId":"0x2","version":"1","digest":"b"}}],
			"nextCursor":"0x2","hasNextPage":false}`), nil
	})

	objects, err := client.GetOwnedObjects(context.Background(), "0xowner", OwnedObjectsQuery{
		Filter:  StructTypeFilter("0xabc::receipt::Receipt"),
		Options: &ObjectDataOptions{ShowContent: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(objects) != 2 || objects[1].Data.ObjectID != "0x2" {
		t.Fatalf("unexpected objects: %+v", objects)
	}
	if len(*requests) != 2 || string((*requests)[1].Params[2]) != `"0x1"` {
		t.Fatalf("unexpected requests: %+v", *requests)
	}
	if !strings.Contains(string((*requests)[0].Params[1]), `"StructType":"0xabc::receipt::Receipt"`) {
		t.Fatalf("filter not sent: %s", (*requests)[0].Params[1])
	}
}

func TestCollectPagesRejectsRepeatedCursor(t *testing.T) {
	client, _ := newTestServer(t, func(capturedRequest) (any, *Error) {
		return json.RawMessage(`{"data":[],"nextCursor":"0x1","hasNextPage":true}`), nil
	})
	if _, err := client.GetDynamicFields(context.Background(), "0xparent"); err == nil {
		t.Fatal("expected repeated cursor error")
	}
}

func TestMultiGetObjectsCountMismatch(t *testing.T) {
	client, _ := newTestServer(t, func(capturedRequest) (any, *Error) {
		return json.RawMessage(`[]`), nil
	})
	if _, err := client.MultiGetObjects(context.Background(), []string{"0x1"}, ObjectDataOptions{}); err == nil {
		t.Fatal("expected count mismatch error")
	}
	empty, err := client.MultiGetObjects(context.Background(), nil, ObjectDataOptions{})
	if err != nil || len(empty) != 0 {
		t.Fatalf("unexpected result for empty ids: %v %v", empty, err)
	}
}

func TestExecuteTransactionBlockRequestShape(t *testing.T) {
	client, requests := newTestServer(t, func(capturedRequest) (any, *Error) {
		return json.RawMessage(`{"digest":"D1","effects":{"status":{"status":"success"},
			"gasUsed":{"computationCost":"1","storageCost":"2","storageRebate":"0"},"transactionDigest":"D1"},
			"objectChanges":[{"type":"created","objectType":"0xabc::profile::Profile","objectId":"0xnew","version":"3"}]}`), nil
	})

	response, err := client.ExecuteTransactionBlock(context.Background(), "AAA=", []string{"sig"}, TransactionBlockOptions{
		ShowEffects:       true,
		ShowObjectChanges: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.Effects.Status.Status != "success" || response.ObjectChanges[0].ObjectID != "0xnew" {
		t.Fatalf("unexpected response: %+v", response)
	}
	params := (*requests)[0].Params
	if len(params) != 4 || string(params[3]) != `"WaitForLocalExecution"` {
		t.Fatalf("unexpected params: %s", params)
	}
	if _, err := client.ExecuteTransactionBlock(context.Background(), "AAA=", nil, TransactionBlockOptions{}); err == nil {
		t.Fatal("expected error without signatures")
	}
}

func TestCompressedResponses(t *testing.T) {
	body := []byte(`{"jsonrpc":"2.0","id":1,"result":"750"}`)
	encoders := map[string]func(io.Writer) io.WriteCloser{
		"gzip": func(w io.Writer) io.WriteCloser { return gzip.NewWriter(w) },
		"br":   func(w io.Writer) io.WriteCloser { return brotli.NewWriter(w) },
	}

	for encoding, newWriter := range encoders {
		t.Run(encoding, func(t *testing.T) {
			var compressed bytes.Buffer
			writer := newWriter(&compressed)
			if _, err := writer.Write(body); err != nil {
				t.Fatalf("compress: %v", err)
			}
			if err := writer.Close(); err != nil {
				t.Fatalf("compress: %v", err)
			}

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if !strings.Contains(r.Header.Get("Accept-Encoding"), encoding) {
					t.Errorf("missing accept-encoding %s", encoding)
				}
				w.Header().Set("Content-Encoding", encoding)
				_, _ = w.Write(compressed.Bytes())
			}))
			defer server.Close()

			client, err := NewClient(Config{URL: server.URL})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			price, err := client.GetReferenceGasPrice(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if price != 750 {
				t.Fatalf("expected 750, got %d", price)
			}
		})
	}
}

func TestFieldsHelpers(t *testing.T) {
	var fields Fields
	if err := json.Unmarshal([]byte(`{
		"royalty":250,"count":"18446744073709551615","neg":-1,
		"tags":["a","b"],"metadata_ref":{"vec":["0xm"]},"parent":{"vec":[]},
		"nested":{"type":"x","fields":{"title":"t"}}
	}`), &fields); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if value, err := fields.Uint64("royalty"); err != nil || value != 250 {
		t.Fatalf("unexpected royalty: %d %v", value, err)
	}
	if value, err := fields.Uint64("count"); err != nil || value != 18446744073709551615 {
		t.Fatalf("unexpected count: %d %v", value, err)
	}
	if _, err := fields.Uint64("neg"); err == nil {
		t.Fatal("expected error for negative value")
	}
	if _, err := fields.Uint64("missing"); err == nil {
		t.Fatal("expected error for missing value")
	}
	if tags := fields.Strings("tags"); len(tags) != 2 || tags[1] != "b" {
		t.Fatalf("unexpected tags: %v", tags)
	}
	if fields.OptionID("metadata_ref") != "0xm" || fields.OptionID("parent") != "" {
		t.Fatal("unexpected option ids")
	}
	if fields.Struct("nested").String("title") != "t" {
		t.Fatal("unexpected nested struct")
	}
}
