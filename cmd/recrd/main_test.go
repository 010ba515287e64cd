package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/recrd-io/recrd-sdk-go/pkg/idstore"
	"github.com/recrd-io/recrd-sdk-go/pkg/rpc"
	"github.com/recrd-io/recrd-sdk-go/pkg/shared"
	"github.com/recrd-io/recrd-sdk-go/pkg/sui"
	"github.com/recrd-io/recrd-sdk-go/pkg/sui/suitest"
	"github.com/recrd-io/recrd-sdk-go/pkg/workflow"
	"github.com/spf13/afero"
)

var testConfig = shared.Config{
	Network:   "localnet",
	PackageID: suitest.ID(0xaa),
	AdminCap:  suitest.ID(0xac),
	Publisher: suitest.ID(0xab),
	Registry:  suitest.ID(0xad),
	StateDir:  "state",
}

type harness struct {
	app      *app
	stdout   bytes.Buffer
	stderr   bytes.Buffer
	executor *suitest.Executor
	reader   *suitest.Reader
	fs       afero.Fs
}

func newHarness() *harness {
	h := &harness{executor: &suitest.Executor{}, reader: suitest.NewReader(), fs: afero.NewMemMapFs()}
	h.app = newApp(&h.stdout, &h.stderr)
	h.app.fs = h.fs
	h.app.loadConfig = func() (shared.Config, error) { return testConfig, nil }
	h.app.connect = func(config shared.Config, options workflow.Options) (*workflow.Runner, error) {
		var executor sui.Executor = h.executor
		if options.DryRun {
			executor = &sui.PrintExecutor{Writer: options.Out}
		}
		return workflow.New(workflow.Deps{
			Config:   config,
			Executor: executor,
			Reader:   h.reader,
			Store:    idstore.New(h.fs, config.StateDir),
			Operator: suitest.Signer(1),
			Logger:   options.Logger,
		})
	}
	return h
}

func TestMissingConfigPrintsDiagnostic(t *testing.T) {
	h := newHarness()
	h.app.loadConfig = func() (shared.Config, error) {
		return shared.ConfigFromLookup(func(key string) (string, bool) {
			if key == shared.EnvNetwork {
				return "localnet", true
			}
			return "", false
		})
	}

	if code := h.app.execute([]string{"mintProfile"}); code != 1 {
		t.Fatalf("expected exit status 1, got %d", code)
	}
	if !strings.Contains(h.stderr.String(), "env contains RECRD_PACKAGE_ID: false") {
		t.Fatalf("expected presence diagnostic, got %q", h.stderr.String())
	}
	if len(h.executor.Batches) != 0 {
		t.Fatal("nothing should be submitted without configuration")
	}
}

func TestDryRunPrintsBatchAndSucceeds(t *testing.T) {
	h := newHarness()

	if code := h.app.execute([]string{"--dry-run", "profile", "create"}); code != 0 {
		t.Fatalf("expected exit status 0, got %d: %s", code, h.stderr.String())
	}
	if !strings.Contains(h.stdout.String(), "::profile::new") {
		t.Fatalf("expected the printed batch, got %q", h.stdout.String())
	}
	if len(h.executor.Batches) != 0 {
		t.Fatal("a dry run must not reach the executor")
	}
}

func TestQuickMintProfilePrintsID(t *testing.T) {
	h := newHarness()
	h.executor.Responses = []*rpc.TransactionBlockResponse{
		suitest.Success(suitest.Created(suitest.ID(1), testConfig.Contract().Type("profile", "Profile"))),
	}

	if code := h.app.execute([]string{"mintProfile"}); code != 0 {
		t.Fatalf("expected exit status 0, got %d: %s", code, h.stderr.String())
	}
	if !strings.Contains(h.stdout.String(), `"profileId": "`+suitest.ID(1)+`"`) {
		t.Fatalf("unexpected output %q", h.stdout.String())
	}
}

func TestFailedTransactionTerminates(t *testing.T) {
	h := newHarness()
	h.executor.Responses = []*rpc.TransactionBlockResponse{
		suitest.Failure("MoveAbort(MoveLocation { module: ModuleId { name: Identifier(\"profile\") } }, 1) in command 0"),
	}

	if code := h.app.execute([]string{"burnMaster", suitest.ID(5)}); code != 1 {
		t.Fatalf("expected exit status 1, got %d", code)
	}
	if !strings.Contains(h.stderr.String(), "terminated with error") {
		t.Fatalf("expected the termination log, got %q", h.stderr.String())
	}
}

func TestCommandsValidateArguments(t *testing.T) {
	for _, args := range [][]string{
		{"updateProfile", suitest.ID(1), "soon"},
		{"burnMaster"},
		{"no-such-command"},
	} {
		h := newHarness()
		if code := h.app.execute(args); code != 1 {
			t.Fatalf("%v: expected exit status 1, got %d", args, code)
		}
		if len(h.executor.Batches) != 0 {
			t.Fatalf("%v: nothing should be submitted", args)
		}
	}
}

func TestMasterMintReadsParams(t *testing.T) {
	h := newHarness()
	params := "kind: sound\ntitle: Night Drive\ncreator_profile_id: \"" + suitest.ID(1) + "\"\nroyalty_percentage_bp: 100\nsale_status: 1\n"
	if err := afero.WriteFile(h.fs, "mint.yaml", []byte(params), 0o644); err != nil {
		t.Fatalf("write params: %v", err)
	}

	if code := h.app.execute([]string{"--dry-run", "--params", "mint.yaml", "master", "mint"}); code != 0 {
		t.Fatalf("expected exit status 0, got %d: %s", code, h.stderr.String())
	}
	if !strings.Contains(h.stdout.String(), "::master::Sound") {
		t.Fatalf("expected a sound master batch, got %q", h.stdout.String())
	}
}
