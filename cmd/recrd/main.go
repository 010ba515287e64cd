// Command recrd runs operator workflows against a deployed RECRD contract.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/recrd-io/recrd-sdk-go/pkg/shared"
	"github.com/recrd-io/recrd-sdk-go/pkg/sui"
	"github.com/recrd-io/recrd-sdk-go/pkg/workflow"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// app carries what every command needs: output streams, the global flags
// and the factories that reach the node.
type app struct {
	stdout io.Writer
	stderr io.Writer
	fs     afero.Fs
	logger zerolog.Logger

	dryRun   bool
	simulate bool
	verbose  bool
	params   string

	loadConfig func() (shared.Config, error)
	connect    func(shared.Config, workflow.Options) (*workflow.Runner, error)
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:     stdout,
		stderr:     stderr,
		fs:         afero.NewOsFs(),
		logger:     zerolog.Nop(),
		loadConfig: shared.LoadConfig,
		connect:    workflow.Connect,
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	return newApp(stdout, stderr).execute(args)
}

func (a *app) execute(args []string) int {
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := root.ExecuteContext(context.Background())
	if err == nil || errors.Is(err, sui.ErrNotSubmitted) {
		return 0
	}

	var missing *shared.MissingConfigError
	if errors.As(err, &missing) {
		missing.WriteDiagnostic(a.stderr)
		fmt.Fprintln(a.stderr, missing.Error())
		return 1
	}
	a.logger.Error().Err(err).Msg("terminated with error")
	if a.logger.GetLevel() == zerolog.Disabled {
		fmt.Fprintf(a.stderr, "terminated with error: %v\n", err)
	}
	return 1
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "recrd",
		Short:         "Operate the RECRD profile, master, receipt and display contracts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.logger = shared.NewLogger(a.stderr, a.verbose)
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVar(&a.dryRun, "dry-run", false, "print each batch as JSON instead of submitting it")
	flags.BoolVar(&a.simulate, "simulate", false, "evaluate batches on the node without executing them")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log debug output")
	flags.StringVar(&a.params, "params", "", "YAML parameter file for commands that accept one")

	root.AddCommand(
		a.profileCommand(),
		a.masterCommand(),
		a.receiptCommand(),
		a.displayCommand(),
	)
	root.AddCommand(a.quickCommands()...)
	return root
}

// runner loads the configuration and connects to the node. Every command
// calls it first, so a missing variable fails before anything else happens.
func (a *app) runner() (*workflow.Runner, error) {
	config, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	return a.connect(config, workflow.Options{
		DryRun:   a.dryRun,
		Simulate: a.simulate,
		Out:      a.stdout,
		Logger:   &a.logger,
	})
}

func (a *app) printJSON(value any) error {
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintf(a.stdout, "%s\n", payload)
	return err
}
