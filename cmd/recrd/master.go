package main

import (
	"context"

	"github.com/recrd-io/recrd-sdk-go/pkg/master"
	"github.com/recrd-io/recrd-sdk-go/pkg/workflow"
	"github.com/spf13/cobra"
)

func (a *app) masterCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "master",
		Short: "Mint, sell, retitle and burn masters",
	}

	mint := &cobra.Command{
		Use:   "mint",
		Short: "Mint a master from --params or the sample video and store its ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := workflow.SampleMint()
			if a.params != "" {
				loaded, err := workflow.LoadMintParams(a.fs, a.params)
				if err != nil {
					return err
				}
				params = loaded
			}
			runner, err := a.runner()
			if err != nil {
				return err
			}
			result, err := runner.MintMaster(cmd.Context(), params)
			if err != nil {
				return err
			}
			return a.printJSON(result)
		},
	}

	var title string
	setTitle := &cobra.Command{
		Use:   "set-title-and-sync",
		Short: "Rename the stored metadata and copy the title onto the stored master",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := a.runner()
			if err != nil {
				return err
			}
			updated, err := runner.SetTitleAndSync(cmd.Context(), title)
			if err != nil {
				return err
			}
			return a.printJSON(updated)
		},
	}
	setTitle.Flags().StringVar(&title, "title", "", "new title")

	command.AddCommand(
		mint,
		setTitle,
		a.masterGetCommand("get [master-id]", "Print a master, the stored one by default",
			func(ctx context.Context, runner *workflow.Runner, id string) (any, error) {
				return runner.GetMaster(ctx, id)
			}),
		a.masterGetCommand("get-metadata [metadata-id]", "Print a metadata object, the stored one by default",
			func(ctx context.Context, runner *workflow.Runner, id string) (any, error) {
				return runner.GetMetadata(ctx, id)
			}),
		a.masterStatusCommand("set-on-sale", "List the stored master for sale", (*workflow.Runner).SetOnSale),
		a.masterStatusCommand("retain", "Take the stored master off sale", (*workflow.Runner).Retain),
		&cobra.Command{
			Use:   "receive-and-burn",
			Short: "Take the stored master out of its profile and burn it",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				runner, err := a.runner()
				if err != nil {
					return err
				}
				return runner.ReceiveAndBurn(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "burn-metadata [metadata-id]",
			Short: "Burn a metadata object, the stored one by default",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				runner, err := a.runner()
				if err != nil {
					return err
				}
				return runner.BurnMetadata(cmd.Context(), optionalArg(args))
			},
		},
		&cobra.Command{
			Use:   "buy",
			Short: "Spend the buyer's receipt on the master it names",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				runner, err := a.runner()
				if err != nil {
					return err
				}
				response, err := runner.Buy(cmd.Context())
				if err != nil {
					return err
				}
				return a.printJSON(map[string]string{"digest": response.Digest})
			},
		},
	)
	return command
}

func (a *app) masterGetCommand(
	use, short string,
	get func(context.Context, *workflow.Runner, string) (any, error),
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := a.runner()
			if err != nil {
				return err
			}
			found, err := get(cmd.Context(), runner, optionalArg(args))
			if err != nil {
				return err
			}
			return a.printJSON(found)
		},
	}
}

func (a *app) masterStatusCommand(
	use, short string,
	change func(*workflow.Runner, context.Context) (*master.Master, error),
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := a.runner()
			if err != nil {
				return err
			}
			updated, err := change(runner, cmd.Context())
			if err != nil {
				return err
			}
			return a.printJSON(updated)
		},
	}
}
