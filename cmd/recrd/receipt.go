package main

import (
	"github.com/spf13/cobra"
)

func (a *app) receiptCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "receipt",
		Short: "Issue purchase receipts",
	}
	command.AddCommand(&cobra.Command{
		Use:   "mint",
		Short: "Create a buyer profile and issue it a receipt for the stored master",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := a.runner()
			if err != nil {
				return err
			}
			result, err := runner.MintReceipt(cmd.Context())
			if err != nil {
				return err
			}
			return a.printJSON(result)
		},
	})
	return command
}

func (a *app) displayCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "display",
		Short: "Maintain the display objects of the published package",
	}
	var digest string
	update := &cobra.Command{
		Use:   "update",
		Short: "Apply the standard display migration to the displays created at publish",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := a.runner()
			if err != nil {
				return err
			}
			response, err := runner.UpdateDisplay(cmd.Context(), digest)
			if err != nil {
				return err
			}
			return a.printJSON(map[string]string{"digest": response.Digest})
		},
	}
	update.Flags().StringVar(&digest, "digest", "", "publish transaction digest, PUBLISH_DIGEST by default")
	command.AddCommand(update)
	return command
}
