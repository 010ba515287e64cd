package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// quickCommands are the single-batch commands kept under their historical
// camel-case names.
func (a *app) quickCommands() []*cobra.Command {
	return []*cobra.Command{
		{
			Use:   "mintProfile",
			Short: "Mint a sample profile",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				runner, err := a.runner()
				if err != nil {
					return err
				}
				id, err := runner.QuickMintProfile(cmd.Context())
				if err != nil {
					return err
				}
				return a.printJSON(map[string]string{"profileId": id})
			},
		},
		{
			Use:   "updateProfile <profile-id> <watch-time>",
			Short: "Set the watch time of a profile",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				watchTime, err := strconv.ParseUint(args[1], 10, 64)
				if err != nil {
					return fmt.Errorf("watch time %q is not a number", args[1])
				}
				runner, err := a.runner()
				if err != nil {
					return err
				}
				updated, err := runner.QuickUpdateProfile(cmd.Context(), args[0], watchTime)
				if err != nil {
					return err
				}
				return a.printJSON(updated)
			},
		},
		{
			Use:   "mintMaster",
			Short: "Mint a sample video master owned by the operator",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				runner, err := a.runner()
				if err != nil {
					return err
				}
				result, err := runner.QuickMintMaster(cmd.Context())
				if err != nil {
					return err
				}
				return a.printJSON(result)
			},
		},
		{
			Use:   "burnMaster <master-id>",
			Short: "Burn a video master owned by the operator",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				runner, err := a.runner()
				if err != nil {
					return err
				}
				return runner.QuickBurnMaster(cmd.Context(), args[0])
			},
		},
		{
			Use:   "burnMetadata <metadata-id>",
			Short: "Burn a video metadata object",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				runner, err := a.runner()
				if err != nil {
					return err
				}
				return runner.QuickBurnMetadata(cmd.Context(), args[0])
			},
		},
	}
}
