package main

import (
	"github.com/recrd-io/recrd-sdk-go/pkg/profile"
	"github.com/recrd-io/recrd-sdk-go/pkg/workflow"
	"github.com/spf13/cobra"
)

func (a *app) profileCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "profile",
		Short: "Create, update, authorize and burn profiles",
	}
	command.AddCommand(
		a.profileCreateCommand(),
		a.profileBatchNewCommand(),
		a.profileAuthorizeCommand(),
		a.profileBatchAuthorizeCommand(),
		a.profileBatchComboCommand(),
		a.profileUpdateCommand(),
		a.profileDeauthorizeCommand(),
		&cobra.Command{
			Use:   "receive",
			Short: "Take the stored master out of the stored profile and send it to the operator",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				runner, err := a.runner()
				if err != nil {
					return err
				}
				digest, err := runner.ReceiveMaster(cmd.Context())
				if err != nil {
					return err
				}
				return a.printJSON(map[string]string{"digest": digest})
			},
		},
		&cobra.Command{
			Use:   "batch-burn",
			Short: "Burn every stored profile",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				runner, err := a.runner()
				if err != nil {
					return err
				}
				burned, err := runner.BatchBurnProfiles(cmd.Context())
				if err != nil {
					return err
				}
				return a.printJSON(map[string][]string{"burned": burned})
			},
		},
		&cobra.Command{
			Use:   "get [profile-id]",
			Short: "Print a profile, the stored one by default",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				runner, err := a.runner()
				if err != nil {
					return err
				}
				found, err := runner.GetProfile(cmd.Context(), optionalArg(args))
				if err != nil {
					return err
				}
				return a.printJSON(found)
			},
		},
	)
	return command
}

func (a *app) profileCreateCommand() *cobra.Command {
	var userID, username string
	command := &cobra.Command{
		Use:   "create",
		Short: "Create a profile and store its id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := a.runner()
			if err != nil {
				return err
			}
			id, err := runner.CreateProfile(cmd.Context(), userID, username)
			if err != nil {
				return err
			}
			return a.printJSON(map[string]string{"profileId": id})
		},
	}
	command.Flags().StringVar(&userID, "user-id", workflow.SampleUserID, "user id of the new profile")
	command.Flags().StringVar(&username, "username", workflow.SampleUsername, "username of the new profile")
	return command
}

func (a *app) profileBatchNewCommand() *cobra.Command {
	var count int
	command := &cobra.Command{
		Use:   "batch-new",
		Short: "Create profiles with generated user ids in one batch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := a.runner()
			if err != nil {
				return err
			}
			ids, err := runner.BatchNewProfiles(cmd.Context(), count)
			if err != nil {
				return err
			}
			return a.printJSON(map[string][]string{"profileIds": ids})
		},
	}
	command.Flags().IntVar(&count, "count", 3, "number of profiles")
	return command
}

func (a *app) profileAuthorizeCommand() *cobra.Command {
	var profileID, user string
	var level int
	command := &cobra.Command{
		Use:   "authorize",
		Short: "Grant an access level on a profile, or every entry of --params",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.params != "" {
				authorizations, err := workflow.LoadAuthorizations(a.fs, a.params)
				if err != nil {
					return err
				}
				runner, err := a.runner()
				if err != nil {
					return err
				}
				if err := runner.Profiles.Authorize(cmd.Context(), authorizations); err != nil {
					return err
				}
				return a.printJSON(authorizations)
			}

			runner, err := a.runner()
			if err != nil {
				return err
			}
			updated, err := runner.Authorize(cmd.Context(), profileID, user, level)
			if err != nil {
				return err
			}
			return a.printJSON(updated)
		},
	}
	command.Flags().StringVar(&profileID, "profile", "", "profile id, the stored profile by default")
	command.Flags().StringVar(&user, "user", "", "address to authorize, the end-user account by default")
	command.Flags().IntVar(&level, "level", profile.AccessAdmin, "access level between 0 and 250")
	return command
}

func (a *app) profileBatchAuthorizeCommand() *cobra.Command {
	var count, level int
	command := &cobra.Command{
		Use:   "batch-authorize",
		Short: "Authorize a generated address on each stored profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := a.runner()
			if err != nil {
				return err
			}
			authorizations, err := runner.BatchAuthorize(cmd.Context(), count, level)
			if err != nil {
				return err
			}
			return a.printJSON(authorizations)
		},
	}
	command.Flags().IntVar(&count, "count", 0, "number of stored profiles to authorize on, all by default")
	command.Flags().IntVar(&level, "level", profile.AccessUpdate, "access level between 0 and 250")
	return command
}

func (a *app) profileBatchComboCommand() *cobra.Command {
	var newCount, authorizeCount, level int
	command := &cobra.Command{
		Use:   "batch-combo",
		Short: "Create profiles and authorize generated addresses in one batch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := a.runner()
			if err != nil {
				return err
			}
			ids, err := runner.BatchCombo(cmd.Context(), newCount, authorizeCount, level)
			if err != nil {
				return err
			}
			return a.printJSON(map[string][]string{"profileIds": ids})
		},
	}
	command.Flags().IntVar(&newCount, "new", 2, "number of profiles to create")
	command.Flags().IntVar(&authorizeCount, "authorize", 2, "number of stored profiles to authorize on")
	command.Flags().IntVar(&level, "level", profile.AccessUpdate, "access level between 0 and 250")
	return command
}

func (a *app) profileUpdateCommand() *cobra.Command {
	var profileID, field, value, address string
	command := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields, by flag, from --params, or the sample counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var updates []workflow.FieldUpdate
			switch {
			case a.params != "":
				loaded, err := workflow.LoadUpdates(a.fs, a.params)
				if err != nil {
					return err
				}
				updates = loaded
			case field != "":
				updates = []workflow.FieldUpdate{{Field: profile.Field(field), Value: value, Address: address}}
			}

			runner, err := a.runner()
			if err != nil {
				return err
			}
			updated, err := runner.UpdateProfile(cmd.Context(), profileID, updates)
			if err != nil {
				return err
			}
			return a.printJSON(updated)
		},
	}
	command.Flags().StringVar(&profileID, "profile", "", "profile id, the stored profile by default")
	command.Flags().StringVar(&field, "field", "", "field to update, e.g. watchTime or username")
	command.Flags().StringVar(&value, "value", "", "new value")
	command.Flags().StringVar(&address, "address", "", "user address for authorization updates")
	return command
}

func (a *app) profileDeauthorizeCommand() *cobra.Command {
	var profileID, user string
	command := &cobra.Command{
		Use:   "deauthorize",
		Short: "Remove a user's access from a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := a.runner()
			if err != nil {
				return err
			}
			updated, err := runner.Deauthorize(cmd.Context(), profileID, user)
			if err != nil {
				return err
			}
			return a.printJSON(updated)
		},
	}
	command.Flags().StringVar(&profileID, "profile", "", "profile id, the stored profile by default")
	command.Flags().StringVar(&user, "user", "", "address to remove, the end-user account by default")
	return command
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
