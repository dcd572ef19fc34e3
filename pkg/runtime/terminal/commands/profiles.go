package commands

import (
	"fmt"

	"github.com/de-tools/procurement-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

func NewProfilesCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List configured source profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := env.profiles()
			if err != nil {
				return err
			}
			profiles, err := registry.GetProfiles(cmd.Context())
			if err != nil {
				return err
			}
			if len(profiles) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No profiles found in %s\n", env.Config.ProfilesPath)
				return nil
			}
			return export.NewReporter(cmd.OutOrStdout()).Profiles(profiles)
		},
	}
}
