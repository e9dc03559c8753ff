package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pr-poehali-dev/fteam-dark-site/storefront"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and edit your profile",
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update display name, username or avatar",
	Long: `Update profile fields. Omitted flags keep their current value.

Examples:
  fteam profile update --display-name "Night Owl"
  fteam profile update --username nightowl --avatar https://cdn.example.com/a.png`,
	RunE: runProfileUpdate,
}

func init() {
	profileUpdateCmd.Flags().String("display-name", "", "display name")
	profileUpdateCmd.Flags().String("username", "", "username")
	profileUpdateCmd.Flags().String("avatar", "", "avatar image URL")

	profileCmd.AddCommand(profileUpdateCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileUpdate(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	user := app.syncer.State().User()

	displayName, _ := cmd.Flags().GetString("display-name")
	username, _ := cmd.Flags().GetString("username")
	avatar, _ := cmd.Flags().GetString("avatar")

	// The service replaces all three fields, so unset flags fall back to
	// the cached values.
	if user != nil {
		if displayName == "" {
			displayName = user.DisplayName
		}
		if username == "" {
			username = user.Username
		}
		if avatar == "" {
			avatar = user.AvatarURL
		}
	}

	return app.syncer.UpdateProfile(context.Background(), storefront.UpdateProfileRequest{
		DisplayName: displayName,
		Username:    username,
		AvatarURL:   avatar,
	})
}
