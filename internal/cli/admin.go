package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Moderation console",
	Long: `Moderation commands: user administration, game approval and the
featured rotation.

These commands are shown to everyone; the backend services reject callers
without the admin role.`,
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List all user accounts",
	RunE:  runAdminUsers,
}

var adminSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search users by username",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminSearch,
}

var adminPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List games awaiting moderation",
	RunE:  runAdminPending,
}

var adminApproveCmd = &cobra.Command{
	Use:   "approve <game-id>",
	Short: "Approve a pending game",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminApprove,
}

var adminRejectCmd = &cobra.Command{
	Use:   "reject <game-id>",
	Short: "Reject a pending game",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminReject,
}

var adminFeatureCmd = &cobra.Command{
	Use:   "feature <game-id>",
	Short: "Toggle the featured flag on a game",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminFeature,
}

var adminVerifyCmd = &cobra.Command{
	Use:   "verify <user-id>",
	Short: "Toggle the verified badge on a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminVerify,
}

var adminBanCmd = &cobra.Command{
	Use:   "ban <user-id>",
	Short: "Toggle the ban flag on a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminBan,
}

var adminBalanceCmd = &cobra.Command{
	Use:   "balance <user-id> <amount>",
	Short: "Set a user's balance",
	Args:  cobra.ExactArgs(2),
	RunE:  runAdminBalance,
}

var adminCreateFrameCmd = &cobra.Command{
	Use:   "create-frame",
	Short: "Add a new frame to the catalog",
	RunE:  runAdminCreateFrame,
}

func init() {
	adminFeatureCmd.Flags().Bool("off", false, "remove the game from featured instead")
	adminVerifyCmd.Flags().Bool("off", false, "remove the verified badge instead")
	adminBanCmd.Flags().Bool("off", false, "lift the ban instead")

	adminCreateFrameCmd.Flags().String("name", "", "frame name")
	adminCreateFrameCmd.Flags().Float64("price", 0, "price in rubles")
	adminCreateFrameCmd.Flags().String("image-url", "", "frame image URL")
	_ = adminCreateFrameCmd.MarkFlagRequired("name")

	adminCmd.AddCommand(adminUsersCmd)
	adminCmd.AddCommand(adminSearchCmd)
	adminCmd.AddCommand(adminPendingCmd)
	adminCmd.AddCommand(adminApproveCmd)
	adminCmd.AddCommand(adminRejectCmd)
	adminCmd.AddCommand(adminFeatureCmd)
	adminCmd.AddCommand(adminVerifyCmd)
	adminCmd.AddCommand(adminBanCmd)
	adminCmd.AddCommand(adminBalanceCmd)
	adminCmd.AddCommand(adminCreateFrameCmd)
	rootCmd.AddCommand(adminCmd)
}

func runAdminUsers(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	if err := app.syncer.RefreshUsers(context.Background()); err != nil {
		return err
	}

	users := app.syncer.State().Users()
	if jsonOut {
		return printJSON(map[string]interface{}{"users": users, "count": len(users)})
	}
	if len(users) == 0 {
		fmt.Println("No users found")
		return nil
	}
	for _, user := range users {
		flags := ""
		if user.IsVerified {
			flags += " ✓"
		}
		if user.IsBanned {
			flags += " [banned]"
		}
		fmt.Printf("#%d @%s (%s) — %.2f ₽, %s%s\n",
			user.ID, user.Username, user.DisplayName, user.Balance, user.Role, flags)
	}
	return nil
}

func runAdminSearch(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	// Search is a direct read; it feeds no cached collection.
	users, err := app.syncer.SearchUsers(context.Background(), args[0])
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]interface{}{"users": users, "count": len(users)})
	}
	if len(users) == 0 {
		fmt.Println("No users found")
		return nil
	}
	for _, user := range users {
		fmt.Printf("#%d @%s (%s)\n", user.ID, user.Username, user.DisplayName)
	}
	return nil
}

func runAdminPending(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	if err := app.syncer.RefreshPendingGames(context.Background()); err != nil {
		return err
	}
	return printGames(app.syncer.State().PendingGames())
}

func runAdminApprove(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	gameID, err := parseID(args[0])
	if err != nil {
		return err
	}
	return app.syncer.ApproveGame(context.Background(), gameID)
}

func runAdminReject(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	gameID, err := parseID(args[0])
	if err != nil {
		return err
	}
	return app.syncer.RejectGame(context.Background(), gameID)
}

func runAdminFeature(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	gameID, err := parseID(args[0])
	if err != nil {
		return err
	}
	off, _ := cmd.Flags().GetBool("off")
	return app.syncer.SetFeatured(context.Background(), gameID, !off)
}

func runAdminVerify(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	userID, err := parseID(args[0])
	if err != nil {
		return err
	}
	off, _ := cmd.Flags().GetBool("off")
	return app.syncer.SetUserVerified(context.Background(), userID, !off)
}

func runAdminBan(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	userID, err := parseID(args[0])
	if err != nil {
		return err
	}
	off, _ := cmd.Flags().GetBool("off")
	return app.syncer.SetUserBanned(context.Background(), userID, !off)
}

func runAdminBalance(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	userID, err := parseID(args[0])
	if err != nil {
		return err
	}
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[1])
	}
	return app.syncer.SetBalance(context.Background(), userID, amount)
}

func runAdminCreateFrame(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	name, _ := cmd.Flags().GetString("name")
	price, _ := cmd.Flags().GetFloat64("price")
	imageURL, _ := cmd.Flags().GetString("image-url")

	return app.syncer.CreateFrame(context.Background(), name, price, imageURL)
}
