package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with email and password",
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the local session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	registerCmd.Flags().String("email", "", "account email")
	registerCmd.Flags().String("username", "", "account username")
	registerCmd.Flags().String("password", "", "account password")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("username")
	_ = registerCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	return app.syncer.Login(context.Background(), email, password)
}

func runRegister(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	email, _ := cmd.Flags().GetString("email")
	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")

	return app.syncer.Register(context.Background(), email, username, password)
}

func runLogout(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	app.syncer.Logout()
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	user := app.syncer.State().User()
	if user == nil {
		fmt.Println("Not signed in")
		return nil
	}

	if jsonOut {
		return printJSON(user)
	}

	fmt.Printf("%s (@%s)\n", user.DisplayName, user.Username)
	fmt.Printf("  Email:    %s\n", user.Email)
	fmt.Printf("  Balance:  %.2f ₽\n", user.Balance)
	fmt.Printf("  Role:     %s\n", user.Role)
	if user.IsVerified {
		fmt.Println("  Verified: yes")
	}
	if user.IsBanned {
		fmt.Println("  Banned:   yes")
	}
	return nil
}
