package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pr-poehali-dev/fteam-dark-site/internal/syncer"
	"github.com/pr-poehali-dev/fteam-dark-site/storefront"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Browse and publish games",
}

var storeGamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List the approved game catalog",
	RunE:  runStoreGames,
}

var storeFeaturedCmd = &cobra.Command{
	Use:   "featured",
	Short: "List featured games",
	RunE:  runStoreFeatured,
}

var storePublishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Submit a game for moderation",
	Long: `Submit a new game. Title, description and price are required; the
game stays pending until an administrator approves it.

Examples:
  fteam store publish --title "Puzzle Master" --description "desc" --price 199
  fteam store publish --title "Racer" --description "fast" --price 399 --genre racing`,
	RunE: runStorePublish,
}

func init() {
	storePublishCmd.Flags().String("title", "", "game title")
	storePublishCmd.Flags().String("description", "", "game description")
	storePublishCmd.Flags().String("price", "", "price in rubles")
	storePublishCmd.Flags().String("genre", "", "genre")
	storePublishCmd.Flags().String("age-rating", "", "age rating")
	storePublishCmd.Flags().String("developer-email", "", "developer contact email")
	storePublishCmd.Flags().String("file-url", "", "download URL")
	storePublishCmd.Flags().String("logo-url", "", "logo image URL")
	storePublishCmd.Flags().StringSlice("screenshot", nil, "screenshot URL (repeatable)")

	storeCmd.AddCommand(storeGamesCmd)
	storeCmd.AddCommand(storeFeaturedCmd)
	storeCmd.AddCommand(storePublishCmd)
	rootCmd.AddCommand(storeCmd)
}

func printGames(games []storefront.Game) error {
	if jsonOut {
		return printJSON(map[string]interface{}{"games": games, "count": len(games)})
	}
	if len(games) == 0 {
		fmt.Println("No games found")
		return nil
	}
	for _, game := range games {
		marker := ""
		if game.IsFeatured {
			marker = " ★"
		}
		fmt.Printf("#%d %s%s — %.2f ₽\n", game.ID, game.Title, marker, game.Price)
		fmt.Printf("    %s\n", game.Description)
		if game.PublisherUsername != "" {
			fmt.Printf("    by @%s\n", game.PublisherUsername)
		}
	}
	return nil
}

func runStoreGames(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	if err := app.syncer.RefreshApprovedGames(context.Background()); err != nil {
		return err
	}
	return printGames(app.syncer.State().ApprovedGames())
}

func runStoreFeatured(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	if err := app.syncer.RefreshFeatured(context.Background()); err != nil {
		return err
	}
	return printGames(app.syncer.State().FeaturedGames())
}

func runStorePublish(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	price, _ := cmd.Flags().GetString("price")
	genre, _ := cmd.Flags().GetString("genre")
	ageRating, _ := cmd.Flags().GetString("age-rating")
	developerEmail, _ := cmd.Flags().GetString("developer-email")
	fileURL, _ := cmd.Flags().GetString("file-url")
	logoURL, _ := cmd.Flags().GetString("logo-url")
	screenshots, _ := cmd.Flags().GetStringSlice("screenshot")

	return app.syncer.PublishGame(context.Background(), syncer.PublishForm{
		Title:          title,
		Description:    description,
		Price:          price,
		Genre:          genre,
		AgeRating:      ageRating,
		DeveloperEmail: developerEmail,
		FileURL:        fileURL,
		LogoURL:        logoURL,
		Screenshots:    screenshots,
	})
}
