package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pr-poehali-dev/fteam-dark-site/storefront"
)

var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "Trade owned games and frames with other users",
}

var marketListCmd = &cobra.Command{
	Use:   "list",
	Short: "List active marketplace listings",
	RunE:  runMarketList,
}

var marketSellCmd = &cobra.Command{
	Use:   "sell",
	Short: "List an owned item for sale",
	Long: `Create a resale listing for an item you own.

Examples:
  fteam market sell --type frame --item 3 --price 150
  fteam market sell --type game --item 12 --price 299`,
	RunE: runMarketSell,
}

var marketBuyCmd = &cobra.Command{
	Use:   "buy <listing-id>",
	Short: "Buy a marketplace listing",
	Args:  cobra.ExactArgs(1),
	RunE:  runMarketBuy,
}

var marketCancelCmd = &cobra.Command{
	Use:   "cancel <listing-id>",
	Short: "Withdraw one of your listings",
	Args:  cobra.ExactArgs(1),
	RunE:  runMarketCancel,
}

func init() {
	marketSellCmd.Flags().String("type", "", "item type: game or frame")
	marketSellCmd.Flags().Int64("item", 0, "item id")
	marketSellCmd.Flags().Float64("price", 0, "asking price in rubles")
	_ = marketSellCmd.MarkFlagRequired("type")
	_ = marketSellCmd.MarkFlagRequired("item")
	_ = marketSellCmd.MarkFlagRequired("price")

	marketCmd.AddCommand(marketListCmd)
	marketCmd.AddCommand(marketSellCmd)
	marketCmd.AddCommand(marketBuyCmd)
	marketCmd.AddCommand(marketCancelCmd)
	rootCmd.AddCommand(marketCmd)
}

func runMarketList(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	if err := app.syncer.RefreshMarketplace(context.Background()); err != nil {
		return err
	}

	items := app.syncer.State().Listings()
	if jsonOut {
		return printJSON(map[string]interface{}{"items": items, "count": len(items)})
	}
	if len(items) == 0 {
		fmt.Println("No active listings")
		return nil
	}
	for _, item := range items {
		fmt.Printf("#%d [%s] %s — %.2f ₽ (seller @%s)\n",
			item.ID, item.ItemType, item.ItemName, item.Price, item.SellerUsername)
	}
	return nil
}

func runMarketSell(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	itemType, _ := cmd.Flags().GetString("type")
	itemID, _ := cmd.Flags().GetInt64("item")
	price, _ := cmd.Flags().GetFloat64("price")

	switch storefront.ItemType(itemType) {
	case storefront.ItemTypeGame, storefront.ItemTypeFrame:
	default:
		return fmt.Errorf("invalid item type %q: must be game or frame", itemType)
	}

	return app.syncer.SellItem(context.Background(), storefront.ItemType(itemType), itemID, price)
}

func runMarketBuy(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	listingID, err := parseID(args[0])
	if err != nil {
		return err
	}

	return app.syncer.BuyMarketItem(context.Background(), listingID)
}

func runMarketCancel(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	listingID, err := parseID(args[0])
	if err != nil {
		return err
	}

	return app.syncer.CancelListing(context.Background(), listingID)
}
