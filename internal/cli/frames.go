package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pr-poehali-dev/fteam-dark-site/storefront"
)

var framesCmd = &cobra.Command{
	Use:   "frames",
	Short: "Browse, buy and activate avatar frames",
}

var framesCatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List frames available for purchase",
	RunE:  runFramesCatalog,
}

var framesOwnedCmd = &cobra.Command{
	Use:   "owned",
	Short: "List your frames",
	RunE:  runFramesOwned,
}

var framesBuyCmd = &cobra.Command{
	Use:   "buy <frame-id>",
	Short: "Buy a frame from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE:  runFramesBuy,
}

var framesActivateCmd = &cobra.Command{
	Use:   "activate <frame-id>",
	Short: "Set one of your frames active",
	Args:  cobra.ExactArgs(1),
	RunE:  runFramesActivate,
}

func init() {
	framesCmd.AddCommand(framesCatalogCmd)
	framesCmd.AddCommand(framesOwnedCmd)
	framesCmd.AddCommand(framesBuyCmd)
	framesCmd.AddCommand(framesActivateCmd)
	rootCmd.AddCommand(framesCmd)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func printFrames(frames []storefront.Frame, withActive bool) error {
	if jsonOut {
		return printJSON(map[string]interface{}{"frames": frames, "count": len(frames)})
	}
	if len(frames) == 0 {
		fmt.Println("No frames found")
		return nil
	}
	for _, frame := range frames {
		marker := ""
		if withActive && frame.IsActive {
			marker = " (active)"
		}
		fmt.Printf("#%d %s — %.2f ₽%s\n", frame.ID, frame.Name, frame.Price, marker)
	}
	return nil
}

func runFramesCatalog(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	if err := app.syncer.RefreshFrameCatalog(context.Background()); err != nil {
		return err
	}
	return printFrames(app.syncer.State().FrameCatalog(), false)
}

func runFramesOwned(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	if err := app.syncer.RefreshOwnedFrames(context.Background()); err != nil {
		return err
	}
	return printFrames(app.syncer.State().OwnedFrames(), true)
}

func runFramesBuy(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	frameID, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	// The balance guard needs the catalog price.
	if err := app.syncer.RefreshFrameCatalog(ctx); err != nil {
		return err
	}
	return app.syncer.BuyFrame(ctx, frameID)
}

func runFramesActivate(cmd *cobra.Command, args []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	frameID, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	// The ownership guard needs the owned set.
	if err := app.syncer.RefreshOwnedFrames(ctx); err != nil {
		return err
	}
	return app.syncer.SetActiveFrame(ctx, frameID)
}
