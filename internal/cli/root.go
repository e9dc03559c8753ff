// Package cli implements the fteam command tree. Commands render state
// held by the syncer; they never talk to the services directly.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pr-poehali-dev/fteam-dark-site/internal/config"
	"github.com/pr-poehali-dev/fteam-dark-site/internal/logging"
	"github.com/pr-poehali-dev/fteam-dark-site/internal/notify"
	"github.com/pr-poehali-dev/fteam-dark-site/internal/session"
	"github.com/pr-poehali-dev/fteam-dark-site/internal/state"
	"github.com/pr-poehali-dev/fteam-dark-site/internal/syncer"
	"github.com/pr-poehali-dev/fteam-dark-site/storefront"
)

var (
	cfgFile string
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:   "fteam",
	Short: "FTeam storefront client",
	Long: `Command-line client for the FTeam digital goods marketplace.

Browse the game catalog, manage your cosmetic frames, trade on the peer
marketplace and run the moderation console, all against the FTeam backend
services.

Examples:
  fteam login --email you@example.com --password secret
  fteam store games
  fteam frames buy 3
  fteam market sell --type frame --item 3 --price 150`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/fteam/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "print machine-readable JSON output")
}

// Execute runs the command tree.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

// app bundles everything a command needs.
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	syncer *syncer.Syncer
}

// getApp builds the client stack and restores the persisted session.
func getApp() (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return nil, err
	}

	client := storefront.NewClient(storefront.Endpoints{
		Auth:   cfg.AuthURL,
		Users:  cfg.UsersURL,
		Games:  cfg.GamesURL,
		Frames: cfg.FramesURL,
		Market: cfg.MarketURL,
	}, storefront.WithTimeout(cfg.HTTPTimeout))

	store, err := session.NewStore(cfg.SessionPath)
	if err != nil {
		return nil, err
	}

	notifier := &notify.Console{Out: os.Stdout, Err: os.Stderr}
	sync := syncer.New(client, store, state.New(), notifier, log)
	sync.Restore()

	return &app{cfg: cfg, log: log, syncer: sync}, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
