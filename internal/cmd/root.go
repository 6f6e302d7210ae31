// Package cmd implements the evreg command tree.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ksoares/evreg/internal/config"
	"github.com/ksoares/evreg/internal/registry"
	"github.com/ksoares/evreg/internal/store"
	"github.com/ksoares/evreg/internal/style"
)

// Command group IDs for help output.
const (
	GroupPeople = "people"
	GroupEvents = "events"
)

var rootCmd = &cobra.Command{
	Use:   "evreg",
	Short: "Console registry for events and attendees",
	Long: `evreg keeps a small registry of users, events, and who is going where.

State lives in a single local file and is saved after every change.

Examples:
  evreg user add alice@example.com --name "Alice" --age 30
  evreg event add --name "Spring Show" --when "2025-12-31 20:30" --category show
  evreg join 1
  evreg event list`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupPeople, Title: "People:"},
		&cobra.Group{ID: GroupEvents, Title: "Events:"},
	)
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

// requireSubcommand is the RunE for commands that only group subcommands.
func requireSubcommand(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

// openStore resolves configuration and returns the store for the data file.
func openStore() (*store.Store, config.Config, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, cfg, err
	}
	path, err := cfg.ResolveDataPath()
	if err != nil {
		return nil, cfg, err
	}
	return store.New(path), cfg, nil
}

// loadRegistry opens the store and loads the registry, mentioning it when an
// existing data file had to be discarded.
func loadRegistry() (*registry.Registry, *store.Store, config.Config, error) {
	st, cfg, err := openStore()
	if err != nil {
		return nil, nil, cfg, err
	}
	reg, fresh := st.Load()
	if fresh {
		if _, statErr := os.Stat(st.Path()); statErr == nil {
			fmt.Printf("%s data file could not be read; starting with an empty registry\n",
				style.WarningPrefix)
		}
	}
	return reg, st, cfg, nil
}

// saveRegistry persists after a mutation. A failed save is a warning, never
// a failure: the in-memory state already reflects the change.
func saveRegistry(st *store.Store, reg *registry.Registry) {
	if err := st.Save(reg); err != nil {
		fmt.Printf("%s could not save registry: %v\n", style.WarningPrefix, err)
	}
}
