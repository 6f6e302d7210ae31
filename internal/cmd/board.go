package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ksoares/evreg/internal/identity"
	"github.com/ksoares/evreg/internal/tui"
)

var boardCmd = &cobra.Command{
	Use:     "board",
	GroupID: GroupEvents,
	Short:   "Interactive event board",
	Long: `Open an interactive board: browse events, see live status, join or
leave with a keystroke. Changes are saved on quit.

When stdout is not a terminal, prints the plain event listing instead.`,
	RunE: runBoard,
}

func init() {
	rootCmd.AddCommand(boardCmd)
}

func runBoard(cmd *cobra.Command, args []string) error {
	reg, st, cfg, err := loadRegistry()
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		printEventList(reg, cfg)
		return nil
	}

	model := tui.New(reg, cfg.Duration(), identity.Current())
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("running board: %w", err)
	}

	if m, ok := final.(tui.Model); ok && m.Dirty() {
		saveRegistry(st, reg)
	}
	return nil
}
