package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ksoares/evreg/internal/identity"
	"github.com/ksoares/evreg/internal/registry"
	"github.com/ksoares/evreg/internal/style"
)

var joinCmd = &cobra.Command{
	Use:     "join <event-id> [email]",
	GroupID: GroupPeople,
	Short:   "Confirm attendance at an event",
	Long: `Add an email to an event's participant set.

The email defaults to the current user (see 'evreg user whoami').
Joining an event twice is a quiet no-op.

Examples:
  evreg join 3
  evreg join 3 bob@example.com`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runJoin,
}

var leaveCmd = &cobra.Command{
	Use:     "leave <event-id> [email]",
	GroupID: GroupPeople,
	Short:   "Cancel attendance at an event",
	Args:    cobra.RangeArgs(1, 2),
	RunE:    runLeave,
}

var mineCmd = &cobra.Command{
	Use:     "mine [email]",
	GroupID: GroupPeople,
	Short:   "List events an email is confirmed for",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runMine,
}

func init() {
	rootCmd.AddCommand(joinCmd)
	rootCmd.AddCommand(leaveCmd)
	rootCmd.AddCommand(mineCmd)
}

// resolveEmail picks the acting email: an explicit argument at position idx,
// or the current user.
func resolveEmail(args []string, idx int) (string, error) {
	if len(args) > idx {
		return registry.NormalizeEmail(args[idx]), nil
	}
	if email := identity.Current(); email != "" {
		return email, nil
	}
	return "", fmt.Errorf("no email given and no current user set; run 'evreg user switch <email>' or pass the email")
}

func runJoin(cmd *cobra.Command, args []string) error {
	email, err := resolveEmail(args, 1)
	if err != nil {
		return err
	}

	reg, st, _, err := loadRegistry()
	if err != nil {
		return err
	}

	e, ok := reg.FindEventByID(args[0])
	if !ok {
		return fmt.Errorf("event '%s' not found", args[0])
	}

	// Any email may join; a heads-up when it is not a registered user.
	if _, registered := reg.FindUserByEmail(email); !registered {
		fmt.Println(style.Dim.Render(fmt.Sprintf("note: %s is not a registered user", email)))
	}

	if !reg.JoinEvent(email, e.ID) {
		fmt.Printf("%s %s is already confirmed for '%s'\n", style.ArrowPrefix, email, e.Name)
		return nil
	}

	saveRegistry(st, reg)
	fmt.Printf("%s %s confirmed for '%s'\n", style.SuccessPrefix, email, e.Name)
	return nil
}

func runLeave(cmd *cobra.Command, args []string) error {
	email, err := resolveEmail(args, 1)
	if err != nil {
		return err
	}

	reg, st, _, err := loadRegistry()
	if err != nil {
		return err
	}

	e, ok := reg.FindEventByID(args[0])
	if !ok {
		return fmt.Errorf("event '%s' not found", args[0])
	}

	if !reg.LeaveEvent(email, e.ID) {
		fmt.Printf("%s %s was not confirmed for '%s'\n", style.ArrowPrefix, email, e.Name)
		return nil
	}

	saveRegistry(st, reg)
	fmt.Printf("%s %s left '%s'\n", style.SuccessPrefix, email, e.Name)
	return nil
}

func runMine(cmd *cobra.Command, args []string) error {
	email, err := resolveEmail(args, 0)
	if err != nil {
		return err
	}

	reg, _, cfg, err := loadRegistry()
	if err != nil {
		return err
	}

	events := reg.EventsForUser(email)
	if len(events) == 0 {
		fmt.Printf("%s is not confirmed for any event.\n", email)
		return nil
	}

	fmt.Printf("Events %s is confirmed for:\n", style.Bold.Render(email))
	for _, e := range events {
		fmt.Printf("  %-3s %-30s %s  %s\n",
			e.ID, e.Name, e.StartsAt.Format(registry.DateTimeLayout),
			style.StatusBadge(e.StatusWithin(time.Now(), cfg.Duration())))
	}
	return nil
}
