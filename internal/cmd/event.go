package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ksoares/evreg/internal/config"
	"github.com/ksoares/evreg/internal/registry"
	"github.com/ksoares/evreg/internal/style"
)

var eventCmd = &cobra.Command{
	Use:     "event",
	GroupID: GroupEvents,
	Short:   "Manage events",
	Long: `Create and inspect events.

Every event gets a sequential numeric ID on creation. Listings show the
current order: creation order by default, date order after 'evreg sort'.

Examples:
  evreg event add --name "Spring Show" --when "2025-12-31 20:30"
  evreg event list
  evreg event status 3`,
	RunE: requireSubcommand,
}

var eventAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a new event",
	Long: `Register a new event. The start time uses the fixed pattern
"2006-01-02 15:04" (year-month-day hour:minute), interpreted in local time.

Example:
  evreg event add --name "Spring Show" --address "Main Arena" \
    --category show --when "2025-12-31 20:30" --desc "Year-end special"`,
	RunE: runEventAdd,
}

var eventListCmd = &cobra.Command{
	Use:   "list",
	Short: "List events in their current order",
	RunE:  runEventList,
}

var eventStatusCmd = &cobra.Command{
	Use:   "status <id>",
	Short: "Show whether an event is upcoming, ongoing, or past",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventStatus,
}

var sortCmd = &cobra.Command{
	Use:     "sort",
	GroupID: GroupEvents,
	Short:   "Reorder events by date, soonest first",
	Long: `Sort the event list ascending by start time and persist the new
order. Events with the same start time keep their relative order.`,
	RunE: runSort,
}

var (
	eventAddName     string
	eventAddAddress  string
	eventAddCategory string
	eventAddWhen     string
	eventAddDesc     string
)

func init() {
	rootCmd.AddCommand(eventCmd)
	rootCmd.AddCommand(sortCmd)
	eventCmd.AddCommand(eventAddCmd)
	eventCmd.AddCommand(eventListCmd)
	eventCmd.AddCommand(eventStatusCmd)

	eventAddCmd.Flags().StringVar(&eventAddName, "name", "", "Event name")
	eventAddCmd.Flags().StringVar(&eventAddAddress, "address", "", "Where the event takes place")
	eventAddCmd.Flags().StringVar(&eventAddCategory, "category", "", "Category (show, sport, culture, ...)")
	eventAddCmd.Flags().StringVar(&eventAddWhen, "when", "", "Start date and time, \"2006-01-02 15:04\"")
	eventAddCmd.Flags().StringVar(&eventAddDesc, "desc", "", "Description")
	eventAddCmd.MarkFlagRequired("name")
	eventAddCmd.MarkFlagRequired("when")
}

// parseWhen validates the fixed date pattern before anything reaches the
// registry, which only accepts already-parsed values.
func parseWhen(s string) (time.Time, error) {
	ts, err := time.ParseInLocation(registry.DateTimeLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want the form 2025-12-31 20:30", s)
	}
	return ts, nil
}

func runEventAdd(cmd *cobra.Command, args []string) error {
	startsAt, err := parseWhen(eventAddWhen)
	if err != nil {
		return err
	}

	reg, st, _, err := loadRegistry()
	if err != nil {
		return err
	}

	e := reg.CreateEvent(eventAddName, eventAddAddress, eventAddCategory, startsAt, eventAddDesc)
	saveRegistry(st, reg)

	fmt.Printf("%s Created event %s: %s\n", style.SuccessPrefix, style.Bold.Render(e.ID), e.Name)
	return nil
}

// printEventList renders the brief one-line-per-event listing. Shared with
// the board's non-TTY fallback.
func printEventList(reg *registry.Registry, cfg config.Config) {
	events := reg.Events()
	if len(events) == 0 {
		fmt.Println("No events registered. Run 'evreg event add' to create one.")
		return
	}

	now := time.Now()
	for _, e := range events {
		fmt.Printf("  %-3s %-30s %s  %-8s %s\n",
			e.ID, e.Name, e.StartsAt.Format(registry.DateTimeLayout),
			style.StatusBadge(e.StatusWithin(now, cfg.Duration())),
			style.Dim.Render(fmt.Sprintf("%s · %d going", e.Category, e.ParticipantCount())))
	}
}

func runEventList(cmd *cobra.Command, args []string) error {
	reg, _, cfg, err := loadRegistry()
	if err != nil {
		return err
	}
	printEventList(reg, cfg)
	return nil
}

func runEventStatus(cmd *cobra.Command, args []string) error {
	reg, _, cfg, err := loadRegistry()
	if err != nil {
		return err
	}

	e, ok := reg.FindEventByID(args[0])
	if !ok {
		return fmt.Errorf("event '%s' not found", args[0])
	}

	status := e.StatusWithin(time.Now(), cfg.Duration())
	fmt.Printf("%s %s\n", style.Bold.Render("Event:"), e.Name)
	fmt.Printf("%s %s\n", style.Bold.Render("When:"), e.StartsAt.Format(registry.DateTimeLayout))
	fmt.Printf("%s %s\n", style.Bold.Render("Status:"), style.StatusBadge(status))
	return nil
}

func runSort(cmd *cobra.Command, args []string) error {
	reg, st, _, err := loadRegistry()
	if err != nil {
		return err
	}

	reg.SortEventsByDate()
	saveRegistry(st, reg)
	fmt.Printf("%s Events sorted by date, soonest first\n", style.SuccessPrefix)
	return nil
}
