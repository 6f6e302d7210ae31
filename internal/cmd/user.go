package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ksoares/evreg/internal/identity"
	"github.com/ksoares/evreg/internal/registry"
	"github.com/ksoares/evreg/internal/style"
)

var userCmd = &cobra.Command{
	Use:     "user",
	GroupID: GroupPeople,
	Short:   "Manage registered users",
	Long: `Manage the users registered in the event registry.

Each user is identified by email, case-insensitively. Participation
commands (join, leave, mine) default to the current user.

Examples:
  evreg user list                   # Show all users
  evreg user whoami                 # Show the current user
  evreg user add alice@example.com  # Register a user
  evreg user switch bob@example.com # Act as another user`,
	RunE: requireSubcommand,
}

var userAddCmd = &cobra.Command{
	Use:   "add <email>",
	Short: "Register a new user",
	Long: `Register a new user identified by email.

If --name is not provided, it is detected from git config or the
OS environment.

Examples:
  evreg user add alice@example.com --name "Alice Smith" --age 30
  evreg user add bob@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runUserAdd,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all registered users",
	Long: `List every registered user with name, email, and age.

The current user is marked with an asterisk (*).`,
	RunE: runUserList,
}

var userWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current user",
	Long: `Show the email the participation commands act as.

The current user is determined by:
1. EVREG_USER environment variable
2. ~/.evreg-user file`,
	RunE: runUserWhoami,
}

var userSwitchCmd = &cobra.Command{
	Use:   "switch <email>",
	Short: "Act as a different user",
	Long: `Set the current user for future join, leave, and mine commands.

The email must belong to a registered user.

Example:
  evreg user switch alice@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runUserSwitch,
}

var (
	userAddName string
	userAddAge  int
)

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userWhoamiCmd)
	userCmd.AddCommand(userSwitchCmd)

	userAddCmd.Flags().StringVar(&userAddName, "name", "", "Display name for the user")
	userAddCmd.Flags().IntVar(&userAddAge, "age", 0, "Age in years")
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	email := strings.TrimSpace(args[0])

	reg, st, _, err := loadRegistry()
	if err != nil {
		return err
	}

	name := userAddName
	if name == "" {
		name = identity.DetectName()
	}
	if name == "" {
		name = email
	}

	u, err := reg.RegisterUser(name, email, userAddAge)
	if err != nil {
		if errors.Is(err, registry.ErrDuplicateEmail) {
			return fmt.Errorf("a user with email '%s' is already registered", registry.NormalizeEmail(email))
		}
		return err
	}

	saveRegistry(st, reg)
	fmt.Printf("%s Registered user '%s'\n", style.SuccessPrefix, u.Email)

	// The first user becomes the current one.
	if len(reg.Users()) == 1 {
		if err := identity.Set(u.Email); err == nil {
			fmt.Printf("%s Set as current user\n", style.SuccessPrefix)
		}
	}
	return nil
}

func runUserList(cmd *cobra.Command, args []string) error {
	reg, _, _, err := loadRegistry()
	if err != nil {
		return err
	}

	users := reg.Users()
	if len(users) == 0 {
		fmt.Println("No users registered. Run 'evreg user add <email>' to add the first one.")
		return nil
	}

	current := identity.Current()
	for _, u := range users {
		marker := "  "
		if u.Email == current {
			marker = "* "
		}
		display := u.Email
		if u.Name != "" && u.Name != u.Email {
			display = fmt.Sprintf("%s <%s>", u.Name, u.Email)
		}
		if u.Age > 0 {
			display += fmt.Sprintf(", %d", u.Age)
		}
		fmt.Printf("  %s%s\n", marker, display)
	}
	return nil
}

func runUserWhoami(cmd *cobra.Command, args []string) error {
	current := identity.Current()
	if current == "" {
		fmt.Println(style.Dim.Render("No current user set."))
		fmt.Println("Run 'evreg user switch <email>' or set the EVREG_USER environment variable.")
		if detected := identity.DetectEmail(); detected != "" {
			fmt.Printf("%s git config suggests: %s\n", style.ArrowPrefix, detected)
		}
		return nil
	}

	fmt.Printf("%s %s\n", style.Bold.Render("Current user:"), current)

	// The detail block is best effort: whoami answers from identity alone,
	// so a registry that cannot be opened only costs the name and age lines.
	reg, _, _, err := loadRegistry()
	if err != nil {
		return nil
	}
	if u, ok := reg.FindUserByEmail(current); ok {
		if u.Name != "" && u.Name != u.Email {
			fmt.Printf("  Name: %s\n", u.Name)
		}
		if u.Age > 0 {
			fmt.Printf("  Age:  %d\n", u.Age)
		}
	} else {
		fmt.Println(style.Dim.Render("  (not registered in this registry)"))
	}
	return nil
}

func runUserSwitch(cmd *cobra.Command, args []string) error {
	email := registry.NormalizeEmail(args[0])

	reg, _, _, err := loadRegistry()
	if err != nil {
		return err
	}
	if _, ok := reg.FindUserByEmail(email); !ok {
		return fmt.Errorf("user '%s' not found. Run 'evreg user list' to see registered users", email)
	}

	if err := identity.Set(email); err != nil {
		return fmt.Errorf("switching user: %w", err)
	}
	fmt.Printf("%s Now acting as: %s\n", style.SuccessPrefix, email)
	return nil
}
