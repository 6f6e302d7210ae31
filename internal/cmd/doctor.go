package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ksoares/evreg/internal/doctor"
	"github.com/ksoares/evreg/internal/style"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the data file for problems",
	Long: `Run health checks over the persisted registry: the data file parses,
the event ID counter is ahead of every issued ID, user emails are unique,
and participant entries are normalized.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}

	fmt.Printf("Checking %s\n\n", style.Dim.Render(st.Path()))

	failed := 0
	for _, r := range doctor.Run(st) {
		prefix := style.SuccessPrefix
		switch r.Status {
		case doctor.StatusWarning:
			prefix = style.WarningPrefix
		case doctor.StatusError:
			prefix = style.ErrorPrefix
			failed++
		}
		fmt.Printf("%s %s: %s\n", prefix, style.Bold.Render(r.Name), r.Message)
		if r.FixHint != "" {
			fmt.Printf("  %s\n", style.Dim.Render(r.FixHint))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	return nil
}
