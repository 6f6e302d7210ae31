// The evreg command is a console registry for events and attendees.
package main

import (
	"fmt"
	"os"

	"github.com/ksoares/evreg/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "evreg: %v\n", err)
		os.Exit(1)
	}
}
