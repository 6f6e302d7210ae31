// Package identity resolves which email the participation commands act as,
// so "evreg join 3" works without retyping an address every time.
package identity

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ksoares/evreg/internal/registry"
)

// EnvVarUser is the environment variable for the current attendee email.
const EnvVarUser = "EVREG_USER"

// CurrentUserFileName stores the current attendee email persistently.
const CurrentUserFileName = ".evreg-user"

// Current determines the acting email from available context.
// Priority order:
//  1. EVREG_USER environment variable (explicit override)
//  2. ~/.evreg-user file
//
// Returns "" if no identity is set.
func Current() string {
	if email := os.Getenv(EnvVarUser); email != "" {
		return registry.NormalizeEmail(email)
	}
	if email, err := loadCurrentUserFile(); err == nil && email != "" {
		return registry.NormalizeEmail(email)
	}
	return ""
}

// Set records the acting email for this process and future invocations.
func Set(email string) error {
	email = registry.NormalizeEmail(email)
	if err := os.Setenv(EnvVarUser, email); err != nil {
		return fmt.Errorf("setting %s: %w", EnvVarUser, err)
	}
	return saveCurrentUserFile(email)
}

// DetectName attempts to find a display name for the user, from git config
// first and the OS environment second. Returns "" when nothing is found.
func DetectName() string {
	if out, err := exec.Command("git", "config", "user.name").Output(); err == nil {
		if name := strings.TrimSpace(string(out)); name != "" {
			return name
		}
	}
	return os.Getenv("USER")
}

// DetectEmail attempts to find an email address from git config.
func DetectEmail() string {
	out, err := exec.Command("git", "config", "user.email").Output()
	if err != nil {
		return ""
	}
	return registry.NormalizeEmail(string(out))
}

func currentUserFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, CurrentUserFileName)
}

func loadCurrentUserFile() (string, error) {
	path := currentUserFilePath()
	if path == "" {
		return "", fmt.Errorf("cannot determine home directory")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func saveCurrentUserFile(email string) error {
	path := currentUserFilePath()
	if path == "" {
		return fmt.Errorf("cannot determine home directory")
	}
	return os.WriteFile(path, []byte(email+"\n"), 0644)
}
