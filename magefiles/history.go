//go:build mage

package main

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// History builds the CLI and lists the runs recorded in the local
// development archive.
func History() error {
	mg.Deps(Build)

	cmd := exec.Command(filepath.Join(binDir, binName),
		"history", "recent",
		"--db", filepath.Join("data", "history.db"))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
