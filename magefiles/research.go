//go:build mage

package main

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// Research builds the CLI and runs a sample conversion query against the
// local development archive.
func Research() error {
	mg.Deps(Init, Build)

	cmd := exec.Command(filepath.Join(binDir, binName),
		"research", "checkout button design",
		"--focus", "conversion",
		"--history", filepath.Join("data", "history.db"))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
