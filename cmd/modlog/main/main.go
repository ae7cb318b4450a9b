package main

import (
	"os"

	"github.com/arthur-debert/modlog/cmd/modlog"
)

func main() {
	rootCmd := modlog.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		modlog.ReportError(os.Stderr, err)
		os.Exit(1)
	}
}
