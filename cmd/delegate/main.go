package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/delegate/internal/cli"
	"github.com/arthur-debert/delegate/pkg/ui/styles"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := styles.GetStyle("Fail")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
