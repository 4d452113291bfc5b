// Command storefront runs the storefront backend-for-frontend and manages the
// local session from the terminal.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront client for the shop API",
		SilenceUsage:  true,
	}
	root.AddCommand(serveCmd(), signInCmd(), signUpCmd(), signOutCmd(), whoamiCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
