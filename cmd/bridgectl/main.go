// Command bridgectl is the operator tool for the provider bridge: it seals
// and opens envelopes with configured tenant keys and mints new tenants.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bridgectl",
		Short:         "bridgectl - operator tool for the provider bridge",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to config.yaml")

	rootCmd.AddCommand(sealCmd())
	rootCmd.AddCommand(openCmd())
	rootCmd.AddCommand(tenantCmd())
	return rootCmd
}
