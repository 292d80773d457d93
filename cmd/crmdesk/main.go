package main

import (
	"os"

	"github.com/spf13/cobra"

	"crmdesk/internal/interfaces/cli/migrate"
	"crmdesk/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "crmdesk",
		Short: "Support ticket desk for the contract CRM",
		Long:  `crmdesk serves the support-ticket HTTP API and its database migration tools.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
