package main

import (
	"os"

	"github.com/spf13/cobra"
)

const serviceName = "race-registration"

func main() {
	root := &cobra.Command{
		Use:          serviceName,
		Short:        "Overbound ticket sales, fulfillment and check-in",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newDigestCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
