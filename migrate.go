package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/FlorianPALVADEAU/Overbound-sub003/config"
	"github.com/FlorianPALVADEAU/Overbound-sub003/pkg/database"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db := database.NewPostgresDB(cfg.DSN())
			if err := database.Migrate(db); err != nil {
				return err
			}
			log.Printf("schema up to date")
			return nil
		},
	}
}
