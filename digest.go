package main

import (
	"errors"
	"log"

	"github.com/spf13/cobra"

	"github.com/FlorianPALVADEAU/Overbound-sub003/config"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/notify"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/repository"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/service"
	"github.com/FlorianPALVADEAU/Overbound-sub003/pkg/database"
)

func newDigestCmd() *cobra.Command {
	var to []string
	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Email admins the registrations whose documents await review",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			recipients := to
			if len(recipients) == 0 {
				recipients = cfg.AdminEmails
			}
			if len(recipients) == 0 {
				return errors.New("no recipients: set ADMIN_EMAILS or pass --to")
			}

			db := database.NewPostgresDB(cfg.DSN())
			digest := service.NewDigestService(
				repository.NewRegistrationRepository(db),
				notify.NewEmailNotifier(newMailSender(cfg)),
			)

			n, err := digest.SendApprovalDigest(cmd.Context(), recipients)
			if err != nil {
				return err
			}
			log.Printf("[Digest] %d pending document(s) reported to %d recipient(s)", n, len(recipients))
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&to, "to", nil, "override ADMIN_EMAILS")
	return cmd
}
