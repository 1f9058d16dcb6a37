package cmd

import (
	"context"
	"fmt"
	"time"

	"keyless-stay/constants"
	"keyless-stay/database"
	"keyless-stay/logger"
	accessCodeService "keyless-stay/services/access_code"

	"github.com/spf13/cobra"
)

func CleanupCodesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cleanup-codes",
		Short: "Mark expired access codes of a property as revoked",
		RunE: func(cmd *cobra.Command, args []string) error {
			propertyID, _ := cmd.Flags().GetString("property")
			if propertyID == "" {
				return fmt.Errorf("--property is required")
			}

			cfg := loadConfig()
			db, err := database.Connect(cfg)
			if err != nil {
				return err
			}

			accessCodes := accessCodeService.NewAccessCodeService(db, cfg.AccessCodeLength, time.Duration(cfg.AccessCodeGraceHours)*time.Hour, nil)
			count, err := accessCodes.CleanupExpired(context.Background(), propertyID, constants.ActorSystem)
			if err != nil {
				return err
			}

			logger.Success(fmt.Sprintf("Cleaned up %d expired access codes for property %s", count, propertyID))
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", count)
			return nil
		},
	}

	cmd.Flags().String("property", "", "Property ID whose expired codes are cleaned up")

	return cmd
}
