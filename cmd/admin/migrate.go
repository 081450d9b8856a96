package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"go-gin-gorm-blog/internal/core/database"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withDB(func(db *gorm.DB) error {
				if err := database.Migrate(db); err != nil {
					return err
				}
				a.log.Info("automigrate done")
				fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
				return nil
			})
		},
	}
}
