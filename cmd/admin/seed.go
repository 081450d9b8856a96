package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gin-gorm-blog/internal/core/database"
	"go-gin-gorm-blog/internal/seed"
)

func newSeedCmd(a *app) *cobra.Command {
	var (
		file    string
		migrate bool
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load fixture users, categories, blogs and engagement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fx, err := seed.Load(file)
			if err != nil {
				return err
			}
			return a.withDB(func(db *gorm.DB) error {
				if migrate {
					if err := database.Migrate(db); err != nil {
						return err
					}
				}
				res, err := seed.Apply(cmd.Context(), db, fx, a.cfg.Limits.BcryptCost, a.log)
				if err != nil {
					return err
				}
				a.log.Info("seed done", zap.String("file", file))
				fmt.Fprintf(cmd.OutOrStdout(), "users=%d categories=%d blogs=%d comments=%d likes=%d\n",
					res.Users, res.Categories, res.Blogs, res.Comments, res.Likes)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "./configs/seed.example.yaml", "fixture yaml")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "run migrate before seeding")
	return cmd
}
