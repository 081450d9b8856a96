package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"go-gin-gorm-blog/internal/domain"
	"go-gin-gorm-blog/internal/repo"
)

func newUsersCmd(a *app) *cobra.Command {
	var role string
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List accounts of one role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := domain.ParseRole(role)
			if err != nil {
				return err
			}
			return a.withDB(func(db *gorm.DB) error {
				users, err := repo.NewUserRepo(db).ListByRole(cmd.Context(), r)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tCREATED")
				for _, u := range users {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
						u.ID, u.Ref().FullName(), u.Email, u.Role, u.CreatedAt.Format("2006-01-02"))
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&role, "role", "author", "author | reader")
	return cmd
}
