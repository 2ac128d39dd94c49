package main

import (
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/shop-api/internal/infra/repository"
	ucAuth "github.com/BruksfildServices01/shop-api/internal/usecase/auth"
)

func createAdminCmd(a *app) *cobra.Command {
	var in ucAuth.SignupInput

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account, or promote an existing user and reset its password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users := repository.NewUserGormRepository(a.db)

			u, created, err := ucAuth.NewCreateAdmin(users).Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			action := "promoted"
			if created {
				action = "created"
			}
			email := ""
			if u.Email != nil {
				email = *u.Email
			}

			a.log.WithField("username", u.Username).Info("admin " + action)

			return render(cmd.OutOrStdout(), []string{"action", "id", "username", "email", "role"}, [][]string{
				{action, u.ID, u.Username, email, u.Role},
			})
		},
	}

	cmd.Flags().StringVarP(&in.Username, "username", "u", "", "Admin username")
	cmd.Flags().StringVarP(&in.Password, "password", "p", "", "Admin password")
	cmd.Flags().StringVarP(&in.Email, "email", "e", "", "Admin email (optional)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
