package cli

import (
	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/spf13/cobra"
)

func (a *App) pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			if err := a.client.Ping(ctx); err != nil {
				return err
			}
			a.printf("Server %s is up\n", a.config.ServerEndpointAddr)
			return nil
		},
	}
}

func (a *App) registerCmd() *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if name == "" {
				if name, err = GetSimpleText(a.reader, "Enter user name", a.out); err != nil {
					return err
				}
			}
			if email == "" {
				if email, err = GetSimpleText(a.reader, "Enter email", a.out); err != nil {
					return err
				}
			}
			password, err := GetPassword(a.out)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			id, err := a.client.Register(ctx, name, email, password)
			if err != nil {
				return err
			}
			a.printf("Registered %s (id %s)\n", name, id)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "user name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	return cmd
}

func (a *App) loginCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if name == "" {
				if name, err = GetSimpleText(a.reader, "Enter user name", a.out); err != nil {
					return err
				}
			}
			password, err := GetPassword(a.out)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			if err := a.client.Login(ctx, name, password); err != nil {
				return err
			}
			a.printf("Logged in as %s\n", name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "user name")
	return cmd
}

func (a *App) refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Get a new access token with the stored refresh token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			if err := a.client.Refresh(ctx); err != nil {
				return err
			}
			a.printf("Access token refreshed\n")
			return nil
		},
	}
}

func (a *App) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the access token and forget the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			if err := a.client.Logout(ctx); err != nil {
				return err
			}
			a.printf("Logged out\n")
			return nil
		},
	}
}
