package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/vartaverse/varta/cli/pkg/service"
)

var (
	loginEmail    string
	loginPassword string
	register      service.RegisterRequest
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  "Sign in to VartaVerse, create an account, or sign out",
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to VartaVerse",
	Long:  "Authenticate with email and password. Missing values are prompted for.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, env *service.Env) error {
			return service.NewAuthService(env).Login(ctx, loginEmail, loginPassword)
		})
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new VartaVerse account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, env *service.Env) error {
			return service.NewAuthService(env).Register(ctx, register)
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout from VartaVerse",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, env *service.Env) error {
			return service.NewAuthService(env).Logout()
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Aliases: []string{"me"},
	Short:   "Display the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, env *service.Env) error {
			return service.NewAuthService(env).WhoAmI(ctx)
		})
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")

	registerCmd.Flags().StringVar(&register.Email, "email", "", "Account email")
	registerCmd.Flags().StringVar(&register.Password, "password", "", "Account password (prompted when omitted)")
	registerCmd.Flags().StringVar(&register.Name, "name", "", "Display name")
	registerCmd.Flags().StringVar(&register.PhoneNumber, "phone", "", "Phone number")
	registerCmd.Flags().StringVar(&register.Bio, "bio", "", "Short bio")

	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(registerCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(whoamiCmd)
}
