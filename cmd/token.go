package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"parley/internal/pkg/jwt"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an API access token",
	Long:  `Sign a JWT access token for the given user with auth.jwt_secret.`,
	RunE:  runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().StringP("user", "u", "", "user id to embed in the token")
	_ = tokenCmd.MarkFlagRequired("user")
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if cfg.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is not configured (set PARLEY_AUTH_JWT_SECRET)")
	}

	userID, _ := cmd.Flags().GetString("user")
	token, err := jwt.NewJWT(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenExpiry).GenerateToken(userID)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
