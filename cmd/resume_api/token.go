package main

import (
	"fmt"

	"github.com/jonathan/resume-match/internal/config"
	"github.com/jonathan/resume-match/internal/server"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for the API",
	Long:  "Mint an HS256 bearer token signed with JWT_SECRET_KEY, for use when the server runs with auth_required.",
	RunE:  runToken,
}

var tokenSubject string

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "dev", "Token subject")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}
	if jwtConfig.IsDefaultSecret() {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Warning: signing with the development secret; set JWT_SECRET_KEY")
	}

	token, err := server.NewJWTService(jwtConfig).GenerateToken(tokenSubject)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}
