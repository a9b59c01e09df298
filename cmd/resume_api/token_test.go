package main

import (
	"strings"
	"testing"

	"github.com/jonathan/resume-match/internal/config"
	"github.com/jonathan/resume-match/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken(t *testing.T) {
	resetFlags(t)
	t.Setenv("JWT_SECRET_KEY", "token-test-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "2")
	tokenSubject = "frontend"

	cmd, out := newTestCommand()
	require.NoError(t, runToken(cmd, nil))

	token := strings.TrimSpace(out.String())
	service := server.NewJWTService(&config.JWTConfig{Secret: "token-test-secret", ExpirationHours: 2})
	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "frontend", claims.TokenSubject())
}

func TestToken_DefaultSecretWarning(t *testing.T) {
	resetFlags(t)
	t.Setenv("JWT_SECRET_KEY", "")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cmd, out, errOut := newTestCommandWithStderr()
	require.NoError(t, runToken(cmd, nil))
	assert.Contains(t, errOut.String(), "development secret")
	assert.NotEmpty(t, strings.TrimSpace(out.String()))
}

func TestToken_InvalidExpiration(t *testing.T) {
	resetFlags(t)
	t.Setenv("JWT_EXPIRATION_HOURS", "soon")

	cmd, _ := newTestCommand()
	assert.ErrorContains(t, runToken(cmd, nil), "JWT_EXPIRATION_HOURS")
}
