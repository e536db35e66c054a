// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

package sec

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestKeyPair generates a throwaway RSA key pair on disk for the test.
func writeTestKeyPair(t *testing.T) (privatePath, publicPath string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	privatePath = filepath.Join(dir, "jwt_private.pem")
	publicPath = filepath.Join(dir, "jwt_public.pem")

	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	require.NoError(t, os.WriteFile(privatePath, privatePEM, 0o600))

	publicBytes, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: publicBytes,
	})
	require.NoError(t, os.WriteFile(publicPath, publicPEM, 0o600))

	return privatePath, publicPath
}

func TestTokenRoundTrip(t *testing.T) {
	privatePath, publicPath := writeTestKeyPair(t)

	service, err := NewTokenService(privatePath, publicPath, "revuo.test")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("u-1", "reader", "moderator", false, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "reader", claims.Username)
	assert.Equal(t, "moderator", claims.Role)
	assert.False(t, claims.IsSuperuser)
	assert.Equal(t, "revuo.test", claims.Issuer)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	privatePath, publicPath := writeTestKeyPair(t)

	service, err := NewTokenService(privatePath, publicPath, "revuo.test")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("u-1", "reader", "user", false, -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	privatePath, publicPath := writeTestKeyPair(t)

	service, err := NewTokenService(privatePath, publicPath, "revuo.test")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("u-1", "reader", "user", false, time.Hour)
	require.NoError(t, err)

	_, err = service.VerifyToken(token + "x")
	assert.Error(t, err)
}

func TestVerifyRejectsTokenFromOtherKeyPair(t *testing.T) {
	privatePathA, publicPathA := writeTestKeyPair(t)
	privatePathB, publicPathB := writeTestKeyPair(t)

	serviceA, err := NewTokenService(privatePathA, publicPathA, "revuo.test")
	require.NoError(t, err)
	serviceB, err := NewTokenService(privatePathB, publicPathB, "revuo.test")
	require.NoError(t, err)

	token, err := serviceA.GenerateAccessToken("u-1", "reader", "user", false, time.Hour)
	require.NoError(t, err)

	_, err = serviceB.VerifyToken(token)
	assert.Error(t, err)
}
