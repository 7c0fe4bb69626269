package service

import (
	"testing"

	"github.com/handmade-next/internal/config"
	"github.com/handmade-next/internal/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenServiceIssueAndParse(t *testing.T) {
	svc := NewTokenService(config.JWTConfig{SecretKey: "test-secret", Issuer: "handmade-test", ExpireHours: 1})

	token, expiresAt, err := svc.Issue(Actor{ID: "seller-7", Username: "lan", Role: "Seller"})
	require.NoError(t, err)
	assert.False(t, expiresAt.IsZero())

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	actor := claims.Actor()
	assert.Equal(t, "seller-7", actor.ID)
	assert.Equal(t, constants.RoleSeller, actor.Role)
	assert.True(t, actor.IsSeller())
}

func TestTokenServiceRejectsForeignSecretAndRole(t *testing.T) {
	issuer := NewTokenService(config.JWTConfig{SecretKey: "a", Issuer: "handmade-test"})
	verifier := NewTokenService(config.JWTConfig{SecretKey: "b", Issuer: "handmade-test"})

	token, _, err := issuer.Issue(Actor{ID: "1", Role: constants.RoleCustomer})
	require.NoError(t, err)
	_, err = verifier.Parse(token)
	assert.Error(t, err)

	_, _, err = issuer.Issue(Actor{ID: "1", Role: "root"})
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestActorCanManage(t *testing.T) {
	admin := Actor{ID: "a1", Role: constants.RoleAdmin}
	seller := Actor{ID: "s1", Role: constants.RoleSeller}

	assert.True(t, admin.CanManage("s2"))
	assert.True(t, seller.CanManage("s1"))
	assert.False(t, seller.CanManage("s2"))
	assert.False(t, Actor{Role: constants.RoleSeller}.CanManage(""))
	assert.Equal(t, "s1", seller.AuditName())
}
