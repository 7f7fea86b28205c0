package contentd_test

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentd/contentd"
)

func TestUserContextRoundTrip(t *testing.T) {
	user := &contentd.User{ID: uuid.New(), Username: "alice"}

	ctx := contentd.WithContext(context.Background(), user)

	got, ok := contentd.FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, user, got)

	_, ok = contentd.FromContext(context.Background())
	assert.False(t, ok)
}

func TestClaimsContextRoundTrip(t *testing.T) {
	claims := &contentd.JWTClaims{UID: "u-1"}

	ctx := contentd.WithClaimsContext(context.Background(), claims)

	got, ok := contentd.GetClaims(ctx)
	require.True(t, ok)
	assert.Equal(t, "u-1", got.UserID())

	_, ok = contentd.GetClaims(context.Background())
	assert.False(t, ok)
}

func TestGetRouterClaims(t *testing.T) {
	claims := &contentd.JWTClaims{UID: "u-2"}

	t.Run("claims present", func(t *testing.T) {
		ctx := &MockContext{}
		ctx.On("Locals", "access_token").Return(claims)

		got, ok := contentd.GetRouterClaims(ctx, "access_token")
		require.True(t, ok)
		assert.Equal(t, "u-2", got.UserID())
	})

	t.Run("empty key falls back to the default", func(t *testing.T) {
		ctx := &MockContext{}
		ctx.On("Locals", "access_token").Return(claims)

		_, ok := contentd.GetRouterClaims(ctx, "")
		assert.True(t, ok)
	})

	t.Run("missing claims", func(t *testing.T) {
		ctx := &MockContext{}
		ctx.On("Locals", "access_token").Return(nil)

		_, ok := contentd.GetRouterClaims(ctx, "access_token")
		assert.False(t, ok)
	})
}

func TestGetRouterSession(t *testing.T) {
	uid := uuid.New()
	claims := &contentd.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: uid.String(),
			Issuer:  "test-issuer",
		},
		UID:         uid.String(),
		AccountType: "admin",
	}

	ctx := &MockContext{}
	ctx.On("Locals", "access_token").Return(claims)

	session, err := contentd.GetRouterSession(ctx, "access_token")
	require.NoError(t, err)

	assert.Equal(t, uid.String(), session.GetUserID())
	assert.Equal(t, "test-issuer", session.GetIssuer())
	assert.Equal(t, "admin", session.GetData()["type"])

	gotUUID, err := session.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, uid, gotUUID)
}

func TestGetRouterSessionMissingCookie(t *testing.T) {
	ctx := &MockContext{}
	ctx.On("Locals", "access_token").Return(nil)

	session, err := contentd.GetRouterSession(ctx, "access_token")

	assert.Nil(t, session)
	assert.Equal(t, contentd.ErrUnableToFindSession, err)
}
