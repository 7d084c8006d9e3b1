package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nileplate/backend/internal/models"
	"github.com/nileplate/backend/internal/types"
)

func TestCreateSessionAndValidate(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db, "test-secret", time.Hour, zap.NewNop())

	resp, err := svc.CreateSession(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, resp.UserID)
	assert.NotEmpty(t, resp.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, 5*time.Second)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", resp.UserID).Error)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, claims.UserID)
}

func TestValidateTokenRejectsBadTokens(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db, "test-secret", time.Hour, zap.NewNop())

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)

	other := NewSessionService(db, "other-secret", time.Hour, zap.NewNop())
	resp, err := other.CreateSession(context.Background())
	require.NoError(t, err)
	_, err = svc.ValidateToken(resp.Token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := NewSessionService(newTestDB(t), "test-secret", time.Hour, zap.NewNop())

	claims := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
		UserID: uuid.New(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.Error(t, err)
}

func TestValidateTokenRejectsMissingUser(t *testing.T) {
	svc := NewSessionService(newTestDB(t), "test-secret", time.Hour, zap.NewNop())

	claims := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.Error(t, err)
}

func TestTouchUpdatesLastActive(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db, "test-secret", time.Hour, zap.NewNop())

	user := models.User{
		ID:           uuid.New(),
		Preferences:  models.JSONBStringArray{},
		LastActiveAt: time.Now().Add(-48 * time.Hour),
	}
	require.NoError(t, db.Create(&user).Error)

	svc.Touch(context.Background(), user.ID)

	var row models.User
	require.NoError(t, db.First(&row, "id = ?", user.ID).Error)
	assert.WithinDuration(t, time.Now(), row.LastActiveAt, 5*time.Second)
}
