package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nileplate/backend/internal/models"
	"github.com/nileplate/backend/internal/types"
)

// SessionService issues and validates anonymous session tokens. A session is
// a User row plus a signed JWT carrying its id; there are no credentials.
type SessionService struct {
	db        *gorm.DB
	jwtSecret string
	ttl       time.Duration
	logger    *zap.Logger
}

func NewSessionService(db *gorm.DB, jwtSecret string, ttl time.Duration, logger *zap.Logger) *SessionService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionService{
		db:        db,
		jwtSecret: jwtSecret,
		ttl:       ttl,
		logger:    logger,
	}
}

// CreateSession creates an anonymous user row and returns its signed token.
func (s *SessionService) CreateSession(ctx context.Context) (*types.SessionResponse, error) {
	user := models.User{
		ID:           uuid.New(),
		Preferences:  models.JSONBStringArray{},
		LastActiveAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(s.ttl)
	claims := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: user.ID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &types.SessionResponse{
		UserID:    user.ID,
		Token:     signed,
		ExpiresAt: expiresAt.UTC(),
	}, nil
}

// ValidateToken parses and verifies a session token.
func (s *SessionService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == uuid.Nil {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Touch marks the session as active so the housekeeping sweep keeps it.
func (s *SessionService) Touch(ctx context.Context, userID uuid.UUID) {
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("last_active_at", time.Now()).Error
	if err != nil {
		s.logger.Warn("session touch failed", zap.String("user_id", userID.String()), zap.Error(err))
	}
}
