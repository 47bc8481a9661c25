package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	apperrors "github.com/khmer25/shop-api/internal/errors"
	"github.com/khmer25/shop-api/internal/model"
	"github.com/khmer25/shop-api/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// tokenKeyBytes is the entropy width of a token key; hex-encoded it
// yields a 40 character string.
const tokenKeyBytes = 20

// TokenStore is the persistence contract the issuer and authenticator
// need. Kept narrow so the gorm-backed repository can be swapped for an
// in-memory store in tests or a cache in a later deployment.
type TokenStore interface {
	GetByKey(ctx context.Context, key string) (*model.AuthToken, error)
	Insert(ctx context.Context, token *model.AuthToken) error
	Replace(ctx context.Context, userID uint, token *model.AuthToken) error
}

// TokenService mints opaque bearer tokens and resolves them back to
// users on authenticated requests.
type TokenService struct {
	tokens TokenStore
	ttl    time.Duration
}

// NewTokenService creates a token service. A ttl of zero disables
// expiry: issued tokens stay valid until the next login replaces them.
func NewTokenService(tokens TokenStore, ttl time.Duration) *TokenService {
	return &TokenService{tokens: tokens, ttl: ttl}
}

// Issue mints a new token for the user. With replaceExisting the user's
// prior tokens are deleted in the same transaction as the insert, so a
// login leaves exactly one token behind. There is no collision retry: a
// duplicate 160-bit key means the random source is broken, and the
// resulting constraint violation fails the request.
func (s *TokenService) Issue(ctx context.Context, userID uint, replaceExisting bool) (*model.AuthToken, error) {
	key, err := generateTokenKey()
	if err != nil {
		logger.GetLogger().Error("Failed to generate token key",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	token := &model.AuthToken{
		Key:       key,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	if replaceExisting {
		err = s.tokens.Replace(ctx, userID, token)
	} else {
		err = s.tokens.Insert(ctx, token)
	}
	if err != nil {
		logger.GetLogger().Error("Failed to persist token",
			zap.Uint("user_id", userID),
			zap.Bool("replace_existing", replaceExisting),
			zap.Error(err),
		)
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return token, nil
}

// Resolve maps a presented bearer key to the owning user. Resolution is
// binary: the key exists (and, when a TTL is configured, is younger than
// it) or the credential is invalid.
func (s *TokenService) Resolve(ctx context.Context, key string) (*model.User, error) {
	if key == "" {
		return nil, apperrors.ErrInvalidToken
	}

	token, err := s.tokens.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if s.ttl > 0 && time.Since(token.CreatedAt) > s.ttl {
		return nil, apperrors.ErrInvalidToken
	}

	user := token.User
	return &user, nil
}

// generateTokenKey draws tokenKeyBytes from the crypto random source and
// hex-encodes them.
func generateTokenKey() (string, error) {
	buf := make([]byte, tokenKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
