package service

import (
	"context"
	"errors"
	"strings"

	"github.com/khmer25/shop-api/internal/dto"
	apperrors "github.com/khmer25/shop-api/internal/errors"
	"github.com/khmer25/shop-api/internal/model"
	"github.com/khmer25/shop-api/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserStore is the persistence contract the identity flow needs.
type UserStore interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByPhone(ctx context.Context, phone string) (*model.User, error)
	PhoneExists(ctx context.Context, phone string) (bool, error)
	Create(ctx context.Context, user *model.User) error
}

type UserService struct {
	users     UserStore
	tokens    *TokenService
	publisher EventPublisher
}

func NewUserService(users UserStore, tokens *TokenService, publisher EventPublisher) *UserService {
	return &UserService{
		users:     users,
		tokens:    tokens,
		publisher: publisher,
	}
}

// Register creates a user with a hashed password and issues the first
// token. A new user has no prior tokens, so nothing is replaced.
func (s *UserService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	phone := strings.TrimSpace(req.Phone)

	exists, err := s.users.PhoneExists(ctx, phone)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if exists {
		logger.GetLogger().Warn("Registration rejected, phone taken",
			zap.String("phone", phone),
		)
		return nil, apperrors.ErrPhoneExists
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	user := &model.User{
		Name:     strings.TrimSpace(req.Name),
		Phone:    phone,
		Password: hashed,
		Address:  strings.TrimSpace(req.Address),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	token, err := s.tokens.Issue(ctx, user.ID, false)
	if err != nil {
		return nil, err
	}

	logger.GetLogger().Info("User registered",
		zap.Uint("user_id", user.ID),
		zap.String("phone", user.Phone),
	)

	s.publish(ctx, "user.registered", map[string]any{
		"user_id": user.ID,
		"phone":   user.Phone,
	})

	return &dto.AuthResponse{
		Message: "User created successfully",
		User:    toUserResponse(user),
		Token:   token.Key,
	}, nil
}

// Login verifies credentials and mints a fresh token, revoking every
// token the user held before. One login anywhere ends all other
// sessions; that trade against multi-device support is deliberate.
func (s *UserService) Login(ctx context.Context, phone, password string) (*dto.AuthResponse, error) {
	// Register trims before storing, so the lookup must too.
	phone = strings.TrimSpace(phone)
	if phone == "" || password == "" {
		return nil, apperrors.ErrMissingCredentials
	}

	user, err := s.users.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same error as a wrong password so the response never
			// reveals whether the phone is registered.
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !checkPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ctx, user.ID, true)
	if err != nil {
		return nil, err
	}

	logger.GetLogger().Info("User logged in",
		zap.Uint("user_id", user.ID),
	)

	return &dto.AuthResponse{
		Message: "Login successful",
		User:    toUserResponse(user),
		Token:   token.Key,
	}, nil
}

// GetByID fetches the public projection of a user.
func (s *UserService) GetByID(ctx context.Context, id uint) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// GetByPhone fetches the public projection of a user by phone number.
func (s *UserService) GetByPhone(ctx context.Context, phone string) (*dto.UserResponse, error) {
	user, err := s.users.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *UserService) publish(ctx context.Context, eventType string, payload map[string]any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, eventType, payload); err != nil {
		logger.GetLogger().Warn("Failed to publish event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

// toUserResponse builds the public projection. The password hash never
// leaves the model.
func toUserResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Phone:     user.Phone,
		Address:   user.Address,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// hashPassword hashes a password using bcrypt
func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// checkPassword verifies a password against its hash
func checkPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
