package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/khmer25/shop-api/internal/dto"
	apperrors "github.com/khmer25/shop-api/internal/errors"
	"github.com/khmer25/shop-api/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserStore struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, byID: make(map[uint]*model.User)}
}

func (s *fakeUserStore) GetByID(_ context.Context, id uint) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) GetByPhone(_ context.Context, phone string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.byID {
		if user.Phone == phone {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) PhoneExists(_ context.Context, phone string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.byID {
		if user.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = s.nextID
	s.nextID++
	copied := *user
	s.byID[user.ID] = &copied
	return nil
}

type capturedEvent struct {
	Type    string
	Payload map[string]any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []capturedEvent
}

func (p *fakePublisher) Publish(_ context.Context, eventType string, payload map[string]any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, capturedEvent{Type: eventType, Payload: payload})
	return nil
}

func newUserService() (*UserService, *fakeUserStore, *fakeTokenStore, *fakePublisher) {
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	publisher := &fakePublisher{}
	svc := NewUserService(users, NewTokenService(tokens, 0), publisher)
	return svc, users, tokens, publisher
}

func TestRegister(t *testing.T) {
	svc, users, tokens, publisher := newUserService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{
		Name:     "Sokha",
		Phone:    "+85512000001",
		Password: "secret123",
		Address:  "Phnom Penh",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if resp.Message != "User created successfully" {
		t.Errorf("message = %q", resp.Message)
	}
	if len(resp.Token) != 40 {
		t.Errorf("token length = %d, want 40", len(resp.Token))
	}
	if resp.User.Phone != "+85512000001" || resp.User.Name != "Sokha" {
		t.Errorf("user projection = %+v", resp.User)
	}

	stored, err := users.GetByID(ctx, resp.User.ID)
	if err != nil {
		t.Fatalf("stored user missing: %v", err)
	}
	if stored.Password == "secret123" {
		t.Error("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}

	if got := tokens.countForUser(resp.User.ID); got != 1 {
		t.Errorf("token count after register = %d, want 1", got)
	}

	if len(publisher.events) != 1 || publisher.events[0].Type != "user.registered" {
		t.Errorf("events = %+v, want one user.registered", publisher.events)
	}
}

func TestRegisterDuplicatePhone(t *testing.T) {
	svc, _, _, _ := newUserService()
	ctx := context.Background()

	req := &dto.RegisterRequest{Name: "Sokha", Phone: "+85512000001", Password: "secret123"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, err := svc.Register(ctx, &dto.RegisterRequest{Name: "Dara", Phone: "+85512000001", Password: "other456"})
	if !errors.Is(err, apperrors.ErrPhoneExists) {
		t.Errorf("error = %v, want ErrPhoneExists", err)
	}
}

func TestLoginReplacesToken(t *testing.T) {
	svc, _, tokens, _ := newUserService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, &dto.RegisterRequest{Name: "Sokha", Phone: "+85512000001", Password: "secret123"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	login, err := svc.Login(ctx, "+85512000001", "secret123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if login.Message != "Login successful" {
		t.Errorf("message = %q", login.Message)
	}
	if login.Token == reg.Token {
		t.Error("login did not mint a fresh token")
	}
	if got := tokens.countForUser(reg.User.ID); got != 1 {
		t.Errorf("token count after login = %d, want 1", got)
	}
	if _, err := tokens.GetByKey(ctx, reg.Token); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Error("registration token survived login")
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _, _, _ := newUserService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, &dto.RegisterRequest{Name: "Sokha", Phone: "+85512000001", Password: "secret123"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, unknownErr := svc.Login(ctx, "+85599999999", "secret123")
	_, wrongErr := svc.Login(ctx, "+85512000001", "wrongpass")

	if !errors.Is(unknownErr, apperrors.ErrInvalidCredentials) {
		t.Errorf("unknown phone error = %v, want ErrInvalidCredentials", unknownErr)
	}
	if !errors.Is(wrongErr, apperrors.ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", wrongErr)
	}
	if apperrors.GetErrorMessage(unknownErr) != apperrors.GetErrorMessage(wrongErr) {
		t.Errorf("messages differ: %q vs %q",
			apperrors.GetErrorMessage(unknownErr), apperrors.GetErrorMessage(wrongErr))
	}
}

func TestLoginMissingCredentials(t *testing.T) {
	svc, _, _, _ := newUserService()
	ctx := context.Background()

	cases := []struct {
		name     string
		phone    string
		password string
	}{
		{"no phone", "", "secret123"},
		{"whitespace phone", "   ", "secret123"},
		{"no password", "+85512000001", ""},
		{"neither", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tc.phone, tc.password)
			if !errors.Is(err, apperrors.ErrMissingCredentials) {
				t.Errorf("error = %v, want ErrMissingCredentials", err)
			}
		})
	}
}

func TestLoginTrimsPhone(t *testing.T) {
	svc, _, _, _ := newUserService()
	ctx := context.Background()

	// Registration trims before storing, so a padded login phone must
	// still find the account.
	if _, err := svc.Register(ctx, &dto.RegisterRequest{Name: "Sokha", Phone: " +85512000001 ", Password: "secret123"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, err := svc.Login(ctx, " +85512000001 ", "secret123"); err != nil {
		t.Errorf("padded phone login error = %v", err)
	}
	if _, err := svc.Login(ctx, "+85512000001", "secret123"); err != nil {
		t.Errorf("trimmed phone login error = %v", err)
	}
}

func TestGetByIDAndPhone(t *testing.T) {
	svc, _, _, _ := newUserService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, &dto.RegisterRequest{Name: "Sokha", Phone: "+85512000001", Password: "secret123"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	byID, err := svc.GetByID(ctx, reg.User.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if byID.Phone != "+85512000001" {
		t.Errorf("GetByID() = %+v", byID)
	}

	byPhone, err := svc.GetByPhone(ctx, "+85512000001")
	if err != nil {
		t.Fatalf("GetByPhone() error = %v", err)
	}
	if byPhone.ID != reg.User.ID {
		t.Errorf("GetByPhone() = %+v", byPhone)
	}

	if _, err := svc.GetByID(ctx, 9999); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("missing id error = %v, want ErrUserNotFound", err)
	}
	if _, err := svc.GetByPhone(ctx, "+8550000"); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("missing phone error = %v, want ErrUserNotFound", err)
	}
}
