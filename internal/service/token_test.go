package service

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	apperrors "github.com/khmer25/shop-api/internal/errors"
	"github.com/khmer25/shop-api/internal/model"
	"gorm.io/gorm"
)

// fakeTokenStore is an in-memory TokenStore with the same replace
// semantics as the gorm repository.
type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[string]*model.AuthToken
	users  map[uint]*model.User
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{
		tokens: make(map[string]*model.AuthToken),
		users:  make(map[uint]*model.User),
	}
}

func (s *fakeTokenStore) GetByKey(_ context.Context, key string) (*model.AuthToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.tokens[key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *token
	if user, ok := s.users[token.UserID]; ok {
		copied.User = *user
	}
	return &copied, nil
}

func (s *fakeTokenStore) Insert(_ context.Context, token *model.AuthToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tokens[token.Key]; exists {
		return errors.New("duplicate key")
	}
	copied := *token
	s.tokens[token.Key] = &copied
	return nil
}

func (s *fakeTokenStore) Replace(_ context.Context, userID uint, token *model.AuthToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, existing := range s.tokens {
		if existing.UserID == userID {
			delete(s.tokens, key)
		}
	}
	copied := *token
	s.tokens[token.Key] = &copied
	return nil
}

func (s *fakeTokenStore) countForUser(userID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, token := range s.tokens {
		if token.UserID == userID {
			n++
		}
	}
	return n
}

var hexKeyPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)

func TestIssueKeyFormat(t *testing.T) {
	store := newFakeTokenStore()
	svc := NewTokenService(store, 0)

	token, err := svc.Issue(context.Background(), 1, false)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if !hexKeyPattern.MatchString(token.Key) {
		t.Errorf("key %q is not 40 lowercase hex characters", token.Key)
	}
	if token.UserID != 1 {
		t.Errorf("UserID = %d, want 1", token.UserID)
	}
}

func TestIssueKeysAreUnique(t *testing.T) {
	store := newFakeTokenStore()
	svc := NewTokenService(store, 0)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := svc.Issue(context.Background(), uint(i), false)
		if err != nil {
			t.Fatalf("Issue() error = %v", err)
		}
		if seen[token.Key] {
			t.Fatalf("duplicate key %q after %d issues", token.Key, i)
		}
		seen[token.Key] = true
	}
}

func TestIssueReplaceLeavesSingleToken(t *testing.T) {
	store := newFakeTokenStore()
	svc := NewTokenService(store, 0)
	ctx := context.Background()

	first, err := svc.Issue(ctx, 7, false)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	second, err := svc.Issue(ctx, 7, true)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if got := store.countForUser(7); got != 1 {
		t.Errorf("token count after replace = %d, want 1", got)
	}
	if _, err := store.GetByKey(ctx, first.Key); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("old key still resolves after replace")
	}
	if _, err := store.GetByKey(ctx, second.Key); err != nil {
		t.Errorf("new key does not resolve: %v", err)
	}
}

func TestIssueWithoutReplaceKeepsExisting(t *testing.T) {
	store := newFakeTokenStore()
	svc := NewTokenService(store, 0)
	ctx := context.Background()

	if _, err := svc.Issue(ctx, 7, false); err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := svc.Issue(ctx, 7, false); err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if got := store.countForUser(7); got != 2 {
		t.Errorf("token count = %d, want 2", got)
	}
}

func TestResolve(t *testing.T) {
	store := newFakeTokenStore()
	store.users[5] = &model.User{Model: gorm.Model{ID: 5}, Name: "Dara", Phone: "+85512000001"}
	svc := NewTokenService(store, 0)
	ctx := context.Background()

	token, err := svc.Issue(ctx, 5, false)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	user, err := svc.Resolve(ctx, token.Key)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if user.ID != 5 || user.Phone != "+85512000001" {
		t.Errorf("Resolve() user = %+v, want ID 5", user)
	}

	if _, err := svc.Resolve(ctx, "deadbeef"); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("unknown key error = %v, want ErrInvalidToken", err)
	}
	if _, err := svc.Resolve(ctx, ""); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("empty key error = %v, want ErrInvalidToken", err)
	}
}

func TestResolveExpiredToken(t *testing.T) {
	store := newFakeTokenStore()
	store.users[5] = &model.User{Model: gorm.Model{ID: 5}}
	svc := NewTokenService(store, time.Minute)
	ctx := context.Background()

	token, err := svc.Issue(ctx, 5, false)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// Backdate past the TTL.
	store.mu.Lock()
	store.tokens[token.Key].CreatedAt = time.Now().Add(-2 * time.Minute)
	store.mu.Unlock()

	if _, err := svc.Resolve(ctx, token.Key); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("expired token error = %v, want ErrInvalidToken", err)
	}
}

func TestConcurrentLoginsLeaveValidToken(t *testing.T) {
	store := newFakeTokenStore()
	store.users[9] = &model.User{Model: gorm.Model{ID: 9}}
	svc := NewTokenService(store, 0)
	ctx := context.Background()

	const logins = 20
	keys := make([]string, logins)
	var wg sync.WaitGroup
	for i := 0; i < logins; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token, err := svc.Issue(ctx, 9, true)
			if err != nil {
				t.Errorf("Issue() error = %v", err)
				return
			}
			keys[i] = token.Key
		}(i)
	}
	wg.Wait()

	// Every surviving token must be one that was actually issued, and at
	// least one login's key must still resolve.
	valid := 0
	for _, key := range keys {
		if key == "" {
			continue
		}
		if _, err := svc.Resolve(ctx, key); err == nil {
			valid++
		}
	}
	if valid < 1 {
		t.Errorf("no issued key resolves after concurrent logins")
	}
	if got := store.countForUser(9); got != valid {
		t.Errorf("stored tokens = %d, resolving keys = %d", got, valid)
	}
}
