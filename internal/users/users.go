// Package users manages application accounts and credential checks.
package users

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role gates which areas of the application an account may use.
type Role string

const (
	RoleAdmin       Role = "Admin"
	RoleCashier     Role = "Cashier"
	RoleStorekeeper Role = "Storekeeper"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCashier, RoleStorekeeper:
		return true
	}
	return false
}

// User is an application account. PasswordHash is a bcrypt hash and never
// leaves the service in API responses.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	PasswordHash string `json:"passwordHash,omitempty"`
}

// Public strips credential material for API responses.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

var (
	// ErrNotFound indicates the user does not exist.
	ErrNotFound = errors.New("users: not found")
	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("users: invalid credentials")
)

// Persister writes the user collection to the key-value store.
type Persister interface {
	SaveUsers(ctx context.Context, users []User) error
}

// Service is the in-memory account directory.
type Service struct {
	mu      sync.RWMutex
	byID    map[string]User
	persist Persister
}

// NewService builds the directory from an initial snapshot.
func NewService(initial []User, persist Persister) *Service {
	byID := make(map[string]User, len(initial))
	for _, u := range initial {
		byID[u.ID] = u
	}
	return &Service{byID: byID, persist: persist}
}

// List returns all accounts, credential material stripped, ordered by name.
func (s *Service) List(ctx context.Context) []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, 0, len(s.byID))
	for _, u := range s.byID {
		out = append(out, u.Public())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Get returns one account without credential material.
func (s *Service) Get(ctx context.Context, id string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u.Public(), nil
}

// Create registers an account with the given plaintext password.
func (s *Service) Create(ctx context.Context, name string, role Role, password string) (User, error) {
	if strings.TrimSpace(name) == "" {
		return User{}, fmt.Errorf("user name is required")
	}
	if !role.Valid() {
		return User{}, fmt.Errorf("unknown role %q", role)
	}
	if password == "" {
		return User{}, fmt.Errorf("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	u := User{ID: uuid.NewString(), Name: name, Role: role, PasswordHash: string(hash)}
	s.mu.Lock()
	s.byID[u.ID] = u
	s.mu.Unlock()
	return u.Public(), s.save(ctx)
}

// Update changes name, role and optionally the password of an account.
func (s *Service) Update(ctx context.Context, id, name string, role Role, password string) (User, error) {
	if strings.TrimSpace(name) == "" {
		return User{}, fmt.Errorf("user name is required")
	}
	if !role.Valid() {
		return User{}, fmt.Errorf("unknown role %q", role)
	}
	s.mu.Lock()
	u, ok := s.byID[id]
	if !ok {
		s.mu.Unlock()
		return User{}, ErrNotFound
	}
	u.Name = name
	u.Role = role
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			s.mu.Unlock()
			return User{}, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}
	s.byID[id] = u
	s.mu.Unlock()
	return u.Public(), s.save(ctx)
}

// Delete removes an account.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	if _, ok := s.byID[id]; !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	delete(s.byID, id)
	s.mu.Unlock()
	return s.save(ctx)
}

// Authenticate verifies a name/password pair and returns the matching account.
func (s *Service) Authenticate(ctx context.Context, name, password string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.byID {
		if u.Name != name {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil {
			return u.Public(), nil
		}
		break
	}
	return User{}, ErrInvalidCredentials
}

func (s *Service) save(ctx context.Context) error {
	if s.persist == nil {
		return nil
	}
	s.mu.RLock()
	out := make([]User, 0, len(s.byID))
	for _, u := range s.byID {
		out = append(out, u)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if err := s.persist.SaveUsers(ctx, out); err != nil {
		return fmt.Errorf("persist users: %w", err)
	}
	return nil
}
