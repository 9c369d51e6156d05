// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

// Package authtest provides an in-memory [auth.UserRepository] for tests of
// packages built on top of identities.
package authtest

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/apperr"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/sec"
	"github.com/Avi4306/FashionFiesta-sub001/internal/users/auth"
	"github.com/Avi4306/FashionFiesta-sub001/pkg/pointer"
	"github.com/Avi4306/FashionFiesta-sub001/pkg/uuidv7"
)

// Users is a concurrency-safe in-memory user store. Stored values are deep
// copies, so callers cannot mutate them without calling Update.
type Users struct {
	mu      sync.Mutex
	byID    map[string]*auth.User
	Updates int
}

var _ auth.UserRepository = (*Users)(nil)

// NewUsers creates an empty store.
func NewUsers() *Users {
	return &Users{byID: make(map[string]*auth.User)}
}

// Seed stores user directly, assigning an ID when empty, and returns the ID.
func (s *Users) Seed(user *auth.User) string {
	if err := s.Create(context.Background(), user); err != nil {
		panic(err)
	}
	return user.ID
}

// Get returns a copy of the stored user, or nil.
func (s *Users) Get(id string) *auth.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.byID[id]; ok {
		return clone(user)
	}
	return nil
}

func (s *Users) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user := s.Get(id); user != nil {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (s *Users) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = auth.NormalizeEmail(email)
	for _, user := range s.byID {
		if user.Email == email {
			return clone(user), nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (s *Users) Create(_ context.Context, user *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.Email = auth.NormalizeEmail(user.Email)
	for _, existing := range s.byID {
		if existing.Email == user.Email {
			return apperr.Conflict(auth.MsgUserExists)
		}
	}
	if user.ID == "" {
		user.ID = uuidv7.New()
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	s.byID[user.ID] = clone(user)
	return nil
}

func (s *Users) Update(_ context.Context, user *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	user.UpdatedAt = time.Now().UTC()
	s.byID[user.ID] = clone(user)
	s.Updates++
	return nil
}

func (s *Users) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return apperr.NotFound("User")
	}
	delete(s.byID, id)
	return nil
}

func (s *Users) DeleteMany(_ context.Context, role sec.Role) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed int64
	for id, user := range s.byID {
		if user.Role == role {
			delete(s.byID, id)
			removed++
		}
	}
	return removed, nil
}

func (s *Users) ListByRole(_ context.Context, role sec.Role) ([]*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]*auth.User, 0, len(s.byID))
	for _, user := range s.byID {
		if role == "" || user.Role == role {
			users = append(users, clone(user))
		}
	}
	slices.SortFunc(users, func(a, b *auth.User) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return users, nil
}

func clone(user *auth.User) *auth.User {
	copied := *user
	if user.PasswordHash != nil {
		copied.PasswordHash = pointer.To(*user.PasswordHash)
	}
	if user.DesignerApplication != nil {
		application := *user.DesignerApplication
		application.Specializations = slices.Clone(application.Specializations)
		if application.ReviewedAt != nil {
			application.ReviewedAt = pointer.To(*application.ReviewedAt)
		}
		copied.DesignerApplication = &application
	}
	if user.DesignerDetails != nil {
		details := *user.DesignerDetails
		details.Specializations = slices.Clone(details.Specializations)
		copied.DesignerDetails = &details
	}
	return &copied
}
