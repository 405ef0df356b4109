package blog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/daniilsolovey/blogicum/internal/db"
)

const defaultPasswordCost = bcrypt.DefaultCost

// maxPasswordBytes is the bcrypt input limit. The form rule counts runes,
// so multibyte passwords are checked here as well.
const maxPasswordBytes = 72

type Session struct {
	db.Session
	User User
}

func (m *Manager) Register(ctx context.Context, form SignupForm) (*User, error) {
	if err := validateForm(form); err != nil {
		return nil, err
	}
	if len(form.Password) > maxPasswordBytes {
		return nil, newFieldError("password", fmt.Sprintf("at most %d bytes", maxPasswordBytes))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), m.passwordCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, newFieldError("password", fmt.Sprintf("at most %d bytes", maxPasswordBytes))
	} else if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	dbUser := &db.User{
		Username:     form.Username,
		Email:        strings.TrimSpace(form.Email),
		PasswordHash: string(hash),
		CreatedAt:    m.now(),
	}
	if err := m.db.CreateUser(ctx, dbUser); errors.Is(err, db.ErrAlreadyExists) {
		return nil, ErrUsernameTaken
	} else if err != nil {
		return nil, fmt.Errorf("db create user: %w", err)
	}

	m.log.InfoContext(ctx, "user registered", "userID", dbUser.ID, "username", dbUser.Username)

	user := NewUser(*dbUser)
	return &user, nil
}

// Login checks credentials and opens a new session.
func (m *Manager) Login(ctx context.Context, form LoginForm) (*Session, error) {
	if err := validateForm(form); err != nil {
		return nil, err
	}

	dbUser, err := m.db.UserByUsername(ctx, form.Username)
	if err != nil {
		return nil, fmt.Errorf("db get user: %w", err)
	} else if dbUser == nil {
		return nil, ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(dbUser.PasswordHash), []byte(form.Password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return nil, ErrInvalidCredentials
	} else if err != nil {
		return nil, fmt.Errorf("compare password: %w", err)
	}

	now := m.now()
	dbSession := &db.Session{
		ID:        uuid.NewString(),
		UserID:    dbUser.ID,
		ExpiresAt: now.Add(m.sessionTTL),
		CreatedAt: now,
	}
	if err := m.db.CreateSession(ctx, dbSession); err != nil {
		return nil, fmt.Errorf("db create session: %w", err)
	}

	return &Session{Session: *dbSession, User: NewUser(*dbUser)}, nil
}

func (m *Manager) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := m.db.DeleteSession(ctx, token); err != nil {
		return fmt.Errorf("db delete session: %w", err)
	}

	return nil
}

// ViewerBySession resolves a session token to its user. Unknown, malformed
// and expired tokens resolve to nil, the anonymous viewer.
func (m *Manager) ViewerBySession(ctx context.Context, token string) (*User, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, nil
	}

	dbSession, err := m.db.SessionByID(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("db get session: %w", err)
	} else if dbSession == nil || dbSession.User == nil {
		return nil, nil
	}

	if !m.now().Before(dbSession.ExpiresAt) {
		if err := m.db.DeleteSession(ctx, token); err != nil {
			m.log.WarnContext(ctx, "failed to delete expired session", "error", err)
		}
		return nil, nil
	}

	user := NewUser(*dbSession.User)
	return &user, nil
}

func (m *Manager) EditProfile(ctx context.Context, viewer *User, form ProfileForm) (*User, error) {
	if viewer == nil {
		return nil, ErrUnauthorized
	}

	if err := validateForm(form); err != nil {
		return nil, err
	}

	dbUser, err := m.db.UserByID(ctx, viewer.ID)
	if err != nil {
		return nil, fmt.Errorf("db get user: %w", err)
	} else if dbUser == nil {
		return nil, ErrNotFound
	}

	dbUser.Username = form.Username
	dbUser.FirstName = strings.TrimSpace(form.FirstName)
	dbUser.LastName = strings.TrimSpace(form.LastName)
	dbUser.Email = strings.TrimSpace(form.Email)

	if err := m.db.UpdateUser(ctx, dbUser); errors.Is(err, db.ErrAlreadyExists) {
		return nil, newFieldError("username", ErrUsernameTaken.Error())
	} else if err != nil {
		return nil, fmt.Errorf("db update user: %w", err)
	}

	user := NewUser(*dbUser)
	return &user, nil
}
