package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"lab-inventory/internal/domain/audit"
	"lab-inventory/internal/domain/user"
)

type LoginResult struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	User      *user.User `json:"user"`
}

type Usecase struct {
	users  user.Repository
	audit  audit.Repository
	tokens *Tokens
	now    func() time.Time
}

func NewUsecase(users user.Repository, log audit.Repository, tokens *Tokens) *Usecase {
	return &Usecase{users: users, audit: log, tokens: tokens, now: func() time.Time { return time.Now().UTC() }}
}

// Login never reveals whether the email exists or the account is inactive.
func (u *Usecase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, user.ErrInvalidCredentials
	}
	found, err := u.users.GetByEmail(ctx, email)
	if errors.Is(err, user.ErrNotFound) {
		return nil, user.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !found.IsActive || bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password)) != nil {
		return nil, user.ErrInvalidCredentials
	}

	token, exp, err := u.tokens.Issue(found)
	if err != nil {
		return nil, err
	}
	if err := u.audit.Append(ctx, audit.New(found.ID, found.Name, audit.ActionLogin, found.ID, "User logged in", u.now())); err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: exp, User: found}, nil
}

func (u *Usecase) Me(ctx context.Context, actorID string) (*user.User, error) {
	return u.users.GetByID(ctx, actorID)
}

// Authenticate verifies a bearer token and rebuilds the actor from the
// stored account, so role changes and deactivation apply immediately.
func (u *Usecase) Authenticate(ctx context.Context, raw string) (user.Actor, error) {
	claims, err := u.tokens.Parse(raw)
	if err != nil {
		return user.Actor{}, err
	}
	found, err := u.users.GetByID(ctx, claims.Subject)
	if errors.Is(err, user.ErrNotFound) {
		return user.Actor{}, user.ErrUnauthenticated
	}
	if err != nil {
		return user.Actor{}, err
	}
	if !found.IsActive {
		return user.Actor{}, user.ErrInactive
	}
	return user.Actor{ID: found.ID, Name: found.Name, Role: found.Role, Department: found.Department}, nil
}
