package service

import (
	"context"
	"errors"
	"time"

	"github.com/taskflowhq/taskflow/internal/api/domain"
	"github.com/taskflowhq/taskflow/internal/api/store"
	"github.com/taskflowhq/taskflow/pkg/cryptox"
	"github.com/taskflowhq/taskflow/pkg/idx"
	"github.com/taskflowhq/taskflow/pkg/jwtx"
)

// AuthService handles registration and login, the only two operations that
// run before an identity exists.
type AuthService struct {
	Store    store.Store
	Signer   jwtx.Signer
	Issuer   string
	TokenTTL time.Duration
}

// RegisterParams carries everything needed to provision a new tenant.
type RegisterParams struct {
	OrganizationName string
	OrganizationSlug string
	Email            string
	Password         string
	FullName         string
}

// Token is an issued access token plus its metadata.
type Token struct {
	AccessToken string
	ExpiresIn   int
}

// Register provisions a new organization together with its first user, who
// becomes admin. Both rows are written in one transaction, so a failure
// partway leaves no partial tenant behind. Returns ErrSlugTaken or
// ErrEmailTaken on conflicts, racing registrations included.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (domain.User, Token, error) {
	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return domain.User{}, Token{}, err
	}

	var user domain.User
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		org, err := tx.Organizations().Create(ctx, domain.Organization{
			ID:   idx.New().String(),
			Name: p.OrganizationName,
			Slug: p.OrganizationSlug,
		})
		if err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrSlugTaken
			}
			return err
		}

		user, err = tx.Users().Create(ctx, domain.User{
			ID:             idx.New().String(),
			Email:          p.Email,
			HashedPassword: hash,
			FullName:       p.FullName,
			Role:           domain.RoleAdmin,
			OrgID:          org.ID,
		})
		if err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.User{}, Token{}, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return domain.User{}, Token{}, err
	}
	return user, token, nil
}

// Login verifies credentials and issues an access token. An unknown email
// and a wrong password produce the identical ErrInvalidCredentials, and the
// unknown-email path still burns a hash verification so the two are not
// separable by timing either.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, Token, error) {
	user, err := s.Store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			cryptox.VerifyDummy(password)
			return domain.User{}, Token{}, ErrInvalidCredentials
		}
		return domain.User{}, Token{}, err
	}

	if err := cryptox.VerifyPassword(password, user.HashedPassword); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return domain.User{}, Token{}, ErrInvalidCredentials
		}
		return domain.User{}, Token{}, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return domain.User{}, Token{}, err
	}
	return user, token, nil
}

func (s *AuthService) issueToken(user domain.User) (Token, error) {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	claims := jwtx.NewAccessClaims(user.ID, user.OrgID, user.Email, ttl, s.Issuer, time.Now())
	signed, err := s.Signer.Sign(claims)
	if err != nil {
		return Token{}, err
	}

	return Token{
		AccessToken: signed,
		ExpiresIn:   int(ttl.Seconds()),
	}, nil
}
