// Package services contains authgate's business logic. This file implements
// AccountService, which handles registration (with role bootstrap), sign-in,
// and refresh-token rotation.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/dbx"
	"github.com/dmitrijs2005/authgate/internal/server/auth"
	"github.com/dmitrijs2005/authgate/internal/server/config"
	"github.com/dmitrijs2005/authgate/internal/server/models"
	"github.com/dmitrijs2005/authgate/internal/server/passwords"
	"github.com/dmitrijs2005/authgate/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// refreshTokenSize is the entropy, in bytes, behind every opaque refresh token.
const refreshTokenSize = 64

// AccountService provides authentication-related operations:
//   - Register: create accounts and assign their role
//   - SignIn: verify credentials and mint tokens
//   - Refresh: rotate refresh tokens and mint new access tokens
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      passwords.Hasher
	tokenOpts   auth.Options
}

// NewAccountService constructs an AccountService using repositories,
// the password capability, and server config.
func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, h passwords.Hasher, cfg *config.Config) *AccountService {
	return &AccountService{
		db:          db,
		repomanager: m,
		hasher:      h,
		tokenOpts: auth.Options{
			SecretKey: []byte(cfg.SecretKey),
			Issuer:    cfg.TokenIssuer,
			Audience:  cfg.TokenAudience,
			Validity:  cfg.AccessTokenValidityDuration,
		},
	}
}

// Register creates an account and assigns its role. The first account ever
// registered becomes Admin; every later one becomes User. The whole
// sequence runs in one transaction, and the Admin/User decision is the
// outcome of the role insert itself (the unique constraint on the role name
// arbitrates), so concurrent first registrations cannot both win Admin.
func (s *AccountService) Register(ctx context.Context, fullName, email, password string) (*models.Account, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)
	if fullName == "" || email == "" || password == "" {
		return nil, common.ErrorValidation
	}

	// bcrypt is slow on purpose, keep it outside the transaction
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	account := &models.Account{
		ID:           uuid.NewString(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: digest,
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		accountsRepo := s.repomanager.Accounts(tx)
		rolesRepo := s.repomanager.Roles(tx)

		if _, err := accountsRepo.GetByEmail(ctx, email); err == nil {
			return common.ErrDuplicateAccount
		} else if !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("error searching account: %w", err)
		}

		if _, err := accountsRepo.Create(ctx, account); err != nil {
			return fmt.Errorf("error creating account: %w", err)
		}

		role, created, err := rolesRepo.CreateIfAbsent(ctx, &models.Role{ID: uuid.NewString(), Name: models.RoleAdmin})
		if err != nil {
			return fmt.Errorf("error bootstrapping admin role: %w", err)
		}
		if !created {
			// Admin is taken, this registrant becomes User
			role, _, err = rolesRepo.CreateIfAbsent(ctx, &models.Role{ID: uuid.NewString(), Name: models.RoleUser})
			if err != nil {
				return fmt.Errorf("error bootstrapping user role: %w", err)
			}
		}

		if err := rolesRepo.Assign(ctx, account.ID, role.ID); err != nil {
			return fmt.Errorf("error assigning role: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return account, nil
}

// SignIn verifies the credentials and, on success, returns a new TokenPair.
// The stored refresh token, if any, is replaced by a single upsert, so at
// most one refresh token per account is ever live.
func (s *AccountService) SignIn(ctx context.Context, email, password string) (*TokenPair, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, common.ErrorValidation
	}

	account, err := s.repomanager.Accounts(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrAccountNotFound
		}
		return nil, fmt.Errorf("error searching account: %w", err)
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	role, err := s.repomanager.Roles(s.db).FindByAccount(ctx, account.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrRoleNotFound
		}
		return nil, fmt.Errorf("error resolving role: %w", err)
	}

	pair, err := s.generateTokenPair(account, role.Name)
	if err != nil {
		return nil, err
	}

	if err := s.repomanager.RefreshTokens(s.db).Upsert(ctx, account.ID, pair.RefreshToken); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return pair, nil
}

// Refresh exchanges a live refresh token for a fresh TokenPair, invalidating
// the presented token. Lookup and rotation happen inside one transaction
// with the record row locked, so concurrent refreshes of the same token
// serialize instead of both succeeding.
func (s *AccountService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, common.ErrorValidation
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		record, err := s.repomanager.RefreshTokens(tx).FindByToken(ctx, refreshToken, true)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidRefreshToken
			}
			return fmt.Errorf("error searching refresh token: %w", err)
		}

		account, err := s.repomanager.Accounts(tx).GetByID(ctx, record.AccountID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				// orphaned token, its account is gone
				return common.ErrAccountNotFound
			}
			return fmt.Errorf("error searching account: %w", err)
		}

		role, err := s.repomanager.Roles(tx).FindByAccount(ctx, account.ID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrRoleNotFound
			}
			return fmt.Errorf("error resolving role: %w", err)
		}

		pair, err = s.generateTokenPair(account, role.Name)
		if err != nil {
			return err
		}

		return s.repomanager.RefreshTokens(tx).Rotate(ctx, account.ID, pair.RefreshToken)
	}); err != nil {
		return nil, err
	}

	return pair, nil
}

// --- helpers below ---

func (s *AccountService) generateTokenPair(account *models.Account, roleName string) (*TokenPair, error) {
	access, err := auth.GenerateToken(account.ID, account.FullName, account.Email, roleName, s.tokenOpts)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refresh, err := common.MakeRandBase64String(refreshTokenSize)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
