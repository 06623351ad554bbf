package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"giglog/internal/domain"
	"giglog/internal/pkg/authcode"
	"giglog/internal/pkg/password"
	"giglog/internal/pkg/token"
	"giglog/internal/repository"
)

// Session is an issued access/refresh token pair for a user.
type Session struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

type Service struct {
	db      *gorm.DB
	users   *repository.UserRepository
	tokens  *repository.RefreshTokenRepository
	codes   *repository.AuthCodeRepository
	codec   *token.Codec
	codegen *authcode.Generator
	mailer  Mailer
	codeTTL time.Duration
	log     *logrus.Logger
}

func NewService(
	db *gorm.DB,
	users *repository.UserRepository,
	tokens *repository.RefreshTokenRepository,
	codes *repository.AuthCodeRepository,
	codec *token.Codec,
	codegen *authcode.Generator,
	mailer Mailer,
	codeTTL time.Duration,
	log *logrus.Logger,
) *Service {
	return &Service{
		db:      db,
		users:   users,
		tokens:  tokens,
		codes:   codes,
		codec:   codec,
		codegen: codegen,
		mailer:  mailer,
		codeTTL: codeTTL,
		log:     log,
	}
}

func (s *Service) AccessTTL() time.Duration  { return s.codec.AccessTTL() }
func (s *Service) RefreshTTL() time.Duration { return s.codec.RefreshTTL() }

// SignUp creates an unconfirmed account and emails a confirmation code.
// The confirmation email is load-bearing: if it cannot be delivered the
// sign-up fails, since the account would be permanently unconfirmable.
func (s *Service) SignUp(ctx context.Context, req SignUpRequest) (*domain.User, error) {
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	email := repository.NormalizeEmail(req.Email)

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Email:          email,
		HashedPassword: hashed,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	code, err := s.mintCode(ctx, user.ID, domain.AuthCodeEmailConfirmation)
	if err != nil {
		return nil, err
	}
	if err := s.mailer.SendConfirmationCode(ctx, user.Email, user.FirstName, code); err != nil {
		return nil, fmt.Errorf("send confirmation code: %w", err)
	}
	return user, nil
}

// ConfirmEmail validates a confirmation code and marks the account
// confirmed. Confirming an already-confirmed account succeeds without
// consuming anything.
func (s *Service) ConfirmEmail(ctx context.Context, email, code string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidAuthCode
		}
		return err
	}
	if user.EmailConfirmed {
		return nil
	}

	record, err := s.codes.FindValid(ctx, user.ID, domain.AuthCodeEmailConfirmation)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAuthCodeExpired
		}
		return err
	}
	if !authcode.Verify(code, record.CodeHash) {
		return ErrInvalidAuthCode
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.codes.WithTx(tx).MarkUsed(ctx, record.ID); err != nil {
			return err
		}
		return s.users.WithTx(tx).ConfirmEmail(ctx, user.ID)
	})
}

// LogIn authenticates by email and password and opens a new session.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *Service) LogIn(ctx context.Context, email, plaintext string) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := password.Verify(plaintext, user.HashedPassword)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if !user.EmailConfirmed {
		return nil, ErrEmailNotConfirmed
	}

	return s.issueSession(ctx, s.db, user)
}

// LogOut revokes the session behind refreshToken. Missing, malformed or
// already-revoked tokens are ignored: logout always succeeds.
func (s *Service) LogOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	claims, err := s.codec.VerifyRefresh(refreshToken)
	if err != nil {
		return nil
	}
	return s.tokens.Revoke(ctx, token.HashJTI(claims.ID))
}

// ForgotPassword mints and emails a password reset code. It reveals nothing
// about whether the email belongs to an account: unknown emails and mail
// delivery failures both return nil.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	code, err := s.mintCode(ctx, user.ID, domain.AuthCodePasswordReset)
	if err != nil {
		return err
	}
	if err := s.mailer.SendPasswordResetCode(ctx, user.Email, user.FirstName, code); err != nil {
		s.log.WithError(err).WithField("user_id", user.ID).Warn("password reset code delivery failed")
	}
	return nil
}

// VerifyForgotPassword checks a reset code and, on success, consumes it and
// opens a session so the user can call set-password.
func (s *Service) VerifyForgotPassword(ctx context.Context, email, code string) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidAuthCode
		}
		return nil, err
	}

	record, err := s.codes.FindValid(ctx, user.ID, domain.AuthCodePasswordReset)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthCodeExpired
		}
		return nil, err
	}
	if !authcode.Verify(code, record.CodeHash) {
		return nil, ErrInvalidAuthCode
	}

	var session *Session
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.codes.WithTx(tx).MarkUsed(ctx, record.ID); err != nil {
			return err
		}
		session, err = s.issueSession(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// SetPassword replaces the user's password. The caller's refresh session is
// consumed and every other session revoked inside one transaction, then a
// fresh session is issued. A logged-out or reused refresh token fails with
// ErrUnauthorized.
func (s *Service) SetPassword(ctx context.Context, userID uuid.UUID, refreshToken string, req SetPasswordRequest) (*Session, error) {
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	claims, err := s.codec.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, ErrUnauthorized
	}
	if claims.Subject != userID.String() {
		return nil, ErrUnauthorized
	}
	tokenHash := token.HashJTI(claims.ID)

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	var user *domain.User
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := s.tokens.WithTx(tx).ConsumeActive(ctx, userID, tokenHash)
		if err != nil {
			return err
		}
		if !ok {
			return ErrUnauthorized
		}

		user, err = s.users.WithTx(tx).GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnauthorized
			}
			return err
		}

		if err := s.users.WithTx(tx).UpdatePassword(ctx, userID, hashed); err != nil {
			return err
		}
		return s.tokens.WithTx(tx).RevokeAll(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	user.HashedPassword = hashed
	return s.issueSession(ctx, s.db, user)
}

// CurrentUser loads the authenticated user's profile.
func (s *Service) CurrentUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

// mintCode invalidates any outstanding codes of the same type and stores a
// fresh one, returning its plaintext for delivery.
func (s *Service) mintCode(ctx context.Context, userID uuid.UUID, codeType domain.AuthCodeType) (string, error) {
	if err := s.codes.InvalidateUnused(ctx, userID, codeType); err != nil {
		return "", err
	}
	code, err := s.codegen.Generate()
	if err != nil {
		return "", err
	}
	record := &domain.AuthCode{
		UserID:    userID,
		CodeHash:  authcode.Hash(code),
		CodeType:  codeType,
		ExpiresAt: time.Now().Add(s.codeTTL),
	}
	if err := s.codes.Create(ctx, record); err != nil {
		return "", err
	}
	return code, nil
}

// issueSession signs a token pair and persists the refresh session. db may
// be the service handle or an open transaction.
func (s *Service) issueSession(ctx context.Context, db *gorm.DB, user *domain.User) (*Session, error) {
	access, err := s.codec.IssueAccess(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	refresh, jti, err := s.codec.IssueRefresh(user.ID)
	if err != nil {
		return nil, err
	}

	record := &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: token.HashJTI(jti),
		ExpiresAt: time.Now().Add(s.codec.RefreshTTL()),
	}
	if err := s.tokens.WithTx(db).Create(ctx, record); err != nil {
		return nil, err
	}

	return &Session{User: user, AccessToken: access, RefreshToken: refresh}, nil
}
