package auth

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"giglog/internal/database"
	"giglog/internal/domain"
	"giglog/internal/pkg/authcode"
	"giglog/internal/pkg/token"
	"giglog/internal/repository"
)

type sentMail struct {
	to        string
	firstName string
	code      string
}

type fakeMailer struct {
	mu            sync.Mutex
	confirmations []sentMail
	resets        []sentMail
	fail          bool
}

func (m *fakeMailer) SendConfirmationCode(_ context.Context, to, firstName, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("mail provider down")
	}
	m.confirmations = append(m.confirmations, sentMail{to, firstName, code})
	return nil
}

func (m *fakeMailer) SendPasswordResetCode(_ context.Context, to, firstName, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("mail provider down")
	}
	m.resets = append(m.resets, sentMail{to, firstName, code})
	return nil
}

func (m *fakeMailer) lastConfirmation(t *testing.T) sentMail {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.confirmations)
	return m.confirmations[len(m.confirmations)-1]
}

func (m *fakeMailer) lastReset(t *testing.T) sentMail {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.resets)
	return m.resets[len(m.resets)-1]
}

func newTestService(t *testing.T) (*Service, *fakeMailer, *gorm.DB) {
	t.Helper()
	db, err := database.Connect("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	log := logrus.New()
	log.SetOutput(io.Discard)

	fm := &fakeMailer{}
	svc := NewService(
		db,
		repository.NewUserRepository(db),
		repository.NewRefreshTokenRepository(db),
		repository.NewAuthCodeRepository(db),
		token.NewCodec("test-secret", 15*time.Minute, time.Hour),
		authcode.NewGenerator(),
		fm,
		10*time.Minute,
		log,
	)
	return svc, fm, db
}

func signUpAndConfirm(t *testing.T, svc *Service, fm *fakeMailer, email string) *domain.User {
	t.Helper()
	ctx := context.Background()
	user, err := svc.SignUp(ctx, SignUpRequest{
		FirstName:       "Dana",
		LastName:        "Reyes",
		Email:           email,
		Password:        "correct horse",
		ConfirmPassword: "correct horse",
	})
	require.NoError(t, err)
	require.NoError(t, svc.ConfirmEmail(ctx, email, fm.lastConfirmation(t).code))
	return user
}

func TestSignUpPasswordMismatch(t *testing.T) {
	svc, fm, _ := newTestService(t)

	_, err := svc.SignUp(context.Background(), SignUpRequest{
		FirstName:       "Dana",
		LastName:        "Reyes",
		Email:           "mismatched@example.com",
		Password:        "correct horse",
		ConfirmPassword: "correct h0rse",
	})
	assert.ErrorIs(t, err, ErrPasswordMismatch)
	assert.Empty(t, fm.confirmations)
}

func TestSignUpFailsWhenConfirmationMailFails(t *testing.T) {
	svc, fm, _ := newTestService(t)
	fm.fail = true

	_, err := svc.SignUp(context.Background(), SignUpRequest{
		FirstName:       "Dana",
		LastName:        "Reyes",
		Email:           "undeliverable@example.com",
		Password:        "correct horse",
		ConfirmPassword: "correct horse",
	})
	assert.Error(t, err)
}

func TestSignUpConfirmLogIn(t *testing.T) {
	svc, fm, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.SignUp(ctx, SignUpRequest{
		FirstName:       "Dana",
		LastName:        "Reyes",
		Email:           "Dana@Example.com",
		Password:        "correct horse",
		ConfirmPassword: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", user.Email)
	assert.False(t, user.EmailConfirmed)

	mail := fm.lastConfirmation(t)
	assert.Equal(t, "dana@example.com", mail.to)
	assert.Len(t, mail.code, 6)

	// Login is blocked until the email is confirmed.
	_, err = svc.LogIn(ctx, "dana@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrEmailNotConfirmed)

	require.NoError(t, svc.ConfirmEmail(ctx, "dana@example.com", mail.code))

	session, err := svc.LogIn(ctx, "dana@example.com", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.True(t, session.User.EmailConfirmed)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	req := SignUpRequest{FirstName: "A", LastName: "B", Email: "dupe@example.com", Password: "password1", ConfirmPassword: "password1"}
	_, err := svc.SignUp(ctx, req)
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, req)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	// Email comparison ignores case.
	req.Email = "DUPE@example.com"
	_, err = svc.SignUp(ctx, req)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestLogInBadCredentials(t *testing.T) {
	svc, fm, _ := newTestService(t)
	ctx := context.Background()
	signUpAndConfirm(t, svc, fm, "login@example.com")

	_, err := svc.LogIn(ctx, "login@example.com", "wrong password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown email fails with the same error as a wrong password.
	_, err = svc.LogIn(ctx, "nobody@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestConfirmEmailWrongCode(t *testing.T) {
	svc, fm, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, SignUpRequest{
		FirstName: "A", LastName: "B", Email: "wrongcode@example.com",
		Password: "password1", ConfirmPassword: "password1",
	})
	require.NoError(t, err)

	code := fm.lastConfirmation(t).code
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	err = svc.ConfirmEmail(ctx, "wrongcode@example.com", wrong)
	assert.ErrorIs(t, err, ErrInvalidAuthCode)

	// The right code still works after a failed attempt.
	require.NoError(t, svc.ConfirmEmail(ctx, "wrongcode@example.com", code))
}

func TestConfirmEmailExpiredCode(t *testing.T) {
	svc, fm, db := newTestService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, SignUpRequest{
		FirstName: "A", LastName: "B", Email: "expired@example.com",
		Password: "password1", ConfirmPassword: "password1",
	})
	require.NoError(t, err)
	code := fm.lastConfirmation(t).code

	require.NoError(t, db.Model(&domain.AuthCode{}).
		Where("code_type = ?", domain.AuthCodeEmailConfirmation).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	err = svc.ConfirmEmail(ctx, "expired@example.com", code)
	assert.ErrorIs(t, err, ErrAuthCodeExpired)
}

func TestConfirmEmailIdempotentAndSingleUse(t *testing.T) {
	svc, fm, db := newTestService(t)
	ctx := context.Background()

	user, err := svc.SignUp(ctx, SignUpRequest{
		FirstName: "A", LastName: "B", Email: "twice@example.com",
		Password: "password1", ConfirmPassword: "password1",
	})
	require.NoError(t, err)
	code := fm.lastConfirmation(t).code

	require.NoError(t, svc.ConfirmEmail(ctx, "twice@example.com", code))

	// Confirming an already-confirmed account is a no-op success, even
	// with a garbage code.
	require.NoError(t, svc.ConfirmEmail(ctx, "twice@example.com", "999999"))

	// But the code itself was consumed: if the account were somehow
	// unconfirmed again, the same code must not work a second time.
	require.NoError(t, db.Model(&domain.User{}).
		Where("id = ?", user.ID).
		Update("email_confirmed", false).Error)
	err = svc.ConfirmEmail(ctx, "twice@example.com", code)
	assert.ErrorIs(t, err, ErrAuthCodeExpired)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	svc, fm, _ := newTestService(t)

	// No account: same nil result, and nothing is sent.
	require.NoError(t, svc.ForgotPassword(context.Background(), "ghost@example.com"))
	assert.Empty(t, fm.resets)
}

func TestForgotPasswordSwallowsMailFailure(t *testing.T) {
	svc, fm, _ := newTestService(t)
	signUpAndConfirm(t, svc, fm, "flaky@example.com")

	fm.fail = true
	require.NoError(t, svc.ForgotPassword(context.Background(), "flaky@example.com"))
}

func TestForgotPasswordInvalidatesOlderCodes(t *testing.T) {
	svc, fm, _ := newTestService(t)
	ctx := context.Background()
	signUpAndConfirm(t, svc, fm, "reset@example.com")

	require.NoError(t, svc.ForgotPassword(ctx, "reset@example.com"))
	first := fm.lastReset(t).code

	require.NoError(t, svc.ForgotPassword(ctx, "reset@example.com"))
	second := fm.lastReset(t).code

	if first != second {
		_, err := svc.VerifyForgotPassword(ctx, "reset@example.com", first)
		assert.ErrorIs(t, err, ErrInvalidAuthCode)
	}

	session, err := svc.VerifyForgotPassword(ctx, "reset@example.com", second)
	require.NoError(t, err)
	assert.NotEmpty(t, session.RefreshToken)

	// The code is single-use.
	_, err = svc.VerifyForgotPassword(ctx, "reset@example.com", second)
	assert.ErrorIs(t, err, ErrAuthCodeExpired)
}

func TestSetPasswordRotatesSessionsAndPassword(t *testing.T) {
	svc, fm, _ := newTestService(t)
	ctx := context.Background()
	user := signUpAndConfirm(t, svc, fm, "rotate@example.com")

	first, err := svc.LogIn(ctx, "rotate@example.com", "correct horse")
	require.NoError(t, err)
	second, err := svc.LogIn(ctx, "rotate@example.com", "correct horse")
	require.NoError(t, err)

	fresh, err := svc.SetPassword(ctx, user.ID, second.RefreshToken, SetPasswordRequest{
		Password:        "brand new pass",
		ConfirmPassword: "brand new pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.RefreshToken)

	// Old password no longer works, the new one does.
	_, err = svc.LogIn(ctx, "rotate@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.LogIn(ctx, "rotate@example.com", "brand new pass")
	require.NoError(t, err)

	// Every session from before the change is revoked, including the one
	// that performed it.
	_, err = svc.SetPassword(ctx, user.ID, first.RefreshToken, SetPasswordRequest{
		Password:        "another pass 1",
		ConfirmPassword: "another pass 1",
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = svc.SetPassword(ctx, user.ID, second.RefreshToken, SetPasswordRequest{
		Password:        "another pass 1",
		ConfirmPassword: "another pass 1",
	})
	assert.ErrorIs(t, err, ErrUnauthorized)

	// The session issued by the change itself still works.
	_, err = svc.SetPassword(ctx, user.ID, fresh.RefreshToken, SetPasswordRequest{
		Password:        "another pass 1",
		ConfirmPassword: "another pass 1",
	})
	require.NoError(t, err)
}

func TestSetPasswordAfterLogOut(t *testing.T) {
	svc, fm, _ := newTestService(t)
	ctx := context.Background()
	user := signUpAndConfirm(t, svc, fm, "loggedout@example.com")

	session, err := svc.LogIn(ctx, "loggedout@example.com", "correct horse")
	require.NoError(t, err)

	require.NoError(t, svc.LogOut(ctx, session.RefreshToken))

	_, err = svc.SetPassword(ctx, user.ID, session.RefreshToken, SetPasswordRequest{
		Password:        "brand new pass",
		ConfirmPassword: "brand new pass",
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestSetPasswordValidation(t *testing.T) {
	svc, fm, _ := newTestService(t)
	ctx := context.Background()
	user := signUpAndConfirm(t, svc, fm, "mismatch@example.com")

	session, err := svc.LogIn(ctx, "mismatch@example.com", "correct horse")
	require.NoError(t, err)

	_, err = svc.SetPassword(ctx, user.ID, session.RefreshToken, SetPasswordRequest{
		Password:        "brand new pass",
		ConfirmPassword: "different pass",
	})
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	// A refresh token belonging to another user is rejected.
	signUpAndConfirm(t, svc, fm, "someone-else@example.com")
	otherSession, err := svc.LogIn(ctx, "someone-else@example.com", "correct horse")
	require.NoError(t, err)

	_, err = svc.SetPassword(ctx, user.ID, otherSession.RefreshToken, SetPasswordRequest{
		Password:        "brand new pass",
		ConfirmPassword: "brand new pass",
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogOutIsBestEffort(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	assert.NoError(t, svc.LogOut(ctx, ""))
	assert.NoError(t, svc.LogOut(ctx, "not-a-jwt"))

	svc2, fm, _ := newTestService(t)
	signUpAndConfirm(t, svc2, fm, "twicelogout@example.com")
	session, err := svc2.LogIn(ctx, "twicelogout@example.com", "correct horse")
	require.NoError(t, err)

	assert.NoError(t, svc2.LogOut(ctx, session.RefreshToken))
	assert.NoError(t, svc2.LogOut(ctx, session.RefreshToken))
}

func TestCurrentUser(t *testing.T) {
	svc, fm, _ := newTestService(t)
	ctx := context.Background()
	user := signUpAndConfirm(t, svc, fm, "me@example.com")

	got, err := svc.CurrentUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = svc.CurrentUser(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrUnauthorized)
}
