package application

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ischaojie/soulapi/config"
	"github.com/ischaojie/soulapi/internal/domain/entity"
	"github.com/ischaojie/soulapi/internal/domain/repository"
	"github.com/ischaojie/soulapi/pkg/helpers"
	"github.com/ischaojie/soulapi/pkg/mailer"
	tpl "github.com/ischaojie/soulapi/pkg/mailer/templates"
)

var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInactiveUser       = errors.New("inactive user")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user already exists")
	ErrRegistrationClosed = errors.New("forbidden for register")
	ErrInvalidToken       = errors.New("invalid token")
	ErrConfirmFailed      = errors.New("confirm error")
	ErrIdentityMismatch   = errors.New("token does not belong to this user")
)

// Publisher hands messages to the email queue. Satisfied by
// helpers.RabbitPublisher; tests substitute an in-memory fake.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// AuthService orchestrates credentials, tokens and the registration /
// confirmation / password reset flows.
type AuthService struct {
	Users  repository.UserRepository
	JWT    *helpers.JWTManager
	Pub    Publisher
	Logger *logrus.Logger
	Cfg    *config.Config
}

func NewAuthService(users repository.UserRepository, jwt *helpers.JWTManager, pub Publisher, logger *logrus.Logger, cfg *config.Config) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Pub: pub, Logger: logger, Cfg: cfg}
}

// Register creates an unconfirmed account and, when mail is enabled,
// enqueues a confirmation email carrying a short-lived token.
func (s *AuthService) Register(ctx context.Context, email, password, fullName string) (*entity.User, error) {
	if !s.Cfg.UsersOpenRegistration {
		return nil, ErrRegistrationClosed
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:          email,
		FullName:       fullName,
		HashedPassword: hash,
		IsActive:       true,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	s.sendTokenEmail(ctx, u.Email, tpl.ConfirmEmail, s.Cfg.ConfirmURL)
	return u, nil
}

// Authenticate checks email/password. A stored hash that is not valid bcrypt
// output is an internal fault, logged and surfaced as-is so callers do not
// mistake it for a bad password.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	ok, err := helpers.VerifyPassword(password, u.HashedPassword)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("stored password hash is unusable")
		}
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Login authenticates and issues a bearer token. Superusers receive an
// elevated token with no expiry.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	if !u.IsActive {
		return "", nil, ErrInactiveUser
	}
	token, _, err := s.JWT.GenerateAccessToken(strconv.FormatInt(u.ID, 10), u.IsSuperuser)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// Confirm redeems a confirmation token and flips is_confirmed. The flag is
// re-checked after the write to catch a failed or partial update.
func (s *AuthService) Confirm(ctx context.Context, token string) (*entity.User, error) {
	email, err := s.JWT.Parse(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	confirmed := true
	u, err = s.Users.Update(ctx, u.ID, repository.UserPatch{IsConfirmed: &confirmed})
	if err != nil {
		return nil, err
	}
	if !u.IsConfirmed {
		return nil, ErrConfirmFailed
	}
	return u, nil
}

// RequestPasswordReset enqueues a reset email for the given account when
// mail is enabled. Always succeeds from the caller's perspective.
func (s *AuthService) RequestPasswordReset(ctx context.Context, u *entity.User) {
	s.sendTokenEmail(ctx, u.Email, tpl.ResetPassword, s.Cfg.ResetPasswordURL)
}

// ConfirmPasswordReset redeems a reset token for the authenticated user and
// overwrites the password hash. The token subject must be the caller's own
// email.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, current *entity.User, token, newPassword string) error {
	email, err := s.JWT.Parse(token)
	if err != nil {
		return ErrInvalidToken
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !strings.EqualFold(u.Email, current.Email) {
		return ErrIdentityMismatch
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	_, err = s.Users.Update(ctx, u.ID, repository.UserPatch{HashedPassword: &hash})
	return err
}

// CreateUser is the administrative create: the account comes out confirmed.
func (s *AuthService) CreateUser(ctx context.Context, email, password, fullName string, superuser bool) (*entity.User, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:          email,
		FullName:       fullName,
		HashedPassword: hash,
		IsActive:       true,
		IsSuperuser:    superuser,
		IsConfirmed:    true,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// UserUpdateInput is the typed partial update accepted by the user admin
// and profile endpoints. A plaintext Password is hashed before storage.
type UserUpdateInput struct {
	FullName    *string
	Password    *string
	IsActive    *bool
	IsSuperuser *bool
	IsConfirmed *bool
}

func (s *AuthService) UpdateUser(ctx context.Context, id int64, in UserUpdateInput) (*entity.User, error) {
	patch := repository.UserPatch{
		FullName:    in.FullName,
		IsActive:    in.IsActive,
		IsSuperuser: in.IsSuperuser,
		IsConfirmed: in.IsConfirmed,
	}
	if in.Password != nil {
		hash, err := helpers.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		patch.HashedPassword = &hash
	}
	u, err := s.Users.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *AuthService) ListUsers(ctx context.Context, skip, limit int) ([]entity.User, error) {
	return s.Users.List(ctx, skip, limit)
}

// sendTokenEmail issues an email-subject token and hands the job to the
// queue. Fire-and-forget: failures are logged, never propagated.
func (s *AuthService) sendTokenEmail(ctx context.Context, email, template, baseURL string) {
	if s.Pub == nil || !s.Cfg.MailSendEnabled || email == "" {
		return
	}
	token, _, err := s.JWT.GenerateConfirmToken(email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", email).Error("generate confirm token failed")
		}
		return
	}
	job := mailer.EmailJob{
		To:       email,
		Template: template,
		Data: map[string]any{
			"ProjectName": s.Cfg.AppName,
			"Email":       email,
			"Link":        baseURL + "?token=" + token,
			"ExpiresIn":   s.Cfg.ConfirmTokenTTL.String(),
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", email).Warn("enqueue email failed")
	}
}
