package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
	"github.com/go-playground/validator/v10"
)

const (
	DefaultTokenTTL = 24 * time.Hour
	DefaultLatency  = time.Second
	mockLoginUserID = "1"
)

// LoginInput is the credential pair accepted by [Authenticator.Login].
type LoginInput struct {
	Email    string `validate:"required"`
	Password string `validate:"min=6"`
}

// RegisterInput is accepted by [Authenticator.Register].
type RegisterInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required"`
	Password string `validate:"min=6"`
}

// Result is a freshly issued identity.
type Result struct {
	User  models.User
	Token string
}

// Authenticator is a local stand-in for an identity provider.
//
// Any email with a password of at least six characters logs in. Nothing is checked against stored accounts.
type Authenticator struct {
	codec    *TokenCodec
	ttl      time.Duration
	latency  time.Duration
	validate *validator.Validate
	newID    func() string
}

// AuthenticatorOpts configures an [Authenticator]. Zero values fall back to defaults.
type AuthenticatorOpts struct {
	Codec   *TokenCodec
	TTL     time.Duration
	Latency time.Duration
	NewID   func() string
}

// NewAuthenticator creates an [Authenticator]. A negative latency disables the simulated delay.
func NewAuthenticator(opts AuthenticatorOpts) *Authenticator {
	a := &Authenticator{
		codec:    opts.Codec,
		ttl:      opts.TTL,
		latency:  opts.Latency,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		newID:    opts.NewID,
	}
	if a.codec == nil {
		a.codec = NewTokenCodec(nil)
	}
	if a.ttl <= 0 {
		a.ttl = DefaultTokenTTL
	}
	if a.latency == 0 {
		a.latency = DefaultLatency
	}
	if a.newID == nil {
		a.newID = shared.GenerateID
	}
	return a
}

// Login checks the credentials and issues a token for user id "1" whose name is the local part of email.
func (a *Authenticator) Login(ctx context.Context, email, password string) (*Result, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}

	email = strings.TrimSpace(email)
	if err := a.validate.Struct(LoginInput{Email: email, Password: password}); err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrInvalidCredentials, describe(err))
	}

	name, _, _ := strings.Cut(email, "@")
	return a.issue(models.User{ID: mockLoginUserID, Email: email, Name: name})
}

// Register checks the registration fields and issues a token for a new user with a random id.
func (a *Authenticator) Register(ctx context.Context, name, email, password string) (*Result, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}

	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if err := a.validate.Struct(RegisterInput{Name: name, Email: email, Password: password}); err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrInvalidRegistration, describe(err))
	}

	return a.issue(models.User{ID: a.newID(), Email: email, Name: name})
}

func (a *Authenticator) issue(user models.User) (*Result, error) {
	token, err := a.codec.Issue(Claims{UserID: user.ID, Email: user.Email}, a.ttl)
	if err != nil {
		return nil, err
	}
	return &Result{User: user, Token: token}, nil
}

func (a *Authenticator) wait(ctx context.Context) error {
	if a.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(a.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s characters", field, e.Param()))
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return strings.Join(msgs, ", ")
}
