package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/marquee/internal/shared"
)

func newTestAuthenticator() *Authenticator {
	return NewAuthenticator(AuthenticatorOpts{
		Codec:   NewTokenCodec(fixedClock(time.Unix(1_700_000_000, 0))),
		Latency: -1,
		NewID:   func() string { return "generated-id" },
	})
}

func TestAuthenticator(t *testing.T) {
	ctx := context.Background()

	t.Run("Login", func(t *testing.T) {
		t.Run("issues a session for any valid credentials", func(t *testing.T) {
			a := newTestAuthenticator()
			res, err := a.Login(ctx, "grace@navy.mil", "secret1")
			if err != nil {
				t.Fatalf("Login failed: %v", err)
			}
			if res.User.ID != "1" || res.User.Name != "grace" || res.User.Email != "grace@navy.mil" {
				t.Errorf("unexpected user %+v", res.User)
			}

			claims, err := a.codec.Decode(res.Token)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if claims.UserID != "1" || int64(*claims.Exp) != 1_700_000_000+86400 {
				t.Errorf("unexpected claims %+v", claims)
			}
		})

		t.Run("email without at sign uses whole email as name", func(t *testing.T) {
			res, err := newTestAuthenticator().Login(ctx, "grace", "secret1")
			if err != nil {
				t.Fatalf("Login failed: %v", err)
			}
			if res.User.Name != "grace" {
				t.Errorf("expected name grace, got %q", res.User.Name)
			}
		})

		tests := []struct {
			name, email, password, want string
		}{
			{"empty email", "", "secret1", "email is required"},
			{"short password", "a@b.c", "12345", "password must be at least 6 characters"},
			{"blank email", "   ", "secret1", "email is required"},
		}
		for _, tt := range tests {
			t.Run("rejects "+tt.name, func(t *testing.T) {
				_, err := newTestAuthenticator().Login(ctx, tt.email, tt.password)
				if !errors.Is(err, shared.ErrInvalidCredentials) {
					t.Fatalf("expected ErrInvalidCredentials, got %v", err)
				}
				if !strings.Contains(err.Error(), tt.want) {
					t.Errorf("expected %q in %v", tt.want, err)
				}
			})
		}
	})

	t.Run("Register", func(t *testing.T) {
		t.Run("issues a session with a new id", func(t *testing.T) {
			res, err := newTestAuthenticator().Register(ctx, "Grace Hopper", "grace@navy.mil", "secret1")
			if err != nil {
				t.Fatalf("Register failed: %v", err)
			}
			if res.User.ID != "generated-id" || res.User.Name != "Grace Hopper" {
				t.Errorf("unexpected user %+v", res.User)
			}
		})

		t.Run("default ids are unique", func(t *testing.T) {
			a := NewAuthenticator(AuthenticatorOpts{Latency: -1})
			r1, _ := a.Register(ctx, "a", "a@b.c", "secret1")
			r2, _ := a.Register(ctx, "a", "a@b.c", "secret1")
			if r1.User.ID == r2.User.ID {
				t.Error("expected distinct ids")
			}
		})

		t.Run("rejects missing name", func(t *testing.T) {
			_, err := newTestAuthenticator().Register(ctx, "", "a@b.c", "secret1")
			if !errors.Is(err, shared.ErrInvalidRegistration) {
				t.Errorf("expected ErrInvalidRegistration, got %v", err)
			}
		})
	})

	t.Run("simulated latency honors cancellation", func(t *testing.T) {
		a := NewAuthenticator(AuthenticatorOpts{Latency: time.Hour})
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := a.Login(cctx, "a@b.c", "secret1")
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		a := NewAuthenticator(AuthenticatorOpts{})
		if a.ttl != DefaultTokenTTL || a.latency != DefaultLatency {
			t.Errorf("unexpected defaults ttl=%v latency=%v", a.ttl, a.latency)
		}
	})
}
