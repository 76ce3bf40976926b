package main

import (
	"context"
	"time"

	"github.com/desertthunder/marquee/internal/auth"
	"github.com/urfave/cli/v3"
)

// sessionStatus is the JSON shape printed by auth status.
type sessionStatus struct {
	Phase     string     `json:"phase"`
	UserID    string     `json:"userId,omitempty"`
	Email     string     `json:"email,omitempty"`
	Name      string     `json:"name,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// AuthLogin signs in with email and password and persists the session.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	r.logger.Info("signing in", "email", email)

	res, err := r.authenticator.Login(ctx, email, cmd.String("password"))
	if err != nil {
		return err
	}
	return r.startSession(res)
}

// AuthRegister creates an account and persists the session.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	r.logger.Info("registering", "email", email)

	res, err := r.authenticator.Register(ctx, cmd.String("name"), email, cmd.String("password"))
	if err != nil {
		return err
	}
	return r.startSession(res)
}

func (r *Runner) startSession(res *auth.Result) error {
	if err := r.session.Login(res.User, res.Token); err != nil {
		return err
	}
	return r.writePlain("✓ Signed in as %s <%s>\n", res.User.Name, res.User.Email)
}

// AuthLogout clears the persisted session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.session.Logout(); err != nil {
		return err
	}
	return r.writePlain("✓ Signed out\n")
}

// AuthStatus restores the persisted session and reports it.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.session.Load(); err != nil {
		r.logger.Warn("failed to clear stale session", "error", err)
	}

	st := r.session.State()
	status := sessionStatus{Phase: st.Phase().String()}
	if st.User != nil {
		status.UserID, status.Email, status.Name = st.User.ID, st.User.Email, st.User.Name
	}
	if claims, err := r.codec.Decode(st.Token); err == nil && claims.Exp != nil {
		exp := claims.ExpiresAt()
		status.ExpiresAt = &exp
	}

	if cmd.Bool("json") {
		return r.writeJSON(status, cmd.Bool("pretty"))
	}

	if !st.IsAuthenticated {
		return r.writePlain("Not signed in. Run 'marquee auth login' to start a session.\n")
	}

	r.writePlain("✓ Signed in as %s <%s>\n", status.Name, status.Email)
	r.writePlain("User ID: %s\n", status.UserID)
	if status.ExpiresAt != nil {
		r.writePlain("Expires: %s\n", status.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}
