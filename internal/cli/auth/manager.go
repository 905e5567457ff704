package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/yndnr/kvcli/internal/cli/connection"
	"github.com/yndnr/kvcli/internal/cli/prompt"
	"github.com/yndnr/kvcli/internal/core/domain"
	"github.com/yndnr/kvcli/internal/telemetry/logger"
	"github.com/yndnr/kvcli/internal/telemetry/metric"
	"github.com/yndnr/kvcli/pkg/token"
)

// Outcome is the result of Authenticate.
type Outcome int

const (
	// ContinuedAsGuest means the user cancelled the password prompt.
	ContinuedAsGuest Outcome = iota
	// LoggedIn means a credential is now attached.
	LoggedIn
)

func (o Outcome) String() string {
	if o == LoggedIn {
		return "logged in"
	}
	return "guest"
}

// Login attempt results, used as the metric label.
const (
	resultSuccess  = "success"
	resultRejected = "rejected"
	resultError    = "error"
)

// PasswordPrompt is shown before each attempt.
const PasswordPrompt = "Admin password (Esc to continue as guest): "

// Options configures a Manager.
type Options struct {
	// RetryInterval is the minimum time between two login requests.
	// Zero disables pacing.
	RetryInterval time.Duration

	// Metrics records login attempts. Nil disables it.
	Metrics *metric.Registry
}

// Manager owns the admin authentication lifecycle of a session.
type Manager struct {
	session *connection.Session
	reader  *prompt.Reader
	out     io.Writer
	limiter *rate.Limiter
	metrics *metric.Registry
}

// NewManager creates a Manager. Messages for the user go to out.
func NewManager(session *connection.Session, reader *prompt.Reader, out io.Writer, opts Options) *Manager {
	limit := rate.Inf
	if opts.RetryInterval > 0 {
		limit = rate.Every(opts.RetryInterval)
	}

	return &Manager{
		session: session,
		reader:  reader,
		out:     out,
		limiter: rate.NewLimiter(limit, 1),
		metrics: opts.Metrics,
	}
}

// Authenticate prompts for the admin password and exchanges it for a
// token, retrying until the service accepts one or the user cancels.
//
// Cancel yields ContinuedAsGuest with a nil error and leaves any attached
// credential in place. An error is returned only when input ended, was
// interrupted, or ctx was cancelled.
func (m *Manager) Authenticate(ctx context.Context) (Outcome, error) {
	log := logger.L(ctx)

	for {
		secret, err := m.reader.Prompt(PasswordPrompt, prompt.Masked)
		if errors.Is(err, prompt.ErrCancelled) {
			fmt.Fprintln(m.out, "Continuing as guest.")
			return ContinuedAsGuest, nil
		}
		if err != nil {
			return ContinuedAsGuest, err
		}
		if strings.TrimSpace(secret) == "" {
			fmt.Fprintln(m.out, "Password cannot be empty.")
			continue
		}

		if err := m.limiter.Wait(ctx); err != nil {
			return ContinuedAsGuest, err
		}

		raw, err := m.session.Login(ctx, secret)
		switch {
		case err == nil:
			m.observe(resultSuccess)
		case errors.Is(err, domain.ErrInvalidPassword):
			m.observe(resultRejected)
			log.Debug("login rejected", "error", err)
			fmt.Fprintln(m.out, "Invalid password. Try again, or press Esc to continue as guest.")
			continue
		default:
			m.observe(resultError)
			log.Warn("login failed", "error", err)
			fmt.Fprintf(m.out, "Login failed: %v\n", err)
			continue
		}

		cred := domain.Credential{Token: raw}
		claims, err := token.DecodeClaims(raw)
		if err != nil {
			log.Debug("token claims not decoded", "error", err)
		} else {
			cred.Claims = claims
		}

		m.session.Attach(cred)
		m.printLoggedIn(cred)
		return LoggedIn, nil
	}
}

// CheckAuthorized probes the admin endpoint with whatever credential is
// attached, including none. Any failure reads as not authorized.
func (m *Manager) CheckAuthorized(ctx context.Context) bool {
	err := m.session.CheckAdmin(ctx)
	if err != nil {
		logger.L(ctx).Debug("admin check failed", "error", err)
		return false
	}
	return true
}

func (m *Manager) printLoggedIn(cred domain.Credential) {
	fmt.Fprintln(m.out, "Logged in as admin.")
	if exp, ok := token.ExpiresAt(cred.Claims); ok {
		fmt.Fprintf(m.out, "Token expires at %s.\n", exp.Local().Format(time.RFC1123))
	}
}

func (m *Manager) observe(result string) {
	if m.metrics != nil {
		m.metrics.ObserveLogin(result)
	}
}
