package command

import (
	"context"
	"sort"
	"time"

	"github.com/yndnr/kvcli/internal/cli/auth"
	"github.com/yndnr/kvcli/internal/telemetry/logger"
	"github.com/yndnr/kvcli/pkg/token"
)

// Login runs the admin login and then verifies the new credential.
func Login(ctx context.Context, env *Env) error {
	outcome, err := env.Auth.Authenticate(ctx)
	if err != nil {
		return err
	}
	if outcome != auth.LoggedIn {
		return nil
	}

	if env.Auth.CheckAuthorized(ctx) {
		env.printf("Admin access confirmed.\n")
	} else {
		env.printf("The service did not confirm admin access for this token.\n")
	}
	return nil
}

// AdminStatus shows the attached credential and whether the service
// accepts it right now. A credential whose exp claim has passed is
// dropped, so later calls go out as guest.
func AdminStatus(ctx context.Context, env *Env) error {
	cred, ok := env.Session.Credential()
	if !ok {
		env.printf("Not logged in (guest).\n")
	} else {
		env.printf("Logged in with bearer token %s.\n", logger.RedactString(cred.Token))
		if cred.Claims == nil {
			env.printf("Token claims could not be decoded.\n")
		}

		names := make([]string, 0, len(cred.Claims))
		for name := range cred.Claims {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			env.printf("  %s: %s\n", name, cred.Claims[name])
		}

		if exp, ok := token.ExpiresAt(cred.Claims); ok && time.Now().After(exp) {
			env.Session.Detach()
			logger.L(ctx).Info("expired credential detached", "expired_at", exp)
			env.printf("The token expired at %s; continuing as guest. Log in again for admin access.\n",
				exp.Local().Format(time.RFC1123))
		}
	}

	if env.Auth.CheckAuthorized(ctx) {
		env.printf("Admin check: authorized.\n")
	} else {
		env.printf("Admin check: not authorized.\n")
	}
	return nil
}
