package command

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/kvcli/internal/core/domain"
)

// assertInOrder checks that each of wants appears in s after the previous one.
func assertInOrder(t *testing.T, s string, wants ...string) {
	t.Helper()
	rest := s
	for _, want := range wants {
		i := strings.Index(rest, want)
		if i < 0 {
			t.Fatalf("missing %q (in order) in output:\n%s", want, s)
		}
		rest = rest[i+len(want):]
	}
}

func TestInteractive_GuestSession(t *testing.T) {
	server := newMockServer(t)
	input := "\x1b" +
		"1\nscore\n123\n" +
		"4\nscore\n" +
		"2\nscore\ny" +
		"4\nscore\n" +
		"7\n"
	env, out := newTestEnv(t, server, input)

	if err := Interactive(context.Background(), env); err != nil {
		t.Fatalf("Interactive() error = %v", err)
	}

	assertInOrder(t, out.String(),
		"Connecting to "+server.URL,
		"[PASS] Reachability",
		"[PASS] Data store: store is empty",
		"[PASS] Service metadata",
		"All checks passed.",
		"Admin password (Esc to continue as guest): ",
		"Continuing as guest.",
		"== kvcli ==",
		"Uploaded [Key: score, Value: 123].",
		"[Key: score, Value: 123]",
		"Found [Key: score, Value: 123]",
		"Deleted [Key: score, Value: 123].",
		`Key "score" not found.`,
		"Goodbye.",
	)

	if _, ok := env.Session.Credential(); ok {
		t.Error("guest session should carry no credential")
	}
	if server.callsTo("DELETE /api/data/score") != 1 {
		t.Errorf("DELETE calls = %d, want 1", server.callsTo("DELETE /api/data/score"))
	}
	if len(server.snapshot()) != 0 {
		t.Errorf("records = %v, want none", server.snapshot())
	}
}

func TestInteractive_AdminSession(t *testing.T) {
	server := newMockServer(t, domain.Record{Key: "a", Value: 1}, domain.Record{Key: "b", Value: 2})
	env, out := newTestEnv(t, server, testPassword+"\n3\n6\n7\n")

	if err := Interactive(context.Background(), env); err != nil {
		t.Fatalf("Interactive() error = %v", err)
	}

	assertInOrder(t, out.String(),
		"[PASS] Data store: 2 records available",
		"Logged in as admin.",
		"Admin access confirmed.",
		"1. [Key: a, Value: 1]",
		"2. [Key: b, Value: 2]",
		"Admin check: authorized.",
		"Goodbye.",
	)
}

func TestInteractive_MenuInput(t *testing.T) {
	server := newMockServer(t)
	// Unknown choices re-prompt; blank lines and Escape are ignored;
	// labels resolve by prefix.
	env, out := newTestEnv(t, server, "\x1b9\n\n\x1blis\nexit\n")

	if err := Interactive(context.Background(), env); err != nil {
		t.Fatalf("Interactive() error = %v", err)
	}
	assertInOrder(t, out.String(), "Invalid selection.", "The store is empty.", "Goodbye.")
}

func TestInteractive_EndOfInput(t *testing.T) {
	server := newMockServer(t)
	env, out := newTestEnv(t, server, "\x1b1\nkey\n")

	if err := Interactive(context.Background(), env); err != nil {
		t.Fatalf("Interactive() error = %v, end of input ends the session", err)
	}
	if server.callsTo("POST /api/data") != 0 {
		t.Error("nothing should be uploaded without a value")
	}
	if strings.Contains(out.String(), "Goodbye.") {
		t.Error("end of input is not an explicit exit")
	}
}

func TestInteractive_DiagnosticsFailure(t *testing.T) {
	server := newMockServer(t)
	server.setHealthStatus(http.StatusInternalServerError)
	env, out := newTestEnv(t, server, "1\nscore\n5\n")

	err := Interactive(context.Background(), env)

	var exitErr cli.ExitCoder
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		t.Fatalf("Interactive() error = %v, want exit code 1", err)
	}
	if server.totalCalls() != 1 || server.callsTo("GET /health") != 1 {
		t.Errorf("calls = %d, want only the health probe", server.totalCalls())
	}
	assertInOrder(t, out.String(),
		"[FAIL] Reachability: reached endpoint but server returned 500",
		`Diagnostics failed at "Reachability"; cannot continue.`,
	)
	if strings.Contains(out.String(), "== kvcli ==") {
		t.Error("menu must not be shown after failed diagnostics")
	}
}

func TestInteractive_DiagnosticsFailureWaits(t *testing.T) {
	for _, input := range []string{"\n", ""} {
		server := newMockServer(t)
		server.setHealthStatus(http.StatusServiceUnavailable)
		env, out := newTestEnv(t, server, input)
		env.Config.Diagnostics.WaitOnFail = true

		err := Interactive(context.Background(), env)

		var exitErr cli.ExitCoder
		if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
			t.Fatalf("input %q: Interactive() error = %v, want exit code 1", input, err)
		}
		if !strings.Contains(out.String(), "Press Enter to exit.") {
			t.Errorf("input %q: output = %q", input, out.String())
		}
	}
}
