package diagnose

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/yndnr/kvcli/internal/cli/connection"
	"github.com/yndnr/kvcli/internal/core/domain"
	"github.com/yndnr/kvcli/internal/telemetry/logger"
)

// Check names.
const (
	CheckReachability = "Reachability"
	CheckDataStore    = "Data store"
	CheckMetadata     = "Service metadata"
)

// Service is the part of the session the checks use.
type Service interface {
	BaseURL() string
	Health(ctx context.Context, path string) error
	ListRecords(ctx context.Context) ([]domain.Record, error)
	Meta(ctx context.Context) (map[string]string, error)
}

// Options selects the checks.
type Options struct {
	HealthPath string
	CheckMeta  bool
}

// Result is the outcome of one check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Report is the outcome of one run.
type Report struct {
	Results []Result
	OK      bool
	// Meta holds the service metadata when that check passed.
	Meta map[string]string
}

// Failed returns the failing result, if any.
func (r Report) Failed() (Result, bool) {
	for _, res := range r.Results {
		if !res.Passed {
			return res, true
		}
	}
	return Result{}, false
}

type check struct {
	name string
	run  func(ctx context.Context, svc Service, rep *Report) (string, error)
}

// Run executes the checks in order and stops at the first failure.
// Transport errors are turned into failed results; Run itself never fails.
func Run(ctx context.Context, svc Service, opts Options) Report {
	healthPath := opts.HealthPath
	if healthPath == "" {
		healthPath = "/health"
	}

	checks := []check{
		{CheckReachability, func(ctx context.Context, svc Service, _ *Report) (string, error) {
			return reachability(ctx, svc, healthPath)
		}},
		{CheckDataStore, dataStore},
	}
	if opts.CheckMeta {
		checks = append(checks, check{CheckMetadata, metadata})
	}

	log := logger.L(ctx)
	rep := Report{Results: make([]Result, 0, len(checks))}

	for _, c := range checks {
		detail, err := c.run(ctx, svc, &rep)
		res := Result{Name: c.name, Passed: err == nil, Detail: detail}
		if err != nil {
			res.Detail = err.Error()
		}
		rep.Results = append(rep.Results, res)
		log.Debug("diagnostic check", "check", c.name, "passed", res.Passed, "detail", res.Detail)

		if !res.Passed {
			return rep
		}
	}

	rep.OK = true
	return rep
}

func reachability(ctx context.Context, svc Service, path string) (string, error) {
	err := svc.Health(ctx, path)
	switch {
	case err == nil:
		return "server responded at " + svc.BaseURL(), nil
	case connection.IsTimeout(err):
		return "", fmt.Errorf("timed out reaching %s", svc.BaseURL())
	case connection.StatusOf(err) != 0:
		return "", fmt.Errorf("reached endpoint but server returned %d", connection.StatusOf(err))
	default:
		return "", fmt.Errorf("could not reach %s: %w", svc.BaseURL(), err)
	}
}

func dataStore(ctx context.Context, svc Service, _ *Report) (string, error) {
	records, err := svc.ListRecords(ctx)
	switch {
	case err == nil:
		return fmt.Sprintf("%d records available", len(records)), nil
	case errors.Is(err, domain.ErrStoreEmpty):
		return "store is empty", nil
	case connection.StatusOf(err) != 0:
		return "", fmt.Errorf("listing returned %d", connection.StatusOf(err))
	default:
		return "", fmt.Errorf("listing failed: %w", err)
	}
}

func metadata(ctx context.Context, svc Service, rep *Report) (string, error) {
	meta, err := svc.Meta(ctx)
	if err != nil {
		return "", fmt.Errorf("metadata unavailable: %w", err)
	}
	if len(meta) == 0 {
		return "", errors.New("metadata is empty")
	}
	rep.Meta = meta
	return fmt.Sprintf("%d entries", len(meta)), nil
}

// Print renders the report.
func (r Report) Print(w io.Writer) {
	for _, res := range r.Results {
		mark := "PASS"
		if !res.Passed {
			mark = "FAIL"
		}
		fmt.Fprintf(w, "[%s] %s: %s\n", mark, res.Name, res.Detail)
	}

	if len(r.Meta) > 0 {
		keys := make([]string, 0, len(r.Meta))
		for k := range r.Meta {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "       %s: %s\n", k, r.Meta[k])
		}
	}

	if r.OK {
		fmt.Fprintln(w, "All checks passed.")
		return
	}
	if res, ok := r.Failed(); ok {
		fmt.Fprintf(w, "Diagnostics failed at %q; cannot continue.\n", res.Name)
	}
}
