// Package buildinfo exposes build-time information for kvcli.
//
// Version, Commit and BuildTime are injected via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/kvcli/internal/infra/buildinfo.Version=v1.0.0 \
//	  -X github.com/yndnr/kvcli/internal/infra/buildinfo.Commit=abc123"
//
// The version is shown by --version and sent in the User-Agent header.
package buildinfo
