// Package buildinfo exposes version information injected via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/shopfront-go/internal/infra/buildinfo.Version=v0.3.0 \
//	  -X github.com/yndnr/shopfront-go/internal/infra/buildinfo.Commit=$(git rev-parse --short HEAD)"
//
// The same values feed the CLI version output and the User-Agent header
// sent to the storefront backend.
package buildinfo
