package version

// Set at build time via -ldflags:
//
//	-X github.com/orlp/sortx/version.Version=v1.2.3
//	-X github.com/orlp/sortx/version.Date=2026-01-02T15:04:05Z
var (
	Version = "dev"
	Date    = "1970-01-01T00:00:00Z"
)
