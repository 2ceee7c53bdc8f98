// internal/version/version.go
package version

// Version is overridden at build time with -ldflags "-X mitabmerge/internal/version.Version=...".
var Version = "dev"
