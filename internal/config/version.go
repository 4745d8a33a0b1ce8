package config

// Version is the worktime binary version.
// Set at build time via: -ldflags "-X github.com/hfappmaker/worktime/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"
