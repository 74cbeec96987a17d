package version

// Version is the commander CLI version. Release builds set it with
// -ldflags "-X github.com/lit-app/commander/internal/version.Version=...".
var Version = "0.1.0-dev"
