package version

// Version is the version of the awsls CLI.
// It can be set at build time using ldflags:
//   go build -ldflags "-X awsls/internal/version.Version=v0.3.0"
var Version = "dev"
