package internal

// Version is the application version, overridable at build time with
// -ldflags "-X github.com/docxtrans/docxtrans/internal.Version=...".
var Version = "0.1.0"
