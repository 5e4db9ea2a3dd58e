package model

// Version is overridden at build time with -ldflags "-X dirsize/internal/model.Version=...".
var Version = "0.3.0"

// Release coordinates used by the update check.
const (
	RepoOwner = "Coi-l"
	RepoName  = "AOC-2022"
)
