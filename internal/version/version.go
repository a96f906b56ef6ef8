package version

import "fmt"

var (
	// Version is the semantic version (injected via ldflags at build time)
	Version = "dev"

	// GitCommit is the git commit hash (injected via ldflags)
	GitCommit = "none"

	// BuildDate is the build timestamp (injected via ldflags)
	BuildDate = "unknown"
)

// Info is the structured version payload served on /version.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
}

func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
	}
}

func String() string {
	return fmt.Sprintf("stowgate %s", Version)
}

func Verbose() string {
	return fmt.Sprintf("stowgate %s (commit: %s, built: %s)", Version, GitCommit, BuildDate)
}
