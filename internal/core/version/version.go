// Package version reports the build stamp of the running binary
package version

// BuildInfo is the build stamp served by /meta/version
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// set with -ldflags "-X 'canteiro/internal/core/version.version=v0.1.0' -X ..."
var (
	service = "canteiro-api"
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info returns the build stamp
func Info() BuildInfo {
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}
