// Package build provides domain entities for build information.
package build

// Info holds build-time information injected via ldflags.
type Info struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
}

// AppID is the application identifier, also used as the D-Bus name.
const AppID = "de.swsnr.keepmeawake"

// AppName is the human-readable application name.
const AppName = "Keep Me Awake"

// RepoURL returns the repository URL.
func RepoURL() string {
	return "https://github.com/bnema/keepmeawake"
}
