package shipengine

import (
	"fmt"
	"runtime"
)

// Version is reported in the User-Agent header. Set at build time.
var Version = "dev"

// UserAgent returns the default User-Agent header value.
func UserAgent() string {
	return fmt.Sprintf("shipctl/%s (%s/%s; %s)", Version, runtime.GOOS, runtime.GOARCH, runtime.Version())
}
