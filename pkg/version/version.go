// Package version reports the simulator release.
package version

import "fmt"

// Current is the release implemented by this module.
const Current = "1.0"

// Banner returns "<name> <version>" for -version output.
func Banner(name string) string {
	return fmt.Sprintf("%s %s", name, Current)
}
