// Package version reports the version of this module from the build
// information embedded in the running binary.
package version

import (
	"errors"
	"runtime/debug"
)

// ModulePath is the import path of this module.
const ModulePath = "github.com/anoideaopen/mirror"

// develVersion is reported when the module version cannot be determined,
// as in tests and builds from a work tree.
const develVersion = "(devel)"

// ErrNoBuildInfo is returned when the binary carries no build information.
var ErrNoBuildInfo = errors.New("build information is not available")

// BuildInfo returns the build information of the running binary.
func BuildInfo() (*debug.BuildInfo, error) {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi == nil {
		return nil, ErrNoBuildInfo
	}
	return bi, nil
}

// Module returns the version this module was built at: the main module
// version when it is the main module, its dependency version (honouring a
// replacement) otherwise.
func Module() string {
	bi, err := BuildInfo()
	if err != nil {
		return develVersion
	}
	return moduleVersion(bi)
}

func moduleVersion(bi *debug.BuildInfo) string {
	if bi.Main.Path == ModulePath && bi.Main.Version != "" {
		return bi.Main.Version
	}
	for _, dep := range bi.Deps {
		if dep.Path != ModulePath {
			continue
		}
		if dep.Replace != nil && dep.Replace.Version != "" {
			return dep.Replace.Version
		}
		if dep.Version != "" {
			return dep.Version
		}
	}
	return develVersion
}
