package common

import (
	"path"
	"strings"
)

// PkgAlias returns the name a package is usually imported as: the last
// element of its path, skipping a trailing major version such as /v2.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	dir, last := path.Split(pkgPath)
	if dir != "" && isMajorVersion(last) {
		return path.Base(strings.TrimSuffix(dir, "/"))
	}

	return last
}

func isMajorVersion(elem string) bool {
	digits, ok := strings.CutPrefix(elem, "v")
	if !ok || digits == "" {
		return false
	}

	return strings.Trim(digits, "0123456789") == ""
}
