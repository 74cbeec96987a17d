package commander

import "strings"

// ValidatePath prefixes path with basePath unless it already starts with
// it, inserting a single separating slash when needed. It is idempotent.
//
// This is a string-prefix convenience, not a sandbox: ".." segments and
// symlinks are passed through for the server to resolve.
func ValidatePath(basePath, path string) string {
	if strings.HasPrefix(path, basePath) {
		return path
	}

	baseSlash := strings.HasSuffix(basePath, "/")
	pathSlash := strings.HasPrefix(path, "/")
	switch {
	case baseSlash && pathSlash:
		return basePath + path[1:]
	case baseSlash || pathSlash:
		return basePath + path
	default:
		return basePath + "/" + path
	}
}
