//go:build windows

package fsys

import "io/fs"

// Windows has no execute bit; any regular file counts as executable.
func isExecutable(_ string, info fs.FileInfo) bool {
	return info.Mode().IsRegular()
}

func setExecutable(string) error {
	return nil
}
