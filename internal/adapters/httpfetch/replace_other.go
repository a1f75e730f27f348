//go:build !windows

package httpfetch

import "os"

// Sur POSIX, rename remplace la destination de façon atomique.
func replaceFile(src, dst string) error {
	return os.Rename(src, dst)
}
