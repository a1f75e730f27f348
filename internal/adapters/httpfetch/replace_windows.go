//go:build windows

package httpfetch

import "golang.org/x/sys/windows"

// replaceFile attend que le remplacement soit écrit sur disque (WRITE_THROUGH)
// avant de rendre la main.
func replaceFile(src, dst string) error {
	from, err := windows.UTF16PtrFromString(src)
	if err != nil {
		return err
	}
	to, err := windows.UTF16PtrFromString(dst)
	if err != nil {
		return err
	}
	return windows.MoveFileEx(from, to, windows.MOVEFILE_REPLACE_EXISTING|windows.MOVEFILE_WRITE_THROUGH)
}
