//go:build windows

// Package singleinstance garantit un seul launcher par session utilisateur.
package singleinstance

import (
	"errors"

	"golang.org/x/sys/windows"
)

// Acquire crée le mutex nommé name. ok vaut false si une autre instance le détient.
func Acquire(name string) (release func(), ok bool, err error) {
	ptr, err := windows.UTF16PtrFromString(`Local\` + name)
	if err != nil {
		return nil, false, err
	}

	h, err := windows.CreateMutex(nil, false, ptr)
	if err != nil {
		if errors.Is(err, windows.ERROR_ALREADY_EXISTS) {
			if h != 0 {
				_ = windows.CloseHandle(h)
			}
			return nil, false, nil
		}
		return nil, false, err
	}

	return func() { _ = windows.CloseHandle(h) }, true, nil
}
