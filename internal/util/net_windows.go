//go:build windows

package util

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// Windows has no SO_REUSEPORT; SO_REUSEADDR alone allows the shared bind.

func setSockoptShared(c syscall.RawConn) error {
	var optErr error
	err := c.Control(func(fd uintptr) {
		optErr = windows.SetsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, windows.SO_REUSEADDR, 1)
	})
	if err != nil {
		return err
	}
	return optErr
}

func setSockoptBroadcast(c syscall.RawConn) error {
	var optErr error
	err := c.Control(func(fd uintptr) {
		optErr = windows.SetsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, windows.SO_BROADCAST, 1)
	})
	if err != nil {
		return err
	}
	return optErr
}
