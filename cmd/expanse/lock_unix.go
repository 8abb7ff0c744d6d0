//go:build !windows

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/dixieflatline76/Expanse/config"
)

var lockFile *os.File

func lockPath() string {
	return filepath.Join(os.TempDir(), strings.ToLower(config.AppName)+".lock")
}

// acquireLock takes an exclusive fcntl lock on a file in the temp dir. It returns false when
// another instance holds it.
func acquireLock() (bool, error) {
	f, err := os.OpenFile(lockPath(), os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return false, fmt.Errorf("failed to open lock file: %w", err)
	}

	err = syscall.FcntlFlock(f.Fd(), syscall.F_SETLK, &syscall.Flock_t{Type: syscall.F_WRLCK})
	if err != nil {
		f.Close()
		if errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EACCES) {
			return false, nil
		}
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}

	// Record the owner for anyone inspecting a stuck lock.
	f.Truncate(0)
	fmt.Fprintf(f, "%d\n", os.Getpid())

	lockFile = f
	return true, nil
}

// releaseLock drops the lock and removes the file.
func releaseLock() {
	if lockFile == nil {
		return
	}
	syscall.FcntlFlock(lockFile.Fd(), syscall.F_SETLK, &syscall.Flock_t{Type: syscall.F_UNLCK})
	lockFile.Close()
	os.Remove(lockFile.Name())
	lockFile = nil
}
