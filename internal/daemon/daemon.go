package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"erlang-solutions.com/argstore/internal/i18n"
	"erlang-solutions.com/argstore/internal/util"
	"erlang-solutions.com/argstore/pkg/errors"
)

const PidFileName = "argstore.pid"

func DefaultPidDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.WrapWithBase(errors.ErrPidFile, i18n.T("home_dir_error", nil), err)
	}
	return filepath.Join(home, ".argstore"), nil
}

// WritePidFile records the current process ID in dir and returns the path
// it wrote.
func WritePidFile(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.WrapWithBase(errors.ErrPidFile, i18n.T("pid_dir_create_error", nil), err)
	}

	pidPath := filepath.Join(dir, PidFileName)
	pid := os.Getpid()

	if err := os.WriteFile(pidPath, fmt.Appendf(nil, "%d", pid), 0644); err != nil {
		return "", errors.WrapWithBase(errors.ErrPidFile, i18n.T("pid_file_write_error", nil), err)
	}

	util.Info(i18n.T("pid_file_written", map[string]any{
		"Path": pidPath,
		"PID":  pid,
	}), nil)

	return pidPath, nil
}

func RemovePidFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.WrapWithBase(errors.ErrPidFile, "failed to remove pid file", err)
	}
	return nil
}
