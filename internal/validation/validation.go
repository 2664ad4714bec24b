// Package validation holds small input checks shared by the CLI
// commands.
package validation

import (
	"fmt"
	"net"
	"os"

	"rpatwari/si-log-extract/internal/report"
)

// IsValidInputFile checks that path names an existing regular file.
func IsValidInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is not a regular file", path)
	}
	return nil
}

// IsValidReportFormat checks that format names a supported report
// encoding.
func IsValidReportFormat(format string) error {
	_, err := report.ParseFormat(format)
	return err
}

// IsValidListenAddr checks that addr parses as a host:port listen
// address.
func IsValidListenAddr(addr string) error {
	if addr == "" {
		return fmt.Errorf("listen address cannot be empty")
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("invalid listen address %s: %w", addr, err)
	}
	return nil
}
