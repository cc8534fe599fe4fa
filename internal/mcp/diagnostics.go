package mcp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/standardbeagle/mpnkit/internal/logging"
)

// DiagnosticLogPath returns a fresh timestamped log file path under the system temp
// directory, falling back to the home directory when temp is not writable.
func DiagnosticLogPath() string {
	logDir := filepath.Join(os.TempDir(), "mpnkit-mcp-logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = "."
		}
		logDir = filepath.Join(homeDir, ".mpnkit-mcp-logs")
		_ = os.MkdirAll(logDir, 0o755)
	}
	timestamp := time.Now().Format("2006-01-02T150405")
	return filepath.Join(logDir, fmt.Sprintf("mcp-%s.log", timestamp))
}

// NewDiagnosticLogger builds the logger for stdio serving. The MCP protocol owns
// stdout, so console outputs are redirected to a log file. It returns the file
// actually written to.
func NewDiagnosticLogger(cfg logging.Config) (*zap.Logger, string, error) {
	switch strings.ToLower(cfg.OutputPath) {
	case "", "stdout", "stderr":
		cfg.OutputPath = DiagnosticLogPath()
	}
	logger, err := logging.New(cfg)
	if err != nil {
		return nil, "", err
	}
	return logger, cfg.OutputPath, nil
}
