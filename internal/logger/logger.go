// Package logger prints the --verbose trace of a kb run to stderr.
//
// Debug, Info, Warn and Section only print in verbose mode; Error always
// prints. Registered secrets such as the Telegram bot token are masked in
// every line, since they can appear inside request URLs.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

const mask = "****"

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	secrets []string
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// AddSecret masks s in all later output. Values shorter than six bytes
// are ignored so that short common words are never hidden.
func AddSecret(s string) {
	if len(s) < 6 {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	for _, existing := range secrets {
		if existing == s {
			return
		}
	}
	secrets = append(secrets, s)
}

// ResetSecrets forgets every registered secret.
func ResetSecrets() {
	mu.Lock()
	defer mu.Unlock()
	secrets = nil
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf(false, "[DEBUG] ", format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf(false, "[INFO] ", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	logf(false, "[WARN] ", format, args...)
}

// Error prints an error message regardless of verbose mode.
func Error(format string, args ...any) {
	logf(true, "[ERROR] ", format, args...)
}

// Section prints a stage header such as "=== Extract ===".
func Section(name string) {
	logf(false, "\n=== ", "%s ===", name)
}

// Timed logs how long a stage took when the returned func is called:
//
//	defer logger.Timed("extract")()
func Timed(stage string) func() {
	start := time.Now()
	return func() {
		Debug("%s took %s", stage, time.Since(start).Round(time.Millisecond))
	}
}

// Mask replaces every registered secret in s.
func Mask(s string) string {
	mu.RLock()
	defer mu.RUnlock()
	return maskSecrets(s)
}

func maskSecrets(s string) string {
	for _, secret := range secrets {
		s = strings.ReplaceAll(s, secret, mask)
	}
	return s
}

func logf(always bool, prefix, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !always && !verbose {
		return
	}
	fmt.Fprintln(output, maskSecrets(prefix+fmt.Sprintf(format, args...)))
}
