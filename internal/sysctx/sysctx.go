// Package sysctx probes the process environment for the context fields
// embedded in the model prompt: OS family, active shell, and working
// directory. Probing never fails; unknown values degrade to placeholders.
package sysctx

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Context is the environment snapshot taken once per invocation.
type Context struct {
	OS    string
	Shell string
	CWD   string
}

const (
	unknownShell = "unknown shell"
	unknownOS    = "unknown OS"
)

// Probe gathers the current OS family, shell, and working directory.
func Probe() Context {
	return Context{
		OS:    osName(),
		Shell: shellName(),
		CWD:   workingDir(),
	}
}

func osName() string {
	switch runtime.GOOS {
	case "darwin":
		return "macOS"
	case "linux":
		if isWSL() {
			return "Linux (WSL)"
		}
		return "Linux"
	case "windows":
		return "Windows"
	case "":
		return unknownOS
	default:
		return runtime.GOOS
	}
}

// isWSL detects Windows Subsystem for Linux through /proc/version.
func isWSL() bool {
	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(data)), "microsoft")
}

func shellName() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return filepath.Base(shell)
	}
	// Windows exposes the command interpreter via COMSPEC instead.
	if comspec := os.Getenv("COMSPEC"); comspec != "" {
		return filepath.Base(comspec)
	}
	return unknownShell
}

func workingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}
