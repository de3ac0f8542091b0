package sysctx

import (
	"runtime"
	"testing"
)

func TestShellName(t *testing.T) {
	testCases := []struct {
		name     string
		shell    string
		comspec  string
		expected string
	}{
		{"Basename of SHELL", "/bin/zsh", "", "zsh"},
		{"Bash path", "/usr/local/bin/bash", "", "bash"},
		{"COMSPEC fallback", "", `C:\Windows\system32\cmd.exe`, "cmd.exe"},
		{"No shell variables", "", "", unknownShell},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("SHELL", tc.shell)
			t.Setenv("COMSPEC", tc.comspec)

			if got := shellName(); got != tc.expected {
				t.Errorf("Expected shell %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestProbe_NeverEmpty(t *testing.T) {
	ctx := Probe()

	if ctx.OS == "" {
		t.Error("Probe returned empty OS")
	}
	if ctx.Shell == "" {
		t.Error("Probe returned empty shell")
	}
	// CWD may legitimately be empty only if the directory was removed.
	if ctx.CWD == "" {
		t.Log("Probe returned empty working directory")
	}
}

func TestOSName_CurrentPlatform(t *testing.T) {
	got := osName()
	switch runtime.GOOS {
	case "darwin":
		if got != "macOS" {
			t.Errorf("Expected macOS, got %q", got)
		}
	case "linux":
		if got != "Linux" && got != "Linux (WSL)" {
			t.Errorf("Expected Linux variant, got %q", got)
		}
	case "windows":
		if got != "Windows" {
			t.Errorf("Expected Windows, got %q", got)
		}
	default:
		if got != runtime.GOOS {
			t.Errorf("Expected %q passthrough, got %q", runtime.GOOS, got)
		}
	}
}
