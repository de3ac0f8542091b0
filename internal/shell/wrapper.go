package shell

import (
	"os"
	"strings"

	"github.com/vox-sh/vox/internal/config"
)

// The shell wrapper lets approved commands run inside the parent shell
// instead of a child process, so they land in shell history and can use
// aliases and cd. The wrapper exports VOX_CMD_FILE before calling the real
// binary; when that variable is set, the binary writes the approved command
// to the file and exits 0, and the wrapper evals the file's contents.

// bashWrapper is the function users add to ~/.bashrc via 'vox --shell-init'.
const bashWrapper = `vox() {
    local cmd_file="/tmp/.vox_cmd_$$"
    VOX_CMD_FILE="$cmd_file" command vox "$@"
    local rc=$?
    if [ $rc -eq 0 ] && [ -f "$cmd_file" ]; then
        local cmd
        cmd=$(cat "$cmd_file")
        rm -f "$cmd_file"
        if [ -n "$cmd" ]; then
            history -s "$cmd"
            eval "$cmd"
        fi
    fi
    return $rc
}`

// zshWrapper differs only in the history builtin.
const zshWrapper = `vox() {
    local cmd_file="/tmp/.vox_cmd_$$"
    VOX_CMD_FILE="$cmd_file" command vox "$@"
    local rc=$?
    if [ $rc -eq 0 ] && [ -f "$cmd_file" ]; then
        local cmd
        cmd=$(cat "$cmd_file")
        rm -f "$cmd_file"
        if [ -n "$cmd" ]; then
            print -s "$cmd"
            eval "$cmd"
        fi
    fi
    return $rc
}`

// WrapperScript returns the wrapper function matching the given shell path
// or name. Unknown shells get the bash variant.
func WrapperScript(shell string) string {
	if strings.Contains(shell, "zsh") {
		return zshWrapper
	}
	return bashWrapper
}

// CommandFilePath returns the handoff file path set by the wrapper, or ""
// when this process was not started through the wrapper.
func CommandFilePath() string {
	return os.Getenv(config.EnvVoxCmdFile)
}

// WriteCommandFile hands the approved command to the wrapper for execution
// in the parent shell.
func WriteCommandFile(path, command string) error {
	return os.WriteFile(path, []byte(command), 0600)
}
