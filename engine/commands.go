package engine

import (
	"bytes"
	"context"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
	"unicode"

	"github.com/teranos/PRX/errors"
)

// ShellCommand is one occurrence of a {{command}} token.
type ShellCommand struct {
	// FullMatch is the literal matched text including braces: {{command}}
	FullMatch string `json:"full_match"`
	// Command is the inner text with surrounding whitespace trimmed
	Command string `json:"command"`
	// Start is the byte offset of the match in the scanned content
	Start int `json:"start"`
	// End is the byte offset one past the match
	End int `json:"end"`
}

var commandPattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// FindCommands returns all command tokens in content, in document order.
func FindCommands(content string) []ShellCommand {
	matches := commandPattern.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return nil
	}

	cmds := make([]ShellCommand, 0, len(matches))
	for _, m := range matches {
		cmds = append(cmds, ShellCommand{
			FullMatch: content[m[0]:m[1]],
			Command:   strings.TrimSpace(content[m[2]:m[3]]),
			Start:     m[0],
			End:       m[1],
		})
	}
	return cmds
}

// HasCommands reports whether content contains at least one command token.
// Callers use this to decide whether to warn before executing.
func HasCommands(content string) bool {
	return commandPattern.MatchString(content)
}

// RunCommand executes a shell command and returns its captured stdout.
// Success means a zero exit status; stdout is decoded as UTF-8 with
// invalid sequences replaced and is not trimmed. On failure the error
// carries the command's stderr when available and matches
// errors.ErrCommandFailed.
func RunCommand(command string) (string, error) {
	return RunCommandContext(context.Background(), command)
}

// RunCommandContext is RunCommand with cancellation. The command runs
// through the platform shell: sh -c on Unix-like systems, cmd /C on
// Windows. Stdin is not inherited.
func RunCommandContext(ctx context.Context, command string) (string, error) {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(ctx, "cmd", "/C", command)
	} else {
		cmd = exec.CommandContext(ctx, "sh", "-c", command)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if ctx.Err() == context.DeadlineExceeded {
			msg = "command timed out"
		} else if msg == "" {
			msg = err.Error()
		}
		return "", errors.Mark(errors.New(msg), errors.ErrCommandFailed)
	}

	return strings.ToValidUTF8(stdout.String(), "�"), nil
}

// RunCommandSafe executes a command and never fails: on success it returns
// stdout with trailing whitespace trimmed, on failure an inline comment so
// downstream substitution stays total.
func RunCommandSafe(command string) string {
	return RunCommandSafeContext(context.Background(), command)
}

// RunCommandSafeContext is RunCommandSafe with cancellation.
func RunCommandSafeContext(ctx context.Context, command string) string {
	out, err := RunCommandContext(ctx, command)
	if err != nil {
		return "<!-- Command failed: " + err.Error() + " -->"
	}
	return strings.TrimRightFunc(out, unicode.IsSpace)
}
