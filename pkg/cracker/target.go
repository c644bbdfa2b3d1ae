/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: target.go
Description: Crack targets for the Akaylee Cracker. A target is anything that can
answer "does this password open you?" — an external verifier command, or an in-process
function for tests and embedding. External verifiers signal success through their exit
status, the universal contract of office/pdf/archive unlocking tools.
*/

package cracker

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Target is a password-protected object that candidate passwords are tried
// against.
type Target interface {
	// Name identifies the target in logs and results, usually a file path.
	Name() string

	// Try attempts one password. It returns true when the password opens
	// the target. A non-nil error means the attempt itself failed (tool
	// missing, target unreadable) and the run should stop.
	Try(ctx context.Context, password string) (bool, error)
}

// candidatePlaceholder marks where the candidate password is substituted
// into an ExecTarget's argument list.
const candidatePlaceholder = "{}"

// ExecTarget tries passwords by running an external verifier command. Exit
// status zero means the password opened the target; any non-zero exit is a
// wrong password. Every occurrence of "{}" in the argument list is replaced
// with the candidate before each run.
type ExecTarget struct {
	name string
	prog string
	args []string
}

// NewExecTarget builds a target around a verifier command line. The command
// must contain the "{}" placeholder in at least one argument; without it
// every attempt would run the same command.
func NewExecTarget(name string, command []string) (*ExecTarget, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("verifier command must not be empty")
	}
	found := false
	for _, arg := range command[1:] {
		if strings.Contains(arg, candidatePlaceholder) {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("verifier command has no %q placeholder", candidatePlaceholder)
	}
	return &ExecTarget{name: name, prog: command[0], args: command[1:]}, nil
}

// Name identifies the target in logs and results.
func (t *ExecTarget) Name() string { return t.name }

// Try runs the verifier once with the candidate substituted in.
func (t *ExecTarget) Try(ctx context.Context, password string) (bool, error) {
	args := make([]string, len(t.args))
	for i, arg := range t.args {
		args[i] = strings.ReplaceAll(arg, candidatePlaceholder, password)
	}

	cmd := exec.CommandContext(ctx, t.prog, args...)
	err := cmd.Run()
	if err == nil {
		return true, nil
	}
	if _, wrong := err.(*exec.ExitError); wrong {
		// Non-zero exit: the verifier ran and rejected the password.
		return false, nil
	}
	return false, fmt.Errorf("verifier failed to run: %w", err)
}

// FuncTarget adapts a plain function into a Target. Used by tests and by
// callers embedding the cracker with an in-process check.
type FuncTarget struct {
	TargetName string
	Check      func(ctx context.Context, password string) (bool, error)
}

// Name identifies the target in logs and results.
func (t *FuncTarget) Name() string { return t.TargetName }

// Try delegates to the wrapped function.
func (t *FuncTarget) Try(ctx context.Context, password string) (bool, error) {
	return t.Check(ctx, password)
}
