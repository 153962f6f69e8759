package controller

import (
	"os/exec"
	"strings"

	"twilight/internal/errors"
	"twilight/internal/log"
)

// Launcher runs the configured file action.
type Launcher interface {
	Launch(command string) error
}

// ShellLauncher starts commands through a shell without waiting for them.
type ShellLauncher struct {
	Shell string // Defaults to bash
}

// Launch starts command with "<shell> -c". The child is reaped in the
// background and its exit status is only logged.
func (l ShellLauncher) Launch(command string) error {
	shell := l.Shell
	if shell == "" {
		shell = "bash"
	}

	cmd := exec.Command(shell, "-c", command)
	if err := cmd.Start(); err != nil {
		return errors.NewKind(errors.ActionFailed, "failed to start file action", err)
	}
	log.LogWithFields(log.F("command", command), log.F("pid", cmd.Process.Pid)).Info("file action started")

	go func() {
		if err := cmd.Wait(); err != nil {
			log.LogWithFields(log.F("command", command)).Warnf("file action exited: %v", err)
			return
		}
		log.LogWithFields(log.F("command", command)).Debug("file action finished")
	}()
	return nil
}

// ActionCommand substitutes path for every %s in action.
func ActionCommand(action, path string) string {
	return strings.ReplaceAll(action, "%s", path)
}
