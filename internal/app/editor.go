package app

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/nconklindev/diacritix/internal/types"
)

// EditorCommand returns the command that opens the character table.
// Interactive commands ($VISUAL / $EDITOR) need the terminal; the
// platform opener does not.
func (a *App) EditorCommand() (cmd *exec.Cmd, interactive bool) {
	path := a.store.Path()

	if fields := strings.Fields(a.cfg.Editor.Command); len(fields) > 0 {
		args := append(fields[1:], path)
		return exec.Command(fields[0], args...), true
	}

	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path), false
	case "windows":
		return exec.Command("cmd", "/c", "start", "", path), false
	default:
		return exec.Command("xdg-open", path), false
	}
}

// PrepareConfig makes sure the table file exists before it is opened.
func (a *App) PrepareConfig() error {
	a.store.Load()
	return a.store.EnsureFile()
}

// OpenConfig opens the character table in the user's editor.
func (a *App) OpenConfig() types.Result {
	if err := a.PrepareConfig(); err != nil {
		return types.Result{Message: fmt.Sprintf("Error opening config file: %v", err)}
	}

	cmd, interactive := a.EditorCommand()
	var err error
	if interactive {
		cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
		err = cmd.Run()
	} else {
		if err = cmd.Start(); err == nil {
			err = cmd.Process.Release()
		}
	}
	if err != nil {
		a.logger.Error("failed to open config", "path", a.store.Path(), "error", err)
		return types.Result{Message: fmt.Sprintf("Error opening config file: %v", err)}
	}

	a.logger.Info("opened config", "path", a.store.Path())
	return types.Result{Success: true}
}
