package tools

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/ak0r/zero-theme/config"
)

var ErrNoEditor = errors.New("no editor configured: set tools.editor or EDITOR")

// RunEditor opens file in the editor configured as `tools.editor`, falling
// back to the EDITOR environment variable. The editor setting may carry
// arguments, e.g. "code --wait".
func RunEditor(file string) error {
	configured := ""
	if config.HasEditor() {
		configured = config.Editor()
	}

	argv, err := editorCommand(configured, os.Getenv("EDITOR"))
	if err != nil {
		return err
	}

	program, err := exec.LookPath(argv[0])
	if err != nil {
		return err
	}

	cmd := exec.Command(program, append(argv[1:], file)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

func editorCommand(configured string, env string) ([]string, error) {
	for _, candidate := range []string{configured, env} {
		if argv := strings.Fields(candidate); len(argv) > 0 {
			return argv, nil
		}
	}

	return nil, ErrNoEditor
}
