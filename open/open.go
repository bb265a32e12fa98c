// Package open launches URLs and files with the desktop's default handler.
package open

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Start opens input with the default handler without waiting for it.
func Start(input string) error {
	cmd, ok := command(input)
	if !ok {
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
	return cmd.Start()
}

func command(input string) (*exec.Cmd, bool) {
	name, ok := opener(runtime.GOOS)
	if !ok {
		return nil, false
	}
	return exec.Command(name, input), true
}

// opener names the command that opens things on goos. MPRIS only exists where D-Bus does.
func opener(goos string) (string, bool) {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return "xdg-open", true
	case "darwin":
		return "open", true
	default:
		return "", false
	}
}
