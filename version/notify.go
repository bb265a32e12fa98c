package version

import (
	"fmt"

	"github.com/mprisync/mprisync/color"
	"github.com/mprisync/mprisync/constant"
	"github.com/mprisync/mprisync/icon"
	"github.com/mprisync/mprisync/key"
	"github.com/mprisync/mprisync/log"
	"github.com/mprisync/mprisync/style"
	"github.com/mprisync/mprisync/util"
	"github.com/spf13/viper"
)

// Notify prints a notice when a newer release exists. It does nothing unless cli.version_check
// is set and stdout is a terminal.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) || !util.IsTerminal() {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	version, err := Latest()
	erase()
	if err != nil {
		log.Debugf("release check: %v", err)
		return
	}

	if comp, err := Compare(version, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(version),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/mprisync/mprisync/releases/tag/v"+version),
	)
}
