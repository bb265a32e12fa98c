// Package main is the entry point for mprisync.
package main

import (
	"github.com/mprisync/mprisync/cmd"
	"github.com/mprisync/mprisync/config"
	"github.com/mprisync/mprisync/internal/cleanup"
	"github.com/mprisync/mprisync/log"
	"github.com/mprisync/mprisync/where"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go func() {
		if removed, err := cleanup.CollectGarbage(where.Logs(), cleanup.LogsTTL); err != nil {
			log.Warnf("cleanup: %v", err)
		} else if removed > 0 {
			log.Debugf("cleanup: removed %d old log files", removed)
		}
	}()

	cmd.Execute()
}
