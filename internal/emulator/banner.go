package emulator

import (
	"github.com/retroenv/retroemu/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("retroemu", log.String("version", buildinfo.Version(version, commit, date)))
}
