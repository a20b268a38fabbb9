package cli

import (
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// parseProgress reports per-file progress of the parse command.
type parseProgress struct {
	bar *progressbar.ProgressBar
}

// newParseProgress returns a reporter; it stays silent when quiet is set or
// there is only one file.
func newParseProgress(w io.Writer, totalFiles int, quiet bool) *parseProgress {
	if quiet || totalFiles < 2 {
		return &parseProgress{}
	}

	return &parseProgress{
		bar: progressbar.NewOptions(totalFiles,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription("Parsing outputs"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		),
	}
}

func (p *parseProgress) OnFileProcessed() {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

func (p *parseProgress) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}
