package report

import (
	"io"

	"github.com/cheggaaa/pb/v3"
)

const progressTemplate = `{{ string . "prefix" }} {{ counters . }} {{ bar . }} {{ percent . }} {{ speed . "%s keys/s" }} {{ rtime . "ETA %s" }}`

// Progress is a key-space progress bar. A nil *Progress is a valid no-op.
type Progress struct {
	bar *pb.ProgressBar
}

// NewProgress starts a bar over total keys writing to w.
func NewProgress(w io.Writer, total uint64) *Progress {
	bar := pb.New64(int64(total))
	bar.SetTemplateString(progressTemplate)
	bar.Set("prefix", "keys")
	bar.SetWriter(w)
	bar.Start()
	return &Progress{bar: bar}
}

// Add advances the bar. Safe for concurrent use.
func (p *Progress) Add(keys int) {
	if p == nil {
		return
	}
	p.bar.Add(keys)
}

// Finish stops the bar.
func (p *Progress) Finish() {
	if p == nil {
		return
	}
	p.bar.Finish()
}
