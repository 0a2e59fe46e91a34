package main

import (
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"

	"comicconv/internal/remote"
)

// reporter adapts the go-pretty progress writer to the conversion observer
// and transfer hooks. A disabled reporter swallows everything.
type reporter struct {
	enabled bool
	pw      progress.Writer
	entries *progress.Tracker
}

func newReporter(enabled bool) *reporter {
	r := &reporter{enabled: enabled}
	if !enabled {
		return r
	}
	pw := progress.NewWriter()
	pw.SetOutputWriter(os.Stdout)
	pw.SetUpdateFrequency(100 * time.Millisecond)
	pw.SetTrackerPosition(progress.PositionRight)
	pw.Style().Visibility.ETA = true
	r.pw = pw
	go pw.Render()
	return r
}

// FileCount implements convert.Observer.
func (r *reporter) FileCount(n int) {
	if !r.enabled {
		return
	}
	tracker := &progress.Tracker{Message: "Convert", Total: int64(n)}
	r.pw.AppendTracker(tracker)
	r.entries = tracker
}

// EntryDone implements convert.Observer. Safe for concurrent use; the
// tracker increments atomically.
func (r *reporter) EntryDone() {
	if r.entries != nil {
		r.entries.Increment(1)
	}
}

// transfer returns byte-level hooks for the remote upload/download phases.
func (r *reporter) transfer() remote.Transfer {
	if !r.enabled {
		return remote.Transfer{}
	}
	var upload, download *progress.Tracker
	return remote.Transfer{
		UploadStart: func(total int) {
			upload = &progress.Tracker{Message: "Upload", Total: int64(total), Units: progress.UnitsBytes}
			r.pw.AppendTracker(upload)
		},
		Uploaded: func(n int) {
			if upload != nil {
				upload.Increment(int64(n))
			}
		},
		DownloadStart: func(total int) {
			download = &progress.Tracker{Message: "Download", Total: int64(total), Units: progress.UnitsBytes}
			r.pw.AppendTracker(download)
		},
		Downloaded: func(n int) {
			if download != nil {
				download.Increment(int64(n))
			}
		},
	}
}

func (r *reporter) stop() {
	if !r.enabled {
		return
	}
	// Give the renderer one last tick so completed trackers are drawn;
	// failed runs leave trackers active, so the wait is bounded.
	deadline := time.Now().Add(500 * time.Millisecond)
	for r.pw.IsRenderInProgress() && r.pw.LengthActive() > 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	r.pw.Stop()
}
