package convert

import (
	"runtime"

	"comicconv/internal/imaging"
)

// Job carries the settings for one conversion run. It is immutable for the
// duration of the run; Normalize clamps user input instead of rejecting it.
type Job struct {
	Format  imaging.Format
	Quality int
	Speed   int
	Threads int
}

// DefaultJob mirrors the historical defaults: avif at quality 30, speed 3.
func DefaultJob() Job {
	return Job{Format: imaging.FormatAVIF, Quality: 30, Speed: 3}
}

// Normalize returns a copy with quality and speed clamped into range and
// the worker count defaulted to the host's available parallelism.
func (j Job) Normalize() Job {
	opts := j.Options()
	j.Quality = opts.Quality
	j.Speed = opts.Speed
	if j.Threads <= 0 {
		j.Threads = runtime.NumCPU()
	}
	return j
}

// Options projects the job's encode knobs for the imaging package.
func (j Job) Options() imaging.Options {
	return imaging.Options{Quality: j.Quality, Speed: j.Speed}.Clamp()
}
