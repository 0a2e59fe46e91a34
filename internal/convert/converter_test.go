package convert

import (
	"bytes"
	"context"
	"errors"
	"image/jpeg"
	"sync/atomic"
	"testing"

	"comicconv/internal/archive"
	"comicconv/internal/imaging"
	"comicconv/internal/testsupport"
)

type countingObserver struct {
	fileCount atomic.Int32
	done      atomic.Int32
}

func (o *countingObserver) FileCount(n int) { o.fileCount.Store(int32(n)) }
func (o *countingObserver) EntryDone()      { o.done.Add(1) }

func comicFixture(t *testing.T) []byte {
	t.Helper()
	page := testsupport.PNG(t, 16, 16)
	return testsupport.Zip(t, []testsupport.Entry{
		{Path: "vol1/", Dir: true},
		{Path: "vol1/page01.png", Data: page},
		{Path: "vol1/page02.png", Data: page},
	})
}

func TestConvertZipToJPEG(t *testing.T) {
	observer := &countingObserver{}
	converter := New(Job{Format: imaging.FormatJPEG, Quality: 80, Speed: 3, Threads: 2}, nil, observer)

	out, err := converter.Convert(context.Background(), comicFixture(t), archive.KindZip)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	entries, err := archive.Decode(out, archive.KindZip)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if !entries[0].Dir {
		t.Fatal("directory entry lost")
	}
	if entries[1].Path != "vol1/page01.jpg" || entries[2].Path != "vol1/page02.jpg" {
		t.Fatalf("extensions not renamed: %q, %q", entries[1].Path, entries[2].Path)
	}
	for _, entry := range entries[1:] {
		if _, err := jpeg.Decode(bytes.NewReader(entry.Data)); err != nil {
			t.Fatalf("entry %s is not valid jpeg: %v", entry.Path, err)
		}
	}

	if observer.fileCount.Load() != 2 {
		t.Fatalf("observer file count = %d, want 2", observer.fileCount.Load())
	}
	if observer.done.Load() != 2 {
		t.Fatalf("observer entry count = %d, want 2", observer.done.Load())
	}
}

func TestConvertDetect(t *testing.T) {
	converter := New(Job{Format: imaging.FormatPNG, Quality: 50, Speed: 1, Threads: 1}, nil, nil)
	out, kind, err := converter.ConvertDetect(context.Background(), comicFixture(t))
	if err != nil {
		t.Fatalf("ConvertDetect: %v", err)
	}
	if kind != archive.KindZip {
		t.Fatalf("detected kind = %v, want zip", kind)
	}
	if len(out) == 0 {
		t.Fatal("empty output")
	}
}

func TestConvertTarPreservesOrder(t *testing.T) {
	page := testsupport.PNG(t, 8, 8)
	input := testsupport.Tar(t, []testsupport.Entry{
		{Path: "b.png", Data: page},
		{Path: "sub/", Dir: true},
		{Path: "a.png", Data: page},
	})

	converter := New(Job{Format: imaging.FormatJPEG, Quality: 70, Threads: 4}, nil, nil)
	out, err := converter.Convert(context.Background(), input, archive.KindTar)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	entries, err := archive.Decode(out, archive.KindTar)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	want := []string{"b.jpg", "sub/", "a.jpg"}
	for i, entry := range entries {
		if entry.Path != want[i] {
			t.Fatalf("entry %d = %q, want %q", i, entry.Path, want[i])
		}
	}
}

func TestConvertBrokenEntryAbortsRun(t *testing.T) {
	page := testsupport.PNG(t, 8, 8)
	input := testsupport.Zip(t, []testsupport.Entry{
		{Path: "page01.png", Data: page},
		{Path: "page02.png", Data: []byte("not an image at all")},
		{Path: "page03.png", Data: page},
	})

	converter := New(Job{Format: imaging.FormatJPEG, Quality: 70, Threads: 2}, nil, nil)
	_, err := converter.Convert(context.Background(), input, archive.KindZip)
	if err == nil {
		t.Fatal("expected run to abort on broken entry")
	}
	var codecErr *CodecError
	if !errors.As(err, &codecErr) {
		t.Fatalf("error %v is not a CodecError", err)
	}
	if codecErr.Index != 1 {
		t.Fatalf("CodecError index = %d, want 1", codecErr.Index)
	}
}

func TestConvertUnsupportedContainer(t *testing.T) {
	converter := New(DefaultJob(), nil, nil)
	_, _, err := converter.ConvertDetect(context.Background(), []byte("not an archive"))
	if !errors.Is(err, ErrUnsupportedContainer) {
		t.Fatalf("got %v, want ErrUnsupportedContainer", err)
	}
}

func TestJobNormalize(t *testing.T) {
	job := Job{Format: imaging.FormatAVIF, Quality: 500, Speed: -3}.Normalize()
	if job.Quality != 100 || job.Speed != 0 {
		t.Fatalf("normalize did not clamp: %+v", job)
	}
	if job.Threads < 1 {
		t.Fatalf("threads not defaulted: %d", job.Threads)
	}
}

func TestReplaceExtension(t *testing.T) {
	cases := map[string]string{
		"page01.png":     "page01.avif",
		"dir/page.x.jpg": "dir/page.x.avif",
		"noextension":    "noextension.avif",
	}
	for input, want := range cases {
		if got := replaceExtension(input, "avif"); got != want {
			t.Fatalf("replaceExtension(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(ErrUnsupportedContainer) {
		t.Fatal("unsupported container must not be retryable")
	}
	if Retryable(&CodecError{Index: 3, Err: errors.New("bad pixel data")}) {
		t.Fatal("codec errors must not be retryable")
	}
	if !Retryable(ErrInvalidResponse) {
		t.Fatal("protocol violations are retryable")
	}
	if !Retryable(ErrHashMismatch) {
		t.Fatal("hash mismatches are retryable")
	}
	if !Retryable(errors.New("connection reset")) {
		t.Fatal("io errors are retryable")
	}
	if Retryable(nil) {
		t.Fatal("nil is not retryable")
	}
}
