package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/gen2brain/avif"
	"github.com/gen2brain/jpegxl"
	"github.com/gen2brain/webp"
	"github.com/h2non/filetype"

	_ "image/gif"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// jxlType extends filetype's matcher table: JPEG XL is either a bare
// codestream (FF 0A) or an ISO-BMFF container with a "JXL " box.
var jxlType = filetype.NewType("jxl", "image/jxl")

var jxlContainerSig = []byte{0x00, 0x00, 0x00, 0x0c, 'J', 'X', 'L', ' ', 0x0d, 0x0a, 0x87, 0x0a}

func init() {
	filetype.AddMatcher(jxlType, func(buf []byte) bool {
		if len(buf) >= 2 && buf[0] == 0xff && buf[1] == 0x0a {
			return true
		}
		return bytes.HasPrefix(buf, jxlContainerSig)
	})
}

// Decode sniffs the source format from magic bytes and decodes the image.
// File extensions are never consulted.
func Decode(data []byte) (image.Image, error) {
	kind, _ := filetype.Match(data)
	switch kind.Extension {
	case "avif", "heif":
		return avif.Decode(bytes.NewReader(data))
	case "jxl":
		return jpegxl.Decode(bytes.NewReader(data))
	case "webp":
		return webp.Decode(bytes.NewReader(data))
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Encode renders img into the target format. Options are clamped here so
// callers can pass raw user input.
func Encode(img image.Image, format Format, opts Options) ([]byte, error) {
	opts = opts.Clamp()
	var buf bytes.Buffer
	var err error
	switch format {
	case FormatJPEG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: opts.Quality})
	case FormatPNG:
		enc := &png.Encoder{CompressionLevel: pngCompression(opts.Speed)}
		err = enc.Encode(&buf, img)
	case FormatWebP:
		// Lossless by contract; quality does not apply.
		err = webp.Encode(&buf, img, webp.Options{Lossless: true})
	case FormatAVIF:
		err = avif.Encode(&buf, img, avif.Options{Quality: opts.Quality, Speed: opts.Speed})
	case FormatJXL:
		err = jpegxl.Encode(&buf, img, jpegxl.Options{Quality: opts.Quality, Effort: jxlEffort(opts.Speed)})
	default:
		return nil, fmt.Errorf("unknown image format %d", format)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// Transcode decodes raw image bytes and re-encodes them in the target format.
func Transcode(data []byte, format Format, opts Options) ([]byte, error) {
	img, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Encode(img, format, opts)
}

// pngCompression folds the 0-10 speed scale into png's three usable levels:
// 0 is fastest, 1 is the default, 2 and above mean best compression.
func pngCompression(speed int) png.CompressionLevel {
	switch speed {
	case 0:
		return png.BestSpeed
	case 1:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}

// jxlEffort inverts the speed scale into the encoder's effort knob, where
// higher effort means slower, better compression.
func jxlEffort(speed int) int {
	effort := 10 - speed
	if effort < 1 {
		effort = 1
	}
	return effort
}
