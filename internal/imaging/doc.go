// Package imaging decodes raster images and encodes them into the target
// formats comicconv supports.
//
// Decoding is sniff-based: the source format is detected from magic bytes, so
// archives with misleading file extensions still convert correctly. Encoding
// normalizes quality and speed into each codec's valid domain before invoking
// it, because the codecs disagree about what those knobs mean (webp is always
// lossless, png folds speed into a three-level compression setting, avif and
// jxl take both).
//
// Route all codec access through this package so format quirks stay in one
// place.
package imaging
