// Package archive decodes comic book archives into ordered entry lists and
// rebuilds archives from them.
//
// Four container kinds are supported: zip (cbz), tar (cbt), 7z (cb7), and
// rar (cbr, read-only). Entry order is the container's enumeration order and
// is preserved through rebuild; directories and files keep their original
// relative positions. Kind detection is magic-byte based so mislabeled
// archives still open.
//
// There is no maintained 7z or rar writer in the Go ecosystem, so rebuilt
// cb7 and cbr archives are emitted as zip data, mirroring the usual
// cbr-to-cbz practice.
package archive
