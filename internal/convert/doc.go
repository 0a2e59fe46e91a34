// Package convert orchestrates archive conversion: it decodes a comic
// archive into entries, fans the file entries out to a bounded worker pool
// for transcoding, and rebuilds the archive in the original entry order.
//
// The pool makes no completion-order promise; correlation back to the
// originating entry runs through the task index, and the rebuild blocks
// until every submitted index has produced exactly one result. A single
// failed entry aborts the whole run, because a partially converted archive
// is worse than no output at all.
//
// The shared error taxonomy for local and remote conversion lives here so
// callers can classify failures without caring which pipeline produced them.
package convert
