// Package archive mirrors downloaded invoices to an S3-compatible bucket.
// When no bucket is configured the Noop archiver is used instead.
package archive
