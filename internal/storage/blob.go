package storage

import "io"

// Buckets of the exam subsystem
const (
	BucketSoal    = "soal_files"
	BucketJawaban = "jawaban"
)

// BlobStore keeps opaque blobs under slash-separated keys.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
	Delete(key string) error
}

// Key joins a bucket and a file name.
func Key(bucket, name string) string {
	return bucket + "/" + name
}
