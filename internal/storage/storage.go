// Package storage stores document and photo blobs for the API. Blobs are
// opaque bytes addressed by a path; the database rows keep the paths.
package storage

// Storage is the blob-store contract used by documents and reminder photos.
type Storage interface {
	// Upload writes the blob at the given path, overwriting any existing blob.
	Upload(path string, data []byte) error

	// Download reads the blob at the given path.
	Download(path string) ([]byte, error)

	// Remove deletes the blob at the given path. Removing a missing blob is
	// not an error.
	Remove(path string) error
}
