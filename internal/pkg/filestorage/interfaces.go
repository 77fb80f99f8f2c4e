package filestorage

import "mime/multipart"

// FileStorage defines the interface for storing uploaded files
type FileStorage interface {
	// SaveFileWithPath saves a file into a subdirectory and returns the
	// accessible path/URL
	SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error)

	// DeleteFile removes a file from storage; deleting a missing file is a no-op
	DeleteFile(filePath string) error
}
