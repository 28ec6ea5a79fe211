// Package storage uploads rendered certificates to a remote folder and
// returns a link that can be shared with the recipient.
package storage

import (
	"context"
	"errors"
	"fmt"
)

const MimeTypePDF = "application/pdf"

var (
	ErrEmptyContent   = errors.New("storage: content is empty")
	ErrAuthentication = errors.New("storage: authentication failed")
	ErrUpload         = errors.New("storage: upload failed")
)

// Uploader creates one new file per call. Identical calls create distinct files.
type Uploader interface {
	Upload(ctx context.Context, content []byte, name string, course string) (*UploadResult, error)
}

type UploadResult struct {
	ID       string
	FileName string
	ViewLink string
}

// FileRecord is the file about to be created. It only lives for one upload.
type FileRecord struct {
	DisplayName    string
	ParentFolderID string
	MimeType       string
	Content        []byte
}

// FileName builds the destination name. Characters are not sanitized.
func FileName(name string, course string) string {
	return fmt.Sprintf("%s_%s.pdf", name, course)
}

func NewFileRecord(content []byte, name string, course string, folder string) FileRecord {
	return FileRecord{
		DisplayName:    FileName(name, course),
		ParentFolderID: folder,
		MimeType:       MimeTypePDF,
		Content:        content,
	}
}

func authError(err error) error {
	return fmt.Errorf("%w: %w", ErrAuthentication, err)
}

func uploadError(err error) error {
	return fmt.Errorf("%w: %w", ErrUpload, err)
}
