package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		name   string
		person string
		course string
		want   string
	}{
		{"plain", "Jane Doe", "Intro to X", "Jane Doe_Intro to X.pdf"},
		{"not sanitized", "a/b", "c:d", "a/b_c:d.pdf"},
		{"empty parts", "", "", "_.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.person, tt.course))
		})
	}
}

func TestNewFileRecord(t *testing.T) {
	record := NewFileRecord([]byte("%PDF-1.3"), "Jane Doe", "Intro to X", "folder-1")

	assert.Equal(t, "Jane Doe_Intro to X.pdf", record.DisplayName)
	assert.Equal(t, "folder-1", record.ParentFolderID)
	assert.Equal(t, MimeTypePDF, record.MimeType)
	assert.Equal(t, []byte("%PDF-1.3"), record.Content)
}

func TestErrorClassification(t *testing.T) {
	cause := errors.New("boom")

	err := authError(cause)
	assert.ErrorIs(t, err, ErrAuthentication)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrUpload)

	err = uploadError(cause)
	assert.ErrorIs(t, err, ErrUpload)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrAuthentication)
}
