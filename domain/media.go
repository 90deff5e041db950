package domain

import (
	"io"
	"time"
)

// MaxUploadSize determines the maximum filesize of a media upload.
const MaxUploadSize int64 = 5 << 20 // 5 Megabyte

// Media is an uploaded file. FilePath is the locator handed out by the blob
// store, FileType is the content type the uploader declared. Media rows are
// created before any tweet references them, may be shared by several tweets,
// and are immutable once created.
type Media struct {
	ID       int    `json:"id"`
	FilePath string `json:"file_path" gorm:"not null"`
	FileType string `json:"file_type" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
}

// BlobStore is the byte storage facility media contents live in. Write stores
// everything from r and returns an opaque locator, Open streams the bytes back
// for a locator it handed out earlier.
type BlobStore interface {
	Write(r io.Reader) (locator string, err error)
	Open(locator string) (io.ReadCloser, error)
}

// MediaService manages Media records and their bytes. StoreUpload writes the
// bytes first and only creates a record once they are durable, so a record
// without bytes can never exist. The inverse (an orphaned blob after a failed
// record write) is accepted.
type MediaService interface {
	StoreUpload(r io.Reader, contentType string) (*Media, error)
	Fetch(mediaID int) (*Media, io.ReadCloser, error)
	ByID(id int) (*Media, error)
}
