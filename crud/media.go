package crud

import (
	"errors"
	"io"

	"gorm.io/gorm"

	"chirp/domain"
	"chirp/errs"
)

// MediaService manages Media records and the blob store their bytes live in.
// It implements the domain.MediaService interface.
type MediaService struct {
	mediaValidator
}

// mediaValidator runs validations on incoming Media data.
// On success, it passes the data on to mediaGorm.
// Otherwise, it returns the error of the validation that has failed.
type mediaValidator struct {
	mediaGorm
}

// mediaGorm runs CRUD operations on the database using incoming Media data,
// and talks to the blob store for the actual bytes.
type mediaGorm struct {
	db    *gorm.DB
	blobs domain.BlobStore
}

// NewMediaService returns an instance of MediaService.
func NewMediaService(db *gorm.DB, blobs domain.BlobStore) *MediaService {
	return &MediaService{
		mediaValidator{
			mediaGorm{
				db:    db,
				blobs: blobs,
			},
		},
	}
}

// Ensure the MediaService struct properly implements the domain.MediaService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.MediaService = &MediaService{}

// StoreUpload writes the uploaded bytes to the blob store and creates the
// Media record pointing at the returned locator. The bytes go first: if the
// blob write fails no record is created, so a record without bytes can never
// exist. A failed record write after a successful blob write leaves an
// orphaned blob behind, which is accepted.
func (mv *mediaValidator) StoreUpload(r io.Reader, contentType string) (*domain.Media, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	locator, err := mv.blobs.Write(r)
	if err != nil {
		return nil, errs.Errorf(errs.EUNAVAILABLE, "Could not save media file.")
	}
	media := &domain.Media{
		FilePath: locator,
		FileType: contentType,
	}
	if err := mv.mediaGorm.Create(media); err != nil {
		return nil, err
	}
	return media, nil
}

// Fetch resolves the Media record and opens its bytes from the blob store.
// The caller owns the returned ReadCloser.
func (mg *mediaGorm) Fetch(mediaID int) (*domain.Media, io.ReadCloser, error) {
	media, err := mg.ByID(mediaID)
	if err != nil {
		return nil, nil, err
	}
	rc, err := mg.blobs.Open(media.FilePath)
	if err != nil {
		return nil, nil, errs.Errorf(errs.EUNAVAILABLE, "Could not read media file.")
	}
	return media, rc, nil
}

// ByID retrieves a Media record by ID.
func (mg *mediaGorm) ByID(id int) (*domain.Media, error) {
	var media domain.Media
	err := mg.db.First(&media, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Errorf(errs.ENOTFOUND, "Media not found.")
		}
		return nil, err
	}
	return &media, nil
}

// Create stores the data from the Media object in a new database record.
func (mg *mediaGorm) Create(media *domain.Media) error {
	return mg.db.Create(media).Error
}
