package utils

import (
	"bytes"
	"context"
	"io"
	"log"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"virtualab/apperror"
	"virtualab/middleware"
	"virtualab/storage"
)

// Upload is a multipart file read into memory with its detected type.
type Upload struct {
	Data     []byte
	MIME     *mimetype.MIME
	Filename string // generated, collision-resistant
}

// ReadUpload reads file, detects its type from the content and generates a
// uuid filename that keeps the detected extension.
func ReadUpload(file *multipart.FileHeader) (*Upload, error) {
	src, err := file.Open()
	if err != nil {
		return nil, apperror.Validation("Unable to read uploaded file!")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, apperror.Internal("Unable to read uploaded file!", errors.Wrap(err, "read upload"))
	}
	if len(data) == 0 {
		return nil, apperror.Validation("Uploaded file is empty!")
	}

	mtype := mimetype.Detect(data)
	return &Upload{
		Data:     data,
		MIME:     mtype,
		Filename: NewFilename(mtype.Extension()),
	}, nil
}

// NewFilename returns a random name with the given extension (".png" style).
func NewFilename(ext string) string {
	return uuid.NewString() + ext
}

// IsImage reports whether the upload is an image.
func (u *Upload) IsImage() bool {
	return strings.HasPrefix(u.MIME.String(), "image/")
}

// IsVideo reports whether the upload is a video.
func (u *Upload) IsVideo() bool {
	return strings.HasPrefix(u.MIME.String(), "video/")
}

// RequireImage rejects anything that is not an image.
func (u *Upload) RequireImage() error {
	if !u.IsImage() {
		return apperror.Validation("File must be an image, got " + u.MIME.String() + "!")
	}
	return nil
}

// RequireMedia checks the upload against a declared media type (image or video).
func (u *Upload) RequireMedia(mediaType string) error {
	switch mediaType {
	case "image":
		return u.RequireImage()
	case "video":
		if !u.IsVideo() {
			return apperror.Validation("File must be a video, got " + u.MIME.String() + "!")
		}
		return nil
	default:
		return apperror.Validation("Invalid media type!")
	}
}

// DetectContentType names the MIME type of downloaded bytes.
func DetectContentType(data []byte) string {
	return mimetype.Detect(data).String()
}

// Store uploads u to bucket under its generated filename.
func (u *Upload) Store(ctx context.Context, bucket storage.Bucket) error {
	return storage.Store.Upload(ctx, bucket, u.Filename, bytes.NewReader(u.Data))
}

// RemoveObject deletes a stored object. A missing object is not an error and
// other failures are only logged, the row it belonged to is already gone.
func RemoveObject(ctx context.Context, bucket storage.Bucket, name string) {
	if name == "" {
		return
	}
	if err := storage.Store.Delete(ctx, bucket, name); err != nil && !apperror.Is(err, apperror.KindNotFound) {
		log.Printf("[FTP] failed to delete %s/%s: %v", bucket, name, err)
	}
}

// SendObject streams a stored object with its detected Content-Type. Any
// read failure is reported as not found.
func SendObject(c *fiber.Ctx, bucket storage.Bucket, name string) error {
	data, err := storage.Store.Download(c.UserContext(), bucket, name)
	if err != nil {
		if !apperror.Is(err, apperror.KindNotFound) {
			log.Printf("[FTP] failed to read %s/%s: %v", bucket, name, err)
		}
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "File not found!", nil)
	}
	c.Set(fiber.HeaderContentType, DetectContentType(data))
	return c.Status(fiber.StatusOK).Send(data)
}
