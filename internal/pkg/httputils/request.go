package httputils

import (
	"bytes"
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/wizora/pkg/infra/middleware"
	"github.com/kart-io/wizora/pkg/utils/errors"
	"github.com/kart-io/wizora/pkg/utils/json"
)

// UploadedFile is a multipart file read fully into memory.
type UploadedFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReadFormFile reads the multipart field into memory.
// A missing field returns missing; an oversized body returns ErrRequestTooLarge.
func ReadFormFile(c *gin.Context, field string, missing *errors.Errno) (*UploadedFile, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if middleware.IsBodyTooLarge(err) {
			return nil, errors.ErrRequestTooLarge.WithCause(err)
		}
		return nil, missing.WithCause(err)
	}
	return readHeader(fh)
}

func readHeader(fh *multipart.FileHeader) (*UploadedFile, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, errors.ErrBadRequest.WithCause(err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		if middleware.IsBodyTooLarge(err) {
			return nil, errors.ErrRequestTooLarge.WithCause(err)
		}
		return nil, errors.ErrBadRequest.WithCause(err)
	}
	return &UploadedFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// BindJSON decodes the request body into v. An empty body leaves v untouched
// so required-field checks report the missing field instead of the syntax.
func BindJSON(c *gin.Context, v any) error {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		if middleware.IsBodyTooLarge(err) {
			return errors.ErrRequestTooLarge.WithCause(err)
		}
		return errors.ErrBadRequest.WithCause(err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.ErrBadRequest.WithMessage("Invalid JSON body").WithCause(err)
	}
	return nil
}
