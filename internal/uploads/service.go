package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	pkgerrors "github.com/shopmart-io/shopmart-backend/pkg/errors"
	"github.com/shopmart-io/shopmart-backend/pkg/storage/local"
)

// Service accepts image uploads and hands them to the object store.
type Service interface {
	SaveImage(ctx context.Context, r io.Reader, declaredSize int64) (*ImageDTO, error)
}

// ImageDTO is the stored-upload payload returned to clients.
type ImageDTO struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

type service struct {
	store    *local.Store
	maxBytes int64
}

// NewService constructs an upload service. maxBytes caps the accepted file
// size.
func NewService(store *local.Store, maxBytes int64) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("object store required")
	}
	if maxBytes <= 0 {
		return nil, fmt.Errorf("max upload size must be positive")
	}
	return &service{store: store, maxBytes: maxBytes}, nil
}

// SaveImage buffers the upload, sniffs the content type and persists the
// file when it is an image within the size cap. The declared size is only a
// fast-path rejection; the real bytes are what get counted.
func (s *service) SaveImage(ctx context.Context, r io.Reader, declaredSize int64) (*ImageDTO, error) {
	if declaredSize > s.maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("file exceeds the %dMB upload limit", s.maxBytes/(1<<20)))
	}

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to read upload")
	}
	if n == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "uploaded file is empty")
	}
	if n > s.maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("file exceeds the %dMB upload limit", s.maxBytes/(1<<20)))
	}

	detected := mimetype.Detect(buf.Bytes())
	if !strings.HasPrefix(detected.String(), "image/") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "only image uploads are accepted").
			WithDetails(map[string]string{"detected": detected.String()})
	}

	stored, err := s.store.Save(ctx, detected.Extension(), &buf)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to store upload")
	}

	return &ImageDTO{
		URL:      stored.URL,
		Filename: stored.Key,
	}, nil
}
