package upload

import (
	"bytes"
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pkgerrors "github.com/shopmart-io/shopmart-backend/pkg/errors"
	"github.com/shopmart-io/shopmart-backend/pkg/storage/local"
)

// 1x1 transparent PNG.
const tinyPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func pngBytes(t *testing.T) []byte {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(tinyPNG)
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return raw
}

func newTestService(t *testing.T, maxBytes int64) (Service, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := local.New(dir, "/uploads")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	svc, err := NewService(store, maxBytes)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, dir
}

func TestSaveImage(t *testing.T) {
	svc, dir := newTestService(t, 1<<20)
	raw := pngBytes(t)

	dto, err := svc.SaveImage(context.Background(), bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		t.Fatalf("save image: %v", err)
	}
	if !strings.HasPrefix(dto.URL, "/uploads/") {
		t.Fatalf("unexpected url %q", dto.URL)
	}
	if !strings.HasSuffix(dto.Filename, ".png") {
		t.Fatalf("expected sniffed png extension, got %q", dto.Filename)
	}

	written, err := os.ReadFile(filepath.Join(dir, dto.Filename))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if !bytes.Equal(written, raw) {
		t.Fatal("stored bytes differ from the upload")
	}
}

func TestSaveImageRejectsNonImages(t *testing.T) {
	svc, _ := newTestService(t, 1<<20)

	_, err := svc.SaveImage(context.Background(), strings.NewReader("%PDF-1.4 not a picture"), 22)
	assertUploadErrorCode(t, err, pkgerrors.CodeValidation)
}

func TestSaveImageRejectsOversize(t *testing.T) {
	raw := pngBytes(t)
	svc, _ := newTestService(t, int64(len(raw))-1)

	t.Run("declaredSize", func(t *testing.T) {
		_, err := svc.SaveImage(context.Background(), bytes.NewReader(raw), int64(len(raw)))
		assertUploadErrorCode(t, err, pkgerrors.CodeValidation)
	})

	t.Run("actualSize", func(t *testing.T) {
		// An understated declared size must not bypass the cap.
		_, err := svc.SaveImage(context.Background(), bytes.NewReader(raw), 1)
		assertUploadErrorCode(t, err, pkgerrors.CodeValidation)
	})
}

func TestSaveImageRejectsEmpty(t *testing.T) {
	svc, _ := newTestService(t, 1<<20)

	_, err := svc.SaveImage(context.Background(), bytes.NewReader(nil), 0)
	assertUploadErrorCode(t, err, pkgerrors.CodeValidation)
}

func assertUploadErrorCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != code {
		t.Fatalf("expected %s error, got %v", code, err)
	}
}
