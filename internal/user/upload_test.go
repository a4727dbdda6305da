package user

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskio-app/taskio/internal/storage"
)

func TestValidateUpload(t *testing.T) {
	cases := []struct {
		name        string
		imageType   string
		contentType string
		size        int64
		wantErr     error
	}{
		{"profile jpeg", "profilePicture", "image/jpeg", 1024, nil},
		{"header png", "headerImage", "image/png", 4 << 20, nil},
		{"service webp", "serviceImage", "image/webp", 100, nil},
		{"jpg alias", "profilePicture", "image/jpg", 100, nil},
		{"at the size limit", "profilePicture", "image/png", 5 << 20, nil},
		{"unknown slot", "bannerImage", "image/png", 100, ErrBadImageType},
		{"empty slot", "", "image/png", 100, ErrBadImageType},
		{"gif rejected", "profilePicture", "image/gif", 100, ErrBadMimeType},
		{"svg rejected", "headerImage", "image/svg+xml", 100, ErrBadMimeType},
		{"over the size limit", "profilePicture", "image/png", 5<<20 + 1, ErrTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateUpload(tc.imageType, tc.contentType, tc.size)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("validateUpload(%q, %q, %d) = %v, want %v",
					tc.imageType, tc.contentType, tc.size, err, tc.wantErr)
			}
		})
	}
}

func TestUploadImageStorageUnavailable(t *testing.T) {
	prev := storage.Active
	storage.Active = nil
	defer func() { storage.Active = prev }()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="avatar.png"`)
	header.Set("Content-Type", "image/png")
	part, err := w.CreatePart(header)
	if err != nil {
		t.Fatalf("create form part: %v", err)
	}
	if _, err := part.Write([]byte("not-really-a-png")); err != nil {
		t.Fatalf("write form part: %v", err)
	}
	if err := w.WriteField("imageType", "profilePicture"); err != nil {
		t.Fatalf("write form field: %v", err)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/user/upload-image", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.Set("user_id", "user-1")

	if err := UploadImage(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("failed to upload image")) {
		t.Fatalf("body = %s, want upload failure error", rec.Body.String())
	}
}
