package user

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/taskio-app/taskio/internal/db"
	"github.com/taskio-app/taskio/internal/storage"
)

const maxUploadBytes = 5 << 20

var (
	ErrBadImageType = errors.New("user: invalid image type")
	ErrBadMimeType  = errors.New("user: unsupported file type")
	ErrTooLarge     = errors.New("user: file exceeds the 5MB limit")
)

var allowedMimeTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

var imageColumns = map[string]string{
	"profilePicture": "profile_picture",
	"headerImage":    "header_image",
	"serviceImage":   "service_image",
}

// validateUpload checks the declared image slot, content type and size
// before any bytes leave the process.
func validateUpload(imageType, contentType string, size int64) error {
	if _, ok := imageColumns[imageType]; !ok {
		return ErrBadImageType
	}
	if _, ok := allowedMimeTypes[contentType]; !ok {
		return ErrBadMimeType
	}
	if size > maxUploadBytes {
		return ErrTooLarge
	}
	return nil
}

// UploadImage accepts a multipart image and stores it in object storage.
// profilePicture and headerImage attach to the caller's account;
// serviceImage requires a serviceId the caller owns.
// POST /user/upload-image
func UploadImage(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or missing token"})
	}

	imageType := c.FormValue("imageType")
	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No image file provided"})
	}

	contentType := file.Header.Get("Content-Type")
	if err := validateUpload(imageType, contentType, file.Size); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if storage.Active == nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to upload image"})
	}

	ctx := c.Request().Context()

	serviceID := c.FormValue("serviceId")
	if imageType == "serviceImage" {
		if serviceID == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "serviceId is required for service images"})
		}
		var ownerID string
		err := db.Conn.QueryRow(ctx, `SELECT taskio_id FROM services WHERE id = $1`, serviceID).Scan(&ownerID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "Service not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch service"})
		}
		if ownerID != userID {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "You are not authorized to update this service"})
		}
	}

	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to read image"})
	}
	defer src.Close()

	ext := allowedMimeTypes[contentType]
	key := path.Join(strings.ToLower(imageType),
		fmt.Sprintf("%s-%d-%s%s", userID, time.Now().Unix(), uuid.New().String()[:8], ext))

	if err := storage.Active.Put(ctx, key, src, file.Size, contentType); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to upload image"})
	}
	url := storage.Active.PublicURL(key)

	column := imageColumns[imageType]
	if imageType == "serviceImage" {
		_, err = db.Conn.Exec(ctx,
			`UPDATE services SET `+column+` = $1, updated_at = NOW() WHERE id = $2`, url, serviceID)
	} else {
		_, err = db.Conn.Exec(ctx,
			`UPDATE users SET `+column+` = $1 WHERE id = $2`, url, userID)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save image reference"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":  "Image uploaded successfully",
		"imageUrl": url,
	})
}
