package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/ironpeak-gym/internal/httperr"
	"github.com/BruksfildServices01/ironpeak-gym/internal/logger"
	"github.com/BruksfildServices01/ironpeak-gym/internal/media"
)

// respondError maps a business error to its response; anything else is logged
// and answered with the fallback 500.
func respondError(c *gin.Context, err error, fallbackCode, fallbackMessage string) {
	if _, _, ok := httperr.Lookup(httperr.CodeOf(err)); !ok {
		logger.Error(fallbackMessage,
			"path", c.FullPath(),
			"error", err,
		)
		_ = c.Error(err)
	}
	httperr.FromError(c, err, fallbackCode, fallbackMessage)
}

// respondListError is respondError for read paths, which expose the cause in "details".
func respondListError(c *gin.Context, err error, fallbackCode, fallbackMessage string) {
	if _, _, ok := httperr.Lookup(httperr.CodeOf(err)); ok {
		httperr.FromError(c, err, fallbackCode, fallbackMessage)
		return
	}
	logger.Error(fallbackMessage, "path", c.FullPath(), "error", err)
	_ = c.Error(err)
	httperr.InternalWithDetails(c, fallbackCode, fallbackMessage, err)
}

func respondCode(c *gin.Context, code string) {
	httperr.FromError(c, httperr.ErrBusiness(code), code, code)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// enumFilter reads an optional enum query parameter where "" and "All" mean
// no filter. ok is false when the value is not a member of the enum.
func enumFilter(c *gin.Context, key string, valid func(string) bool) (value string, ok bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" || raw == "All" {
		return "", true
	}
	return raw, valid(raw)
}

func success(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// readImage takes the "image" multipart field and stores it through uploader.
func readImage(c *gin.Context, uploader *media.Uploader, kind, ownerID string) (string, error) {
	if uploader == nil {
		return "", httperr.ErrBusiness("image_storage_unavailable")
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return "", httperr.Wrap("invalid_image", err)
	}
	if fh.Size > media.MaxUploadBytes {
		return "", httperr.ErrBusiness("image_too_large")
	}

	f, err := fh.Open()
	if err != nil {
		return "", httperr.Wrap("invalid_image", err)
	}
	defer f.Close()

	return uploader.Upload(c.Request.Context(), kind, ownerID, f)
}
