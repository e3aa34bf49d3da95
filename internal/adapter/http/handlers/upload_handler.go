package handlers

import (
	"io"
	"log"
	"net/http"
	"path"
	"time"

	response "orderhub/internal/adapter/http/dto/response"
	"orderhub/internal/domain/entities"
	"orderhub/internal/usecase"
	"orderhub/internal/usecase/interfaces"
	"orderhub/pkg"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadBytes = 16 << 20

// allowedUploadTypes is the whitelist for customer reference files.
var allowedUploadTypes = map[string]bool{
	"image/png":       true,
	"image/jpeg":      true,
	"application/zip": true,
	"application/pdf": true,
}

var (
	errNoFilesInForm   = pkg.NewDomainErrorSimple("NO_FILES", "Multipart form has no files", http.StatusBadRequest)
	errFileTooLarge    = pkg.NewDomainErrorSimple("FILE_TOO_LARGE", "File exceeds the 16MB upload limit", http.StatusRequestEntityTooLarge)
	errUnsupportedFile = pkg.NewDomainErrorSimple("UNSUPPORTED_FILE_TYPE", "Only PNG, JPEG, ZIP and PDF files are accepted", http.StatusUnsupportedMediaType)
	errUploadFailed    = pkg.NewDomainErrorSimple("UPLOAD_FAILED", "Could not store the uploaded file", http.StatusBadGateway)
	errUnreadableForm  = pkg.NewDomainErrorSimple("INVALID_FORM", "Could not read multipart form", http.StatusBadRequest)
)

// UploadHandler stores reference images in the blob store and attaches them
// to the order.

type UploadHandler struct {
	usecase usecase.IOrderUseCase
	store   interfaces.IBlobStore
}

func NewUploadHandler(uc usecase.IOrderUseCase, store interfaces.IBlobStore) *UploadHandler {
	return &UploadHandler{usecase: uc, store: store}
}

// UploadFiles accepts a multipart form under the "files" field, uploads each
// part and appends the resulting file records to the order content.
func (h *UploadHandler) UploadFiles(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	orderID := c.Param("order_id")

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(errUnreadableForm.HTTPStatus, errUnreadableForm.ToHTTPError())
		return
	}
	parts := form.File["files"]
	if len(parts) == 0 {
		c.JSON(errNoFilesInForm.HTTPStatus, errNoFilesInForm.ToHTTPError())
		return
	}

	files := make([]entities.UploadedFile, 0, len(parts))
	uploadedKeys := make([]string, 0, len(parts))
	for _, part := range parts {
		if part.Size > maxUploadBytes {
			h.discard(c, uploadedKeys)
			c.JSON(errFileTooLarge.HTTPStatus, errFileTooLarge.ToHTTPError())
			return
		}
		if !allowedUploadTypes[part.Header.Get("Content-Type")] {
			h.discard(c, uploadedKeys)
			c.JSON(errUnsupportedFile.HTTPStatus, errUnsupportedFile.ToHTTPError())
			return
		}

		src, err := part.Open()
		if err != nil {
			h.discard(c, uploadedKeys)
			c.JSON(errUnreadableForm.HTTPStatus, errUnreadableForm.ToHTTPError())
			return
		}
		data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
		src.Close()
		if err != nil || int64(len(data)) > maxUploadBytes {
			h.discard(c, uploadedKeys)
			c.JSON(errFileTooLarge.HTTPStatus, errFileTooLarge.ToHTTPError())
			return
		}

		fileID := uuid.NewString()
		key := "orders/" + orderID + "/" + fileID + path.Ext(part.Filename)
		contentType := part.Header.Get("Content-Type")
		url, err := h.store.Upload(c.Request.Context(), key, contentType, data)
		if err != nil {
			log.Printf("[upload][handler] upload failed order=%s file=%s err=%v", orderID, part.Filename, err)
			h.discard(c, uploadedKeys)
			c.JSON(errUploadFailed.HTTPStatus, errUploadFailed.ToHTTPError())
			return
		}
		uploadedKeys = append(uploadedKeys, key)

		files = append(files, entities.UploadedFile{
			ID:         fileID,
			Name:       part.Filename,
			Size:       part.Size,
			Type:       contentType,
			URL:        url,
			UploadedAt: time.Now().UTC(),
		})
	}

	order, err := h.usecase.AttachFiles(c.Request.Context(), actor, orderID, files)
	if err != nil {
		h.discard(c, uploadedKeys)
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrder(order))
}

// discard removes already-stored blobs after a failed request so the bucket
// does not accumulate orphans.
func (h *UploadHandler) discard(c *gin.Context, keys []string) {
	for _, key := range keys {
		if err := h.store.Delete(c.Request.Context(), key); err != nil {
			log.Printf("[upload][handler] orphan cleanup failed key=%s err=%v", key, err)
		}
	}
}
