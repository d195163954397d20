package http

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"lending-engine/internal/domain/docstore"
)

// Borrower documents are modest scans, not media files.
const maxDocumentBytes = 10 << 20 // 10 MiB

var allowedDocumentExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".pdf": true,
}

type DocumentHandler struct {
	store docstore.Store
	log   *zap.Logger
}

func NewDocumentHandler(store docstore.Store, log *zap.Logger) *DocumentHandler {
	return &DocumentHandler{store: store, log: log}
}

// UploadDocument stores a borrower document (identity scan, payslip) and
// returns its public URL. The URL is later referenced from the application's
// details payload; the engine never reads the blob back.
func (h *DocumentHandler) UploadDocument(c echo.Context) error {
	fh, err := c.FormFile("document")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing document file", Code: "validation"})
	}
	if fh.Size > maxDocumentBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "document too large", Code: "too_large"})
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedDocumentExts[ext] {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unsupported document type", Code: "validation"})
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unreadable document file", Code: "validation"})
	}
	defer src.Close()

	url, err := h.store.Upload(c.Request().Context(), src, "loan-documents", fh.Filename)
	if err != nil {
		h.log.Error("document upload failed", zap.String("filename", fh.Filename), zap.Error(err))
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "document store unavailable", Code: "store_unavailable"})
	}
	return c.JSON(http.StatusCreated, map[string]string{"url": url})
}
