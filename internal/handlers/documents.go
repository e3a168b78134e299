package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/minidocs/minidocs/internal/documents"
)

// DocumentsHandler exposes the caller's documents and their versions.
type DocumentsHandler struct {
	service *documents.Service
	logger  *slog.Logger
}

func NewDocumentsHandler(log *slog.Logger, service *documents.Service) *DocumentsHandler {
	return &DocumentsHandler{
		service: service,
		logger:  log.With(slog.String("handler", "documents")),
	}
}

func (h *DocumentsHandler) Register(e *echo.Echo) {
	group := e.Group("/api/documents")
	group.GET("", h.List)
	group.POST("", h.Create)
	group.POST("/import_html", h.ImportHTML)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.PATCH("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
	group.POST("/:id/snapshot", h.Snapshot)
	group.GET("/:id/versions", h.Versions)
	group.GET("/:id/export", h.Export)
}

// List godoc
// @Summary List documents
// @Description List the caller's documents, newest first
// @Tags documents
// @Param q query string false "Case-insensitive title/content filter"
// @Success 200 {array} documents.Document
// @Failure 500 {object} ErrorResponse
// @Router /api/documents [get]
func (h *DocumentsHandler) List(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	items, err := h.service.List(c.Request().Context(), userID, c.QueryParam("q"))
	if err != nil {
		return documentError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// Create godoc
// @Summary Create document
// @Tags documents
// @Param payload body documents.CreateRequest true "Document"
// @Success 201 {object} documents.Document
// @Failure 400 {object} ErrorResponse
// @Router /api/documents [post]
func (h *DocumentsHandler) Create(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	var req documents.CreateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	doc, err := h.service.Create(c.Request().Context(), userID, req)
	if err != nil {
		return documentError(err)
	}
	return c.JSON(http.StatusCreated, doc)
}

// ImportHTML godoc
// @Summary Import HTML as a new document
// @Tags documents
// @Param payload body documents.ImportRequest true "HTML"
// @Success 201 {object} documents.Document
// @Router /api/documents/import_html [post]
func (h *DocumentsHandler) ImportHTML(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	var req documents.ImportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	doc, err := h.service.Import(c.Request().Context(), userID, req)
	if err != nil {
		return documentError(err)
	}
	return c.JSON(http.StatusCreated, doc)
}

// Get godoc
// @Summary Get document with versions
// @Tags documents
// @Param id path string true "Document ID"
// @Success 200 {object} documents.Document
// @Failure 404 {object} ErrorResponse
// @Router /api/documents/{id} [get]
func (h *DocumentsHandler) Get(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	doc, err := h.service.Get(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return documentError(err)
	}
	return c.JSON(http.StatusOK, doc)
}

// Update godoc
// @Summary Update document
// @Description Update title and/or content; a new version is recorded
// @Tags documents
// @Param id path string true "Document ID"
// @Param payload body documents.UpdateRequest true "Fields to change"
// @Success 200 {object} documents.Document
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/documents/{id} [put]
func (h *DocumentsHandler) Update(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	var req documents.UpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	doc, err := h.service.Update(c.Request().Context(), userID, c.Param("id"), req)
	if err != nil {
		return documentError(err)
	}
	return c.JSON(http.StatusOK, doc)
}

// Delete godoc
// @Summary Soft-delete document
// @Tags documents
// @Param id path string true "Document ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/documents/{id} [delete]
func (h *DocumentsHandler) Delete(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return documentError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Snapshot godoc
// @Summary Record a version snapshot
// @Tags documents
// @Param id path string true "Document ID"
// @Param payload body documents.SnapshotRequest false "Optional label"
// @Success 200 {object} documents.SnapshotResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/documents/{id}/snapshot [post]
func (h *DocumentsHandler) Snapshot(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	var req documents.SnapshotRequest
	if c.Request().ContentLength != 0 {
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}
	}
	version, err := h.service.Snapshot(c.Request().Context(), userID, c.Param("id"), strings.TrimSpace(req.Label))
	if err != nil {
		return documentError(err)
	}
	return c.JSON(http.StatusOK, documents.SnapshotResponse{OK: true, Label: version.Label})
}

// Versions godoc
// @Summary List versions
// @Tags documents
// @Param id path string true "Document ID"
// @Success 200 {array} documents.Version
// @Failure 404 {object} ErrorResponse
// @Router /api/documents/{id}/versions [get]
func (h *DocumentsHandler) Versions(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	items, err := h.service.Versions(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return documentError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// Export godoc
// @Summary Export document
// @Tags documents
// @Param id path string true "Document ID"
// @Param format query string false "html (default) or markdown"
// @Produce text/html
// @Produce text/markdown
// @Success 200 {string} string
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/documents/{id}/export [get]
func (h *DocumentsHandler) Export(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	format := documents.ExportFormat(strings.ToLower(strings.TrimSpace(c.QueryParam("format"))))
	if format != "" && format != documents.ExportHTML && format != documents.ExportMarkdown {
		return echo.NewHTTPError(http.StatusBadRequest, "format must be html or markdown")
	}
	contentType, body, err := h.service.Export(c.Request().Context(), userID, c.Param("id"), format)
	if err != nil {
		return documentError(err)
	}
	return c.Blob(http.StatusOK, contentType, []byte(body))
}
