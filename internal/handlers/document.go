package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/flowfam/family-api/internal/dto"
	apierrors "github.com/flowfam/family-api/internal/errors"
	"github.com/flowfam/family-api/internal/services"
	"github.com/gin-gonic/gin"
)

// maxDocumentSize caps uploads at 20 MB.
const maxDocumentSize = 20 << 20

// DocumentHandler coordinates document vault HTTP handlers.
type DocumentHandler struct {
	documentService *services.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
	}
}

// ListDocuments returns the documents visible to the caller.
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	docs, err := h.documentService.ListVisibleDocuments(member)
	if err != nil {
		respondDocumentError(c, err)
		return
	}

	dtos := make([]dto.DocumentDTO, len(docs))
	for i, doc := range docs {
		dtos[i] = dto.ToDocumentDTO(doc, doc.UploadedBy == member.ID)
	}

	c.JSON(http.StatusOK, gin.H{
		"documents": dtos,
	})
}

// GetDocument returns one document's metadata.
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	docID, ok := idParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.documentService.GetDocument(member, docID)
	if err != nil {
		respondDocumentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentDTO(*doc, doc.UploadedBy == member.ID))
}

// UploadDocument stores a multipart file upload. The optional "permissions"
// form field carries a JSON array of per-member permission tuples.
func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apierrors.BadRequest(c, "File is required")
		return
	}
	if fileHeader.Size > maxDocumentSize {
		apierrors.BadRequest(c, "File too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apierrors.InternalError(c, "Failed to read upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxDocumentSize))
	if err != nil {
		apierrors.InternalError(c, "Failed to read upload")
		return
	}

	title := c.PostForm("title")
	if title == "" {
		title = fileHeader.Filename
	}

	var perms []services.PermissionInput
	if rawPerms := c.PostForm("permissions"); rawPerms != "" {
		if err := json.Unmarshal([]byte(rawPerms), &perms); err != nil {
			apierrors.BadRequest(c, "Invalid permissions")
			return
		}
	}

	doc, err := h.documentService.UploadDocument(services.UploadDocumentInput{
		Actor:       member,
		Title:       title,
		Description: c.PostForm("description"),
		Data:        data,
		Permissions: perms,
	})
	if err != nil {
		respondDocumentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDocumentDTO(*doc, true))
}

// DownloadDocument streams the document blob to callers with download rights.
func (h *DocumentHandler) DownloadDocument(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	docID, ok := idParam(c, "id")
	if !ok {
		return
	}

	doc, data, err := h.documentService.DownloadDocument(member, docID)
	if err != nil {
		respondDocumentError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+doc.Title+`"`)
	c.Data(http.StatusOK, "application/octet-stream", data)
}

// UpdateDocument updates document metadata.
func (h *DocumentHandler) UpdateDocument(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	docID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateDocumentInput{
		Actor:      member,
		DocumentID: docID,
	}
	if title, ok := rawReq["title"].(string); ok {
		input.Title = &title
	}
	if description, ok := rawReq["description"].(string); ok {
		input.Description = &description
	}

	doc, err := h.documentService.UpdateDocument(input)
	if err != nil {
		respondDocumentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentDTO(*doc, doc.UploadedBy == member.ID))
}

// SetPermission upserts one member's permission tuple. Uploader only.
func (h *DocumentHandler) SetPermission(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	docID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req services.PermissionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	doc, err := h.documentService.SetPermission(member, docID, req)
	if err != nil {
		respondDocumentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentDTO(*doc, true))
}

// DeleteDocument removes a document and its blob.
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	docID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.documentService.DeleteDocument(member, docID); err != nil {
		respondDocumentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Document deleted successfully",
	})
}

func respondDocumentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrDocumentTitleRequired),
		errors.Is(err, services.ErrDocumentEmpty),
		errors.Is(err, services.ErrInvalidAssignee):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrDocumentNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrDocumentForbidden),
		errors.Is(err, services.ErrNotParent):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
