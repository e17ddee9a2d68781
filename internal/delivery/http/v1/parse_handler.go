package v1

import (
	"io"
	"net/http"

	"go-resume-builder/internal/domain"
	"go-resume-builder/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ParseHandler struct {
	parseUC     domain.ParseUsecase
	maxUploadMB int
}

// NewParseHandler registers the resume parse route (public, no auth)
func NewParseHandler(r *gin.RouterGroup, parseUC domain.ParseUsecase, maxUploadMB int, handlers ...gin.HandlerFunc) {
	handler := &ParseHandler{
		parseUC:     parseUC,
		maxUploadMB: maxUploadMB,
	}

	route := append(handlers, handler.Parse)
	r.POST("/resume/parse", route...)
}

// Parse godoc
// @Summary      Parse a PDF resume
// @Description  Extract text from an uploaded PDF and structure it as a JSON Resume document. The result is returned to the client and not persisted.
// @Tags         resume
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "PDF resume"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]interface{}
// @Failure      500   {object}  map[string]interface{}
// @Router       /resume/parse [post]
func (h *ParseHandler) Parse(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.BadRequest("No file provided"))
		return
	}

	if h.maxUploadMB > 0 && fileHeader.Size > int64(h.maxUploadMB)<<20 {
		c.Error(apperror.BadRequest("File too large"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.Internal("Failed to parse resume", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.Error(apperror.Internal("Failed to parse resume", err))
		return
	}

	parsed, err := h.parseUC.Parse(c.Request.Context(), fileHeader.Filename, data)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, parsed)
}
