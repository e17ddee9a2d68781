package v1

import (
	"encoding/json"
	"io"
	"net/http"

	"go-resume-builder/internal/domain"
	"go-resume-builder/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ResumeHandler struct {
	resumeUC domain.ResumeUsecase
}

// NewResumeHandler registers the resume store routes (public, no auth)
func NewResumeHandler(r *gin.RouterGroup, resumeUC domain.ResumeUsecase) {
	handler := &ResumeHandler{resumeUC: resumeUC}

	r.POST("/resume", handler.Create)
	r.GET("/resume", handler.Get)
}

// Create godoc
// @Summary      Create a resume
// @Description  Validate a JSON Resume document against the schema and persist it
// @Tags         resume
// @Accept       json
// @Produce      json
// @Param        resume  body      domain.ResumeDocument  true  "Resume document"
// @Success      200     {object}  map[string]interface{}
// @Failure      400     {object}  map[string]interface{}
// @Failure      500     {object}  map[string]interface{}
// @Router       /resume [post]
func (h *ResumeHandler) Create(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	id, stored, err := h.resumeUC.Create(c.Request.Context(), raw)
	if err != nil {
		c.Error(err)
		return
	}

	body, err := documentWithID(id, stored)
	if err != nil {
		c.Error(apperror.Internal("Failed to save resume", err))
		return
	}
	c.JSON(http.StatusOK, body)
}

// Get godoc
// @Summary      Fetch resumes
// @Description  Return one resume by id, or every stored resume when id is omitted
// @Tags         resume
// @Produce      json
// @Param        id   query     string  false  "Resume identifier"
// @Success      200  {object}  domain.ResumeDocument
// @Failure      404  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /resume [get]
func (h *ResumeHandler) Get(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		docs, err := h.resumeUC.List(c.Request.Context())
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, docs)
		return
	}

	doc, err := h.resumeUC.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// documentWithID flattens the stored document and its identifier into one
// object, matching the {"id": ..., ...document} create response shape.
func documentWithID(id string, doc *domain.ResumeDocument) (gin.H, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var body gin.H
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	body["id"] = id
	return body, nil
}
