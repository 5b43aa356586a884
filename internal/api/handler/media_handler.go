package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/pkg/response"
)

// UploadMedia stores an uploaded file and records it as unattached media.
// The returned id can be referenced from a later tweet creation.
// @Summary Upload a media file
// @Tags medias
// @Accept multipart/form-data
// @Produce json
// @Param api-key header string true "caller identity"
// @Param file formData file true "file to upload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/medias [post]
func (h *Handler) UploadMedia(c *gin.Context) {
	if _, ok := h.caller(c); !ok {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil || fh.Filename == "" {
		response.BadRequest(c, "Invalid file")
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.BadRequest(c, "Invalid file")
		return
	}
	defer f.Close()

	media, err := h.mediaSvc.Upload(c.Request.Context(), fh.Filename, f)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"media_id": media.ID})
}
