package handlers

import (
	"io"
	"net/http"

	"roomly/models"
	"roomly/services/profile"
	"roomly/services/wizard"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxPhotoBytes caps profile photo uploads.
const maxPhotoBytes = 10 << 20

// ProfileHandler exposes the profile-builder step endpoints.
type ProfileHandler struct {
	Svc    profile.ProfileService
	Wizard *wizard.Controller
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(svc profile.ProfileService, wz *wizard.Controller) *ProfileHandler {
	return &ProfileHandler{Svc: svc, Wizard: wz}
}

// BasicDetailsHandler validates and saves the basic-details step, then
// reports the next wizard step.
func (h *ProfileHandler) BasicDetailsHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req models.BasicDetails
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	state := wizard.State{UserID: userID}
	next, err := h.Wizard.Advance(c.Request.Context(), wizard.StepBasicDetails, state, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "nextStep": next.String()})
}

// LifestyleQuizHandler validates and saves the nine lifestyle ratings, then
// reports the next wizard step.
func (h *ProfileHandler) LifestyleQuizHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req models.LifestyleQuiz
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	state := wizard.State{UserID: userID}
	next, err := h.Wizard.Advance(c.Request.Context(), wizard.StepLifestyleQuiz, state, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "nextStep": next.String()})
}

// UploadPhotoHandler runs the crop/brightness/resize pipeline on the uploaded
// file and returns the durable photo URL for the basic-details payload.
func (h *ProfileHandler) UploadPhotoHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var opts profile.PhotoOptions
	if err := c.ShouldBind(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Photo file is required"})
		return
	}
	if fileHeader.Size > maxPhotoBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Photo is too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read photo"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read photo"})
		return
	}

	url, err := h.Svc.UploadPhoto(c.Request.Context(), userID, data, opts)
	if err != nil {
		getLogger(c).Warn("Photo upload failed", zap.String("userID", userID), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// GetProfileHandler returns the accumulated profile draft.
func (h *ProfileHandler) GetProfileHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	data, err := h.Svc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}
