package handlers

import (
	"errors"
	"net/http"

	"roomly/services/wizard"

	"github.com/gin-gonic/gin"
)

// WizardHandler exposes the central gate check so clients resolve step entry
// through one endpoint instead of per-page logic.
type WizardHandler struct {
	Wizard *wizard.Controller
}

// NewWizardHandler creates a WizardHandler.
func NewWizardHandler(wz *wizard.Controller) *WizardHandler {
	return &WizardHandler{Wizard: wz}
}

// StateHandler gates a requested step against the carried identity. It
// answers with the step the client should actually show.
func (h *WizardHandler) StateHandler(c *gin.Context) {
	step, err := wizard.ParseStep(c.Query("step"))
	if err != nil {
		respondError(c, err)
		return
	}

	state := wizard.State{
		UserID: c.Query("userId"),
		Email:  c.Query("email"),
	}

	entered, err := h.Wizard.Gate(c.Request.Context(), step, state)
	if err != nil {
		if errors.Is(err, wizard.ErrMissingSessionState) {
			c.JSON(http.StatusOK, gin.H{
				"step":     entered.String(),
				"redirect": true,
			})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"step":     entered.String(),
		"redirect": entered != step,
	})
}
