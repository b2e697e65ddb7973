package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/elecmate/cvbuilder/api/http/presenter"
	"github.com/elecmate/cvbuilder/pkg/cvsync"
)

// SyncHandler exposes Elec-ID to CV synchronisation for the caller's CVs.
type SyncHandler struct {
	uc cvsync.UseCase
}

func NewSyncHandler(uc cvsync.UseCase) *SyncHandler { return &SyncHandler{uc: uc} }

type selectionRequest struct {
	// nil imports every record not yet on the CV
	SelectedIDs []string `json:"selectedIds"`
}

// @Summary Skills and certifications sync status
// @Tags    Sync
// @Produce json
// @Param   id path string true "ID CV (UUID)"
// @Security BearerAuth
// @Success 200 {object} cvsync.SyncStatus
// @Router  /cvs/{id}/sync/status [get]
func (h *SyncHandler) Status(c *fiber.Ctx) error {
	uid, id, err := userAndCV(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Status(c.Context(), uid, id)
	if err != nil {
		return writeError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// @Summary Preview skills and certifications sync
// @Tags    Sync
// @Produce json
// @Param   id path string true "ID CV (UUID)"
// @Security BearerAuth
// @Success 200 {object} cvsync.SyncPreview
// @Router  /cvs/{id}/sync/preview [get]
func (h *SyncHandler) Preview(c *fiber.Ctx) error {
	uid, id, err := userAndCV(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Preview(c.Context(), uid, id)
	if err != nil {
		return writeError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// @Summary Preview experience and training import
// @Tags    Sync
// @Produce json
// @Param   id path string true "ID CV (UUID)"
// @Security BearerAuth
// @Success 200 {object} cvsync.ImportPreview
// @Router  /cvs/{id}/sync/import-preview [get]
func (h *SyncHandler) ImportPreview(c *fiber.Ctx) error {
	uid, id, err := userAndCV(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ImportPreview(c.Context(), uid, id)
	if err != nil {
		return writeError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// @Summary Add Elec-ID skills and qualifications to the CV
// @Tags    Sync
// @Produce json
// @Param   id path string true "ID CV (UUID)"
// @Security BearerAuth
// @Success 200 {object} cv.CV
// @Failure 422 {object} presenter.ErrorResponse
// @Router  /cvs/{id}/sync/skills [post]
func (h *SyncHandler) SyncSkills(c *fiber.Ctx) error {
	uid, id, err := userAndCV(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.SyncSkillsAndCerts(c.Context(), uid, id)
	if err != nil {
		return writeError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// @Summary Import Elec-ID work history
// @Tags    Sync
// @Accept  json
// @Produce json
// @Param   id    path string           true  "ID CV (UUID)"
// @Param   input body selectionRequest false "Selected records"
// @Security BearerAuth
// @Success 200 {object} cv.CV
// @Failure 422 {object} presenter.ErrorResponse
// @Router  /cvs/{id}/sync/work-history [post]
func (h *SyncHandler) ImportWorkHistory(c *fiber.Ctx) error {
	uid, id, err := userAndCV(c)
	if err != nil {
		return writeError(c, err)
	}
	sel, err := parseSelection(c)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	out, err := h.uc.ImportWorkHistory(c.Context(), uid, id, sel)
	if err != nil {
		return writeError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// @Summary Import Elec-ID training as education
// @Tags    Sync
// @Accept  json
// @Produce json
// @Param   id    path string           true  "ID CV (UUID)"
// @Param   input body selectionRequest false "Selected records"
// @Security BearerAuth
// @Success 200 {object} cv.CV
// @Failure 422 {object} presenter.ErrorResponse
// @Router  /cvs/{id}/sync/training [post]
func (h *SyncHandler) ImportTraining(c *fiber.Ctx) error {
	uid, id, err := userAndCV(c)
	if err != nil {
		return writeError(c, err)
	}
	sel, err := parseSelection(c)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	out, err := h.uc.ImportTraining(c.Context(), uid, id, sel)
	if err != nil {
		return writeError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// @Summary Full Elec-ID import
// @Tags    Sync
// @Produce json
// @Param   id path string true "ID CV (UUID)"
// @Security BearerAuth
// @Success 200 {object} cv.CV
// @Failure 422 {object} presenter.ErrorResponse
// @Router  /cvs/{id}/sync/import [post]
func (h *SyncHandler) ImportAll(c *fiber.Ctx) error {
	uid, id, err := userAndCV(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ImportFromElecID(c.Context(), uid, id)
	if err != nil {
		return writeError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// parseSelection reads an optional {"selectedIds": [...]} body.
// An empty body means no selection filter.
func parseSelection(c *fiber.Ctx) ([]string, error) {
	if len(c.Body()) == 0 {
		return nil, nil
	}
	var req selectionRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, err
	}
	return req.SelectedIDs, nil
}
