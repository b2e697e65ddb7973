package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/elecmate/cvbuilder/api/http/presenter"
	"github.com/elecmate/cvbuilder/pkg/elecid"
)

type ElecIDHandler struct {
	uc elecid.UseCase
}

func NewElecIDHandler(uc elecid.UseCase) *ElecIDHandler { return &ElecIDHandler{uc: uc} }

// Get returns the caller's Elec-ID profile, or null when there is none.
// @Summary Get Elec-ID profile
// @Tags    Elec-ID
// @Produce json
// @Security BearerAuth
// @Success 200 {object} elecid.Profile
// @Router  /elec-id [get]
func (h *ElecIDHandler) Get(c *fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return writeError(c, err)
	}
	p, err := h.uc.Get(c.Context(), uid)
	if err != nil {
		return writeError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// Replace overwrites the whole profile.
// @Summary Save Elec-ID profile
// @Tags    Elec-ID
// @Accept  json
// @Produce json
// @Param   input body elecid.Profile true "Profile"
// @Security BearerAuth
// @Success 200 {object} elecid.Profile
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /elec-id [put]
func (h *ElecIDHandler) Replace(c *fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return writeError(c, err)
	}
	var p elecid.Profile
	if err := c.BodyParser(&p); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	out, err := h.uc.Replace(c.Context(), uid, p)
	if err != nil {
		return writeError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, out)
}
