package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/elecmate/cvbuilder/api/http/presenter"
	"github.com/elecmate/cvbuilder/pkg/cv"
)

type CVHandler struct {
	uc cv.UseCase
}

func NewCVHandler(uc cv.UseCase) *CVHandler { return &CVHandler{uc: uc} }

// cvListItem is a CV in a listing along with its completeness percentage.
type cvListItem struct {
	cv.CV
	Completeness int `json:"completeness"`
}

// List returns the caller's CVs.
// @Summary List CVs
// @Tags    CV
// @Produce json
// @Param   limit  query int false "limit (1..200)"
// @Param   offset query int false "offset"
// @Security BearerAuth
// @Success 200 {object} presenter.Page[cvListItem]
// @Router  /cvs [get]
func (h *CVHandler) List(c *fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return writeError(c, err)
	}
	items, err := h.uc.List(c.Context(), uid)
	if err != nil {
		return writeError(c, err)
	}
	limit, offset := parseLimitOffset(c, 50)
	window := page(items, limit, offset)
	out := make([]cvListItem, 0, len(window))
	for _, it := range window {
		out = append(out, cvListItem{CV: it, Completeness: cv.Score(it)})
	}
	return presenter.List(c, out, len(items), limit, offset)
}

// Create adds a CV; the user's first CV becomes primary.
// @Summary Create CV
// @Tags    CV
// @Accept  json
// @Produce json
// @Param   input body cv.Draft true "CV content"
// @Security BearerAuth
// @Success 201 {object} cv.CV
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /cvs [post]
func (h *CVHandler) Create(c *fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return writeError(c, err)
	}
	var d cv.Draft
	if err := c.BodyParser(&d); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	created, err := h.uc.Create(c.Context(), uid, d)
	if err != nil {
		return writeError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, created)
}

// Primary returns the primary CV, or null when there is none.
// @Summary Get primary CV
// @Tags    CV
// @Produce json
// @Security BearerAuth
// @Success 200 {object} cv.CV
// @Router  /cvs/primary [get]
func (h *CVHandler) Primary(c *fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return writeError(c, err)
	}
	p, err := h.uc.Primary(c.Context(), uid)
	if err != nil {
		return writeError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// @Summary Get CV
// @Tags    CV
// @Produce json
// @Param   id path string true "ID CV (UUID)"
// @Security BearerAuth
// @Success 200 {object} cv.CV
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /cvs/{id} [get]
func (h *CVHandler) Get(c *fiber.Ctx) error {
	uid, id, err := userAndCV(c)
	if err != nil {
		return writeError(c, err)
	}
	item, err := h.uc.Get(c.Context(), uid, id)
	if err != nil {
		return writeError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, item)
}

// Update patches a CV. Setting version turns on the concurrent write check.
// @Summary Update CV
// @Tags    CV
// @Accept  json
// @Produce json
// @Param   id    path string   true "ID CV (UUID)"
// @Param   input body cv.Patch true "Fields to change"
// @Security BearerAuth
// @Success 200 {object} cv.CV
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /cvs/{id} [put]
func (h *CVHandler) Update(c *fiber.Ctx) error {
	uid, id, err := userAndCV(c)
	if err != nil {
		return writeError(c, err)
	}
	var p cv.Patch
	if err := c.BodyParser(&p); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	updated, err := h.uc.Update(c.Context(), uid, id, p)
	if err != nil {
		return writeError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, updated)
}

// @Summary Delete CV
// @Tags    CV
// @Param   id path string true "ID CV (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /cvs/{id} [delete]
func (h *CVHandler) Delete(c *fiber.Ctx) error {
	uid, id, err := userAndCV(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.Context(), uid, id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// @Summary Make CV primary
// @Tags    CV
// @Param   id path string true "ID CV (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /cvs/{id}/primary [post]
func (h *CVHandler) SetPrimary(c *fiber.Ctx) error {
	uid, id, err := userAndCV(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.SetPrimary(c.Context(), uid, id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// @Summary CV completeness
// @Tags    CV
// @Produce json
// @Param   id path string true "ID CV (UUID)"
// @Security BearerAuth
// @Success 200 {object} cv.Completeness
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /cvs/{id}/completeness [get]
func (h *CVHandler) Completeness(c *fiber.Ctx) error {
	uid, id, err := userAndCV(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Completeness(c.Context(), uid, id)
	if err != nil {
		return writeError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, out)
}
