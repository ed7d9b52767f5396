package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"

	"github.com/BruksfildServices01/material-rental/internal/httperr"
	"github.com/BruksfildServices01/material-rental/internal/httpresp"
	"github.com/BruksfildServices01/material-rental/internal/middleware"
	"github.com/BruksfildServices01/material-rental/internal/models"
	ucMaterial "github.com/BruksfildServices01/material-rental/internal/usecase/material"
)

// ======================================================
// HANDLER
// ======================================================

type MaterialHandler struct {
	list   *ucMaterial.ListMaterials
	get    *ucMaterial.GetMaterial
	search *ucMaterial.SearchMaterials
	create *ucMaterial.CreateMaterial
	update *ucMaterial.UpdateMaterial
	delete *ucMaterial.DeleteMaterial
}

func NewMaterialHandler(
	list *ucMaterial.ListMaterials,
	get *ucMaterial.GetMaterial,
	search *ucMaterial.SearchMaterials,
	create *ucMaterial.CreateMaterial,
	update *ucMaterial.UpdateMaterial,
	remove *ucMaterial.DeleteMaterial,
) *MaterialHandler {
	return &MaterialHandler{
		list:   list,
		get:    get,
		search: search,
		create: create,
		update: update,
		delete: remove,
	}
}

// ======================================================
// READS (PUBLIC)
// ======================================================

func (h *MaterialHandler) List(c *gin.Context) {
	materials, err := h.list.Execute(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, materials)
}

func (h *MaterialHandler) Get(c *gin.Context) {
	m, err := h.get.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, m)
}

func (h *MaterialHandler) Search(c *gin.Context) {
	materials, err := h.search.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, materials)
}

// ======================================================
// WRITES (OPERATOR)
// ======================================================

func (h *MaterialHandler) Create(c *gin.Context) {
	m, _, ok := bindMaterial(c)
	if !ok {
		return
	}

	created, err := h.create.Execute(c.Request.Context(), ucMaterial.CreateMaterialInput{
		Actor:    c.GetString(middleware.ContextUserID),
		Material: m,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.Created(c, created)
}

func (h *MaterialHandler) Update(c *gin.Context) {
	m, hasDates, ok := bindMaterial(c)
	if !ok {
		return
	}

	updated, err := h.update.Execute(c.Request.Context(), ucMaterial.UpdateMaterialInput{
		Actor:                c.GetString(middleware.ContextUserID),
		ID:                   c.Param("id"),
		Material:             m,
		KeepUnavailableDates: !hasDates,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, updated)
}

func (h *MaterialHandler) Delete(c *gin.Context) {
	err := h.delete.Execute(
		c.Request.Context(),
		c.GetString(middleware.ContextUserID),
		c.Param("id"),
	)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.Text(c, "Matériel supprimé")
}

// bindMaterial decodes the body and reports whether it carries
// unavailableDates.
func bindMaterial(c *gin.Context) (models.Material, bool, bool) {
	var m models.Material

	body, err := c.GetRawData()
	if err != nil || !gjson.ValidBytes(body) {
		httperr.BadRequest(c, "invalid_request", msgInvalidRequest)
		return m, false, false
	}
	if err := json.Unmarshal(body, &m); err != nil {
		httperr.BadRequest(c, "invalid_request", msgInvalidRequest)
		return m, false, false
	}

	hasDates := gjson.GetBytes(body, "unavailableDates").Exists()
	return m, hasDates, true
}
