package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/material-rental/internal/dto"
	"github.com/BruksfildServices01/material-rental/internal/httpresp"
	"github.com/BruksfildServices01/material-rental/internal/middleware"
	ucMessaging "github.com/BruksfildServices01/material-rental/internal/usecase/messaging"
)

// ======================================================
// HANDLER
// ======================================================

type MessagingHandler struct {
	post       *ucMessaging.PostMessage
	list       *ucMessaging.ListMessages
	get        *ucMessaging.GetMessage
	toggleRead *ucMessaging.ToggleRead
	delete     *ucMessaging.DeleteMessage
	promote    *ucMessaging.Promote
}

func NewMessagingHandler(
	post *ucMessaging.PostMessage,
	list *ucMessaging.ListMessages,
	get *ucMessaging.GetMessage,
	toggleRead *ucMessaging.ToggleRead,
	remove *ucMessaging.DeleteMessage,
	promote *ucMessaging.Promote,
) *MessagingHandler {
	return &MessagingHandler{
		post:       post,
		list:       list,
		get:        get,
		toggleRead: toggleRead,
		delete:     remove,
		promote:    promote,
	}
}

// ======================================================
// PUBLIC
// ======================================================

func (h *MessagingHandler) Post(c *gin.Context) {
	var req dto.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	if _, err := h.post.Execute(c.Request.Context(), req.ToModel()); err != nil {
		writeError(c, err)
		return
	}
	httpresp.Created(c, httpresp.Message{Message: "Réservation crée"})
}

// ======================================================
// OPERATOR
// ======================================================

func (h *MessagingHandler) List(c *gin.Context) {
	messages, err := h.list.Execute(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, messages)
}

func (h *MessagingHandler) Get(c *gin.Context) {
	m, err := h.get.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, m)
}

func (h *MessagingHandler) ToggleRead(c *gin.Context) {
	m, err := h.toggleRead.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, m)
}

func (h *MessagingHandler) Delete(c *gin.Context) {
	material, err := h.delete.Execute(
		c.Request.Context(),
		c.GetString(middleware.ContextUserID),
		c.Param("id"),
	)
	if err != nil {
		writeError(c, err)
		return
	}
	if material == nil {
		httpresp.Text(c, "Message supprimé")
		return
	}
	httpresp.OK(c, material)
}

func (h *MessagingHandler) Promote(c *gin.Context) {
	var req dto.PromoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	b, err := h.promote.Execute(c.Request.Context(), ucMessaging.PromoteInput{
		Actor: c.GetString(middleware.ContextUserID),
		ID:    req.ID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.Created(c, b)
}
