package handlers

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/material-rental/internal/httperr"
	"github.com/BruksfildServices01/material-rental/internal/identity"
	"github.com/BruksfildServices01/material-rental/internal/infra/docstore"
	"github.com/BruksfildServices01/material-rental/internal/validators"
)

const (
	msgInvalidRequest = "Requête invalide"
	msgInternal       = "Erreur interne du serveur"
)

var notFoundMessages = map[string]string{
	"material_not_found": "Matériel introuvable",
	"booking_not_found":  "Réservation introuvable",
	"message_not_found":  "Message introuvable",
}

var conflictMessages = map[string]string{
	"material_exists": "Matériel déjà existant",
	"booking_exists":  "Réservation déjà existante",
}

// writeError maps use case and infrastructure errors to the JSON envelope.
func writeError(c *gin.Context, err error) {
	var be httperr.BusinessError

	switch {
	case errors.Is(err, identity.ErrMissingCredential), errors.Is(err, identity.ErrInvalidCredential):
		httperr.Unauthorized(c, "unauthorized", "Unauthorized")
	case errors.Is(err, identity.ErrForbidden):
		httperr.Forbidden(c, "forbidden", "Forbidden")
	case errors.Is(err, docstore.ErrInvalidKey):
		httperr.BadRequest(c, "invalid_key", msgInvalidRequest)
	case errors.As(err, &be):
		writeBusiness(c, be.Code)
	default:
		log.Printf("ERROR %s %s: %v", c.Request.Method, c.FullPath(), err)
		httperr.Internal(c, "internal_error", msgInternal)
	}
}

// writeBusiness answers 400 for every business code that is neither a
// missing entity nor a conflict.
func writeBusiness(c *gin.Context, code string) {
	if msg, ok := notFoundMessages[code]; ok {
		httperr.NotFound(c, code, msg)
		return
	}
	if msg, ok := conflictMessages[code]; ok {
		httperr.Conflict(c, code, msg)
		return
	}
	httperr.BadRequest(c, code, msgInvalidRequest)
}

// writeBindError answers a failed ShouldBindJSON.
func writeBindError(c *gin.Context, err error) {
	if details, ok := validators.Details(err); ok {
		httperr.Validation(c, "validation_failed", msgInvalidRequest, details)
		return
	}
	httperr.BadRequest(c, "invalid_request", msgInvalidRequest)
}
