package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/material-rental/internal/httperr"
	"github.com/BruksfildServices01/material-rental/internal/identity"
)

const (
	ContextUserID = "userID"

	HeaderAppCheck = "X-Firebase-AppCheck"
)

// OperatorOnly lets the request through when the bearer credential belongs
// to the operator.
func OperatorOnly(gate *identity.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, err := gate.Operator(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			if errors.Is(err, identity.ErrForbidden) {
				httperr.Forbidden(c, "forbidden", "Forbidden")
			} else {
				httperr.Unauthorized(c, "unauthorized", "Unauthorized")
			}
			c.Abort()
			return
		}

		c.Set(ContextUserID, subject)
		c.Next()
	}
}

// AppCheck requires a valid App Check token and, when origin is set, a
// matching Origin header.
func AppCheck(checker identity.AppChecker, origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(HeaderAppCheck)
		if token == "" {
			httperr.Unauthorized(c, "unauthorized", "Unauthorized")
			c.Abort()
			return
		}

		if origin != "" && c.GetHeader("Origin") != origin {
			httperr.Unauthorized(c, "unauthorized", "Unauthorized")
			c.Abort()
			return
		}

		if err := checker.VerifyAppCheck(c.Request.Context(), token); err != nil {
			httperr.Unauthorized(c, "unauthorized", "Unauthorized")
			c.Abort()
			return
		}

		c.Next()
	}
}
