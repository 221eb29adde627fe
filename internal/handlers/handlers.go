// Package handlers wires HTTP requests to the service layer. Handlers bind
// and validate request bodies, call services, and map sentinel errors to API
// error responses.
package handlers

import (
	"strconv"

	apierrors "github.com/flowfam/family-api/internal/errors"
	"github.com/flowfam/family-api/internal/middleware"
	"github.com/flowfam/family-api/internal/models"
	"github.com/gin-gonic/gin"
)

// currentMember pulls the resolved membership from context. Routes behind
// RequireFamilyMember always have one; a miss means a wiring bug.
func currentMember(c *gin.Context) (models.FamilyMember, bool) {
	member, ok := middleware.GetFamilyMember(c)
	if !ok {
		apierrors.InternalError(c, "Family membership not resolved")
		return models.FamilyMember{}, false
	}
	return member, true
}

// idParam parses a numeric URL parameter.
func idParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}
