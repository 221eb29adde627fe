package middleware

import (
	"github.com/flowfam/family-api/internal/constants"
	"github.com/flowfam/family-api/internal/database"
	apierrors "github.com/flowfam/family-api/internal/errors"
	"github.com/flowfam/family-api/internal/models"
	"github.com/gin-gonic/gin"
)

// RequireFamilyMember resolves the session user's family membership and
// stores the family and the membership in context. A user without a family
// gets a 404 so routes never leak whether a family exists.
func RequireFamilyMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var member models.FamilyMember
		if err := database.GetDB().Where("user_id = ?", userID).First(&member).Error; err != nil {
			apierrors.NotFound(c, "Family not found")
			c.Abort()
			return
		}

		var family models.Family
		if err := database.GetDB().First(&family, member.FamilyID).Error; err != nil {
			apierrors.NotFound(c, "Family not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyFamily, family)
		c.Set(constants.ContextKeyFamilyMember, member)
		c.Next()
	}
}

// RequireParent checks that the resolved membership carries the parent role.
// Must run after RequireFamilyMember.
func RequireParent() gin.HandlerFunc {
	return func(c *gin.Context) {
		member, ok := GetFamilyMember(c)
		if !ok {
			apierrors.Forbidden(c, "Family access required")
			c.Abort()
			return
		}

		if member.Role != models.RoleParent {
			apierrors.Forbidden(c, "Only parents can perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetFamilyMember retrieves the resolved membership from context
func GetFamilyMember(c *gin.Context) (models.FamilyMember, bool) {
	memberInterface, exists := c.Get(constants.ContextKeyFamilyMember)
	if !exists {
		return models.FamilyMember{}, false
	}

	member, ok := memberInterface.(models.FamilyMember)
	return member, ok
}

// GetFamily retrieves the resolved family from context
func GetFamily(c *gin.Context) (models.Family, bool) {
	familyInterface, exists := c.Get(constants.ContextKeyFamily)
	if !exists {
		return models.Family{}, false
	}

	family, ok := familyInterface.(models.Family)
	return family, ok
}
