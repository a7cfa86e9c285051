package middleware

import (
	"github.com/estateflow/estateflow-backend/internal/dto"
	"github.com/estateflow/estateflow-backend/internal/models"
	"github.com/estateflow/estateflow-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminRequired gates the master admin directory. The is_admin claim alone
// is not trusted: the registry row is re-checked so a stale or forged token
// cannot outlive a revoked admin flag.
func AdminRequired(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := tenant.GetClaims(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if isAdmin, _ := claims["is_admin"].(bool); !isAdmin {
			return forbidden(c)
		}

		userID, err := tenant.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil || !user.IsAdmin {
			return forbidden(c)
		}

		return c.Next()
	}
}

func forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
		Error: true, Message: "Admin access required",
	})
}
