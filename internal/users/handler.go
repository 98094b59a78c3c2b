package users

import (
	"strings"

	"konfeksiyon-backend/internal/activity"
	"konfeksiyon-backend/internal/auth"
	"konfeksiyon-backend/internal/database"
	"konfeksiyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// Kullanıcı yönetimi yalnızca admin rotalarında bağlanır; rol kontrolü
// middleware tarafında yapılır.

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

func validRole(r string) bool {
	switch models.UserRole(r) {
	case models.RoleAdmin, models.RoleFabricStaff, models.RoleCuttingMaster,
		models.RoleLineMaster, models.RoleFinishingHead, models.RoleWarehouseHead,
		models.RoleSalesTeam, models.RoleQCTeam:
		return true
	}
	return false
}

// GET /api/users
func ListUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.Order("id asc").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcılar listelenemedi")
		}
		return c.JSON(users)
	}
}

// POST /api/users
func CreateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body CreateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		body.Name = strings.TrimSpace(body.Name)

		if body.Name == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "İsim, email ve şifre zorunlu")
		}
		if !validRole(body.Role) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz rol: "+body.Role)
		}

		var count int64
		database.DB.Model(&models.User{}).Where("email = ?", body.Email).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Bu email zaten kayıtlı: "+body.Email)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
		}

		user := models.User{
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         models.UserRole(body.Role),
		}
		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı oluşturulamadı")
		}

		_ = activity.Record(activity.LogOptions{
			UserID:      admin.ID,
			UserName:    admin.Name,
			Module:      "users",
			Action:      models.ActivityActionCreate,
			Description: "Kullanıcı oluşturuldu: " + user.Email,
			NewValues:   fiber.Map{"email": user.Email, "role": user.Role},
		})

		return c.Status(fiber.StatusCreated).JSON(user)
	}
}

// PUT /api/users/:id
func UpdateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kullanıcı ID")
		}

		var body UpdateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		var user models.User
		if err := database.DB.First(&user, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		if body.Name != nil {
			user.Name = strings.TrimSpace(*body.Name)
		}
		if body.Email != nil {
			email := strings.TrimSpace(strings.ToLower(*body.Email))
			var count int64
			database.DB.Model(&models.User{}).
				Where("email = ? AND id <> ?", email, user.ID).
				Count(&count)
			if count > 0 {
				return fiber.NewError(fiber.StatusConflict, "Bu email zaten kayıtlı: "+email)
			}
			user.Email = email
		}
		if body.Role != nil {
			if !validRole(*body.Role) {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz rol: "+*body.Role)
			}
			user.Role = models.UserRole(*body.Role)
		}
		if body.Password != nil && *body.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(*body.Password), bcrypt.DefaultCost)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Şifre hashlenemedi")
			}
			user.PasswordHash = string(hash)
		}

		if err := database.DB.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı güncellenemedi")
		}

		_ = activity.Record(activity.LogOptions{
			UserID:      admin.ID,
			UserName:    admin.Name,
			Module:      "users",
			Action:      models.ActivityActionUpdate,
			Description: "Kullanıcı güncellendi: " + user.Email,
		})

		return c.JSON(user)
	}
}

// DELETE /api/users/:id
func DeleteUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kullanıcı ID")
		}
		if uint(id) == admin.ID {
			return fiber.NewError(fiber.StatusBadRequest, "Kendi hesabınızı silemezsiniz")
		}

		var user models.User
		if err := database.DB.First(&user, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		if err := database.DB.Delete(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı silinemedi")
		}

		_ = activity.Record(activity.LogOptions{
			UserID:      admin.ID,
			UserName:    admin.Name,
			Module:      "users",
			Action:      models.ActivityActionDelete,
			Description: "Kullanıcı silindi: " + user.Email,
			OldValues:   fiber.Map{"email": user.Email, "role": user.Role},
		})

		return c.JSON(fiber.Map{"message": "Kullanıcı silindi"})
	}
}
