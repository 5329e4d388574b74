package authController

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"virtualab/apperror"
	"virtualab/database"
	"virtualab/middleware"
	"virtualab/models"
	"virtualab/utils"
	authValidator "virtualab/validators/auth"
)

// UserWithRole is a user together with its teacher or student record.
type UserWithRole struct {
	models.User
	Teacher *models.Teacher `json:"teacher,omitempty"`
	Student *models.Student `json:"student,omitempty"`
}

// LoadUserWithRole attaches the role record of user.
func LoadUserWithRole(db *gorm.DB, user models.User) (UserWithRole, error) {
	out := UserWithRole{User: user}
	var err error
	if user.IsTeacher() {
		var teacher models.Teacher
		if err = db.First(&teacher, "teacher_id = ?", user.ID).Error; err == nil {
			out.Teacher = &teacher
		}
	} else {
		var student models.Student
		if err = db.First(&student, "student_id = ?", user.ID).Error; err == nil {
			out.Student = &student
		}
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return out, err
	}
	return out, nil
}

// Register creates a PENDING user without a password and its role record in
// one transaction. Uniqueness is enforced by the database.
func Register(c *fiber.Ctx) error {
	reqData := c.Locals("validatedRegister").(*authValidator.RegisterRequest)
	db := database.Database.Db

	user := models.User{
		FullName:           reqData.FullName,
		Username:           reqData.Username,
		Email:              reqData.Email,
		UserType:           *reqData.UserType,
		RegistrationStatus: models.RegistrationPending,
		School:             reqData.School,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if user.IsTeacher() {
			return tx.Create(&models.Teacher{TeacherID: user.ID, NIP: reqData.NIP}).Error
		}
		return tx.Create(&models.Student{StudentID: user.ID, NISN: reqData.NISN}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.ErrorResponse(c, apperror.Conflict(clashingField(db, reqData)+" is already registered!"))
		}
		log.Printf("Error saving user to database: %v", err)
		return middleware.ErrorResponse(c, apperror.Internal("Failed to register user!", err))
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Registration received, waiting for approval.", user)
}

// clashingField names the identifier that made a registration collide.
func clashingField(db *gorm.DB, reqData *authValidator.RegisterRequest) string {
	exists := func(model interface{}, query string, arg string) bool {
		var count int64
		if err := db.Model(model).Where(query, arg).Count(&count).Error; err != nil {
			log.Printf("Error checking %s: %v", query, err)
			return false
		}
		return count > 0
	}

	switch {
	case exists(&models.User{}, "username = ?", reqData.Username):
		return "Username"
	case exists(&models.User{}, "email = ?", reqData.Email):
		return "Email"
	case reqData.NIP != "" && *reqData.UserType == models.UserTypeTeacher && exists(&models.Teacher{}, "nip = ?", reqData.NIP):
		return "NIP"
	case reqData.NISN != "" && *reqData.UserType == models.UserTypeStudent && exists(&models.Student{}, "nisn = ?", reqData.NISN):
		return "NISN"
	default:
		return "Identifier"
	}
}

// Login verifies the password of an approved user and issues an access token.
func Login(c *fiber.Ctx) error {
	reqData := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	db := database.Database.Db

	var user models.User
	if err := db.Where("username = ?", reqData.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid username or password!", nil)
		}
		return middleware.ErrorResponse(c, apperror.Internal("Failed to load user!", err))
	}

	if !user.IsApproved() {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Account is still waiting for approval!", nil)
	}
	if !utils.CheckPassword(user.Password, reqData.Password) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid username or password!", nil)
	}

	token, err := middleware.GenerateJWT(user.Username)
	if err != nil {
		return middleware.ErrorResponse(c, apperror.Internal("Failed to generate token!", err))
	}

	withRole, err := LoadUserWithRole(db, user)
	if err != nil {
		return middleware.ErrorResponse(c, apperror.Internal("Failed to load user!", err))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
		"user":         withRole,
	})
}

// ChangePassword replaces the caller's password after checking the old one.
func ChangePassword(c *fiber.Ctx) error {
	reqData := c.Locals("validatedChangePassword").(*authValidator.ChangePasswordRequest)
	user, _ := middleware.CurrentUser(c)

	if !utils.CheckPassword(user.Password, reqData.OldPassword) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Old password is incorrect!", nil)
	}

	hashed, err := utils.HashPassword(reqData.NewPassword)
	if err != nil {
		return middleware.ErrorResponse(c, apperror.Internal("Failed to process your request!", err))
	}

	if err := database.Database.Db.Model(&models.User{}).Where("id = ?", user.ID).Update("password", hashed).Error; err != nil {
		return middleware.ErrorResponse(c, apperror.Internal("Failed to update password!", err))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password changed successfully.", nil)
}
