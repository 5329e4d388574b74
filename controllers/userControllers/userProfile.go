package userController

import (
	"log"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"virtualab/apperror"
	authController "virtualab/controllers/auth"
	"virtualab/database"
	"virtualab/middleware"
	"virtualab/models"
	"virtualab/storage"
	"virtualab/utils"
	"virtualab/validators"
	userValidator "virtualab/validators/userValidator"
)

// PendingUser is a registration waiting for review.
type PendingUser struct {
	models.User
	NIP  string `json:"nip,omitempty"`
	NISN string `json:"nisn,omitempty"`
}

func loadUser(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found!")
		}
		return nil, apperror.Internal("Failed to load user!", err)
	}
	return &user, nil
}

// PendingUsers lists registrations waiting for approval, oldest first.
func PendingUsers(c *fiber.Ctx) error {
	users := make([]PendingUser, 0)
	if err := database.Database.Db.Table("users AS u").
		Select("u.*, t.nip, s.nisn").
		Joins("LEFT JOIN teachers t ON t.teacher_id = u.id").
		Joins("LEFT JOIN students s ON s.student_id = u.id").
		Where("u.registration_status = ?", models.RegistrationPending).
		Order("u.registration_date ASC, u.id ASC").
		Scan(&users).Error; err != nil {
		return middleware.ErrorResponse(c, apperror.Internal("Failed to load users!", err))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending users fetched successfully.", users)
}

// GetUser returns a user with its role record to a reviewer or to the user themself.
func GetUser(c *fiber.Ctx) error {
	id := validators.IDFrom(c, "userId")
	userID, _ := c.Locals("userId").(uint)
	if !middleware.RolesOf(c).Has(models.RoleReviewer) && userID != id {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}

	db := database.Database.Db
	user, err := loadUser(db, id)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	withRole, err := authController.LoadUserWithRole(db, *user)
	if err != nil {
		return middleware.ErrorResponse(c, apperror.Internal("Failed to load user!", err))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User fetched successfully.", withRole)
}

// ApproveUser activates a pending user with the supplied or a generated
// password and emails the credentials.
func ApproveUser(c *fiber.Ctx) error {
	reqData := c.Locals("validatedApprove").(*userValidator.ApproveRequest)
	id := validators.IDFrom(c, "userId")

	password := reqData.Password
	if password == "" {
		var err error
		if password, err = utils.GeneratePassword(utils.GeneratedPasswordLength); err != nil {
			return middleware.ErrorResponse(c, apperror.Internal("Failed to generate password!", err))
		}
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return middleware.ErrorResponse(c, apperror.Internal("Failed to process your request!", err))
	}

	var user *models.User
	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		var err error
		if user, err = loadUser(tx.Clauses(clause.Locking{Strength: "UPDATE"}), id); err != nil {
			return err
		}
		if user.IsApproved() {
			return apperror.Conflict("User is already approved!")
		}
		user.RegistrationStatus = models.RegistrationApproved
		user.Password = hashed
		return tx.Save(user).Error
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	go func(u models.User, password string) {
		if err := utils.SendApprovalEmail(u.FullName, u.Email, u.Username, password); err != nil {
			log.Printf("[EMAIL] approval mail for user %d failed: %v", u.ID, err)
		}
	}(*user, password)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User approved successfully.", user)
}

// RejectUser deletes a pending registration. Approved users are never deleted.
func RejectUser(c *fiber.Ctx) error {
	id := validators.IDFrom(c, "userId")

	var user *models.User
	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		var err error
		if user, err = loadUser(tx.Clauses(clause.Locking{Strength: "UPDATE"}), id); err != nil {
			return err
		}
		if user.IsApproved() {
			return apperror.Conflict("Approved users cannot be rejected!")
		}
		if user.IsTeacher() {
			err = tx.Where("teacher_id = ?", id).Delete(&models.Teacher{}).Error
		} else {
			err = tx.Where("student_id = ?", id).Delete(&models.Student{}).Error
		}
		if err != nil {
			return apperror.Internal("Failed to delete role record!", err)
		}
		if err := tx.Delete(user).Error; err != nil {
			return apperror.Internal("Failed to delete user!", err)
		}
		return nil
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	go func(u models.User) {
		if err := utils.SendRejectionEmail(u.FullName, u.Email); err != nil {
			log.Printf("[EMAIL] rejection mail for user %d failed: %v", u.ID, err)
		}
	}(*user)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User rejected successfully.", nil)
}

// GetProfile returns the caller with its role record.
func GetProfile(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	withRole, err := authController.LoadUserWithRole(database.Database.Db, user)
	if err != nil {
		return middleware.ErrorResponse(c, apperror.Internal("Failed to load user!", err))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully.", withRole)
}

// UpdateProfile edits the caller's name, email and school.
func UpdateProfile(c *fiber.Ctx) error {
	reqData := c.Locals("validatedProfile").(*userValidator.UpdateProfileRequest)
	user, _ := middleware.CurrentUser(c)

	if reqData.FullName != nil {
		user.FullName = *reqData.FullName
	}
	if reqData.Email != nil {
		user.Email = *reqData.Email
	}
	if reqData.School != nil {
		user.School = *reqData.School
	}

	if err := database.Database.Db.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.ErrorResponse(c, apperror.Conflict("Email is already registered!"))
		}
		return middleware.ErrorResponse(c, apperror.Internal("Failed to update profile!", err))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully.", user)
}

// UpdateProfilePicture stores a new picture in the pfp bucket and removes the old one.
func UpdateProfilePicture(c *fiber.Ctx) error {
	file := c.Locals("validatedFile").(*multipart.FileHeader)
	user, _ := middleware.CurrentUser(c)

	upload, err := utils.ReadUpload(file)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := upload.RequireImage(); err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := upload.Store(c.UserContext(), storage.BucketProfilePicture); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	old := user.ProfilePicture
	if err := database.Database.Db.Model(&user).Update("profile_picture", upload.Filename).Error; err != nil {
		utils.RemoveObject(c.UserContext(), storage.BucketProfilePicture, upload.Filename)
		return middleware.ErrorResponse(c, apperror.Internal("Failed to update profile picture!", err))
	}
	user.ProfilePicture = upload.Filename
	utils.RemoveObject(c.UserContext(), storage.BucketProfilePicture, old)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile picture updated successfully.", user)
}

// GetProfilePicture streams a user's profile picture.
func GetProfilePicture(c *fiber.Ctx) error {
	user, err := loadUser(database.Database.Db, validators.IDFrom(c, "userId"))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if user.ProfilePicture == "" {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User has no profile picture!", nil)
	}

	return utils.SendObject(c, storage.BucketProfilePicture, user.ProfilePicture)
}
