package materialController

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"virtualab/apperror"
	reviewController "virtualab/controllers/review"
	"virtualab/database"
	"virtualab/middleware"
	"virtualab/models"
	"virtualab/storage"
	"virtualab/utils"
	"virtualab/validators"
	materialValidator "virtualab/validators/material"
)

// MaterialWithAuthor is a material listed with its author's display data.
type MaterialWithAuthor struct {
	models.Material
	AuthorName     string `json:"author_name"`
	AuthorUsername string `json:"author_username"`
	AuthorNIP      string `json:"author_nip,omitempty"`
}

func loadMaterial(id uint) (*models.Material, error) {
	var material models.Material
	if err := database.Database.Db.First(&material, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Material not found!")
		}
		return nil, apperror.Internal("Failed to load material!", err)
	}
	return &material, nil
}

// loadOwnMaterial loads the material and checks the caller wrote it.
func loadOwnMaterial(c *fiber.Ctx) (*models.Material, error) {
	material, err := loadMaterial(validators.IDFrom(c, "id"))
	if err != nil {
		return nil, err
	}
	if material.AuthorID != c.Locals("userId").(uint) {
		return nil, apperror.Forbidden("You are not the author of this material!")
	}
	return material, nil
}

func withAuthor(db *gorm.DB) *gorm.DB {
	return db.Table("materials AS m").
		Select("m.*, u.full_name AS author_name, u.username AS author_username, t.nip AS author_nip").
		Joins("JOIN users u ON u.id = m.author_id").
		Joins("LEFT JOIN teachers t ON t.teacher_id = m.author_id")
}

// CreateMaterial uploads the file to the teacher bucket and stores the material as PENDING.
func CreateMaterial(c *fiber.Ctx) error {
	reqData := c.Locals("validatedMaterial").(*materialValidator.CreateMaterialRequest)
	userID := c.Locals("userId").(uint)

	upload, err := utils.ReadUpload(reqData.File)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := upload.RequireMedia(reqData.MediaType); err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := upload.Store(c.UserContext(), storage.BucketTeacher); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	material := models.Material{
		Title:          reqData.Title,
		MediaType:      reqData.MediaType,
		Filename:       upload.Filename,
		Description:    reqData.Description,
		AuthorID:       userID,
		ApprovalStatus: models.StatusPending,
	}
	if err := database.Database.Db.Create(&material).Error; err != nil {
		utils.RemoveObject(c.UserContext(), storage.BucketTeacher, upload.Filename)
		return middleware.ErrorResponse(c, apperror.Internal("Failed to create material!", err))
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Material created successfully.", material)
}

// MyMaterials lists the caller's materials, newest first.
func MyMaterials(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	var materials []models.Material
	if err := database.Database.Db.Where("author_id = ?", userID).Order("updated_at DESC").Find(&materials).Error; err != nil {
		return middleware.ErrorResponse(c, apperror.Internal("Failed to load materials!", err))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Materials fetched successfully.", materials)
}

// ApprovedMaterials lists every approved material with its author.
func ApprovedMaterials(c *fiber.Ctx) error {
	materials := make([]MaterialWithAuthor, 0)
	if err := withAuthor(database.Database.Db).
		Where("m.approval_status = ?", models.StatusApproved).
		Order("m.updated_at DESC").
		Scan(&materials).Error; err != nil {
		return middleware.ErrorResponse(c, apperror.Internal("Failed to load materials!", err))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Materials fetched successfully.", materials)
}

// MaterialDetail is visible to its author, or to anyone once approved.
func MaterialDetail(c *fiber.Ctx) error {
	material, err := loadMaterial(validators.IDFrom(c, "id"))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if material.ApprovalStatus != models.StatusApproved && material.AuthorID != c.Locals("userId").(uint) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Material is not published!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Material fetched successfully.", material)
}

// ReviewMaterialDetail shows a material of any status with its author's NIP.
func ReviewMaterialDetail(c *fiber.Ctx) error {
	var material MaterialWithAuthor
	result := withAuthor(database.Database.Db).Where("m.id = ?", validators.IDFrom(c, "id")).Scan(&material)
	if result.Error != nil {
		return middleware.ErrorResponse(c, apperror.Internal("Failed to load material!", result.Error))
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Material not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Material fetched successfully.", material)
}

// MaterialContent streams the material file. Reviewers and the author can
// read it before approval.
func MaterialContent(c *fiber.Ctx) error {
	material, err := loadMaterial(validators.IDFrom(c, "id"))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	if material.ApprovalStatus != models.StatusApproved && !middleware.RolesOf(c).Has(models.RoleReviewer) {
		userID, _ := c.Locals("userId").(uint)
		if material.AuthorID != userID {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Material is not published!", nil)
		}
	}

	return utils.SendObject(c, storage.BucketTeacher, material.Filename)
}

// UpdateMaterial changes any subset of fields; content edits send the
// material back to review.
func UpdateMaterial(c *fiber.Ctx) error {
	reqData := c.Locals("validatedMaterialUpdate").(*materialValidator.UpdateMaterialRequest)
	userID := c.Locals("userId").(uint)

	material, err := loadOwnMaterial(c)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	if reqData.Title != nil {
		material.Title = *reqData.Title
	}
	if reqData.Description != nil {
		material.Description = *reqData.Description
	}
	if reqData.MediaType != nil {
		material.MediaType = *reqData.MediaType
	}

	oldFilename := material.Filename
	var upload *utils.Upload
	if reqData.File != nil {
		if upload, err = utils.ReadUpload(reqData.File); err != nil {
			return middleware.ErrorResponse(c, err)
		}
		if err := upload.RequireMedia(material.MediaType); err != nil {
			return middleware.ErrorResponse(c, err)
		}
		if err := upload.Store(c.UserContext(), storage.BucketTeacher); err != nil {
			return middleware.ErrorResponse(c, err)
		}
		material.Filename = upload.Filename
	} else if reqData.MediaType != nil {
		return middleware.ValidationErrorResponse(c, map[string]string{"file": "Changing media_type needs a new file!"})
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		return reviewController.ApplyEvent(tx, material, models.EventEdit, userID)
	})
	if err != nil {
		if upload != nil {
			utils.RemoveObject(c.UserContext(), storage.BucketTeacher, upload.Filename)
		}
		return middleware.ErrorResponse(c, err)
	}
	if upload != nil {
		utils.RemoveObject(c.UserContext(), storage.BucketTeacher, oldFilename)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Material updated successfully.", material)
}

// DeleteMaterial removes the material and its stored file.
func DeleteMaterial(c *fiber.Ctx) error {
	material, err := loadOwnMaterial(c)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	if err := database.Database.Db.Delete(material).Error; err != nil {
		return middleware.ErrorResponse(c, apperror.Internal("Failed to delete material!", err))
	}
	utils.RemoveObject(c.UserContext(), storage.BucketTeacher, material.Filename)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Material deleted successfully.", nil)
}

// UpdateMaterialStatus approves or rejects a pending material.
func UpdateMaterialStatus(c *fiber.Ctx) error {
	return reviewController.Decide(c, &models.Material{})
}
