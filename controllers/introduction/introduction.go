package introductionController

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"virtualab/apperror"
	"virtualab/database"
	"virtualab/middleware"
	"virtualab/models"
	"virtualab/storage"
	"virtualab/utils"
	introductionValidator "virtualab/validators/introduction"
)

func loadIntroduction() (*models.Introduction, error) {
	var intro models.Introduction
	if err := database.Database.Db.Order("id ASC").First(&intro).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Introduction not found!")
		}
		return nil, apperror.Internal("Failed to load introduction!", err)
	}
	return &intro, nil
}

// CreateIntroduction stores the introduction video. Only one introduction exists.
func CreateIntroduction(c *fiber.Ctx) error {
	reqData := c.Locals("validatedIntroduction").(*introductionValidator.CreateIntroductionRequest)

	if _, err := loadIntroduction(); err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Introduction already exists!", nil)
	} else if !apperror.Is(err, apperror.KindNotFound) {
		return middleware.ErrorResponse(c, err)
	}

	upload, err := utils.ReadUpload(reqData.File)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := upload.RequireMedia(models.MediaVideo); err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := upload.Store(c.UserContext(), storage.BucketMaterial); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	intro := models.Introduction{
		Title:       reqData.Title,
		Description: reqData.Description,
		Filename:    upload.Filename,
	}
	if err := database.Database.Db.Create(&intro).Error; err != nil {
		utils.RemoveObject(c.UserContext(), storage.BucketMaterial, upload.Filename)
		return middleware.ErrorResponse(c, apperror.Internal("Failed to create introduction!", err))
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Introduction created successfully.", intro)
}

func GetIntroduction(c *fiber.Ctx) error {
	intro, err := loadIntroduction()
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Introduction fetched successfully.", intro)
}

func IntroductionContent(c *fiber.Ctx) error {
	intro, err := loadIntroduction()
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return utils.SendObject(c, storage.BucketMaterial, intro.Filename)
}

func UpdateIntroduction(c *fiber.Ctx) error {
	reqData := c.Locals("validatedIntroductionUpdate").(*introductionValidator.UpdateIntroductionRequest)

	intro, err := loadIntroduction()
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	if reqData.Title != nil {
		intro.Title = *reqData.Title
	}
	if reqData.Description != nil {
		intro.Description = *reqData.Description
	}

	oldFilename := intro.Filename
	var upload *utils.Upload
	if reqData.File != nil {
		if upload, err = utils.ReadUpload(reqData.File); err != nil {
			return middleware.ErrorResponse(c, err)
		}
		if err := upload.RequireMedia(models.MediaVideo); err != nil {
			return middleware.ErrorResponse(c, err)
		}
		if err := upload.Store(c.UserContext(), storage.BucketMaterial); err != nil {
			return middleware.ErrorResponse(c, err)
		}
		intro.Filename = upload.Filename
	}

	if err := database.Database.Db.Save(intro).Error; err != nil {
		if upload != nil {
			utils.RemoveObject(c.UserContext(), storage.BucketMaterial, upload.Filename)
		}
		return middleware.ErrorResponse(c, apperror.Internal("Failed to update introduction!", err))
	}
	if upload != nil {
		utils.RemoveObject(c.UserContext(), storage.BucketMaterial, oldFilename)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Introduction updated successfully.", intro)
}

func DeleteIntroduction(c *fiber.Ctx) error {
	intro, err := loadIntroduction()
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	if err := database.Database.Db.Delete(intro).Error; err != nil {
		return middleware.ErrorResponse(c, apperror.Internal("Failed to delete introduction!", err))
	}
	utils.RemoveObject(c.UserContext(), storage.BucketMaterial, intro.Filename)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Introduction deleted successfully.", nil)
}
