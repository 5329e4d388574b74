package articleController

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
	articleValidator "virtualab/validators/article"
)

type ArticleWithAuthor struct {
	models.ReactionArticle
	AuthorName     string `json:"author_name"`
	AuthorUsername string `json:"author_username"`
	AuthorNIP      string `json:"author_nip,omitempty"`
}

func loadArticle(id uint) (*models.ReactionArticle, error) {
	var article models.ReactionArticle
	if err := database.Database.Db.First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Article not found!")
		}
		return nil, apperror.Internal("Failed to load article!", err)
	}
	return &article, nil
}

func loadOwnArticle(c *fiber.Ctx) (*models.ReactionArticle, error) {
	article, err := loadArticle(validators.IDFrom(c, "id"))
	if err != nil {
		return nil, err
	}
	if article.AuthorID != c.Locals("userId").(uint) {
		return nil, apperror.Forbidden("You are not the author of this article!")
	}
	return article, nil
}

func withAuthor(db *gorm.DB) *gorm.DB {
	return db.Table("reaction_articles AS a").
		Select("a.*, u.full_name AS author_name, u.username AS author_username, t.nip AS author_nip").
		Joins("JOIN users u ON u.id = a.author_id").
		Joins("LEFT JOIN teachers t ON t.teacher_id = a.author_id")
}

// CreateArticle stores the article image in the article bucket and the row as PENDING.
func CreateArticle(c *fiber.Ctx) error {
	reqData := c.Locals("validatedArticle").(*articleValidator.CreateArticleRequest)
	userID := c.Locals("userId").(uint)

	upload, err := utils.ReadUpload(reqData.File)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := upload.RequireImage(); err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if err := upload.Store(c.UserContext(), storage.BucketArticle); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	article := models.ReactionArticle{
		Title:          reqData.Title,
		Filename:       upload.Filename,
		Description:    reqData.Description,
		AuthorID:       userID,
		ApprovalStatus: models.StatusPending,
	}
	if err := database.Database.Db.Create(&article).Error; err != nil {
		utils.RemoveObject(c.UserContext(), storage.BucketArticle, upload.Filename)
		return middleware.ErrorResponse(c, apperror.Internal("Failed to create article!", err))
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Article created successfully.", article)
}

func MyArticles(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	var articles []models.ReactionArticle
	if err := database.Database.Db.Where("author_id = ?", userID).Order("updated_at DESC").Find(&articles).Error; err != nil {
		return middleware.ErrorResponse(c, apperror.Internal("Failed to load articles!", err))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Articles fetched successfully.", articles)
}

func ApprovedArticles(c *fiber.Ctx) error {
	articles := make([]ArticleWithAuthor, 0)
	if err := withAuthor(database.Database.Db).
		Where("a.approval_status = ?", models.StatusApproved).
		Order("a.updated_at DESC").
		Scan(&articles).Error; err != nil {
		return middleware.ErrorResponse(c, apperror.Internal("Failed to load articles!", err))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Articles fetched successfully.", articles)
}

func ArticleDetail(c *fiber.Ctx) error {
	article, err := loadArticle(validators.IDFrom(c, "id"))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if article.ApprovalStatus != models.StatusApproved && article.AuthorID != c.Locals("userId").(uint) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Article is not published!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Article fetched successfully.", article)
}

func ReviewArticleDetail(c *fiber.Ctx) error {
	var article ArticleWithAuthor
	result := withAuthor(database.Database.Db).Where("a.id = ?", validators.IDFrom(c, "id")).Scan(&article)
	if result.Error != nil {
		return middleware.ErrorResponse(c, apperror.Internal("Failed to load article!", result.Error))
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Article not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Article fetched successfully.", article)
}

func ArticleContent(c *fiber.Ctx) error {
	article, err := loadArticle(validators.IDFrom(c, "id"))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	if article.ApprovalStatus != models.StatusApproved && !middleware.RolesOf(c).Has(models.RoleReviewer) {
		userID, _ := c.Locals("userId").(uint)
		if article.AuthorID != userID {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Article is not published!", nil)
		}
	}

	return utils.SendObject(c, storage.BucketArticle, article.Filename)
}

// UpdateArticle edits the article and sends it back to review.
func UpdateArticle(c *fiber.Ctx) error {
	reqData := c.Locals("validatedArticleUpdate").(*articleValidator.UpdateArticleRequest)
	userID := c.Locals("userId").(uint)

	article, err := loadOwnArticle(c)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	if reqData.Title != nil {
		article.Title = *reqData.Title
	}
	if reqData.Description != nil {
		article.Description = *reqData.Description
	}

	oldFilename := article.Filename
	var upload *utils.Upload
	if reqData.File != nil {
		if upload, err = utils.ReadUpload(reqData.File); err != nil {
			return middleware.ErrorResponse(c, err)
		}
		if err := upload.RequireImage(); err != nil {
			return middleware.ErrorResponse(c, err)
		}
		if err := upload.Store(c.UserContext(), storage.BucketArticle); err != nil {
			return middleware.ErrorResponse(c, err)
		}
		article.Filename = upload.Filename
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		return reviewController.ApplyEvent(tx, article, models.EventEdit, userID)
	})
	if err != nil {
		if upload != nil {
			utils.RemoveObject(c.UserContext(), storage.BucketArticle, upload.Filename)
		}
		return middleware.ErrorResponse(c, err)
	}
	if upload != nil {
		utils.RemoveObject(c.UserContext(), storage.BucketArticle, oldFilename)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Article updated successfully.", article)
}

func DeleteArticle(c *fiber.Ctx) error {
	article, err := loadOwnArticle(c)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	if err := database.Database.Db.Delete(article).Error; err != nil {
		return middleware.ErrorResponse(c, apperror.Internal("Failed to delete article!", err))
	}
	utils.RemoveObject(c.UserContext(), storage.BucketArticle, article.Filename)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Article deleted successfully.", nil)
}

// UpdateArticleStatus approves or rejects a pending article.
func UpdateArticleStatus(c *fiber.Ctx) error {
	return reviewController.Decide(c, &models.ReactionArticle{})
}
