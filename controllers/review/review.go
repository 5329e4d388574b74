package reviewController

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"virtualab/apperror"
	"virtualab/database"
	"virtualab/middleware"
	"virtualab/models"
	"virtualab/utils"
	"virtualab/validators"
)

// ApplyEvent moves item through event, saves it with tx and records the
// transition in the review history.
func ApplyEvent(tx *gorm.DB, item models.Approvable, event models.ApprovalEvent, actorID uint) error {
	from := item.CurrentStatus()
	if err := models.ApplyTransition(item, event, time.Now()); err != nil {
		return err
	}
	if err := tx.Save(item).Error; err != nil {
		return apperror.Internal("Failed to update status!", errors.Wrap(err, "save content"))
	}

	history := models.ReviewHistory{
		ContentKind: item.ContentKind(),
		ContentID:   item.ContentID(),
		Action:      models.ActionFor(event),
		FromStatus:  from,
		ToStatus:    item.CurrentStatus(),
		ActorID:     actorID,
	}
	if err := tx.Create(&history).Error; err != nil {
		return apperror.Internal("Failed to record review history!", errors.Wrap(err, "create review history"))
	}
	return nil
}

// Decide applies the reviewer decision stored by the status validator to the
// row with path id, loaded into item.
func Decide(c *fiber.Ctx, item models.Approvable) error {
	id := validators.IDFrom(c, "id")
	event, _ := c.Locals("reviewEvent").(models.ApprovalEvent)

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound(string(item.ContentKind()) + " not found!")
			}
			return apperror.Internal("Failed to load content!", err)
		}
		return ApplyEvent(tx, item, event, 0)
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	utils.NotifyReview(utils.ReviewEvent{
		ContentKind: string(item.ContentKind()),
		ContentID:   item.ContentID(),
		Title:       item.ContentTitle(),
		AuthorID:    item.AuthorOf(),
		Status:      string(item.CurrentStatus()),
		DecidedAt:   time.Now(),
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Status updated successfully.", item)
}

// History lists the review transitions of one content item, oldest first.
func History(kind models.ContentKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := validators.IDFrom(c, "id")

		var history []models.ReviewHistory
		if err := database.Database.Db.
			Where("content_kind = ? AND content_id = ?", kind, id).
			Order("created_at ASC, id ASC").
			Find(&history).Error; err != nil {
			return middleware.ErrorResponse(c, apperror.Internal("Failed to load history!", err))
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Review history fetched successfully.", history)
	}
}

// Post is one entry of the merged content feed.
type Post struct {
	Kind           models.ContentKind    `json:"kind"`
	ID             uint                  `json:"id"`
	Title          string                `json:"title"`
	ApprovalStatus models.ApprovalStatus `json:"approval_status"`
	AuthorID       uint                  `json:"author_id"`
	AuthorUsername string                `json:"author_username,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// collectPosts reads every content kind filtered by scope and merges them,
// newest update first.
func collectPosts(db *gorm.DB, scope func(*gorm.DB) *gorm.DB) ([]Post, error) {
	posts := make([]Post, 0)
	for _, src := range []struct {
		kind  models.ContentKind
		table string
	}{
		{models.KindMaterial, models.Material{}.TableName()},
		{models.KindExercise, models.Exercise{}.TableName()},
		{models.KindArticle, models.ReactionArticle{}.TableName()},
	} {
		var rows []Post
		err := scope(db.Table(src.table+" AS c")).
			Select("c.id, c.title, c.approval_status, c.author_id, u.username AS author_username, c.created_at, c.updated_at").
			Joins("LEFT JOIN users u ON u.id = c.author_id").
			Scan(&rows).Error
		if err != nil {
			return nil, errors.Wrapf(err, "list %s", src.table)
		}
		for i := range rows {
			rows[i].Kind = src.kind
		}
		posts = append(posts, rows...)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].UpdatedAt.After(posts[j].UpdatedAt)
	})
	return posts, nil
}

// RecentPosts lists the caller's own materials, exercises and articles.
func RecentPosts(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	posts, err := collectPosts(database.Database.Db, func(db *gorm.DB) *gorm.DB {
		return db.Where("c.author_id = ?", userID)
	})
	if err != nil {
		return middleware.ErrorResponse(c, apperror.Internal("Failed to load posts!", err))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Recent posts fetched successfully.", posts)
}

// PendingPosts lists everything waiting for review.
func PendingPosts(c *fiber.Ctx) error {
	posts, err := collectPosts(database.Database.Db, func(db *gorm.DB) *gorm.DB {
		return db.Where("c.approval_status = ?", models.StatusPending)
	})
	if err != nil {
		return middleware.ErrorResponse(c, apperror.Internal("Failed to load posts!", err))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending posts fetched successfully.", posts)
}
