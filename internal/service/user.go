package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealbook/backend/internal/models"
	"github.com/mealbook/backend/internal/types"
)

var (
	ErrSelfSubscribe     = errors.New("cannot subscribe to yourself")
	ErrAlreadySubscribed = errors.New("already subscribed to this author")
	ErrNotSubscribed     = errors.New("not subscribed to this author")
)

// UserService handles user lookups and the follow relation.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns a page of users and the total count.
func (s *UserService) ListUsers(ctx context.Context, page, limit int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	q := s.db.WithContext(ctx).Model(&models.User{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("username asc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// IsSubscribed reports whether user follows author. Anonymous callers
// (nil user) are never subscribed.
func (s *UserService) IsSubscribed(ctx context.Context, userID *uuid.UUID, authorID uuid.UUID) bool {
	if userID == nil {
		return false
	}
	var count int64
	s.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("user_id = ? AND author_id = ?", *userID, authorID).
		Count(&count)
	return count > 0
}

// Subscribe makes userID a follower of authorID.
func (s *UserService) Subscribe(ctx context.Context, userID, authorID uuid.UUID) error {
	if userID == authorID {
		return ErrSelfSubscribe
	}

	var author models.User
	if err := s.db.WithContext(ctx).First(&author, "id = ?", authorID).Error; err != nil {
		return err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadySubscribed
	}

	sub := models.Subscription{UserID: userID, AuthorID: authorID}
	if err := s.db.WithContext(ctx).Create(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadySubscribed
		}
		return err
	}
	return nil
}

// Unsubscribe removes the follow relation.
func (s *UserService) Unsubscribe(ctx context.Context, userID, authorID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Subscription{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotSubscribed
	}
	return nil
}

// subscriptionRecipePreview caps how many recipes are embedded per author
// in the subscriptions listing.
const subscriptionRecipePreview = 3

// Subscriptions returns the authors the user follows, each annotated with
// their newest recipes and a total recipe count.
func (s *UserService) Subscriptions(ctx context.Context, userID uuid.UUID, page, limit int) ([]types.SubscriptionResponse, int64, error) {
	base := s.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var authors []models.User
	err := base.Order("subscriptions.created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&authors).Error
	if err != nil {
		return nil, 0, err
	}

	results := make([]types.SubscriptionResponse, 0, len(authors))
	for _, author := range authors {
		var recipes []models.Recipe
		if err := s.db.WithContext(ctx).
			Where("author_id = ?", author.ID).
			Order("created_at desc").
			Limit(subscriptionRecipePreview).
			Find(&recipes).Error; err != nil {
			return nil, 0, err
		}

		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Recipe{}).
			Where("author_id = ?", author.ID).
			Count(&count).Error; err != nil {
			return nil, 0, err
		}

		preview := make([]types.RecipeCompact, 0, len(recipes))
		for _, r := range recipes {
			preview = append(preview, types.RecipeCompact{
				ID:          r.ID,
				Name:        r.Name,
				Image:       r.ImageURL,
				CookingTime: r.CookingTime,
			})
		}

		results = append(results, types.SubscriptionResponse{
			UserResponse: types.UserResponse{
				ID:           author.ID,
				Email:        author.Email,
				Username:     author.Username,
				FirstName:    author.FirstName,
				LastName:     author.LastName,
				IsSubscribed: true,
			},
			Recipes:      preview,
			RecipesCount: count,
		})
	}

	return results, total, nil
}
