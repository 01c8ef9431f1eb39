package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mealbook/backend/internal/models"
	"github.com/mealbook/backend/internal/types"
)

var (
	ErrInvalidCookingTime = errors.New("cooking time must be at least 1 minute")
	ErrInvalidAmount      = errors.New("ingredient amount must be at least 1")
	ErrUnknownTag         = errors.New("referenced tag does not exist")
	ErrUnknownIngredient  = errors.New("referenced ingredient does not exist")
	ErrRepeatedTag        = errors.New("tags must not repeat")
	ErrRepeatedIngredient = errors.New("ingredients must not repeat")
	ErrForbidden          = errors.New("only the author or an administrator may modify this recipe")
)

// RecipeFilter carries the recipe list query parameters. The favorited and
// shopping-cart filters only apply for authenticated callers.
type RecipeFilter struct {
	Tags             []string
	Author           *uuid.UUID
	IsFavorited      bool
	IsInShoppingCart bool
	Query            string
	Page             int
	Limit            int
}

// RecipeService handles recipe reads and the transactional writes of the
// recipe aggregate (recipe row plus its ingredient and tag join rows).
type RecipeService struct {
	db     *gorm.DB
	images *ImageService
}

func NewRecipeService(db *gorm.DB, images *ImageService) *RecipeService {
	return &RecipeService{
		db:     db,
		images: images,
	}
}

// ListRecipes returns one page of recipes matching the filter, newest
// first, with the caller-relative flags computed fresh.
func (s *RecipeService) ListRecipes(ctx context.Context, caller *uuid.UUID, f RecipeFilter) ([]types.RecipeResponse, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Recipe{})

	if len(f.Tags) > 0 {
		tagged := s.db.Model(&models.RecipeTag{}).
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", f.Tags)
		q = q.Where("recipes.id IN (?)", tagged)
	}
	if f.Author != nil {
		q = q.Where("recipes.author_id = ?", *f.Author)
	}
	if f.IsFavorited && caller != nil {
		favorited := s.db.Model(&models.RecipeFavorite{}).
			Select("recipe_id").
			Where("user_id = ?", *caller)
		q = q.Where("recipes.id IN (?)", favorited)
	}
	if f.IsInShoppingCart && caller != nil {
		inCart := s.db.Model(&models.ShoppingCart{}).
			Select("recipe_id").
			Where("user_id = ?", *caller)
		q = q.Where("recipes.id IN (?)", inCart)
	}

	ordered := false
	if f.Query != "" {
		if s.db.Dialector.Name() == "postgres" {
			vec := GenerateEmbedding(f.Query)
			q = q.Clauses(clause.OrderBy{
				Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
			})
			ordered = true
		} else {
			like := "%" + strings.ToLower(f.Query) + "%"
			q = q.Where("LOWER(recipes.name) LIKE ? OR LOWER(recipes.text) LIKE ?", like, like)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if !ordered {
		q = q.Order("recipes.created_at desc")
	}

	var recipes []models.Recipe
	err := q.Preload("Author").
		Preload("Tags.Tag").
		Preload("Ingredients.Ingredient").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}

	flags, err := s.callerFlags(ctx, caller, recipes)
	if err != nil {
		return nil, 0, err
	}

	results := make([]types.RecipeResponse, 0, len(recipes))
	for i := range recipes {
		results = append(results, serializeRecipe(&recipes[i], flags))
	}
	return results, total, nil
}

// GetRecipe retrieves a single recipe with its full representation.
func (s *RecipeService) GetRecipe(ctx context.Context, caller *uuid.UUID, id uuid.UUID) (*types.RecipeResponse, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags.Tag").
		Preload("Ingredients.Ingredient").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		return nil, err
	}

	flags, err := s.callerFlags(ctx, caller, []models.Recipe{recipe})
	if err != nil {
		return nil, err
	}
	resp := serializeRecipe(&recipe, flags)
	return &resp, nil
}

// CreateRecipe validates the payload and writes the recipe row together
// with its join rows in one transaction.
func (s *RecipeService) CreateRecipe(ctx context.Context, authorID uuid.UUID, req *types.CreateRecipeRequest) (*types.RecipeResponse, error) {
	if err := s.validatePayload(ctx, req.CookingTime, req.Tags, req.Ingredients); err != nil {
		return nil, err
	}

	imageURL, err := s.images.Store(ctx, req.Image)
	if err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		Name:        req.Name,
		Text:        req.Text,
		ImageURL:    imageURL,
		CookingTime: req.CookingTime,
		Embedding:   GenerateEmbedding(req.Name),
		AuthorID:    authorID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		return writeJoinRows(tx, recipe.ID, req.Tags, req.Ingredients)
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, &authorID, recipe.ID)
}

// UpdateRecipe applies the replace strategy: inside one transaction the
// existing ingredient and tag join rows are removed and the full new set
// is written, so no reader ever observes a half-updated recipe.
func (s *RecipeService) UpdateRecipe(ctx context.Context, callerID, id uuid.UUID, req *types.UpdateRecipeRequest) (*types.RecipeResponse, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, callerID, recipe.AuthorID); err != nil {
		return nil, err
	}
	if err := s.validatePayload(ctx, req.CookingTime, req.Tags, req.Ingredients); err != nil {
		return nil, err
	}

	if req.Image != "" {
		imageURL, err := s.images.Store(ctx, req.Image)
		if err != nil {
			return nil, err
		}
		recipe.ImageURL = imageURL
	}
	recipe.Name = req.Name
	recipe.Text = req.Text
	recipe.CookingTime = req.CookingTime
	recipe.Embedding = GenerateEmbedding(req.Name)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&recipe).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeTag{}).Error; err != nil {
			return err
		}
		return writeJoinRows(tx, id, req.Tags, req.Ingredients)
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, &callerID, id)
}

// DeleteRecipe removes a recipe together with its join rows and any
// favorite/cart rows pointing at it.
func (s *RecipeService) DeleteRecipe(ctx context.Context, callerID, id uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return err
	}
	if err := s.authorize(ctx, callerID, recipe.AuthorID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeFavorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.ShoppingCart{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", id).Error
	})
}

// authorize allows the recipe's author and administrators through.
func (s *RecipeService) authorize(ctx context.Context, callerID, authorID uuid.UUID) error {
	if callerID == authorID {
		return nil
	}
	var caller models.User
	if err := s.db.WithContext(ctx).First(&caller, "id = ?", callerID).Error; err != nil {
		return err
	}
	if caller.IsAdmin {
		return nil
	}
	return ErrForbidden
}

// validatePayload rejects the whole write before any row is touched: the
// join replacement is all-or-nothing.
func (s *RecipeService) validatePayload(ctx context.Context, cookingTime int, tagIDs []uint, ingredients []types.RecipeIngredientRef) error {
	if cookingTime < 1 {
		return ErrInvalidCookingTime
	}
	for _, ing := range ingredients {
		if ing.Amount < 1 {
			return ErrInvalidAmount
		}
	}

	uniqueTags := uniqueUints(tagIDs)
	if len(uniqueTags) != len(tagIDs) {
		return ErrRepeatedTag
	}
	var tagCount int64
	if err := s.db.WithContext(ctx).Model(&models.Tag{}).
		Where("id IN ?", uniqueTags).
		Count(&tagCount).Error; err != nil {
		return err
	}
	if tagCount != int64(len(uniqueTags)) {
		return ErrUnknownTag
	}

	ingredientIDs := make([]uint, 0, len(ingredients))
	for _, ing := range ingredients {
		ingredientIDs = append(ingredientIDs, ing.ID)
	}
	uniqueIngredients := uniqueUints(ingredientIDs)
	if len(uniqueIngredients) != len(ingredientIDs) {
		return ErrRepeatedIngredient
	}
	var ingredientCount int64
	if err := s.db.WithContext(ctx).Model(&models.Ingredient{}).
		Where("id IN ?", uniqueIngredients).
		Count(&ingredientCount).Error; err != nil {
		return err
	}
	if ingredientCount != int64(len(uniqueIngredients)) {
		return ErrUnknownIngredient
	}
	return nil
}

func writeJoinRows(tx *gorm.DB, recipeID uuid.UUID, tagIDs []uint, ingredients []types.RecipeIngredientRef) error {
	for _, tagID := range tagIDs {
		rt := models.RecipeTag{RecipeID: recipeID, TagID: tagID}
		if err := tx.Create(&rt).Error; err != nil {
			return err
		}
	}
	for _, ing := range ingredients {
		ri := models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: ing.ID,
			Amount:       ing.Amount,
		}
		if err := tx.Create(&ri).Error; err != nil {
			return err
		}
	}
	return nil
}

// recipeFlags carries the caller-relative booleans for a batch of recipes.
type recipeFlags struct {
	favorited  map[uuid.UUID]bool
	inCart     map[uuid.UUID]bool
	subscribed map[uuid.UUID]bool
}

// callerFlags computes is_favorited / is_in_shopping_cart / is_subscribed
// for the caller across a batch of recipes in three queries. Anonymous
// callers get all-false flags.
func (s *RecipeService) callerFlags(ctx context.Context, caller *uuid.UUID, recipes []models.Recipe) (recipeFlags, error) {
	flags := recipeFlags{
		favorited:  make(map[uuid.UUID]bool),
		inCart:     make(map[uuid.UUID]bool),
		subscribed: make(map[uuid.UUID]bool),
	}
	if caller == nil || len(recipes) == 0 {
		return flags, nil
	}

	recipeIDs := make([]uuid.UUID, 0, len(recipes))
	authorIDs := make([]uuid.UUID, 0, len(recipes))
	for _, r := range recipes {
		recipeIDs = append(recipeIDs, r.ID)
		authorIDs = append(authorIDs, r.AuthorID)
	}

	var ids []uuid.UUID
	err := s.db.WithContext(ctx).Model(&models.RecipeFavorite{}).
		Where("user_id = ? AND recipe_id IN ?", *caller, recipeIDs).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return flags, err
	}
	for _, id := range ids {
		flags.favorited[id] = true
	}

	ids = ids[:0]
	err = s.db.WithContext(ctx).Model(&models.ShoppingCart{}).
		Where("user_id = ? AND recipe_id IN ?", *caller, recipeIDs).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return flags, err
	}
	for _, id := range ids {
		flags.inCart[id] = true
	}

	ids = ids[:0]
	err = s.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("user_id = ? AND author_id IN ?", *caller, authorIDs).
		Pluck("author_id", &ids).Error
	if err != nil {
		return flags, err
	}
	for _, id := range ids {
		flags.subscribed[id] = true
	}

	return flags, nil
}

func serializeRecipe(r *models.Recipe, flags recipeFlags) types.RecipeResponse {
	tags := make([]models.Tag, 0, len(r.Tags))
	for _, rt := range r.Tags {
		tags = append(tags, rt.Tag)
	}

	ingredients := make([]types.RecipeIngredientResponse, 0, len(r.Ingredients))
	for _, ri := range r.Ingredients {
		ingredients = append(ingredients, types.RecipeIngredientResponse{
			ID:              ri.IngredientID,
			Name:            ri.Ingredient.Name,
			MeasurementUnit: ri.Ingredient.MeasurementUnit,
			Amount:          ri.Amount,
		})
	}

	return types.RecipeResponse{
		ID:   r.ID,
		Tags: tags,
		Author: types.UserResponse{
			ID:           r.Author.ID,
			Email:        r.Author.Email,
			Username:     r.Author.Username,
			FirstName:    r.Author.FirstName,
			LastName:     r.Author.LastName,
			IsSubscribed: flags.subscribed[r.AuthorID],
		},
		Ingredients:      ingredients,
		IsFavorited:      flags.favorited[r.ID],
		IsInShoppingCart: flags.inCart[r.ID],
		Name:             r.Name,
		Image:            r.ImageURL,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
		PubDate:          r.CreatedAt,
	}
}

func uniqueUints(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
