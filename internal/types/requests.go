package types

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required,max=150"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RecipeIngredientRef references an ingredient by id with a quantity.
type RecipeIngredientRef struct {
	ID     uint `json:"id" binding:"required"`
	Amount int  `json:"amount" binding:"required"`
}

// CreateRecipeRequest represents the request body for creating a recipe.
// Image is either a URL or an inline data URI (data:image/<ext>;base64,...).
type CreateRecipeRequest struct {
	Name        string                `json:"name" binding:"required,max=200"`
	Text        string                `json:"text" binding:"required"`
	Image       string                `json:"image" binding:"required"`
	CookingTime int                   `json:"cooking_time" binding:"required"`
	Tags        []uint                `json:"tags" binding:"required"`
	Ingredients []RecipeIngredientRef `json:"ingredients" binding:"required"`
}

// UpdateRecipeRequest represents the request body for updating a recipe.
// The ingredient and tag sets fully replace the existing ones; an empty
// image keeps the stored one.
type UpdateRecipeRequest struct {
	Name        string                `json:"name" binding:"required,max=200"`
	Text        string                `json:"text" binding:"required"`
	Image       string                `json:"image"`
	CookingTime int                   `json:"cooking_time" binding:"required"`
	Tags        []uint                `json:"tags" binding:"required"`
	Ingredients []RecipeIngredientRef `json:"ingredients" binding:"required"`
}

// CreateTagRequest represents the request body for creating a tag
type CreateTagRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Color string `json:"color" binding:"required,max=7"`
	Slug  string `json:"slug" binding:"required,max=100"`
}

// CreateIngredientRequest represents the request body for creating an ingredient
type CreateIngredientRequest struct {
	Name            string `json:"name" binding:"required,max=200"`
	MeasurementUnit string `json:"measurement_unit" binding:"required,max=30"`
}
