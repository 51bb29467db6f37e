package domain

type PredefinedCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type UserCategory struct {
	ID     int    `json:"id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
}

type CategoryRepository interface {
	PredefinedCategoryExists(categoryID int) (bool, error)
	UserCategoryExists(categoryID int, userID string) (bool, error)
	GetAllPredefinedCategories() ([]PredefinedCategory, error)
	GetAllUserCategories(userID string) ([]UserCategory, error)
}
