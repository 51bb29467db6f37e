package infrastructure

import (
	"database/sql"

	"github.com/sebuszqo/HomeBudget/internal/finance/domain"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) PredefinedCategoryExists(categoryID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM predefined_categories WHERE id = $1)`, categoryID,
	).Scan(&exists)
	return exists, err
}

func (r *CategoryRepository) UserCategoryExists(categoryID int, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM user_categories WHERE id = $1 AND user_id = $2)`, categoryID, userID,
	).Scan(&exists)
	return exists, err
}

func (r *CategoryRepository) GetAllPredefinedCategories() ([]domain.PredefinedCategory, error) {
	rows, err := r.db.Query(`SELECT id, name, type FROM predefined_categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.PredefinedCategory
	for rows.Next() {
		var category domain.PredefinedCategory
		if err := rows.Scan(&category.ID, &category.Name, &category.Type); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) GetAllUserCategories(userID string) ([]domain.UserCategory, error) {
	rows, err := r.db.Query(`SELECT id, user_id, name, type FROM user_categories WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.UserCategory
	for rows.Next() {
		var category domain.UserCategory
		if err := rows.Scan(&category.ID, &category.UserID, &category.Name, &category.Type); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}
