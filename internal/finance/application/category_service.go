package application

import (
	"github.com/sebuszqo/HomeBudget/internal/finance/domain"
)

type CategoryService struct {
	repo domain.CategoryRepository
}

func NewCategoryService(repo domain.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) DoesPredefinedCategoryExist(categoryID int) (bool, error) {
	return s.repo.PredefinedCategoryExists(categoryID)
}

func (s *CategoryService) DoesUserCategoryExist(categoryID int, userID string) (bool, error) {
	return s.repo.UserCategoryExists(categoryID, userID)
}

func (s *CategoryService) GetAllPredefinedCategories() ([]domain.PredefinedCategory, error) {
	return s.repo.GetAllPredefinedCategories()
}

func (s *CategoryService) GetAllUserCategories(userID string) ([]domain.UserCategory, error) {
	return s.repo.GetAllUserCategories(userID)
}
