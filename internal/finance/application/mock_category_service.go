package application

// MockCategoryService answers existence checks in tests without a store.
type MockCategoryService struct {
	MissingPredefined bool
	MissingUser       bool
}

func (m *MockCategoryService) DoesPredefinedCategoryExist(categoryID int) (bool, error) {
	return !m.MissingPredefined, nil
}

func (m *MockCategoryService) DoesUserCategoryExist(categoryID int, userID string) (bool, error) {
	return !m.MissingUser, nil
}
