package interfaces

import (
	"log"
	"net/http"

	"github.com/sebuszqo/HomeBudget/internal/finance/domain"
)

type CategoryServiceInterface interface {
	GetAllPredefinedCategories() ([]domain.PredefinedCategory, error)
	GetAllUserCategories(userID string) ([]domain.UserCategory, error)
}

type CategoryHandler struct {
	service      CategoryServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewCategoryHandler(
	service CategoryServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *CategoryHandler {
	return &CategoryHandler{service: service, respondJSON: respondJSON, respondError: respondError}
}

func (h *CategoryHandler) GetPredefinedCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.GetAllPredefinedCategories()
	if err != nil {
		log.Println("Error fetching predefined categories:", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   categories,
	})
}

func (h *CategoryHandler) GetUserCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	categories, err := h.service.GetAllUserCategories(userID)
	if err != nil {
		log.Println("Error fetching user categories:", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   categories,
	})
}
