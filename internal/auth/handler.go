package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email         string `json:"email"`
		Password      string `json:"password"`
		TwoFactorCode string `json:"two_factor_code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.service.Login(req.Email, req.Password, req.TwoFactorCode)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			writeJSONError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, ErrTwoFactorRequired):
			respondJSON(w, http.StatusOK, map[string]interface{}{
				"status":  "two_factor_required",
				"message": "Provide a two-factor code to complete login.",
			})
		case errors.Is(err, ErrInvalidTwoFactor):
			writeJSONError(w, http.StatusUnauthorized, err.Error())
		default:
			log.Println("Error during login:", err)
			writeJSONError(w, http.StatusInternalServerError, "Failed to log in")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   map[string]string{"access_token": token},
	})
}

func (h *Handler) HandleRegisterTwoFactor(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	otpURI, err := h.service.BeginTwoFactorRegistration(userID)
	if err != nil {
		log.Println("Error during 2FA registration:", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to start two-factor registration")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   map[string]string{"otp_uri": otpURI},
	})
}

func (h *Handler) HandleVerifyTwoFactorCode(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.ConfirmTwoFactorRegistration(userID, req.Code); err != nil {
		switch {
		case errors.Is(err, ErrTwoFactorNotPending), errors.Is(err, ErrInvalidTwoFactor):
			writeJSONError(w, http.StatusBadRequest, err.Error())
		default:
			log.Println("Error during 2FA confirmation:", err)
			writeJSONError(w, http.StatusInternalServerError, "Failed to confirm two-factor registration")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Two-factor authentication enabled.",
	})
}
