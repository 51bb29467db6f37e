package household

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

type Handler struct {
	service      *Service
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewHandler(
	service *Service,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *Handler {
	return &Handler{service: service, respondJSON: respondJSON, respondError: respondError}
}

func (h *Handler) HandleCreateHousehold(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	household, err := h.service.CreateHousehold(userID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, ErrNameRequired):
			h.respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrAlreadyInHousehold):
			h.respondError(w, http.StatusConflict, err.Error())
		default:
			log.Println("Error during household creation:", err)
			h.respondError(w, http.StatusInternalServerError, "Failed to create household")
		}
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Household successfully created.",
		"data":    map[string]string{"id": household.ID, "name": household.Name},
	})
}

func (h *Handler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	invitation, err := h.service.Invite(userID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInviteeEmail), errors.Is(err, ErrNotInHousehold):
			h.respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrInviteeNotRegistered):
			h.respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrAlreadyInHousehold):
			h.respondError(w, http.StatusConflict, err.Error())
		default:
			log.Println("Error during invitation creation:", err)
			h.respondError(w, http.StatusInternalServerError, "Failed to create invitation")
		}
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Invitation successfully created.",
		"data": map[string]string{
			"id":            invitation.ID,
			"household_id":  invitation.HouseholdID,
			"invitee_email": invitation.InviteeEmail,
			"status":        invitation.Status,
		},
	})
}

func (h *Handler) HandleAcceptInvitation(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	invitationID := r.PathValue("invitationID")
	if invitationID == "" {
		h.respondError(w, http.StatusBadRequest, "Invitation ID is required")
		return
	}

	household, err := h.service.Accept(invitationID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvitationNotFound):
			h.respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrInvitationNotPending), errors.Is(err, ErrNotInvitee):
			h.respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrAlreadyInHousehold):
			h.respondError(w, http.StatusConflict, err.Error())
		default:
			log.Println("Error during invitation acceptance:", err)
			h.respondError(w, http.StatusInternalServerError, "Failed to accept invitation")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Invitation accepted.",
		"data":    map[string]string{"household_id": household.ID, "name": household.Name},
	})
}

func (h *Handler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	householdID, inHousehold, err := h.service.userService.HouseholdID(userID)
	if err != nil {
		log.Println("Error resolving household:", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to list members")
		return
	}
	if !inHousehold {
		h.respondError(w, http.StatusBadRequest, ErrNotInHousehold.Error())
		return
	}

	members, err := h.service.Members(householdID)
	if err != nil {
		log.Println("Error listing household members:", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to list members")
		return
	}

	type memberResponse struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	data := make([]memberResponse, 0, len(members))
	for _, member := range members {
		data = append(data, memberResponse{ID: member.ID, Email: member.Email, Name: member.Name})
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   data,
	})
}
