package household

import (
	"errors"

	"github.com/badoux/checkmail"
	"github.com/google/uuid"

	"github.com/sebuszqo/HomeBudget/internal/notifier"
	"github.com/sebuszqo/HomeBudget/internal/user"
)

var (
	ErrAlreadyInHousehold   = errors.New("user already belongs to a household")
	ErrNotInHousehold       = errors.New("user does not belong to a household")
	ErrInvalidInviteeEmail  = errors.New("invalid invitee email address")
	ErrInviteeNotRegistered = errors.New("invitee is not a registered user")
	ErrInvitationNotPending = errors.New("invitation is no longer pending")
	ErrNotInvitee           = errors.New("invitation was issued for a different user")
	ErrNameRequired         = errors.New("household name is required")
)

type HouseholdRepository interface {
	CreateHousehold(household Household, creatorID string) error
	GetHousehold(householdID string) (*Household, error)
	MemberIDs(householdID string) ([]string, error)
	Members(householdID string) ([]Member, error)
	CreateInvitation(invitation Invitation) error
	GetInvitation(invitationID string) (*Invitation, error)
	AcceptInvitation(invitationID, userID, householdID string) error
}

// Notifier is the push side of invitations. Delivery is best effort, an
// offline invitee simply finds the invitation when they next fetch it.
type Notifier interface {
	NotifyUser(userID string, event notifier.Event) bool
}

type Service struct {
	repo        HouseholdRepository
	userService user.Service
	notifier    Notifier
}

func NewHouseholdService(repo HouseholdRepository, userService user.Service, notifier Notifier) *Service {
	return &Service{repo: repo, userService: userService, notifier: notifier}
}

// MemberIDs implements notifier.HouseholdMembers for fan-out addressing.
func (s *Service) MemberIDs(householdID string) ([]string, error) {
	return s.repo.MemberIDs(householdID)
}

func (s *Service) Members(householdID string) ([]Member, error) {
	return s.repo.Members(householdID)
}

func (s *Service) CreateHousehold(creatorID, name string) (*Household, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if _, inHousehold, err := s.userService.HouseholdID(creatorID); err != nil {
		return nil, err
	} else if inHousehold {
		return nil, ErrAlreadyInHousehold
	}

	household := Household{ID: uuid.NewString(), Name: name}
	if err := s.repo.CreateHousehold(household, creatorID); err != nil {
		return nil, err
	}
	return &household, nil
}

// Invite creates a pending invitation and pushes INVITATION_CREATED to
// the invitee when they are connected.
func (s *Service) Invite(inviterID, inviteeEmail string) (*Invitation, error) {
	if err := checkmail.ValidateFormat(inviteeEmail); err != nil {
		return nil, ErrInvalidInviteeEmail
	}

	householdID, inHousehold, err := s.userService.HouseholdID(inviterID)
	if err != nil {
		return nil, err
	}
	if !inHousehold {
		return nil, ErrNotInHousehold
	}

	invitee, err := s.userService.GetUserByEmail(inviteeEmail)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrInviteeNotRegistered
		}
		return nil, err
	}
	if invitee.HouseholdID != nil {
		return nil, ErrAlreadyInHousehold
	}

	invitation := Invitation{
		ID:           uuid.NewString(),
		HouseholdID:  householdID,
		InviterID:    inviterID,
		InviteeEmail: inviteeEmail,
		Status:       InvitationPending,
	}
	if err := s.repo.CreateInvitation(invitation); err != nil {
		return nil, err
	}

	s.notifier.NotifyUser(invitee.ID, notifier.Event{
		Type: notifier.EventInvitationCreated,
		Payload: map[string]string{
			"invitation_id": invitation.ID,
			"household_id":  invitation.HouseholdID,
		},
	})
	return &invitation, nil
}

// Accept joins the invitee to the household and pushes
// INVITATION_ACCEPTED to the inviter when they are connected.
func (s *Service) Accept(invitationID, userID string) (*Household, error) {
	invitation, err := s.repo.GetInvitation(invitationID)
	if err != nil {
		return nil, err
	}
	if invitation.Status != InvitationPending {
		return nil, ErrInvitationNotPending
	}

	u, err := s.userService.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if u.Email != invitation.InviteeEmail {
		return nil, ErrNotInvitee
	}
	if u.HouseholdID != nil {
		return nil, ErrAlreadyInHousehold
	}

	if err := s.repo.AcceptInvitation(invitationID, userID, invitation.HouseholdID); err != nil {
		return nil, err
	}

	s.notifier.NotifyUser(invitation.InviterID, notifier.Event{
		Type: notifier.EventInvitationAccepted,
		Payload: map[string]string{
			"invitation_id": invitation.ID,
			"household_id":  invitation.HouseholdID,
			"user_id":       userID,
		},
	})
	return s.repo.GetHousehold(invitation.HouseholdID)
}
