package household

import (
	"database/sql"
	"errors"
	"time"
)

var (
	ErrHouseholdNotFound  = errors.New("household not found")
	ErrInvitationNotFound = errors.New("invitation not found")
)

const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
)

type Household struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type Invitation struct {
	ID           string
	HouseholdID  string
	InviterID    string
	InviteeEmail string
	Status       string
	CreatedAt    time.Time
}

type Member struct {
	ID    string
	Email string
	Name  string
}

type Repository struct {
	db *sql.DB
}

func NewHouseholdRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateHousehold inserts the household and moves the creator into it in
// one transaction, so a household can never exist without a member.
func (r *Repository) CreateHousehold(household Household, creatorID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO households (id, name) VALUES ($1, $2)`,
		household.ID, household.Name,
	); err != nil {
		return err
	}
	if _, err := tx.Exec(
		`UPDATE users SET household_id = $2 WHERE id = $1`,
		creatorID, household.ID,
	); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *Repository) GetHousehold(householdID string) (*Household, error) {
	var household Household
	err := r.db.QueryRow(
		`SELECT id, name, created_at FROM households WHERE id = $1`, householdID,
	).Scan(&household.ID, &household.Name, &household.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHouseholdNotFound
	}
	if err != nil {
		return nil, err
	}
	return &household, nil
}

func (r *Repository) MemberIDs(householdID string) ([]string, error) {
	rows, err := r.db.Query(`SELECT id FROM users WHERE household_id = $1`, householdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		memberIDs = append(memberIDs, id)
	}
	return memberIDs, rows.Err()
}

func (r *Repository) Members(householdID string) ([]Member, error) {
	rows, err := r.db.Query(`SELECT id, email, name FROM users WHERE household_id = $1`, householdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var member Member
		if err := rows.Scan(&member.ID, &member.Email, &member.Name); err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

func (r *Repository) CreateInvitation(invitation Invitation) error {
	_, err := r.db.Exec(
		`INSERT INTO household_invitations (id, household_id, inviter_id, invitee_email, status)
		 VALUES ($1, $2, $3, $4, $5)`,
		invitation.ID, invitation.HouseholdID, invitation.InviterID, invitation.InviteeEmail, invitation.Status,
	)
	return err
}

func (r *Repository) GetInvitation(invitationID string) (*Invitation, error) {
	var invitation Invitation
	err := r.db.QueryRow(
		`SELECT id, household_id, inviter_id, invitee_email, status, created_at
		 FROM household_invitations WHERE id = $1`, invitationID,
	).Scan(&invitation.ID, &invitation.HouseholdID, &invitation.InviterID,
		&invitation.InviteeEmail, &invitation.Status, &invitation.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvitationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// AcceptInvitation marks the invitation accepted and joins the user to
// the household atomically.
func (r *Repository) AcceptInvitation(invitationID, userID, householdID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`UPDATE household_invitations SET status = $2 WHERE id = $1`,
		invitationID, InvitationAccepted,
	); err != nil {
		return err
	}
	if _, err := tx.Exec(
		`UPDATE users SET household_id = $2 WHERE id = $1`,
		userID, householdID,
	); err != nil {
		return err
	}
	return tx.Commit()
}
