package household

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebuszqo/HomeBudget/internal/notifier"
	"github.com/sebuszqo/HomeBudget/internal/user"
)

type fakeRepo struct {
	households  map[string]Household
	invitations map[string]Invitation
	members     map[string][]string
	users       *fakeUserService
}

func newFakeRepo(users *fakeUserService) *fakeRepo {
	return &fakeRepo{
		households:  make(map[string]Household),
		invitations: make(map[string]Invitation),
		members:     make(map[string][]string),
		users:       users,
	}
}

func (f *fakeRepo) CreateHousehold(household Household, creatorID string) error {
	f.households[household.ID] = household
	f.members[household.ID] = append(f.members[household.ID], creatorID)
	f.users.setHousehold(creatorID, household.ID)
	return nil
}

func (f *fakeRepo) GetHousehold(householdID string) (*Household, error) {
	household, ok := f.households[householdID]
	if !ok {
		return nil, ErrHouseholdNotFound
	}
	return &household, nil
}

func (f *fakeRepo) MemberIDs(householdID string) ([]string, error) {
	return f.members[householdID], nil
}

func (f *fakeRepo) Members(householdID string) ([]Member, error) {
	var members []Member
	for _, id := range f.members[householdID] {
		members = append(members, Member{ID: id})
	}
	return members, nil
}

func (f *fakeRepo) CreateInvitation(invitation Invitation) error {
	f.invitations[invitation.ID] = invitation
	return nil
}

func (f *fakeRepo) GetInvitation(invitationID string) (*Invitation, error) {
	invitation, ok := f.invitations[invitationID]
	if !ok {
		return nil, ErrInvitationNotFound
	}
	return &invitation, nil
}

func (f *fakeRepo) AcceptInvitation(invitationID, userID, householdID string) error {
	invitation := f.invitations[invitationID]
	invitation.Status = InvitationAccepted
	f.invitations[invitationID] = invitation
	f.members[householdID] = append(f.members[householdID], userID)
	f.users.setHousehold(userID, householdID)
	return nil
}

type fakeUserService struct {
	users map[string]*user.User
}

func newFakeUserService(users ...*user.User) *fakeUserService {
	service := &fakeUserService{users: make(map[string]*user.User)}
	for _, u := range users {
		service.users[u.ID] = u
	}
	return service
}

func (f *fakeUserService) setHousehold(userID, householdID string) {
	f.users[userID].HouseholdID = &householdID
}

func (f *fakeUserService) Register(email, name, password string) (*user.User, error) {
	panic("not used")
}

func (f *fakeUserService) GetUserByID(userID string) (*user.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserService) GetUserByEmail(email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserService) VerifyPassword(u *user.User, password string) error { return nil }

func (f *fakeUserService) SetTwoFactorSecret(userID, secret string) error { return nil }

func (f *fakeUserService) IncrementBalances(userID string, personalDelta, familyDelta decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	return decimal.Zero, decimal.Zero, nil
}

func (f *fakeUserService) HouseholdID(userID string) (string, bool, error) {
	u, err := f.GetUserByID(userID)
	if err != nil {
		return "", false, err
	}
	if u.HouseholdID == nil {
		return "", false, nil
	}
	return *u.HouseholdID, true, nil
}

type recordingNotifier struct {
	events map[string][]notifier.Event
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{events: make(map[string][]notifier.Event)}
}

func (r *recordingNotifier) NotifyUser(userID string, event notifier.Event) bool {
	r.events[userID] = append(r.events[userID], event)
	return true
}

func newTestSetup() (*Service, *fakeRepo, *fakeUserService, *recordingNotifier) {
	users := newFakeUserService(
		&user.User{ID: "alice", Email: "alice@example.com"},
		&user.User{ID: "bob", Email: "bob@example.com"},
	)
	repo := newFakeRepo(users)
	notifications := newRecordingNotifier()
	service := NewHouseholdService(repo, users, notifications)
	return service, repo, users, notifications
}

func TestInvitationFlow(t *testing.T) {
	service, _, users, notifications := newTestSetup()

	household, err := service.CreateHousehold("alice", "The Does")
	require.NoError(t, err)

	invitation, err := service.Invite("alice", "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, InvitationPending, invitation.Status)

	// The invitee is pushed INVITATION_CREATED, the inviter hears nothing yet.
	require.Len(t, notifications.events["bob"], 1)
	assert.Equal(t, notifier.EventInvitationCreated, notifications.events["bob"][0].Type)
	assert.Empty(t, notifications.events["alice"])

	accepted, err := service.Accept(invitation.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, household.ID, accepted.ID)

	require.Len(t, notifications.events["alice"], 1)
	assert.Equal(t, notifier.EventInvitationAccepted, notifications.events["alice"][0].Type)

	householdID, inHousehold, err := users.HouseholdID("bob")
	require.NoError(t, err)
	assert.True(t, inHousehold)
	assert.Equal(t, household.ID, householdID)

	memberIDs, err := service.MemberIDs(household.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, memberIDs)
}

func TestCreateHousehold_RejectsSecondHousehold(t *testing.T) {
	service, _, _, _ := newTestSetup()

	_, err := service.CreateHousehold("alice", "First")
	require.NoError(t, err)

	_, err = service.CreateHousehold("alice", "Second")
	assert.ErrorIs(t, err, ErrAlreadyInHousehold)
}

func TestInvite_RequiresInviterHousehold(t *testing.T) {
	service, _, _, _ := newTestSetup()

	_, err := service.Invite("alice", "bob@example.com")
	assert.ErrorIs(t, err, ErrNotInHousehold)
}

func TestInvite_RejectsUnknownAndMalformedInvitees(t *testing.T) {
	service, _, _, _ := newTestSetup()
	_, err := service.CreateHousehold("alice", "The Does")
	require.NoError(t, err)

	_, err = service.Invite("alice", "not-an-email")
	assert.ErrorIs(t, err, ErrInvalidInviteeEmail)

	_, err = service.Invite("alice", "stranger@example.com")
	assert.ErrorIs(t, err, ErrInviteeNotRegistered)
}

func TestAccept_RejectsWrongUserAndDoubleAccept(t *testing.T) {
	service, _, users, _ := newTestSetup()
	users.users["carol"] = &user.User{ID: "carol", Email: "carol@example.com"}

	_, err := service.CreateHousehold("alice", "The Does")
	require.NoError(t, err)
	invitation, err := service.Invite("alice", "bob@example.com")
	require.NoError(t, err)

	_, err = service.Accept(invitation.ID, "carol")
	assert.ErrorIs(t, err, ErrNotInvitee)

	_, err = service.Accept(invitation.ID, "bob")
	require.NoError(t, err)

	_, err = service.Accept(invitation.ID, "bob")
	assert.ErrorIs(t, err, ErrInvitationNotPending)
}
