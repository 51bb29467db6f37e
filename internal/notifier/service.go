package notifier

import "log"

// HouseholdMembers resolves a household id to the ids of its members.
// Fan-out addresses verified members only, never every connected client.
type HouseholdMembers interface {
	MemberIDs(householdID string) ([]string, error)
}

// Service translates domain events into recipient sets and dispatches
// them through the registry. Delivery is fire and forget: offline
// recipients are skipped, nothing is queued or retried, and clients
// reconcile by re-fetching from the store after a reconnect.
type Service struct {
	registry *Registry
	members  HouseholdMembers
}

func NewService(registry *Registry, members HouseholdMembers) *Service {
	return &Service{registry: registry, members: members}
}

// NotifyUser pushes the event to every live connection of one user and
// reports whether anyone was there to receive it.
func (s *Service) NotifyUser(userID string, event Event) bool {
	return s.registry.Send(userID, event)
}

// NotifyHousehold pushes the event to every member of the household
// except excludeUserID (the acting user already knows what they did).
func (s *Service) NotifyHousehold(householdID string, event Event, excludeUserID string) {
	memberIDs, err := s.members.MemberIDs(householdID)
	if err != nil {
		log.Printf("Could not resolve household %s members for %s event: %v", householdID, event.Type, err)
		return
	}
	for _, memberID := range memberIDs {
		if memberID == excludeUserID {
			continue
		}
		s.registry.Send(memberID, event)
	}
}
