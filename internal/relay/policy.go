package relay

import "github.com/collabconnect/meet/internal/domain"

// HostPolicy decides whether a participant may end a meeting for
// everyone. The wire protocol carries a client-asserted host flag; the
// policy is an interface so a deployment can substitute a server-held
// host record without changing the event contract.
type HostPolicy interface {
	AuthorizeMeetingEnd(roomID domain.RoomID, requester domain.UserID, assertedHost bool) bool
}

// AssertedHostPolicy trusts the caller-supplied host flag. This matches
// the protocol the web clients speak today; it is not a real security
// boundary.
type AssertedHostPolicy struct{}

func (AssertedHostPolicy) AuthorizeMeetingEnd(_ domain.RoomID, _ domain.UserID, assertedHost bool) bool {
	return assertedHost
}
