package entity

type Capability int

const (
	CapViewPrivateEvents Capability = iota
	CapCreateEvent
	CapManageAnyEvent
	CapCreateSignUpSheet
	CapManageAnySignUpSheet
	CapSignUp
	CapViewExternalCalendar
	CapPostAnnouncement
)

func (c Capability) String() string {
	switch c {
	case CapViewPrivateEvents:
		return "view_private_events"
	case CapCreateEvent:
		return "create_event"
	case CapManageAnyEvent:
		return "manage_any_event"
	case CapCreateSignUpSheet:
		return "create_signup_sheet"
	case CapManageAnySignUpSheet:
		return "manage_any_signup_sheet"
	case CapSignUp:
		return "sign_up"
	case CapViewExternalCalendar:
		return "view_external_calendar"
	case CapPostAnnouncement:
		return "post_announcement"
	}
	return "unknown"
}

var memberCaps = []Capability{
	CapViewPrivateEvents,
	CapCreateEvent,
	CapCreateSignUpSheet,
	CapSignUp,
}

var elevatedCaps = append([]Capability{
	CapManageAnyEvent,
	CapManageAnySignUpSheet,
	CapViewExternalCalendar,
	CapPostAnnouncement,
}, memberCaps...)

var policy = map[Role]map[Capability]bool{
	RoleAdmin:     capSet(elevatedCaps),
	RoleWebmaster: capSet(elevatedCaps),
	RoleMember:    capSet(memberCaps),
}

func capSet(caps []Capability) map[Capability]bool {
	set := make(map[Capability]bool, len(caps))
	for _, c := range caps {
		set[c] = true
	}
	return set
}

// Can is the single authorization decision point for role based checks.
func Can(role Role, c Capability) bool {
	return policy[role][c]
}
