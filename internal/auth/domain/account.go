package domain

// AccountState is the confirmation state of an account.
type AccountState string

const (
	StateUnconfirmed AccountState = "unconfirmed"
	StateConfirmed   AccountState = "confirmed"
)

// StateOf derives the state from the stored flag.
func StateOf(u User) AccountState {
	if u.Confirmed {
		return StateConfirmed
	}
	return StateUnconfirmed
}

// CanTransition reports whether an account may move from one state to
// another. Confirmation is one way.
func CanTransition(from, to AccountState) bool {
	return from == StateUnconfirmed && to == StateConfirmed
}

// RouteClass tells the confirmation gate how to treat a route.
type RouteClass int

const (
	// RouteProtected routes require a confirmed account once logged in.
	RouteProtected RouteClass = iota
	// RouteAuth covers the authentication surface, including confirmation.
	RouteAuth
	// RouteStatic covers docs and health probes.
	RouteStatic
)

func (c RouteClass) String() string {
	switch c {
	case RouteProtected:
		return "protected"
	case RouteAuth:
		return "auth"
	case RouteStatic:
		return "static"
	default:
		return "unknown"
	}
}
