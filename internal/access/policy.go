// Package access implements the authorization model: the acting principal
// (identity plus staff flag, supplied by the upstream identity provider) and
// a static policy table mapping (resource, action) to the capability required
// to perform it. Ownership rules (orders, chat messages) are not expressed
// here; they are enforced by query scoping in the repositories.
package access

// Principal is the acting caller as asserted by the identity provider.
// A zero Principal is an anonymous caller.
type Principal struct {
	UserID string
	Staff  bool
}

// Authenticated reports whether the caller has an identity at all.
func (p Principal) Authenticated() bool { return p.UserID != "" }

// Resource names an API collection for policy lookup.
type Resource string

const (
	ResourceCountry      Resource = "countries"
	ResourceCity         Resource = "cities"
	ResourceCrew         Resource = "crews"
	ResourceAirplaneType Resource = "airplane_types"
	ResourceAirplane     Resource = "airplanes"
	ResourceAirport      Resource = "airports"
	ResourceRoute        Resource = "routes"
	ResourceFlight       Resource = "flights"
	ResourceOrder        Resource = "orders"
	ResourceChatSupport  Resource = "chat_support"
)

// Action is the kind of operation attempted on a resource. Read covers list
// and retrieve; Write covers create, update, and delete; Manage covers
// privileged sub-actions (image upload, chat connect/disconnect).
type Action string

const (
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionManage Action = "manage"
)

// Capability is the privilege level a policy entry demands.
type Capability int

const (
	// CapPublic allows anonymous callers.
	CapPublic Capability = iota
	// CapAuthenticated requires any identified caller.
	CapAuthenticated
	// CapStaff requires the staff flag.
	CapStaff
)

// policy is the full authorization table. Missing entries default to
// CapStaff, so forgetting to register a new resource fails closed.
var policy = map[Resource]map[Action]Capability{
	ResourceCountry:      {ActionRead: CapStaff, ActionWrite: CapStaff},
	ResourceCity:         {ActionRead: CapStaff, ActionWrite: CapStaff},
	ResourceCrew:         {ActionRead: CapStaff, ActionWrite: CapStaff},
	ResourceAirplaneType: {ActionRead: CapStaff, ActionWrite: CapStaff},
	ResourceAirplane:     {ActionRead: CapAuthenticated, ActionWrite: CapStaff, ActionManage: CapStaff},
	ResourceAirport:      {ActionRead: CapPublic, ActionWrite: CapStaff},
	ResourceRoute:        {ActionRead: CapPublic, ActionWrite: CapStaff},
	ResourceFlight:       {ActionRead: CapPublic, ActionWrite: CapStaff},
	ResourceOrder:        {ActionRead: CapAuthenticated, ActionWrite: CapAuthenticated},
	ResourceChatSupport:  {ActionRead: CapAuthenticated, ActionWrite: CapAuthenticated, ActionManage: CapStaff},
}

// Required returns the capability the policy demands for the given resource
// and action. Unknown pairs require staff.
func Required(r Resource, a Action) Capability {
	if actions, ok := policy[r]; ok {
		if cap, ok := actions[a]; ok {
			return cap
		}
	}
	return CapStaff
}

// Allowed reports whether the principal satisfies the capability required
// for (resource, action).
func Allowed(p Principal, r Resource, a Action) bool {
	switch Required(r, a) {
	case CapPublic:
		return true
	case CapAuthenticated:
		return p.Authenticated()
	default:
		return p.Staff
	}
}
