package domain

const (
	RoleOwner    = "owner"
	RoleCashier  = "kasir"
	RoleCustomer = "user"
)

// Actor is the authenticated caller identity supplied by the identity
// provider. Guest callers carry a zero Actor.
type Actor struct {
	ID   int64
	Role string
	Name string
}

func (a Actor) IsStaff() bool {
	return a.Role == RoleOwner || a.Role == RoleCashier
}
