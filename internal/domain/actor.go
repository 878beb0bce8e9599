package domain

// Actor identifies the authenticated caller of an operation. Authorization is
// expressed as explicit predicates over the id and admin flag.
type Actor struct {
	UserID  string
	IsAdmin bool
}

// CanManage reports whether the actor may mutate or view the given ticket:
// the ticket's owner and any admin qualify.
func (a Actor) CanManage(t *Ticket) bool {
	return a.IsAdmin || t.IsOwnedBy(a.UserID)
}
