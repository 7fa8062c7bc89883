package auth

// Identity is the authenticated caller attached to the request context by the
// authentication middleware. It carries everything downstream stages need and
// deliberately omits the password hash.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

// CanAccess reports whether the identity may read a resource owned by
// ownerID. Admins may access any resource.
func (id Identity) CanAccess(ownerID string) bool {
	return id.IsAdmin || id.ID == ownerID
}
