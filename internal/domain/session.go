package domain

// Session is the server-side authentication proof attached to a client's
// session cookie. The store may also hold anonymous sessions, in which case
// LoggedIn is false and UserID is the zero value.
type Session struct {
	ID       string
	UserID   UserID
	LoggedIn bool
}
