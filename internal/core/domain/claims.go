package domain

// Claims is the identity data embedded in a session token. Tokens are
// self-contained: no server-side session record backs them, so a set of
// claims is valid exactly as long as its signature and expiry hold.
type Claims struct {
	Username string
	Role     string
	UserID   string
}
