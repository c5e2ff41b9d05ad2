package auth // auth holds the session claim type and the access-control policy

// Claim is the decoded, verified identity carried by an access token.
// It is produced by the JWT middleware after signature and expiry have
// been checked and is the only input the policy predicates look at.
//
// Subject is the decimal string form of the user id; resource ids taken
// from the request path are compared against it with plain string
// equality.
type Claim struct {
	Subject string // "sub" claim, decimal user id
	Email   string // "email" claim
	Name    string // "name" claim
	Role    string // "role" claim, ADMIN or USER
}
