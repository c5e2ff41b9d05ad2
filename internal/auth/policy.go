package auth

import "github.com/gabrielAlencar33564/weather/internal/model"

// Fixed messages returned alongside policy denials.  Handlers surface
// these verbatim in the 401/403 response body.
const (
	MsgUnauthorized  = "unauthorized access: token missing or invalid"
	MsgAdminRequired = "this action requires administrator privileges"
	MsgNotOwner      = "you do not have permission to manage this resource"
)

// Decision is the outcome of a policy check.  A missing or malformed
// claim yields DenyUnauthenticated, which is deliberately distinct from
// the ownership denial: the former maps to 401, the latter to 403.
type Decision int

const (
	Allow Decision = iota
	DenyUnauthenticated
	DenyNotAdmin
	DenyNotOwner
)

// Message returns the fixed message attached to a denial, or "" for Allow.
func (d Decision) Message() string {
	switch d {
	case DenyUnauthenticated:
		return MsgUnauthorized
	case DenyNotAdmin:
		return MsgAdminRequired
	case DenyNotOwner:
		return MsgNotOwner
	}
	return ""
}

// CheckAdmin gates admin-only operations such as listing all users.
// Pure predicate: no side effects, no I/O.
func CheckAdmin(claim *Claim) Decision {
	if claim == nil {
		return DenyUnauthenticated
	}
	if claim.Role == model.RoleAdmin {
		return Allow
	}
	return DenyNotAdmin
}

// CheckOwner gates owner-or-admin operations on a specific resource.
// Admins pass unconditionally; everyone else must own the target
// resource, meaning the claim subject equals the path id.  An absent
// claim or empty target id fails closed as unauthenticated rather than
// as an ownership denial.
//
// CheckAdmin and CheckOwner are intentionally independent predicates
// composed per route by the caller; there is no merged "role AND
// ownership" policy.
func CheckOwner(claim *Claim, targetID string) Decision {
	if claim == nil || targetID == "" {
		return DenyUnauthenticated
	}
	if claim.Role == model.RoleAdmin {
		return Allow
	}
	if claim.Subject == targetID {
		return Allow
	}
	return DenyNotOwner
}
