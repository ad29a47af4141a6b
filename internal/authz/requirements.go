package authz

// Role and claim names granted at registration or by administrative action.
const (
	RolePoster = "Poster"
	RoleAdmin  = "Admin"

	ClaimTagsView = "tags.view"
)

// Operation names used by the capability table.
const (
	OpPostsList   = "posts.list"
	OpPostsGet    = "posts.get"
	OpPostsCreate = "posts.create"
	OpPostsUpdate = "posts.update"
	OpPostsDelete = "posts.delete"
	OpTagsList    = "tags.list"
	OpTagsGet     = "tags.get"
	OpTagsCreate  = "tags.create"
	OpTagsDelete  = "tags.delete"
)

// Requirement is a capability predicate over a principal.
type Requirement func(p Principal) bool

func RequireRole(roles ...string) Requirement {
	return func(p Principal) bool { return p.HasRole(roles...) }
}

func RequireClaim(name, value string) Requirement {
	return func(p Principal) bool { return p.HasClaim(name, value) }
}

func All(reqs ...Requirement) Requirement {
	return func(p Principal) bool {
		for _, r := range reqs {
			if !r(p) {
				return false
			}
		}
		return true
	}
}

// requirements maps operation names to the capability a principal must hold.
// Explicit configuration, consulted before the operation runs. Operations
// absent from the table need authentication only.
var requirements = map[string]Requirement{
	OpPostsList:   RequireRole(RolePoster, RoleAdmin),
	OpPostsCreate: RequireRole(RolePoster, RoleAdmin),
	OpPostsUpdate: RequireRole(RolePoster, RoleAdmin),
	OpPostsDelete: RequireRole(RolePoster, RoleAdmin),
	OpTagsCreate: All(
		RequireRole(RolePoster, RoleAdmin),
		RequireClaim(ClaimTagsView, "true"),
	),
	OpTagsDelete: RequireRole(RoleAdmin),
}

// Allowed evaluates the capability table for the operation. Ownership checks
// are separate: they run inside the content service against the stored
// resource, and their failure is a business error, not an authorization one.
func Allowed(op string, p Principal) bool {
	req, ok := requirements[op]
	if !ok {
		return true
	}
	return req(p)
}
