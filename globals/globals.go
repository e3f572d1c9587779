package globals

type ContextKey string

// UserEmailKey holds the authenticated user's email on the request context.
const UserEmailKey ContextKey = "userEmail"
