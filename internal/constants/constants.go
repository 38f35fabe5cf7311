package constants

// Context and session keys
const (
	ContextKeyActor     = "actor"
	ContextKeyRequestID = "request_id"
	SessionKeyActor     = "actor"
	SessionName         = "board_session"
)

// DefaultActor is stamped as createdBy when no operator session exists.
const DefaultActor = "anonymous"

// ArchivedOrganizationPrefix marks an archived organization's name.
const ArchivedOrganizationPrefix = "[Archived] "

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// MaxSuggestedTasks caps the number of AI task suggestions returned at once.
const MaxSuggestedTasks = 20
