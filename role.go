package ragchat

// Role identifies who produced a chat message.
type Role string

const (
	RoleQuery    Role = "query"
	RoleResponse Role = "response"
)
