package clickup

// Assignee is the display shape of a task assignee or workspace member.
// The id is passed through as the upstream sent it.
type Assignee struct {
	ID   any    `json:"id"`
	Name string `json:"name"`
}

// ResolveAssignees maps raw upstream assignee or member-user objects to
// {id, name} pairs. The name comes from the upstream "username" field,
// falling back to "Unknown" when it is absent or empty. Total: entries
// that are not objects are dropped, and the function never fails.
func ResolveAssignees(raw []any) []Assignee {
	resolved := make([]Assignee, 0, len(raw))
	for _, entry := range raw {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		a := Assignee{ID: obj["id"], Name: "Unknown"}
		if username, ok := obj["username"].(string); ok && username != "" {
			a.Name = username
		}
		resolved = append(resolved, a)
	}
	return resolved
}
