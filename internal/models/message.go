package models

import "strings"

// Role identifies who produced a Turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Valid reports whether r is one of the roles the chat protocol accepts.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleModel
}

// Turn is one message exchanged in a conversation.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UserTurn creates a user Turn
func UserTurn(content string) Turn {
	return Turn{Role: RoleUser, Content: content}
}

// ModelTurn creates a model Turn
func ModelTurn(content string) Turn {
	return Turn{Role: RoleModel, Content: content}
}

// CloneTurns returns a copy of turns that shares no backing array with the input.
func CloneTurns(turns []Turn) []Turn {
	if turns == nil {
		return []Turn{}
	}
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out
}

// NormalizeHistory keeps the last max turns, drops entries with an unknown
// role, and trims content, discarding turns left empty. A zero max keeps every
// turn; a negative max drops -max turns from the front instead.
func NormalizeHistory(turns []Turn, max int) []Turn {
	switch {
	case max > 0 && len(turns) > max:
		turns = turns[len(turns)-max:]
	case max < 0:
		turns = turns[min(-max, len(turns)):]
	}

	normalized := make([]Turn, 0, len(turns))
	for _, t := range turns {
		content := strings.TrimSpace(t.Content)
		if !t.Role.Valid() || content == "" {
			continue
		}
		normalized = append(normalized, Turn{Role: t.Role, Content: content})
	}
	return normalized
}
