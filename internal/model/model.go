package model

import "time"

// Profile holds a user's progression state. There is exactly one profile
// per user; it is created on first session start and never deleted here.
type Profile struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	DisplayName    *string    `json:"display_name,omitempty"`
	CurrentLevel   int        `json:"current_level"`
	TotalXP        int        `json:"total_xp"`
	CurrentStreak  int        `json:"current_streak"`
	LastActiveDate *time.Time `json:"last_active_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Quest is a user-defined unit of work. The completion transition is
// one-way: an active quest becomes completed exactly once, and only that
// transition yields XP.
type Quest struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	XPReward    int        `json:"xp_reward"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Message roles stored in the transcript.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one entry in the append-only transcript. Pending marks an
// in-memory optimistic placeholder that has not been persisted; its content
// is the only mutable message content in the system.
type ChatMessage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Pending   bool      `json:"-"`
}

// StreamResponse is the structure for a single chunk in a streaming
// response sent to the client.
type StreamResponse struct {
	Content string `json:"content"`
	Done    bool   `json:"done"`
	Error   string `json:"error,omitempty"`
}

// QuestCompletionResult is returned after a completion attempt. XPAwarded
// is zero when the quest was already completed (or missing), in which case
// Profile carries the unchanged progression state.
type QuestCompletionResult struct {
	QuestCompleted bool     `json:"quest_completed"`
	XPAwarded      int      `json:"xp_awarded"`
	Profile        *Profile `json:"profile"`
}
