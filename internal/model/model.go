package model

import "time"

// Collection is a named, ordered group of items: a task list, or the fixed
// daily-habits list. Locked collections keep their membership fixed; only
// per-item completion may change.
type Collection struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Items  []Item `json:"items"`
	Locked bool   `json:"locked,omitempty"`
}

type Item struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`

	// Editing is transient UI state (the item is the open edit field).
	// Never persisted or sent over the wire.
	Editing bool `json:"-"`
}

// DefaultHabitsID identifies the fixed daily-habits collection.
const DefaultHabitsID = "default-habits"

// DefaultHabits returns the fixed daily-habits collection.
func DefaultHabits() Collection {
	return Collection{
		ID:     DefaultHabitsID,
		Title:  "Daily Habits",
		Locked: true,
		Items: []Item{
			{ID: "habit-1", Text: "Read for 10 mins"},
			{ID: "habit-2", Text: "Exercise for 40 mins"},
			{ID: "habit-3", Text: "Meditate for 5 mins"},
			{ID: "habit-4", Text: "8 glasses of water"},
			{ID: "habit-5", Text: "7-8 hours of sleep"},
		},
	}
}

// Goal is a tracked goal with nested subgoals and habits plus free-text
// SMART reflection fields. Goal.Completed and per-subgoal completion are
// deliberately independent: completing every subgoal does not complete the
// goal, and completing the goal does not cascade to subgoals.
type Goal struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Deadline    string    `json:"deadline,omitempty"` // YYYY-MM-DD
	Description string    `json:"description,omitempty"`
	Subgoals    []Subgoal `json:"subgoals,omitempty"`
	Habits      []Habit   `json:"habits,omitempty"`
	Completed   bool      `json:"completed"`

	// SMART-style reflection fields.
	Specifics string `json:"specifics,omitempty"` // what, why, who, where, which
	Measure   string `json:"measure,omitempty"`   // how much, how many
	Resources string `json:"resources,omitempty"` // resources and skills
	Alignment string `json:"alignment,omitempty"` // fit with the long-term plan
}

type Subgoal struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type Habit struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Journal is a journal entry with a two-bin lifecycle: active or trashed.
// Trashed entries can be restored or purged (deleted permanently).
type Journal struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	Trashed   bool      `json:"trashed,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Reflection is a single day's entry on the analysis page: free-text critical
// analysis plus 1-5 ratings. A rating of 0 means "not filled".
type Reflection struct {
	Date         string `json:"date"` // YYYY-MM-DD
	Analysis     string `json:"analysis,omitempty"`
	Satisfaction int    `json:"satisfaction"`
	Productivity int    `json:"productivity"`
	Mood         int    `json:"mood"`
}

// Profile is the local-only user profile edited from settings. It is never
// sent to the backend.
type Profile struct {
	Name       string `json:"name"`
	Occupation string `json:"occupation,omitempty"`
	About      string `json:"about,omitempty"`
}
