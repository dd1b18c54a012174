package models

import "time"

// Status is the lifecycle status of a match or judging session
type Status string

const (
	StatusNotStarted Status = "not-started"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Stage identifies the kind of a robot-game match
type Stage string

const (
	StagePractice Stage = "practice"
	StageRanking  Stage = "ranking"
	// StageTest marks ad-hoc test matches, excluded from all scheduling views
	StageTest Stage = "test"
)

// JudgingCategory identifies a judging rubric category
type JudgingCategory string

const (
	CategoryInnovationProject JudgingCategory = "innovation-project"
	CategoryRobotDesign       JudgingCategory = "robot-design"
	CategoryCoreValues        JudgingCategory = "core-values"
)

// RubricStatus is the editing status of a judging rubric
type RubricStatus string

const (
	RubricEmpty            RubricStatus = "empty"
	RubricInProgress       RubricStatus = "in-progress"
	RubricCompleted        RubricStatus = "completed"
	RubricWaitingForReview RubricStatus = "waiting-for-review"
	RubricReady            RubricStatus = "ready"
)

// Division is the root aggregate scoping a live event instance
type Division struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DivisionState tracks the field state of a division while the event runs.
// LoadedMatchID, if set, must reference a not-started match.
type DivisionState struct {
	LoadedMatchID *string `json:"loaded_match_id"`
	ActiveMatchID *string `json:"active_match_id"`
}

// Team represents a competing team. Affiliation and city are display-only.
type Team struct {
	ID           string `json:"id"`
	Number       int    `json:"number"`
	Name         string `json:"name"`
	Affiliation  string `json:"affiliation,omitempty"`
	City         string `json:"city,omitempty"`
	Registered   bool   `json:"registered"`
	Arrived      bool   `json:"arrived"`
	Disqualified bool   `json:"disqualified"`
}

// Table is a robot-game table on the field
type Table struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Room is a judging room
type Room struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Participant is one table slot within a match. TeamID is nil for an
// empty slot.
type Participant struct {
	ID      string  `json:"id"`
	TableID string  `json:"table_id"`
	TeamID  *string `json:"team_id"`
}

// Match is a robot-game match
type Match struct {
	ID            string        `json:"id"`
	Number        int           `json:"number"`
	Stage         Stage         `json:"stage"`
	Round         int           `json:"round"`
	Status        Status        `json:"status"`
	ScheduledTime time.Time     `json:"scheduled_time"`
	StartTime     *time.Time    `json:"start_time,omitempty"`
	StartDelta    int           `json:"start_delta,omitempty"` // seconds off schedule
	Participants  []Participant `json:"participants"`
}

// IsTest reports whether the match is a test match, which never appears
// in scheduling views
func (m Match) IsTest() bool {
	return m.Stage == StageTest
}

// Participant returns the participant with the given id, if present
func (m Match) Participant(id string) (Participant, bool) {
	for _, p := range m.Participants {
		if p.ID == id {
			return p, true
		}
	}
	return Participant{}, false
}

// Rubric is one judging rubric attached to a session
type Rubric struct {
	ID       string          `json:"id"`
	Category JudgingCategory `json:"category"`
	Status   RubricStatus    `json:"status"`
}

// JudgingSession is one room assignment in the judging schedule.
// TeamID is nil for an empty session slot.
type JudgingSession struct {
	ID            string     `json:"id"`
	Number        int        `json:"number"`
	RoomID        string     `json:"room_id"`
	Status        Status     `json:"status"`
	ScheduledTime time.Time  `json:"scheduled_time"`
	StartTime     *time.Time `json:"start_time,omitempty"`
	StartDelta    int        `json:"start_delta,omitempty"`
	TeamID        *string    `json:"team_id"`
	Rubrics       []Rubric   `json:"rubrics,omitempty"`
}

// Deliberation tracks an award deliberation's progress for a category
type Deliberation struct {
	ID       string          `json:"id"`
	Category JudgingCategory `json:"category"`
	Status   Status          `json:"status"`
}
