package domain

import (
	"context"
	"time"
)

// ActivityType discriminates the content variant carried by an envelope.
type ActivityType string

const (
	ActivityQuiz    ActivityType = "QUIZ"
	ActivityReading ActivityType = "READING"
	ActivityVideo   ActivityType = "VIDEO"
)

// IsValid reports whether t is a known activity type.
func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityQuiz, ActivityReading, ActivityVideo:
		return true
	}
	return false
}

// BloomsLevel is one of the six cognitive levels of Bloom's taxonomy,
// used to tag learning objectives on activity content.
type BloomsLevel string

const (
	BloomsRemember   BloomsLevel = "REMEMBER"
	BloomsUnderstand BloomsLevel = "UNDERSTAND"
	BloomsApply      BloomsLevel = "APPLY"
	BloomsAnalyze    BloomsLevel = "ANALYZE"
	BloomsEvaluate   BloomsLevel = "EVALUATE"
	BloomsCreate     BloomsLevel = "CREATE"
)

// IsValid reports whether l is a known Bloom's level.
func (l BloomsLevel) IsValid() bool {
	switch l {
	case BloomsRemember, BloomsUnderstand, BloomsApply, BloomsAnalyze, BloomsEvaluate, BloomsCreate:
		return true
	}
	return false
}

// BloomsObjective pairs a taxonomy level with a concrete objective statement.
type BloomsObjective struct {
	Level       BloomsLevel `json:"level"`
	Description string      `json:"description"`
}

// QuizQuestion is a single question inside quiz content. Options are empty
// for open-ended questions.
type QuizQuestion struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Options       []string `json:"options,omitempty"`
	CorrectOption int      `json:"correct_option,omitempty"`
	Points        int      `json:"points"`
}

// QuizContent is the quiz variant payload.
type QuizContent struct {
	Questions    []QuizQuestion `json:"questions"`
	PassingScore int            `json:"passing_score"`
	ShuffleOrder bool           `json:"shuffle_order"`
}

// ReadingContent is the reading variant payload. Either inline body text or
// an external URL must be present.
type ReadingContent struct {
	Body        string `json:"body,omitempty"`
	ExternalURL string `json:"external_url,omitempty"`
	WordCount   int    `json:"word_count,omitempty"`
}

// VideoContent is the video variant payload.
type VideoContent struct {
	URL             string `json:"url"`
	Provider        string `json:"provider,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
	HasCaptions     bool   `json:"has_captions,omitempty"`
}

// ContentEnvelope is the versioned JSON content shape stored for each
// activity. Exactly one variant payload must be set, and it must match
// ActivityType.
type ContentEnvelope struct {
	SchemaVersion    int               `json:"schema_version"`
	ActivityType     ActivityType      `json:"activity_type"`
	Title            string            `json:"title"`
	Instructions     string            `json:"instructions,omitempty"`
	BloomsObjectives []BloomsObjective `json:"blooms_objectives,omitempty"`
	EstimatedMinutes int               `json:"estimated_minutes,omitempty"`

	Quiz    *QuizContent    `json:"quiz,omitempty"`
	Reading *ReadingContent `json:"reading,omitempty"`
	Video   *VideoContent   `json:"video,omitempty"`
}

// CurrentSchemaVersion is stamped onto newly created envelopes.
const CurrentSchemaVersion = 2

// Validate checks the envelope invariants: known type, title present, and
// exactly the matching variant populated with a usable payload.
func (c *ContentEnvelope) Validate() error {
	if !c.ActivityType.IsValid() {
		return NewInvalidContentError("unknown activity type: " + string(c.ActivityType))
	}
	if c.Title == "" {
		return NewInvalidContentError("title is required")
	}
	if c.EstimatedMinutes < 0 {
		return NewInvalidContentError("estimated_minutes cannot be negative")
	}
	for _, obj := range c.BloomsObjectives {
		if !obj.Level.IsValid() {
			return NewInvalidContentError("unknown blooms level: " + string(obj.Level))
		}
	}

	variants := 0
	if c.Quiz != nil {
		variants++
	}
	if c.Reading != nil {
		variants++
	}
	if c.Video != nil {
		variants++
	}
	if variants != 1 {
		return NewInvalidContentError("exactly one content variant must be set")
	}

	switch c.ActivityType {
	case ActivityQuiz:
		if c.Quiz == nil {
			return NewInvalidContentError("activity type QUIZ requires quiz content")
		}
		if len(c.Quiz.Questions) == 0 {
			return NewInvalidContentError("quiz content requires at least one question")
		}
		for _, q := range c.Quiz.Questions {
			if q.Text == "" {
				return NewInvalidContentError("quiz question text is required")
			}
			if len(q.Options) > 0 && (q.CorrectOption < 0 || q.CorrectOption >= len(q.Options)) {
				return NewInvalidContentError("quiz question correct_option out of range")
			}
		}
	case ActivityReading:
		if c.Reading == nil {
			return NewInvalidContentError("activity type READING requires reading content")
		}
		if c.Reading.Body == "" && c.Reading.ExternalURL == "" {
			return NewInvalidContentError("reading content requires a body or an external URL")
		}
	case ActivityVideo:
		if c.Video == nil {
			return NewInvalidContentError("activity type VIDEO requires video content")
		}
		if c.Video.URL == "" {
			return NewInvalidContentError("video content requires a URL")
		}
	}
	return nil
}

// Activity is a stored learning activity owned by a user.
type Activity struct {
	ID        string
	OwnerID   string
	Content   ContentEnvelope
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// NewActivity creates a new Activity instance
func NewActivity(ownerID string, content ContentEnvelope) *Activity {
	now := time.Now()
	content.SchemaVersion = CurrentSchemaVersion
	return &Activity{
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate validates the activity
func (a *Activity) Validate() error {
	if a.OwnerID == "" {
		return NewMissingFieldError("owner_id")
	}
	return a.Content.Validate()
}

// ActivityRepository defines the interface for activity persistence.
type ActivityRepository interface {
	CreateActivity(ctx context.Context, activity *Activity) error
	GetActivityByID(ctx context.Context, activityID string) (*Activity, error)
	GetActivitiesByOwnerID(ctx context.Context, ownerID string, limit, offset int) ([]Activity, int, error)
	DeleteActivity(ctx context.Context, activityID string) error
}
