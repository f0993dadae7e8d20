package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuizEnvelope() ContentEnvelope {
	return ContentEnvelope{
		SchemaVersion: CurrentSchemaVersion,
		ActivityType:  ActivityQuiz,
		Title:         "Goroutines basics",
		Quiz: &QuizContent{
			Questions: []QuizQuestion{
				{ID: "q1", Text: "What starts a goroutine?", Options: []string{"go", "run", "spawn", "fork"}, CorrectOption: 0, Points: 1},
			},
			PassingScore: 1,
		},
	}
}

func TestContentEnvelopeValidate(t *testing.T) {
	t.Run("valid quiz", func(t *testing.T) {
		env := validQuizEnvelope()
		assert.NoError(t, env.Validate())
	})

	t.Run("valid reading with body", func(t *testing.T) {
		env := ContentEnvelope{
			ActivityType: ActivityReading,
			Title:        "Channels",
			Reading:      &ReadingContent{Body: "Channels connect goroutines."},
		}
		assert.NoError(t, env.Validate())
	})

	t.Run("valid reading with external URL only", func(t *testing.T) {
		env := ContentEnvelope{
			ActivityType: ActivityReading,
			Title:        "Channels",
			Reading:      &ReadingContent{ExternalURL: "https://example.com/channels"},
		}
		assert.NoError(t, env.Validate())
	})

	t.Run("valid video", func(t *testing.T) {
		env := ContentEnvelope{
			ActivityType: ActivityVideo,
			Title:        "Intro",
			Video:        &VideoContent{URL: "https://example.com/v", DurationSeconds: 300},
		}
		assert.NoError(t, env.Validate())
	})

	t.Run("unknown activity type", func(t *testing.T) {
		env := validQuizEnvelope()
		env.ActivityType = "PODCAST"
		err := env.Validate()
		require.Error(t, err)
		var domainErr *DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, CodeInvalidContent, domainErr.Code)
	})

	t.Run("missing title", func(t *testing.T) {
		env := validQuizEnvelope()
		env.Title = ""
		assert.Error(t, env.Validate())
	})

	t.Run("no variant", func(t *testing.T) {
		env := ContentEnvelope{ActivityType: ActivityQuiz, Title: "Empty"}
		assert.Error(t, env.Validate())
	})

	t.Run("two variants", func(t *testing.T) {
		env := validQuizEnvelope()
		env.Reading = &ReadingContent{Body: "extra"}
		assert.Error(t, env.Validate())
	})

	t.Run("variant does not match type", func(t *testing.T) {
		env := ContentEnvelope{
			ActivityType: ActivityQuiz,
			Title:        "Mismatch",
			Video:        &VideoContent{URL: "https://example.com/v"},
		}
		assert.Error(t, env.Validate())
	})

	t.Run("quiz without questions", func(t *testing.T) {
		env := validQuizEnvelope()
		env.Quiz.Questions = nil
		assert.Error(t, env.Validate())
	})

	t.Run("correct_option out of range", func(t *testing.T) {
		env := validQuizEnvelope()
		env.Quiz.Questions[0].CorrectOption = 4
		assert.Error(t, env.Validate())
	})

	t.Run("open-ended question without options", func(t *testing.T) {
		env := validQuizEnvelope()
		env.Quiz.Questions = []QuizQuestion{{ID: "q1", Text: "Explain select.", Points: 2}}
		assert.NoError(t, env.Validate())
	})

	t.Run("reading without body or URL", func(t *testing.T) {
		env := ContentEnvelope{
			ActivityType: ActivityReading,
			Title:        "Empty reading",
			Reading:      &ReadingContent{},
		}
		assert.Error(t, env.Validate())
	})

	t.Run("video without URL", func(t *testing.T) {
		env := ContentEnvelope{
			ActivityType: ActivityVideo,
			Title:        "No URL",
			Video:        &VideoContent{Provider: "youtube"},
		}
		assert.Error(t, env.Validate())
	})

	t.Run("unknown blooms level", func(t *testing.T) {
		env := validQuizEnvelope()
		env.BloomsObjectives = []BloomsObjective{{Level: "MEMORIZE", Description: "nope"}}
		assert.Error(t, env.Validate())
	})

	t.Run("negative estimated minutes", func(t *testing.T) {
		env := validQuizEnvelope()
		env.EstimatedMinutes = -5
		assert.Error(t, env.Validate())
	})
}

func TestContentEnvelopeJSONShape(t *testing.T) {
	env := validQuizEnvelope()
	env.BloomsObjectives = []BloomsObjective{{Level: BloomsApply, Description: "Write a concurrent program"}}

	data, err := json.Marshal(env)
	require.NoError(t, err)

	// Unset variants must be absent, not null.
	assert.Contains(t, string(data), `"schema_version":2`)
	assert.Contains(t, string(data), `"activity_type":"QUIZ"`)
	assert.NotContains(t, string(data), `"reading"`)
	assert.NotContains(t, string(data), `"video"`)

	var decoded ContentEnvelope
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.NotNil(t, decoded.Quiz)
	assert.Equal(t, BloomsApply, decoded.BloomsObjectives[0].Level)
	assert.NoError(t, decoded.Validate())
}

func TestNewActivity(t *testing.T) {
	env := validQuizEnvelope()
	env.SchemaVersion = 0 // stale or absent version gets stamped

	activity := NewActivity("01HUSER000000000000000000A", env)
	assert.Equal(t, CurrentSchemaVersion, activity.Content.SchemaVersion)
	assert.NoError(t, activity.Validate())

	activity.OwnerID = ""
	assert.Error(t, activity.Validate())
}

func TestBloomsLevelIsValid(t *testing.T) {
	for _, l := range []BloomsLevel{BloomsRemember, BloomsUnderstand, BloomsApply, BloomsAnalyze, BloomsEvaluate, BloomsCreate} {
		assert.True(t, l.IsValid(), string(l))
	}
	assert.False(t, BloomsLevel("KNOW").IsValid())
}
