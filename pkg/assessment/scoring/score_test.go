package scoring

import (
	"testing"

	"github.com/Kleo07/MindSpaceX/pkg/assessment/types"
)

func TestWellnessScore(t *testing.T) {
	tests := []struct {
		name     string
		record   types.AssessmentRecord
		expected int
	}{
		{
			name:     "empty record",
			record:   types.AssessmentRecord{},
			expected: 0,
		},
		{
			name: "documented scenario",
			record: types.AssessmentRecord{
				Goal:                types.StrPtr(types.GOAL_REDUCE_STRESS),
				Mood:                types.StrPtr(types.MOOD_HAPPY),
				SleepQuality:        types.StrPtr(types.SLEEP_QUALITY_GOOD),
				MedicationFrequency: types.StrPtr(types.MEDICATION_FREQUENCY_DAILY),
			},
			expected: 90,
		},
		{
			name: "maximum answers clamp at 100",
			record: types.AssessmentRecord{
				Goal:                types.StrPtr(types.GOAL_REDUCE_STRESS),
				Mood:                types.StrPtr(types.MOOD_VERY_HAPPY),
				SleepQuality:        types.StrPtr(types.SLEEP_QUALITY_EXCELLENT),
				MedicationFrequency: types.StrPtr(types.MEDICATION_FREQUENCY_DAILY),
			},
			expected: 100,
		},
		{
			name: "sleep quality is case insensitive",
			record: types.AssessmentRecord{
				SleepQuality: types.StrPtr("Good"),
			},
			expected: 20,
		},
		{
			name: "medication synonym is scored through its canonical value",
			record: types.AssessmentRecord{
				MedicationFrequency: types.StrPtr("Regularly"),
			},
			expected: 25,
		},
		{
			name: "unrecognized answers contribute nothing",
			record: types.AssessmentRecord{
				Goal: types.StrPtr("something unexpected"),
				Mood: types.StrPtr("Elated"),
			},
			expected: 0,
		},
		{
			name: "categories are independent",
			record: types.AssessmentRecord{
				Mood:         types.StrPtr(types.MOOD_SAD),
				SleepQuality: types.StrPtr(types.SLEEP_QUALITY_POOR),
			},
			expected: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WellnessScore(tt.record); got != tt.expected {
				t.Errorf("WellnessScore() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestWellnessScoreIsPure(t *testing.T) {
	record := types.AssessmentRecord{
		Goal: types.StrPtr(types.GOAL_BETTER_PERSON),
		Mood: types.StrPtr(types.MOOD_NEUTRAL),
	}
	first := WellnessScore(record)
	second := WellnessScore(record)
	if first != second {
		t.Errorf("score not idempotent: %d then %d", first, second)
	}
	if record.Goal == nil || *record.Goal != types.GOAL_BETTER_PERSON {
		t.Error("scoring mutated the record")
	}
}
