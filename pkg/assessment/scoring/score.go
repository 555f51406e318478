package scoring

import (
	"strings"

	"github.com/Kleo07/MindSpaceX/pkg/assessment/types"
)

const MAX_WELLNESS_SCORE = 100

// Fixed point values per recognized answer. Unrecognized or missing answers
// contribute 0 to the total.
var goalPoints = map[string]int{
	types.GOAL_REDUCE_STRESS: 25,
	types.GOAL_AI_THERAPY:    20,
	types.GOAL_COPE_TRAUMA:   15,
	types.GOAL_BETTER_PERSON: 10,
	types.GOAL_TRYING_OUT:    5,
}

var moodPoints = map[string]int{
	types.MOOD_VERY_HAPPY: 25,
	types.MOOD_HAPPY:      20,
	types.MOOD_NEUTRAL:    15,
	types.MOOD_SAD:        10,
	types.MOOD_VERY_SAD:   5,
}

var sleepQualityPoints = map[string]int{
	types.SLEEP_QUALITY_EXCELLENT: 25,
	types.SLEEP_QUALITY_GOOD:      20,
	types.SLEEP_QUALITY_FAIR:      15,
	types.SLEEP_QUALITY_POOR:      10,
	types.SLEEP_QUALITY_WORST:     5,
}

var medicationFrequencyPoints = map[string]int{
	types.MEDICATION_FREQUENCY_DAILY:        25,
	types.MEDICATION_FREQUENCY_FEW_TIMES:    15,
	types.MEDICATION_FREQUENCY_OCCASIONALLY: 10,
	types.MEDICATION_FREQUENCY_NOT_SURE:     5,
}

// WellnessScore maps a record to a score in [0, MAX_WELLNESS_SCORE].
// Four weighted categories contribute independently; sleep quality is matched
// case-insensitively and medication frequency through its canonical value.
func WellnessScore(record types.AssessmentRecord) int {
	score := 0

	if record.Goal != nil {
		score += goalPoints[*record.Goal]
	}
	if record.Mood != nil {
		score += moodPoints[*record.Mood]
	}
	if record.SleepQuality != nil {
		score += sleepQualityPoints[strings.ToLower(*record.SleepQuality)]
	}
	if record.MedicationFrequency != nil {
		score += medicationFrequencyPoints[types.CanonicalMedicationFrequency(*record.MedicationFrequency)]
	}

	if score > MAX_WELLNESS_SCORE {
		score = MAX_WELLNESS_SCORE
	}
	return score
}
