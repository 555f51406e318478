package types

import (
	"strings"
	"time"
)

const (
	MAX_OTHER_SYMPTOMS         = 10
	MAX_EXPRESSION_TEXT_LENGTH = 250

	MIN_SUPPORT_LEVEL = 1
	MAX_SUPPORT_LEVEL = 5
)

// Assessment field keys as used on the wire and in the local cache.
const (
	FIELD_KEY_GOAL                 = "goal"
	FIELD_KEY_GENDER               = "gender"
	FIELD_KEY_AGE                  = "age"
	FIELD_KEY_WEIGHT               = "weight"
	FIELD_KEY_WEIGHT_UNIT          = "weightUnit"
	FIELD_KEY_MOOD                 = "mood"
	FIELD_KEY_MOOD_EMOJI           = "moodEmoji"
	FIELD_KEY_MOOD_INDEX           = "moodIndex"
	FIELD_KEY_HELP_BEFORE          = "helpBefore"
	FIELD_KEY_DISTRESS             = "distress"
	FIELD_KEY_SLEEP_QUALITY        = "sleepQuality"
	FIELD_KEY_MEDICATION_FREQUENCY = "medicationFrequency"
	FIELD_KEY_OTHER_SYMPTOMS       = "otherSymptoms"
	FIELD_KEY_SUPPORT_LEVEL        = "supportLevel"
	FIELD_KEY_EXPRESSION_TEXT      = "expressionText"
)

// AssessmentFieldKeys is the closed set of assessment answer keys, in wizard order.
var AssessmentFieldKeys = []string{
	FIELD_KEY_GOAL,
	FIELD_KEY_GENDER,
	FIELD_KEY_AGE,
	FIELD_KEY_WEIGHT,
	FIELD_KEY_WEIGHT_UNIT,
	FIELD_KEY_MOOD,
	FIELD_KEY_MOOD_EMOJI,
	FIELD_KEY_MOOD_INDEX,
	FIELD_KEY_HELP_BEFORE,
	FIELD_KEY_DISTRESS,
	FIELD_KEY_SLEEP_QUALITY,
	FIELD_KEY_MEDICATION_FREQUENCY,
	FIELD_KEY_OTHER_SYMPTOMS,
	FIELD_KEY_SUPPORT_LEVEL,
	FIELD_KEY_EXPRESSION_TEXT,
}

const (
	WEIGHT_UNIT_KG  = "kg"
	WEIGHT_UNIT_LBS = "lbs"
)

const (
	GOAL_REDUCE_STRESS = "❤️ I wanna reduce stress"
	GOAL_AI_THERAPY    = "🧠 I wanna try AI Therapy"
	GOAL_COPE_TRAUMA   = "🕊️ I want to cope with trauma"
	GOAL_BETTER_PERSON = "😊 I want to be a better person"
	GOAL_TRYING_OUT    = "👻 Just trying out the app, mate!"
)

const (
	MOOD_VERY_SAD   = "Very Sad"
	MOOD_SAD        = "Sad"
	MOOD_NEUTRAL    = "Neutral"
	MOOD_HAPPY      = "Happy"
	MOOD_VERY_HAPPY = "Very Happy"
)

const (
	SLEEP_QUALITY_EXCELLENT = "excellent"
	SLEEP_QUALITY_GOOD      = "good"
	SLEEP_QUALITY_FAIR      = "fair"
	SLEEP_QUALITY_POOR      = "poor"
	SLEEP_QUALITY_WORST     = "worst"
)

const (
	MEDICATION_FREQUENCY_DAILY        = "daily"
	MEDICATION_FREQUENCY_FEW_TIMES    = "few times a week"
	MEDICATION_FREQUENCY_OCCASIONALLY = "occasionally"
	MEDICATION_FREQUENCY_NOT_SURE     = "not sure"
)

const (
	ANSWER_YES = "yes"
	ANSWER_NO  = "no"
)

// MoodOption pairs a mood label with its display emoji; the slice index is the moodIndex.
type MoodOption struct {
	Label string `json:"label"`
	Emoji string `json:"emoji"`
}

var MoodOptions = []MoodOption{
	{Label: MOOD_VERY_SAD, Emoji: "😢"},
	{Label: MOOD_SAD, Emoji: "🙁"},
	{Label: MOOD_NEUTRAL, Emoji: "😐"},
	{Label: MOOD_HAPPY, Emoji: "🙂"},
	{Label: MOOD_VERY_HAPPY, Emoji: "😄"},
}

// AssessmentRecord is the sparse set of answers collected by the wizard.
// Nil fields are "not answered yet" and are skipped by merge and persistence.
type AssessmentRecord struct {
	Goal                *string  `bson:"goal,omitempty" json:"goal,omitempty"`
	Gender              *string  `bson:"gender,omitempty" json:"gender,omitempty"`
	Age                 *int     `bson:"age,omitempty" json:"age,omitempty"`
	Weight              *float64 `bson:"weight,omitempty" json:"weight,omitempty"`
	WeightUnit          *string  `bson:"weightUnit,omitempty" json:"weightUnit,omitempty"`
	Mood                *string  `bson:"mood,omitempty" json:"mood,omitempty"`
	MoodEmoji           *string  `bson:"moodEmoji,omitempty" json:"moodEmoji,omitempty"`
	MoodIndex           *int     `bson:"moodIndex,omitempty" json:"moodIndex,omitempty"`
	HelpBefore          *string  `bson:"helpBefore,omitempty" json:"helpBefore,omitempty"`
	Distress            *string  `bson:"distress,omitempty" json:"distress,omitempty"`
	SleepQuality        *string  `bson:"sleepQuality,omitempty" json:"sleepQuality,omitempty"`
	MedicationFrequency *string  `bson:"medicationFrequency,omitempty" json:"medicationFrequency,omitempty"`
	OtherSymptoms       []string `bson:"otherSymptoms,omitempty" json:"otherSymptoms,omitempty"`
	SupportLevel        *int     `bson:"supportLevel,omitempty" json:"supportLevel,omitempty"`
	ExpressionText      *string  `bson:"expressionText,omitempty" json:"expressionText,omitempty"`
}

// AssessmentDocument is the server side counterpart of the record, one per user.
type AssessmentDocument struct {
	UserID           string `bson:"userId" json:"userId"`
	Email            string `bson:"email,omitempty" json:"email,omitempty"`
	AssessmentRecord `bson:",inline"`
	WellnessScore    *int      `bson:"wellnessScore,omitempty" json:"wellnessScore,omitempty"`
	CreatedAt        time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt        time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// IsEmpty reports whether no answer field is set.
func (r AssessmentRecord) IsEmpty() bool {
	return r.Goal == nil &&
		r.Gender == nil &&
		r.Age == nil &&
		r.Weight == nil &&
		r.WeightUnit == nil &&
		r.Mood == nil &&
		r.MoodEmoji == nil &&
		r.MoodIndex == nil &&
		r.HelpBefore == nil &&
		r.Distress == nil &&
		r.SleepQuality == nil &&
		r.MedicationFrequency == nil &&
		r.OtherSymptoms == nil &&
		r.SupportLevel == nil &&
		r.ExpressionText == nil
}

// Clone returns a copy of the record with its own symptom list, so callers
// can mutate the result without aliasing the original.
func (r AssessmentRecord) Clone() AssessmentRecord {
	cloned := r
	if r.OtherSymptoms != nil {
		cloned.OtherSymptoms = append([]string{}, r.OtherSymptoms...)
	}
	return cloned
}

// Merge overlays the set fields of update onto base and returns the result.
// Fields not set in update keep their previous value; a later wizard step can
// never clear an answer it did not touch.
func Merge(base AssessmentRecord, update AssessmentRecord) AssessmentRecord {
	merged := base
	if update.Goal != nil {
		merged.Goal = update.Goal
	}
	if update.Gender != nil {
		merged.Gender = update.Gender
	}
	if update.Age != nil {
		merged.Age = update.Age
	}
	if update.Weight != nil {
		merged.Weight = update.Weight
	}
	if update.WeightUnit != nil {
		merged.WeightUnit = update.WeightUnit
	}
	if update.Mood != nil {
		merged.Mood = update.Mood
	}
	if update.MoodEmoji != nil {
		merged.MoodEmoji = update.MoodEmoji
	}
	if update.MoodIndex != nil {
		merged.MoodIndex = update.MoodIndex
	}
	if update.HelpBefore != nil {
		merged.HelpBefore = update.HelpBefore
	}
	if update.Distress != nil {
		merged.Distress = update.Distress
	}
	if update.SleepQuality != nil {
		merged.SleepQuality = update.SleepQuality
	}
	if update.MedicationFrequency != nil {
		merged.MedicationFrequency = update.MedicationFrequency
	}
	if update.OtherSymptoms != nil {
		merged.OtherSymptoms = update.OtherSymptoms
	}
	if update.SupportLevel != nil {
		merged.SupportLevel = update.SupportLevel
	}
	if update.ExpressionText != nil {
		merged.ExpressionText = update.ExpressionText
	}
	return merged
}

// Sanitize enforces the record level constraints in place:
// - otherSymptoms is deduplicated and capped at MAX_OTHER_SYMPTOMS entries
// - expressionText is truncated to MAX_EXPRESSION_TEXT_LENGTH characters
// - supportLevel is clamped to [MIN_SUPPORT_LEVEL, MAX_SUPPORT_LEVEL]
// - moodIndex is clamped to the valid MoodOptions range
// - medicationFrequency is normalized to its canonical value
func (r *AssessmentRecord) Sanitize() {
	if r.OtherSymptoms != nil {
		seen := map[string]bool{}
		cleaned := make([]string, 0, len(r.OtherSymptoms))
		for _, symptom := range r.OtherSymptoms {
			symptom = strings.TrimSpace(symptom)
			if symptom == "" || seen[symptom] {
				continue
			}
			seen[symptom] = true
			cleaned = append(cleaned, symptom)
			if len(cleaned) >= MAX_OTHER_SYMPTOMS {
				break
			}
		}
		r.OtherSymptoms = cleaned
	}

	if r.ExpressionText != nil {
		runes := []rune(*r.ExpressionText)
		if len(runes) > MAX_EXPRESSION_TEXT_LENGTH {
			truncated := string(runes[:MAX_EXPRESSION_TEXT_LENGTH])
			r.ExpressionText = &truncated
		}
	}

	if r.SupportLevel != nil {
		level := *r.SupportLevel
		if level < MIN_SUPPORT_LEVEL {
			level = MIN_SUPPORT_LEVEL
		}
		if level > MAX_SUPPORT_LEVEL {
			level = MAX_SUPPORT_LEVEL
		}
		r.SupportLevel = &level
	}

	if r.MoodIndex != nil {
		index := *r.MoodIndex
		if index < 0 {
			index = 0
		}
		if index > len(MoodOptions)-1 {
			index = len(MoodOptions) - 1
		}
		r.MoodIndex = &index
	}

	if r.MedicationFrequency != nil {
		normalized := CanonicalMedicationFrequency(*r.MedicationFrequency)
		r.MedicationFrequency = &normalized
	}
}

// CanonicalMedicationFrequency maps UI labels and historical synonyms onto the
// canonical medication frequency values. Unknown inputs are returned unchanged.
func CanonicalMedicationFrequency(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case MEDICATION_FREQUENCY_DAILY, "regularly":
		return MEDICATION_FREQUENCY_DAILY
	case MEDICATION_FREQUENCY_FEW_TIMES, "sometimes":
		return MEDICATION_FREQUENCY_FEW_TIMES
	case MEDICATION_FREQUENCY_OCCASIONALLY, "rarely":
		return MEDICATION_FREQUENCY_OCCASIONALLY
	case MEDICATION_FREQUENCY_NOT_SURE, "never":
		return MEDICATION_FREQUENCY_NOT_SURE
	}
	return value
}
