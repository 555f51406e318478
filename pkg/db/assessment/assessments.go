package assessment

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Kleo07/MindSpaceX/pkg/assessment/types"
)

// UpsertAssessment merges the set fields of the record into the document for
// userID, creating it if absent, and returns the resulting full document.
// Fields not present in the record are preserved on the stored document.
func (dbService *AssessmentDBService) UpsertAssessment(
	userID string,
	email string,
	record types.AssessmentRecord,
	wellnessScore int,
) (assessment types.AssessmentDocument, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	now := time.Now().UTC()

	set := buildFieldUpdates(record)
	set["updatedAt"] = now
	set["wellnessScore"] = wellnessScore
	if email != "" {
		set["email"] = email
	}

	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"userId":    userID,
			"createdAt": now,
		},
	}

	upsertOpts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	err = dbService.collectionAssessments().FindOneAndUpdate(
		ctx,
		bson.M{"userId": userID},
		update,
		upsertOpts,
	).Decode(&assessment)
	return assessment, err
}

// GetAssessmentByUserID returns the document for userID. A missing document
// surfaces as mongo.ErrNoDocuments for the caller to map onto "not found".
func (dbService *AssessmentDBService) GetAssessmentByUserID(userID string) (assessment types.AssessmentDocument, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	err = dbService.collectionAssessments().FindOne(
		ctx,
		bson.M{"userId": userID},
	).Decode(&assessment)
	return assessment, err
}

// DeleteAssessment removes the document for userID (account deletion path).
func (dbService *AssessmentDBService) DeleteAssessment(ctx context.Context, userID string) (count int64, err error) {
	res, err := dbService.collectionAssessments().DeleteOne(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// buildFieldUpdates maps the set fields of the record onto their document
// keys. Unset fields are left out so the upsert never clears prior answers.
func buildFieldUpdates(record types.AssessmentRecord) bson.M {
	set := bson.M{}

	if record.Goal != nil {
		set[types.FIELD_KEY_GOAL] = *record.Goal
	}
	if record.Gender != nil {
		set[types.FIELD_KEY_GENDER] = *record.Gender
	}
	if record.Age != nil {
		set[types.FIELD_KEY_AGE] = *record.Age
	}
	if record.Weight != nil {
		set[types.FIELD_KEY_WEIGHT] = *record.Weight
	}
	if record.WeightUnit != nil {
		set[types.FIELD_KEY_WEIGHT_UNIT] = *record.WeightUnit
	}
	if record.Mood != nil {
		set[types.FIELD_KEY_MOOD] = *record.Mood
	}
	if record.MoodEmoji != nil {
		set[types.FIELD_KEY_MOOD_EMOJI] = *record.MoodEmoji
	}
	if record.MoodIndex != nil {
		set[types.FIELD_KEY_MOOD_INDEX] = *record.MoodIndex
	}
	if record.HelpBefore != nil {
		set[types.FIELD_KEY_HELP_BEFORE] = *record.HelpBefore
	}
	if record.Distress != nil {
		set[types.FIELD_KEY_DISTRESS] = *record.Distress
	}
	if record.SleepQuality != nil {
		set[types.FIELD_KEY_SLEEP_QUALITY] = *record.SleepQuality
	}
	if record.MedicationFrequency != nil {
		set[types.FIELD_KEY_MEDICATION_FREQUENCY] = *record.MedicationFrequency
	}
	if record.OtherSymptoms != nil {
		set[types.FIELD_KEY_OTHER_SYMPTOMS] = record.OtherSymptoms
	}
	if record.SupportLevel != nil {
		set[types.FIELD_KEY_SUPPORT_LEVEL] = *record.SupportLevel
	}
	if record.ExpressionText != nil {
		set[types.FIELD_KEY_EXPRESSION_TEXT] = *record.ExpressionText
	}

	return set
}
