package assessment

import (
	"testing"

	"github.com/Kleo07/MindSpaceX/pkg/assessment/types"
)

func TestBuildFieldUpdatesIncludesOnlySetFields(t *testing.T) {
	record := types.AssessmentRecord{
		Goal:          types.StrPtr(types.GOAL_REDUCE_STRESS),
		Age:           types.IntPtr(30),
		OtherSymptoms: []string{"headache"},
	}

	set := buildFieldUpdates(record)

	if len(set) != 3 {
		t.Errorf("expected 3 entries, got %d: %v", len(set), set)
	}
	if set[types.FIELD_KEY_GOAL] != types.GOAL_REDUCE_STRESS {
		t.Errorf("goal = %v", set[types.FIELD_KEY_GOAL])
	}
	if set[types.FIELD_KEY_AGE] != 30 {
		t.Errorf("age = %v", set[types.FIELD_KEY_AGE])
	}
	if _, present := set[types.FIELD_KEY_MOOD]; present {
		t.Error("unset mood must not appear in the update")
	}
}

func TestBuildFieldUpdatesKeepsEmptySymptomList(t *testing.T) {
	set := buildFieldUpdates(types.AssessmentRecord{OtherSymptoms: []string{}})

	value, present := set[types.FIELD_KEY_OTHER_SYMPTOMS]
	if !present {
		t.Fatal("explicit empty symptom list should be written")
	}
	if symptoms, ok := value.([]string); !ok || len(symptoms) != 0 {
		t.Errorf("unexpected symptom value: %#v", value)
	}
}

func TestBuildFieldUpdatesEmptyRecord(t *testing.T) {
	set := buildFieldUpdates(types.AssessmentRecord{})
	if len(set) != 0 {
		t.Errorf("empty record should produce no field updates, got %v", set)
	}
}
