package triage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeTriageData lays out a small model artifact in a temp dir. Vocabulary
// order is itching, skin_rash, headache, high_fever, fatigue.
func writeTriageData(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"Training.csv": "itching,skin_rash,headache,high_fever,fatigue,prognosis\n" +
			"1,1,0,0,0,Fungal infection\n" +
			"0,0,1,1,1,Malaria\n" +
			"0,0,1,0,1,Common Cold\n",
		"Symptom_severity.csv": "itching,1\n" +
			"skin_rash,3\n" +
			"headache,3\n" +
			"high_fever,7\n" +
			"fatigue,4\n",
		"symptom_Description.csv": "Malaria,An infectious disease caused by protozoan parasites.\n" +
			"Common Cold,A viral infection of the upper respiratory tract.\n",
		"symptom_precaution.csv": "Malaria,consult nearest hospital,avoid oily food,keep mosquitos out\n" +
			"Common Cold,drink vitamin c rich drinks,take vapour,rest\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	return dir
}

func loadTestModel(t *testing.T) *Model {
	t.Helper()
	model, err := Load(writeTriageData(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return model
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("expected an error for a directory without training data")
	}
}

func TestMatchSymptoms(t *testing.T) {
	model := loadTestModel(t)

	if got := model.MatchSymptoms("skin rash"); !reflect.DeepEqual(got, []string{"skin_rash"}) {
		t.Errorf("spaces should match underscores, got %v", got)
	}
	if got := model.MatchSymptoms("HEAD"); !reflect.DeepEqual(got, []string{"headache"}) {
		t.Errorf("matching should be case-insensitive, got %v", got)
	}
	if got := model.MatchSymptoms("it"); !reflect.DeepEqual(got, []string{"itching"}) {
		t.Errorf("substring match failed, got %v", got)
	}
	if got := model.MatchSymptoms("toothache"); got != nil {
		t.Errorf("expected no matches, got %v", got)
	}
	if got := model.MatchSymptoms("   "); got != nil {
		t.Errorf("blank input should match nothing, got %v", got)
	}
}

func TestFollowUps(t *testing.T) {
	model := loadTestModel(t)

	got := model.FollowUps([]string{"headache"}, 10)
	want := []string{"itching", "skin_rash", "high_fever", "fatigue"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v in vocabulary order, got %v", want, got)
	}

	if got := model.FollowUps(nil, 2); len(got) != 2 {
		t.Errorf("limit not respected, got %v", got)
	}
}

func TestPredict(t *testing.T) {
	model := loadTestModel(t)

	result := model.Predict([]string{"headache", "high_fever", "fatigue"})
	if result.Disease != "Malaria" {
		t.Fatalf("expected Malaria, got %q", result.Disease)
	}
	if result.Description == "No description available." {
		t.Error("description table entry not used")
	}
	if len(result.Precautions) != 3 {
		t.Errorf("expected 3 precautions, got %v", result.Precautions)
	}
}

func TestPredictTieBreaksAlphabetically(t *testing.T) {
	model := loadTestModel(t)

	// headache and fatigue score 2 for both Malaria and Common Cold.
	result := model.Predict([]string{"headache", "fatigue"})
	if result.Disease != "Common Cold" {
		t.Errorf("expected the alphabetically first disease on a tie, got %q", result.Disease)
	}
}

func TestPredictFallbacksForUnknownTables(t *testing.T) {
	model := loadTestModel(t)

	// Fungal infection has no description or precaution rows.
	result := model.Predict([]string{"itching", "skin_rash"})
	if result.Disease != "Fungal infection" {
		t.Fatalf("expected Fungal infection, got %q", result.Disease)
	}
	if result.Description != "No description available." {
		t.Errorf("expected description fallback, got %q", result.Description)
	}
	if !reflect.DeepEqual(result.Precautions, []string{"Consult a doctor."}) {
		t.Errorf("expected precaution fallback, got %v", result.Precautions)
	}
}

func TestSevereCondition(t *testing.T) {
	model := loadTestModel(t)

	// high_fever(7) + fatigue(4) over 5 days: 11*5/3 = 18 > 13.
	if !model.SevereCondition([]string{"high_fever", "fatigue"}, 5) {
		t.Error("expected a long high-severity episode to be flagged")
	}
	// Same symptoms over 2 days: 11*2/3 = 7.
	if model.SevereCondition([]string{"high_fever", "fatigue"}, 2) {
		t.Error("short episode should not be flagged")
	}
	if model.SevereCondition(nil, 30) {
		t.Error("no symptoms should never be flagged")
	}
}
