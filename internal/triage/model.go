// Package triage implements the rule-based symptom-triage dialogue: an
// immutable model artifact loaded once at process start, explicit keyed
// conversation sessions, and a linear wizard expressed as a finite-state
// machine with one handler per state.
package triage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Prediction is the result of classifying a reported symptom set.
type Prediction struct {
	Disease     string
	Description string
	Precautions []string
}

// Model is the trained triage artifact: the known symptom vocabulary, the
// per-disease symptom sets from the training data, and the symptom severity,
// disease description and precaution tables. It is read-only after Load and
// safe for concurrent use.
type Model struct {
	symptoms     []string
	diseases     map[string]map[string]bool
	severity     map[string]int
	descriptions map[string]string
	precautions  map[string][]string
}

// Load reads the model artifact from the CSV files in dir: Training.csv,
// Symptom_severity.csv, symptom_Description.csv and symptom_precaution.csv.
func Load(dir string) (*Model, error) {
	m := &Model{
		diseases:     make(map[string]map[string]bool),
		severity:     make(map[string]int),
		descriptions: make(map[string]string),
		precautions:  make(map[string][]string),
	}

	if err := m.loadTraining(filepath.Join(dir, "Training.csv")); err != nil {
		return nil, err
	}
	if err := m.loadSeverity(filepath.Join(dir, "Symptom_severity.csv")); err != nil {
		return nil, err
	}
	if err := m.loadDescriptions(filepath.Join(dir, "symptom_Description.csv")); err != nil {
		return nil, err
	}
	if err := m.loadPrecautions(filepath.Join(dir, "symptom_precaution.csv")); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Model) loadTraining(path string) error {
	rows, err := readCSV(path)
	if err != nil {
		return err
	}
	if len(rows) < 2 {
		return fmt.Errorf("training data %s has no samples", path)
	}

	header := rows[0]
	if len(header) < 2 {
		return fmt.Errorf("training data %s has no symptom columns", path)
	}
	m.symptoms = append([]string(nil), header[:len(header)-1]...)

	for _, row := range rows[1:] {
		if len(row) != len(header) {
			continue
		}
		disease := strings.TrimSpace(row[len(row)-1])
		set := m.diseases[disease]
		if set == nil {
			set = make(map[string]bool)
			m.diseases[disease] = set
		}
		for i, v := range row[:len(row)-1] {
			if strings.TrimSpace(v) == "1" {
				set[m.symptoms[i]] = true
			}
		}
	}

	return nil
}

func (m *Model) loadSeverity(path string) error {
	rows, err := readCSV(path)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		sev, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			continue
		}
		m.severity[strings.TrimSpace(row[0])] = sev
	}
	return nil
}

func (m *Model) loadDescriptions(path string) error {
	rows, err := readCSV(path)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		m.descriptions[strings.TrimSpace(row[0])] = row[1]
	}
	return nil
}

func (m *Model) loadPrecautions(path string) error {
	rows, err := readCSV(path)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		m.precautions[strings.TrimSpace(row[0])] = append([]string(nil), row[1:]...)
	}
	return nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return rows, nil
}

// MatchSymptoms returns the known symptoms whose name contains the user's
// input (spaces treated as underscores, case-insensitive), in vocabulary
// order.
func (m *Model) MatchSymptoms(input string) []string {
	needle := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(input), " ", "_"))
	if needle == "" {
		return nil
	}

	var matches []string
	for _, s := range m.symptoms {
		if strings.Contains(strings.ToLower(s), needle) {
			matches = append(matches, s)
		}
	}
	return matches
}

// FollowUps returns up to limit symptoms, in vocabulary order, that the
// patient has not yet reported.
func (m *Model) FollowUps(reported []string, limit int) []string {
	seen := make(map[string]bool, len(reported))
	for _, s := range reported {
		seen[s] = true
	}

	var followUps []string
	for _, s := range m.symptoms {
		if seen[s] {
			continue
		}
		followUps = append(followUps, s)
		if len(followUps) == limit {
			break
		}
	}
	return followUps
}

// Predict classifies the reported symptom set as the disease whose training
// symptoms overlap it most. Ties break toward the alphabetically first
// disease so the result is deterministic.
func (m *Model) Predict(reported []string) Prediction {
	var best string
	bestScore := -1

	names := make([]string, 0, len(m.diseases))
	for name := range m.diseases {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		score := 0
		for _, s := range reported {
			if m.diseases[name][s] {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = name, score
		}
	}

	description, ok := m.descriptions[best]
	if !ok {
		description = "No description available."
	}
	precautions, ok := m.precautions[best]
	if !ok {
		precautions = []string{"Consult a doctor."}
	}

	return Prediction{Disease: best, Description: description, Precautions: precautions}
}

// SevereCondition reports whether the severity of the reported symptoms over
// the given duration warrants seeing a doctor rather than self-care.
func (m *Model) SevereCondition(reported []string, days int) bool {
	if len(reported) == 0 {
		return false
	}

	total := 0
	for _, s := range reported {
		total += m.severity[s]
	}
	return total*days/(len(reported)+1) > 13
}
