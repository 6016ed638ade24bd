// Package scenario holds the guided practice lessons: multi-step
// real-life situations the tutor role-plays with the learner.
package scenario

import "fmt"

// Step is one stage of a guided scenario.
type Step struct {
	ID              int    `json:"id"`
	Instruction     string `json:"instruction"` // what the learner should do
	AIPrompt        string `json:"aiPrompt"`    // context for the tutor at this step
	SuccessCriteria string `json:"successCriteria,omitempty"`
}

// Scenario is a guided lesson.
type Scenario struct {
	ID               string   `json:"id"`
	Category         string   `json:"category"` // travel, roleplay, conversation, quiz
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Difficulty       string   `json:"difficulty"` // beginner, intermediate, advanced
	EstimatedMinutes int      `json:"estimatedMinutes"`
	Steps            []Step   `json:"steps"`
	VocabularyFocus  []string `json:"vocabularyFocus,omitempty"`
}

// Category is UI metadata for a scenario group.
type Category struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Categories lists the scenario groups in display order.
var Categories = []Category{
	{ID: "travel", Label: "Travel", Description: "Practice real travel situations"},
	{ID: "roleplay", Label: "Role Play", Description: "Professional and daily life scenarios"},
	{ID: "conversation", Label: "Conversation", Description: "Everyday social interactions"},
	{ID: "quiz", Label: "Quiz", Description: "Test your grammar and vocabulary"},
}

// All returns every scenario in catalog order.
func All() []Scenario {
	return catalog
}

// ByCategory returns the scenarios of one category.
func ByCategory(category string) []Scenario {
	var out []Scenario
	for _, s := range catalog {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// ByID returns the scenario, or nil when the id is unknown.
func ByID(id string) *Scenario {
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i]
		}
	}
	return nil
}

// ClampStep bounds a step index to the scenario's range.
func (s *Scenario) ClampStep(step int) int {
	if step < 0 {
		return 0
	}
	if last := len(s.Steps) - 1; step > last {
		return last
	}
	return step
}

// StepContext renders the tutor-facing context for the given step,
// injected into the system prompt while the scenario is active.
func (s *Scenario) StepContext(step int) string {
	step = s.ClampStep(step)
	cur := s.Steps[step]
	return fmt.Sprintf("Scenario: %s (%s). Step %d of %d.\nStay in character: %s\nThe learner was asked to: %s",
		s.Title, s.Description, step+1, len(s.Steps), cur.AIPrompt, cur.Instruction)
}
