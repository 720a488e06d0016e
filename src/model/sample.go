package model

// Difficulty is the skill level a code sample targets
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Sample is a ready-made input program from the sample catalog
type Sample struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Code        string     `json:"code"`
	Language    string     `json:"language"`
	Difficulty  Difficulty `json:"difficulty"`
	Concepts    []string   `json:"concepts"`
}
