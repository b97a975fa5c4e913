package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SamplePairs returns a small starter corpus of everyday NGO field phrases.
func SamplePairs() []Pair {
	return []Pair{
		{"Hello, how are you?", "Sannu, yaya kuke?"},
		{"Good morning", "Barka da safe"},
		{"Thank you very much", "Na gode sosai"},
		{"What is your name?", "Menene sunanka?"},
		{"I am fine", "Ina lafiya"},
		{"Welcome to our community", "Barka da zuwa ga al'ummarmu"},
		{"We need clean water", "Muna bukatan ruwa mai tsabta"},
		{"Education is very important", "Ilimi yana da muhimmanci sosai"},
		{"The clinic is open today", "Asibitin yana bude yau"},
		{"Please help us", "Don Allah ku taimake mu"},
		{"The meeting will start at 9 AM", "Taron zai fara da karfe 9 na safe"},
		{"Children need vaccination", "Yara suna bukatan allurar rigakafi"},
		{"Food distribution is tomorrow", "Rabon abinci zai kasance gobe"},
		{"The school needs books", "Makarantar tana bukatan littattafai"},
		{"Health care is a basic right", "Kiwon lafiya hakki ne na asali"},
	}
}

// WriteJSON writes pairs to path as a JSON list, creating parent
// directories as needed.
func WriteJSON(path string, pairs []Pair) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	data, err := json.MarshalIndent(pairs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal pairs: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
