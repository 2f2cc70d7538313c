package models

import "time"

// Vocabulary status values. Status is curated externally (import or manual
// edit), never by the scheduling engine.
const (
	StatusActive   = "active"
	StatusMastered = "mastered"
)

// POSSentence marks a catalog entry that is a full example sentence rather
// than a single word.
const POSSentence = "sentence"

type Vocabulary struct {
	ID              int64     `json:"id"`
	Kanji           string    `json:"kanji"`
	Reading         string    `json:"reading,omitempty"`
	Meaning         string    `json:"meaning,omitempty"`
	POS             string    `json:"pos,omitempty"`
	JLPTLevel       string    `json:"jlpt_level,omitempty"`
	ExampleSentence string    `json:"example_sentence,omitempty"`
	ExampleMeaning  string    `json:"example_meaning,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

func (v Vocabulary) IsSentence() bool {
	return v.POS == POSSentence
}

type VocabFilter struct {
	Status    string
	POS       string
	JLPTLevel string
	Search    string
	Limit     int
	Offset    int
}
