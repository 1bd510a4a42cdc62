package models

// Sport is a row of the sports reference table.
type Sport struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji,omitempty"`
}
