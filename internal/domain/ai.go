package domain

// SlideNote is the generated speaker notes for one slide.
type SlideNote struct {
	SlideIndex int    `json:"slide_index"`
	Notes      string `json:"notes"`
}

// NotesResponse is returned by the studio notes endpoint.
type NotesResponse struct {
	DeckID string      `json:"deck_id"`
	Model  string      `json:"model"`
	Notes  []SlideNote `json:"notes"`
}
