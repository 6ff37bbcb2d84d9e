package wordstore

import "spellquiz/internal/models"

// DefaultListName is the list active when no configuration says otherwise.
const DefaultListName = "Practice Words"

// DefaultLists returns the built-in named word lists: a general
// practice list plus the weekly spelling lists, which include short
// dictation sentences alongside single words.
func DefaultLists() []models.WordList {
	return []models.WordList{
		{
			Name: DefaultListName,
			Words: words(
				"beautiful", "difficult", "knowledge", "necessary", "separate",
				"accommodate", "embarrass", "occurrence", "recommend", "successful",
				"appreciate", "experience", "independent", "opportunity", "responsible",
				"communication", "environment", "immediately", "occasionally", "particularly",
			),
		},
		{
			Name: "Spelling 13 - 30 July",
			Words: words(
				"wait", "green", "mine", "clothes", "dressed",
				"makes", "family", "pockets", "breakfast", "relatives",
				"mother makes breakfast for my sister and me",
			),
		},
		{
			Name: "Spelling 14 - 6 August",
			Words: words(
				"visit", "kneel", "smile", "widely", "packets",
				"members", "presents", "naughty", "celebrate", "grandchildren",
				"we ate tarts, cookies and cakes",
			),
		},
	}
}

func words(texts ...string) []models.Word {
	ws := make([]models.Word, len(texts))
	for i, t := range texts {
		ws[i] = models.Word(t)
	}
	return ws
}
