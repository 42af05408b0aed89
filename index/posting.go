package index

// Section names one of the four indexed recipe fields.
type Section string

const (
	SectionTitle       Section = "title"
	SectionCategories  Section = "categories"
	SectionIngredients Section = "ingredients"
	SectionDirections  Section = "directions"
)

// Sections lists every indexed section in a fixed order.
// Resolution and relevance scoring iterate sections in this order.
var Sections = []Section{SectionTitle, SectionCategories, SectionIngredients, SectionDirections}

// Weight returns the fixed per-occurrence weight of a section.
func (s Section) Weight() int {
	switch s {
	case SectionTitle:
		return 8
	case SectionCategories:
		return 4
	case SectionIngredients:
		return 2
	case SectionDirections:
		return 1
	default:
		return 0
	}
}

// Postings maps a document id to the accumulated weight of a word in one section.
type Postings map[int]int

// SectionIndex maps a word to its postings within a single section.
type SectionIndex map[string]Postings

// Add accumulates weight for (word, docID), creating the postings on first use.
func (si SectionIndex) Add(word string, docID, weight int) {
	postings, ok := si[word]
	if !ok {
		postings = make(Postings)
		si[word] = postings
	}
	postings[docID] += weight
}

// Weight returns the recorded weight for (word, docID) and whether one exists.
func (si SectionIndex) Weight(word string, docID int) (int, bool) {
	postings, ok := si[word]
	if !ok {
		return 0, false
	}
	w, ok := postings[docID]
	return w, ok
}
