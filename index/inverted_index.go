package index

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"time"
)

// InvertedIndex holds one SectionIndex per recipe section.
// It is built once and never mutated afterwards; concurrent readers need no locking.
// A rebuild produces a new InvertedIndex value.
type InvertedIndex struct {
	sections      map[Section]SectionIndex
	documentCount int
	corpusDigest  string
	builtAt       time.Time
}

// gobInvertedIndexData is a helper struct for Gob encoding/decoding InvertedIndex data.
type gobInvertedIndexData struct {
	Sections      map[Section]SectionIndex
	DocumentCount int
	CorpusDigest  string
	BuiltAt       time.Time
}

// New wraps fully populated section maps. Missing sections are replaced by empty ones.
// Callers must not modify the maps after handing them over.
func New(sections map[Section]SectionIndex, documentCount int, corpusDigest string) *InvertedIndex {
	ii := &InvertedIndex{
		sections:      make(map[Section]SectionIndex, len(Sections)),
		documentCount: documentCount,
		corpusDigest:  corpusDigest,
		builtAt:       time.Now().UTC(),
	}
	for _, s := range Sections {
		if si, ok := sections[s]; ok && si != nil {
			ii.sections[s] = si
		} else {
			ii.sections[s] = make(SectionIndex)
		}
	}
	return ii
}

// Section returns the read-only index for a section.
func (ii *InvertedIndex) Section(s Section) SectionIndex {
	return ii.sections[s]
}

// Weight returns the recorded weight of word for docID within a section.
func (ii *InvertedIndex) Weight(s Section, word string, docID int) (int, bool) {
	return ii.sections[s].Weight(word, docID)
}

// DocumentCount is the size of the corpus the index was built from.
func (ii *InvertedIndex) DocumentCount() int {
	return ii.documentCount
}

// CorpusDigest identifies the corpus the index was built from.
func (ii *InvertedIndex) CorpusDigest() string {
	return ii.corpusDigest
}

// BuiltAt is the build time of the index.
func (ii *InvertedIndex) BuiltAt() time.Time {
	return ii.builtAt
}

// VocabularySizes returns the number of distinct words per section.
func (ii *InvertedIndex) VocabularySizes() map[Section]int {
	sizes := make(map[Section]int, len(ii.sections))
	for s, si := range ii.sections {
		sizes[s] = len(si)
	}
	return sizes
}

// Matches reports whether the index was built from the given corpus.
func (ii *InvertedIndex) Matches(documentCount int, corpusDigest string) bool {
	return ii.documentCount == documentCount && ii.corpusDigest == corpusDigest
}

// GobEncode implements the gob.GobEncoder interface for InvertedIndex.
func (ii *InvertedIndex) GobEncode() ([]byte, error) {
	dataToEncode := gobInvertedIndexData{
		Sections:      ii.sections,
		DocumentCount: ii.documentCount,
		CorpusDigest:  ii.corpusDigest,
		BuiltAt:       ii.builtAt,
	}

	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)
	if err := encoder.Encode(dataToEncode); err != nil {
		return nil, fmt.Errorf("failed to gob encode inverted index: %w", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface for InvertedIndex.
// It is meant for decoding into a fresh, unpublished value.
func (ii *InvertedIndex) GobDecode(data []byte) error {
	decodedData := gobInvertedIndexData{}

	buf := bytes.NewBuffer(data)
	decoder := gob.NewDecoder(buf)
	if err := decoder.Decode(&decodedData); err != nil {
		return fmt.Errorf("failed to gob decode inverted index: %w", err)
	}

	restored := New(decodedData.Sections, decodedData.DocumentCount, decodedData.CorpusDigest)
	restored.builtAt = decodedData.BuiltAt
	*ii = *restored
	return nil
}
