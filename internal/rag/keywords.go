package rag

import (
	"regexp"
	"sort"
	"strings"
)

// Vocabulary holds the lexical tables driving keyword extraction and intent
// detection. The alias and synonym maps are expanded bidirectionally: a hit
// on either side pulls in the canonical term and all of its variants.
type Vocabulary struct {
	AuthorAliases      map[string][]string
	TopicSynonyms      map[string][]string
	StopWords          map[string]struct{}
	InterpretationCues []string
	HistoricalCues     []string
	ComparisonCues     []string
}

// DefaultVocabulary returns the tables tuned for the historical quotes
// corpus.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		AuthorAliases: map[string][]string{
			"roosevelt":          {"franklin", "fdr"},
			"martin luther king": {"mlk", "king jr", "martin luther"},
			"einstein":           {"albert"},
			"gandhi":             {"mahatma"},
			"mandela":            {"nelson"},
			"churchill":          {"winston"},
			"lincoln":            {"abraham"},
			"curie":              {"marie"},
			"da vinci":           {"leonardo"},
			"newton":             {"isaac"},
			"edison":             {"thomas"},
			"armstrong":          {"neil"},
		},
		TopicSynonyms: map[string][]string{
			"fear":         {"afraid", "scared", "frightened"},
			"dream":        {"dreamed", "dreamt", "aspiration"},
			"change":       {"transform", "different", "alter"},
			"perseverance": {"persist", "never give up", "keep going", "resilience"},
			"leadership":   {"leader", "govern", "government", "authority"},
			"imagination":  {"imagine", "creative", "creativity", "innovation"},
			"science":      {"scientific", "knowledge", "learn", "discovery"},
			"courage":      {"brave", "bravery", "bold", "fearless"},
			"equality":     {"equal", "rights", "civil rights", "justice"},
			"freedom":      {"free", "liberty", "independence"},
			"success":      {"achieve", "achievement", "accomplish", "victory"},
			"failure":      {"fail", "mistake", "error", "defeat"},
			"hope":         {"hopeful", "optimistic", "expectation"},
		},
		StopWords: toSet([]string{
			"what", "who", "when", "where", "why", "how", "said", "say",
			"about", "some", "the", "a", "an", "and", "or", "but", "in",
			"on", "at", "to", "for", "of", "with", "by", "does", "did",
			"do", "can", "could", "would", "should", "there", "are", "is",
			"was", "were", "jr",
		}),
		InterpretationCues: []string{
			"mean", "meaning", "interpret", "interpretation", "explain",
			"significance", "understand", "analyze", "analysis",
		},
		HistoricalCues: []string{
			"history", "historical", "context", "background", "era",
			"period", "time", "when was", "circumstances",
		},
		ComparisonCues: []string{
			"compare", "comparison", "contrast", "difference", "differences",
			"similar", "similarities", "versus", " vs ", "both",
		},
	}
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

var wordPattern = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)

// Extractor derives search keywords and query intent from a raw question.
// It is pure and safe for concurrent use.
type Extractor struct {
	vocab *Vocabulary
}

// NewExtractor builds an Extractor. A nil vocabulary gets the default
// tables.
func NewExtractor(vocab *Vocabulary) *Extractor {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	return &Extractor{vocab: vocab}
}

// Extract lowercases the question, expands author aliases and topic
// synonyms bidirectionally, and appends residual non-stopword tokens.
// Keyword order is deterministic and duplicates are dropped on first
// occurrence.
func (e *Extractor) Extract(question string) Extraction {
	lower := strings.ToLower(question)

	var keywords []string
	seen := make(map[string]struct{})
	add := func(word string) {
		if _, ok := seen[word]; ok {
			return
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
	}

	for _, canonical := range sortedKeys(e.vocab.AuthorAliases) {
		aliases := e.vocab.AuthorAliases[canonical]
		if containsAny(lower, canonical, aliases) {
			add(canonical)
			for _, alias := range aliases {
				add(alias)
			}
		}
	}
	for _, canonical := range sortedKeys(e.vocab.TopicSynonyms) {
		synonyms := e.vocab.TopicSynonyms[canonical]
		if containsAny(lower, canonical, synonyms) {
			add(canonical)
			for _, syn := range synonyms {
				add(syn)
			}
		}
	}

	for _, token := range wordPattern.FindAllString(lower, -1) {
		if _, stop := e.vocab.StopWords[token]; stop {
			continue
		}
		add(token)
	}

	return Extraction{Keywords: keywords, Intent: e.detectIntent(lower)}
}

func (e *Extractor) detectIntent(lower string) Intent {
	intent := Intent{
		Interpretation: containsAnyCue(lower, e.vocab.InterpretationCues),
		Historical:     containsAnyCue(lower, e.vocab.HistoricalCues),
		Comparison:     containsAnyCue(lower, e.vocab.ComparisonCues),
	}
	switch {
	case intent.Interpretation:
		intent.Type = IntentInterpretation
	case intent.Historical:
		intent.Type = IntentHistorical
	case intent.Comparison:
		intent.Type = IntentComparison
	default:
		intent.Type = IntentRetrieval
	}
	return intent
}

func containsAny(haystack, canonical string, variants []string) bool {
	if strings.Contains(haystack, canonical) {
		return true
	}
	for _, v := range variants {
		if strings.Contains(haystack, v) {
			return true
		}
	}
	return false
}

func containsAnyCue(haystack string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(haystack, cue) {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
