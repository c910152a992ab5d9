package rag

import (
	"sort"
	"strconv"
	"strings"
)

// Ranker fuses semantic similarity, keyword matches, and metadata boosts
// into a single score per document.
type Ranker struct {
	cfg RankingConfig
}

// NewRanker builds a Ranker with the given weights.
func NewRanker(cfg RankingConfig) *Ranker {
	return &Ranker{cfg: cfg}
}

// Rank scores every candidate against the extracted keywords and intent and
// returns the documents sorted by fused score, highest first. The sort is
// stable so equal scores preserve candidate order.
func (r *Ranker) Rank(candidates []Candidate, extraction Extraction) []ScoredDocument {
	docs := make([]ScoredDocument, 0, len(candidates))
	for _, cand := range candidates {
		docs = append(docs, r.score(cand, extraction))
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Score > docs[j].Score
	})
	return docs
}

func (r *Ranker) score(cand Candidate, extraction Extraction) ScoredDocument {
	q := cand.Quote
	author := strings.ToLower(q.Author)
	topic := strings.ToLower(q.Topic)
	blob := author + " " + topic + " " + strings.ToLower(q.Quote) + " " +
		strings.ToLower(strings.Join(q.Tags, " "))

	var kwScore float64
	var matched []string
	for _, kw := range extraction.Keywords {
		if !strings.Contains(blob, kw) {
			continue
		}
		matched = append(matched, kw)
		kwScore += 1
		if strings.Contains(author, kw) {
			kwScore += r.cfg.AuthorMatchWeight
		}
		if strings.Contains(topic, kw) {
			kwScore += r.cfg.TopicMatchWeight
		}
	}

	breakdown := ScoreBreakdown{
		Semantic: r.cfg.SemanticWeight * cand.SemanticScore,
		Keyword:  r.cfg.KeywordBoost * kwScore,
	}
	if q.HasAnalysis() {
		breakdown.AnalysisBoost = r.cfg.AnalysisBoost
		if extraction.Intent.NeedsAnalysis() {
			breakdown.AnalysisBoost *= r.cfg.AnalysisIntentScale
		}
	}
	// Intent boost applies only when the document carries fields that
	// serve the detected intent.
	switch extraction.Intent.Type {
	case IntentInterpretation:
		if q.Interpretation != "" {
			breakdown.IntentBoost = r.cfg.IntentBoost
		}
	case IntentHistorical:
		if q.HistoricalSignificance != "" {
			breakdown.IntentBoost = r.cfg.IntentBoost
		}
	case IntentComparison:
		if q.Themes != "" {
			breakdown.IntentBoost = r.cfg.IntentBoost
		}
	}

	return ScoredDocument{
		Quote:           q,
		Score:           breakdown.Semantic + breakdown.Keyword + breakdown.AnalysisBoost + breakdown.IntentBoost,
		MatchedKeywords: matched,
		Breakdown:       breakdown,
	}
}

// Dedup removes duplicate documents, keeping the first (highest-ranked)
// occurrence. Identity is the quote ID; records without a positive ID fall
// back to the trimmed first 100 characters of the quote text.
func Dedup(docs []ScoredDocument) []ScoredDocument {
	seen := make(map[string]struct{}, len(docs))
	out := docs[:0:0]
	for _, doc := range docs {
		key := dedupKey(doc)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, doc)
	}
	return out
}

func dedupKey(doc ScoredDocument) string {
	if doc.ID > 0 {
		return "id:" + strconv.Itoa(doc.ID)
	}
	text := strings.TrimSpace(doc.Quote.Quote)
	if len(text) > 100 {
		text = text[:100]
	}
	return "q:" + text
}

// PreferAnalysis selects up to limit documents, filling from analyzed
// documents first and topping up with the rest, each partition in rank
// order. Used for interpretation and historical questions where curated
// analysis fields carry most of the answer.
func PreferAnalysis(docs []ScoredDocument, limit int) []ScoredDocument {
	if limit <= 0 || len(docs) == 0 {
		return nil
	}
	out := make([]ScoredDocument, 0, limit)
	for _, doc := range docs {
		if doc.HasAnalysis() {
			out = append(out, doc)
			if len(out) == limit {
				return out
			}
		}
	}
	for _, doc := range docs {
		if !doc.HasAnalysis() {
			out = append(out, doc)
			if len(out) == limit {
				return out
			}
		}
	}
	return out
}
