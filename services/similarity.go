package services

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"movie-recommendation-engine/models"
)

// maxSimilarResults caps the similarity result list.
const maxSimilarResults = 3

// similarityThreshold is the minimum cosine similarity a candidate must
// clear to be considered at all.
const similarityThreshold = 0.3

// Blend weights of the final re-ranking: similarity dominates, rating
// quality nudges the order of the survivors.
const (
	similarityWeight = 0.7
	ratingWeight     = 0.3
)

// SimilarityRecommender ranks movies by text similarity to a reference
// title. Movies are embedded into a TF-IDF vector space built from their
// genre and description; the genre string is repeated three times in the
// combined feature to bias the space toward genre over free text.
type SimilarityRecommender struct {
	logger Logger
}

// NewSimilarityRecommender creates a new similarity recommender
func NewSimilarityRecommender(logger Logger) *SimilarityRecommender {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &SimilarityRecommender{logger: logger}
}

// RecommendSimilar returns up to three movies similar to the given
// title. A title absent from the catalog yields an empty result, as does
// a catalog where no candidate clears the similarity threshold. The
// survivors are re-ranked by a blend of similarity and rating.
func (s *SimilarityRecommender) RecommendSimilar(title string, catalog models.Catalog) []models.ScoredMovie {
	_, refIdx, ok := catalog.Find(title)
	if !ok {
		s.logger.Warn("similarity reference title not in catalog", String("title", title))
		return []models.ScoredMovie{}
	}

	documents := make([]string, catalog.Len())
	for i, movie := range catalog.Movies {
		documents[i] = combinedFeatures(movie)
	}

	vectors := tfidfVectors(documents)
	refVector := vectors[refIdx]

	type scored struct {
		index      int
		similarity float64
	}
	var candidates []scored
	for i, vector := range vectors {
		if i == refIdx {
			continue
		}
		sim := cosineSimilarity(refVector, vector)
		if sim > similarityThreshold {
			candidates = append(candidates, scored{index: i, similarity: sim})
		}
	}

	if len(candidates) == 0 {
		return []models.ScoredMovie{}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].similarity > candidates[j].similarity
	})
	if len(candidates) > maxSimilarResults {
		candidates = candidates[:maxSimilarResults]
	}

	results := make([]models.ScoredMovie, 0, len(candidates))
	for _, c := range candidates {
		movie := catalog.Movies[c.index]
		// Missing ratings count as zero quality in the blend.
		combined := similarityWeight*c.similarity + ratingWeight*(movie.RatingOrZero()/10.0)
		results = append(results, models.ScoredMovie{
			MovieRecord:     movie,
			SimilarityScore: c.similarity,
			CombinedScore:   combined,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CombinedScore > results[j].CombinedScore
	})

	return results
}

// combinedFeatures builds the text a movie is vectorized from. The
// triple genre repeat weights genre terms three times as heavily as
// description terms.
func combinedFeatures(movie models.MovieRecord) string {
	genre := strings.ToLower(movie.Genre)
	return genre + " " + genre + " " + genre + " " + strings.ToLower(movie.Description)
}

// tfidfVectors embeds the documents into a shared TF-IDF space with
// smoothed inverse document frequency and L2-normalized rows, so the
// dot product of two vectors is their cosine similarity.
func tfidfVectors(documents []string) []map[string]float64 {
	n := len(documents)
	termCounts := make([]map[string]int, n)
	docFrequency := make(map[string]int)

	for i, doc := range documents {
		counts := make(map[string]int)
		for _, token := range tokenizeFeatures(doc) {
			counts[token]++
		}
		termCounts[i] = counts
		for term := range counts {
			docFrequency[term]++
		}
	}

	idf := make(map[string]float64, len(docFrequency))
	for term, df := range docFrequency {
		idf[term] = math.Log(float64(1+n)/float64(1+df)) + 1
	}

	vectors := make([]map[string]float64, n)
	for i, counts := range termCounts {
		vector := make(map[string]float64, len(counts))
		var norm float64
		for term, count := range counts {
			weight := float64(count) * idf[term]
			vector[term] = weight
			norm += weight * weight
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for term := range vector {
				vector[term] /= norm
			}
		}
		vectors[i] = vector
	}

	return vectors
}

// cosineSimilarity computes the dot product of two L2-normalized sparse
// vectors.
func cosineSimilarity(a, b map[string]float64) float64 {
	// Iterate the smaller vector.
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for term, weight := range a {
		dot += weight * b[term]
	}
	return dot
}

// tokenizeFeatures splits a combined feature string into lowercase
// terms of at least two letters or digits, dropping English stop words.
func tokenizeFeatures(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() >= 2 {
			token := current.String()
			if !englishStopWords[token] {
				tokens = append(tokens, token)
			}
		}
		current.Reset()
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()

	return tokens
}
