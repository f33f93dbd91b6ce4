package classifier

import (
	"context"
	"sort"
	"strings"
)

const (
	baseConfidence = 0.5
	maxConfidence  = 0.95
	positiveCutoff = 0.2
	negativeCutoff = -0.2
)

// Fallback is the deterministic, offline classifier backed by the static
// lexicon tables. It never fails and is safe for concurrent use.
type Fallback struct{}

// NewFallback constructs the offline classifier.
func NewFallback() *Fallback {
	return &Fallback{}
}

// Classify analyses text using the lexicon tables. The error return exists
// only to satisfy the Classifier interface; it is always nil.
func (f *Fallback) Classify(_ context.Context, text string) (Classification, error) {
	return Classification{
		Sentiment: f.scoreSentiment(text),
		Topics:    f.matchTopics(text),
	}, nil
}

func (f *Fallback) scoreSentiment(text string) Sentiment {
	tokens := strings.Fields(strings.ToLower(text))

	var positive, negative int
	for _, token := range tokens {
		switch {
		case containsAny(token, positiveWords):
			positive++
		case containsAny(token, negativeWords):
			negative++
		}
	}

	total := positive + negative
	if total == 0 {
		return Sentiment{Label: SentimentNeutral, Score: 0, Confidence: baseConfidence}
	}

	score := float64(positive-negative) / float64(total)
	confidence := baseConfidence + 0.1*float64(total)
	if confidence > maxConfidence {
		confidence = maxConfidence
	}

	label := SentimentNeutral
	if score > positiveCutoff {
		label = SentimentPositive
	} else if score < negativeCutoff {
		label = SentimentNegative
	}

	return Sentiment{Label: label, Score: score, Confidence: confidence}
}

func (f *Fallback) matchTopics(text string) []Topic {
	lowered := strings.ToLower(text)

	topics := make([]Topic, 0, len(topicKeywords))
	for _, label := range AllTopics() {
		var evidence []string
		for _, keyword := range topicKeywords[label] {
			if strings.Contains(lowered, keyword) {
				evidence = append(evidence, keyword)
			}
		}

		if len(evidence) == 0 {
			continue
		}

		confidence := baseConfidence + 0.1*float64(len(evidence))
		if confidence > maxConfidence {
			confidence = maxConfidence
		}

		topics = append(topics, Topic{Label: label, Confidence: confidence, Evidence: evidence})
	}

	if len(topics) == 0 {
		return []Topic{defaultTopic()}
	}

	sort.SliceStable(topics, func(i, j int) bool {
		return topics[i].Confidence > topics[j].Confidence
	})

	return topics
}

// defaultTopic is the synthetic entry used when no category matches.
func defaultTopic() Topic {
	return Topic{Label: TopicCourseContent, Confidence: baseConfidence, Evidence: []string{}}
}

func containsAny(token string, words []string) bool {
	for _, word := range words {
		if strings.Contains(token, word) {
			return true
		}
	}
	return false
}
