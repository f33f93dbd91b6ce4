package classifier

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var fallbackTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pulse",
	Subsystem: "classifier",
	Name:      "fallback_total",
	Help:      "Number of classifications served by the offline classifier",
}, []string{"reason"})

const defaultRemoteTimeout = 10 * time.Second

// Facade is the single entry point for classification. It attempts the remote
// classifier under a bounded timeout and degrades to the offline classifier on
// any transport or schema failure; the substitution is invisible to callers.
type Facade struct {
	remote   Classifier
	fallback *Fallback
	timeout  time.Duration
	logger   zerolog.Logger
}

// NewFacade constructs the facade. remote may be nil, in which case every
// classification is served offline.
func NewFacade(remote Classifier, timeout time.Duration, logger zerolog.Logger) *Facade {
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}

	return &Facade{
		remote:   remote,
		fallback: NewFallback(),
		timeout:  timeout,
		logger:   logger.With().Str("component", "classifier_facade").Logger(),
	}
}

// Classify produces a normalized classification for text. It never fails:
// remote errors are swallowed and the offline result is returned instead.
func (f *Facade) Classify(ctx context.Context, text string) Classification {
	if f.remote != nil {
		remoteCtx, cancel := context.WithTimeout(ctx, f.timeout)
		result, err := f.remote.Classify(remoteCtx, text)
		cancel()

		if err == nil {
			return normalize(result)
		}

		reason := "remote_error"
		if errors.Is(err, ErrProviderNotImplemented) {
			reason = "provider_not_implemented"
		}

		fallbackTotal.WithLabelValues(reason).Inc()
		f.logger.Warn().Err(err).Msg("remote classification failed, using offline classifier")
	} else {
		fallbackTotal.WithLabelValues("no_remote").Inc()
	}

	result, _ := f.fallback.Classify(ctx, text)
	return normalize(result)
}

// normalize enforces the invariants every caller relies on: clamped numeric
// ranges, a known sentiment label, only valid categories, topics sorted
// descending by confidence, and a non-empty topic list.
func normalize(c Classification) Classification {
	if !ValidSentiment(c.Sentiment.Label) {
		c.Sentiment.Label = SentimentNeutral
	}

	c.Sentiment.Score = clamp(c.Sentiment.Score, -1, 1)
	c.Sentiment.Confidence = clamp(c.Sentiment.Confidence, 0, 1)

	topics := make([]Topic, 0, len(c.Topics))
	for _, topic := range c.Topics {
		if !ValidTopic(topic.Label) {
			continue
		}

		topic.Confidence = clamp(topic.Confidence, 0, 1)
		if topic.Evidence == nil {
			topic.Evidence = []string{}
		}

		topics = append(topics, topic)
	}

	if len(topics) == 0 {
		topics = append(topics, defaultTopic())
	}

	sort.SliceStable(topics, func(i, j int) bool {
		return topics[i].Confidence > topics[j].Confidence
	})

	c.Topics = topics
	return c
}
