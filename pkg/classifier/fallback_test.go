package classifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFallbackMixedSentimentIsNeutral(t *testing.T) {
	fallback := NewFallback()

	result, err := fallback.Classify(context.Background(), "great explanation but confusing projector")
	require.NoError(t, err)

	// One positive token (great) and one negative token (confusing) cancel out.
	require.Equal(t, SentimentNeutral, result.Sentiment.Label)
	require.InDelta(t, 0.0, result.Sentiment.Score, 1e-9)
	require.InDelta(t, 0.7, result.Sentiment.Confidence, 1e-9)
}

func TestFallbackNoLexiconMatches(t *testing.T) {
	fallback := NewFallback()

	result, err := fallback.Classify(context.Background(), "the weather was rainy yesterday")
	require.NoError(t, err)

	require.Equal(t, SentimentNeutral, result.Sentiment.Label)
	require.InDelta(t, 0.0, result.Sentiment.Score, 1e-9)
	require.InDelta(t, 0.5, result.Sentiment.Confidence, 1e-9)

	require.Len(t, result.Topics, 1)
	require.Equal(t, TopicCourseContent, result.Topics[0].Label)
	require.InDelta(t, 0.5, result.Topics[0].Confidence, 1e-9)
	require.Empty(t, result.Topics[0].Evidence)
}

func TestFallbackPositiveSentiment(t *testing.T) {
	fallback := NewFallback()

	result, err := fallback.Classify(context.Background(), "great lectures and excellent notes, helpful overall")
	require.NoError(t, err)

	require.Equal(t, SentimentPositive, result.Sentiment.Label)
	require.InDelta(t, 1.0, result.Sentiment.Score, 1e-9)
	require.InDelta(t, 0.8, result.Sentiment.Confidence, 1e-9)
}

func TestFallbackNegativeSentimentAndFlagging(t *testing.T) {
	fallback := NewFallback()

	result, err := fallback.Classify(context.Background(), "terrible and boring, the worst")
	require.NoError(t, err)

	require.Equal(t, SentimentNegative, result.Sentiment.Label)
	require.InDelta(t, -1.0, result.Sentiment.Score, 1e-9)
	require.True(t, result.Flagged())
}

func TestFallbackTopicsSortedAndEvidenced(t *testing.T) {
	fallback := NewFallback()

	result, err := fallback.Classify(context.Background(), "the projector in the lab never works and the professor cannot explain")
	require.NoError(t, err)

	require.NotEmpty(t, result.Topics)
	for i := 1; i < len(result.Topics); i++ {
		require.GreaterOrEqual(t, result.Topics[i-1].Confidence, result.Topics[i].Confidence)
	}

	labels := map[TopicLabel][]string{}
	for _, topic := range result.Topics {
		labels[topic.Label] = topic.Evidence
		require.NotEmpty(t, topic.Evidence)
	}

	require.Contains(t, labels, TopicInfrastructure)
	require.Contains(t, labels, TopicTeachingStyle)
	require.Contains(t, labels[TopicInfrastructure], "projector")
}

func TestFallbackConfidenceCapped(t *testing.T) {
	fallback := NewFallback()

	// Six positive tokens would push confidence past the cap.
	result, err := fallback.Classify(context.Background(), "good great excellent amazing wonderful helpful")
	require.NoError(t, err)
	require.InDelta(t, 0.95, result.Sentiment.Confidence, 1e-9)
}

func TestFallbackRangesAlwaysLegal(t *testing.T) {
	fallback := NewFallback()

	texts := []string{
		"good",
		"bad bad bad bad bad bad bad bad",
		"the library printing service and hostel mess were fine",
		"exam grading felt unfair and confusing but the teaching was great",
	}

	for _, text := range texts {
		result, err := fallback.Classify(context.Background(), text)
		require.NoError(t, err)

		require.GreaterOrEqual(t, result.Sentiment.Score, -1.0)
		require.LessOrEqual(t, result.Sentiment.Score, 1.0)
		require.GreaterOrEqual(t, result.Sentiment.Confidence, 0.0)
		require.LessOrEqual(t, result.Sentiment.Confidence, 1.0)

		require.NotEmpty(t, result.Topics)
		for _, topic := range result.Topics {
			require.True(t, ValidTopic(topic.Label))
			require.GreaterOrEqual(t, topic.Confidence, 0.0)
			require.LessOrEqual(t, topic.Confidence, 1.0)
		}
	}
}

func TestFallbackDeterministic(t *testing.T) {
	fallback := NewFallback()
	text := "the projector in the classroom is broken and the wifi is poor"

	first, err := fallback.Classify(context.Background(), text)
	require.NoError(t, err)

	second, err := fallback.Classify(context.Background(), text)
	require.NoError(t, err)

	require.Equal(t, first, second)
}
