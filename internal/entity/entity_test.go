package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerdictForScoreBoundaries(t *testing.T) {
	assert.Equal(t, VerdictCredible, VerdictForScore(76))
	assert.Equal(t, VerdictSuspicious, VerdictForScore(75))
	assert.Equal(t, VerdictSuspicious, VerdictForScore(46))
	assert.Equal(t, VerdictLikelyFake, VerdictForScore(45))
	assert.Equal(t, VerdictLikelyFake, VerdictForScore(0))
}

func TestBadge(t *testing.T) {
	assert.Equal(t, "VERIFIED", Badge(90))
	assert.Equal(t, "SUSPICIOUS", Badge(50))
	assert.Equal(t, "UNVERIFIED", Badge(45))
}

func TestParseSentiment(t *testing.T) {
	assert.Equal(t, SentimentPositive, ParseSentiment(" Positive "))
	assert.Equal(t, SentimentNegative, ParseSentiment("NEGATIVE"))
	assert.Equal(t, SentimentNeutral, ParseSentiment("mixed"))
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("technology")
	assert.True(t, ok)
	assert.Equal(t, CategoryTechnology, c)

	_, ok = ParseCategory("Weather")
	assert.False(t, ok)
}

func TestParseEntityType(t *testing.T) {
	et, ok := ParseEntityType("Organization")
	assert.True(t, ok)
	assert.Equal(t, EntityOrganization, et)

	_, ok = ParseEntityType("event")
	assert.False(t, ok)
}

func TestBuildMarkers(t *testing.T) {
	paris := Location{City: "Paris", Country: "France", Lat: 48.85, Lng: 2.35}
	tokyo := Location{City: "Tokyo", Country: "Japan", Lat: 35.68, Lng: 139.69}
	articles := []NewsArticle{
		{ID: "a", Location: paris, SentimentScore: 0.9},
		{ID: "b", Location: tokyo, SentimentScore: 0.1},
		{ID: "c", Location: paris, SentimentScore: 0.95},
		{ID: "d", Location: tokyo, SentimentScore: 0.5},
	}

	markers := BuildMarkers(articles)
	if assert.Len(t, markers, 2) {
		assert.Equal(t, "Paris", markers[0].Location.City)
		assert.Equal(t, 2, markers[0].ArticleCount)
		assert.Equal(t, "c", markers[0].TopArticle.ID)
		assert.Equal(t, SentimentPositive, markers[0].Sentiment)
		assert.Equal(t, []string{"a", "c"}, markers[0].ArticleIDs)

		assert.Equal(t, "d", markers[1].TopArticle.ID)
		assert.Equal(t, SentimentNegative, markers[1].Sentiment)
	}
	assert.Empty(t, BuildMarkers(nil))
}
