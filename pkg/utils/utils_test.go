package utils

import (
	"context"
	"sync"
	"testing"
	"time"

	"golang-news-globe/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestSafeText(t *testing.T) {
	assert.Equal(t, "a b c", SafeText("  a\n\tb \x00 c  "))
	assert.Equal(t, "ok", SafeText("o\xffk"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "héll", Truncate("héllo", 4))
	assert.Equal(t, "hi", Truncate("hi", 10))
	assert.Equal(t, "", Truncate("hi", 0))
}

func TestContainsString(t *testing.T) {
	assert.True(t, ContainsString([]string{"Reuters", "BBC"}, "bbc"))
	assert.False(t, ContainsString(nil, "bbc"))
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", FirstNonEmpty("", "  ", "b", "c"))
	assert.Equal(t, "", FirstNonEmpty())
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `[{"a":1}]`, StripCodeFence("```json\n[{\"a\":1}]\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFence(`{"a":1}`))
}

func TestHoursSince(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 11, HoursSince(now.Add(-11*time.Hour-59*time.Minute), now))
	assert.Equal(t, 0, HoursSince(time.Time{}, now))
	assert.Equal(t, 0, HoursSince(now.Add(time.Hour), now))
}

func TestParseTimeOrNow(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	got := ParseTimeOrNow("2024-05-06T07:08:09Z", now)
	assert.Equal(t, time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC), got)
	assert.Equal(t, now, ParseTimeOrNow("garbage", now))
	assert.Equal(t, now, ParseTimeOrNow("", now))
}

func TestGoSafeRecovers(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	GoSafe(func() {
		defer wg.Done()
		panic("boom")
	})
	wg.Wait()
}

func TestShouldContinue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	assert.True(t, ShouldContinue(ctx, logger.NewNop()))
	cancel()
	assert.False(t, ShouldContinue(ctx, logger.NewNop()))
}
