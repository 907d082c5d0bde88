package common

const (
	// RedisStreamCacheInvalidate carries scopes whose cached entry was replaced by the refresher.
	RedisStreamCacheInvalidate = "news.cache.invalidate"

	RedisCacheKeyPrefix = "news:cache:"

	ScopeAll            = "all"
	ScopeQueryPrefix    = "query:"
	ScopeCategoryPrefix = "category:"

	// MaxArticlesPerRequest is the hard ceiling for a single fetch-news call.
	MaxArticlesPerRequest = 25
	// AnalysisBatchSize bounds how many articles go into one generative call.
	AnalysisBatchSize = 25
)
