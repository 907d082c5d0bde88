package repository

import (
	"fmt"
	"strings"

	"golang-news-globe/internal/news/dto"
	"golang-news-globe/pkg/utils"
)

const batchContentLimit = 1500

const analysisFields = `- sentiment: "positive", "negative", or "neutral"
- sentimentScore: number 0-1
- credibilityScore: number 0-100
- aiSummary: a 2-sentence summary
- entities: array of {text: string, type: "person"|"place"|"organization"}
- category: one of "Politics", "Technology", "Sports", "Health", "Science", "Business", "Entertainment", "Environment"
- location: {city: string, state: string, country: string, continent: string, lat: number, lng: number}`

// BuildBatchAnalysisPrompt asks for a JSON array with exactly one element per article, in order.
func BuildBatchAnalysisPrompt(articles []dto.RawArticle) string {
	blocks := make([]string, 0, len(articles))
	for i, a := range articles {
		blocks = append(blocks, fmt.Sprintf("[Article %d]\nTitle: %s\nDescription: %s\nContent: %s",
			i, a.Title, a.Description, utils.Truncate(a.BestText(), batchContentLimit)))
	}

	return fmt.Sprintf(`You are a news analysis AI. You will receive multiple articles. For EACH article, return analysis in a JSON array.
Each element must have:
%s

Return ONLY a valid JSON array with exactly %d elements, one per article in order. No markdown.

Analyze these %d articles:

%s`, analysisFields, len(articles), len(articles), strings.Join(blocks, "\n\n---\n\n"))
}

// BuildCredibilityPrompt asks the model for a credibility judgment of a single text.
func BuildCredibilityPrompt(title, text string) string {
	return fmt.Sprintf(`You are a fake news detection AI. Analyze the article for credibility. Return JSON with:
- credibilityScore: 0-100
- verdict: "credible", "suspicious", or "likely_fake"
- explanation: 1-2 sentences explaining your assessment
- redFlags: array of strings listing any concerns

Return ONLY valid JSON, no markdown.

Check credibility:
Title: %s
Content: %s`, title, text)
}

// BuildSummaryPrompt asks for a short summary and the named entities of a text.
func BuildSummaryPrompt(title, text string) string {
	return fmt.Sprintf(`You are a news summarization AI. Return JSON with:
- summary: 2-sentence summary
- entities: array of {text: string, type: "person"|"place"|"organization"}

Return ONLY valid JSON, no markdown.

Summarize:
Title: %s
Content: %s`, title, text)
}
