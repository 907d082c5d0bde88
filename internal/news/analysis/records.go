package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"golang-news-globe/internal/entity"
	"golang-news-globe/internal/news/dto"
	"golang-news-globe/pkg/utils"
)

const defaultCredibility = 70

// ParseRecords decodes the model reply as a JSON array of exactly want records.
func ParseRecords(reply string, want int) ([]dto.AnalysisRecord, error) {
	cleaned := utils.StripCodeFence(reply)
	if start := strings.Index(cleaned, "["); start > 0 {
		cleaned = cleaned[start:]
	}
	if end := strings.LastIndex(cleaned, "]"); end >= 0 && end < len(cleaned)-1 {
		cleaned = cleaned[:end+1]
	}

	var records []dto.AnalysisRecord
	if err := json.Unmarshal([]byte(cleaned), &records); err != nil {
		return nil, fmt.Errorf("failed to decode analysis array: %w", err)
	}
	if len(records) != want {
		return nil, fmt.Errorf("analysis returned %d records, want %d", len(records), want)
	}
	return records, nil
}

// DefaultRecord is used for an article whose batch could not be analyzed.
func DefaultRecord(raw dto.RawArticle, category entity.Category) dto.AnalysisRecord {
	loc := entity.DefaultLocation()
	return dto.AnalysisRecord{
		Sentiment:        string(entity.SentimentNeutral),
		SentimentScore:   0.5,
		CredibilityScore: defaultCredibility,
		AISummary:        raw.Description,
		Entities:         []entity.NamedEntity{},
		Category:         string(category),
		Location: dto.LocationRecord{
			City:      loc.City,
			Country:   loc.Country,
			Continent: loc.Continent,
			State:     raw.Region,
		},
	}
}

// Normalize coerces a model record into valid ranges and known enum values.
func Normalize(rec dto.AnalysisRecord, raw dto.RawArticle, fallback entity.Category) dto.AnalysisRecord {
	out := rec
	out.Sentiment = string(entity.ParseSentiment(rec.Sentiment))
	out.SentimentScore = clamp(finiteOr(rec.SentimentScore, 0.5), 0, 1)
	out.CredibilityScore = math.Round(clamp(finiteOr(rec.CredibilityScore, defaultCredibility), 0, 100))
	if c, ok := entity.ParseCategory(rec.Category); ok {
		out.Category = string(c)
	} else {
		out.Category = string(fallback)
	}
	out.AISummary = utils.FirstNonEmpty(strings.TrimSpace(rec.AISummary), raw.Description)
	out.Entities = NormalizeEntities(rec.Entities)

	out.Location.City = utils.FirstNonEmpty(strings.TrimSpace(rec.Location.City), entity.UnknownLocation)
	out.Location.Country = utils.FirstNonEmpty(strings.TrimSpace(rec.Location.Country), entity.UnknownLocation)
	out.Location.Continent = utils.FirstNonEmpty(strings.TrimSpace(rec.Location.Continent), entity.UnknownLocation)
	out.Location.State = utils.FirstNonEmpty(strings.TrimSpace(rec.Location.State), raw.Region)
	out.Location.Lat = clamp(finiteOr(rec.Location.Lat, 0), -90, 90)
	out.Location.Lng = clamp(finiteOr(rec.Location.Lng, 0), -180, 180)
	return out
}

// NormalizeEntities drops blank entities and those with an unknown type.
func NormalizeEntities(in []entity.NamedEntity) []entity.NamedEntity {
	out := make([]entity.NamedEntity, 0, len(in))
	for _, e := range in {
		text := strings.TrimSpace(e.Text)
		if text == "" {
			continue
		}
		t, ok := entity.ParseEntityType(string(e.Type))
		if !ok {
			continue
		}
		out = append(out, entity.NamedEntity{Text: text, Type: t})
	}
	return out
}

// Zip combines a raw article with its analysis record.
func Zip(id string, raw dto.RawArticle, rec dto.AnalysisRecord, fetchedAt time.Time) entity.NewsArticle {
	return entity.NewsArticle{
		ID:               id,
		Title:            raw.Title,
		Description:      raw.Description,
		Content:          raw.Content,
		URL:              raw.URL,
		Image:            raw.Image,
		PublishedAt:      raw.PublishedAt,
		Source:           raw.Source,
		Provider:         raw.Provider,
		Sentiment:        entity.ParseSentiment(rec.Sentiment),
		SentimentScore:   rec.SentimentScore,
		CredibilityScore: int(math.Round(rec.CredibilityScore)),
		Category:         entity.Category(rec.Category),
		Entities:         rec.Entities,
		Location: entity.Location{
			City:      rec.Location.City,
			District:  rec.Location.District,
			State:     rec.Location.State,
			Country:   rec.Location.Country,
			Continent: rec.Location.Continent,
			Lat:       rec.Location.Lat,
			Lng:       rec.Location.Lng,
		},
		AISummary: rec.AISummary,
		FetchedAt: fetchedAt,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
