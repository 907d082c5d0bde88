package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Sentiment is the tone the analysis assigned to an article.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// ParseSentiment maps free-form model output to a Sentiment; anything unknown is neutral.
func ParseSentiment(s string) Sentiment {
	switch Sentiment(normalizeWord(s)) {
	case SentimentPositive:
		return SentimentPositive
	case SentimentNegative:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// Category is one of the fixed topical buckets shown on the globe.
type Category string

const (
	CategoryPolitics      Category = "Politics"
	CategoryTechnology    Category = "Technology"
	CategorySports        Category = "Sports"
	CategoryHealth        Category = "Health"
	CategoryScience       Category = "Science"
	CategoryBusiness      Category = "Business"
	CategoryEntertainment Category = "Entertainment"
	CategoryEnvironment   Category = "Environment"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryPolitics,
	CategoryTechnology,
	CategorySports,
	CategoryHealth,
	CategoryScience,
	CategoryBusiness,
	CategoryEntertainment,
	CategoryEnvironment,
}

// ParseCategory matches s case-insensitively against the known categories.
func ParseCategory(s string) (Category, bool) {
	w := normalizeWord(s)
	for _, c := range Categories {
		if normalizeWord(string(c)) == w {
			return c, true
		}
	}
	return "", false
}

// EntityType classifies a named entity.
type EntityType string

const (
	EntityPerson       EntityType = "person"
	EntityPlace        EntityType = "place"
	EntityOrganization EntityType = "organization"
)

// ParseEntityType returns false for types outside person/place/organization.
func ParseEntityType(s string) (EntityType, bool) {
	switch EntityType(normalizeWord(s)) {
	case EntityPerson, EntityPlace, EntityOrganization:
		return EntityType(normalizeWord(s)), true
	}
	return "", false
}

// NamedEntity is a person, place or organization mentioned in an article.
type NamedEntity struct {
	Text string     `json:"text"`
	Type EntityType `json:"type"`
}

const UnknownLocation = "Unknown"

// Location is where the analysis placed an article on the globe.
type Location struct {
	City      string  `gorm:"column:city" json:"city"`
	District  string  `gorm:"column:district" json:"district,omitempty"`
	State     string  `gorm:"column:state" json:"state,omitempty"`
	Country   string  `gorm:"column:country" json:"country"`
	Continent string  `gorm:"column:continent" json:"continent"`
	Lat       float64 `gorm:"column:lat" json:"lat"`
	Lng       float64 `gorm:"column:lng" json:"lng"`
}

// DefaultLocation is used when the analysis could not place an article.
func DefaultLocation() Location {
	return Location{
		City:      UnknownLocation,
		Country:   UnknownLocation,
		Continent: UnknownLocation,
	}
}

// NewsArticle is an analyzed article as served to clients and persisted per fetch batch.
type NewsArticle struct {
	ID               string                           `gorm:"primaryKey;type:uuid" json:"id"`
	Scope            string                           `gorm:"index;not null" json:"-"`
	BatchID          string                           `gorm:"index;type:uuid" json:"-"`
	Position         int                              `json:"-"`
	Title            string                           `gorm:"not null" json:"headline"`
	Description      string                           `json:"description"`
	Content          string                           `json:"content"`
	URL              string                           `gorm:"column:url" json:"url"`
	Image            string                           `json:"image,omitempty"`
	PublishedAt      time.Time                        `json:"publishedAt"`
	Source           string                           `json:"source"`
	Provider         string                           `json:"provider,omitempty"`
	Sentiment        Sentiment                        `json:"sentiment"`
	SentimentScore   float64                          `json:"sentimentScore"`
	CredibilityScore int                              `json:"credibilityScore"`
	Category         Category                         `json:"category"`
	Entities         datatypes.JSONSlice[NamedEntity] `gorm:"type:jsonb" json:"entities"`
	Location         Location                         `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	AISummary        string                           `gorm:"column:ai_summary" json:"aiSummary"`
	FetchedAt        time.Time                        `json:"fetchedAt"`
}

// TableName specifies the table name for the NewsArticle model.
func (NewsArticle) TableName() string {
	return "news_articles"
}
