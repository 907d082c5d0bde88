package entity

import (
	"fmt"
	"sort"
)

// GlobeMarker groups every article that shares a coordinate.
type GlobeMarker struct {
	Lat          float64     `json:"lat"`
	Lng          float64     `json:"lng"`
	Location     Location    `json:"location"`
	Sentiment    Sentiment   `json:"sentiment"`
	ArticleCount int         `json:"articleCount"`
	TopArticle   NewsArticle `json:"topArticle"`
	ArticleIDs   []string    `json:"articleIds"`
}

// BuildMarkers groups articles by identical lat/lng. The top article is the one with the highest
// sentiment score and the marker sentiment comes from the average score. Markers keep the order in
// which their coordinate first appears.
func BuildMarkers(articles []NewsArticle) []GlobeMarker {
	type group struct {
		marker GlobeMarker
		sum    float64
		first  int
	}
	groups := make(map[string]*group)
	for i, a := range articles {
		key := fmt.Sprintf("%.6f,%.6f", a.Location.Lat, a.Location.Lng)
		g, ok := groups[key]
		if !ok {
			g = &group{
				marker: GlobeMarker{Lat: a.Location.Lat, Lng: a.Location.Lng, Location: a.Location, TopArticle: a},
				first:  i,
			}
			groups[key] = g
		} else if a.SentimentScore > g.marker.TopArticle.SentimentScore {
			g.marker.TopArticle = a
		}
		g.sum += a.SentimentScore
		g.marker.ArticleCount++
		g.marker.ArticleIDs = append(g.marker.ArticleIDs, a.ID)
	}

	ordered := make([]*group, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].first < ordered[j].first })

	markers := make([]GlobeMarker, 0, len(ordered))
	for _, g := range ordered {
		avg := g.sum / float64(g.marker.ArticleCount)
		switch {
		case avg > 0.6:
			g.marker.Sentiment = SentimentPositive
		case avg < 0.4:
			g.marker.Sentiment = SentimentNegative
		default:
			g.marker.Sentiment = SentimentNeutral
		}
		markers = append(markers, g.marker)
	}
	return markers
}
