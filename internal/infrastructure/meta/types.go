package meta

import "strings"

// TokenResponse is the payload of a successful OAuth code exchange
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// PublishResponse carries the ID of a published post
type PublishResponse struct {
	ID string `json:"id"`
}

// InsightValue is a single metric datapoint
type InsightValue struct {
	Value int64 `json:"value"`
}

// Insight is one metric series from the insights edge
type Insight struct {
	Name   string         `json:"name"`
	Period string         `json:"period"`
	Values []InsightValue `json:"values"`
}

// PostInsights groups the metrics of one post
type PostInsights struct {
	PostID   string
	Insights []Insight
}

// Total sums the datapoints of the named metric, or 0 when absent
func (p *PostInsights) Total(metric string) int64 {
	for _, insight := range p.Insights {
		if insight.Name != metric {
			continue
		}
		var total int64
		for _, v := range insight.Values {
			total += v.Value
		}
		return total
	}
	return 0
}

// Comment is a single comment on a post
type Comment struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	FromName    string `json:"from_name"`
	CreatedTime string `json:"created_time"`
}

// LeadField is one answer from a lead ad form
type LeadField struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// LeadEntry is one submission of a lead ad form
type LeadEntry struct {
	ID          string      `json:"id"`
	CreatedTime string      `json:"created_time"`
	FieldData   []LeadField `json:"field_data"`
}

// Field returns the first value answered under the given field name,
// matching case-insensitively. Form builders are inconsistent about
// casing.
func (e LeadEntry) Field(name string) string {
	for _, field := range e.FieldData {
		if strings.EqualFold(field.Name, name) && len(field.Values) > 0 {
			return field.Values[0]
		}
	}
	return ""
}

type graphErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

type insightsEnvelope struct {
	Data []Insight `json:"data"`
}

type commentsEnvelope struct {
	Data []Comment `json:"data"`
}

type leadsEnvelope struct {
	Data []LeadEntry `json:"data"`
}
