package models

import "time"

type RecommendRequest struct {
	UserInput        string `json:"user_input" validate:"required"`
	ContentType      string `json:"content_type" validate:"omitempty,oneof=tv movie podcast mixed"`
	CurrentMood      string `json:"current_mood" validate:"omitempty,max=100"`
	TimeAvailable    string `json:"time_available" validate:"omitempty,max=100"`
	ViewingSituation string `json:"viewing_situation" validate:"omitempty,max=100"`
	MaxResults       int    `json:"max_results" validate:"omitempty,min=1,max=10"`
}

// LiveContext maps the optional request fields onto context categories.
func (r RecommendRequest) LiveContext() map[string]string {
	ctx := map[string]string{}
	if r.CurrentMood != "" {
		ctx[ContextMood] = r.CurrentMood
	}
	if r.TimeAvailable != "" {
		ctx[ContextTime] = r.TimeAvailable
	}
	if r.ViewingSituation != "" {
		ctx[ContextSocial] = r.ViewingSituation
	}
	return ctx
}

type RecommendResponse struct {
	RequestID            string           `json:"request_id"`
	Recommendations      []Recommendation `json:"recommendations"`
	TasteProfile         *TasteProfile    `json:"taste_profile"`
	TotalRecommendations int              `json:"total_recommendations"`
	FormattedText        string           `json:"formatted_text"`
	AnalysisTimestamp    time.Time        `json:"analysis_timestamp"`
}

type ProfileRequest struct {
	UserInput   string `json:"user_input" validate:"required"`
	ContentType string `json:"content_type" validate:"omitempty,oneof=tv movie podcast mixed"`
}

type ProfileResponse struct {
	TasteProfile      *TasteProfile     `json:"taste_profile"`
	Analysis          ProfileAnalysis   `json:"analysis"`
	ExtractionQuality ExtractionQuality `json:"extraction_quality"`
	Summary           string            `json:"summary"`
	Timestamp         time.Time         `json:"timestamp"`
}

type BatchRecommendRequest struct {
	Requests []RecommendRequest `json:"requests" validate:"required,min=1,max=20,dive"`
}

type BatchItemResult struct {
	Result *RecommendResponse `json:"result,omitempty"`
	Error  string             `json:"error,omitempty"`
}

type BatchRecommendResponse struct {
	BatchID string            `json:"batch_id"`
	Results []BatchItemResult `json:"results"`
}

type ContextualRequest struct {
	UserInput   string `json:"user_input" validate:"required"`
	RequestType string `json:"request_type" validate:"required"`
}

type ContextualResponse struct {
	RequestType string    `json:"request_type"`
	Response    string    `json:"response"`
	Timestamp   time.Time `json:"timestamp"`
}

type CatalogEntry struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Platform    string   `json:"platform"`
	ContentType ItemType `json:"content_type"`
}
