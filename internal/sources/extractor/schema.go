package extractor

import "encoding/json"

// envelope is the top-level response of the extraction API.
type envelope struct {
	Status  any             `json:"status"`
	Message string          `json:"message,omitempty"`
	Result  json.RawMessage `json:"result"`
}

// wireResult is the raw "result" object. Pointer fields distinguish a
// missing member from its zero value.
type wireResult struct {
	URL       *string      `json:"url"`
	Title     *string      `json:"title"`
	Author    string       `json:"author"`
	Duration  *float64     `json:"duration"`
	Thumbnail string       `json:"thumbnail"`
	Medias    *[]wireMedia `json:"medias"`
}

type wireMedia struct {
	Type          string          `json:"type"`
	Extension     string          `json:"extension"`
	Quality       string          `json:"quality"`
	QualityLabel  string          `json:"qualityLabel"`
	URL           string          `json:"url"`
	ContentLength json.RawMessage `json:"contentLength,omitempty"` // string or number
}

// Result is a response that passed boundary validation.
type Result struct {
	URL             string
	Title           string
	Author          string
	DurationSeconds int
	Thumbnail       string
	Medias          []Media
}

// Media is one downloadable variant as reported by the API.
type Media struct {
	Type          string
	Extension     string
	Quality       string
	QualityLabel  string
	URL           string
	ContentLength int64
}
