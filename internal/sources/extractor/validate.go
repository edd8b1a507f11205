package extractor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/MrSnakeDoc/ytdown/internal/domain"
)

// truthy follows the API's loose "status" field: booleans, non-zero numbers
// and non-empty strings other than "false"/"0" count as success.
func truthy(v any) bool {
	switch s := v.(type) {
	case bool:
		return s
	case float64:
		return s != 0
	case string:
		s = strings.TrimSpace(strings.ToLower(s))
		return s != "" && s != "false" && s != "0"
	default:
		return false
	}
}

// validate checks the result object against the boundary schema.
func validate(raw json.RawMessage) (*Result, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, fmt.Errorf("result is not an object")
	}

	var w wireResult
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("result does not match schema: %w", err)
	}

	switch {
	case w.URL == nil || strings.TrimSpace(*w.URL) == "":
		return nil, fmt.Errorf("result.url is missing")
	case w.Title == nil:
		return nil, fmt.Errorf("result.title is missing")
	case w.Duration == nil:
		return nil, fmt.Errorf("result.duration is missing")
	case *w.Duration < 0 || math.IsNaN(*w.Duration) || math.IsInf(*w.Duration, 0):
		return nil, fmt.Errorf("result.duration is invalid: %v", *w.Duration)
	case w.Medias == nil:
		return nil, fmt.Errorf("result.medias is missing")
	}

	medias := make([]Media, 0, len(*w.Medias))
	for i, m := range *w.Medias {
		if strings.TrimSpace(m.URL) == "" {
			return nil, fmt.Errorf("result.medias[%d].url is missing", i)
		}
		medias = append(medias, Media{
			Type:          m.Type,
			Extension:     m.Extension,
			Quality:       m.Quality,
			QualityLabel:  m.QualityLabel,
			URL:           m.URL,
			ContentLength: contentLength(m.ContentLength),
		})
	}

	return &Result{
		URL:             strings.TrimSpace(*w.URL),
		Title:           *w.Title,
		Author:          w.Author,
		DurationSeconds: int(math.Floor(*w.Duration)),
		Thumbnail:       w.Thumbnail,
		Medias:          medias,
	}, nil
}

// contentLength accepts "123", 123 or null.
func contentLength(raw json.RawMessage) int64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return 0
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		return domain.ParseContentLength(s)
	}
	return domain.ParseContentLength(string(raw))
}
