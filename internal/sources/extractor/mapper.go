package extractor

import "github.com/MrSnakeDoc/ytdown/internal/domain"

// ToVideoResult normalizes a validated API result into the view model.
func ToVideoResult(r *Result) domain.VideoResult {
	medias := make([]domain.MediaVariant, 0, len(r.Medias))
	for _, m := range r.Medias {
		medias = append(medias, domain.MediaVariant{
			Type:          m.Type,
			Extension:     m.Extension,
			Quality:       m.Quality,
			QualityLabel:  m.QualityLabel,
			URL:           m.URL,
			ContentLength: m.ContentLength,
		})
	}

	return domain.VideoResult{
		ID:              domain.VideoID(r.URL),
		SourceURL:       r.URL,
		Title:           r.Title,
		Author:          r.Author,
		Duration:        domain.FormatDuration(r.DurationSeconds),
		DurationSeconds: r.DurationSeconds,
		Thumbnail:       r.Thumbnail,
		Medias:          medias,
	}
}
