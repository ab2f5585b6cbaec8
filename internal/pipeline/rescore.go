package pipeline

import (
	"aineoo/internal/article"
	"aineoo/internal/assets"
	"aineoo/internal/quality"
	"aineoo/internal/render"
	"time"
)

// Rescore renders a stored article and evaluates it. Uploaded URLs are used
// when present, otherwise images are referenced by their local path.
func Rescore(a *article.Article, rec *assets.Record, now time.Time) (quality.Report, error) {
	images := make([]article.MediaRef, 0, len(a.Images))
	for _, img := range a.Images {
		if img.URL == "" && img.LocalPath != "" {
			img.URL = img.LocalPath
		}
		images = append(images, img)
	}

	var videoURL string
	switch {
	case a.Avatar != nil && a.Avatar.URL != "":
		videoURL = a.Avatar.URL
	case a.Video != nil && a.Video.URL != "":
		videoURL = a.Video.URL
	}

	canonical := "/" + a.Slug + "/"
	var categories, tags int
	if rec != nil {
		if rec.Link != "" {
			canonical = rec.Link
		}
		categories = len(rec.CategoryIDs)
		tags = len(rec.TagIDs)
	}

	html, err := render.BuildContentHTML(render.Input{
		Article:      a,
		Images:       images,
		VideoURL:     videoURL,
		CanonicalURL: canonical,
		Published:    now,
	})
	if err != nil {
		return quality.Report{}, err
	}

	return quality.Evaluate(quality.Input{
		Article:       a,
		HTML:          html,
		ImageCount:    len(a.ContentImages()),
		CategoryCount: categories,
		TagCount:      tags,
	}), nil
}
