package analyzer

import "slices"

// Compose merges both reports into the flat response. Slices are copied so
// later changes to the result never reach the reports.
func Compose(seo SEOReport, geo GeoReport) Result {
	metrics := geo.Metrics
	metrics.StructuredData.Schemas = slices.Clone(geo.Metrics.StructuredData.Schemas)
	if geo.Metrics.Entities != nil {
		e := *geo.Metrics.Entities
		metrics.Entities = &e
	}

	return Result{
		Score:             seo.Score,
		Title:             seo.Title,
		TitleLength:       seo.TitleLength,
		Description:       seo.Description,
		DescriptionLength: seo.DescriptionLength,
		OGTitle:           seo.OGTitle,
		OGDescription:     seo.OGDescription,
		H1Count:           seo.H1Count,
		H2Count:           seo.H2Count,
		ImagesWithoutAlt:  seo.ImagesWithoutAlt,
		TotalImages:       seo.TotalImages,
		Issues:            slices.Clone(seo.Issues),
		Recommendations:   slices.Clone(seo.Recommendations),

		GeoScore:           geo.Score,
		GeoIssues:          slices.Clone(geo.Issues),
		GeoRecommendations: slices.Clone(geo.Recommendations),
		GeoMetrics:         metrics,
	}
}
