package analyzer

import (
	"fmt"
	"unicode/utf8"

	"github.com/seo-optimizer/geochecker/document"
)

const (
	titleMinLength       = 30
	titleMaxLength       = 60
	descriptionMinLength = 120
	descriptionMaxLength = 160
)

func extractSEO(doc document.Document) SEOSignals {
	return SEOSignals{
		Title:            doc.FirstText("title"),
		Description:      doc.Attr(`meta[name="description"]`, "content"),
		OGTitle:          doc.Attr(`meta[property="og:title"]`, "content"),
		OGDescription:    doc.Attr(`meta[property="og:description"]`, "content"),
		H1Count:          doc.Count("h1"),
		H2Count:          doc.Count("h2"),
		TotalImages:      doc.Count("img"),
		ImagesWithoutAlt: doc.Count("img:not([alt])"),
	}
}

// scoreSEO starts at 100 and subtracts a fixed penalty per violated rule.
// Within a field only the first matching tier fires.
func scoreSEO(s SEOSignals) SEOReport {
	report := SEOReport{
		SEOSignals:        s,
		TitleLength:       utf8.RuneCountInString(s.Title),
		DescriptionLength: utf8.RuneCountInString(s.Description),
		Issues:            []Issue{},
		Recommendations:   []string{},
	}
	score := 100
	add := func(penalty int, issue Issue, rec string) {
		score -= penalty
		report.Issues = append(report.Issues, issue)
		report.Recommendations = append(report.Recommendations, rec)
	}

	switch {
	case report.TitleLength == 0:
		add(15, Issue{"Missing title tag", "The page has no title tag, which search engines use as the result headline.", High, Low},
			"Add a descriptive title tag")
	case report.TitleLength < titleMinLength:
		add(10, Issue{"Title is too short", fmt.Sprintf("The title is %d characters; aim for 50-60 characters.", report.TitleLength), Medium, Low},
			"Expand your title to 50-60 characters for better visibility")
	case report.TitleLength > titleMaxLength:
		add(5, Issue{"Title is too long", fmt.Sprintf("The title is %d characters and may be truncated in search results.", report.TitleLength), Low, Low},
			"Shorten title to 50-60 characters")
	}

	switch {
	case report.DescriptionLength == 0:
		add(15, Issue{"Missing meta description", "Search engines will generate a snippet from page content instead.", High, Low},
			"Add a compelling meta description (150-160 characters)")
	case report.DescriptionLength < descriptionMinLength:
		add(10, Issue{"Meta description is too short", fmt.Sprintf("The meta description is %d characters; aim for 150-160.", report.DescriptionLength), Medium, Low},
			"Expand description to 150-160 characters")
	case report.DescriptionLength > descriptionMaxLength:
		add(5, Issue{"Meta description is too long", fmt.Sprintf("The meta description is %d characters and may be cut off.", report.DescriptionLength), Low, Low},
			"Shorten description to 150-160 characters")
	}

	if s.OGTitle == "" || s.OGDescription == "" {
		add(10, Issue{"Missing Open Graph tags", "og:title and og:description control how the page looks when shared on social media.", Medium, Low},
			"Add Open Graph meta tags for better social media previews")
	}

	switch {
	case s.H1Count == 0:
		add(10, Issue{"No H1 heading found", "The page has no H1 heading describing its main topic.", High, Low},
			"Add exactly one H1 heading with your main keyword")
	case s.H1Count > 1:
		add(5, Issue{fmt.Sprintf("Multiple H1 headings found (%d)", s.H1Count), "More than one H1 dilutes the main topic of the page.", Medium, Low},
			"Use only one H1 heading per page")
	}

	if s.ImagesWithoutAlt > 0 {
		add(10, Issue{fmt.Sprintf("%d images missing alt text", s.ImagesWithoutAlt), "Images without alt text are invisible to search engines and screen readers.", Medium, Medium},
			"Add descriptive alt text to all images for accessibility and SEO")
	}

	report.Score = max(0, score)
	return report
}
