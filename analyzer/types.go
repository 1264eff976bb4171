package analyzer

import "github.com/seo-optimizer/geochecker/nlp"

// Level grades an issue's impact or the effort needed to fix it.
type Level string

const (
	High   Level = "high"
	Medium Level = "medium"
	Low    Level = "low"
)

// Issue is a single detected problem.
type Issue struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      Level  `json:"impact"`
	Effort      Level  `json:"effort"`
}

// SEOSignals are the on-page values the SEO rules look at.
type SEOSignals struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	OGTitle          string `json:"ogTitle"`
	OGDescription    string `json:"ogDescription"`
	H1Count          int    `json:"h1Count"`
	H2Count          int    `json:"h2Count"`
	TotalImages      int    `json:"totalImages"`
	ImagesWithoutAlt int    `json:"imagesWithoutAlt"`
}

// SEOReport is the outcome of the traditional SEO rules.
type SEOReport struct {
	SEOSignals
	Score             int      `json:"score"`
	TitleLength       int      `json:"titleLength"`
	DescriptionLength int      `json:"descriptionLength"`
	Issues            []Issue  `json:"issues"`
	Recommendations   []string `json:"recommendations"`
}

// StructuredData summarizes the JSON-LD blocks of a page.
type StructuredData struct {
	HasJSONLD   bool     `json:"hasJsonLd"`
	ScriptCount int      `json:"scriptCount"`
	Schemas     []string `json:"schemas"`
}

// MainContent reports the primary article block. Display only.
type MainContent struct {
	Title  string  `json:"title"`
	Length int     `json:"length"`
	Share  float64 `json:"share"`
}

// GeoMetrics are the intermediate GEO measurements, shaped for the results
// page. Ratios and formula outputs are pre-formatted strings.
type GeoMetrics struct {
	HeadingHierarchyScore  float64        `json:"headingHierarchyScore"`
	TotalParagraphs        int            `json:"totalParagraphs"`
	OptimalParagraphs      int            `json:"optimalParagraphs"`
	ParagraphScore         float64        `json:"paragraphScore"`
	Lists                  int            `json:"lists"`
	Tables                 int            `json:"tables"`
	StructuredContentScore float64        `json:"structuredContentScore"`
	ContentToCodeRatio     string         `json:"contentToCodeRatio"`
	ContentToCodeScore     float64        `json:"contentToCodeScore"`
	ReadabilityScore       string         `json:"readabilityScore,omitempty"`
	GradeLevel             string         `json:"gradeLevel,omitempty"`
	Entities               *nlp.Entities  `json:"entities,omitempty"`
	EntityDensity          string         `json:"entityDensity,omitempty"`
	Questions              int            `json:"questions"`
	KeywordDensity         string         `json:"keywordDensity,omitempty"`
	StructuredData         StructuredData `json:"structuredData"`
	Definitions            int            `json:"definitions"`
	Examples               int            `json:"examples"`
	TopicSentenceScore     float64        `json:"topicSentenceScore"`
	MainContent            MainContent    `json:"mainContent"`
}

// GeoReport is the outcome of the GEO rules.
type GeoReport struct {
	Score           int        `json:"geoScore"`
	Metrics         GeoMetrics `json:"geoMetrics"`
	Issues          []Issue    `json:"geoIssues"`
	Recommendations []string   `json:"geoRecommendations"`
}

// Result is the flat response handed to the presentation layer.
type Result struct {
	Score             int      `json:"score"`
	Title             string   `json:"title"`
	TitleLength       int      `json:"titleLength"`
	Description       string   `json:"description"`
	DescriptionLength int      `json:"descriptionLength"`
	OGTitle           string   `json:"ogTitle"`
	OGDescription     string   `json:"ogDescription"`
	H1Count           int      `json:"h1Count"`
	H2Count           int      `json:"h2Count"`
	ImagesWithoutAlt  int      `json:"imagesWithoutAlt"`
	TotalImages       int      `json:"totalImages"`
	Issues            []Issue  `json:"issues"`
	Recommendations   []string `json:"recommendations"`

	GeoScore           int        `json:"geoScore"`
	GeoIssues          []Issue    `json:"geoIssues"`
	GeoRecommendations []string   `json:"geoRecommendations"`
	GeoMetrics         GeoMetrics `json:"geoMetrics"`

	Priorities []PriorityGroup `json:"priorities"`
}
