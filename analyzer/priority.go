package analyzer

// Quadrant places an issue on the impact/effort matrix.
type Quadrant string

const (
	QuickWin   Quadrant = "quick-win"
	Strategic  Quadrant = "strategic"
	NiceToHave Quadrant = "nice-to-have"
	Avoid      Quadrant = "avoid"
)

var quadrantOrder = []Quadrant{QuickWin, Strategic, NiceToHave, Avoid}

// Source tells which rule set raised an issue.
type Source string

const (
	SourceSEO Source = "seo"
	SourceGEO Source = "geo"
)

// PrioritizedIssue is an issue tagged with the rule set that raised it.
type PrioritizedIssue struct {
	Issue
	Source Source `json:"source"`
}

// PriorityGroup lists the issues of one quadrant.
type PriorityGroup struct {
	Quadrant Quadrant           `json:"quadrant"`
	Issues   []PrioritizedIssue `json:"issues"`
}

// QuadrantOf classifies an issue. Medium counts as high impact and as low
// effort.
func QuadrantOf(i Issue) Quadrant {
	highImpact := i.Impact == High || i.Impact == Medium
	lowEffort := i.Effort == Low || i.Effort == Medium
	switch {
	case highImpact && lowEffort:
		return QuickWin
	case highImpact:
		return Strategic
	case lowEffort:
		return NiceToHave
	default:
		return Avoid
	}
}

// Prioritize groups SEO then GEO issues by quadrant. Empty quadrants are
// omitted and issue order within a quadrant is preserved.
func Prioritize(seo, geo []Issue) []PriorityGroup {
	buckets := make(map[Quadrant][]PrioritizedIssue, len(quadrantOrder))
	add := func(issues []Issue, src Source) {
		for _, i := range issues {
			q := QuadrantOf(i)
			buckets[q] = append(buckets[q], PrioritizedIssue{Issue: i, Source: src})
		}
	}
	add(seo, SourceSEO)
	add(geo, SourceGEO)

	groups := []PriorityGroup{}
	for _, q := range quadrantOrder {
		if len(buckets[q]) > 0 {
			groups = append(groups, PriorityGroup{Quadrant: q, Issues: buckets[q]})
		}
	}
	return groups
}
