// Package generation classifies birth years into named generational cohorts.
package generation

import (
	"sort"
	"strconv"
	"strings"
)

// Cohort is a named generation with an inclusive birth-year range.
type Cohort struct {
	Name      string `json:"name" yaml:"name"`
	Nickname  string `json:"nickname" yaml:"nickname"`
	StartYear int    `json:"start_year" yaml:"start_year"`
	EndYear   int    `json:"end_year" yaml:"end_year"`
	Trait     string `json:"trait" yaml:"trait"`
}

// Contains reports whether year falls inside the cohort's range.
func (c Cohort) Contains(year int) bool {
	return year >= c.StartYear && year <= c.EndYear
}

// Source is a body that defines or popularizes generational labels.
type Source struct {
	Type     string `json:"type"`
	Examples string `json:"examples"`
	Role     string `json:"role"`
}

// ordered most recent first
var cohorts = []Cohort{
	{"Generation Alpha", "Alphas", 2013, 2025, "As children of Millennials, they are the first generation born entirely in the 21st century, completely integrated with technology from birth."},
	{"Generation Z", "Zoomers", 1997, 2012, "True digital natives who grew up with smartphones and social media as the norm, they value authenticity and social justice."},
	{"Millennials (Gen Y)", "Pioneers", 1981, 1996, "Digital pioneers who came of age during the internet explosion and were shaped by events like 9/11 and the 2008 recession."},
	{"Generation X", "Independents", 1965, 1980, "Bridged the gap between the analog and digital worlds, they grew up with a sense of independence as \"latchkey kids.\""},
	{"Baby Boomers", "Boomers", 1946, 1964, "A massive post-WWII generation associated with major social changes, economic optimism, and the Civil Rights Movement."},
	{"The Silent Generation", "Silents", 1928, 1945, "Growing up during the Great Depression and WWII, they are known for their conformity, thriftiness, and respect for authority."},
	{"The Greatest Generation", "Heroes", 1901, 1927, "Came of age during the Great Depression and went on to fight in World War II, characterized by resilience and civic duty."},
}

var sources = []Source{
	{"Primary Research Center", "Pew Research Center", "Establishes the standard birth year ranges and definitions based on extensive demographic analysis."},
	{"Sociologists & Demographers", "Strauss & Howe", "Originate generational theories and coin key terms (e.g., \"Millennial\")."},
	{"Marketing & Research Firms", "Nielsen, Gallup", "Study consumer and workplace behavior, shaping the business perception of each cohort."},
	{"Media & Authors", "Douglas Coupland", "Popularize the names, nicknames, and defining cultural traits (e.g., \"Generation X\")."},
	{"Government Agencies", "U.S. Census Bureau", "Provide the raw statistical and demographic data that other researchers use for their analysis."},
}

// Classify returns the first cohort whose range contains year.
func Classify(year int) (Cohort, bool) {
	for _, c := range cohorts {
		if c.Contains(year) {
			return c, true
		}
	}
	return Cohort{}, false
}

// ClassifyString classifies a textual year. Text that is not an integer
// classifies as nothing.
func ClassifyString(year string) (Cohort, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return Cohort{}, false
	}
	return Classify(n)
}

// ByNickname looks up a cohort by its nickname.
func ByNickname(nickname string) (Cohort, bool) {
	for _, c := range cohorts {
		if c.Nickname == nickname {
			return c, true
		}
	}
	return Cohort{}, false
}

// Cohorts returns a copy of the cohort table, most recent first.
func Cohorts() []Cohort {
	out := make([]Cohort, len(cohorts))
	copy(out, cohorts)
	return out
}

// SortCohorts returns the cohorts ordered by start year.
func SortCohorts(desc bool) []Cohort {
	out := Cohorts()
	sort.Slice(out, func(i, j int) bool {
		if desc {
			return out[i].StartYear > out[j].StartYear
		}
		return out[i].StartYear < out[j].StartYear
	})
	return out
}

// Sources returns a copy of the source table.
func Sources() []Source {
	out := make([]Source, len(sources))
	copy(out, sources)
	return out
}

// SortSources returns the sources ordered by type.
func SortSources(desc bool) []Source {
	out := Sources()
	sort.Slice(out, func(i, j int) bool {
		if desc {
			return out[i].Type > out[j].Type
		}
		return out[i].Type < out[j].Type
	})
	return out
}
