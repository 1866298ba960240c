// Package ranking scores and orders launch feed entries. It combines raw
// upvotes, comment velocity, and a power-law freshness decay into a single
// popularity score. The package is pure: no storage, no clocks beyond the
// caller-provided reference time.
package ranking

import (
	"math"
	"sort"
	"time"
)

const (
	upvoteWeight  = 1.0
	commentWeight = 0.45
	decayExponent = 0.2
	// minAgeHours floors the launch age so a just-launched item does not
	// blow up the decay term.
	minAgeHours = 1.0
)

// LaunchEngagement is an immutable engagement snapshot for one launch.
type LaunchEngagement struct {
	ID         string    `json:"id"`
	LaunchDate time.Time `json:"launchDate"`
	Upvotes    int       `json:"upvotes"`
	Comments   int       `json:"comments"`
}

// RankedLaunch pairs a launch with its computed score.
type RankedLaunch struct {
	Launch LaunchEngagement `json:"launch"`
	Score  float64          `json:"score"`
}

// ScoreAt computes the popularity score of a launch as of now. Freshness
// decay applies to the upvote term only: comments indicate ongoing
// engagement regardless of age.
func ScoreAt(upvotes, comments int, launchDate time.Time, now time.Time) float64 {
	// Zero or future launch dates are treated as "now" so a malformed
	// timestamp never produces a NaN that would sort unpredictably.
	if launchDate.IsZero() || launchDate.After(now) {
		launchDate = now
	}

	ageHours := math.Max(now.Sub(launchDate).Hours(), minAgeHours)
	freshnessDecay := 1 / math.Pow(ageHours, decayExponent)

	score := float64(upvotes)*upvoteWeight*freshnessDecay + float64(comments)*commentWeight
	return math.Round(score*1000) / 1000
}

// Score computes the popularity score of a launch as of the current time.
func Score(upvotes, comments int, launchDate time.Time) float64 {
	return ScoreAt(upvotes, comments, launchDate, time.Now())
}

// RankAt orders launches by descending score as of now. The sort is stable:
// exact ties keep their input order, there is no secondary key.
func RankAt(launches []LaunchEngagement, now time.Time) []RankedLaunch {
	ranked := make([]RankedLaunch, len(launches))
	for i, launch := range launches {
		ranked[i] = RankedLaunch{
			Launch: launch,
			Score:  ScoreAt(launch.Upvotes, launch.Comments, launch.LaunchDate, now),
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}

// Rank orders launches by descending score as of the current time.
func Rank(launches []LaunchEngagement) []RankedLaunch {
	return RankAt(launches, time.Now())
}

// ParseLaunchDate parses an RFC 3339 launch date, falling back to now when
// the value is unparseable.
func ParseLaunchDate(iso string, now time.Time) time.Time {
	parsed, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return now
	}
	return parsed
}
