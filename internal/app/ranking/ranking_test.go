package ranking

import (
	"math"
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func TestScoreMonotonicInUpvotes(t *testing.T) {
	launchDate := testNow.Add(-36 * time.Hour)
	prev := ScoreAt(0, 3, launchDate, testNow)
	for upvotes := 1; upvotes <= 50; upvotes++ {
		got := ScoreAt(upvotes, 3, launchDate, testNow)
		if got <= prev {
			t.Fatalf("score not strictly increasing at upvotes=%d: %v <= %v", upvotes, got, prev)
		}
		prev = got
	}
}

func TestScoreFreshnessDecay(t *testing.T) {
	ages := []time.Duration{
		2 * time.Hour,
		12 * time.Hour,
		24 * time.Hour,
		72 * time.Hour,
		168 * time.Hour,
		24 * 30 * time.Hour,
	}

	prev := math.Inf(1)
	for _, age := range ages {
		got := ScoreAt(20, 0, testNow.Add(-age), testNow)
		if got >= prev {
			t.Fatalf("score not strictly decreasing at age=%v: %v >= %v", age, got, prev)
		}
		if got <= 0 {
			t.Fatalf("decayed score reached zero at age=%v: %v", age, got)
		}
		prev = got
	}
}

func TestScoreCommentTermIgnoresAge(t *testing.T) {
	// Each extra comment is worth exactly 0.45 regardless of launch age.
	for _, age := range []time.Duration{time.Hour, 24 * time.Hour, 500 * time.Hour} {
		launchDate := testNow.Add(-age)
		for comments := 0; comments < 10; comments++ {
			base := ScoreAt(7, comments, launchDate, testNow)
			next := ScoreAt(7, comments+1, launchDate, testNow)
			if diff := math.Abs(next - base - 0.45); diff > 0.0011 {
				t.Fatalf("comment increment at age=%v comments=%d: got %v want 0.45", age, comments, next-base)
			}
		}
	}
}

func TestScoreDayOldLaunch(t *testing.T) {
	// 10 upvotes, 4 comments, 24h old: 10/24^0.2 + 4*0.45 ≈ 7.096.
	got := ScoreAt(10, 4, testNow.Add(-24*time.Hour), testNow)
	if math.Abs(got-7.096) > 0.01 {
		t.Fatalf("ScoreAt(10, 4, now-24h) = %v, want ≈7.096", got)
	}
}

func TestScoreFloorsAgeAtOneHour(t *testing.T) {
	justLaunched := ScoreAt(10, 0, testNow.Add(-time.Minute), testNow)
	oneHour := ScoreAt(10, 0, testNow.Add(-time.Hour), testNow)
	if justLaunched != oneHour {
		t.Fatalf("sub-hour launch scored %v, want age floored to 1h score %v", justLaunched, oneHour)
	}
}

func TestScoreGuardsBadDates(t *testing.T) {
	tests := []struct {
		name       string
		launchDate time.Time
	}{
		{"zero value", time.Time{}},
		{"future date", testNow.Add(48 * time.Hour)},
	}

	want := ScoreAt(5, 2, testNow, testNow)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreAt(5, 2, tt.launchDate, testNow)
			if math.IsNaN(got) || math.IsInf(got, 0) {
				t.Fatalf("score is not finite: %v", got)
			}
			if got != want {
				t.Fatalf("got %v, want same as just-launched score %v", got, want)
			}
		})
	}
}

func TestRankOrdersByScoreDescending(t *testing.T) {
	launches := []LaunchEngagement{
		{ID: "old-popular", LaunchDate: testNow.Add(-168 * time.Hour), Upvotes: 40, Comments: 2},
		{ID: "fresh-quiet", LaunchDate: testNow.Add(-2 * time.Hour), Upvotes: 3, Comments: 0},
		{ID: "fresh-popular", LaunchDate: testNow.Add(-3 * time.Hour), Upvotes: 30, Comments: 8},
	}

	ranked := RankAt(launches, testNow)
	if len(ranked) != 3 {
		t.Fatalf("got %d results, want 3", len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Fatalf("rank %d out of order: %v > %v", i, ranked[i].Score, ranked[i-1].Score)
		}
	}
	if ranked[0].Launch.ID != "fresh-popular" {
		t.Fatalf("top launch = %s, want fresh-popular", ranked[0].Launch.ID)
	}
}

func TestRankStableOnTies(t *testing.T) {
	// Identical inputs score identically; input order must survive.
	launchDate := testNow.Add(-10 * time.Hour)
	launches := []LaunchEngagement{
		{ID: "a", LaunchDate: launchDate, Upvotes: 5, Comments: 1},
		{ID: "b", LaunchDate: launchDate, Upvotes: 5, Comments: 1},
		{ID: "c", LaunchDate: launchDate, Upvotes: 5, Comments: 1},
		{ID: "top", LaunchDate: launchDate, Upvotes: 50, Comments: 1},
	}

	ranked := RankAt(launches, testNow)
	wantOrder := []string{"top", "a", "b", "c"}
	for i, want := range wantOrder {
		if ranked[i].Launch.ID != want {
			t.Fatalf("position %d = %s, want %s", i, ranked[i].Launch.ID, want)
		}
	}
}

func TestParseLaunchDate(t *testing.T) {
	tests := []struct {
		name string
		iso  string
		want time.Time
	}{
		{"valid", "2026-03-14T12:00:00Z", time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)},
		{"garbage", "not-a-date", testNow},
		{"empty", "", testNow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLaunchDate(tt.iso, testNow)
			if !got.Equal(tt.want) {
				t.Fatalf("ParseLaunchDate(%q) = %v, want %v", tt.iso, got, tt.want)
			}
		})
	}
}
