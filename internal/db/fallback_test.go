package db

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

type doc struct {
	ID    string
	Value string
}

func stubOne(d *doc, err error) func(context.Context) (*doc, error) {
	return func(context.Context) (*doc, error) { return d, err }
}

func countingOne(calls *int, d *doc, err error) func(context.Context) (*doc, error) {
	return func(context.Context) (*doc, error) {
		*calls++
		return d, err
	}
}

func TestFindOneFallbackVersionedHit(t *testing.T) {
	legacyCalls := 0
	got, err := FindOneFallback(context.Background(), true,
		stubOne(&doc{ID: "1", Value: "versioned"}, nil),
		countingOne(&legacyCalls, &doc{ID: "1", Value: "legacy"}, nil),
	)
	if err != nil {
		t.Fatalf("FindOneFallback: %v", err)
	}
	if got == nil || got.Value != "versioned" {
		t.Fatalf("got %+v, want the versioned document", got)
	}
	if legacyCalls != 0 {
		t.Fatal("legacy read ran despite a versioned hit")
	}
}

func TestFindOneFallbackLegacyHit(t *testing.T) {
	got, err := FindOneFallback(context.Background(), true,
		stubOne(nil, mongo.ErrNoDocuments),
		stubOne(&doc{ID: "1", Value: "legacy"}, nil),
	)
	if err != nil {
		t.Fatalf("FindOneFallback: %v", err)
	}
	if got == nil || got.Value != "legacy" {
		t.Fatalf("got %+v, want the legacy document", got)
	}
}

func TestFindOneFallbackDisabled(t *testing.T) {
	legacyCalls := 0
	got, err := FindOneFallback(context.Background(), false,
		stubOne(nil, mongo.ErrNoDocuments),
		countingOne(&legacyCalls, &doc{ID: "1", Value: "legacy"}, nil),
	)
	if err != nil {
		t.Fatalf("FindOneFallback: %v", err)
	}
	if got != nil {
		t.Fatalf("got %+v, want nil with fallback disabled", got)
	}
	if legacyCalls != 0 {
		t.Fatal("legacy read ran with fallback disabled")
	}
}

func TestFindOneFallbackMissingEverywhere(t *testing.T) {
	got, err := FindOneFallback(context.Background(), true,
		stubOne(nil, mongo.ErrNoDocuments),
		stubOne(nil, mongo.ErrNoDocuments),
	)
	if err != nil {
		t.Fatalf("FindOneFallback: %v", err)
	}
	if got != nil {
		t.Fatalf("got %+v, want nil for a missing document", got)
	}
}

func TestFindOneFallbackSurfacesErrors(t *testing.T) {
	boom := errors.New("connection reset")
	if _, err := FindOneFallback(context.Background(), true,
		stubOne(nil, boom),
		stubOne(&doc{ID: "1"}, nil),
	); !errors.Is(err, boom) {
		t.Fatalf("error = %v, want the versioned read failure", err)
	}
}

func TestFindManyFallback(t *testing.T) {
	tests := []struct {
		name      string
		fallback  bool
		versioned []doc
		legacy    []doc
		want      string
		wantLen   int
	}{
		{"versioned wins when populated", true, []doc{{ID: "1", Value: "v"}}, []doc{{ID: "1", Value: "l"}}, "v", 1},
		{"empty versioned falls back", true, nil, []doc{{ID: "1", Value: "l"}, {ID: "2", Value: "l"}}, "l", 2},
		{"fallback disabled", false, nil, []doc{{ID: "1", Value: "l"}}, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindManyFallback(context.Background(), tt.fallback,
				func(context.Context) ([]doc, error) { return tt.versioned, nil },
				func(context.Context) ([]doc, error) { return tt.legacy, nil },
			)
			if err != nil {
				t.Fatalf("FindManyFallback: %v", err)
			}
			if len(got) != tt.wantLen {
				t.Fatalf("got %d docs, want %d", len(got), tt.wantLen)
			}
			if tt.wantLen > 0 && got[0].Value != tt.want {
				t.Fatalf("got[0].Value = %q, want %q", got[0].Value, tt.want)
			}
		})
	}
}

func TestIsMissingIndexErr(t *testing.T) {
	if IsMissingIndexErr(nil) {
		t.Fatal("nil error reported as missing index")
	}
	if IsMissingIndexErr(errors.New("plain")) {
		t.Fatal("plain error reported as missing index")
	}
	if !IsMissingIndexErr(mongo.CommandError{Code: 292}) {
		t.Fatal("code 292 not recognized")
	}
	if IsMissingIndexErr(mongo.CommandError{Code: 11000}) {
		t.Fatal("duplicate-key error misclassified as missing index")
	}
}
