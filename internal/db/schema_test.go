package db

import "testing"

func TestSchemaNames(t *testing.T) {
	schema := NewSchema("v1", true)

	if got := schema.Namespace(); got != "cph_v1" {
		t.Fatalf("Namespace() = %q, want cph_v1", got)
	}
	if got := schema.VersionedName(CollEventApplications); got != "cph_v1_eventApplications" {
		t.Fatalf("VersionedName() = %q", got)
	}
	if got := schema.LegacyName(CollEventApplications); got != "eventApplications" {
		t.Fatalf("LegacyName() = %q", got)
	}
}

func TestAllCollectionKeysCovered(t *testing.T) {
	keys := AllCollectionKeys()
	if len(keys) != 10 {
		t.Fatalf("AllCollectionKeys() returned %d keys", len(keys))
	}
	seen := map[CollectionKey]struct{}{}
	for _, key := range keys {
		if _, dup := seen[key]; dup {
			t.Fatalf("duplicate key %s", key)
		}
		seen[key] = struct{}{}
	}
}
