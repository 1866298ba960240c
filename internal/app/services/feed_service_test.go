package services

import (
	"testing"

	"github.com/cphunt/backend/internal/app/models"
)

func TestFilterByTopic(t *testing.T) {
	launches := []models.Launch{
		{ID: "l1", ProductID: "p1"},
		{ID: "l2", ProductID: "p2"},
		{ID: "l3", ProductID: "missing"},
	}
	products := map[string]*models.Product{
		"p1": {ID: "p1", TopicSlugs: []string{"prayer", "liturgy"}},
		"p2": {ID: "p2", TopicSlugs: []string{"education"}},
	}

	tests := []struct {
		name  string
		topic string
		want  []string
	}{
		{name: "matching topic", topic: "prayer", want: []string{"l1"}},
		{name: "other topic", topic: "education", want: []string{"l2"}},
		{name: "unknown topic", topic: "sports", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := make([]models.Launch, len(launches))
			copy(in, launches)
			got := filterByTopic(in, products, tt.topic)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d launches, got %d", len(tt.want), len(got))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("launch %d: expected %s, got %s", i, id, got[i].ID)
				}
			}
		})
	}
}
