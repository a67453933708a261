package stream

import (
	"context"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/ontomap/store"
)

func refAttr(id, class string) events.DynamoDBAttributeValue {
	return events.NewMapAttribute(map[string]events.DynamoDBAttributeValue{
		"_ref":   events.NewStringAttribute(id),
		"_class": events.NewStringAttribute(class),
	})
}

func listAttr(refs ...events.DynamoDBAttributeValue) events.DynamoDBAttributeValue {
	return events.NewListAttribute(refs)
}

func TestOrphanedRefs(t *testing.T) {
	pivot := "http://example.org/ListItem"

	tests := []struct {
		name     string
		oldImage map[string]events.DynamoDBAttributeValue
		newImage map[string]events.DynamoDBAttributeValue
		expected []string
	}{
		{
			name: "full replacement orphans all old refs",
			oldImage: map[string]events.DynamoDBAttributeValue{
				"cars": listAttr(refAttr("p1", pivot), refAttr("p2", pivot)),
			},
			newImage: map[string]events.DynamoDBAttributeValue{
				"cars": listAttr(refAttr("p3", pivot)),
			},
			expected: []string{"p1", "p2"},
		},
		{
			name: "kept refs are not orphaned",
			oldImage: map[string]events.DynamoDBAttributeValue{
				"cars": listAttr(refAttr("p1", pivot), refAttr("p2", pivot)),
			},
			newImage: map[string]events.DynamoDBAttributeValue{
				"cars": listAttr(refAttr("p2", pivot)),
			},
			expected: []string{"p1"},
		},
		{
			name: "attribute removed entirely",
			oldImage: map[string]events.DynamoDBAttributeValue{
				"cars": listAttr(refAttr("p1", pivot)),
			},
			newImage: map[string]events.DynamoDBAttributeValue{},
			expected: []string{"p1"},
		},
		{
			name: "unchanged image yields nothing",
			oldImage: map[string]events.DynamoDBAttributeValue{
				"cars": listAttr(refAttr("p1", pivot)),
			},
			newImage: map[string]events.DynamoDBAttributeValue{
				"cars": listAttr(refAttr("p1", pivot)),
			},
		},
		{
			name: "scalar attributes are ignored",
			oldImage: map[string]events.DynamoDBAttributeValue{
				"entity_name": events.NewStringAttribute("pluto"),
			},
			newImage: map[string]events.DynamoDBAttributeValue{
				"entity_name": events.NewStringAttribute("goofy"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orphans := orphanedRefs(tt.oldImage, tt.newImage)
			ids := make(map[string]bool, len(orphans))
			for _, o := range orphans {
				ids[o.ID] = true
			}
			if len(orphans) != len(tt.expected) {
				t.Fatalf("expected %d orphans, got %d (%v)", len(tt.expected), len(orphans), orphans)
			}
			for _, id := range tt.expected {
				if !ids[id] {
					t.Errorf("expected %s among orphans %v", id, orphans)
				}
			}
		})
	}
}

func TestRefsInAttr(t *testing.T) {
	refs := refsInAttr(listAttr(
		refAttr("p1", "C"),
		events.NewStringAttribute("not a ref"),
		refAttr("p2", "D"),
	))
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d", len(refs))
	}
	if refs[0] != (store.Individual{ID: "p1", Class: "C"}) {
		t.Errorf("unexpected first ref %+v", refs[0])
	}
	if refs[1] != (store.Individual{ID: "p2", Class: "D"}) {
		t.Errorf("unexpected second ref %+v", refs[1])
	}

	if got := refsInAttr(events.NewStringAttribute("scalar")); got != nil {
		t.Errorf("expected nil for non-list attribute, got %v", got)
	}
}

func TestRefInAttr(t *testing.T) {
	tests := []struct {
		name string
		av   events.DynamoDBAttributeValue
		ok   bool
	}{
		{"well-formed reference", refAttr("p1", "C"), true},
		{"not a map", events.NewStringAttribute("x"), false},
		{
			name: "map without markers",
			av: events.NewMapAttribute(map[string]events.DynamoDBAttributeValue{
				"foo": events.NewStringAttribute("bar"),
			}),
		},
		{
			name: "markers of wrong type",
			av: events.NewMapAttribute(map[string]events.DynamoDBAttributeValue{
				"_ref":   events.NewNumberAttribute("1"),
				"_class": events.NewStringAttribute("C"),
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := refInAttr(tt.av)
			if ok != tt.ok {
				t.Errorf("expected ok=%v, got %v", tt.ok, ok)
			}
		})
	}
}

func TestNewSweeperDefaults(t *testing.T) {
	s := NewSweeper(nil, []store.Name{"C"}, nil)
	if s.logger == nil {
		t.Error("expected default logger")
	}
	if _, ok := s.pivotClasses["C"]; !ok {
		t.Error("expected pivot class registered")
	}
}

func TestProcessRecordSkipsNonModify(t *testing.T) {
	s := NewSweeper(nil, nil, nil)

	for _, eventName := range []string{"INSERT", "REMOVE"} {
		record := events.DynamoDBEventRecord{
			EventName: eventName,
			Change: events.DynamoDBStreamRecord{
				OldImage: map[string]events.DynamoDBAttributeValue{
					"cars": listAttr(refAttr("p1", "C")),
				},
			},
		}
		if err := s.processRecord(context.Background(), record); err != nil {
			t.Errorf("%s: expected nil error, got %v", eventName, err)
		}
	}
}

func TestProcessRecordIgnoresNonPivotClasses(t *testing.T) {
	// store is nil: the test passes only if no delete is attempted.
	s := NewSweeper(nil, []store.Name{"http://example.org/ListItem"}, nil)

	record := events.DynamoDBEventRecord{
		EventName: "MODIFY",
		Change: events.DynamoDBStreamRecord{
			OldImage: map[string]events.DynamoDBAttributeValue{
				"owns": listAttr(refAttr("c1", "http://example.org/Car")),
			},
			NewImage: map[string]events.DynamoDBAttributeValue{},
		},
	}
	if err := s.processRecord(context.Background(), record); err != nil {
		t.Errorf("expected non-pivot refs to be skipped, got %v", err)
	}
}
