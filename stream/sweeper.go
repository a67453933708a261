// Package stream provides DynamoDB Streams handlers for store
// maintenance.
//
// Re-encoding a list field replaces the relation's pivot set at the
// property level, leaving the previous pivot individuals orphaned in the
// individuals table. The sweeper watches the table's stream for such
// replacements and soft-deletes the orphaned pivots.
package stream

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/ontomap/dynamostore"
	"github.com/jacentio/ontomap/store"
)

// Sweeper processes DynamoDB stream events from the individuals table
// and reclaims pivot individuals dropped by a relation rewrite.
type Sweeper struct {
	store        *dynamostore.Store
	pivotClasses map[store.Name]struct{}
	logger       *slog.Logger
}

// NewSweeper creates a Sweeper that reclaims individuals of the given
// pivot classes. Only references to these classes are ever deleted;
// shared element individuals are left alone.
func NewSweeper(s *dynamostore.Store, pivotClasses []store.Name, logger *slog.Logger) *Sweeper {
	if logger == nil {
		logger = slog.Default()
	}
	classes := make(map[store.Name]struct{}, len(pivotClasses))
	for _, c := range pivotClasses {
		classes[c] = struct{}{}
	}
	return &Sweeper{
		store:        s,
		pivotClasses: classes,
		logger:       logger,
	}
}

// HandleSweep processes DynamoDB stream events, deleting pivots that a
// MODIFY event dropped from a relation. This function is designed to be
// used as an AWS Lambda handler.
func (s *Sweeper) HandleSweep(ctx context.Context, event events.DynamoDBEvent) error {
	for _, record := range event.Records {
		if err := s.processRecord(ctx, record); err != nil {
			s.logger.Error("failed to process record",
				"eventID", record.EventID,
				"error", err,
			)
			return err // Will retry, eventually DLQ
		}
	}
	return nil
}

// processRecord sweeps one stream record. Only MODIFY events carry a
// before/after pair to diff; INSERT and REMOVE events are skipped.
func (s *Sweeper) processRecord(ctx context.Context, record events.DynamoDBEventRecord) error {
	if record.EventName != "MODIFY" {
		return nil
	}

	orphans := orphanedRefs(record.Change.OldImage, record.Change.NewImage)
	if len(orphans) == 0 {
		return nil
	}

	swept := 0
	for _, ref := range orphans {
		if _, ok := s.pivotClasses[ref.Class]; !ok {
			continue
		}
		if err := s.store.DeleteIndividual(ctx, ref); err != nil {
			s.logger.Warn("failed to delete orphaned pivot",
				"pivot", ref.ID,
				"class", ref.Class,
				"error", err,
			)
			// Continue - idempotent, will retry
			continue
		}
		swept++
	}

	if swept > 0 {
		s.logger.Info("swept orphaned pivots",
			"eventID", record.EventID,
			"count", swept,
		)
	}
	return nil
}

// orphanedRefs diffs the individual-reference lists of two images and
// returns the references present only in the old one.
func orphanedRefs(oldImage, newImage map[string]events.DynamoDBAttributeValue) []store.Individual {
	var orphans []store.Individual
	for attr, oldVal := range oldImage {
		oldRefs := refsInAttr(oldVal)
		if len(oldRefs) == 0 {
			continue
		}
		kept := make(map[string]struct{})
		if newVal, ok := newImage[attr]; ok {
			for _, ref := range refsInAttr(newVal) {
				kept[ref.ID] = struct{}{}
			}
		}
		for _, ref := range oldRefs {
			if _, ok := kept[ref.ID]; !ok {
				orphans = append(orphans, ref)
			}
		}
	}
	return orphans
}

// refsInAttr extracts individual references from a list-valued stream
// attribute. Non-list attributes and non-reference elements yield
// nothing.
func refsInAttr(av events.DynamoDBAttributeValue) []store.Individual {
	if av.DataType() != events.DataTypeList {
		return nil
	}
	var refs []store.Individual
	for _, el := range av.List() {
		if ref, ok := refInAttr(el); ok {
			refs = append(refs, ref)
		}
	}
	return refs
}

// refInAttr decodes one individual reference from a map-valued stream
// attribute.
func refInAttr(av events.DynamoDBAttributeValue) (store.Individual, bool) {
	if av.DataType() != events.DataTypeMap {
		return store.Individual{}, false
	}
	m := av.Map()
	ref, okRef := m["_ref"]
	class, okClass := m["_class"]
	if !okRef || !okClass {
		return store.Individual{}, false
	}
	if ref.DataType() != events.DataTypeString || class.DataType() != events.DataTypeString {
		return store.Individual{}, false
	}
	return store.Individual{ID: ref.String(), Class: store.Name(class.String())}, true
}
