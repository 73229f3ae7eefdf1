// Package datasync exports a learner's items and review history to YAML snapshots and imports them back.
package datasync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/at-ishikawa/flashrev/internal/item"
	"github.com/at-ishikawa/flashrev/internal/scheduling"
)

// SnapshotVersion is the format version written by Export.
const SnapshotVersion = 1

// Snapshot is the portable form of one learner's data.
type Snapshot struct {
	Version    int                      `yaml:"version"`
	OwnerID    string                   `yaml:"owner_id"`
	ExportedAt time.Time                `yaml:"exported_at"`
	Items      []scheduling.Item        `yaml:"items"`
	Events     []scheduling.ReviewEvent `yaml:"events"`
}

// ImportResult tracks counts for each import operation.
type ImportResult struct {
	ItemsNew      int
	ItemsSkipped  int
	ItemsUpdated  int
	EventsNew     int
	EventsSkipped int
	EventWarnings int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun         bool
	UpdateExisting bool
}

// Exporter reads one learner's data from the store.
type Exporter struct {
	repo  item.Repository
	clock scheduling.Clock
}

// NewExporter creates a new Exporter.
func NewExporter(repo item.Repository, clock scheduling.Clock) *Exporter {
	return &Exporter{repo: repo, clock: clock}
}

// Export reads every item and review event of ownerID.
func (e *Exporter) Export(ctx context.Context, ownerID string) (*Snapshot, error) {
	items, err := e.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("repo.FindByOwner() > %w", err)
	}
	events, err := e.repo.FindEventsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("repo.FindEventsByOwner() > %w", err)
	}
	return &Snapshot{
		Version:    SnapshotVersion,
		OwnerID:    ownerID,
		ExportedAt: e.clock.Now().UTC(),
		Items:      items,
		Events:     events,
	}, nil
}

// Importer writes snapshot data to the store.
type Importer struct {
	repo   item.Repository
	writer io.Writer
}

// NewImporter creates a new Importer. Progress lines are written to writer.
func NewImporter(repo item.Repository, writer io.Writer) *Importer {
	return &Importer{repo: repo, writer: writer}
}

// importNamespace seeds the IDs given to items and events imported from another learner's snapshot.
var importNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/at-ishikawa/flashrev/import"))

// idMapper returns the ID an imported record gets under ownerID. IDs are global keys in the store, so
// records exported by a different learner get a new ID derived from the importing learner and the
// original ID. The same snapshot therefore maps to the same IDs on every import.
func idMapper(snapshotOwner, ownerID string) func(kind, id string) string {
	if snapshotOwner == ownerID {
		return func(_, id string) string { return id }
	}
	return func(kind, id string) string {
		return uuid.NewSHA1(importNamespace, []byte(ownerID+"/"+kind+"/"+id)).String()
	}
}

// Import stores the snapshot's items and events under ownerID, whoever exported them.
// A snapshot of another learner is imported under new IDs, see idMapper.
// Existing items are skipped unless UpdateExisting is set. Events are append-only: known event IDs are
// skipped, and events of items absent from both the snapshot and the store are reported and dropped.
func (imp *Importer) Import(ctx context.Context, ownerID string, snapshot *Snapshot, opts ImportOptions) (*ImportResult, error) {
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snapshot.Version)
	}
	mapID := idMapper(snapshot.OwnerID, ownerID)

	var result ImportResult
	knownItems := make(map[string]struct{}, len(snapshot.Items))
	var newItems []*scheduling.Item
	for i := range snapshot.Items {
		it := snapshot.Items[i]
		it.OwnerID = ownerID
		it.ID = mapID("item", it.ID)
		knownItems[it.ID] = struct{}{}

		existing, err := imp.repo.Get(ctx, ownerID, it.ID)
		if errors.Is(err, item.ErrNotFound) {
			fmt.Fprintf(imp.writer, "  [NEW]  %s %q%s\n", it.ID, it.Front, origin(snapshot.Items[i].ID, it.ID))
			newItems = append(newItems, &it)
			result.ItemsNew++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("repo.Get(%s) > %w", it.ID, err)
		}

		if !opts.UpdateExisting {
			fmt.Fprintf(imp.writer, "  [SKIP]  %s %q\n", it.ID, it.Front)
			result.ItemsSkipped++
			continue
		}
		it.Version = existing.Version
		if !opts.DryRun {
			if err := imp.repo.Save(ctx, &it); err != nil {
				return nil, fmt.Errorf("repo.Save(%s) > %w", it.ID, err)
			}
		}
		fmt.Fprintf(imp.writer, "  [UPDATE]  %s %q\n", it.ID, it.Front)
		result.ItemsUpdated++
	}
	if !opts.DryRun && len(newItems) > 0 {
		if err := imp.repo.BatchCreate(ctx, newItems); err != nil {
			return nil, fmt.Errorf("repo.BatchCreate() > %w", err)
		}
	}

	if err := imp.importEvents(ctx, ownerID, snapshot.Events, knownItems, mapID, opts, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func origin(originalID, id string) string {
	if originalID == id {
		return ""
	}
	return " (from " + originalID + ")"
}

func (imp *Importer) importEvents(ctx context.Context, ownerID string, events []scheduling.ReviewEvent, knownItems map[string]struct{}, mapID func(kind, id string) string, opts ImportOptions, result *ImportResult) error {
	if len(events) == 0 {
		return nil
	}

	existingEvents, err := imp.repo.FindEventsByOwner(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("repo.FindEventsByOwner() > %w", err)
	}
	existing := make(map[string]struct{}, len(existingEvents))
	for _, e := range existingEvents {
		existing[e.ID] = struct{}{}
	}

	var newEvents []*scheduling.ReviewEvent
	for i := range events {
		e := events[i]
		e.OwnerID = ownerID
		e.ID = mapID("event", e.ID)
		e.ItemID = mapID("item", e.ItemID)
		if _, ok := existing[e.ID]; ok {
			result.EventsSkipped++
			continue
		}
		if _, ok := knownItems[e.ItemID]; !ok {
			if _, err := imp.repo.Get(ctx, ownerID, e.ItemID); err != nil {
				if !errors.Is(err, item.ErrNotFound) {
					return fmt.Errorf("repo.Get(%s) > %w", e.ItemID, err)
				}
				fmt.Fprintf(imp.writer, "  [WARN]  item %s not found for event %s\n", events[i].ItemID, events[i].ID)
				result.EventWarnings++
				continue
			}
			knownItems[e.ItemID] = struct{}{}
		}
		existing[e.ID] = struct{}{}
		newEvents = append(newEvents, &e)
		result.EventsNew++
	}

	if opts.DryRun || len(newEvents) == 0 {
		return nil
	}
	if err := imp.repo.BatchCreateEvents(ctx, newEvents); err != nil {
		return fmt.Errorf("repo.BatchCreateEvents() > %w", err)
	}
	return nil
}
