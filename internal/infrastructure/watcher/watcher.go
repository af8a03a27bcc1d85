// Package watcher subscribes to the Firestore change feed and forwards
// document events to the trigger layer, supplying the before side of each
// update from an in-memory snapshot cache.
package watcher

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"econexus/internal/domain/entity"
	"econexus/internal/trigger"
	"econexus/pkg/logger"
)

// resubscribeDelay spaces out reconnect attempts after a feed error.
const resubscribeDelay = 2 * time.Second

type Watcher struct {
	client   *firestore.Client
	triggers *trigger.Triggers
}

func NewWatcher(client *firestore.Client, triggers *trigger.Triggers) *Watcher {
	return &Watcher{
		client:   client,
		triggers: triggers,
	}
}

// Start launches the two collection listeners. They run until ctx is
// cancelled. Trigger failures are logged and terminal for that invocation
// only; the listener keeps going. A broken feed is re-subscribed after a
// short delay, re-seeding the snapshot cache from the fresh initial
// snapshot, so one transient RPC error never ends fan-out for the process.
// Transitions committed while the feed was down are absorbed into the new
// baseline without firing, matching the at-least-once delivery contract.
func (w *Watcher) Start(ctx context.Context) {
	go w.resubscribe(ctx, w.runWasteRequestFeed)
	go w.resubscribe(ctx, w.runMaterialFeed)
}

// resubscribe runs one feed until it fails, then reconnects after a delay.
// Each run call opens a fresh listener with fresh per-subscription state.
func (w *Watcher) resubscribe(ctx context.Context, run func(context.Context) error) {
	for {
		err := run(ctx)
		if ctx.Err() != nil {
			return
		}
		logger.Error("Change feed listener stopped, re-subscribing in %s: %v", resubscribeDelay, err)

		select {
		case <-time.After(resubscribeDelay):
		case <-ctx.Done():
			return
		}
	}
}

func (w *Watcher) runWasteRequestFeed(ctx context.Context) error {
	snapshots := w.client.Collection("wasteRequests").Snapshots(ctx)
	defer snapshots.Stop()

	// Last observed state per document, keyed by ID. The initial snapshot
	// seeds the cache without firing any trigger.
	previous := make(map[string]*entity.WasteRequest)

	for {
		snapshot, err := snapshots.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return err
		}

		for _, change := range snapshot.Changes {
			id := change.Doc.Ref.ID

			switch change.Kind {
			case firestore.DocumentAdded:
				request, err := decodeRequest(change.Doc)
				if err != nil {
					logger.Error("Failed to decode waste request %s: %v", id, err)
					continue
				}
				previous[id] = request

			case firestore.DocumentModified:
				after, err := decodeRequest(change.Doc)
				if err != nil {
					logger.Error("Failed to decode waste request %s: %v", id, err)
					continue
				}
				before := previous[id]
				previous[id] = after
				if before == nil {
					continue
				}
				if err := w.triggers.HandleRequestUpdate(ctx, trigger.RequestEvent{Before: before, After: after}); err != nil {
					logger.Error("Waste request trigger failed for %s: %v", id, err)
				}

			case firestore.DocumentRemoved:
				delete(previous, id)
			}
		}
	}
}

func (w *Watcher) runMaterialFeed(ctx context.Context) error {
	snapshots := w.client.Collection("recycledMaterials").Snapshots(ctx)
	defer snapshots.Stop()

	// The first snapshot replays every existing document as an add; only
	// creations after that fan out. Resets with each subscription so a
	// re-subscribe never replays old materials as new.
	initial := true

	for {
		snapshot, err := snapshots.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return err
		}

		if initial {
			initial = false
			continue
		}

		for _, change := range snapshot.Changes {
			if change.Kind != firestore.DocumentAdded {
				continue
			}

			var material entity.RecycledMaterial
			if err := change.Doc.DataTo(&material); err != nil {
				logger.Error("Failed to decode material %s: %v", change.Doc.Ref.ID, err)
				continue
			}
			material.ID = change.Doc.Ref.ID

			if err := w.triggers.HandleMaterialCreated(ctx, &material); err != nil {
				logger.Error("Material trigger failed for %s: %v", material.ID, err)
			}
		}
	}
}

func decodeRequest(doc *firestore.DocumentSnapshot) (*entity.WasteRequest, error) {
	var request entity.WasteRequest
	if err := doc.DataTo(&request); err != nil {
		return nil, err
	}
	request.ID = doc.Ref.ID
	return &request, nil
}
