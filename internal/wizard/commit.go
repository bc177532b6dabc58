package wizard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hollisb/linesmith/internal/common"
	"github.com/hollisb/linesmith/internal/model"
)

// Commit validates the selection and creates one child record per entry,
// all requests in flight concurrently. On full success it notifies and
// navigates back to the parent record. On any failure every record created
// in this batch is deleted again, so the outcome is all-or-nothing; the
// selection state is left untouched and a later Commit is a fresh batch.
func (c *Controller) Commit(ctx context.Context) error {
	if c.phase != PhaseConfiguring {
		return common.ErrWrongPhase
	}
	if len(c.entries) == 0 {
		return common.ErrEmptySelection
	}

	for _, entry := range c.entries {
		if !entry.HasRequired() {
			msg := fmt.Sprintf("Required Field Missing. Please check Quantity and %s", c.kind.PriceLabel())
			c.notifier.Notify("Error", msg, SeverityError, true)
			return fmt.Errorf("%w: quantity and %s", common.ErrMissingRequired, c.kind.PriceLabel())
		}
	}

	childType := c.kind.ChildType()

	var (
		mu       sync.Mutex
		created  []string
		firstErr error
		wg       sync.WaitGroup
	)
	for _, entry := range c.entries {
		fields := entry.CommitFields(c.kind, c.recordID)
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := c.records.CreateChildRecord(ctx, childType, fields)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			created = append(created, id)
		}()
	}
	wg.Wait()

	if firstErr != nil {
		slog.Error("Commit failed, rolling back batch",
			"record_id", c.recordID,
			"child_type", childType,
			"created", len(created),
			"error", firstErr)
		c.rollback(ctx, created)
		c.notifier.Notify("Error", model.UserMessageOf(firstErr), SeverityError, true)
		return fmt.Errorf("failed to create %s records: %w", childType, firstErr)
	}

	slog.Info("Commit succeeded",
		"record_id", c.recordID,
		"child_type", childType,
		"count", len(created))
	c.notifier.Notify("Success", "Record Created Successfully", SeveritySuccess, false)
	c.nav.OpenRecord(c.kind, c.recordID)
	return nil
}

// rollback deletes every record created in a failed batch. Deletions run
// independently; one failure never blocks the rest. A record that is
// already gone counts as compensated.
func (c *Controller) rollback(ctx context.Context, ids []string) {
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := c.records.DeleteRecord(ctx, id)
			if err != nil && !model.IsEntityDeleted(err) {
				slog.Error("Failed to delete record during rollback", "record_id", id, "error", err)
			}
		}()
	}
	wg.Wait()
}
