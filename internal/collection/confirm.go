package collection

import (
	"context"

	"github.com/MKhiriev/go-cloud-sync/models"
)

// The Confirm variants issue the same remote calls as their fire-and-forget
// counterparts but wait for the server's acknowledgment, or for ctx to be
// done, and return the failure instead of passing it to the error handler.
// They must not be called from an observer.

// PushConfirm is [Collection.Push] with acknowledgment.
func (c *Collection) PushConfirm(ctx context.Context, records ...models.Record) error {
	if len(records) == 0 {
		return nil
	}
	return c.confirm(ctx, methodAdd, addPayload(records))
}

// PopConfirm is [Collection.Pop] with acknowledgment.
func (c *Collection) PopConfirm(ctx context.Context) (models.Record, error) {
	rec, id, err := c.edge(true)
	if err != nil {
		return nil, err
	}
	if err = c.confirm(ctx, methodRemove, id); err != nil {
		return nil, err
	}
	return rec, nil
}

// ShiftConfirm is [Collection.Shift] with acknowledgment.
func (c *Collection) ShiftConfirm(ctx context.Context) (models.Record, error) {
	rec, id, err := c.edge(false)
	if err != nil {
		return nil, err
	}
	if err = c.confirm(ctx, methodRemove, id); err != nil {
		return nil, err
	}
	return rec, nil
}

// UpdateAtConfirm is [Collection.UpdateAt] with acknowledgment. The merged
// record is stored locally before the call, whatever its outcome.
func (c *Collection) UpdateAtConfirm(ctx context.Context, index int, update models.Record) (models.Record, error) {
	merged, id, err := c.mergeAt(index, update)
	if err != nil {
		return nil, err
	}
	if err = c.confirm(ctx, methodUpdate, id, merged); err != nil {
		return nil, err
	}
	return merged.Clone(), nil
}
