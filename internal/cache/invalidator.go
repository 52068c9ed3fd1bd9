package cache

import (
	"context"

	"goodsmile/clinic/internal/realtime"
)

// SummaryPrefix namespaces every cached ledger summary.
const SummaryPrefix = "summary:"

// Invalidator drops cached summaries whenever a ledger table changes.
type Invalidator struct {
	Cache *Cache
}

// Notify implements realtime.Notifier.
func (i Invalidator) Notify(ctx context.Context, change realtime.Change) error {
	switch change.Table {
	case realtime.TableTransactions, realtime.TableExpenses:
		_, err := i.Cache.InvalidatePrefix(ctx, SummaryPrefix)
		return err
	}
	return nil
}
