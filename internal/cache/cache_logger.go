package cache

import (
	"context"
	"log/slog"
)

// SafeDelete deletes cache keys and logs failures instead of propagating
// them; a stale counter is preferable to a failed mutation.
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateDashboardStats drops the cached dashboard counters after any
// mutation that changes them.
func InvalidateDashboardStats(ctx context.Context, helper *CacheHelper) {
	SafeDelete(ctx, helper, "dashboard")
}
