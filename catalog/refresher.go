package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const refreshKey = "catalog"

// Refresher reloads the snapshot from the store. Concurrent reloads share one List call.
type Refresher struct {
	store    Store
	snapshot *Snapshot
	group    singleflight.Group
	log      *zap.SugaredLogger
}

func NewRefresher(store Store, snapshot *Snapshot) *Refresher {
	return &Refresher{
		store:    store,
		snapshot: snapshot,
		log:      zap.S().With("namespace", "catalog"),
	}
}

// Refresh re-lists the store and installs the result, returning the snapshot version.
func (r *Refresher) Refresh(ctx context.Context) (uint64, error) {
	v, err, _ := r.group.Do(refreshKey, func() (any, error) {
		products, err := r.store.List(ctx)
		if err != nil {
			return uint64(0), err
		}
		return r.snapshot.Replace(products), nil
	})
	if err != nil {
		return 0, fmt.Errorf("catalog refresh: %w", err)
	}
	return v.(uint64), nil
}

// Watch reloads after every notification until the returned func is called. A reload
// already in flight is not reused, since it may have listed before the write.
func (r *Refresher) Watch(n *Notifier) (func(), error) {
	return n.Subscribe(func(c Change) {
		r.group.Forget(refreshKey)
		version, err := r.Refresh(context.Background())
		if err != nil {
			r.log.Errorf("reload after %s failed: %v", c.Reason, err)
			return
		}
		r.log.Debugw("catalog reloaded", "reason", c.Reason, "version", version)
	})
}
