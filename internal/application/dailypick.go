package application

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ischaojie/soulapi/internal/domain/repository"
)

// FieldCache is the key-value collaborator behind the daily pick. No TTL is
// involved; staleness is computed from the stored date stamp.
type FieldCache interface {
	GetFields(ctx context.Context, key string) (map[string]string, error)
	SetFields(ctx context.Context, key string, fields map[string]string) error
}

const dateStampLayout = "20060102"

// DailyPick serves one random record per calendar day, cache-aside. A cache
// entry is {id, date}; it is fresh only while the date stamp equals today in
// the server's local calendar. Two concurrent misses may both select and
// write; the cache is advisory, so the last writer simply wins and no
// locking is added.
type DailyPick[T any] struct {
	Cache  FieldCache
	Key    string
	ByID   func(ctx context.Context, id int64) (*T, error)
	Random func(ctx context.Context) (*T, error)
	ID     func(rec *T) int64
	Logger *logrus.Logger

	// now is overridable in tests; defaults to time.Now.
	now func() time.Time
}

// Today returns the record of the day, refreshing the cache on a stale or
// dangling entry. An empty record set yields repository.ErrNotFound and
// leaves the cache untouched.
func (d *DailyPick[T]) Today(ctx context.Context) (*T, error) {
	nowFn := d.now
	if nowFn == nil {
		nowFn = time.Now
	}
	today := nowFn().Format(dateStampLayout)

	fields, err := d.Cache.GetFields(ctx, d.Key)
	if err != nil {
		// Cache trouble degrades to a miss, never to a failure.
		d.warn(err, "daily pick cache read failed")
		fields = nil
	}
	if fields["date"] == today {
		if id, perr := strconv.ParseInt(fields["id"], 10, 64); perr == nil {
			rec, gerr := d.ByID(ctx, id)
			if gerr == nil {
				return rec, nil
			}
			if !errors.Is(gerr, repository.ErrNotFound) {
				return nil, gerr
			}
			// The cached record was deleted; fall through to a fresh pick.
		}
	}

	rec, err := d.Random(ctx)
	if err != nil {
		return nil, err
	}
	if serr := d.Cache.SetFields(ctx, d.Key, map[string]string{
		"id":   strconv.FormatInt(d.ID(rec), 10),
		"date": today,
	}); serr != nil {
		d.warn(serr, "daily pick cache write failed")
	}
	return rec, nil
}

func (d *DailyPick[T]) warn(err error, msg string) {
	if d.Logger != nil {
		d.Logger.WithError(err).WithField("key", d.Key).Warn(msg)
	}
}
