package db

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"inkwell-server/store"
)

func CreateVisitor(ctx context.Context, visitor *Visitor) error {
	if visitor.DateAccepted.IsZero() {
		visitor.DateAccepted = time.Now().UTC()
	}

	id, err := Conn.Create(ctx, store.CollectionVisitors, visitor)
	if err != nil {
		return errors.Wrap(err, "error creating visitor")
	}
	visitor.Id = id
	return nil
}

func CountVisitors(ctx context.Context) (int64, error) {
	n, err := Conn.Count(ctx, store.CollectionVisitors, store.Filter{})
	if err != nil {
		return 0, errors.Wrap(err, "error counting visitors")
	}
	return n, nil
}
