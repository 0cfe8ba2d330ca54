package admindir

import (
	"context"
	"time"
)

// Bootstrap seeds the initial admin identity when the directory is empty.
// Without it no caller could ever pass the directory check.
func Bootstrap(ctx context.Context, store Store, uid, name, email string) (bool, error) {
	if uid == "" {
		return false, nil
	}

	existing, err := store.List(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	err = store.Set(ctx, &Record{
		UID:       uid,
		Name:      name,
		Email:     email,
		CreatedBy: "bootstrap",
		CreatedAt: time.Now(),
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
