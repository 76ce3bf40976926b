package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/marquee/internal/repositories"
	"github.com/desertthunder/marquee/internal/shared"
	"github.com/urfave/cli/v3"
)

type entryLister interface {
	List() ([]repositories.Entry, error)
}

type keyLister interface {
	Keys() []string
}

// StoreKeys lists the keys held by the persisted store.
func (r *Runner) StoreKeys(ctx context.Context, cmd *cli.Command) error {
	switch s := r.store.(type) {
	case entryLister:
		entries, err := s.List()
		if err != nil {
			return err
		}
		r.writePlainHeader("Stored Keys")
		for _, e := range entries {
			r.writePlain("%-24s %6d bytes  %s\n", e.Key, e.Size, e.UpdatedAt.Local().Format(time.DateTime))
		}
		return r.writePlainln("%d key(s)", len(entries))
	case keyLister:
		keys := s.Keys()
		r.writePlainHeader("Stored Keys (in memory)")
		for _, k := range keys {
			r.writePlain("%s\n", k)
		}
		return r.writePlainln("%d key(s)", len(keys))
	}
	return fmt.Errorf("%w: store does not support listing keys", shared.ErrNotImplemented)
}

// StoreGet prints the raw value stored under a key.
func (r *Runner) StoreGet(ctx context.Context, cmd *cli.Command) error {
	key := cmd.StringArg("key")
	if key == "" {
		return fmt.Errorf("%w: key", shared.ErrMissingArgument)
	}

	value, ok, err := r.store.Get(key)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrKeyNotFound, key)
	}
	return r.writePlain("%s\n", value)
}
