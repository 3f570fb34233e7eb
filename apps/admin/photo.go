package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/lamms/lamms/core/attendance"
	"github.com/lamms/lamms/services/photo"
)

var errNoPhotoStore = errors.New("seeding photos needs a Redis photo store (photoSource is not redis)")

type photoStore interface {
	Seed(ctx context.Context, photos []attendance.Photo) error
}

// seedPhotos replaces the stored pictures with the built-in gallery.
func (cli *commandLine) seedPhotos() error {
	if cli.photos == nil {
		return errNoPhotoStore
	}
	ctx := context.Background()
	photos, err := photosvc.NewStatic().GetData(ctx)
	if err != nil {
		return err
	}
	if err := cli.photos.Seed(ctx, photos); err != nil {
		return err
	}
	fmt.Printf("%d photos seeded\n", len(photos))
	return nil
}
