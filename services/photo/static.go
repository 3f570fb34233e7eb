package photosvc

import (
	"context"
	"fmt"

	"github.com/lamms/lamms/core/attendance"
)

const galleryBaseURL = "https://primefaces.org/cdn/primevue/images/galleria"

// Static serves the built-in gallery pictures.
type Static struct {
	count int
}

var _ attendance.PhotoProvider = (*Static)(nil) // interface compliance check

func NewStatic() *Static {
	return &Static{count: 15}
}

func (s *Static) GetData(context.Context) ([]attendance.Photo, error) {
	photos := make([]attendance.Photo, 0, s.count)
	for i := 1; i <= s.count; i++ {
		photos = append(photos, attendance.Photo{
			ItemImageSrc:      fmt.Sprintf("%s/galleria%d.jpg", galleryBaseURL, i),
			ThumbnailImageSrc: fmt.Sprintf("%s/galleria%ds.jpg", galleryBaseURL, i),
			Alt:               fmt.Sprintf("Description for Image %d", i),
			Title:             fmt.Sprintf("Title %d", i),
		})
	}
	return photos, nil
}
