package entity

import "time"

// Layer is an uploaded georeferenced raster known to the catalog.
type Layer struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	// Path is where the raw raster bytes can be fetched from.
	Path string `json:"path"`
	// Bounds is "minLon,minLat,maxLon,maxLat" when supplied at upload.
	Bounds    string    `json:"bounds,omitempty"`
	ObjectKey string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
