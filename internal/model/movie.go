package model

import "time"

// Movie is a catalog entry that showtimes reference by identity.
// The booking engine itself only needs the ID (existence check) and
// the name (carried into booking.confirmed events); the remaining
// attributes are plain catalog data.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display title of the movie.
//  Genre       – free-form genre label used for list filtering.
//  Description – synopsis text.
//  DurationMin – running time in minutes.
//  ReleaseDate – release date as supplied by the catalog.
//  ImageURL    – poster image location.
//  Rating      – viewer rating, e.g. out of 5.
//  Price       – ticket price for this movie.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Movie struct {
	ID          uint64    // movies.id
	Name        string    // movies.name
	Genre       string    // movies.genre
	Description string    // movies.description
	DurationMin uint32    // movies.duration_min
	ReleaseDate string    // movies.release_date
	ImageURL    string    // movies.image_url
	Rating      float64   // movies.rating
	Price       float64   // movies.price
	CreatedAt   time.Time // movies.created_at
	UpdatedAt   time.Time // movies.updated_at
}
