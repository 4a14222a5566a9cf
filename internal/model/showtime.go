package model

import "time"

// SeatsPerShowtime is the fixed size of every showtime's seat
// inventory. Seats are numbered 1..SeatsPerShowtime and created
// together with the showtime in one transaction.
const SeatsPerShowtime = 8

// Showtime is a scheduled screening of a movie on a given date and
// time of day. The triple (MovieID, ShowDate, ShowTime) is unique;
// the uq_showtime key in the database enforces it, so two concurrent
// creators for the same triple cannot both commit.
//
// Fields:
//  ID        – primary key identifier.
//  MovieID   – movie being screened.
//  ShowDate  – calendar date in "2006-01-02" form.
//  ShowTime  – time of day in "15:04:05" form.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Showtime struct {
	ID        uint64    // showtimes.id
	MovieID   uint64    // showtimes.movie_id
	ShowDate  string    // showtimes.show_date
	ShowTime  string    // showtimes.show_time
	CreatedAt time.Time // showtimes.created_at
	UpdatedAt time.Time // showtimes.updated_at
}
