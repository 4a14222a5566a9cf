package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-booking/internal/model"
	"github.com/iliyamo/movie-booking/internal/repository"
)

// MovieHandler serves the movie catalog CRUD.
type MovieHandler struct {
	Movies *repository.MovieRepo
}

func NewMovieHandler(movies *repository.MovieRepo) *MovieHandler {
	return &MovieHandler{Movies: movies}
}

type movieReq struct {
	Name        string  `json:"name"`
	Genre       string  `json:"genre"`
	Description string  `json:"description"`
	DurationMin uint32  `json:"duration_min"`
	ReleaseDate string  `json:"release_date"`
	ImageURL    string  `json:"image_url"`
	Rating      float64 `json:"rating"`
	Price       float64 `json:"price"`
}

type movieView struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Genre       string  `json:"genre"`
	Description string  `json:"description"`
	DurationMin uint32  `json:"duration_min"`
	ReleaseDate string  `json:"release_date"`
	ImageURL    string  `json:"image_url"`
	Rating      float64 `json:"rating"`
	Price       float64 `json:"price"`
}

func movieToView(m *model.Movie) movieView {
	return movieView{
		ID:          m.ID,
		Name:        m.Name,
		Genre:       m.Genre,
		Description: m.Description,
		DurationMin: m.DurationMin,
		ReleaseDate: m.ReleaseDate,
		ImageURL:    m.ImageURL,
		Rating:      m.Rating,
		Price:       m.Price,
	}
}

func (req *movieReq) toModel() (*model.Movie, string) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, "name required"
	}
	if req.Price < 0 {
		return nil, "price must not be negative"
	}
	return &model.Movie{
		Name:        name,
		Genre:       strings.TrimSpace(req.Genre),
		Description: req.Description,
		DurationMin: req.DurationMin,
		ReleaseDate: strings.TrimSpace(req.ReleaseDate),
		ImageURL:    strings.TrimSpace(req.ImageURL),
		Rating:      req.Rating,
		Price:       req.Price,
	}, ""
}

// Create adds a movie to the catalog.
func (h *MovieHandler) Create(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	m, msg := req.toModel()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Movies.Create(ctx, m); err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, movieToView(m))
}

// List returns the catalog, optionally filtered by ?genre=.
func (h *MovieHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	movies, err := h.Movies.List(ctx, strings.TrimSpace(c.QueryParam("genre")))
	if err != nil {
		return writeDomainErr(c, err)
	}
	views := make([]movieView, len(movies))
	for i := range movies {
		views[i] = movieToView(&movies[i])
	}
	return c.JSON(http.StatusOK, views)
}

// Get returns a single movie.
func (h *MovieHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	m, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, movieToView(m))
}

// Update overwrites a movie's attributes.
func (h *MovieHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	m, msg := req.toModel()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	m.ID = id

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Movies.Update(ctx, m); err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, movieToView(m))
}

// Delete removes a movie together with its showtimes and seats; 409
// while bookings still reference any of its showtimes.
func (h *MovieHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Movies.Delete(ctx, id); err != nil {
		return writeDomainErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
