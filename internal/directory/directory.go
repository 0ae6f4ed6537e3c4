// Package directory lists doctors from the backend and falls back to the
// local cache when the backend is unreachable.
package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/marcus/clinic/internal/api"
	"github.com/marcus/clinic/internal/models"
)

// ErrNoCache is returned for an offline listing when no cache is configured
var ErrNoCache = errors.New("no doctor cache available")

// Backend is the part of the API client the directory uses
type Backend interface {
	Doctors(ctx context.Context) ([]models.Doctor, error)
	FilterDoctors(ctx context.Context, name, timeOfDay, specialty string) ([]models.Doctor, error)
	DeleteDoctor(ctx context.Context, id int64, token string) (*api.MessageResponse, error)
}

// Cache stores the last full listing
type Cache interface {
	ReplaceDoctors(doctors []models.Doctor, syncedAt time.Time) error
	ListDoctors() ([]models.CachedDoctor, error)
	DeleteDoctor(id int64) error
}

// Filter narrows a listing. Time is "AM" or "PM".
type Filter struct {
	Name      string
	Specialty string
	Time      string
	Offline   bool
}

// Empty reports whether the filter matches everything
func (f Filter) Empty() bool {
	return f.Name == "" && f.Specialty == "" && f.Time == ""
}

// Listing is a set of doctors and where they came from
type Listing struct {
	Doctors   []models.Doctor
	FromCache bool
	SyncedAt  time.Time
}

// Service lists and deletes doctors
type Service struct {
	backend Backend
	cache   Cache
	now     func() time.Time
}

// New creates a Service. cache may be nil.
func New(backend Backend, cache Cache) *Service {
	return &Service{backend: backend, cache: cache, now: time.Now}
}

// List fetches doctors from the backend. Unfiltered results refresh the
// cache. A transport failure falls back to the cache.
func (s *Service) List(ctx context.Context, f Filter) (Listing, error) {
	if f.Offline {
		return s.fromCache(f)
	}

	var (
		doctors []models.Doctor
		err     error
	)
	if f.Empty() {
		doctors, err = s.backend.Doctors(ctx)
	} else {
		doctors, err = s.backend.FilterDoctors(ctx, f.Name, f.Time, f.Specialty)
	}

	if err != nil {
		if s.cache == nil || api.StatusCode(err) != 0 || errors.Is(err, context.Canceled) {
			return Listing{}, err
		}
		slog.Warn("directory: backend unreachable, using cache", "err", err)
		listing, cacheErr := s.fromCache(f)
		if cacheErr != nil {
			return Listing{}, fmt.Errorf("%w (cache: %v)", err, cacheErr)
		}
		return listing, nil
	}

	now := s.now()
	if f.Empty() && s.cache != nil {
		if err := s.cache.ReplaceDoctors(doctors, now); err != nil {
			slog.Warn("directory: refresh cache", "err", err)
		}
	}
	return Listing{Doctors: doctors, SyncedAt: now}, nil
}

func (s *Service) fromCache(f Filter) (Listing, error) {
	if s.cache == nil {
		return Listing{}, ErrNoCache
	}
	cached, err := s.cache.ListDoctors()
	if err != nil {
		return Listing{}, err
	}

	listing := Listing{FromCache: true}
	for _, c := range cached {
		if c.SyncedAt.After(listing.SyncedAt) {
			listing.SyncedAt = c.SyncedAt
		}
		if Matches(c.Doctor, f) {
			listing.Doctors = append(listing.Doctors, c.Doctor)
		}
	}
	return listing, nil
}

// Delete removes a doctor on the backend and from the cache
func (s *Service) Delete(ctx context.Context, id int64, token string) error {
	if _, err := s.backend.DeleteDoctor(ctx, id, token); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.DeleteDoctor(id); err != nil {
			slog.Warn("directory: drop cached doctor", "id", id, "err", err)
		}
	}
	return nil
}

// Matches applies f locally, the way the backend filter does: name and
// specialty are case-insensitive substrings, time matches any slot starting
// in that half of the day.
func Matches(d models.Doctor, f Filter) bool {
	if f.Name != "" && !containsFold(d.Name, f.Name) {
		return false
	}
	if f.Specialty != "" && !strings.EqualFold(d.Specialty, f.Specialty) {
		return false
	}
	if f.Time != "" {
		for _, slot := range d.AvailableTimes {
			if period(slot) == strings.ToUpper(f.Time) {
				return true
			}
		}
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// period returns "AM" or "PM" for a HH:mm-HH:mm slot, "" if unparseable
func period(slot string) string {
	if !models.IsValidTimeSlot(slot) {
		return ""
	}
	hour, err := strconv.Atoi(slot[:2])
	if err != nil {
		return ""
	}
	if hour < 12 {
		return "AM"
	}
	return "PM"
}
