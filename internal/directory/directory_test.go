package directory

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/marcus/clinic/internal/api"
	"github.com/marcus/clinic/internal/db"
	"github.com/marcus/clinic/internal/models"
)

type fakeBackend struct {
	doctors  []models.Doctor
	err      error
	filtered bool
	deleted  int64
}

func (f *fakeBackend) Doctors(context.Context) ([]models.Doctor, error) {
	return f.doctors, f.err
}

func (f *fakeBackend) FilterDoctors(_ context.Context, name, _, _ string) ([]models.Doctor, error) {
	f.filtered = true
	var out []models.Doctor
	for _, d := range f.doctors {
		if containsFold(d.Name, name) {
			out = append(out, d)
		}
	}
	return out, f.err
}

func (f *fakeBackend) DeleteDoctor(_ context.Context, id int64, _ string) (*api.MessageResponse, error) {
	f.deleted = id
	return &api.MessageResponse{}, f.err
}

func sampleDoctors() []models.Doctor {
	return []models.Doctor{
		{ID: 1, Name: "Dr. Adams", Specialty: "Cardiologist", AvailableTimes: []string{"09:00-10:00"}},
		{ID: 2, Name: "Dr. Baker", Specialty: "Dermatologist", AvailableTimes: []string{"14:00-15:00"}},
	}
}

func openCache(t *testing.T) *db.DB {
	t.Helper()
	cache, err := db.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestListRefreshesCache(t *testing.T) {
	cache := openCache(t)
	s := New(&fakeBackend{doctors: sampleDoctors()}, cache)

	listing, err := s.List(context.Background(), Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if listing.FromCache || len(listing.Doctors) != 2 {
		t.Errorf("listing = %+v", listing)
	}

	cached, err := cache.ListDoctors()
	if err != nil {
		t.Fatal(err)
	}
	if len(cached) != 2 {
		t.Errorf("cached %d doctors, want 2", len(cached))
	}
}

func TestListFallsBackToCache(t *testing.T) {
	cache := openCache(t)
	if err := cache.ReplaceDoctors(sampleDoctors(), time.Now()); err != nil {
		t.Fatal(err)
	}

	s := New(&fakeBackend{err: errors.New("dial tcp: connection refused")}, cache)
	listing, err := s.List(context.Background(), Filter{Name: "baker"})
	if err != nil {
		t.Fatal(err)
	}
	if !listing.FromCache || len(listing.Doctors) != 1 || listing.Doctors[0].ID != 2 {
		t.Errorf("listing = %+v", listing)
	}
}

func TestListHTTPErrorDoesNotFallBack(t *testing.T) {
	cache := openCache(t)
	s := New(&fakeBackend{err: &api.Error{Status: http.StatusInternalServerError}}, cache)

	if _, err := s.List(context.Background(), Filter{}); api.StatusCode(err) != http.StatusInternalServerError {
		t.Errorf("err = %v, want HTTP 500", err)
	}
}

func TestOfflineWithoutCache(t *testing.T) {
	s := New(&fakeBackend{}, nil)
	if _, err := s.List(context.Background(), Filter{Offline: true}); !errors.Is(err, ErrNoCache) {
		t.Errorf("err = %v, want ErrNoCache", err)
	}
}

func TestFilteredListUsesBackendFilter(t *testing.T) {
	b := &fakeBackend{doctors: sampleDoctors()}
	s := New(b, nil)

	listing, err := s.List(context.Background(), Filter{Name: "adams"})
	if err != nil {
		t.Fatal(err)
	}
	if !b.filtered || len(listing.Doctors) != 1 {
		t.Errorf("filtered=%v listing=%+v", b.filtered, listing)
	}
}

func TestDeleteDropsCachedDoctor(t *testing.T) {
	cache := openCache(t)
	if err := cache.ReplaceDoctors(sampleDoctors(), time.Now()); err != nil {
		t.Fatal(err)
	}
	b := &fakeBackend{}
	s := New(b, cache)

	if err := s.Delete(context.Background(), 1, "tok"); err != nil {
		t.Fatal(err)
	}
	if b.deleted != 1 {
		t.Errorf("backend deleted %d", b.deleted)
	}
	cached, _ := cache.ListDoctors()
	if len(cached) != 1 || cached[0].ID != 2 {
		t.Errorf("cache = %+v", cached)
	}
}

func TestMatches(t *testing.T) {
	d := sampleDoctors()[0]

	tests := []struct {
		name string
		f    Filter
		want bool
	}{
		{"empty", Filter{}, true},
		{"name substring", Filter{Name: "ADA"}, true},
		{"name miss", Filter{Name: "zed"}, false},
		{"specialty", Filter{Specialty: "cardiologist"}, true},
		{"specialty miss", Filter{Specialty: "Neuro"}, false},
		{"morning", Filter{Time: "am"}, true},
		{"afternoon", Filter{Time: "PM"}, false},
	}
	for _, tt := range tests {
		if got := Matches(d, tt.f); got != tt.want {
			t.Errorf("%s: Matches = %v, want %v", tt.name, got, tt.want)
		}
	}
}
