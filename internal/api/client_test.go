package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/marcus/clinic/internal/models"
)

// fakeBackend mirrors the backend's routes closely enough for client tests.
func fakeBackend(t *testing.T) (*Client, *http.ServeMux) {
	t.Helper()
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", 2*time.Second), mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestPatientLogin(t *testing.T) {
	c, mux := fakeBackend(t)

	var gotBody map[string]string
	var gotReqID string
	mux.HandleFunc("POST /patient/login", func(w http.ResponseWriter, r *http.Request) {
		gotReqID = r.Header.Get(RequestIDHeader)
		json.NewDecoder(r.Body).Decode(&gotBody)
		writeJSON(w, http.StatusOK, map[string]string{"token": "tok-1", "message": "ok"})
	})

	resp, err := c.PatientLogin(context.Background(), "pat@example.com", "secret1")
	if err != nil {
		t.Fatalf("PatientLogin: %v", err)
	}
	if resp.Token != "tok-1" {
		t.Errorf("Token: got %q", resp.Token)
	}
	if gotBody["email"] != "pat@example.com" || gotBody["password"] != "secret1" {
		t.Errorf("unexpected request body: %v", gotBody)
	}
	if gotReqID == "" {
		t.Error("expected request id header")
	}
}

func TestAdminLoginSendsUsername(t *testing.T) {
	c, mux := fakeBackend(t)

	var gotBody map[string]string
	mux.HandleFunc("POST /admin/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		writeJSON(w, http.StatusOK, map[string]string{"token": "adm", "username": "root"})
	})

	resp, err := c.AdminLogin(context.Background(), "root", "pw")
	if err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}
	if gotBody["username"] != "root" {
		t.Errorf("expected username in body, got %v", gotBody)
	}
	if _, ok := gotBody["email"]; ok {
		t.Errorf("admin login must not send email: %v", gotBody)
	}
	if resp.Username != "root" {
		t.Errorf("Username: got %q", resp.Username)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"error field", http.StatusUnauthorized, `{"error":"Invalid password"}`, "Invalid password"},
		{"message field", http.StatusConflict, `{"message":"Doctor already exists"}`, "Doctor already exists"},
		{"plain text", http.StatusInternalServerError, "boom", "boom"},
		{"empty body", http.StatusNotFound, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, mux := fakeBackend(t)
			mux.HandleFunc("POST /doctor/login", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.DoctorLogin(context.Background(), "doc@example.com", "pw")
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *Error, got %T: %v", err, err)
			}
			if apiErr.Status != tt.status {
				t.Errorf("Status: got %d, want %d", apiErr.Status, tt.status)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("Message: got %q, want %q", apiErr.Message, tt.wantMsg)
			}
			if StatusCode(err) != tt.status {
				t.Errorf("StatusCode: got %d", StatusCode(err))
			}
		})
	}
}

func TestDoctors(t *testing.T) {
	c, mux := fakeBackend(t)
	mux.HandleFunc("GET /doctor", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"doctors": []models.Doctor{
				{ID: 1, Name: "Meredith Grey", Specialty: "Surgery", AvailableTimes: []string{"09:00-10:00"}},
				{ID: 2, Name: "Gregory House", Specialty: "Diagnostics"},
			},
			"count": 2,
		})
	})

	doctors, err := c.Doctors(context.Background())
	if err != nil {
		t.Fatalf("Doctors: %v", err)
	}
	if len(doctors) != 2 {
		t.Fatalf("expected 2 doctors, got %d", len(doctors))
	}
	if doctors[0].AvailableTimes[0] != "09:00-10:00" {
		t.Errorf("AvailableTimes: got %v", doctors[0].AvailableTimes)
	}
}

func TestFilterDoctorsQuery(t *testing.T) {
	c, mux := fakeBackend(t)

	var gotQuery string
	mux.HandleFunc("GET /doctor/filter", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, map[string]any{"doctors": []models.Doctor{}})
	})

	if _, err := c.FilterDoctors(context.Background(), "grey", "AM", ""); err != nil {
		t.Fatalf("FilterDoctors: %v", err)
	}
	for _, want := range []string{"name=grey", "time=AM", "specialty="} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestSaveAndDeleteDoctorUseTokenPath(t *testing.T) {
	c, mux := fakeBackend(t)

	var saved models.Doctor
	var savedToken, deletedID, deletedToken string
	mux.HandleFunc("POST /doctor/{token}", func(w http.ResponseWriter, r *http.Request) {
		savedToken = r.PathValue("token")
		json.NewDecoder(r.Body).Decode(&saved)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Doctor added to db"})
	})
	mux.HandleFunc("DELETE /doctor/{id}/{token}", func(w http.ResponseWriter, r *http.Request) {
		deletedID = r.PathValue("id")
		deletedToken = r.PathValue("token")
		writeJSON(w, http.StatusOK, map[string]string{"message": "Doctor deleted successfully"})
	})

	resp, err := c.SaveDoctor(context.Background(), "adm-tok", models.Doctor{Name: "Cristina Yang", Password: "secret1"})
	if err != nil {
		t.Fatalf("SaveDoctor: %v", err)
	}
	if resp.Message != "Doctor added to db" {
		t.Errorf("Message: got %q", resp.Message)
	}
	if savedToken != "adm-tok" || saved.Name != "Cristina Yang" || saved.Password != "secret1" {
		t.Errorf("unexpected save: token=%q doctor=%+v", savedToken, saved)
	}

	if _, err := c.DeleteDoctor(context.Background(), 7, "adm-tok"); err != nil {
		t.Fatalf("DeleteDoctor: %v", err)
	}
	if deletedID != "7" || deletedToken != "adm-tok" {
		t.Errorf("unexpected delete: id=%q token=%q", deletedID, deletedToken)
	}
}

func TestContextCancellation(t *testing.T) {
	c, mux := fakeBackend(t)
	mux.HandleFunc("GET /doctor", func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Doctors(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRedactPath(t *testing.T) {
	long := strings.Repeat("a", 40)
	if got := redactPath("/doctor/" + long); got != "/doctor/***" {
		t.Errorf("redactPath: got %q", got)
	}
	if got := redactPath("/doctor/filter?name=x"); got != "/doctor/filter" {
		t.Errorf("redactPath: got %q", got)
	}
}
