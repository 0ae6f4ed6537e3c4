package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/marcus/clinic/internal/models"
)

type doctorsResponse struct {
	Doctors []models.Doctor `json:"doctors"`
	Count   int             `json:"count"`
}

// Doctors lists every doctor
func (c *Client) Doctors(ctx context.Context) ([]models.Doctor, error) {
	var resp doctorsResponse
	if err := c.do(ctx, http.MethodGet, "/doctor", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Doctors, nil
}

// FilterDoctors asks the backend to filter by name, time of day and specialty.
// Empty arguments are sent as empty query values, as the backend expects.
func (c *Client) FilterDoctors(ctx context.Context, name, timeOfDay, specialty string) ([]models.Doctor, error) {
	q := url.Values{}
	q.Set("name", name)
	q.Set("time", timeOfDay)
	q.Set("specialty", specialty)

	var resp doctorsResponse
	if err := c.do(ctx, http.MethodGet, "/doctor/filter?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Doctors, nil
}

// SaveDoctor creates a doctor; requires an admin token
func (c *Client) SaveDoctor(ctx context.Context, token string, d models.Doctor) (*MessageResponse, error) {
	var resp MessageResponse
	path := "/doctor/" + url.PathEscape(token)
	if err := c.do(ctx, http.MethodPost, path, d, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteDoctor removes a doctor by id; requires an admin token
func (c *Client) DeleteDoctor(ctx context.Context, id int64, token string) (*MessageResponse, error) {
	var resp MessageResponse
	path := fmt.Sprintf("/doctor/%d/%s", id, url.PathEscape(token))
	if err := c.do(ctx, http.MethodDelete, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
