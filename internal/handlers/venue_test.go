package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dimitrije/futbol-api/internal/match"
	"github.com/dimitrije/futbol-api/internal/models"
	"github.com/dimitrije/futbol-api/pkg/dto"
	"github.com/dimitrije/futbol-api/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestVenueHandler_List(t *testing.T) {
	mockVenueService := new(testutil.MockVenueService)
	handler := NewVenueHandler(mockVenueService)

	venues := []models.Venue{
		{ID: uuid.New(), Name: "Cancha Norte", Address: "Av. Siempreviva 742"},
		{ID: uuid.New(), Name: "Cancha Sur"},
	}
	mockVenueService.On("List", mock.Anything).Return(venues, nil)

	app := newApp(http.MethodGet, "/venues", handler.List)
	rec := doRequest(t, app, http.MethodGet, "/venues", uuid.New(), nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []dto.VenueResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response, 2)
	assert.Equal(t, "Cancha Norte", response[0].Name)
}

func TestVenueHandler_Get(t *testing.T) {
	mockVenueService := new(testutil.MockVenueService)
	handler := NewVenueHandler(mockVenueService)

	venue := &models.Venue{ID: uuid.New(), Name: "Cancha Norte", Address: "Av. Siempreviva 742"}
	mockVenueService.On("GetByID", mock.Anything, venue.ID).Return(venue, nil)

	app := newApp(http.MethodGet, "/venues/:id", handler.Get)
	rec := doRequest(t, app, http.MethodGet, "/venues/"+venue.ID.String(), uuid.New(), nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.VenueResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, venue.ID, response.ID)
	assert.Equal(t, "Av. Siempreviva 742", response.Address)
}

func TestVenueHandler_Get_NotFound(t *testing.T) {
	mockVenueService := new(testutil.MockVenueService)
	handler := NewVenueHandler(mockVenueService)

	id := uuid.New()
	mockVenueService.On("GetByID", mock.Anything, id).Return(nil, match.ErrVenueNotFound)

	app := newApp(http.MethodGet, "/venues/:id", handler.Get)
	rec := doRequest(t, app, http.MethodGet, "/venues/"+id.String(), uuid.New(), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, match.CodeVenueNotFound, decodeError(t, rec).Code)
}

func TestVenueHandler_Get_InvalidID(t *testing.T) {
	handler := NewVenueHandler(new(testutil.MockVenueService))

	app := newApp(http.MethodGet, "/venues/:id", handler.Get)
	rec := doRequest(t, app, http.MethodGet, "/venues/not-a-uuid", uuid.New(), nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
