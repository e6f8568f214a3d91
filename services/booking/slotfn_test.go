package booking

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"velora/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotFunctionClient(t *testing.T) {
	var calls int
	var gotAuth string
	var gotBody slotFunctionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(slotFunctionResponse{Slots: []string{"09:00", "09:15"}})
	}))
	defer server.Close()

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { cache.Close() })

	client := NewSlotFunctionClient(server.URL, "test-key", cache)

	slots, err := client.AvailableSlots("svc-cut", models.SpecificProfessional("p1"), "2026-09-14")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:15"}, slots)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "svc-cut", gotBody.ServiceID)
	assert.Equal(t, "p1", gotBody.ProfessionalID)
	assert.Equal(t, "2026-09-14", gotBody.Date)

	// The second identical lookup is served from the cache.
	slots, err = client.AvailableSlots("svc-cut", models.SpecificProfessional("p1"), "2026-09-14")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:15"}, slots)
	assert.Equal(t, 1, calls)
}

func TestSlotFunctionClientOmitsProfessionalForAny(t *testing.T) {
	var gotBody slotFunctionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(slotFunctionResponse{Slots: []string{}})
	}))
	defer server.Close()

	client := NewSlotFunctionClient(server.URL, "test-key", nil)
	_, err := client.AvailableSlots("svc-cut", models.AnyProfessional(), "2026-09-14")
	require.NoError(t, err)
	assert.Empty(t, gotBody.ProfessionalID)
}

func TestSlotFunctionClientSurfacesErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(slotFunctionResponse{Error: "unknown service"})
	}))
	defer server.Close()

	client := NewSlotFunctionClient(server.URL, "test-key", nil)
	_, err := client.AvailableSlots("svc-missing", models.AnyProfessional(), "2026-09-14")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown service")
}
