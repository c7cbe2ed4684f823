package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/D6nnisAd/Celeste-Emerald/models"
	"github.com/D6nnisAd/Celeste-Emerald/store"
)

// fakeSettingsStore mirrors the real store contract: Save stamps LastUpdated
// and overwrites the record wholesale.
type fakeSettingsStore struct {
	mu      sync.Mutex
	saved   *models.Settings
	getErr  error
	saveErr error
}

func (f *fakeSettingsStore) Get(_ context.Context) (*models.Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.saved == nil {
		return nil, store.ErrSettingsNotFound
	}
	copied := *f.saved
	return &copied, nil
}

func (f *fakeSettingsStore) Save(_ context.Context, settings *models.Settings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	settings.LastUpdated = time.Now()
	copied := *settings
	f.saved = &copied
	return nil
}

func newSettingsRouter(fake *fakeSettingsStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSettingsHandlers(fake)
	r.GET("/api/admin/settings", h.GetSettings)
	r.PUT("/api/admin/settings", h.SaveSettings)
	return r
}

func getSettings(t *testing.T, r *gin.Engine) (*httptest.ResponseRecorder, models.Settings) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/settings", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var settings models.Settings
	if w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), &settings); err != nil {
			t.Fatalf("unmarshal settings: %v", err)
		}
	}
	return w, settings
}

func putSettings(t *testing.T, r *gin.Engine, body models.SaveSettingsRequest) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal settings: %v", err)
	}
	req := httptest.NewRequest(http.MethodPut, "/api/admin/settings", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetSettingsDefaultsBeforeFirstSave(t *testing.T) {
	r := newSettingsRouter(&fakeSettingsStore{})

	w, settings := getSettings(t, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if settings.EnablePaystack || settings.SupportLink != "" || settings.BankName != "" {
		t.Errorf("expected zero-value defaults, got %+v", settings)
	}
}

func TestSettingsSaveLoadRoundTrip(t *testing.T) {
	fake := &fakeSettingsStore{}
	r := newSettingsRouter(fake)

	req := models.SaveSettingsRequest{
		EnablePaystack: true,
		SupportLink:    "https://wa.me/123",
		BankName:       "First Bank",
		AccountNumber:  "0123456789",
		AccountName:    "Celeste Ltd",
	}
	if w := putSettings(t, r, req); w.Code != http.StatusOK {
		t.Fatalf("save status = %d, want 200: %s", w.Code, w.Body.String())
	}

	_, settings := getSettings(t, r)
	if !settings.EnablePaystack ||
		settings.SupportLink != req.SupportLink ||
		settings.BankName != req.BankName ||
		settings.AccountNumber != req.AccountNumber ||
		settings.AccountName != req.AccountName {
		t.Errorf("round trip mismatch: %+v", settings)
	}
	if settings.LastUpdated.IsZero() {
		t.Error("LastUpdated not stamped on save")
	}

	// A second save strictly advances LastUpdated.
	first := settings.LastUpdated
	time.Sleep(time.Millisecond)
	putSettings(t, r, req)
	_, settings = getSettings(t, r)
	if !settings.LastUpdated.After(first) {
		t.Errorf("LastUpdated did not advance: %v -> %v", first, settings.LastUpdated)
	}
}

func TestSaveSettingsFailureSurfacesError(t *testing.T) {
	fake := &fakeSettingsStore{saveErr: errors.New("write rejected")}
	r := newSettingsRouter(fake)

	w := putSettings(t, r, models.SaveSettingsRequest{BankName: "First Bank"})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if msg, _ := resp["error"].(string); msg == "" {
		t.Error("backend error message not surfaced")
	}
}
