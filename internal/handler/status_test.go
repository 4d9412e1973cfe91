package handler

import (
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/canidoac/webcasares/internal/model"
)

func seedDefinitions() []model.SiteStatusDefinition {
    return []model.SiteStatusDefinition{
        {ID: 1, StatusKey: model.StatusOnline, Title: "Online", MediaType: model.MediaNone},
        {ID: 2, StatusKey: model.StatusMaintenance, Title: "Mantenimiento", MediaType: model.MediaNone},
        {ID: 3, StatusKey: model.StatusComingSoon, Title: "Próximamente", MediaType: model.MediaNone},
    }
}

func statusRequest(h *StatusHandler, method, body string) (*httptest.ResponseRecorder, echo.Context) {
    e := echo.New()
    var req *http.Request
    if body == "" {
        req = httptest.NewRequest(method, "/api/admin/site-status", nil)
    } else {
        req = httptest.NewRequest(method, "/api/admin/site-status", strings.NewReader(body))
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    }
    rec := httptest.NewRecorder()
    return rec, e.NewContext(req, rec)
}

func TestStatusGet(t *testing.T) {
    store := newFakeStatusStore(seedDefinitions()...)
    h := NewStatusHandler(store, &fakePublisher{}, nil)

    rec, c := statusRequest(h, http.MethodGet, "")
    if err := h.Get(c); err != nil {
        t.Fatalf("Get: %v", err)
    }
    if rec.Code != http.StatusOK {
        t.Fatalf("status = %d, want 200", rec.Code)
    }

    var resp struct {
        Statuses       []statusDefPart `json:"statuses"`
        ActiveStatusID *uint64         `json:"activeStatusId"`
    }
    if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
        t.Fatalf("decode: %v", err)
    }
    if len(resp.Statuses) != 3 {
        t.Errorf("statuses = %d, want 3", len(resp.Statuses))
    }
    if resp.ActiveStatusID == nil || *resp.ActiveStatusID != 1 {
        t.Errorf("activeStatusId = %v, want 1 (online)", resp.ActiveStatusID)
    }
}

// Reading must be idempotent: the missing config row is created once,
// and repeated reads return the same active status without creating
// more rows.
func TestStatusGetSelfHealsOnce(t *testing.T) {
    store := newFakeStatusStore(seedDefinitions()...)
    h := NewStatusHandler(store, &fakePublisher{}, nil)

    var first, second *uint64
    for i, dst := range []**uint64{&first, &second} {
        rec, c := statusRequest(h, http.MethodGet, "")
        if err := h.Get(c); err != nil {
            t.Fatalf("Get %d: %v", i, err)
        }
        var resp struct {
            ActiveStatusID *uint64 `json:"activeStatusId"`
        }
        if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
            t.Fatalf("decode %d: %v", i, err)
        }
        *dst = resp.ActiveStatusID
    }
    if store.healCount != 1 {
        t.Errorf("config row created %d times, want 1", store.healCount)
    }
    if first == nil || second == nil || *first != *second {
        t.Errorf("activeStatusId changed between reads: %v vs %v", first, second)
    }
}

func TestStatusPutRequiresATarget(t *testing.T) {
    store := newFakeStatusStore(seedDefinitions()...)
    h := NewStatusHandler(store, &fakePublisher{}, nil)

    rec, c := statusRequest(h, http.MethodPut, `{"title":"orphan"}`)
    if err := h.Put(c); err != nil {
        t.Fatalf("Put: %v", err)
    }
    if rec.Code != http.StatusBadRequest {
        t.Errorf("status = %d, want 400 without activeStatusId or statusId", rec.Code)
    }
}

func TestStatusPutSwitchActive(t *testing.T) {
    store := newFakeStatusStore(seedDefinitions()...)
    pub := &fakePublisher{}
    h := NewStatusHandler(store, pub, nil)

    rec, c := statusRequest(h, http.MethodPut, `{"activeStatusId":2}`)
    if err := h.Put(c); err != nil {
        t.Fatalf("Put: %v", err)
    }
    if rec.Code != http.StatusOK {
        t.Fatalf("status = %d, want 200", rec.Code)
    }
    if len(store.setCalls) != 1 || store.setCalls[0] != 2 {
        t.Errorf("setCalls = %v, want [2]", store.setCalls)
    }
    if len(pub.events) != 1 {
        t.Fatalf("published %d events, want 1", len(pub.events))
    }
    ev := pub.events[0]
    if ev.StatusKey != model.StatusMaintenance || ev.Source != "admin" {
        t.Errorf("event = %+v", ev)
    }
}

func TestStatusPutUnknownActive(t *testing.T) {
    store := newFakeStatusStore(seedDefinitions()...)
    h := NewStatusHandler(store, &fakePublisher{}, nil)

    rec, c := statusRequest(h, http.MethodPut, `{"activeStatusId":99}`)
    if err := h.Put(c); err != nil {
        t.Fatalf("Put: %v", err)
    }
    if rec.Code != http.StatusNotFound {
        t.Errorf("status = %d, want 404", rec.Code)
    }
    if len(store.setCalls) != 0 {
        t.Errorf("setCalls = %v, want none", store.setCalls)
    }
}

// A publish failure is logged, never surfaced: the flip already took
// effect in the database.
func TestStatusPutPublishFailureIsIgnored(t *testing.T) {
    store := newFakeStatusStore(seedDefinitions()...)
    pub := &fakePublisher{err: echo.ErrServiceUnavailable}
    h := NewStatusHandler(store, pub, nil)

    rec, c := statusRequest(h, http.MethodPut, `{"activeStatusId":3}`)
    if err := h.Put(c); err != nil {
        t.Fatalf("Put: %v", err)
    }
    if rec.Code != http.StatusOK {
        t.Errorf("status = %d, want 200 despite publish failure", rec.Code)
    }
}

func TestStatusPutPartialUpdate(t *testing.T) {
    store := newFakeStatusStore(seedDefinitions()...)
    h := NewStatusHandler(store, &fakePublisher{}, nil)

    launch := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
    body := `{"statusId":3,"title":"Nueva web","show_countdown":true,"launch_date":"` +
        launch.Format(time.RFC3339) + `"}`
    rec, c := statusRequest(h, http.MethodPut, body)
    if err := h.Put(c); err != nil {
        t.Fatalf("Put: %v", err)
    }
    if rec.Code != http.StatusOK {
        t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
    }

    got := store.defs[3]
    if got.Title != "Nueva web" {
        t.Errorf("title = %q", got.Title)
    }
    if !got.ShowCountdown {
        t.Error("show_countdown not applied")
    }
    if got.LaunchDate == nil || !got.LaunchDate.Equal(launch) {
        t.Errorf("launch_date = %v, want %v", got.LaunchDate, launch)
    }
    // Untouched fields stay as they were.
    if got.Message != "" || got.StatusKey != model.StatusComingSoon {
        t.Errorf("unrelated fields changed: %+v", got)
    }
}

func TestStatusPutClearsLaunchDate(t *testing.T) {
    defs := seedDefinitions()
    launch := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
    defs[2].LaunchDate = &launch
    store := newFakeStatusStore(defs...)
    h := NewStatusHandler(store, &fakePublisher{}, nil)

    rec, c := statusRequest(h, http.MethodPut, `{"statusId":3,"launch_date":""}`)
    if err := h.Put(c); err != nil {
        t.Fatalf("Put: %v", err)
    }
    if rec.Code != http.StatusOK {
        t.Fatalf("status = %d, want 200", rec.Code)
    }
    if store.defs[3].LaunchDate != nil {
        t.Errorf("launch_date = %v, want cleared", store.defs[3].LaunchDate)
    }
}

func TestStatusPutRejectsBadLaunchDate(t *testing.T) {
    store := newFakeStatusStore(seedDefinitions()...)
    h := NewStatusHandler(store, &fakePublisher{}, nil)

    rec, c := statusRequest(h, http.MethodPut, `{"statusId":3,"launch_date":"01/09/2026"}`)
    if err := h.Put(c); err != nil {
        t.Fatalf("Put: %v", err)
    }
    if rec.Code != http.StatusBadRequest {
        t.Errorf("status = %d, want 400 for a non-RFC3339 date", rec.Code)
    }
}

func TestStatusPutUnknownDefinition(t *testing.T) {
    store := newFakeStatusStore(seedDefinitions()...)
    h := NewStatusHandler(store, &fakePublisher{}, nil)

    rec, c := statusRequest(h, http.MethodPut, `{"statusId":99,"title":"ghost"}`)
    if err := h.Put(c); err != nil {
        t.Fatalf("Put: %v", err)
    }
    if rec.Code != http.StatusNotFound {
        t.Errorf("status = %d, want 404", rec.Code)
    }
}

func TestStatusPutToggles(t *testing.T) {
    store := newFakeStatusStore(seedDefinitions()...)
    h := NewStatusHandler(store, &fakePublisher{}, nil)

    e := echo.New()
    body := `{"show_banner":true,"banner_text":"Partido el sábado","registration_enabled":false}`
    req := httptest.NewRequest(http.MethodPut, "/api/admin/site-toggles", strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    if err := h.PutToggles(e.NewContext(req, rec)); err != nil {
        t.Fatalf("PutToggles: %v", err)
    }
    if rec.Code != http.StatusNoContent {
        t.Fatalf("status = %d, want 204", rec.Code)
    }
    if store.cfg == nil || !store.cfg.ShowBanner || store.cfg.BannerText != "Partido el sábado" {
        t.Errorf("config = %+v", store.cfg)
    }
    if store.cfg.RegistrationEnabled {
        t.Error("registration_enabled not applied")
    }
}
