package handler

import (
    "context"
    "sort"

    "github.com/canidoac/webcasares/internal/model"
    "github.com/canidoac/webcasares/internal/queue"
    "github.com/canidoac/webcasares/internal/repository"
)

// fakeStatusStore is an in-memory StatusStore. It mirrors the
// repository's self-healing read: ReadConfig creates the singleton
// config row on first use and never creates a second one.
type fakeStatusStore struct {
    defs       map[uint64]model.SiteStatusDefinition
    cfg        *model.SiteStatusConfig
    err        error
    healCount  int
    setCalls   []uint64
    lastPatch  repository.DefinitionPatch
    lastToggle []interface{}
}

func newFakeStatusStore(defs ...model.SiteStatusDefinition) *fakeStatusStore {
    s := &fakeStatusStore{defs: map[uint64]model.SiteStatusDefinition{}}
    for _, d := range defs {
        s.defs[d.ID] = d
    }
    return s
}

func (s *fakeStatusStore) ListDefinitions(context.Context) ([]model.SiteStatusDefinition, error) {
    if s.err != nil {
        return nil, s.err
    }
    out := make([]model.SiteStatusDefinition, 0, len(s.defs))
    for _, d := range s.defs {
        out = append(out, d)
    }
    sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
    return out, nil
}

func (s *fakeStatusStore) GetDefinition(_ context.Context, id uint64) (model.SiteStatusDefinition, error) {
    if s.err != nil {
        return model.SiteStatusDefinition{}, s.err
    }
    d, ok := s.defs[id]
    if !ok {
        return model.SiteStatusDefinition{}, repository.ErrNotFound
    }
    return d, nil
}

func (s *fakeStatusStore) UpdateDefinition(_ context.Context, id uint64, p repository.DefinitionPatch) error {
    if s.err != nil {
        return s.err
    }
    d, ok := s.defs[id]
    if !ok {
        return repository.ErrNotFound
    }
    s.lastPatch = p
    if p.Title != nil {
        d.Title = *p.Title
    }
    if p.Message != nil {
        d.Message = *p.Message
    }
    if p.MediaType != nil {
        d.MediaType = *p.MediaType
    }
    if p.MediaURL != nil {
        d.MediaURL = p.MediaURL
    }
    if p.ShowCountdown != nil {
        d.ShowCountdown = *p.ShowCountdown
    }
    if p.ClearLaunchDate {
        d.LaunchDate = nil
    } else if p.LaunchDate != nil {
        d.LaunchDate = p.LaunchDate
    }
    if p.RedirectURL != nil {
        d.RedirectURL = p.RedirectURL
    }
    if p.AutoSwitchToOnline != nil {
        d.AutoSwitchToOnline = *p.AutoSwitchToOnline
    }
    if p.FinalVideoURL != nil {
        d.FinalVideoURL = p.FinalVideoURL
    }
    s.defs[id] = d
    return nil
}

func (s *fakeStatusStore) ReadConfig(context.Context) (model.SiteStatusConfig, error) {
    if s.err != nil {
        return model.SiteStatusConfig{}, s.err
    }
    if s.cfg == nil {
        s.healCount++
        cfg := model.SiteStatusConfig{ID: 1, RegistrationEnabled: true}
        for _, d := range s.defs {
            if d.StatusKey == model.StatusOnline {
                id := d.ID
                cfg.ActiveStatusID = &id
                break
            }
        }
        s.cfg = &cfg
    }
    return *s.cfg, nil
}

func (s *fakeStatusStore) SetActiveStatus(_ context.Context, statusID uint64) error {
    if s.err != nil {
        return s.err
    }
    s.setCalls = append(s.setCalls, statusID)
    if s.cfg == nil {
        s.cfg = &model.SiteStatusConfig{ID: 1, RegistrationEnabled: true}
    }
    id := statusID
    s.cfg.ActiveStatusID = &id
    return nil
}

func (s *fakeStatusStore) UpdateToggles(_ context.Context, showBanner bool, bannerText string, showPopup bool, popupText string, registrationEnabled bool) error {
    if s.err != nil {
        return s.err
    }
    if s.cfg == nil {
        s.cfg = &model.SiteStatusConfig{ID: 1}
    }
    s.cfg.ShowBanner = showBanner
    s.cfg.BannerText = bannerText
    s.cfg.ShowPopup = showPopup
    s.cfg.PopupText = popupText
    s.cfg.RegistrationEnabled = registrationEnabled
    s.lastToggle = []interface{}{showBanner, bannerText, showPopup, popupText, registrationEnabled}
    return nil
}

// active returns the definition the config points at, mirroring the
// repository's gate.StatusSource implementation.
func (s *fakeStatusStore) Active(context.Context) (*model.SiteStatusDefinition, error) {
    if s.err != nil {
        return nil, s.err
    }
    if s.cfg == nil || s.cfg.ActiveStatusID == nil {
        return nil, nil
    }
    d, ok := s.defs[*s.cfg.ActiveStatusID]
    if !ok {
        return nil, nil
    }
    return &d, nil
}

// fakePublisher records status change events.
type fakePublisher struct {
    events []queue.StatusChangedEvent
    err    error
}

func (p *fakePublisher) PublishStatusChanged(_ context.Context, ev queue.StatusChangedEvent) error {
    if p.err != nil {
        return p.err
    }
    p.events = append(p.events, ev)
    return nil
}
