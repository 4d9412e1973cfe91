package main

import (
    "context"
    "log"
    "time"

    "github.com/canidoac/webcasares/internal/countdown"
    "github.com/canidoac/webcasares/internal/handler"
    "github.com/canidoac/webcasares/internal/model"
    "github.com/canidoac/webcasares/internal/queue"
    "github.com/canidoac/webcasares/internal/repository"
)

// armCountdown starts the server-side countdown when the active status
// asks for one: show_countdown with a launch date. If the date already
// passed at boot the elapsed action runs on the first tick, so a crash
// during the countdown cannot strand the site in coming-soon.
func armCountdown(ctx context.Context, statuses *repository.StatusRepo, pub *queue.Publisher, reval *handler.Revalidator) {
    lookupCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
    defer cancel()

    def, err := statuses.Active(lookupCtx)
    if err != nil {
        log.Printf("countdown: active status lookup failed, not arming: %v", err)
        return
    }
    if def == nil || !def.ShowCountdown || def.LaunchDate == nil {
        return
    }

    cfg := countdown.Config{
        LaunchDate:         *def.LaunchDate,
        AutoSwitchToOnline: def.AutoSwitchToOnline,
        NavigateDelay:      2 * time.Second,
    }
    if def.FinalVideoURL != nil {
        cfg.FinalVideoURL = *def.FinalVideoURL
    }
    if def.RedirectURL != nil {
        cfg.RedirectURL = *def.RedirectURL
    }

    sw := &announcingSwitcher{statuses: statuses, pub: pub}
    nav := &serverNavigator{reval: reval}
    log.Printf("countdown: armed for %s (launch %s, auto_switch=%v)",
        def.StatusKey, def.LaunchDate.UTC().Format(time.RFC3339), def.AutoSwitchToOnline)
    countdown.New(cfg, sw, nav).Start(ctx)
}

// announcingSwitcher flips the stored status to online and then emits a
// status.changed event attributed to the countdown. Publish failures
// are logged; the switch itself already happened.
type announcingSwitcher struct {
    statuses *repository.StatusRepo
    pub      *queue.Publisher
}

func (s *announcingSwitcher) SwitchToOnline(ctx context.Context) error {
    if err := s.statuses.SwitchToOnline(ctx); err != nil {
        return err
    }
    ev := queue.StatusChangedEvent{
        StatusKey: model.StatusOnline,
        ChangedAt: time.Now().UTC().Format(time.RFC3339),
        Source:    "countdown",
    }
    if err := s.pub.PublishStatusChanged(ctx, ev); err != nil {
        log.Printf("countdown: publish change event failed: %v", err)
    }
    return nil
}

// serverNavigator is the server-side stand-in for the browser
// navigation at the end of the countdown: it logs the destination and
// drops the response cache so the next page load sees the new state.
// Clients still counting locally navigate themselves.
type serverNavigator struct {
    reval *handler.Revalidator
}

func (n *serverNavigator) invalidate() {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    n.reval.Revalidate(ctx)
}

func (n *serverNavigator) PlayFinalVideo(url string) {
    log.Printf("countdown: elapsed, clients play final video %s", url)
    n.invalidate()
}

func (n *serverNavigator) Redirect(url string) {
    log.Printf("countdown: elapsed, clients redirect to %s", url)
    n.invalidate()
}

func (n *serverNavigator) Reload() {
    log.Println("countdown: elapsed, clients reload")
    n.invalidate()
}
