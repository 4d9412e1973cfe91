// Package countdown turns a future launch date into a live countdown
// and performs a one-time transition when it elapses. The server wires
// it up whenever the active coming-soon/maintenance status carries a
// launch date with auto-switch enabled, so the stored status flips back
// to online without an operator touching the admin panel.
package countdown

import (
    "context"
    "log"
    "sync"
    "time"
)

// Remaining is the display tuple recomputed on every tick.
// Months and days use a simplified 30-day month approximation; the
// split is intentionally not calendar-accurate near month boundaries.
type Remaining struct {
    Months  int `json:"months"`
    Days    int `json:"days"`
    Hours   int `json:"hours"`
    Minutes int `json:"minutes"`
    Seconds int `json:"seconds"`
}

// IsZero reports whether no time remains.
func (r Remaining) IsZero() bool {
    return r.Months == 0 && r.Days == 0 && r.Hours == 0 && r.Minutes == 0 && r.Seconds == 0
}

// Split breaks a duration into the countdown display tuple using
// 30-day months.
func Split(d time.Duration) Remaining {
    if d < 0 {
        d = 0
    }
    secs := int(d / time.Second)
    days := secs / 86400
    return Remaining{
        Months:  days / 30,
        Days:    days % 30,
        Hours:   secs % 86400 / 3600,
        Minutes: secs % 3600 / 60,
        Seconds: secs % 60,
    }
}

// StatusSwitcher flips the stored active status back to online. The
// production implementation is the status repository; tests substitute
// a recording fake.
type StatusSwitcher interface {
    SwitchToOnline(ctx context.Context) error
}

// Navigator receives the post-countdown destination. On the website
// this drives the visitor's browser; on the server it publishes the
// transition so connected clients refresh.
type Navigator interface {
    PlayFinalVideo(url string)
    Redirect(url string)
    Reload()
}

// Config parameterises one countdown instance, mirroring the countdown
// fields of a status definition.
type Config struct {
    LaunchDate         time.Time
    AutoSwitchToOnline bool
    FinalVideoURL      string
    RedirectURL        string
    // NavigateDelay is the short fixed pause between the auto-switch
    // call and the fallback navigation.
    NavigateDelay time.Duration
}

// Countdown is the timer state machine: Counting until the launch date,
// then Elapsed. The elapsed action runs exactly once even though the
// interval keeps ticking until Stop or context cancellation.
type Countdown struct {
    cfg      Config
    switcher StatusSwitcher
    nav      Navigator

    now  func() time.Time // injectable clock
    tick time.Duration

    mu    sync.Mutex
    fired bool

    stopOnce sync.Once
    stopc    chan struct{}
}

// New builds a countdown over the given configuration. switcher may be
// nil when auto-switch is disabled; nav must not be nil.
func New(cfg Config, switcher StatusSwitcher, nav Navigator) *Countdown {
    return &Countdown{
        cfg:      cfg,
        switcher: switcher,
        nav:      nav,
        now:      time.Now,
        tick:     time.Second,
        stopc:    make(chan struct{}),
    }
}

// Elapsed reports whether the launch date has passed at this instant.
func (c *Countdown) Elapsed() bool {
    return !c.cfg.LaunchDate.After(c.now())
}

// Remaining computes the current display tuple.
func (c *Countdown) Remaining() Remaining {
    return Split(c.cfg.LaunchDate.Sub(c.now()))
}

// Start begins the 1-second tick loop. If the launch date is already in
// the past at mount, the elapsed action fires on the first evaluation.
// The loop exits when ctx is cancelled or Stop is called.
func (c *Countdown) Start(ctx context.Context) {
    go func() {
        t := time.NewTicker(c.tick)
        defer t.Stop()
        c.Tick(ctx)
        for {
            select {
            case <-ctx.Done():
                return
            case <-c.stopc:
                return
            case <-t.C:
                c.Tick(ctx)
            }
        }
    }()
}

// Stop cancels the tick loop. There is no other cancellation path.
func (c *Countdown) Stop() {
    c.stopOnce.Do(func() { close(c.stopc) })
}

// Tick performs one evaluation: recompute the remaining tuple or, on
// the tick where remaining time reaches zero, run the elapsed action.
// The fired guard keeps the action from running twice even when the
// interval is not cleared immediately.
func (c *Countdown) Tick(ctx context.Context) Remaining {
    rem := c.cfg.LaunchDate.Sub(c.now())
    if rem > 0 {
        return Split(rem)
    }
    c.mu.Lock()
    already := c.fired
    c.fired = true
    c.mu.Unlock()
    if !already {
        c.elapse(ctx)
    }
    return Remaining{}
}

// elapse runs the one-time transition. A failed auto-switch is logged
// and never blocks the fallback navigation: the visitor-facing contract
// is "you will leave the countdown screen once the timer elapses".
func (c *Countdown) elapse(ctx context.Context) {
    if c.cfg.AutoSwitchToOnline && c.switcher != nil {
        if err := c.switcher.SwitchToOnline(ctx); err != nil {
            log.Printf("countdown: auto-switch to online failed: %v", err)
        }
        if c.cfg.NavigateDelay > 0 {
            time.Sleep(c.cfg.NavigateDelay)
        }
    }
    switch {
    case c.cfg.FinalVideoURL != "":
        c.nav.PlayFinalVideo(c.cfg.FinalVideoURL)
    case c.cfg.RedirectURL != "":
        c.nav.Redirect(c.cfg.RedirectURL)
    default:
        c.nav.Reload()
    }
}
