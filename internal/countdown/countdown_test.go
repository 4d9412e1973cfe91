package countdown

import (
    "context"
    "sync"
    "testing"
    "time"
)

type recordingSwitcher struct {
    mu    sync.Mutex
    calls int
    err   error
    at    []time.Time
}

func (s *recordingSwitcher) SwitchToOnline(context.Context) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.calls++
    s.at = append(s.at, time.Now())
    return s.err
}

func (s *recordingSwitcher) count() int {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.calls
}

type recordingNavigator struct {
    mu        sync.Mutex
    videos    []string
    redirects []string
    reloads   int
}

func (n *recordingNavigator) PlayFinalVideo(url string) {
    n.mu.Lock()
    defer n.mu.Unlock()
    n.videos = append(n.videos, url)
}

func (n *recordingNavigator) Redirect(url string) {
    n.mu.Lock()
    defer n.mu.Unlock()
    n.redirects = append(n.redirects, url)
}

func (n *recordingNavigator) Reload() {
    n.mu.Lock()
    defer n.mu.Unlock()
    n.reloads++
}

func (n *recordingNavigator) total() int {
    n.mu.Lock()
    defer n.mu.Unlock()
    return len(n.videos) + len(n.redirects) + n.reloads
}

func TestSplit(t *testing.T) {
    cases := []struct {
        name string
        d    time.Duration
        want Remaining
    }{
        {"zero", 0, Remaining{}},
        {"negative clamps to zero", -5 * time.Second, Remaining{}},
        {"seconds only", 42 * time.Second, Remaining{Seconds: 42}},
        {"one minute", time.Minute, Remaining{Minutes: 1}},
        {"one hour", time.Hour, Remaining{Hours: 1}},
        {"one day", 24 * time.Hour, Remaining{Days: 1}},
        {"thirty days is one month", 30 * 24 * time.Hour, Remaining{Months: 1}},
        {"sixty-one days", 61 * 24 * time.Hour, Remaining{Months: 2, Days: 1}},
        {
            "mixed",
            35*24*time.Hour + 5*time.Hour + 4*time.Minute + 3*time.Second,
            Remaining{Months: 1, Days: 5, Hours: 5, Minutes: 4, Seconds: 3},
        },
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            if got := Split(tc.d); got != tc.want {
                t.Errorf("Split(%v) = %+v, want %+v", tc.d, got, tc.want)
            }
        })
    }
}

// Each 1s step shrinks the remaining tuple until it reaches zero;
// it never goes back up.
func TestSplitMonotonic(t *testing.T) {
    total := func(r Remaining) int {
        return ((r.Months*30+r.Days)*24+r.Hours)*3600 + r.Minutes*60 + r.Seconds
    }
    d := 2*time.Hour + 30*time.Second
    prev := total(Split(d))
    for d -= time.Second; d >= -2*time.Second; d -= time.Second {
        cur := total(Split(d))
        if cur > prev {
            t.Fatalf("remaining grew from %d to %d at d=%v", prev, cur, d)
        }
        prev = cur
    }
    if prev != 0 {
        t.Fatalf("final remaining = %d, want 0", prev)
    }
}

func TestTickBeforeLaunch(t *testing.T) {
    base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
    sw := &recordingSwitcher{}
    nav := &recordingNavigator{}
    c := New(Config{LaunchDate: base.Add(90 * time.Second), AutoSwitchToOnline: true}, sw, nav)
    c.now = func() time.Time { return base }

    rem := c.Tick(context.Background())
    want := Remaining{Minutes: 1, Seconds: 30}
    if rem != want {
        t.Errorf("Tick() = %+v, want %+v", rem, want)
    }
    if sw.count() != 0 || nav.total() != 0 {
        t.Error("nothing must fire while time remains")
    }
    if c.Elapsed() {
        t.Error("Elapsed() = true before the launch date")
    }
}

// The elapsed action runs exactly once no matter how many ticks arrive
// after the launch date.
func TestElapsedFiresOnce(t *testing.T) {
    base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
    sw := &recordingSwitcher{}
    nav := &recordingNavigator{}
    c := New(Config{LaunchDate: base.Add(time.Second), AutoSwitchToOnline: true}, sw, nav)

    now := base
    c.now = func() time.Time { return now }

    c.Tick(context.Background()) // still counting
    now = base.Add(2 * time.Second)
    for i := 0; i < 5; i++ {
        if rem := c.Tick(context.Background()); !rem.IsZero() {
            t.Fatalf("tick %d after launch returned %+v, want zero", i, rem)
        }
    }
    if got := sw.count(); got != 1 {
        t.Errorf("switcher called %d times, want 1", got)
    }
    if got := nav.total(); got != 1 {
        t.Errorf("navigator called %d times, want 1", got)
    }
}

// Already-elapsed at mount: the action fires on the very first tick.
func TestElapsedAtMount(t *testing.T) {
    base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
    sw := &recordingSwitcher{}
    nav := &recordingNavigator{}
    c := New(Config{LaunchDate: base.Add(-time.Hour), AutoSwitchToOnline: true}, sw, nav)
    c.now = func() time.Time { return base }

    if !c.Elapsed() {
        t.Fatal("Elapsed() = false for a past launch date")
    }
    c.Tick(context.Background())
    if sw.count() != 1 {
        t.Errorf("switcher called %d times, want 1", sw.count())
    }
    if nav.reloads != 1 {
        t.Errorf("reloads = %d, want 1", nav.reloads)
    }
}

func TestNavigationPriority(t *testing.T) {
    cases := []struct {
        name     string
        cfg      Config
        check    func(t *testing.T, nav *recordingNavigator)
    }{
        {
            "final video wins over redirect",
            Config{FinalVideoURL: "https://cdn.example/launch.mp4", RedirectURL: "https://example.org"},
            func(t *testing.T, nav *recordingNavigator) {
                if len(nav.videos) != 1 || nav.videos[0] != "https://cdn.example/launch.mp4" {
                    t.Errorf("videos = %v, want the final video", nav.videos)
                }
                if len(nav.redirects) != 0 || nav.reloads != 0 {
                    t.Error("only the video branch must run")
                }
            },
        },
        {
            "redirect when no video",
            Config{RedirectURL: "https://example.org"},
            func(t *testing.T, nav *recordingNavigator) {
                if len(nav.redirects) != 1 || nav.redirects[0] != "https://example.org" {
                    t.Errorf("redirects = %v, want the redirect url", nav.redirects)
                }
            },
        },
        {
            "reload as last resort",
            Config{},
            func(t *testing.T, nav *recordingNavigator) {
                if nav.reloads != 1 {
                    t.Errorf("reloads = %d, want 1", nav.reloads)
                }
            },
        },
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
            nav := &recordingNavigator{}
            cfg := tc.cfg
            cfg.LaunchDate = base.Add(-time.Second)
            c := New(cfg, nil, nav)
            c.now = func() time.Time { return base }
            c.Tick(context.Background())
            tc.check(t, nav)
        })
    }
}

// A failed auto-switch is logged but never blocks the navigation.
func TestSwitchFailureStillNavigates(t *testing.T) {
    base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
    sw := &recordingSwitcher{err: context.DeadlineExceeded}
    nav := &recordingNavigator{}
    c := New(Config{
        LaunchDate:         base.Add(-time.Second),
        AutoSwitchToOnline: true,
        RedirectURL:        "https://example.org",
    }, sw, nav)
    c.now = func() time.Time { return base }

    c.Tick(context.Background())
    if sw.count() != 1 {
        t.Fatalf("switcher called %d times, want 1", sw.count())
    }
    if len(nav.redirects) != 1 {
        t.Errorf("redirects = %v, want one entry", nav.redirects)
    }
}

func TestAutoSwitchDisabledSkipsSwitcher(t *testing.T) {
    base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
    sw := &recordingSwitcher{}
    nav := &recordingNavigator{}
    c := New(Config{LaunchDate: base.Add(-time.Second)}, sw, nav)
    c.now = func() time.Time { return base }

    c.Tick(context.Background())
    if sw.count() != 0 {
        t.Errorf("switcher called %d times, want 0", sw.count())
    }
    if nav.reloads != 1 {
        t.Errorf("reloads = %d, want 1", nav.reloads)
    }
}

func TestStartStop(t *testing.T) {
    base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
    nav := &recordingNavigator{}
    c := New(Config{LaunchDate: base.Add(-time.Second)}, nil, nav)
    c.now = func() time.Time { return base }
    c.tick = time.Millisecond

    ctx, cancel := context.WithCancel(context.Background())
    defer cancel()
    c.Start(ctx)

    deadline := time.After(time.Second)
    for nav.total() == 0 {
        select {
        case <-deadline:
            t.Fatal("elapsed action never fired")
        case <-time.After(5 * time.Millisecond):
        }
    }
    c.Stop()
    c.Stop() // second Stop must not panic
    if got := nav.total(); got != 1 {
        t.Errorf("navigator called %d times, want 1", got)
    }
}
