package model

import "time"

// Status keys recognised by the availability gate. Definitions with
// other keys may exist in the table; the evaluator treats unknown
// keys as online.
const (
    StatusOnline      = "online"
    StatusMaintenance = "maintenance"
    StatusComingSoon  = "coming_soon"
)

// Media types a status page may present alongside its message.
const (
    MediaNone  = "none"
    MediaImage = "image"
    MediaVideo = "video"
)

// SiteStatusDefinition represents a row in the `site_status_definitions`
// table: one row per status key (online, maintenance, coming_soon) plus
// any future keys. Definitions carry the display copy and the optional
// countdown behaviour rendered when the status is active.
//
// Fields:
//  ID                 – primary key identifier.
//  StatusKey          – unique enum-like key (online/maintenance/coming_soon).
//  Title              – headline shown on the status page.
//  Message            – body copy shown on the status page.
//  MediaType          – none, image or video.
//  MediaURL           – location of the image/looping video (nullable).
//  ShowCountdown      – whether to render a countdown block.
//  LaunchDate         – countdown target; only meaningful when ShowCountdown is set.
//  RedirectURL        – external URL to send visitors to after the countdown (nullable).
//  AutoSwitchToOnline – flip the active status back to online when the countdown elapses.
//  FinalVideoURL      – video played after countdown completion (nullable).
type SiteStatusDefinition struct {
    ID                 uint64     // site_status_definitions.id
    StatusKey          string     // site_status_definitions.status_key
    Title              string     // site_status_definitions.title
    Message            string     // site_status_definitions.message
    MediaType          string     // site_status_definitions.media_type
    MediaURL           *string    // site_status_definitions.media_url (nullable)
    ShowCountdown      bool       // site_status_definitions.show_countdown
    LaunchDate         *time.Time // site_status_definitions.launch_date (nullable)
    RedirectURL        *string    // site_status_definitions.redirect_url (nullable)
    AutoSwitchToOnline bool       // site_status_definitions.auto_switch_to_online
    FinalVideoURL      *string    // site_status_definitions.final_video_url (nullable)
    CreatedAt          time.Time  // site_status_definitions.created_at
    UpdatedAt          time.Time  // site_status_definitions.updated_at
}

// SiteStatusConfig is the singleton row (id = 1) in `site_config` that
// names the active status and carries presentation toggles unrelated to
// the gate itself. Exactly one row must exist; the read path self-heals
// a missing row and the gate treats an absent row as online.
//
// Fields:
//  ID                  – always 1.
//  ActiveStatusID      – foreign key into site_status_definitions (nullable).
//  ShowBanner          – render the announcement banner.
//  BannerText          – banner copy.
//  ShowPopup           – render the announcement popup.
//  PopupText           – popup copy.
//  RegistrationEnabled – whether new member registration is open.
type SiteStatusConfig struct {
    ID                  uint64    // site_config.id
    ActiveStatusID      *uint64   // site_config.active_status_id (nullable)
    ShowBanner          bool      // site_config.show_banner
    BannerText          string    // site_config.banner_text
    ShowPopup           bool      // site_config.show_popup
    PopupText           string    // site_config.popup_text
    RegistrationEnabled bool      // site_config.registration_enabled
    UpdatedAt           time.Time // site_config.updated_at
}
