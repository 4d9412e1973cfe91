package model

import "time"

// ClubInfo is the singleton row (id = 1) holding the club's public
// identity: name, crest, contact details and social links. Edited
// through the admin panel, read by the public pages.
type ClubInfo struct {
    ID           uint64    // club_info.id
    Name         string    // club_info.name
    Description  string    // club_info.description
    CrestURL     *string   // club_info.crest_url (nullable)
    ContactEmail string    // club_info.contact_email
    ContactPhone string    // club_info.contact_phone
    Address      string    // club_info.address
    InstagramURL *string   // club_info.instagram_url (nullable)
    FacebookURL  *string   // club_info.facebook_url (nullable)
    UpdatedAt    time.Time // club_info.updated_at
}

// Sponsor is a club sponsor shown in the public sponsor strip,
// ordered by Position.
type Sponsor struct {
    ID        uint64    // sponsors.id
    Name      string    // sponsors.name
    LogoURL   *string   // sponsors.logo_url (nullable)
    WebURL    *string   // sponsors.web_url (nullable)
    Position  uint32    // sponsors.position
    Active    bool      // sponsors.active
    CreatedAt time.Time // sponsors.created_at
}

// Discipline is a sport section of the club (football, basketball...).
// Disciplines group teams and matches in the calendar.
type Discipline struct {
    ID          uint64    // disciplines.id
    Name        string    // disciplines.name
    Description string    // disciplines.description
    ImageURL    *string   // disciplines.image_url (nullable)
    Active      bool      // disciplines.active
    CreatedAt   time.Time // disciplines.created_at
}
