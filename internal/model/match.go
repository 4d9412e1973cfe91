package model

import "time"

// Match represents a fixture in the club calendar. Matches belong to a
// discipline and are listed publicly by month.
//
// Fields:
//  ID           – primary key identifier.
//  DisciplineID – discipline the fixture belongs to.
//  HomeTeam     – home side name.
//  AwayTeam     – away side name.
//  Venue        – where the match is played.
//  KickoffAt    – scheduled start.
//  HomeScore    – final home score (nullable until played).
//  AwayScore    – final away score (nullable until played).
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Match struct {
    ID           uint64    // matches.id
    DisciplineID uint64    // matches.discipline_id
    HomeTeam     string    // matches.home_team
    AwayTeam     string    // matches.away_team
    Venue        string    // matches.venue
    KickoffAt    time.Time // matches.kickoff_at
    HomeScore    *uint32   // matches.home_score (nullable)
    AwayScore    *uint32   // matches.away_score (nullable)
    CreatedAt    time.Time // matches.created_at
    UpdatedAt    time.Time // matches.updated_at
}
