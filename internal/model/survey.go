package model

import "time"

// Survey represents a poll shown on the front page. Each survey owns a
// set of options; members vote at most once per survey.
//
// Fields:
//  ID        – primary key identifier.
//  Question  – the question shown to members.
//  Active    – whether the survey currently accepts votes.
//  ClosesAt  – optional closing time (nullable).
//  CreatedAt – creation timestamp.
type Survey struct {
    ID        uint64     // surveys.id
    Question  string     // surveys.question
    Active    bool       // surveys.active
    ClosesAt  *time.Time // surveys.closes_at (nullable)
    CreatedAt time.Time  // surveys.created_at
}

// SurveyOption is one selectable answer of a survey.
//
// Fields:
//  ID       – primary key identifier.
//  SurveyID – owning survey.
//  Label    – answer text.
//  Votes    – denormalised vote count maintained by the vote operation.
type SurveyOption struct {
    ID       uint64 // survey_options.id
    SurveyID uint64 // survey_options.survey_id
    Label    string // survey_options.label
    Votes    uint32 // survey_options.votes
}
