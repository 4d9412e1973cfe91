package model

import "time"

// News represents an article in the front-page carousel. Articles are
// authored through the admin panel and surfaced publicly ordered by
// publication date.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – headline.
//  Body        – article body (HTML fragment produced by the editor).
//  ImageURL    – cover image location (nullable).
//  Published   – whether the article is visible to visitors.
//  PublishedAt – publication timestamp used for carousel ordering.
//  AuthorID    – user who created the article.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type News struct {
    ID          uint64    // news.id
    Title       string    // news.title
    Body        string    // news.body
    ImageURL    *string   // news.image_url (nullable)
    Published   bool      // news.published
    PublishedAt time.Time // news.published_at
    AuthorID    uint64    // news.author_id
    CreatedAt   time.Time // news.created_at
    UpdatedAt   time.Time // news.updated_at
}

// NewsComment is a member comment attached to an article.
//
// Fields:
//  ID        – primary key identifier.
//  NewsID    – article being commented on.
//  UserID    – comment author.
//  Body      – comment text.
//  CreatedAt – creation timestamp.
type NewsComment struct {
    ID        uint64    // news_comments.id
    NewsID    uint64    // news_comments.news_id
    UserID    uint64    // news_comments.user_id
    Body      string    // news_comments.body
    CreatedAt time.Time // news_comments.created_at
}
