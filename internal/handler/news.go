package handler

import (
    "context"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/canidoac/webcasares/internal/gate"
    "github.com/canidoac/webcasares/internal/middleware"
    "github.com/canidoac/webcasares/internal/model"
    "github.com/canidoac/webcasares/internal/repository"
)

// NewsHandler serves the front-page carousel, likes and comments, plus
// the admin news panel.
type NewsHandler struct {
    News       *repository.NewsRepo
    Privileges gate.PrivilegeResolver
    Reval      *Revalidator
}

func NewNewsHandler(n *repository.NewsRepo, privileges gate.PrivilegeResolver, reval *Revalidator) *NewsHandler {
    return &NewsHandler{News: n, Privileges: privileges, Reval: reval}
}

// getID parses the :id path parameter.
func getID(c echo.Context) (uint64, error) {
    return strconv.ParseUint(c.Param("id"), 10, 64)
}

// List handles GET /api/news: published articles newest first.
func (h *NewsHandler) List(c echo.Context) error {
    limit, _ := strconv.Atoi(c.QueryParam("limit"))
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    items, err := h.News.ListPublished(ctx, limit)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load news failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"news": items})
}

// Get handles GET /api/news/:id with like count and comments.
func (h *NewsHandler) Get(c echo.Context) error {
    id, err := getID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    n, err := h.News.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "news not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load news failed"})
    }
    likes, err := h.News.LikeCount(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load likes failed"})
    }
    comments, err := h.News.ListComments(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load comments failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"news": n, "likes": likes, "comments": comments})
}

type newsReq struct {
    Title       string  `json:"title"`
    Body        string  `json:"body"`
    ImageURL    *string `json:"image_url"`
    Published   bool    `json:"published"`
    PublishedAt string  `json:"published_at"`
}

func (r newsReq) toModel() (model.News, error) {
    n := model.News{
        Title:     strings.TrimSpace(r.Title),
        Body:      r.Body,
        ImageURL:  r.ImageURL,
        Published: r.Published,
    }
    n.PublishedAt = time.Now().UTC()
    if s := strings.TrimSpace(r.PublishedAt); s != "" {
        t, err := time.Parse(time.RFC3339, s)
        if err != nil {
            return n, err
        }
        n.PublishedAt = t
    }
    return n, nil
}

// Create handles POST /api/admin/news.
func (h *NewsHandler) Create(c echo.Context) error {
    id, _ := middleware.Identity(c)
    var req newsReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    n, err := req.toModel()
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid published_at format"})
    }
    if n.Title == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
    }
    n.AuthorID = id.UserID

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    newsID, err := h.News.Create(ctx, &n)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create news failed"})
    }
    h.Reval.Revalidate(ctx)
    n.ID = newsID
    return c.JSON(http.StatusCreated, echo.Map{"news": n})
}

// Update handles PUT /api/admin/news/:id.
func (h *NewsHandler) Update(c echo.Context) error {
    id, err := getID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req newsReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    n, err := req.toModel()
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid published_at format"})
    }
    n.ID = id

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.News.Update(ctx, &n); err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "news not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update news failed"})
    }
    h.Reval.Revalidate(ctx)
    return c.JSON(http.StatusOK, echo.Map{"news": n})
}

// Delete handles DELETE /api/admin/news/:id.
func (h *NewsHandler) Delete(c echo.Context) error {
    id, err := getID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.News.Delete(ctx, id); err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "news not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete news failed"})
    }
    h.Reval.Revalidate(ctx)
    return c.NoContent(http.StatusNoContent)
}

// Like handles POST /api/news/:id/like with toggle semantics.
func (h *NewsHandler) Like(c echo.Context) error {
    uid, ok := middleware.Identity(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := getID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    liked, err := h.News.Like(ctx, id, uid.UserID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "like failed"})
    }
    likes, err := h.News.LikeCount(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load likes failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"liked": liked, "likes": likes})
}

type commentReq struct {
    Body string `json:"body"`
}

// Comment handles POST /api/news/:id/comments.
func (h *NewsHandler) Comment(c echo.Context) error {
    uid, ok := middleware.Identity(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := getID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req commentReq
    if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Body) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "body is required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    cm := model.NewsComment{NewsID: id, UserID: uid.UserID, Body: strings.TrimSpace(req.Body)}
    cmID, err := h.News.AddComment(ctx, &cm)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create comment failed"})
    }
    cm.ID = cmID
    return c.JSON(http.StatusCreated, echo.Map{"comment": cm})
}

// DeleteComment handles DELETE /api/news/comments/:id. Members may only
// delete their own comments; admins may delete any.
func (h *NewsHandler) DeleteComment(c echo.Context) error {
    uid, ok := middleware.Identity(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    isAdmin := h.Privileges.IsPrivileged(uid.RoleID)
    id, err := getID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.News.DeleteComment(ctx, id, uid.UserID, isAdmin); err != nil {
        switch err {
        case repository.ErrNotFound:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "comment not found"})
        case repository.ErrForbidden:
            return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete comment failed"})
        }
    }
    return c.NoContent(http.StatusNoContent)
}
