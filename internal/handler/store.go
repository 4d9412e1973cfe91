package handler

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/canidoac/webcasares/internal/model"
    "github.com/canidoac/webcasares/internal/repository"
)

// StoreHandler serves the public storefront and the admin product
// panel. Checkout itself is delegated to the payment provider; the
// storefront only lists products and stock.
type StoreHandler struct {
    Products *repository.ProductRepo
    Reval    *Revalidator
}

func NewStoreHandler(p *repository.ProductRepo, reval *Revalidator) *StoreHandler {
    return &StoreHandler{Products: p, Reval: reval}
}

// List handles GET /api/store/products.
func (h *StoreHandler) List(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    items, err := h.Products.ListActive(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load products failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"products": items})
}

// Get handles GET /api/store/products/:id.
func (h *StoreHandler) Get(c echo.Context) error {
    id, err := getID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    p, err := h.Products.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load product failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"product": p})
}

type productReq struct {
    Name        string  `json:"name"`
    Description string  `json:"description"`
    PriceCents  uint32  `json:"price_cents"`
    ImageURL    *string `json:"image_url"`
    Stock       uint32  `json:"stock"`
    Active      bool    `json:"active"`
}

// Create handles POST /api/admin/store/products.
func (h *StoreHandler) Create(c echo.Context) error {
    var req productReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if strings.TrimSpace(req.Name) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
    }
    p := model.Product{
        Name: strings.TrimSpace(req.Name), Description: req.Description,
        PriceCents: req.PriceCents, ImageURL: req.ImageURL,
        Stock: req.Stock, Active: req.Active,
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    id, err := h.Products.Create(ctx, &p)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create product failed"})
    }
    h.Reval.Revalidate(ctx)
    p.ID = id
    return c.JSON(http.StatusCreated, echo.Map{"product": p})
}

// Update handles PUT /api/admin/store/products/:id.
func (h *StoreHandler) Update(c echo.Context) error {
    id, err := getID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req productReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    p := model.Product{
        ID: id, Name: strings.TrimSpace(req.Name), Description: req.Description,
        PriceCents: req.PriceCents, ImageURL: req.ImageURL,
        Stock: req.Stock, Active: req.Active,
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Products.Update(ctx, &p); err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update product failed"})
    }
    h.Reval.Revalidate(ctx)
    return c.JSON(http.StatusOK, echo.Map{"product": p})
}

// Delete handles DELETE /api/admin/store/products/:id.
func (h *StoreHandler) Delete(c echo.Context) error {
    id, err := getID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Products.Delete(ctx, id); err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete product failed"})
    }
    h.Reval.Revalidate(ctx)
    return c.NoContent(http.StatusNoContent)
}
