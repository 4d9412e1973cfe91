package model

import "time"

// Product represents an item in the club storefront. Checkout is
// handled off-site (payment messaging is delegated to the provider);
// the storefront only lists products and stock.
//
// Fields:
//  ID         – primary key identifier.
//  Name       – product name.
//  Description – long description.
//  PriceCents – price in euro cents.
//  ImageURL   – product image location (nullable).
//  Stock      – units available; zero renders as sold out.
//  Active     – whether the product is listed.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Product struct {
    ID          uint64    // products.id
    Name        string    // products.name
    Description string    // products.description
    PriceCents  uint32    // products.price_cents
    ImageURL    *string   // products.image_url (nullable)
    Stock       uint32    // products.stock
    Active      bool      // products.active
    CreatedAt   time.Time // products.created_at
    UpdatedAt   time.Time // products.updated_at
}
