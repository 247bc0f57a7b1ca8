package resource

import (
	"context"

	"github.com/olegiv/newsdesk/internal/apiclient"
	"github.com/olegiv/newsdesk/internal/model"
)

// FlashNewsFilter narrows a flash news list.
type FlashNewsFilter struct {
	Status string
}

// FlashNewsInput is the writable part of a flash news banner.
type FlashNewsInput struct {
	Title     string            `json:"title"`
	ExpiresAt model.Time        `json:"expires_at"`
	Status    model.FlashStatus `json:"status"`
}

type flashNewsUpdate struct {
	ID int64 `json:"id"`
	FlashNewsInput
}

// FlashNews manages /flash-news.
type FlashNews struct {
	c *apiclient.Client
}

// List returns one page of banners.
func (r *FlashNews) List(ctx context.Context, page PageRequest, f FlashNewsFilter) (apiclient.ListResult[model.FlashNews], error) {
	body := page.body()
	setFilter(body, "status", f.Status)
	return list[model.FlashNews](ctx, r.c, "/flash-news/list", body)
}

// Show returns one banner.
func (r *FlashNews) Show(ctx context.Context, id int64) (model.FlashNews, error) {
	return show[model.FlashNews](ctx, r.c, "/flash-news/show", id)
}

// Create adds a banner.
func (r *FlashNews) Create(ctx context.Context, in FlashNewsInput) (model.FlashNews, error) {
	return postJSON[model.FlashNews](ctx, r.c, "/flash-news/create", in)
}

// Update replaces the banner with the given ID.
func (r *FlashNews) Update(ctx context.Context, id int64, in FlashNewsInput) (model.FlashNews, error) {
	return postJSON[model.FlashNews](ctx, r.c, "/flash-news/update", flashNewsUpdate{ID: id, FlashNewsInput: in})
}

// Delete removes a banner.
func (r *FlashNews) Delete(ctx context.Context, id int64) error {
	return byID(ctx, r.c, "/flash-news/delete", id)
}
