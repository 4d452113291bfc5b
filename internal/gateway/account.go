package gateway

import (
	"context"
	"net/http"

	"github.com/HillaryNyakundi/ecommerce-frontend/internal/apiclient"
	"github.com/HillaryNyakundi/ecommerce-frontend/internal/models"
)

const mePath = "/me/"

type Account struct {
	client *apiclient.Client
}

func NewAccount(c *apiclient.Client) *Account { return &Account{client: c} }

func (a *Account) Me(ctx context.Context) (models.Envelope[models.Account], error) {
	var out models.Envelope[models.Account]
	err := a.client.Do(ctx, &apiclient.Request{Method: http.MethodGet, Path: mePath}, &out)
	return out, err
}

func (a *Account) UpdateMe(ctx context.Context, in models.AccountUpdateInput) (models.Envelope[models.Account], error) {
	var out models.Envelope[models.Account]
	err := a.client.Do(ctx, &apiclient.Request{Method: http.MethodPut, Path: mePath, Body: in}, &out)
	return out, err
}

func (a *Account) DeleteMe(ctx context.Context) (models.Envelope[models.Account], error) {
	var out models.Envelope[models.Account]
	err := a.client.Do(ctx, &apiclient.Request{Method: http.MethodDelete, Path: mePath}, &out)
	return out, err
}
