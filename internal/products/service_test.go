package products

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukahq/duka-backend/internal/media"
	"github.com/dukahq/duka-backend/pkg/db"
	"github.com/dukahq/duka-backend/pkg/db/dbtest"
	"github.com/dukahq/duka-backend/pkg/db/models"
	"github.com/dukahq/duka-backend/pkg/enums"
	pkgerrors "github.com/dukahq/duka-backend/pkg/errors"
	"github.com/dukahq/duka-backend/pkg/logger"
	"github.com/dukahq/duka-backend/pkg/outbox"
	"github.com/dukahq/duka-backend/pkg/pagination"
)

type stubStoreLoader struct {
	store *models.Store
}

func (s stubStoreLoader) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	return s.store, nil
}

type stubMemberships struct {
	allowed bool
}

func (s stubMemberships) UserHasRole(ctx context.Context, tenantID, userID uuid.UUID, roles ...enums.MemberRole) (bool, error) {
	return s.allowed, nil
}

func testStore() *models.Store {
	return &models.Store{
		ID:       uuid.New(),
		TenantID: uuid.New(),
		Name:     "Duka la Vitabu",
		Slug:     "duka-la-vitabu",
		Status:   enums.StoreStatusActive,
		Currency: enums.CurrencyKES,
	}
}

func newProductsService(t *testing.T, client *db.Client, store *models.Store) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test"})
	events := outbox.NewService(outbox.NewRepository(client.DB()), logg)
	svc, err := NewService(
		NewRepository(client.DB()),
		client,
		stubStoreLoader{store: store},
		stubMemberships{allowed: true},
		media.NewRepository(client.DB()),
		events,
	)
	require.NoError(t, err)
	return svc
}

func oneVariant(price int64, qty int) []VariantInput {
	return []VariantInput{{
		Title:        "Default",
		Price:        decimal.NewFromInt(price),
		AvailableQty: qty,
	}}
}

func TestCreateProductSlugFromTitle(t *testing.T) {
	client := dbtest.Open(t)
	store := testStore()
	svc := newProductsService(t, client, store)

	product, err := svc.CreateProduct(context.Background(), uuid.New(), store.ID, CreateProductInput{
		Title:    "Kikoy Beach Towel",
		Variants: oneVariant(1500, 10),
	})
	require.NoError(t, err)
	assert.Equal(t, "kikoy-beach-towel", product.Slug)
	assert.Equal(t, enums.ProductStatusActive.String(), product.Status)
	assert.Equal(t, enums.ProductSourceManual.String(), product.Source)
	require.Len(t, product.Variants, 1)
	assert.Equal(t, enums.CurrencyKES.String(), product.Variants[0].Currency)
	assert.Equal(t, 10, product.Variants[0].AvailableQty)
}

func TestCreateProductSlugCollisionGetsSuffix(t *testing.T) {
	client := dbtest.Open(t)
	store := testStore()
	svc := newProductsService(t, client, store)
	userID := uuid.New()

	for i, want := range []string{"kikoy", "kikoy-2", "kikoy-3"} {
		product, err := svc.CreateProduct(context.Background(), userID, store.ID, CreateProductInput{
			Title:    "Kikoy",
			Variants: oneVariant(int64(1000+i), 5),
		})
		require.NoError(t, err)
		assert.Equal(t, want, product.Slug)
	}
}

func TestCreateProductMediaPositions(t *testing.T) {
	client := dbtest.Open(t)
	store := testStore()
	svc := newProductsService(t, client, store)

	product, err := svc.CreateProduct(context.Background(), uuid.New(), store.ID, CreateProductInput{
		Title:    "Maasai Shuka",
		Variants: oneVariant(2500, 3),
		Media: []MediaInput{
			{URL: "https://cdn.example.com/shuka-front.jpg"},
			{URL: "https://cdn.example.com/shuka-back.png", ContentType: "image/png"},
		},
	})
	require.NoError(t, err)
	require.Len(t, product.Media, 2)
	assert.Equal(t, 0, product.Media[0].Position)
	assert.True(t, product.Media[0].IsFeatured)
	assert.Equal(t, 1, product.Media[1].Position)
	assert.False(t, product.Media[1].IsFeatured)

	var first models.Media
	require.NoError(t, client.DB().First(&first, "id = ?", product.Media[0].MediaID).Error)
	assert.Equal(t, media.DefaultContentType, first.ContentType)

	var second models.Media
	require.NoError(t, client.DB().First(&second, "id = ?", product.Media[1].MediaID).Error)
	assert.Equal(t, "image/png", second.ContentType)
}

func TestCreateProductRequiresVariant(t *testing.T) {
	client := dbtest.Open(t)
	store := testStore()
	svc := newProductsService(t, client, store)

	_, err := svc.CreateProduct(context.Background(), uuid.New(), store.ID, CreateProductInput{
		Title: "No Variants",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestSeedProductMarksSource(t *testing.T) {
	client := dbtest.Open(t)
	store := testStore()
	svc := newProductsService(t, client, store)

	source := enums.ProductSourceDemo
	product, err := svc.SeedProduct(context.Background(), store, CreateProductInput{
		Title:    "Sample Product 1",
		Source:   &source,
		Variants: oneVariant(1000, 100),
	})
	require.NoError(t, err)
	assert.Equal(t, enums.ProductSourceDemo.String(), product.Source)
	require.Len(t, product.Variants, 1)
	assert.Equal(t, 100, product.Variants[0].AvailableQty)
	assert.True(t, decimal.NewFromInt(1000).Equal(product.Variants[0].Price))
}

func TestUpdateProductEmptyPatchIsNoOp(t *testing.T) {
	client := dbtest.Open(t)
	store := testStore()
	svc := newProductsService(t, client, store)
	userID := uuid.New()

	created, err := svc.CreateProduct(context.Background(), userID, store.ID, CreateProductInput{
		Title:    "Kiondo Basket",
		Variants: oneVariant(1200, 4),
	})
	require.NoError(t, err)

	var before models.Product
	require.NoError(t, client.DB().First(&before, "id = ?", created.ID).Error)

	_, err = svc.UpdateProduct(context.Background(), userID, created.ID, UpdateProductInput{})
	require.NoError(t, err)

	var after models.Product
	require.NoError(t, client.DB().First(&after, "id = ?", created.ID).Error)
	assert.True(t, before.UpdatedAt.Equal(after.UpdatedAt), "empty patch must not touch the row")
}

func TestUpdateProductKeepsSlug(t *testing.T) {
	client := dbtest.Open(t)
	store := testStore()
	svc := newProductsService(t, client, store)
	userID := uuid.New()

	created, err := svc.CreateProduct(context.Background(), userID, store.ID, CreateProductInput{
		Title:    "Kiondo Basket",
		Variants: oneVariant(1200, 4),
	})
	require.NoError(t, err)

	title := "Woven Kiondo"
	updated, err := svc.UpdateProduct(context.Background(), userID, created.ID, UpdateProductInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Woven Kiondo", updated.Title)
	assert.Equal(t, created.Slug, updated.Slug)
}

func TestUpdateVariantPriceAndStock(t *testing.T) {
	client := dbtest.Open(t)
	store := testStore()
	svc := newProductsService(t, client, store)
	userID := uuid.New()

	created, err := svc.CreateProduct(context.Background(), userID, store.ID, CreateProductInput{
		Title:    "Soapstone Bowl",
		Variants: oneVariant(900, 2),
	})
	require.NoError(t, err)

	price := decimal.NewFromInt(1100)
	qty := 8
	updated, err := svc.UpdateVariant(context.Background(), userID, created.Variants[0].ID, UpdateVariantInput{
		Price:        &price,
		AvailableQty: &qty,
	})
	require.NoError(t, err)
	require.Len(t, updated.Variants, 1)
	assert.True(t, price.Equal(updated.Variants[0].Price))
	assert.Equal(t, 8, updated.Variants[0].AvailableQty)
}

func TestListProductsCursorPagination(t *testing.T) {
	client := dbtest.Open(t)
	store := testStore()
	svc := newProductsService(t, client, store)
	userID := uuid.New()

	for i := 1; i <= 3; i++ {
		_, err := svc.CreateProduct(context.Background(), userID, store.ID, CreateProductInput{
			Title:    fmt.Sprintf("Item %d", i),
			Variants: oneVariant(int64(i*100), 1),
		})
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	first, err := svc.ListProducts(context.Background(), userID, store.ID, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Products, 2)
	require.NotEmpty(t, first.NextCursor)
	assert.Equal(t, "item-3", first.Products[0].Slug)
	assert.Equal(t, "item-2", first.Products[1].Slug)

	second, err := svc.ListProducts(context.Background(), userID, store.ID, pagination.Params{Limit: 2, Cursor: first.NextCursor})
	require.NoError(t, err)
	require.Len(t, second.Products, 1)
	assert.Equal(t, "item-1", second.Products[0].Slug)
	assert.Empty(t, second.NextCursor)
}

func TestDeleteAllProducts(t *testing.T) {
	client := dbtest.Open(t)
	store := testStore()
	svc := newProductsService(t, client, store)
	userID := uuid.New()

	for i := 1; i <= 3; i++ {
		_, err := svc.CreateProduct(context.Background(), userID, store.ID, CreateProductInput{
			Title:    fmt.Sprintf("Old Stock %d", i),
			Variants: oneVariant(500, 1),
		})
		require.NoError(t, err)
	}

	deleted, err := svc.DeleteAllProducts(context.Background(), userID, store.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)

	list, err := svc.ListProducts(context.Background(), userID, store.ID, pagination.Params{})
	require.NoError(t, err)
	assert.Empty(t, list.Products)
}

func TestProductForbiddenWithoutRole(t *testing.T) {
	client := dbtest.Open(t)
	store := testStore()
	logg := logger.New(logger.Options{ServiceName: "test"})
	events := outbox.NewService(outbox.NewRepository(client.DB()), logg)
	svc, err := NewService(
		NewRepository(client.DB()),
		client,
		stubStoreLoader{store: store},
		stubMemberships{allowed: false},
		media.NewRepository(client.DB()),
		events,
	)
	require.NoError(t, err)

	_, err = svc.CreateProduct(context.Background(), uuid.New(), store.ID, CreateProductInput{
		Title:    "Blocked",
		Variants: oneVariant(100, 1),
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}
