package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-stock/internal/application/inventory"
	"github.com/jhoicas/Inventario-stock/internal/domain/entity"
	"github.com/jhoicas/Inventario-stock/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: Milk en Warehouse sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store   *memory.Store
	catalog *inventory.CatalogUseCase
	stocks  *inventory.StockUseCase
	txs     *inventory.TransactionUseCase
	item    *entity.Item
	stock   *entity.Stock
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(v decimal.Decimal) *decimal.Decimal { return &v }

func fixedClock() func() time.Time {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

// newFixture crea el ítem Milk con un stock en Warehouse de la cantidad indicada.
func newFixture(t *testing.T, initial string, deps inventory.Deps) *fixture {
	t.Helper()
	if deps.Now == nil {
		deps.Now = fixedClock()
	}
	store := memory.NewStore()
	f := &fixture{
		store:   store,
		catalog: inventory.NewCatalogUseCase(store, deps),
		stocks:  inventory.NewStockUseCase(store, deps),
		txs:     inventory.NewTransactionUseCase(store, deps),
	}
	ctx := context.Background()
	item, err := f.catalog.CreateItem(ctx, "Milk", "", "litre")
	require.NoError(t, err)
	loc, err := f.catalog.CreateLocation(ctx, "Warehouse", "")
	require.NoError(t, err)
	stock, err := f.stocks.CreateStock(ctx, inventory.CreateStockInput{
		ItemID: item.ID, LocationID: loc.ID, Quantity: d(initial),
	})
	require.NoError(t, err)
	f.item, f.stock = item, stock
	return f
}

// secondStock crea otro stock del mismo ítem en una ubicación nueva.
func (f *fixture) secondStock(t *testing.T, location, initial string) *entity.Stock {
	t.Helper()
	ctx := context.Background()
	loc, err := f.catalog.CreateLocation(ctx, location, "")
	require.NoError(t, err)
	s, err := f.stocks.CreateStock(ctx, inventory.CreateStockInput{
		ItemID: f.item.ID, LocationID: loc.ID, Quantity: d(initial),
	})
	require.NoError(t, err)
	return s
}

func (f *fixture) quantity(t *testing.T, stockID string) decimal.Decimal {
	t.Helper()
	s, err := f.stocks.GetStock(context.Background(), stockID)
	require.NoError(t, err)
	return s.Quantity
}

func (f *fixture) movements(t *testing.T, stockID string) []*entity.StockMovement {
	t.Helper()
	list, err := f.stocks.ListMovements(context.Background(), stockID, 0, 0)
	require.NoError(t, err)
	return list
}

// fakeTexts resolver que solo conoce las claves cargadas.
type fakeTexts map[string]string

func (f fakeTexts) Resolve(_ context.Context, key string, _ ...any) string { return f[key] }
