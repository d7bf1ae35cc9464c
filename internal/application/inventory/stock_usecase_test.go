package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/jhoicas/Inventario-stock/internal/application/inventory"
	"github.com/jhoicas/Inventario-stock/internal/domain"
	"github.com/jhoicas/Inventario-stock/internal/domain/entity"
	"github.com/jhoicas/Inventario-stock/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// CreateStock
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateStock_PrimerRegistroGeneraMovimiento(t *testing.T) {
	f := newFixture(t, "20", inventory.Deps{})

	movs := f.movements(t, f.stock.ID)
	require.Len(t, movs, 1)
	assert.True(t, movs[0].Before.IsZero())
	assert.True(t, d("20").Equal(movs[0].After))
	assert.Equal(t, "First Item Record; Stock Increase", movs[0].Reason)
}

func TestCreateStock_SinCantidadNoGeneraMovimiento(t *testing.T) {
	f := newFixture(t, "0", inventory.Deps{})
	assert.Empty(t, f.movements(t, f.stock.ID))
}

func TestCreateStock_DuplicadoYReferenciasInexistentes(t *testing.T) {
	f := newFixture(t, "20", inventory.Deps{})
	ctx := context.Background()

	_, err := f.stocks.CreateStock(ctx, inventory.CreateStockInput{ItemID: f.item.ID, LocationID: f.stock.LocationID})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = f.stocks.CreateStock(ctx, inventory.CreateStockInput{ItemID: "no-existe", LocationID: f.stock.LocationID})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.stocks.CreateStock(ctx, inventory.CreateStockInput{ItemID: f.item.ID, LocationID: f.stock.LocationID, Quantity: d("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestCreateStock_ConCostoActualizaCostoDelItem(t *testing.T) {
	f := newFixture(t, "0", inventory.Deps{})
	ctx := context.Background()

	_, err := f.stocks.Put(ctx, f.stock.ID, inventory.MovementInput{Amount: d("10"), Cost: ptr(d("100"))})
	require.NoError(t, err)
	_, err = f.stocks.Put(ctx, f.stock.ID, inventory.MovementInput{Amount: d("30"), Cost: ptr(d("200"))})
	require.NoError(t, err)

	item, err := f.catalog.GetItem(ctx, f.item.ID)
	require.NoError(t, err)
	assert.True(t, d("175").Equal(item.Cost), "costo promedio ponderado: %s", item.Cost)
}

// ──────────────────────────────────────────────────────────────────────────────
// Put / Take
// ──────────────────────────────────────────────────────────────────────────────

func TestTake_MasDeLoDisponibleFallaSinCambios(t *testing.T) {
	f := newFixture(t, "20", inventory.Deps{})

	_, err := f.stocks.Take(context.Background(), f.stock.ID, inventory.MovementInput{Amount: d("30")})
	require.Error(t, err)

	var short *domain.NotEnoughStockError
	require.True(t, errors.As(err, &short))
	assert.True(t, d("20").Equal(short.Available))
	assert.True(t, d("30").Equal(short.Requested))

	assert.True(t, d("20").Equal(f.quantity(t, f.stock.ID)), "la cantidad no cambia")
	assert.Len(t, f.movements(t, f.stock.ID), 1, "no se registra movimiento")
}

func TestPutTake_CantidadNoPositiva(t *testing.T) {
	f := newFixture(t, "20", inventory.Deps{})
	ctx := context.Background()

	for _, amount := range []string{"0", "-3"} {
		_, err := f.stocks.Put(ctx, f.stock.ID, inventory.MovementInput{Amount: d(amount)})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "put %s", amount)
		_, err = f.stocks.Take(ctx, f.stock.ID, inventory.MovementInput{Amount: d(amount)})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "take %s", amount)
	}
	assert.Len(t, f.movements(t, f.stock.ID), 1)
}

func TestPutTake_MasDecimalesDeLosQueSePersisten(t *testing.T) {
	f := newFixture(t, "20", inventory.Deps{})
	ctx := context.Background()

	_, err := f.stocks.Put(ctx, f.stock.ID, inventory.MovementInput{Amount: d("0.0000001")})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = f.stocks.Take(ctx, f.stock.ID, inventory.MovementInput{Amount: d("1.1234567")})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = f.stocks.MoveTo(ctx, f.stock.ID, f.secondStock(t, "Shop", "0").ID, inventory.MovementInput{Amount: d("0.0000005")})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = f.stocks.CreateStock(ctx, inventory.CreateStockInput{ItemID: f.item.ID, LocationID: "cualquiera", Quantity: d("3.0000001")})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.True(t, d("20").Equal(f.quantity(t, f.stock.ID)))
	assert.Len(t, f.movements(t, f.stock.ID), 1)

	_, err = f.stocks.Put(ctx, f.stock.ID, inventory.MovementInput{Amount: d("1.123456")})
	require.NoError(t, err, "seis decimales se guardan sin redondeo")
	_, err = f.stocks.Put(ctx, f.stock.ID, inventory.MovementInput{Amount: d("1.5000000")})
	require.NoError(t, err, "los ceros a la derecha no cuentan")
	assert.True(t, d("22.623456").Equal(f.quantity(t, f.stock.ID)))
}

func TestPutTake_StockInexistente(t *testing.T) {
	f := newFixture(t, "20", inventory.Deps{})
	_, err := f.stocks.Put(context.Background(), "no-existe", inventory.MovementInput{Amount: d("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPutTake_RazonExplicitaYActor(t *testing.T) {
	f := newFixture(t, "20", inventory.Deps{})
	ctx := inventory.WithActor(context.Background(), "user-42")

	mov, err := f.stocks.Take(ctx, f.stock.ID, inventory.MovementInput{Amount: d("2"), Reason: "merma"})
	require.NoError(t, err)
	assert.Equal(t, "merma", mov.Reason)
	assert.Equal(t, "user-42", mov.CreatedBy)
	assert.True(t, d("-2").Equal(mov.Delta()))
}

// TestPutTake_PropiedadSumaYConteo: para cualquier secuencia de put/take la cantidad final es
// inicial + puts - takes exitosos y hay un movimiento por operación exitosa.
func TestPutTake_PropiedadSumaYConteo(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		f := newFixture(t, "0", inventory.Deps{})
		ctx := context.Background()
		initial := decimal.NewFromInt(rapid.Int64Range(0, 100).Draw(rt, "initial"))
		expected := decimal.Zero
		ok := 0
		if initial.IsPositive() {
			_, err := f.stocks.Put(ctx, f.stock.ID, inventory.MovementInput{Amount: initial})
			require.NoError(rt, err)
			expected = initial
			ok++
		}

		n := rapid.IntRange(0, 30).Draw(rt, "ops")
		for i := 0; i < n; i++ {
			amount := decimal.NewFromInt(rapid.Int64Range(1, 40).Draw(rt, "amount"))
			if rapid.Bool().Draw(rt, "put") {
				_, err := f.stocks.Put(ctx, f.stock.ID, inventory.MovementInput{Amount: amount})
				require.NoError(rt, err)
				expected = expected.Add(amount)
				ok++
				continue
			}
			_, err := f.stocks.Take(ctx, f.stock.ID, inventory.MovementInput{Amount: amount})
			if amount.GreaterThan(expected) {
				require.ErrorIs(rt, err, domain.ErrInsufficientStock)
				continue
			}
			require.NoError(rt, err)
			expected = expected.Sub(amount)
			ok++
		}

		got := f.quantity(t, f.stock.ID)
		if !expected.Equal(got) {
			rt.Fatalf("cantidad esperada %s, obtenida %s", expected, got)
		}
		if movs := f.movements(t, f.stock.ID); len(movs) != ok {
			rt.Fatalf("movimientos esperados %d, obtenidos %d", ok, len(movs))
		}
	})
}

func TestTake_ConcurrenteNuncaQuedaNegativo(t *testing.T) {
	f := newFixture(t, "20", inventory.Deps{})
	ctx := context.Background()

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		okN   int
		short int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.stocks.Take(ctx, f.stock.ID, inventory.MovementInput{Amount: d("3")})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				okN++
			} else if errors.Is(err, domain.ErrInsufficientStock) {
				short++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 6, okN)
	assert.Equal(t, 4, short)
	assert.True(t, d("2").Equal(f.quantity(t, f.stock.ID)))
}

// ──────────────────────────────────────────────────────────────────────────────
// MoveTo
// ──────────────────────────────────────────────────────────────────────────────

func TestMoveTo_TrasladaYRazonesReferencianLaContraparte(t *testing.T) {
	f := newFixture(t, "20", inventory.Deps{})
	shop := f.secondStock(t, "Shop", "0")

	res, err := f.stocks.MoveTo(context.Background(), f.stock.ID, shop.ID, inventory.MovementInput{Amount: d("8")})
	require.NoError(t, err)

	assert.True(t, d("12").Equal(f.quantity(t, f.stock.ID)))
	assert.True(t, d("8").Equal(f.quantity(t, shop.ID)))
	assert.Equal(t, "Moved to Shop", res.Out.Reason)
	assert.Equal(t, "Moved from Warehouse", res.In.Reason)
	assert.Equal(t, f.stock.ID, res.Out.StockID)
	assert.Equal(t, shop.ID, res.In.StockID)
}

func TestMoveTo_FallaAtomica(t *testing.T) {
	f := newFixture(t, "20", inventory.Deps{})
	shop := f.secondStock(t, "Shop", "5")

	_, err := f.stocks.MoveTo(context.Background(), f.stock.ID, shop.ID, inventory.MovementInput{Amount: d("21")})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, d("20").Equal(f.quantity(t, f.stock.ID)))
	assert.True(t, d("5").Equal(f.quantity(t, shop.ID)))
	assert.Len(t, f.movements(t, f.stock.ID), 1)
	assert.Len(t, f.movements(t, shop.ID), 1)
}

func TestMoveTo_EntradasInvalidas(t *testing.T) {
	f := newFixture(t, "20", inventory.Deps{})
	ctx := context.Background()

	_, err := f.stocks.MoveTo(ctx, f.stock.ID, f.stock.ID, inventory.MovementInput{Amount: d("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "mismo stock")

	other, err := f.catalog.CreateItem(ctx, "Bread", "", "unit")
	require.NoError(t, err)
	bread, err := f.stocks.CreateStock(ctx, inventory.CreateStockInput{ItemID: other.ID, LocationID: f.stock.LocationID})
	require.NoError(t, err)
	_, err = f.stocks.MoveTo(ctx, f.stock.ID, bread.ID, inventory.MovementInput{Amount: d("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "ítems distintos")

	_, err = f.stocks.MoveTo(ctx, f.stock.ID, "no-existe", inventory.MovementInput{Amount: d("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Rollback
// ──────────────────────────────────────────────────────────────────────────────

func TestRollback_RestauraYAgregaUnMovimiento(t *testing.T) {
	f := newFixture(t, "20", inventory.Deps{})
	ctx := context.Background()

	take, err := f.stocks.Take(ctx, f.stock.ID, inventory.MovementInput{Amount: d("7")})
	require.NoError(t, err)

	rb, err := f.stocks.Rollback(ctx, f.stock.ID, take.ID, inventory.MovementInput{})
	require.NoError(t, err)

	assert.True(t, d("20").Equal(f.quantity(t, f.stock.ID)))
	assert.True(t, d("13").Equal(rb.Before))
	assert.True(t, d("20").Equal(rb.After))
	assert.Equal(t, "Rolled back movement "+take.ID, rb.Reason)

	movs := f.movements(t, f.stock.ID)
	require.Len(t, movs, 3, "primer registro + take + rollback")
	assert.Equal(t, take.ID, movs[1].ID, "el movimiento original sigue intacto")
	assert.True(t, d("13").Equal(movs[1].After))
}

func TestRollback_DeUnPutPuedeFallarPorStock(t *testing.T) {
	f := newFixture(t, "0", inventory.Deps{})
	ctx := context.Background()

	put, err := f.stocks.Put(ctx, f.stock.ID, inventory.MovementInput{Amount: d("10")})
	require.NoError(t, err)
	_, err = f.stocks.Take(ctx, f.stock.ID, inventory.MovementInput{Amount: d("8")})
	require.NoError(t, err)

	_, err = f.stocks.Rollback(ctx, f.stock.ID, put.ID, inventory.MovementInput{})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, d("2").Equal(f.quantity(t, f.stock.ID)))
}

func TestRollback_MovimientoDeOtroStock(t *testing.T) {
	f := newFixture(t, "20", inventory.Deps{})
	shop := f.secondStock(t, "Shop", "5")
	shopMovs := f.movements(t, shop.ID)
	require.Len(t, shopMovs, 1)

	_, err := f.stocks.Rollback(context.Background(), f.stock.ID, shopMovs[0].ID, inventory.MovementInput{})
	require.Error(t, err)

	var invalid *domain.InvalidMovementError
	require.True(t, errors.As(err, &invalid))
	assert.True(t, domain.IsIntegrity(err))
	assert.False(t, domain.IsBusinessRule(err))
	assert.Len(t, f.movements(t, f.stock.ID), 1)
}

func TestRollback_MovimientoDeTransaccionSeRechaza(t *testing.T) {
	f := newFixture(t, "20", inventory.Deps{})
	ctx := context.Background()
	tr, err := f.txs.NewTransaction(ctx, f.stock.ID, "pedido")
	require.NoError(t, err)

	_, err = f.txs.Hold(ctx, tr.ID, d("5"), "")
	require.NoError(t, err)
	hold := f.movements(t, f.stock.ID)[0]
	require.Equal(t, tr.ID, hold.TransactionID)

	_, err = f.stocks.Rollback(ctx, f.stock.ID, hold.ID, inventory.MovementInput{})
	var invalid *domain.InvalidMovementError
	require.True(t, errors.As(err, &invalid), "error: %v", err)
	assert.Equal(t, tr.ID, invalid.TransactionID)
	assert.True(t, d("15").Equal(f.quantity(t, f.stock.ID)), "la retención sigue vigente")

	_, err = f.txs.Cancel(ctx, tr.ID, "")
	require.NoError(t, err)
	assert.True(t, d("20").Equal(f.quantity(t, f.stock.ID)), "cancel restaura una sola vez")
}

func TestRollbackRecursive_CadenaConMovimientoDeTransaccion(t *testing.T) {
	f := newFixture(t, "20", inventory.Deps{})
	ctx := context.Background()

	take, err := f.stocks.Take(ctx, f.stock.ID, inventory.MovementInput{Amount: d("2")})
	require.NoError(t, err)
	tr, err := f.txs.NewTransaction(ctx, f.stock.ID, "pedido")
	require.NoError(t, err)
	_, err = f.txs.Checkout(ctx, tr.ID, d("5"), "")
	require.NoError(t, err)

	_, err = f.stocks.RollbackRecursive(ctx, f.stock.ID, take.ID, inventory.MovementInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidMovement)
	assert.True(t, d("13").Equal(f.quantity(t, f.stock.ID)))
	assert.Len(t, f.movements(t, f.stock.ID), 3, "nada de la cadena se revierte")

	_, err = f.stocks.Rollback(ctx, f.stock.ID, take.ID, inventory.MovementInput{})
	require.NoError(t, err, "el movimiento directo sigue siendo revertible")
	assert.True(t, d("15").Equal(f.quantity(t, f.stock.ID)))
}

func TestRollbackRecursive_RevierteDesdeElMasReciente(t *testing.T) {
	f := newFixture(t, "20", inventory.Deps{})
	ctx := context.Background()

	first, err := f.stocks.Take(ctx, f.stock.ID, inventory.MovementInput{Amount: d("5")})
	require.NoError(t, err)
	_, err = f.stocks.Put(ctx, f.stock.ID, inventory.MovementInput{Amount: d("3")})
	require.NoError(t, err)
	_, err = f.stocks.Take(ctx, f.stock.ID, inventory.MovementInput{Amount: d("10")})
	require.NoError(t, err)
	require.True(t, d("8").Equal(f.quantity(t, f.stock.ID)))

	reverted, err := f.stocks.RollbackRecursive(ctx, f.stock.ID, first.ID, inventory.MovementInput{Reason: "auditoría"})
	require.NoError(t, err)
	require.Len(t, reverted, 3)
	assert.True(t, d("18").Equal(reverted[0].After), "primero se revierte el take de 10")
	assert.True(t, d("15").Equal(reverted[1].After))
	assert.True(t, d("20").Equal(reverted[2].After))
	for _, m := range reverted {
		assert.Equal(t, "auditoría", m.Reason)
	}
	assert.True(t, d("20").Equal(f.quantity(t, f.stock.ID)))
	assert.Len(t, f.movements(t, f.stock.ID), 7)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateLocator
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateLocator_NoGeneraMovimiento(t *testing.T) {
	f := newFixture(t, "20", inventory.Deps{})
	aisle := "A3"

	s, err := f.stocks.UpdateLocator(context.Background(), f.stock.ID, inventory.LocatorInput{Aisle: &aisle})
	require.NoError(t, err)
	assert.Equal(t, "A3", s.Aisle)
	assert.True(t, d("20").Equal(s.Quantity))
	assert.Len(t, f.movements(t, f.stock.ID), 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Costo: el ítem se lee bloqueado antes de recalcular
// ──────────────────────────────────────────────────────────────────────────────

type lockSpyItems struct {
	repository.ItemRepository
	locked  []string
	updated []string
}

func (s *lockSpyItems) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	s.locked = append(s.locked, id)
	return s.ItemRepository.GetForUpdate(ctx, id)
}

func (s *lockSpyItems) UpdateCost(ctx context.Context, id string, cost decimal.Decimal) error {
	if len(s.locked) == len(s.updated) {
		return fmt.Errorf("costo de %s actualizado sin bloquear el ítem", id)
	}
	s.updated = append(s.updated, id)
	return s.ItemRepository.UpdateCost(ctx, id, cost)
}

type lockSpyRunner struct {
	inner inventory.TxRunner
	items *lockSpyItems
}

func (r *lockSpyRunner) Run(ctx context.Context, fn func(repos inventory.Repos) error) error {
	return r.inner.Run(ctx, func(repos inventory.Repos) error {
		r.items.ItemRepository = repos.Items
		repos.Items = r.items
		return fn(repos)
	})
}

func TestPut_ConCostoBloqueaElItem(t *testing.T) {
	f := newFixture(t, "10", inventory.Deps{})
	spy := &lockSpyItems{}
	stocks := inventory.NewStockUseCase(&lockSpyRunner{inner: f.store, items: spy}, inventory.Deps{})

	_, err := stocks.Put(context.Background(), f.stock.ID, inventory.MovementInput{Amount: d("10"), Cost: ptr(d("4"))})
	require.NoError(t, err)
	assert.Equal(t, []string{f.item.ID}, spy.locked)
	assert.Equal(t, []string{f.item.ID}, spy.updated)

	_, err = stocks.Put(context.Background(), f.stock.ID, inventory.MovementInput{Amount: d("1")})
	require.NoError(t, err)
	assert.Len(t, spy.locked, 1, "sin costo no se toca el ítem")
}
