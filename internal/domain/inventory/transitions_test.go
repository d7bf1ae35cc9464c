package inventory_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/jhoicas/Inventario-stock/internal/domain"
	"github.com/jhoicas/Inventario-stock/internal/domain/entity"
	"github.com/jhoicas/Inventario-stock/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(v decimal.Decimal) *decimal.Decimal { return &v }

func tr(state entity.TransactionState, qty, taken string) *entity.Transaction {
	return &entity.Transaction{ID: "tr-1", State: state, Quantity: d(qty), Taken: d(taken)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tabla de transiciones: cada par (estado, operación) es legal o ilegal
// ──────────────────────────────────────────────────────────────────────────────

func TestAllowed_TablaCompleta(t *testing.T) {
	legal := map[inventory.Operation][]entity.TransactionState{
		inventory.OpHold:      {entity.StateOpened},
		inventory.OpReserved:  {entity.StateOpened, entity.StateOnHold},
		inventory.OpBackOrder: {entity.StateOpened, entity.StateOnHold, entity.StateReserved},
		inventory.OpOrdered:   {entity.StateOpened, entity.StateBackOrdered},
		inventory.OpCheckout:  {entity.StateOpened, entity.StateOnHold, entity.StateReserved, entity.StateOrdered},
		inventory.OpSold:      {entity.StateCheckout},
		inventory.OpReturned:  {entity.StateCheckout, entity.StateSold},
		inventory.OpCancel: {
			entity.StateOpened, entity.StateOnHold, entity.StateReserved, entity.StateBackOrdered,
			entity.StateOrdered, entity.StateCheckout, entity.StateSold, entity.StateReturned,
		},
	}
	for _, op := range inventory.Operations {
		for _, state := range entity.TransactionStates {
			want := false
			for _, s := range legal[op] {
				if s == state {
					want = true
				}
			}
			assert.Equal(t, want, inventory.Allowed(state, op), "%s desde %s", op, state)
		}
	}
}

func TestAllowedOperations_CanceladaNoAdmiteNada(t *testing.T) {
	assert.Empty(t, inventory.AllowedOperations(entity.StateCancelled))
	assert.Equal(t,
		[]inventory.Operation{inventory.OpReturned, inventory.OpCancel},
		inventory.AllowedOperations(entity.StateSold))
}

func TestParseOperation(t *testing.T) {
	op, ok := inventory.ParseOperation("back-order")
	require.True(t, ok)
	assert.Equal(t, inventory.OpBackOrder, op)

	_, ok = inventory.ParseOperation("teleport")
	assert.False(t, ok)
}

// ──────────────────────────────────────────────────────────────────────────────
// Deltas de stock por par de transiciones encadenadas
// ──────────────────────────────────────────────────────────────────────────────

func TestPlanTransition_Deltas(t *testing.T) {
	cases := []struct {
		name      string
		from      *entity.Transaction
		op        inventory.Operation
		qty       *decimal.Decimal
		to        entity.TransactionState
		delta     string
		qtyAfter  string
		takenAftr string
	}{
		{"hold desde opened retira qty", tr(entity.StateOpened, "0", "0"), inventory.OpHold, ptr(d("5")), entity.StateOnHold, "-5", "5", "5"},
		{"reserved desde opened retira qty", tr(entity.StateOpened, "0", "0"), inventory.OpReserved, ptr(d("5")), entity.StateReserved, "-5", "5", "5"},
		{"reserved tras hold misma qty no retira de nuevo", tr(entity.StateOnHold, "5", "5"), inventory.OpReserved, ptr(d("5")), entity.StateReserved, "0", "5", "5"},
		{"reserved tras hold con más qty retira la diferencia", tr(entity.StateOnHold, "5", "5"), inventory.OpReserved, ptr(d("8")), entity.StateReserved, "-3", "8", "8"},
		{"reserved tras hold con menos qty devuelve la diferencia", tr(entity.StateOnHold, "5", "5"), inventory.OpReserved, ptr(d("2")), entity.StateReserved, "3", "2", "2"},
		{"back-order desde opened no toca stock", tr(entity.StateOpened, "0", "0"), inventory.OpBackOrder, ptr(d("500")), entity.StateBackOrdered, "0", "500", "0"},
		{"back-order tras hold libera lo retenido", tr(entity.StateOnHold, "5", "5"), inventory.OpBackOrder, ptr(d("7")), entity.StateBackOrdered, "5", "7", "0"},
		{"back-order tras reserved libera lo retenido", tr(entity.StateReserved, "4", "4"), inventory.OpBackOrder, ptr(d("4")), entity.StateBackOrdered, "4", "4", "0"},
		{"ordered desde back-ordered no toca stock", tr(entity.StateBackOrdered, "500", "0"), inventory.OpOrdered, ptr(d("500")), entity.StateOrdered, "0", "500", "0"},
		{"checkout desde opened retira qty", tr(entity.StateOpened, "0", "0"), inventory.OpCheckout, ptr(d("5")), entity.StateCheckout, "-5", "5", "5"},
		{"checkout tras reserved misma qty no retira", tr(entity.StateReserved, "5", "5"), inventory.OpCheckout, ptr(d("5")), entity.StateCheckout, "0", "5", "5"},
		{"checkout tras ordered retira qty", tr(entity.StateOrdered, "10", "0"), inventory.OpCheckout, ptr(d("10")), entity.StateCheckout, "-10", "10", "10"},
		{"sold sin qty usa la actual", tr(entity.StateCheckout, "5", "5"), inventory.OpSold, nil, entity.StateSold, "0", "5", "5"},
		{"sold con menos qty no mueve stock", tr(entity.StateCheckout, "5", "5"), inventory.OpSold, ptr(d("3")), entity.StateSold, "0", "3", "5"},
		{"returned sin qty devuelve todo", tr(entity.StateSold, "5", "5"), inventory.OpReturned, nil, entity.StateReturned, "5", "5", "0"},
		{"returned parcial", tr(entity.StateSold, "5", "5"), inventory.OpReturned, ptr(d("2")), entity.StateReturned, "2", "2", "3"},
		{"cancel tras hold restaura", tr(entity.StateOnHold, "5", "5"), inventory.OpCancel, nil, entity.StateCancelled, "5", "0", "0"},
		{"cancel tras back-order no toca stock", tr(entity.StateBackOrdered, "500", "0"), inventory.OpCancel, nil, entity.StateCancelled, "0", "0", "0"},
		{"cancel tras returned parcial restaura lo que queda", tr(entity.StateReturned, "2", "3"), inventory.OpCancel, nil, entity.StateCancelled, "3", "0", "0"},
		{"cancel ignora qty", tr(entity.StateCheckout, "5", "5"), inventory.OpCancel, ptr(d("99")), entity.StateCancelled, "5", "0", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			plan, err := inventory.PlanTransition(tc.from, tc.op, tc.qty)
			require.NoError(t, err)
			assert.Equal(t, tc.from.State, plan.From)
			assert.Equal(t, tc.to, plan.To)
			assert.True(t, d(tc.delta).Equal(plan.StockDelta()), "delta esperado %s, obtenido %s", tc.delta, plan.StockDelta())
			assert.True(t, d(tc.qtyAfter).Equal(plan.QuantityAfter), "cantidad esperada %s, obtenida %s", tc.qtyAfter, plan.QuantityAfter)
			assert.True(t, d(tc.takenAftr).Equal(plan.TakenAfter))
			assert.True(t, tc.from.Quantity.Equal(plan.QuantityBefore))
			assert.NotEmpty(t, plan.ReasonKey)
		})
	}
}

func TestPlanTransition_NoModificaLaTransaccion(t *testing.T) {
	original := tr(entity.StateOnHold, "5", "5")
	_, err := inventory.PlanTransition(original, inventory.OpReserved, ptr(d("8")))
	require.NoError(t, err)
	assert.Equal(t, entity.StateOnHold, original.State)
	assert.True(t, d("5").Equal(original.Taken))
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores
// ──────────────────────────────────────────────────────────────────────────────

func TestPlanTransition_EstadoInvalido(t *testing.T) {
	_, err := inventory.PlanTransition(tr(entity.StateCancelled, "0", "0"), inventory.OpCancel, nil)
	require.Error(t, err)

	var stateErr *domain.InvalidTransactionStateError
	require.True(t, errors.As(err, &stateErr))
	assert.Equal(t, "cancel", stateErr.Operation)
	assert.Equal(t, "cancelled", stateErr.State)
	assert.True(t, errors.Is(err, domain.ErrInvalidTransactionState))
	assert.True(t, domain.IsBusinessRule(err))
}

func TestPlanTransition_CantidadInvalida(t *testing.T) {
	cases := []struct {
		name string
		from *entity.Transaction
		op   inventory.Operation
		qty  *decimal.Decimal
	}{
		{"hold sin cantidad", tr(entity.StateOpened, "0", "0"), inventory.OpHold, nil},
		{"hold con cero", tr(entity.StateOpened, "0", "0"), inventory.OpHold, ptr(decimal.Zero)},
		{"checkout negativo", tr(entity.StateOpened, "0", "0"), inventory.OpCheckout, ptr(d("-1"))},
		{"returned más de lo retirado", tr(entity.StateSold, "5", "5"), inventory.OpReturned, ptr(d("6"))},
		{"sold de una transacción en cero", tr(entity.StateCheckout, "0", "0"), inventory.OpSold, nil},
		{"sold más de lo retirado", tr(entity.StateCheckout, "5", "5"), inventory.OpSold, ptr(d("6"))},
		{"hold con siete decimales", tr(entity.StateOpened, "0", "0"), inventory.OpHold, ptr(d("0.0000001"))},
		{"returned con siete decimales", tr(entity.StateSold, "5", "5"), inventory.OpReturned, ptr(d("1.0000001"))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := inventory.PlanTransition(tc.from, tc.op, tc.qty)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidQuantity), "error: %v", err)
		})
	}
}

func TestValidateAmount_Escala(t *testing.T) {
	assert.NoError(t, inventory.ValidateAmount(d("0.000001")))
	assert.NoError(t, inventory.ValidateAmount(d("2.5000000")), "ceros a la derecha")
	assert.ErrorIs(t, inventory.ValidateAmount(d("0.0000001")), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, inventory.ValidateAmount(decimal.Zero), domain.ErrInvalidQuantity)
}

func TestPlanTransition_OperacionDesconocida(t *testing.T) {
	_, err := inventory.PlanTransition(tr(entity.StateOpened, "0", "0"), inventory.Operation("teleport"), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedades: cualquier secuencia legal mantiene Taken consistente con el stock
// ──────────────────────────────────────────────────────────────────────────────

// TestPlanTransition_PropiedadNetoYCancel aplica secuencias aleatorias de operaciones sobre un stock
// simulado: el stock siempre es inicial - Taken, y cancel lo deja igual al inicial.
func TestPlanTransition_PropiedadNetoYCancel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		initial := decimal.NewFromInt(rapid.Int64Range(0, 1000).Draw(t, "initial"))
		stock := initial
		cur := &entity.Transaction{ID: "tr", State: entity.StateOpened, Quantity: decimal.Zero, Taken: decimal.Zero}

		steps := rapid.IntRange(1, 12).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			ops := inventory.AllowedOperations(cur.State)
			if len(ops) == 0 {
				break
			}
			op := rapid.SampledFrom(ops).Draw(t, "op")
			var qty *decimal.Decimal
			if rapid.Bool().Draw(t, "withQty") {
				qty = ptr(decimal.NewFromInt(rapid.Int64Range(1, 50).Draw(t, "qty")))
			}
			plan, err := inventory.PlanTransition(cur, op, qty)
			if err != nil {
				if !errors.Is(err, domain.ErrInvalidQuantity) {
					t.Fatalf("error inesperado en %s desde %s: %v", op, cur.State, err)
				}
				continue
			}
			next := stock.Add(plan.StockDelta())
			if next.IsNegative() {
				// el motor lo rechazaría con NotEnoughStockError sin cambiar nada
				continue
			}
			stock = next
			cur = &entity.Transaction{ID: cur.ID, State: plan.To, Quantity: plan.QuantityAfter, Taken: plan.TakenAfter}

			if cur.Taken.IsNegative() {
				t.Fatalf("Taken negativo tras %s: %s", op, cur.Taken)
			}
			if !stock.Equal(initial.Sub(cur.Taken)) {
				t.Fatalf("stock %s != inicial %s - taken %s", stock, initial, cur.Taken)
			}
		}

		if cur.State.Terminal() {
			return
		}
		plan, err := inventory.PlanTransition(cur, inventory.OpCancel, nil)
		if err != nil {
			t.Fatalf("cancel desde %s: %v", cur.State, err)
		}
		if !stock.Add(plan.StockDelta()).Equal(initial) {
			t.Fatalf("cancel no restaura el stock inicial")
		}
		if !plan.QuantityAfter.IsZero() {
			t.Fatalf("cancel debe dejar la cantidad en 0")
		}
	})
}
