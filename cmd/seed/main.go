// seed carga datos de demostración: un usuario admin, el árbol de ubicaciones
// Warehouse > Shelf A y Shop, el ítem Milk con 20 litros en Warehouse y un stock vacío en Shop.
//
// Uso: go run ./cmd/seed [email] [password]
// Por defecto admin@inventario.local / admin12345. Pensado para una base recién migrada.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jhoicas/Inventario-stock/internal/application/auth"
	"github.com/jhoicas/Inventario-stock/internal/application/dto"
	"github.com/jhoicas/Inventario-stock/internal/application/inventory"
	"github.com/jhoicas/Inventario-stock/internal/domain"
	"github.com/jhoicas/Inventario-stock/internal/domain/entity"
	"github.com/jhoicas/Inventario-stock/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-stock/pkg/config"
	"github.com/jhoicas/Inventario-stock/pkg/logger"
	"github.com/shopspring/decimal"
)

func main() {
	email, password := "admin@inventario.local", "admin12345"
	if len(os.Args) > 2 {
		email, password = os.Args[1], os.Args[2]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "seed"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(pool, log.Component("migrate")); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{Secret: cfg.JWT.Secret})
	user, err := authUC.RegisterUser(ctx, dto.RegisterRequest{
		Email: email, Password: password, Name: "Administrador", Role: entity.RoleAdmin,
	})
	actor := "seed"
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		log.Info().Str("email", email).Msg("usuario admin ya existe")
	case err != nil:
		log.Fatal().Err(err).Msg("crear usuario admin")
	default:
		actor = user.ID
	}

	runner := postgres.NewTxRunner(pool, log.Component("postgres"))
	deps := inventory.Deps{Actors: inventory.StaticActor(actor), Logger: log.Component("inventory")}
	catalog := inventory.NewCatalogUseCase(runner, deps)
	stocks := inventory.NewStockUseCase(runner, deps)

	warehouse, err := catalog.CreateLocation(ctx, "Warehouse", "")
	if err != nil {
		log.Fatal().Err(err).Msg("crear ubicación Warehouse")
	}
	if _, err := catalog.CreateLocation(ctx, "Shelf A", warehouse.ID); err != nil {
		log.Fatal().Err(err).Msg("crear ubicación Shelf A")
	}
	shop, err := catalog.CreateLocation(ctx, "Shop", "")
	if err != nil {
		log.Fatal().Err(err).Msg("crear ubicación Shop")
	}
	milk, err := catalog.CreateItem(ctx, "Milk", "Leche entera", "litre")
	if err != nil {
		log.Fatal().Err(err).Msg("crear ítem Milk")
	}
	cost := decimal.NewFromInt(3)
	warehouseStock, err := stocks.CreateStock(ctx, inventory.CreateStockInput{
		ItemID: milk.ID, LocationID: warehouse.ID, Quantity: decimal.NewFromInt(20), Cost: &cost,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear stock en Warehouse")
	}
	shopStock, err := stocks.CreateStock(ctx, inventory.CreateStockInput{ItemID: milk.ID, LocationID: shop.ID})
	if err != nil {
		log.Fatal().Err(err).Msg("crear stock en Shop")
	}

	log.Info().
		Str("item_id", milk.ID).
		Str("warehouse_stock_id", warehouseStock.ID).
		Str("shop_stock_id", shopStock.ID).
		Msg("datos de demostración cargados")
}
