package treasury

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/WuorBhang/fund-transfer/internal/pkg/pkgconfig"
	"github.com/WuorBhang/fund-transfer/internal/pkg/pkgrouter"
	"github.com/WuorBhang/fund-transfer/internal/pkg/pkgroutine"
	"github.com/WuorBhang/fund-transfer/internal/pkg/pkguid"
	"github.com/WuorBhang/fund-transfer/internal/treasury/event"
	"github.com/WuorBhang/fund-transfer/internal/treasury/fx"
	"github.com/WuorBhang/fund-transfer/internal/treasury/inbound"
	"github.com/WuorBhang/fund-transfer/internal/treasury/store"
	"github.com/WuorBhang/fund-transfer/internal/treasury/usecase"
)

type Dependency struct {
	Config    pkgconfig.Config
	Goroutine *pkgroutine.Manager
	Router    *pkgrouter.Router
	Context   context.Context
	UUID      pkguid.StringID
	Snowflake pkguid.NumberID
}

// New wires the ledger and registers its HTTP endpoints. The returned closer
// stops the event consumer after draining the bus.
func New(dep Dependency) (func(context.Context) error, error) {
	table, err := fx.ParseTable(dep.Config.GetMap("treasury.fx.rates"))
	if err != nil {
		return nil, fmt.Errorf("treasury.fx.rates: %w", err)
	}
	converter := fx.NewConverter(table)

	if dep.Goroutine == nil {
		dep.Goroutine = pkgroutine.NewManager(0)
	}
	if dep.Context == nil {
		dep.Context = context.Background()
	}
	if dep.UUID == nil {
		dep.UUID = pkguid.NewUUID()
	}
	if dep.Snowflake == nil {
		sf, err := pkguid.NewSnowflake()
		if err != nil {
			return nil, err
		}
		dep.Snowflake = sf
	}

	bus := event.NewBus(int(dep.Config.GetInt("treasury.events.buffer")))
	consumer := event.NewConsumer(bus, event.AuditLog{Logger: slog.Default().With("component", "ledger-audit")}, event.ConsumerConfig{
		Workers:     int(dep.Config.GetInt("treasury.events.workers")),
		MaxRetries:  int(dep.Config.GetInt("treasury.events.max_retries")),
		BaseBackoff: dep.Config.GetDuration("treasury.events.backoff"),
	})
	consumer.Start()

	uc := usecase.New(usecase.Dependency{
		Store:      store.NewInMemoryStore(store.SeedAccounts()),
		Converter:  converter,
		Events:     bus,
		Runner:     dep.Goroutine,
		TransferID: pkguid.NewPrefixed("TXN", dep.Snowflake),
		ReversalID: pkguid.NewPrefixed("REV", dep.Snowflake),
		EventID:    dep.UUID,
		RootCtx:    dep.Context,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	slog.Info("treasury module ready", "fx_pairs", len(converter.Pairs()))

	return consumer.Stop, nil
}
