package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"servicedesk/internal/adapter/http/handlers"
	"servicedesk/internal/adapter/persistence/memory"
	"servicedesk/internal/adapter/persistence/repository"
	"servicedesk/internal/config"
	"servicedesk/internal/infrastructure/audit"
	"servicedesk/internal/infrastructure/database"
	"servicedesk/internal/infrastructure/identity"
	"servicedesk/internal/infrastructure/metrics"
	"servicedesk/internal/infrastructure/payments"
	"servicedesk/internal/usecase"
	"servicedesk/internal/usecase/interfaces"
	"servicedesk/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// App is the wired HTTP application.
type App struct {
	Router  *gin.Engine
	closers []func() error
}

type stores struct {
	uow        interfaces.IUnitOfWork
	orders     interfaces.IServiceOrderRepository
	quotations interfaces.IQuotationRepository
	inventory  interfaces.IInventoryRepository
	payments   interfaces.IBillingPaymentRepository
	customers  interfaces.ICustomerRepository
	devices    interfaces.IDeviceRepository
}

// Build wires storage, sinks, use cases and handlers from cfg.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	app := &App{}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder, err := metrics.NewRecorder(registry)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	st, err := openStores(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sink := audit.Fanout{audit.LogSink{}}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.ClientID)
		if err != nil {
			return nil, fmt.Errorf("kafka audit sink: %w", err)
		}
		sink = append(sink, kafkaSink)
		app.closers = append(app.closers, kafkaSink.Close)
		logger.Info(ctx).Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("[audit][wiring] kafka sink enabled")
	}

	var gateway interfaces.IPaymentGateway
	if !cfg.Payments.Mock {
		mpGateway, err := payments.NewMercadoPagoGateway(cfg.Payments.AccessToken)
		if err != nil {
			logger.Warn(ctx).Err(err).Msg("[payment][wiring] Mercado Pago gateway not configured")
		} else {
			gateway = mpGateway
		}
	}

	runner := usecase.NewUnitRunner(st.uow, sink, recorder)
	ledger := usecase.NewInventoryLedgerUseCase(st.inventory, runner)
	orders := usecase.NewServiceOrderUseCase(st.orders, st.devices, runner)
	engine := usecase.NewQuotationEngine(st.quotations, ledger)
	workflow := usecase.NewWorkflowUseCase(orders, engine, runner)
	intake := usecase.NewRegistryUseCase(st.customers, st.devices, st.orders, runner)
	reports := usecase.NewOrderReportUseCase(orders, engine, ledger, intake, runner)
	billing := usecase.NewBillingPaymentUseCase(st.payments, st.orders, st.quotations, gateway, workflow, usecase.PaymentOptions{
		Mock:            cfg.Payments.Mock,
		AccessToken:     cfg.Payments.AccessToken,
		TestPayerEmail:  cfg.Payments.TestPayerEmail,
		TestPayerUserID: cfg.Payments.TestPayerUserID,
	})

	app.Router = NewRouter(Handlers{
		Orders:     handlers.NewServiceOrderHandler(orders, workflow, reports),
		Quotations: handlers.NewQuotationHandler(engine, workflow),
		Inventory:  handlers.NewInventoryHandler(ledger),
		Payments:   handlers.NewBillingPaymentHandler(billing),
		Registry:   handlers.NewRegistryHandler(intake),
	}, identity.NewJWTProvider(cfg.JWT.Secret, cfg.JWT.Issuer), registry)

	return app, nil
}

func openStores(ctx context.Context, cfg config.Config) (stores, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		store := memory.NewStore()
		logger.Warn(ctx).Msg("[storage][wiring] using in-memory storage; data is lost on restart")
		return stores{
			uow:        store,
			orders:     store.Orders(),
			quotations: store.Quotations(),
			inventory:  store.Inventory(),
			payments:   store.Payments(),
			customers:  store.Customers(),
			devices:    store.Devices(),
		}, nil
	case config.StorageDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg.AWS)
		if err != nil {
			return stores{}, fmt.Errorf("dynamodb: %w", err)
		}
		tables := repository.Tables{
			Orders:     cfg.Tables.Orders,
			Quotations: cfg.Tables.Quotations,
			Inventory:  cfg.Tables.Inventory,
			Payments:   cfg.Tables.Payments,
			Customers:  cfg.Tables.Customers,
			Devices:    cfg.Tables.Devices,
		}
		return stores{
			uow:        repository.NewUnitOfWork(ddb, tables),
			orders:     repository.NewServiceOrderDynamoRepository(ddb, tables.Orders),
			quotations: repository.NewQuotationDynamoRepository(ddb, tables.Quotations),
			inventory:  repository.NewInventoryDynamoRepository(ddb, tables.Inventory),
			payments:   repository.NewBillingPaymentDynamoRepository(ddb, tables.Payments),
			customers:  repository.NewCustomerDynamoRepository(ddb, tables.Customers),
			devices:    repository.NewDeviceDynamoRepository(ddb, tables.Devices),
		}, nil
	default:
		return stores{}, fmt.Errorf("unknown storage driver %q", cfg.Storage)
	}
}

// Close releases the resources opened by Build.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg config.Config) error {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := Build(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error(context.Background()).Err(err).Msg("[http][server] close failed")
		}
	}()

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx).Int("port", cfg.Port).Str("storage", cfg.Storage).Msg("[http][server] listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info(context.Background()).Msg("[http][server] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
