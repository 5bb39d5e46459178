package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/colinmarc/hdfs/v2"
	"github.com/likmaa/ejs-market/config"
	"github.com/likmaa/ejs-market/internal/adapter/httphandler"
	"github.com/likmaa/ejs-market/internal/adapter/kafka"
	"github.com/likmaa/ejs-market/internal/adapter/snapshot"
	"github.com/likmaa/ejs-market/internal/adapter/storage"
	"github.com/likmaa/ejs-market/internal/core/port"
	"github.com/likmaa/ejs-market/internal/core/service"
	"github.com/likmaa/ejs-market/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type containers struct {
	cart       port.CartStore
	wishlist   port.WishlistStore
	comparison port.ComparisonStore
}

type App struct {
	ctx             context.Context
	cfg             config.Config
	sqldb           storage.SQLDB
	snapshots       snapshot.LevelDB
	orderSerde      schema.Serde
	producer        kafka.OrderPlacedProducer
	archiveConsumer kafka.OrdersArchiveConsumer
	containers      containers
	placer          port.OrderPlacer
	httpServer      httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initSnapshotStorage()
	app.initContainers()
	app.initSQLStorage()
	app.initOrderSerde()
	app.initProducer()
	app.initArchiveConsumer()
	app.initCheckout()
	app.initHTTPServer()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initSnapshotStorage() {
	const op = "App.initSnapshotStorage"

	snapshots, err := snapshot.NewLevelDB(app.cfg.SnapshotPath)
	if err != nil {
		app.fallDown(op, err)
	}
	app.snapshots = snapshots
}

func (app *App) initContainers() {
	cart := service.NewCartService(app.snapshots)
	wishlist := service.NewWishlistService(app.snapshots)
	comparison := service.NewComparisonService(app.snapshots)

	cart.Rehydrate(app.ctx)
	wishlist.Rehydrate(app.ctx)
	comparison.Rehydrate(app.ctx)

	app.containers = containers{cart, wishlist, comparison}
}

func (app *App) initSQLStorage() {
	const op = "App.initSQLStorage"

	sqldb, err := storage.NewSQLDB(app.ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.sqldb = sqldb
}

func (app *App) initOrderSerde() {
	const op = "App.initOrderSerde"

	srClient, err := sr.NewClient(
		sr.URLs(app.cfg.Broker.SchemaRegistryURLs...),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	subject := app.cfg.Broker.Topics.OrderPlaced + "-value"
	orderSerde, err := schema.NewSerdeOrderPlacedV1(
		app.ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.orderSerde = orderSerde
}

func (app *App) initProducer() {
	const op = "App.initProducer"

	producer, err := kafka.NewOrderPlacedProducer(
		kafka.ProducerClientOpt(
			app.ctx,
			app.cfg.Broker.SeedBrokers,
			app.cfg.Broker.Topics.OrderPlaced,
		),
		kafka.ProducerEncoderOpt(app.orderSerde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.producer = producer
}

func (app *App) initArchiveConsumer() {
	const op = "App.initArchiveConsumer"

	hdfsClient, err := hdfs.NewClient(hdfs.ClientOptions{
		Addresses: app.cfg.Archive.HDFSAddrs,
		User:      app.cfg.Archive.HDFSUser,
	})
	if err != nil {
		app.fallDown(op, err)
	}

	archive := storage.NewOrdersArchive(hdfsClient)

	consumer, err := kafka.NewOrdersArchiveConsumer(
		kafka.ConsumerClientOpt(
			app.cfg.Broker.SeedBrokers,
			app.cfg.Broker.Topics.OrderPlaced,
			app.cfg.Broker.Consumers.OrderArchiveGroup,
		),
		kafka.ConsumerDecoderOpt(app.orderSerde),
		kafka.ConsumerArchiverOpt(archive),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.archiveConsumer = consumer
}

func (app *App) initCheckout() {
	users := storage.NewUsersRepository(app.sqldb)
	orders := storage.NewOrdersRepository(app.sqldb)
	app.placer = service.NewCheckoutService(users, orders, app.producer)
}

func (app *App) initHTTPServer() {
	mux := http.NewServeMux()
	httphandler.RegisterCart(mux, app.containers.cart)
	httphandler.RegisterWishlist(mux, app.containers.wishlist)
	httphandler.RegisterComparison(mux, app.containers.comparison)
	httphandler.RegisterOrders(mux, app.placer)

	handler := httphandler.LogRequests(httphandler.AllowJSON(mux))
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)
	go app.archiveConsumer.Run(app.ctx)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.archiveConsumer.Close()
	app.producer.Close()
	app.sqldb.Close()
	app.snapshots.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
