package cmd

import (
	"fmt"
	"log/slog"

	"rateshop/internal/adapters/out/carriers"
	"rateshop/internal/adapters/out/postgres/queuerepo"
	"rateshop/internal/adapters/out/shipstation"
	"rateshop/internal/adapters/out/upstransit"
	"rateshop/internal/core/application/usecases/commands"
	"rateshop/internal/core/domain/services"
	"rateshop/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires the adapters into the application's command handlers.
type CompositionRoot struct {
	orderSource *shipstation.OrderSource
	rateGateway *shipstation.RateGateway
	catalog     *shipstation.ProductCatalog
	orderQueue  *queuerepo.GormOrderQueue
	raters      []ports.CarrierRater
	classifier  *services.Classifier
	logger      *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	ssClient, err := shipstation.NewClient(
		config.ShipStationBaseURL, config.ShipStationAPIKey, config.ShipStationAPISecret, logger)
	if err != nil {
		return nil, fmt.Errorf("shipstation client: %w", err)
	}

	upsClient, err := upstransit.NewClient(
		config.UPSBaseURL, config.UPSClientID, config.UPSClientSecret, logger)
	if err != nil {
		return nil, fmt.Errorf("ups transit client: %w", err)
	}

	upsRater, err := carriers.NewUPSRater(upsClient)
	if err != nil {
		return nil, fmt.Errorf("ups rater: %w", err)
	}

	classifier, err := services.NewClassifier(nil)
	if err != nil {
		return nil, fmt.Errorf("classifier: %w", err)
	}

	return &CompositionRoot{
		orderSource: shipstation.NewOrderSource(ssClient),
		rateGateway: shipstation.NewRateGateway(ssClient),
		catalog:     shipstation.NewProductCatalog(ssClient),
		orderQueue:  queuerepo.NewGormOrderQueue(gormDB),
		raters: []ports.CarrierRater{
			upsRater,
			carriers.NewUSPSRater(),
			carriers.NewFedExRater(),
		},
		classifier: classifier,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateFetchOrdersCommandHandler() (commands.FetchOrdersCommandHandler, error) {
	return commands.NewFetchOrdersCommandHandler(c.orderSource, c.orderQueue, c.logger)
}

func (c *CompositionRoot) CreateDrainQueueCommandHandler() (commands.DrainQueueCommandHandler, error) {
	processor, err := commands.NewProcessOrderCommandHandler(
		c.orderSource, c.rateGateway, c.catalog, c.classifier, c.raters, c.logger)
	if err != nil {
		return commands.DrainQueueCommandHandler{}, err
	}

	return commands.NewDrainQueueCommandHandler(c.orderQueue, &processor, c.logger)
}
