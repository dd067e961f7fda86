package cmd

import (
	"log/slog"
	"time"

	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/couponrepo"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	pricing    services.PricingService
	payments   ports.PaymentGateway
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	pricing services.PricingService,
	payments ports.PaymentGateway,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		pricing:    pricing,
		payments:   payments,
		publisher:  publisher,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateAddCartItemCommandHandler() commands.AddCartItemCommandHandler {
	return commands.NewAddCartItemCommandHandler(c.cartUoWFactory(), c.pricing)
}

func (c *CompositionRoot) CreateApplyCouponCommandHandler() commands.ApplyCouponCommandHandler {
	return commands.NewApplyCouponCommandHandler(
		c.cartUoWFactory(),
		couponrepo.NewGormCouponRepository(c.gormDB),
		c.pricing,
	)
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCheckoutCommandHandler(f, c.pricing, c.payments, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, c.publisher, c.config.CourierMultiDelivery, c.logger)
}

func (c *CompositionRoot) CreateCleanupCartsCommandHandler() commands.CleanupCartsCommandHandler {
	ttl := time.Duration(c.config.CartTTLHours) * time.Hour
	return commands.NewCleanupCartsCommandHandler(c.cartUoWFactory(), ttl)
}

func (c *CompositionRoot) CreatePendingForBusinessQueryHandler() queries.PendingForBusinessQueryHandler {
	return queries.NewPendingForBusinessQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateActiveForCourierQueryHandler() queries.ActiveForCourierQueryHandler {
	return queries.NewActiveForCourierQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCustomerHistoryQueryHandler() queries.CustomerHistoryQueryHandler {
	return queries.NewCustomerHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateCleanupCartsCommandHandler(), c.logger)
}

func (c *CompositionRoot) cartUoWFactory() commands.CartUoWFactory {
	return FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
