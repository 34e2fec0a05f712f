package container

import (
	"database/sql"
	"os"

	"storefront/internal/analytics"
	auditLogRepo "storefront/internal/auditlog"
	"storefront/internal/catalog"
	"storefront/internal/events"
	"storefront/internal/inventory"
	"storefront/internal/payments"
	"storefront/internal/repository"
	"storefront/internal/sales"
	"storefront/internal/storage"
	"storefront/internal/suppliers"
	"storefront/internal/users"
	"storefront/pkg/auditlog"
	"storefront/pkg/security"

	"go.uber.org/zap"
)

type Container struct {
	Repository       *repository.Repository
	AuditLog         *auditlog.Auditlog
	Bus              *events.RedisBus
	Images           *storage.ImageStore
	LoginHandler     *security.LoginHandler
	InventoryHandler *inventory.InventoryHandler
	CatalogHandler   *catalog.CatalogHandler
	SupplierHandler  *suppliers.SupplierHandler
	SaleHandler      *sales.SaleHandler
	PaymentHandler   *payments.PaymentHandler
	AnalyticsHandler *analytics.AnalyticsHandler
	UserHandler      *users.UsersHandler
	AuditLogHandler  *auditLogRepo.AuditLogHandler
}

func NewAppContainer(db *sql.DB, logger *zap.Logger) *Container {
	repo := repository.NewRepository(db)
	auditRepo := auditLogRepo.NewRepository(repo)
	auditLog := auditlog.NewAuditLog(auditRepo)

	var bus *events.RedisBus
	var publisher events.Publisher = events.NopPublisher{}
	var cache analytics.SnapshotCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		bus = events.NewRedisBus(addr, logger)
		publisher = bus
		cache = bus
	} else {
		logger.Warn("REDIS_ADDR not set, change signals and dashboard caching disabled")
	}

	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "uploads"
	}
	images, err := storage.NewImageStore(uploadsDir, os.Getenv("PUBLIC_BASE_URL"), logger)
	if err != nil {
		logger.Warn("image storage unavailable", zap.Error(err))
		images = nil
	}

	inventoryRepo := inventory.NewRepository(repo)
	supplierRepo := suppliers.NewRepository(repo)
	saleRepo := sales.NewRepository(repo)
	paymentRepo := payments.NewRepository(repo)
	userRepo := users.NewRepository(repo)

	return &Container{
		Repository:       repo,
		AuditLog:         auditLog,
		Bus:              bus,
		Images:           images,
		LoginHandler:     security.NewLoginHandler(repo),
		InventoryHandler: inventory.NewInventoryHandler(inventoryRepo, images, publisher, auditLog),
		CatalogHandler:   catalog.NewCatalogHandler(inventoryRepo),
		SupplierHandler:  suppliers.NewSupplierHandler(supplierRepo, publisher, auditLog),
		SaleHandler:      sales.NewSaleHandler(saleRepo, inventoryRepo, publisher, auditLog),
		PaymentHandler:   payments.NewPaymentHandler(paymentRepo, publisher, auditLog),
		AnalyticsHandler: analytics.NewAnalyticsHandler(saleRepo, inventoryRepo, cache),
		UserHandler:      users.NewHandler(userRepo),
		AuditLogHandler:  auditLogRepo.NewAuditLogHandler(auditRepo),
	}
}
