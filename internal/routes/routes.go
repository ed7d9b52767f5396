package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/material-rental/internal/audit"
	"github.com/BruksfildServices01/material-rental/internal/config"
	"github.com/BruksfildServices01/material-rental/internal/fieldcrypt"
	"github.com/BruksfildServices01/material-rental/internal/handlers"
	"github.com/BruksfildServices01/material-rental/internal/identity"
	"github.com/BruksfildServices01/material-rental/internal/infra/docstore"
	"github.com/BruksfildServices01/material-rental/internal/infra/events"
	"github.com/BruksfildServices01/material-rental/internal/infra/gallery"
	infraRepo "github.com/BruksfildServices01/material-rental/internal/infra/repository"
	"github.com/BruksfildServices01/material-rental/internal/logging"
	"github.com/BruksfildServices01/material-rental/internal/metrics"
	"github.com/BruksfildServices01/material-rental/internal/middleware"
	"github.com/BruksfildServices01/material-rental/internal/usecase/availability"
	ucBooking "github.com/BruksfildServices01/material-rental/internal/usecase/booking"
	ucMaterial "github.com/BruksfildServices01/material-rental/internal/usecase/material"
	ucMessaging "github.com/BruksfildServices01/material-rental/internal/usecase/messaging"
)

// Deps are the singletons built at startup.
type Deps struct {
	Config     *config.Config
	Store      docstore.Store
	Cipher     fieldcrypt.Cipher
	Gallery    gallery.Lister
	Gate       *identity.Gate
	AppChecker identity.AppChecker
	Cache      *middleware.Cache
	Events     events.Publisher
	Metrics    *metrics.Metrics
	Audit      *audit.Dispatcher
	AuditLog   *audit.Logger
	Log        logging.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.Metrics(d.Metrics))
	r.Use(middleware.SecureHeaders())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	materialRepo := infraRepo.NewMaterialRepository(d.Store)
	bookingRepo := infraRepo.NewBookingRepository(d.Store, d.Cipher)
	messageRepo := infraRepo.NewMessageRepository(d.Store, d.Cipher)

	availabilitySvc := availability.NewService(materialRepo, d.Metrics, d.Log)
	galleryResolver := ucMaterial.NewGalleryResolver(d.Gallery)

	bookingDeps := ucBooking.Deps{
		Bookings:     bookingRepo,
		Availability: availabilitySvc,
		Audit:        d.Audit,
		Events:       d.Events,
		Log:          d.Log,
	}

	messagingDeps := ucMessaging.Deps{
		Messages:     messageRepo,
		Bookings:     bookingRepo,
		Availability: availabilitySvc,
		Audit:        d.Audit,
		Events:       d.Events,
		Log:          d.Log,
	}

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	materialHandler := handlers.NewMaterialHandler(
		ucMaterial.NewListMaterials(materialRepo),
		ucMaterial.NewGetMaterial(materialRepo),
		ucMaterial.NewSearchMaterials(materialRepo),
		ucMaterial.NewCreateMaterial(materialRepo, galleryResolver, d.Audit),
		ucMaterial.NewUpdateMaterial(materialRepo, galleryResolver, d.Audit),
		ucMaterial.NewDeleteMaterial(materialRepo, d.Audit),
	)

	bookingHandler := handlers.NewBookingHandler(
		ucBooking.NewListBookings(bookingRepo),
		ucBooking.NewGetBooking(bookingRepo),
		ucBooking.NewGetUnavailableDates(materialRepo),
		ucBooking.NewCreateBooking(bookingDeps),
		ucBooking.NewUpdateBooking(bookingDeps),
		ucBooking.NewMarkAsPaid(bookingDeps),
		ucBooking.NewDeleteBooking(bookingDeps),
	)

	messagingHandler := handlers.NewMessagingHandler(
		ucMessaging.NewPostMessage(messagingDeps),
		ucMessaging.NewListMessages(messageRepo),
		ucMessaging.NewGetMessage(messageRepo),
		ucMessaging.NewToggleRead(messagingDeps),
		ucMessaging.NewDeleteMessage(messagingDeps),
		ucMessaging.NewPromote(messagingDeps),
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLog)

	// ======================================================
	// 🩺 OPS
	// ======================================================
	r.GET("/health", handlers.Health)
	if cfg.MetricsEnabled {
		r.GET(cfg.MetricsPath, gin.WrapH(d.Metrics.Handler()))
	}

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	if cfg.AppCheckEnabled {
		api.Use(middleware.AppCheck(d.AppChecker, cfg.AppCheckOrigin))
	}

	operator := middleware.OperatorOnly(d.Gate)
	invalidate := d.Cache.Invalidate()

	// ------------------------------
	// 📦 MATERIAL
	// ------------------------------
	material := api.Group("/material")
	{
		material.GET("", d.Cache.Read(), materialHandler.List)
		material.GET("/:id", d.Cache.Read(), materialHandler.Get)
		material.GET("/search/:id", d.Cache.Read(), materialHandler.Search)

		material.POST("", operator, invalidate, materialHandler.Create)
		material.PUT("/:id", operator, invalidate, materialHandler.Update)
		material.DELETE("/:id", operator, invalidate, materialHandler.Delete)
	}

	// ------------------------------
	// 📅 BOOKING (OPERATOR)
	// ------------------------------
	booking := api.Group("/booking")
	booking.Use(operator, invalidate)
	{
		booking.GET("", bookingHandler.List)
		booking.GET("/:id", bookingHandler.Get)
		booking.GET("/unavailableDates/:id", bookingHandler.UnavailableDates)
		booking.POST("", bookingHandler.Create)
		booking.PUT("/:id", bookingHandler.Update)
		booking.PUT("/markAsPaid/:id", bookingHandler.MarkAsPaid)
		booking.DELETE("/:id", bookingHandler.Delete)
	}

	// ------------------------------
	// ✉️ MESSAGING
	// ------------------------------
	messaging := api.Group("/messaging")
	{
		messaging.POST("", invalidate, messagingHandler.Post)

		messaging.POST("/create", operator, invalidate, messagingHandler.Promote)
		messaging.GET("", operator, messagingHandler.List)
		messaging.GET("/:id", operator, messagingHandler.Get)
		messaging.PUT("/:id", operator, messagingHandler.ToggleRead)
		messaging.DELETE("/:id", operator, invalidate, messagingHandler.Delete)
	}

	// ------------------------------
	// 🧾 AUDIT (OPERATOR)
	// ------------------------------
	api.GET("/audit-logs", operator, auditLogsHandler.List)
}
