package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"medtrack/internal/address"
	"medtrack/internal/reminder"
	"medtrack/internal/repository"
	"medtrack/internal/service"
)

// Reminders операции с напоминаниями, доступные через API
type Reminders interface {
	ScheduleForMedication(ctx context.Context, t reminder.Target) ([]string, error)
	TriggerIDs(ctx context.Context, medicationID string) ([]string, error)
	CancelAll(ctx context.Context) error
}

// PendingTriggers планировщик, умеющий показать зарегистрированные триггеры
type PendingTriggers interface {
	Pending() []reminder.Trigger
}

// CEPLookup поиск адреса по CEP
type CEPLookup interface {
	Lookup(ctx context.Context, cep string) (*address.Result, error)
}

// Deps сервисы, которые обслуживает сервер
type Deps struct {
	Medications    *service.MedicationService
	Reconciliation *service.ReconciliationService
	Products       *service.ProductService
	Cart           *service.CartService
	Orders         *service.OrderService
	Checkout       *service.CheckoutService
	Users          *service.UserService
	Reminders      Reminders
	Scheduler      PendingTriggers
	CEP            CEPLookup
	// AllowedOrigins пусто или "*" разрешает любой origin
	AllowedOrigins []string
}

type Server struct {
	engine *gin.Engine
	Deps
}

func NewServer(d Deps) *Server {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), cors.New(corsConfig(d.AllowedOrigins)))
	s := &Server{engine: r, Deps: d}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := s.engine.Group("/api/v1")
	{
		meds := v1.Group("/medications")
		meds.GET("", s.listMedications)
		meds.POST("", s.createMedication)
		meds.GET(":id", s.getMedication)
		meds.PUT(":id", s.updateMedication)
		meds.DELETE(":id", s.deleteMedication)
		meds.POST(":id/take-dose", s.takeDose)
		meds.POST(":id/stock", s.updateStock)
		meds.POST(":id/restock", s.restock)
		meds.GET(":id/product", s.productForMedication)
		meds.GET(":id/reminders", s.medicationReminders)
		meds.POST(":id/reminders", s.rescheduleReminders)

		low := v1.Group("/low-stock")
		low.GET("", s.lowStock)
		low.GET("/needs-purchase", s.needsPurchase)
		low.POST("/buy", s.buyMissing)

		reminders := v1.Group("/reminders")
		reminders.GET("", s.pendingReminders)
		reminders.DELETE("", s.cancelAllReminders)

		products := v1.Group("/products")
		products.GET("", s.listProducts)
		products.GET("/categories", s.listCategories)
		products.GET(":id", s.getProduct)
		v1.GET("/barcodes/:code", s.lookupBarcode)

		cart := v1.Group("/cart")
		cart.GET("", s.getCart)
		cart.DELETE("", s.clearCart)
		cart.POST("/items", s.addCartItem)
		cart.PUT("/items/:productId", s.updateCartItem)
		cart.DELETE("/items/:productId", s.removeCartItem)

		orders := v1.Group("/orders")
		orders.GET("", s.listOrders)
		orders.POST("", s.createOrder)
		orders.GET(":id", s.getOrder)
		orders.PUT(":id/status", s.updateOrderStatus)
		orders.POST(":id/cancel", s.cancelOrder)
		v1.POST("/checkout", s.placeOrder)

		auth := v1.Group("/auth")
		auth.POST("/sign-in", s.signIn)
		auth.POST("/sign-up", s.signUp)
		auth.POST("/sign-out", s.signOut)

		me := v1.Group("/me", s.authRequired())
		me.GET("", s.getMe)
		me.PUT("", s.updateMe)
		me.PUT("/address", s.updateAddress)
		me.GET("/addresses", s.listAddresses)
		me.POST("/addresses", s.addAddress)

		v1.GET("/cep/:cep", s.lookupCEP)
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

const userKey = "user"

// authRequired проверяет Bearer токен текущей сессии
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		u, err := s.Users.Authenticate(c, token)
		if err != nil {
			writeError(c, err)
			c.Abort()
			return
		}
		c.Set(userKey, u)
		c.Next()
	}
}

func writeError(c *gin.Context, err error) {
	c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
}

func notFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, address.ErrInvalidCEP), errors.Is(err, address.ErrIncomplete):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotSignedIn):
		return http.StatusUnauthorized
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidState), errors.Is(err, service.ErrEmptyCart):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
