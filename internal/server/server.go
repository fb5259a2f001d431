package server

import (
	"marketplace-settlement/internal/handler"
	appmw "marketplace-settlement/internal/middleware"
	"marketplace-settlement/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Server struct {
	echo              *echo.Echo
	commissionHandler *handler.CommissionHandler
	paymentHandler    *handler.PaymentHandler
	orderHandler      *handler.OrderHandler
}

func NewServer(
	commissionService service.CommissionService,
	paymentService service.PaymentService,
	orderService service.OrderService,
	jwtSecret string,
	logger *zap.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(appmw.BearerAuth(jwtSecret))

	s := &Server{
		echo:              e,
		commissionHandler: handler.NewCommissionHandler(commissionService, logger),
		paymentHandler:    handler.NewPaymentHandler(paymentService, logger),
		orderHandler:      handler.NewOrderHandler(orderService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api.GET("/orders/:id", s.orderHandler.GetOrder)

	// -------- commission --------
	commission := api.Group("/commission")
	commission.POST("/calculate", s.commissionHandler.Calculate)
	commission.GET("/rules", s.commissionHandler.ListRules)
	commission.POST("/rules", s.commissionHandler.CreateRule)
	commission.PUT("/rules/:id", s.commissionHandler.UpdateRule)

	// -------- payments --------
	payments := api.Group("/payments")
	payments.POST("/intent", s.paymentHandler.CreateIntent)
	payments.POST("/verify", s.paymentHandler.VerifyPayment)
	payments.POST("/webhook", s.paymentHandler.ProviderWebhook)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
