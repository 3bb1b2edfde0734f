package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"zmart/internal/domain"
	"zmart/internal/service"
	"zmart/internal/state"
)

type Server struct {
	engine   *gin.Engine
	store    *service.Store
	sessions *service.SessionService
	products *service.ProductService
	cart     *service.CartService
	orders   *service.OrderService
	logger   *slog.Logger
}

// Services набор сервисов, которые обслуживает API
type Services struct {
	Store    *service.Store
	Sessions *service.SessionService
	Products *service.ProductService
	Cart     *service.CartService
	Orders   *service.OrderService
}

func NewServer(svc Services, allowedOrigins []string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	r := gin.New()
	r.Use(requestLogger(logger), gin.Recovery())
	if len(allowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     allowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	s := &Server{
		engine:   r,
		store:    svc.Store,
		sessions: svc.Sessions,
		products: svc.Products,
		cart:     svc.Cart,
		orders:   svc.Orders,
		logger:   logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	s.engine.GET("/metrics", gin.WrapH(s.store.Metrics().Handler()))
	s.engine.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	v1 := s.engine.Group("/api/v1")
	{
		v1.GET("/state", s.getState)
		v1.GET("/categories", s.listCategories)
		v1.PUT("/filters", s.setFilters)

		session := v1.Group("/session")
		session.GET("", s.currentUser)
		session.POST("/login", s.login)
		session.POST("/signup", s.signup)
		session.DELETE("", s.logout)

		products := v1.Group("/products")
		products.GET("", s.listProducts)
		products.POST("", s.createProduct)
		products.POST("/describe", s.describeProduct)
		products.GET(":id", s.getProduct)
		products.PUT(":id", s.updateProduct)
		products.DELETE(":id", s.deleteProduct)

		cart := v1.Group("/cart")
		cart.GET("", s.getCart)
		cart.POST("/items", s.addCartItem)
		cart.PATCH("/items/:id", s.changeCartItem)
		cart.DELETE("/items/:id", s.removeCartItem)

		orders := v1.Group("/orders")
		orders.POST("", s.placeOrder)
		orders.GET("", s.listOrders)
		orders.GET(":id", s.getOrder)
		orders.PUT(":id/status", s.updateOrderStatus)

		seller := v1.Group("/seller")
		seller.GET("/products", s.sellerProducts)
		seller.GET("/orders", s.sellerOrders)
	}
}

// @Summary Full state snapshot
// @Tags state
// @Produce json
// @Success 200 {object} domain.AppState
// @Router /state [get]
func (s *Server) getState(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Snapshot())
}

// @Summary List categories, "All" first
// @Tags products
// @Produce json
// @Success 200 {array} string
// @Router /categories [get]
func (s *Server) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, append([]string{domain.CategoryAll}, domain.Categories...))
}

type filtersReq struct {
	SearchQuery    *string `json:"searchQuery"`
	CategoryFilter *string `json:"categoryFilter"`
}

// @Summary Update search and category filters
// @Tags products
// @Accept json
// @Produce json
// @Param input body filtersReq true "Filters"
// @Success 200 {array} domain.Product
// @Failure 400 {object} map[string]string
// @Router /filters [put]
func (s *Server) setFilters(c *gin.Context) {
	var req filtersReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if _, err := s.products.SetFilters(c, service.Filters{SearchQuery: req.SearchQuery, CategoryFilter: req.CategoryFilter}); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s.products.Visible())
}

// Session handlers
type loginReq struct {
	// ID необязательный, мок-идентичность без проверки
	ID    string      `json:"id,omitempty"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  domain.Role `json:"role"`
}

// @Summary Current user
// @Tags session
// @Produce json
// @Success 200 {object} domain.User
// @Failure 401 {object} map[string]string
// @Router /session [get]
func (s *Server) currentUser(c *gin.Context) {
	u, err := s.sessions.Current()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary Mock login, no credential check
// @Description id is optional; a seller logs in under the id of their products
// @Tags session
// @Accept json
// @Produce json
// @Param input body loginReq true "Login"
// @Success 200 {object} domain.User
// @Failure 400 {object} map[string]string
// @Router /session/login [post]
func (s *Server) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	u, err := s.sessions.LoginAs(c, req.ID, req.Email, req.Name, req.Role)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary Mock signup
// @Tags session
// @Accept json
// @Produce json
// @Param input body loginReq true "Signup"
// @Success 201 {object} domain.User
// @Failure 400 {object} map[string]string
// @Router /session/signup [post]
func (s *Server) signup(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	u, err := s.sessions.Signup(c, req.Email, req.Name, req.Role)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// @Summary Logout
// @Tags session
// @Success 204
// @Router /session [delete]
func (s *Server) logout(c *gin.Context) {
	if err := s.sessions.Logout(c); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Product handlers

// @Summary List visible products
// @Description q and category update the stored filters before filtering
// @Tags products
// @Produce json
// @Param q query string false "Name or brand contains"
// @Param category query string false "Exact category or All"
// @Success 200 {array} domain.Product
// @Router /products [get]
func (s *Server) listProducts(c *gin.Context) {
	var f service.Filters
	if q, ok := c.GetQuery("q"); ok {
		f.SearchQuery = &q
	}
	if cat, ok := c.GetQuery("category"); ok {
		f.CategoryFilter = &cat
	}
	if _, err := s.products.SetFilters(c, f); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s.products.Visible())
}

// @Summary Get product by id
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func (s *Server) getProduct(c *gin.Context) {
	p, err := s.products.GetByID(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Create product from a draft
// @Tags products
// @Accept json
// @Produce json
// @Param input body domain.ProductDraft true "Draft"
// @Success 201 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /products [post]
func (s *Server) createProduct(c *gin.Context) {
	var d domain.ProductDraft
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	p, err := s.products.Create(c, d)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// @Summary Update product fields present in the draft
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param input body domain.ProductDraft true "Draft"
// @Success 200 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id} [put]
func (s *Server) updateProduct(c *gin.Context) {
	var d domain.ProductDraft
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	p, err := s.products.Update(c, c.Param("id"), d)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Delete product
// @Tags products
// @Param id path string true "Product ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id} [delete]
func (s *Server) deleteProduct(c *gin.Context) {
	if err := s.products.Delete(c, c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type describeReq struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// @Summary Generate a product description
// @Tags products
// @Accept json
// @Produce json
// @Param input body describeReq true "Name and category"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /products/describe [post]
func (s *Server) describeProduct(c *gin.Context) {
	var req describeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	text, err := s.products.Describe(c, req.Name, req.Category)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"description": text})
}

// @Summary Seller inventory
// @Tags seller
// @Produce json
// @Success 200 {array} domain.Product
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /seller/products [get]
func (s *Server) sellerProducts(c *gin.Context) {
	list, err := s.products.Mine()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Cart handlers

// @Summary Cart with totals
// @Tags cart
// @Produce json
// @Success 200 {object} service.CartView
// @Router /cart [get]
func (s *Server) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, s.cart.View())
}

type addCartReq struct {
	ProductID string `json:"productId"`
}

// @Summary Add product to cart
// @Tags cart
// @Accept json
// @Produce json
// @Param input body addCartReq true "Product"
// @Success 200 {object} service.CartView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cart/items [post]
func (s *Server) addCartItem(c *gin.Context) {
	var req addCartReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	v, err := s.cart.Add(c, req.ProductID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

type changeCartReq struct {
	Delta int64 `json:"delta"`
}

// @Summary Change cart quantity by delta (floors at 1)
// @Tags cart
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param input body changeCartReq true "Delta"
// @Success 200 {object} service.CartView
// @Failure 404 {object} map[string]string
// @Router /cart/items/{id} [patch]
func (s *Server) changeCartItem(c *gin.Context) {
	var req changeCartReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	v, err := s.cart.ChangeQuantity(c, c.Param("id"), req.Delta)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// @Summary Remove product from cart
// @Tags cart
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} service.CartView
// @Router /cart/items/{id} [delete]
func (s *Server) removeCartItem(c *gin.Context) {
	v, err := s.cart.Remove(c, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// Order handlers

// @Summary Checkout the cart
// @Tags orders
// @Produce json
// @Success 201 {object} domain.Order
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders [post]
func (s *Server) placeOrder(c *gin.Context) {
	o, err := s.orders.PlaceOrder(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

// @Summary Order history of the current buyer
// @Tags orders
// @Produce json
// @Success 200 {array} domain.Order
// @Failure 401 {object} map[string]string
// @Router /orders [get]
func (s *Server) listOrders(c *gin.Context) {
	list, err := s.orders.History()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get order by id
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (s *Server) getOrder(c *gin.Context) {
	o, err := s.orders.GetOrder(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

type statusReq struct {
	Status domain.OrderStatus `json:"status"`
}

// @Summary Advance order status
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param input body statusReq true "Status"
// @Success 200 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/status [put]
func (s *Server) updateOrderStatus(c *gin.Context) {
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	o, err := s.orders.UpdateStatus(c, c.Param("id"), req.Status)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// @Summary Orders containing the seller's products
// @Tags seller
// @Produce json
// @Success 200 {array} domain.Order
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /seller/orders [get]
func (s *Server) sellerOrders(c *gin.Context) {
	list, err := s.orders.SellerOrders()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) fail(c *gin.Context, err error) {
	status := mapErrorToStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, state.ErrNoUser):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, state.ErrProductNotFound),
		errors.Is(err, state.ErrOrderNotFound),
		errors.Is(err, state.ErrNotInCart):
		return http.StatusNotFound
	case errors.Is(err, state.ErrCartEmpty),
		errors.Is(err, state.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}
