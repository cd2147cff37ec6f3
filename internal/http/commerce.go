package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medtrack/internal/domain"
	"medtrack/internal/service"
)

// @Summary List products
// @Tags products
// @Produce json
// @Param q query string false "Name contains"
// @Param category query string false "Category"
// @Success 200 {array} domain.PharmacyProduct
// @Router /products [get]
func (s *Server) listProducts(c *gin.Context) {
	list, err := s.Products.List(c, service.ProductFilter{Query: c.Query("q"), Category: c.Query("category")})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary List categories
// @Tags products
// @Produce json
// @Success 200 {array} string
// @Router /products/categories [get]
func (s *Server) listCategories(c *gin.Context) {
	list, err := s.Products.Categories(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get product by id
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} domain.PharmacyProduct
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func (s *Server) getProduct(c *gin.Context) {
	p, err := s.Products.GetByID(c, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if p == nil {
		notFound(c, "product")
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Medication data by barcode
// @Tags products
// @Produce json
// @Param code path string true "Barcode"
// @Success 200 {object} catalog.BarcodeInfo
// @Failure 404 {object} map[string]string
// @Router /barcodes/{code} [get]
func (s *Server) lookupBarcode(c *gin.Context) {
	info, err := s.Products.LookupBarcode(c, c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	if info == nil {
		notFound(c, "barcode")
		return
	}
	c.JSON(http.StatusOK, info)
}

// @Summary Cart contents with totals
// @Tags cart
// @Produce json
// @Success 200 {object} service.CartSummary
// @Router /cart [get]
func (s *Server) getCart(c *gin.Context) {
	sum, err := s.Cart.Summary(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// @Summary Empty the cart
// @Tags cart
// @Success 204
// @Router /cart [delete]
func (s *Server) clearCart(c *gin.Context) {
	if err := s.Cart.Clear(c); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type addCartItemReq struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// @Summary Add product to cart
// @Tags cart
// @Accept json
// @Produce json
// @Param input body addCartItemReq true "Item"
// @Success 200 {object} service.CartSummary
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cart/items [post]
func (s *Server) addCartItem(c *gin.Context) {
	var req addCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	p, err := s.Products.GetByID(c, req.ProductID)
	if err != nil {
		writeError(c, err)
		return
	}
	if p == nil {
		notFound(c, "product")
		return
	}
	sum, err := s.Cart.Add(c, *p, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

type updateCartItemReq struct {
	Quantity int `json:"quantity"`
}

// @Summary Set quantity of a cart line, zero removes it
// @Tags cart
// @Accept json
// @Produce json
// @Param productId path string true "Product ID"
// @Param input body updateCartItemReq true "Quantity"
// @Success 200 {object} service.CartSummary
// @Failure 400 {object} map[string]string
// @Router /cart/items/{productId} [put]
func (s *Server) updateCartItem(c *gin.Context) {
	var req updateCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	sum, err := s.Cart.UpdateQuantity(c, c.Param("productId"), req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// @Summary Remove product from cart
// @Tags cart
// @Produce json
// @Param productId path string true "Product ID"
// @Success 200 {object} service.CartSummary
// @Router /cart/items/{productId} [delete]
func (s *Server) removeCartItem(c *gin.Context) {
	sum, err := s.Cart.Remove(c, c.Param("productId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// @Summary List orders, newest first
// @Tags orders
// @Produce json
// @Success 200 {array} domain.Order
// @Router /orders [get]
func (s *Server) listOrders(c *gin.Context) {
	list, err := s.Orders.List(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type createOrderReq struct {
	UserID          string             `json:"userId" binding:"required"`
	Items           []domain.OrderItem `json:"items" binding:"required"`
	ShippingAddress string             `json:"shippingAddress" binding:"required"`
}

// @Summary Create order
// @Tags orders
// @Accept json
// @Produce json
// @Param input body createOrderReq true "Order"
// @Success 201 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Router /orders [post]
func (s *Server) createOrder(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	o, err := s.Orders.CreateOrder(c, req.UserID, req.Items, req.ShippingAddress)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

// @Summary Get order by id
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (s *Server) getOrder(c *gin.Context) {
	o, err := s.Orders.GetOrder(c, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if o == nil {
		notFound(c, "order")
		return
	}
	c.JSON(http.StatusOK, o)
}

type updateOrderStatusReq struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

// @Summary Change order status
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param input body updateOrderStatusReq true "Status"
// @Success 200 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/status [put]
func (s *Server) updateOrderStatus(c *gin.Context) {
	var req updateOrderStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	o, err := s.Orders.UpdateStatus(c, c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	if o == nil {
		notFound(c, "order")
		return
	}
	c.JSON(http.StatusOK, o)
}

// @Summary Cancel order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/cancel [post]
func (s *Server) cancelOrder(c *gin.Context) {
	o, err := s.Orders.CancelOrder(c, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if o == nil {
		notFound(c, "order")
		return
	}
	c.JSON(http.StatusOK, o)
}

type checkoutReq struct {
	Address string `json:"address"`
}

// @Summary Place an order from the cart
// @Tags orders
// @Accept json
// @Produce json
// @Param input body checkoutReq false "Shipping address, defaults to the user's address"
// @Success 201 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /checkout [post]
func (s *Server) placeOrder(c *gin.Context) {
	var req checkoutReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
	}
	o, err := s.Checkout.PlaceOrder(c, req.Address)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}
