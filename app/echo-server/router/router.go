package router

import (
	"net/http"

	"ecommerceBackend/internal/middleware"
	"ecommerceBackend/internal/rest"

	"github.com/labstack/echo/v4"
)

// Route is one endpoint together with the access level it requires.
type Route struct {
	Method  string
	Path    string
	Handler echo.HandlerFunc
	Access  middleware.Access
}

type Handlers struct {
	User     *rest.UserHandler
	Category *rest.CategoryHandler
	Product  *rest.ProductHandler
	Orders   *rest.OrdersHandler
	Payments *rest.PaymentsHandler
	Review   *rest.ReviewHandler
	Cart     *rest.CartHandler
	Address  *rest.AddressHandler
}

func AuthRoutes(h *rest.UserHandler) []Route {
	return []Route{
		{http.MethodPost, "/auth/register", h.Register, middleware.Public},
		{http.MethodPost, "/auth/login", h.Login, middleware.Public},
		{http.MethodGet, "/auth/email-verification/:code", h.VerifyEmail, middleware.Public},
		{http.MethodPost, "/auth/logout", h.Logout, middleware.Authenticated},
	}
}

func UserRoutes(h *rest.UserHandler) []Route {
	return []Route{
		{http.MethodGet, "/users", h.GetAllUsers, middleware.Admin},
		{http.MethodGet, "/users/get-count", h.CountUsers, middleware.Admin},
		{http.MethodGet, "/users/:id", h.GetUserByID, middleware.Owner},
		{http.MethodPut, "/users/:id", h.UpdateUser, middleware.Owner},
		{http.MethodDelete, "/users/:id", h.DeleteUser, middleware.Admin},
	}
}

func CategoryRoutes(h *rest.CategoryHandler) []Route {
	return []Route{
		{http.MethodGet, "/categories", h.GetAllCategories, middleware.Public},
		{http.MethodGet, "/categories/:id", h.GetCategoryByID, middleware.Public},
		{http.MethodPost, "/categories", h.CreateCategory, middleware.Admin},
		{http.MethodPut, "/categories/:id", h.UpdateCategory, middleware.Admin},
		{http.MethodDelete, "/categories/:id", h.DeleteCategory, middleware.Admin},
	}
}

func ProductRoutes(h *rest.ProductHandler) []Route {
	return []Route{
		{http.MethodGet, "/products", h.GetAllProducts, middleware.Public},
		{http.MethodGet, "/products/featured-products/:count", h.GetFeaturedProducts, middleware.Public},
		{http.MethodGet, "/products/selected-properties", h.GetSelectedProperties, middleware.Public},
		{http.MethodGet, "/products/get-count", h.CountProducts, middleware.Public},
		{http.MethodGet, "/products/:id", h.GetProductByID, middleware.Public},
		{http.MethodPost, "/products", h.CreateProduct, middleware.Admin},
		{http.MethodPut, "/products/:id", h.UpdateProduct, middleware.Admin},
		{http.MethodDelete, "/products/:id", h.DeleteProduct, middleware.Admin},

		{http.MethodGet, "/product-images", h.GetAllImages, middleware.Public},
		{http.MethodPost, "/product-images", h.CreateImage, middleware.Admin},
		{http.MethodGet, "/product-videos", h.GetAllVideos, middleware.Public},
		{http.MethodPost, "/product-videos", h.CreateVideo, middleware.Admin},
	}
}

func OrderRoutes(h *rest.OrdersHandler) []Route {
	return []Route{
		{http.MethodGet, "/orders", h.GetAllOrders, middleware.Admin},
		{http.MethodGet, "/orders/total-sales", h.GetTotalSales, middleware.Admin},
		{http.MethodGet, "/orders/get-count", h.CountOrders, middleware.Admin},
		{http.MethodGet, "/orders/user/:user_id", h.GetUserOrders, middleware.Owner},
		{http.MethodGet, "/orders/:id", h.GetOrderByID, middleware.Owner},
		{http.MethodPost, "/orders", h.CreateOrder, middleware.Owner},
		{http.MethodPut, "/orders/update-order-status/:id", h.UpdateOrderStatus, middleware.Admin},
		{http.MethodPut, "/orders/update-payment-status/:id", h.UpdatePaymentStatus, middleware.Admin},
		{http.MethodPut, "/orders/cancel/:id", h.CancelOrder, middleware.Owner},
		{http.MethodDelete, "/orders/:id", h.DeleteOrder, middleware.Owner},

		{http.MethodGet, "/order-items", h.GetAllOrderItems, middleware.Authenticated},
		{http.MethodGet, "/order-items/:id", h.GetOrderItemByID, middleware.Authenticated},
		{http.MethodPost, "/order-items", h.CreateOrderItem, middleware.Authenticated},
	}
}

func PaymentRoutes(h *rest.PaymentsHandler) []Route {
	return []Route{
		{http.MethodGet, "/payments", h.GetAllPayments, middleware.Authenticated},
		{http.MethodGet, "/payments/:id", h.GetPaymentByID, middleware.Authenticated},
		{http.MethodPost, "/payments", h.CreatePayment, middleware.Authenticated},
		{http.MethodPut, "/payments/:id", h.UpdatePayment, middleware.Authenticated},
		{http.MethodDelete, "/payments/:id", h.DeletePayment, middleware.Admin},
	}
}

func ReviewRoutes(h *rest.ReviewHandler) []Route {
	return []Route{
		{http.MethodGet, "/reviews", h.GetAllReviews, middleware.Public},
		{http.MethodPost, "/reviews", h.CreateReview, middleware.Authenticated},
		{http.MethodPut, "/reviews/:id", h.UpdateReview, middleware.Authenticated},
		{http.MethodDelete, "/reviews/:id", h.DeleteReview, middleware.Authenticated},
	}
}

func CartRoutes(h *rest.CartHandler) []Route {
	return []Route{
		{http.MethodGet, "/carts", h.GetAllCarts, middleware.Authenticated},
		{http.MethodGet, "/carts/:id", h.GetCartByID, middleware.Owner},
		{http.MethodPost, "/carts", h.CreateCart, middleware.Owner},
		{http.MethodDelete, "/carts/:id", h.DeleteCart, middleware.Owner},

		{http.MethodGet, "/cart-items", h.GetAllCartItems, middleware.Authenticated},
		{http.MethodPost, "/cart-items", h.CreateCartItem, middleware.Authenticated},
		{http.MethodPut, "/cart-items/:id", h.UpdateCartItem, middleware.Authenticated},
		{http.MethodDelete, "/cart-items/:id", h.DeleteCartItem, middleware.Authenticated},
	}
}

func AddressRoutes(h *rest.AddressHandler) []Route {
	return []Route{
		{http.MethodGet, "/address/:user_id", h.GetUserAddresses, middleware.Owner},
		{http.MethodPost, "/address/:user_id", h.CreateAddress, middleware.Owner},
		{http.MethodPut, "/address/:user_id/:id", h.UpdateAddress, middleware.Owner},

		{http.MethodGet, "/billing-address", h.GetAllBillings, middleware.Admin},
		{http.MethodGet, "/billing-address/:user_id", h.GetUserBilling, middleware.Owner},
		{http.MethodPost, "/billing-address/:user_id", h.CreateBilling, middleware.Owner},
		{http.MethodPost, "/billing-address/:user_id/sync", h.SyncBilling, middleware.Owner},
	}
}

// Routes returns the full route table of the API.
func Routes(h Handlers) []Route {
	var routes []Route
	routes = append(routes, AuthRoutes(h.User)...)
	routes = append(routes, UserRoutes(h.User)...)
	routes = append(routes, CategoryRoutes(h.Category)...)
	routes = append(routes, ProductRoutes(h.Product)...)
	routes = append(routes, OrderRoutes(h.Orders)...)
	routes = append(routes, PaymentRoutes(h.Payments)...)
	routes = append(routes, ReviewRoutes(h.Review)...)
	routes = append(routes, CartRoutes(h.Cart)...)
	routes = append(routes, AddressRoutes(h.Address)...)
	return routes
}

// Register mounts routes on api, each behind the guard for its access level.
func Register(api *echo.Group, guard *middleware.Guard, routes []Route) {
	for _, r := range routes {
		api.Add(r.Method, r.Path, r.Handler, guard.Require(r.Access))
	}
}
