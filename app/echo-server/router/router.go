package router

import (
	"kopikasir/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupAuthRoutes(api *echo.Group, handler *rest.AuthHandler, authRequired echo.MiddlewareFunc) {
	authGroup := api.Group("/auth")

	authGroup.POST("/login", handler.Login)
	authGroup.POST("/logout", handler.Logout, authRequired)
}

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	users := api.Group("/user", authRequired, adminOnly)

	users.GET("", handler.GetUsers)
	users.POST("", handler.CreateUser)
	users.PATCH("/:id", handler.UpdateUser)
	users.PATCH("/delete/:id", handler.DeleteUser)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	products := api.Group("/product", authRequired)

	products.GET("", handler.GetProducts)
	products.GET("/menu", handler.GetProducts)
	products.POST("", handler.CreateProduct, adminOnly)
	products.POST("/upload", handler.UploadImage, adminOnly)
	products.PATCH("/:id", handler.UpdateProduct, adminOnly)
	products.DELETE("/delete/:id", handler.DeleteProduct, adminOnly)
}

func SetupOrderRoutes(api *echo.Group, handler *rest.OrderHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc, cashierOnly echo.MiddlewareFunc) {
	orders := api.Group("/order", authRequired)

	orders.GET("", handler.GetOrders)
	orders.POST("", handler.CreateOrder, cashierOnly)
	orders.GET("/daily-transactions", handler.GetDailyTransactions, adminOnly)
	orders.GET("/daily-product-sales", handler.GetDailyProductSales, adminOnly)
	orders.GET("/daily-shift-summary", handler.GetDailyShiftSummary, adminOnly)
	orders.GET("/order-detail", handler.GetDailyOrderDetails)
}

func SetupShiftRoutes(api *echo.Group, handler *rest.ShiftHandler, authRequired echo.MiddlewareFunc, cashierOnly echo.MiddlewareFunc) {
	shifts := api.Group("/shift", authRequired)

	shifts.POST("/start", handler.StartShift, cashierOnly)
	shifts.PATCH("/:id/end", handler.EndShift, cashierOnly)
	shifts.GET("/active", handler.GetActiveShift)
	shifts.GET("/summary", handler.GetTransactionSummary)
}
