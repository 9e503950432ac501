package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sudipjangam/tasty-bite-pos/controllers"
	"github.com/sudipjangam/tasty-bite-pos/middlewares"
	"github.com/sudipjangam/tasty-bite-pos/notifier"
	"github.com/sudipjangam/tasty-bite-pos/services"
)

// SetupRouter wires the POS surface. Session state lives in the session
// manager; everything else is backed by the DB.
func SetupRouter(db *gorm.DB, sessions *services.SessionManager, hub *notifier.Hub) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	// 50 requests per second per IP across the whole surface
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	catalogSvc := services.NewCatalogService(db)
	promotionSvc := services.NewPromotionService(db)
	reservationSvc := services.NewReservationService(db)
	orderSvc := services.NewOrderService(db)

	sessionCtrl := controllers.NewSessionController(sessions, catalogSvc, promotionSvc, reservationSvc, orderSvc, hub)
	checkoutCtrl := controllers.NewCheckoutController(sessions)
	editCtrl := controllers.NewOrderEditController(db, sessions, catalogSvc, orderSvc, hub)
	catalogCtrl := controllers.NewCatalogController(db, catalogSvc)
	promotionCtrl := controllers.NewPromotionController(db)
	reservationCtrl := controllers.NewReservationController(db)
	orderCtrl := controllers.NewOrderController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Outcome stream for POS terminals
	r.GET("/ws/pos", controllers.OutcomeStreamHandler(hub))

	// ----------------------------------------------------------------
	//                      POS TERMINAL ROUTES
	// ----------------------------------------------------------------
	r.GET("/catalog", catalogCtrl.Search)

	posGroup := r.Group("/pos/sessions")
	{
		posGroup.POST("", sessionCtrl.CreateSession)
		posGroup.GET("/:session_id", sessionCtrl.GetSession)
		posGroup.DELETE("/:session_id", sessionCtrl.CloseSession)

		// cart commands
		posGroup.POST("/:session_id/items", sessionCtrl.AddItem)
		posGroup.POST("/:session_id/custom-items", sessionCtrl.AddCustomItem)
		posGroup.POST("/:session_id/items/:line_id/increment", sessionCtrl.IncrementItem)
		posGroup.POST("/:session_id/items/:line_id/decrement", sessionCtrl.DecrementItem)
		posGroup.DELETE("/:session_id/items/:line_id", sessionCtrl.RemoveItem)
		posGroup.PATCH("/:session_id/items/:line_id/note", sessionCtrl.SetItemNote)
		posGroup.PUT("/:session_id/customer", sessionCtrl.SetCustomer)

		// promotion
		posGroup.POST("/:session_id/promotion", sessionCtrl.ApplyPromotion)
		posGroup.DELETE("/:session_id/promotion", sessionCtrl.RemovePromotion)

		// checkout state machine
		posGroup.POST("/:session_id/checkout", checkoutCtrl.Begin)
		posGroup.POST("/:session_id/checkout/method", checkoutCtrl.ChooseMethod)
		posGroup.POST("/:session_id/checkout/back", checkoutCtrl.Back)
		posGroup.POST("/:session_id/checkout/confirm", checkoutCtrl.Confirm)
	}

	// ORDERS (read + mid-service edit)
	r.GET("/orders", orderCtrl.GetAllOrders)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	r.GET("/payments", orderCtrl.GetPayments)

	editGroup := r.Group("/orders/:order_id/edit")
	{
		editGroup.POST("", editCtrl.OpenEdit)
		editGroup.GET("", editCtrl.GetEdit)
		editGroup.DELETE("", editCtrl.CancelEdit)
		editGroup.POST("/items", editCtrl.AddItem)
		editGroup.POST("/custom-items", editCtrl.AddCustomItem)
		editGroup.POST("/items/:line_id/increment", editCtrl.IncrementItem)
		editGroup.POST("/items/:line_id/decrement", editCtrl.DecrementItem)
		editGroup.DELETE("/items/:line_id", editCtrl.RemoveItem)
		editGroup.DELETE("/existing/:item_id", editCtrl.RemoveExisting)
		editGroup.POST("/existing/:item_id/restore", editCtrl.RestoreExisting)
		editGroup.POST("/save", editCtrl.SaveEdit)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.NewStrictRateLimiter())
	{
		// MENUS & CATEGORIES
		admin.GET("/menus", catalogCtrl.GetAllMenus)
		admin.POST("/menus", catalogCtrl.CreateMenu)
		admin.GET("/menus/:menu_id", catalogCtrl.GetMenuByID)
		admin.PATCH("/menus/:menu_id", catalogCtrl.UpdateMenu)
		admin.DELETE("/menus/:menu_id", catalogCtrl.DeleteMenu)
		admin.GET("/categories", catalogCtrl.GetAllCategories)
		admin.POST("/categories", catalogCtrl.CreateCategory)
		admin.DELETE("/categories/:cat_id", catalogCtrl.DeleteCategory)

		// PROMOTIONS
		admin.GET("/promotions", promotionCtrl.GetAllPromotions)
		admin.POST("/promotions", promotionCtrl.CreatePromotion)
		admin.PATCH("/promotions/:promo_id", promotionCtrl.UpdatePromotion)
		admin.DELETE("/promotions/:promo_id", promotionCtrl.DeletePromotion)

		// ROOMS, RESERVATIONS, TABLES
		admin.GET("/rooms", reservationCtrl.GetAllRooms)
		admin.POST("/rooms", reservationCtrl.CreateRoom)
		admin.GET("/reservations", reservationCtrl.GetAllReservations)
		admin.POST("/reservations", reservationCtrl.CreateReservation)
		admin.POST("/reservations/:reservation_id/checkin", reservationCtrl.CheckIn)
		admin.POST("/reservations/:reservation_id/checkout", reservationCtrl.CheckOut)
		admin.GET("/tables", reservationCtrl.GetAllTables)
		admin.POST("/tables", reservationCtrl.CreateTable)
	}

	return r
}
