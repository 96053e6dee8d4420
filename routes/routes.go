package routes

import (
	"itemshare/app"
	"itemshare/cache"
	"itemshare/controllers"
	"itemshare/db"
	bookingsvc "itemshare/service/booking"
	itemsvc "itemshare/service/item"
	requestsvc "itemshare/service/request"
	usersvc "itemshare/service/user"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	repo := db.NewRepo(a.DB)

	var searchCache itemsvc.SearchCache
	if a.RDB != nil {
		searchCache = cache.NewSearchCache(a.RDB, a.Config.SearchCacheTTL)
	}

	uc := controllers.NewUserController(usersvc.New(repo))
	itemCtl := controllers.NewItemController(itemsvc.New(repo, searchCache))
	bookingCtl := controllers.NewBookingController(bookingsvc.New(repo))
	requestCtl := controllers.NewRequestController(requestsvc.New(repo))

	sharerMW := app.RequireSharer()

	// ------------------------------
	// Users (registry; no sharer header)
	// ------------------------------
	users := r.Group("/users")
	{
		users.POST("", uc.Create)
		users.GET("", uc.List)
		users.GET("/:id", uc.Get)
		users.PATCH("/:id", uc.Patch)
		users.DELETE("/:id", uc.Delete)
	}

	// ------------------------------
	// Items (search is public, the rest needs the sharer header)
	// ------------------------------
	r.GET("/items/search", itemCtl.Search)

	items := r.Group("/items", sharerMW)
	{
		items.POST("", itemCtl.Create)
		items.GET("", itemCtl.List)
		items.GET("/:id", itemCtl.Get)
		items.PATCH("/:id", itemCtl.Patch)
		items.POST("/:itemId/comment", itemCtl.CreateComment)
	}

	// ------------------------------
	// Bookings
	// ------------------------------
	bookings := r.Group("/bookings", sharerMW)
	{
		bookings.POST("", bookingCtl.Create)
		bookings.GET("", bookingCtl.ListAsBooker)
		bookings.GET("/owner", bookingCtl.ListAsOwner)
		bookings.GET("/:bookingId", bookingCtl.Get)
		bookings.PATCH("/:id", bookingCtl.Decide)
	}

	// ------------------------------
	// Item requests
	// ------------------------------
	requests := r.Group("/requests", sharerMW)
	{
		requests.POST("", requestCtl.Create)
		requests.GET("", requestCtl.ListMine)
		requests.GET("/all", requestCtl.ListOthers)
		requests.GET("/:id", requestCtl.Get)
	}
}
