package controllers

import (
	"net/http"
	"strconv"

	"itemshare/app"
	"itemshare/models"
	bookingsvc "itemshare/service/booking"

	"github.com/gin-gonic/gin"
)

type BookingController struct{ bookings *bookingsvc.Service }

func NewBookingController(s *bookingsvc.Service) *BookingController {
	return &BookingController{bookings: s}
}

func (bc *BookingController) Create(c *gin.Context) {
	var in bookingsvc.NewBooking
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := bc.bookings.Create(c.Request.Context(), app.Sharer(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (bc *BookingController) Decide(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid approved"})
		return
	}
	b, err := bc.bookings.Decide(c.Request.Context(), app.Sharer(c), id, approved)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (bc *BookingController) Get(c *gin.Context) {
	id, ok := pathID(c, "bookingId")
	if !ok {
		return
	}
	b, err := bc.bookings.Get(c.Request.Context(), app.Sharer(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListAsBooker lists the caller's own bookings.
func (bc *BookingController) ListAsBooker(c *gin.Context) {
	bc.list(c, models.RoleBooker)
}

// ListAsOwner lists bookings placed on the caller's items.
func (bc *BookingController) ListAsOwner(c *gin.Context) {
	bc.list(c, models.RoleOwner)
}

func (bc *BookingController) list(c *gin.Context, role models.BookingRole) {
	from, ok := queryInt(c, "from", "0")
	if !ok {
		return
	}
	size, ok := queryInt(c, "size", "1000")
	if !ok {
		return
	}
	state := c.DefaultQuery("state", string(models.StateAll))
	bs, err := bc.bookings.List(c.Request.Context(), role, app.Sharer(c), state, from, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, bs)
}
