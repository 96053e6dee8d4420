package controllers

import (
	"net/http"

	"itemshare/app"
	requestsvc "itemshare/service/request"

	"github.com/gin-gonic/gin"
)

type RequestController struct{ requests *requestsvc.Service }

func NewRequestController(s *requestsvc.Service) *RequestController {
	return &RequestController{requests: s}
}

func (rc *RequestController) Create(c *gin.Context) {
	var in struct {
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	v, err := rc.requests.Create(c.Request.Context(), app.Sharer(c), in.Description)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (rc *RequestController) ListMine(c *gin.Context) {
	vs, err := rc.requests.ListMine(c.Request.Context(), app.Sharer(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, vs)
}

func (rc *RequestController) ListOthers(c *gin.Context) {
	from, ok := queryInt(c, "from", "0")
	if !ok {
		return
	}
	size, ok := queryInt(c, "size", "1000")
	if !ok {
		return
	}
	vs, err := rc.requests.ListOthers(c.Request.Context(), app.Sharer(c), from, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, vs)
}

func (rc *RequestController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	v, err := rc.requests.Get(c.Request.Context(), app.Sharer(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}
