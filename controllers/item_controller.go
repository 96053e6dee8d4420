package controllers

import (
	"net/http"

	"itemshare/app"
	itemsvc "itemshare/service/item"

	"github.com/gin-gonic/gin"
)

type ItemController struct{ items *itemsvc.Service }

func NewItemController(s *itemsvc.Service) *ItemController { return &ItemController{items: s} }

func (ic *ItemController) Create(c *gin.Context) {
	var in itemsvc.NewItem
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	it, err := ic.items.Create(c.Request.Context(), app.Sharer(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, it)
}

func (ic *ItemController) Patch(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var p itemsvc.Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	it, err := ic.items.Update(c.Request.Context(), id, app.Sharer(c), p)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

func (ic *ItemController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	d, err := ic.items.Get(c.Request.Context(), id, app.Sharer(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (ic *ItemController) List(c *gin.Context) {
	from, ok := queryInt(c, "from", "0")
	if !ok {
		return
	}
	size, ok := queryInt(c, "size", "1000")
	if !ok {
		return
	}
	ds, err := ic.items.ListForOwner(c.Request.Context(), app.Sharer(c), from, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ds)
}

// Search is public; no sharer header required.
func (ic *ItemController) Search(c *gin.Context) {
	from, ok := queryInt(c, "from", "0")
	if !ok {
		return
	}
	size, ok := queryInt(c, "size", "1000")
	if !ok {
		return
	}
	items, err := ic.items.Search(c.Request.Context(), c.Query("text"), from, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (ic *ItemController) CreateComment(c *gin.Context) {
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	var in struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cv, err := ic.items.AddComment(c.Request.Context(), app.Sharer(c), itemID, in.Text)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, cv)
}
