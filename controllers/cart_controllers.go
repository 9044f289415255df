package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/smartcanteen/canteen-app/services"
	"github.com/smartcanteen/canteen-app/utils"
)

type CartController struct {
	Carts *services.CartService
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{Carts: services.NewCartService(db)}
}

// GetCart -> the caller's cart with its running total.
func (cc *CartController) GetCart(c *gin.Context) {
	username := c.GetString("username")

	items, total, err := cc.Carts.Get(username)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart", gin.H{
		"items": items,
		"total": total,
	})
}

// AddCartItem
func (cc *CartController) AddCartItem(c *gin.Context) {
	var req struct {
		ItemID   uint `json:"item_id" binding:"required"`
		Quantity int  `json:"quantity" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	username := c.GetString("username")
	line, err := cc.Carts.Add(username, req.ItemID, req.Quantity)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Added to cart", line)
}

// RemoveCartItem
func (cc *CartController) RemoveCartItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("cart_item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid cart item id"))
		return
	}

	username := c.GetString("username")
	if err := cc.Carts.Remove(username, uint(id)); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Removed from cart", gin.H{"cart_item_id": id})
}
