package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/smartcanteen/canteen-app/events"
	"github.com/smartcanteen/canteen-app/models"
	"github.com/smartcanteen/canteen-app/services"
	"github.com/smartcanteen/canteen-app/utils"
)

type MenuController struct {
	Catalog *services.CatalogService
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{Catalog: services.NewCatalogService(db)}
}

type foodItemRequest struct {
	Name         string  `json:"name" binding:"required"`
	Price        float64 `json:"price" binding:"min=0"`
	Category     string  `json:"category" binding:"required"`
	Stock        int     `json:"stock" binding:"min=0"`
	ValidityType string  `json:"validity_type" binding:"required"`
}

func (r *foodItemRequest) validate() error {
	if r.ValidityType != models.ValidityDaily && r.ValidityType != models.ValidityRegular {
		return errors.New("validity_type must be 'daily' or 'regular'")
	}
	return nil
}

// GetAvailableMenu -> what can be ordered right now.
func (mc *MenuController) GetAvailableMenu(c *gin.Context) {
	items, err := mc.Catalog.ListAvailable()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Available menu", items)
}

// GetAllFoodItems -> full catalog for the admin panel, inactive included.
func (mc *MenuController) GetAllFoodItems(c *gin.Context) {
	items, err := mc.Catalog.ListAll()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All food items", items)
}

// CreateFoodItem
func (mc *MenuController) CreateFoodItem(c *gin.Context) {
	var req foodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := req.validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := mc.Catalog.AddItem(req.Name, req.Price, req.Category, req.Stock, req.ValidityType)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Food item created", item)
}

// UpdateFoodItem -> full overwrite of the mutable fields.
func (mc *MenuController) UpdateFoodItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid item id"))
		return
	}

	var req foodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := req.validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := mc.Catalog.UpdateItem(uint(id), req.Name, req.Price, req.Category, req.Stock, req.ValidityType)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Food item updated", item)
}

// DeleteFoodItem -> soft delete so order history keeps its references.
func (mc *MenuController) DeleteFoodItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid item id"))
		return
	}

	if err := mc.Catalog.SoftDeleteItem(uint(id)); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Food item deleted", gin.H{"item_id": id})
}

// ResetDailyItems -> zero all daily stock before the day's portions are
// entered.
func (mc *MenuController) ResetDailyItems(c *gin.Context) {
	rows, err := mc.Catalog.ResetDailyItems()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastDailyReset(rows)
	utils.RespondJSON(c, http.StatusOK, "Daily items reset", gin.H{"items_reset": rows})
}
