package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/putrawdn/restaurant-mgt/models"
	"github.com/putrawdn/restaurant-mgt/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllMenuItems lists the full catalog, including unavailable items.
func (mc *MenuController) GetAllMenuItems(c *gin.Context) {
	var items []models.MenuItem
	if err := mc.DB.Order("category, name").Find(&items).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

// CreateMenuItem adds a catalog entry, available by default.
func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	type reqBody struct {
		Name      string  `json:"name" binding:"required"`
		Category  string  `json:"category" binding:"required"`
		BasePrice float64 `json:"base_price" binding:"required,gt=0"`
	}

	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item := models.MenuItem{
		Name:        body.Name,
		Category:    body.Category,
		BasePrice:   body.BasePrice,
		IsAvailable: true,
	}

	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Menu item added successfully", item)
}

// UpdateMenuItem changes the catalog price and availability. Existing order
// lines keep their captured prices.
func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	idStr := c.Param("item_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		BasePrice   *float64 `json:"base_price"`
		IsAvailable *bool    `json:"is_available"`
	}

	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	updates := map[string]interface{}{}
	if body.BasePrice != nil {
		if *body.BasePrice <= 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("base_price must be positive"))
			return
		}
		updates["base_price"] = *body.BasePrice
	}
	if body.IsAvailable != nil {
		updates["is_available"] = *body.IsAvailable
	}
	if len(updates) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("nothing to update"))
		return
	}

	if err := mc.DB.Model(&item).Updates(updates).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item updated successfully", item)
}
