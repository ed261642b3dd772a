package handler

import (
	"net/http"

	"rollingpaper/internal/model"

	"github.com/gin-gonic/gin"
)

type CatalogResponse struct {
	Themes []model.Style `json:"themes"`
	Fonts  []model.Style `json:"fonts"`
	Emojis []string      `json:"emojis"`
}

// Catalog godoc
// @Summary  Themes, fonts and emoji offered by the UI
// @Tags     Catalog
// @Produce  json
// @Success  200 {object} CatalogResponse
// @Router   /catalog [get]
func Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, CatalogResponse{
		Themes: model.Themes,
		Fonts:  model.Fonts,
		Emojis: model.Emojis,
	})
}
