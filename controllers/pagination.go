package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parsePaginationParams extracts and bounds the page/items_per_page query
// parameters.
func parsePaginationParams(ctx *gin.Context) (int, int) {
	const MaxItemsPerPage = 100
	const DefaultPage = 1
	const DefaultItemsPerPage = 10

	pageInt := DefaultPage
	itemsInt := DefaultItemsPerPage

	if p, err := strconv.Atoi(ctx.DefaultQuery("page", "1")); err == nil && p > 0 {
		pageInt = p
	}
	if l, err := strconv.Atoi(ctx.DefaultQuery("items_per_page", "10")); err == nil && l > 0 {
		itemsInt = l
		if itemsInt > MaxItemsPerPage {
			itemsInt = MaxItemsPerPage
		}
	}

	return pageInt, itemsInt
}
