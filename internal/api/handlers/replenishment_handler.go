package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/replenish-engine/internal/domain"
	"github.com/andresuchdata/replenish-engine/internal/repository"
	"github.com/andresuchdata/replenish-engine/internal/service"
)

type ReplenishmentHandler struct {
	service *service.ReplenishmentService
}

func NewReplenishmentHandler(service *service.ReplenishmentService) *ReplenishmentHandler {
	return &ReplenishmentHandler{service: service}
}

// parseFilter reads the query tolerantly: malformed values fall back to
// defaults instead of failing the request.
func (h *ReplenishmentHandler) parseFilter(c *gin.Context) domain.AnalysisFilter {
	filter := domain.AnalysisFilter{}

	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "0")); err == nil && limit > 0 {
		filter.Limit = limit
	}

	if ids := strings.TrimSpace(c.Query("product_ids")); ids != "" {
		for _, part := range strings.Split(ids, ",") {
			if id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64); err == nil {
				filter.ProductIDs = append(filter.ProductIDs, id)
			}
		}
	}

	if skus := strings.TrimSpace(c.Query("skus")); skus != "" {
		for _, part := range strings.Split(skus, ",") {
			if sku := strings.TrimSpace(part); sku != "" {
				filter.SKUs = append(filter.SKUs, sku)
			}
		}
	}

	if withStock := strings.TrimSpace(c.Query("only_with_stock")); withStock != "" {
		if v, err := strconv.ParseBool(withStock); err == nil {
			filter.OnlyWithStock = v
		}
	}

	if urgency := strings.ToLower(strings.TrimSpace(c.Query("urgency"))); urgency != "" {
		filter.Urgency = urgency
	}

	return filter
}

func (h *ReplenishmentHandler) GetReorderSuggestions(c *gin.Context) {
	filter := h.parseFilter(c)
	suggestions, failures, err := h.service.GetReorderSuggestions(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute reorder suggestions", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggestions": suggestions,
		"failures":    failures,
	})
}

func (h *ReplenishmentHandler) GetStockoutRisks(c *gin.Context) {
	filter := h.parseFilter(c)
	risks, failures, err := h.service.GetStockoutRisks(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stockout risks", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"risks":    risks,
		"failures": failures,
	})
}

func (h *ReplenishmentHandler) GetSummary(c *gin.Context) {
	filter := h.parseFilter(c)
	summary, err := h.service.GetSummary(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute summary", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *ReplenishmentHandler) GetProductAnalysis(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	analysis, err := h.service.GetProductAnalysis(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to analyze product", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, analysis)
}
