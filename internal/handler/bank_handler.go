package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hbing/bingsprint/internal/response"
	"github.com/hbing/bingsprint/internal/service"
)

type BankHandler struct {
	bankService *service.BankService
}

func NewBankHandler(bankService *service.BankService) *BankHandler {
	return &BankHandler{bankService: bankService}
}

// GetBank godoc
// GET /api/v1/bank
func (h *BankHandler) GetBank(c *gin.Context) {
	response.Success(c, http.StatusOK, h.bankService.Status())
}

// ReloadBank godoc
// POST /api/v1/bank/reload
func (h *BankHandler) ReloadBank(c *gin.Context) {
	response.Success(c, http.StatusOK, h.bankService.Reload())
}

// ListHistory godoc
// GET /api/v1/history
func (h *BankHandler) ListHistory(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"records": h.bankService.History()})
}

// ResetAll godoc
// POST /api/v1/reset
func (h *BankHandler) ResetAll(c *gin.Context) {
	if err := h.bankService.Reset(); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "progress and wrong answers cleared"})
}
