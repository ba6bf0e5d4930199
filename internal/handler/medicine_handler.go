// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"medivault-server/internal/service"
	"medivault-server/pkg/response"
)

// MedicineHandler 药品请求处理器
type MedicineHandler struct {
	medicineService *service.MedicineService
}

// NewMedicineHandler 创建 MedicineHandler 实例
func NewMedicineHandler(medicineService *service.MedicineService) *MedicineHandler {
	return &MedicineHandler{
		medicineService: medicineService,
	}
}

// CreateMedicine 创建药品条目
func (h *MedicineHandler) CreateMedicine(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, "not logged in")
		return
	}

	var req service.MedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	medicine, err := h.medicineService.CreateMedicine(c.Request.Context(), userID.(int64), &req)
	if err != nil {
		response.InternalError(c, "failed to create medicine")
		return
	}

	response.Created(c, medicine)
}

// ListMedicines 获取当前用户的药品列表
// query 参数 active=true 时只返回正在服用的药品
func (h *MedicineHandler) ListMedicines(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, "not logged in")
		return
	}

	activeOnly := c.Query("active") == "true"

	medicines, err := h.medicineService.ListMedicines(c.Request.Context(), userID.(int64), activeOnly)
	if err != nil {
		response.InternalError(c, "failed to list medicines")
		return
	}

	response.Success(c, gin.H{
		"medicines": medicines,
		"total":     len(medicines),
	})
}

// GetMedicine 获取单个药品条目
func (h *MedicineHandler) GetMedicine(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, "not logged in")
		return
	}

	medicine, err := h.medicineService.GetMedicine(c.Request.Context(), userID.(int64), c.Param("id"))
	if err != nil {
		h.medicineError(c, err)
		return
	}

	response.Success(c, medicine)
}

// UpdateMedicine 更新药品条目
func (h *MedicineHandler) UpdateMedicine(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, "not logged in")
		return
	}

	var req service.MedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	medicine, err := h.medicineService.UpdateMedicine(c.Request.Context(), userID.(int64), c.Param("id"), &req)
	if err != nil {
		h.medicineError(c, err)
		return
	}

	response.Success(c, medicine)
}

// DeleteMedicine 删除药品条目
func (h *MedicineHandler) DeleteMedicine(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, "not logged in")
		return
	}

	if err := h.medicineService.DeleteMedicine(c.Request.Context(), userID.(int64), c.Param("id")); err != nil {
		h.medicineError(c, err)
		return
	}

	response.NoContent(c)
}

// medicineError 把药品服务错误映射为 HTTP 响应
func (h *MedicineHandler) medicineError(c *gin.Context, err error) {
	switch err {
	case service.ErrMedicineNotFound:
		response.MedicineNotFound(c)
	case service.ErrNoPermission:
		response.Forbidden(c, "no permission to access this medicine")
	default:
		response.InternalError(c, "medicine operation failed")
	}
}
