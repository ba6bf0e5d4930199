// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"medivault-server/internal/service"
	"medivault-server/pkg/response"
)

// RecordHandler 医疗记录请求处理器
type RecordHandler struct {
	recordService *service.RecordService
}

// NewRecordHandler 创建 RecordHandler 实例
func NewRecordHandler(recordService *service.RecordService) *RecordHandler {
	return &RecordHandler{
		recordService: recordService,
	}
}

// CreateRecord 登记新记录
// @Summary 登记医疗记录
// @Description 文件直传对象存储后，登记记录元数据
// @Tags 记录
// @Security Bearer
// @Accept json
// @Produce json
// @Param body body service.CreateRecordRequest true "记录元数据"
// @Success 201 {object} response.Response{data=model.Record}
// @Router /api/v1/records [post]
func (h *RecordHandler) CreateRecord(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, "not logged in")
		return
	}

	var req service.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	record, err := h.recordService.CreateRecord(c.Request.Context(), userID.(int64), &req)
	if err != nil {
		response.InternalError(c, "failed to create record")
		return
	}

	response.Created(c, record)
}

// ListRecords 获取当前用户的记录列表
// @Summary 获取记录列表
// @Description 按创建时间倒序返回当前用户的所有记录
// @Tags 记录
// @Security Bearer
// @Produce json
// @Success 200 {object} response.Response{data=[]model.Record}
// @Router /api/v1/records [get]
func (h *RecordHandler) ListRecords(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, "not logged in")
		return
	}

	records, err := h.recordService.ListRecords(c.Request.Context(), userID.(int64))
	if err != nil {
		response.InternalError(c, "failed to list records")
		return
	}

	response.Success(c, gin.H{
		"records": records,
		"total":   len(records),
	})
}

// GetRecord 获取单条记录
func (h *RecordHandler) GetRecord(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, "not logged in")
		return
	}

	record, err := h.recordService.GetRecord(c.Request.Context(), userID.(int64), c.Param("id"))
	if err != nil {
		h.recordError(c, err)
		return
	}

	response.Success(c, record)
}

// UpdateRecordStatusRequest 修改记录状态请求
type UpdateRecordStatusRequest struct {
	Status string `json:"status" binding:"required,max=20"` // 新状态
}

// UpdateRecordStatus 修改记录状态
// 记录上传后除状态外不可变
func (h *RecordHandler) UpdateRecordStatus(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, "not logged in")
		return
	}

	var req UpdateRecordStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	record, err := h.recordService.UpdateRecordStatus(c.Request.Context(), userID.(int64), c.Param("id"), req.Status)
	if err != nil {
		h.recordError(c, err)
		return
	}

	response.Success(c, record)
}

// DeleteRecord 删除记录
func (h *RecordHandler) DeleteRecord(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, "not logged in")
		return
	}

	if err := h.recordService.DeleteRecord(c.Request.Context(), userID.(int64), c.Param("id")); err != nil {
		h.recordError(c, err)
		return
	}

	response.NoContent(c)
}

// recordError 把记录服务错误映射为 HTTP 响应
func (h *RecordHandler) recordError(c *gin.Context, err error) {
	switch err {
	case service.ErrRecordNotFound:
		response.RecordNotFound(c)
	case service.ErrNoPermission:
		response.Forbidden(c, "no permission to access this record")
	default:
		response.InternalError(c, "record operation failed")
	}
}
