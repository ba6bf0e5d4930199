package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"medivault-server/internal/model"
	"medivault-server/pkg/util"
)

// TestFormatMedicalContext_Empty 空列表返回固定哨兵文案
func TestFormatMedicalContext_Empty(t *testing.T) {
	assert.Equal(t, "No medical records found for this user.", FormatMedicalContext(nil))
	assert.Equal(t, NoRecordsContext, FormatMedicalContext([]model.Record{}))
}

// TestFormatMedicalContext_SingleRecord 单条记录的完整格式
func TestFormatMedicalContext_SingleRecord(t *testing.T) {
	uploadDate := time.Date(2025, 3, 5, 14, 30, 0, 0, time.UTC)
	records := []model.Record{
		{
			Title:           "Blood Test",
			UploadDate:      uploadDate,
			DoctorName:      util.StringPtr("Dr. Sharma"),
			Description:     util.StringPtr("Routine panel"),
			Status:          model.RecordStatusNormal,
			MedicationNames: nil,
		},
	}

	got := FormatMedicalContext(records)

	assert.True(t, strings.HasPrefix(got, "User's Medical Records:\n"))
	assert.Contains(t, got, "- Title: Blood Test")
	assert.Contains(t, got, "- Upload Date: 3/5/2025") // 月/日不补零
	assert.Contains(t, got, "- Doctor: Dr. Sharma")
	assert.Contains(t, got, "- Description: Routine panel")
	assert.Contains(t, got, "- Status: normal")
	assert.Contains(t, got, "- Medications: Not specified")
}

// TestFormatMedicalContext_MissingFields 缺失字段使用占位文案
func TestFormatMedicalContext_MissingFields(t *testing.T) {
	records := []model.Record{
		{
			Title:      "X-Ray",
			UploadDate: time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC),
			Status:     model.RecordStatusActive,
		},
	}

	got := FormatMedicalContext(records)

	assert.Contains(t, got, "- Doctor: Not specified")
	assert.Contains(t, got, "- Description: No description")
	assert.Contains(t, got, "- Medications: Not specified")
}

// TestFormatMedicalContext_Medications 多个药品名用逗号连接
func TestFormatMedicalContext_Medications(t *testing.T) {
	records := []model.Record{
		{
			Title:           "Prescription",
			UploadDate:      time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
			Status:          model.RecordStatusActive,
			MedicationNames: []string{"Metformin 500mg", "Lisinopril 10mg"},
		},
	}

	got := FormatMedicalContext(records)

	assert.Contains(t, got, "- Medications: Metformin 500mg, Lisinopril 10mg")
}

// TestFormatMedicalContext_Order 输出顺序与入参一致
func TestFormatMedicalContext_Order(t *testing.T) {
	records := []model.Record{
		{Title: "Newest", UploadDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Status: model.RecordStatusActive},
		{Title: "Oldest", UploadDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Status: model.RecordStatusActive},
	}

	got := FormatMedicalContext(records)

	newestIdx := strings.Index(got, "Title: Newest")
	oldestIdx := strings.Index(got, "Title: Oldest")
	assert.True(t, newestIdx >= 0 && oldestIdx >= 0)
	assert.Less(t, newestIdx, oldestIdx)
}
