// Package service 提供业务逻辑层的实现
package service

import (
	"fmt"
	"strings"

	"medivault-server/internal/model"
	"medivault-server/pkg/util"
)

// NoRecordsContext 用户没有任何记录时的固定文案
// 前端和提示词都依赖这个字面值，不要改动
const NoRecordsContext = "No medical records found for this user."

// FormatMedicalContext 把记录列表序列化为一段可读文本
// 生成的文本用作大模型提示词的一部分，字段标签
// （"- Title:" 等）是对外约定的格式，顺序与入参一致（最新的在前）
// 参数:
//   - records: 用户的记录列表
//
// 返回:
//   - string: 上下文文本；列表为空时返回 NoRecordsContext
func FormatMedicalContext(records []model.Record) string {
	if len(records) == 0 {
		return NoRecordsContext
	}

	entries := make([]string, 0, len(records))
	for _, rec := range records {
		medications := "Not specified"
		if len(rec.MedicationNames) > 0 {
			medications = strings.Join(rec.MedicationNames, ", ")
		}

		entries = append(entries, fmt.Sprintf(
			"\n- Title: %s\n- Upload Date: %s\n- Doctor: %s\n- Description: %s\n- Status: %s\n- Medications: %s\n",
			rec.Title,
			rec.UploadDate.Format("1/2/2006"), // 只要日期，不要时间
			util.StringOr(rec.DoctorName, "Not specified"),
			util.StringOr(rec.Description, "No description"),
			rec.Status,
			medications,
		))
	}

	return "User's Medical Records:\n" + strings.Join(entries, "\n")
}
