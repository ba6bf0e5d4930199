package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medivault-server/internal/model"
)

func prescriptionRecord(title string, medications ...string) model.Record {
	return model.Record{
		Title:           title,
		UploadDate:      time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
		Status:          model.RecordStatusActive,
		MedicationNames: medications,
	}
}

// TestRuleGenerator_Deterministic 相同输入的输出逐字节一致
func TestRuleGenerator_Deterministic(t *testing.T) {
	g := NewRuleBasedGenerator()
	records := []model.Record{prescriptionRecord("Rx", "Aspirin 75mg")}

	first, err := g.Generate(context.Background(), "What medicine am I taking?", records)
	require.NoError(t, err)
	second, err := g.Generate(context.Background(), "What medicine am I taking?", records)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// TestRuleGenerator_KeywordPriority 药品分类优先于就诊分类
func TestRuleGenerator_KeywordPriority(t *testing.T) {
	g := NewRuleBasedGenerator()
	records := []model.Record{prescriptionRecord("Rx", "Aspirin 75mg")}

	// "medicine" 和 "doctor" 同时出现时走药品分支
	got, err := g.Generate(context.Background(), "Should I ask my doctor about this medicine?", records)
	require.NoError(t, err)

	assert.Contains(t, got, "Based on your uploaded prescriptions")
	assert.NotContains(t, got, "Scheduling Regular Checkups")
}

// TestRuleGenerator_CaseInsensitive 关键词匹配不区分大小写
func TestRuleGenerator_CaseInsensitive(t *testing.T) {
	g := NewRuleBasedGenerator()

	got, err := g.Generate(context.Background(), "MEDICATION list please", nil)
	require.NoError(t, err)

	assert.Contains(t, got, "I don't see any prescription records")
}

// TestRuleGenerator_MedicationList 每条记录的药品独占一行，附安全提示
func TestRuleGenerator_MedicationList(t *testing.T) {
	g := NewRuleBasedGenerator()
	records := []model.Record{
		prescriptionRecord("Rx A", "Metformin 500mg"),
		prescriptionRecord("Rx B", "Lisinopril 10mg", "Amlodipine 5mg"),
	}

	got, err := g.Generate(context.Background(), "list my medications", records)
	require.NoError(t, err)

	assert.Contains(t, got, "Metformin 500mg\nLisinopril 10mg, Amlodipine 5mg")
	assert.Contains(t, got, "⚠️ Important: Always consult your healthcare provider")
}

// TestRuleGenerator_MedicationNoneExtracted 有记录但没有药品名时提示重新上传
func TestRuleGenerator_MedicationNoneExtracted(t *testing.T) {
	g := NewRuleBasedGenerator()
	records := []model.Record{prescriptionRecord("Scan")}

	got, err := g.Generate(context.Background(), "any drugs on file?", records)
	require.NoError(t, err)

	assert.Contains(t, got, "medication details need to be extracted")
}

// TestRuleGenerator_SummaryEmbedsContext 摘要分支嵌入完整上下文文本
func TestRuleGenerator_SummaryEmbedsContext(t *testing.T) {
	g := NewRuleBasedGenerator()
	records := []model.Record{prescriptionRecord("Blood Test", "Aspirin 75mg")}

	got, err := g.Generate(context.Background(), "analyze my records", records)
	require.NoError(t, err)

	assert.Contains(t, got, "I've analyzed your 1 uploaded medical record(s)")
	assert.Contains(t, got, FormatMedicalContext(records))
}

// TestRuleGenerator_SummaryEmpty 没有记录时引导上传
func TestRuleGenerator_SummaryEmpty(t *testing.T) {
	g := NewRuleBasedGenerator()

	got, err := g.Generate(context.Background(), "give me a summary", nil)
	require.NoError(t, err)

	assert.Contains(t, got, "You haven't uploaded any medical records yet")
	assert.Contains(t, got, "Upload New Record")
}

// TestRuleGenerator_StaticBranches 固定文案分类与记录内容无关
func TestRuleGenerator_StaticBranches(t *testing.T) {
	g := NewRuleBasedGenerator()
	records := []model.Record{prescriptionRecord("Rx", "Aspirin 75mg")}

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"interaction", "any side effects I should know?", "Drug Interaction Checkers"},
		{"schedule", "remind me about my pills", "Medication Management Tips"},
		{"appointment", "need a checkup soon", "Scheduling Regular Checkups"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withRecords, err := g.Generate(context.Background(), tt.message, records)
			require.NoError(t, err)
			withoutRecords, err := g.Generate(context.Background(), tt.message, nil)
			require.NoError(t, err)

			assert.Contains(t, withRecords, tt.want)
			assert.Equal(t, withRecords, withoutRecords)
		})
	}
}

// TestRuleGenerator_DefaultReportsCount 默认分类始终报告记录数量，包括 0
func TestRuleGenerator_DefaultReportsCount(t *testing.T) {
	g := NewRuleBasedGenerator()

	got, err := g.Generate(context.Background(), "hello there", nil)
	require.NoError(t, err)
	assert.Contains(t, got, "0 record(s) available")

	records := []model.Record{
		prescriptionRecord("A"),
		prescriptionRecord("B"),
		prescriptionRecord("C"),
	}
	got, err = g.Generate(context.Background(), "hello there", records)
	require.NoError(t, err)
	assert.Contains(t, got, "3 record(s) available")
}
