// Package service 提供业务逻辑层的实现
package service

import (
	"context"
	"fmt"
	"strings"

	"medivault-server/internal/model"
)

// RuleBasedGenerator 内置规则回复生成器
// 按固定优先级做关键词匹配，命中即返回对应分类的模板文案，
// 不访问网络。对相同的 (message, records) 输入，输出逐字节一致
type RuleBasedGenerator struct{}

// NewRuleBasedGenerator 创建 RuleBasedGenerator 实例
func NewRuleBasedGenerator() *RuleBasedGenerator {
	return &RuleBasedGenerator{}
}

// Generate 生成回复
// 分类检查顺序固定：药品 → 记录分析 → 相互作用 → 服药安排 → 就诊 → 默认，
// 命中第一个分类后不再继续
// 参数:
//   - ctx: 上下文（规则策略不使用）
//   - message: 用户的自由文本提问
//   - records: 该用户的记录列表（最新的在前）
//
// 返回:
//   - string: 回复文本
//   - error: 规则策略不会失败，恒为 nil
func (g *RuleBasedGenerator) Generate(_ context.Context, message string, records []model.Record) (string, error) {
	lower := strings.ToLower(message)

	switch {
	case containsAny(lower, "medicine", "medication", "drug"):
		return g.medicationReply(records), nil
	case containsAny(lower, "analyze", "summary", "record"):
		return g.summaryReply(records), nil
	case containsAny(lower, "interaction", "side effect"):
		return interactionReply, nil
	case containsAny(lower, "schedule", "remind", "when"):
		return scheduleReply, nil
	case containsAny(lower, "doctor", "appointment", "checkup"):
		return appointmentReply, nil
	}

	return fmt.Sprintf(defaultReplyTemplate, len(records)), nil
}

// medicationReply 药品分类的回复
// 没有记录时引导用户先上传；有记录但没有提取到药品名时提示重新上传清晰的处方
func (g *RuleBasedGenerator) medicationReply(records []model.Record) string {
	if len(records) == 0 {
		return "I don't see any prescription records in your account yet. Once you upload your prescription files, I'll be able to help you track your medications, check for interactions, and provide detailed information about your medicines. Please upload your prescription documents first."
	}

	// 逐条记录收集药品名，跳过没有药品信息的记录
	medications := make([]string, 0, len(records))
	for _, rec := range records {
		if len(rec.MedicationNames) > 0 {
			medications = append(medications, strings.Join(rec.MedicationNames, ", "))
		}
	}

	if len(medications) > 0 {
		return fmt.Sprintf("Based on your uploaded prescriptions, here are your medications:\n\n%s\n\n⚠️ Important: Always consult your healthcare provider before making any changes to your medication regimen. If you have questions about dosages, side effects, or interactions, please speak with your doctor or pharmacist.", strings.Join(medications, "\n"))
	}

	return "I can see your prescription records but the medication details need to be extracted. Please ensure your prescription images are clear and contain medication names. Always consult your healthcare provider for specific medication guidance."
}

// summaryReply 记录分析分类的回复
// 摘要中嵌入完整的上下文文本
func (g *RuleBasedGenerator) summaryReply(records []model.Record) string {
	if len(records) == 0 {
		return "You haven't uploaded any medical records yet. To get started:\n\n1. Go to the 'Records' section\n2. Click 'Upload New Record'\n3. Upload your prescription files, lab reports, or medical documents\n\nOnce uploaded, I'll be able to analyze your medical history and provide insights about your health records."
	}

	return fmt.Sprintf("I've analyzed your %d uploaded medical record(s). Here's a summary:\n\n%s\n\n📋 Key Points:\n• Keep all your medical records organized in one place\n• Regular follow-ups with healthcare providers are important\n• Always inform new doctors about your complete medical history\n\n⚠️ This summary is for informational purposes only. Please consult your healthcare provider for medical advice.", len(records), FormatMedicalContext(records))
}

// 相互作用 / 服药安排 / 就诊分类的固定文案，与记录内容无关
const (
	interactionReply = "For drug interactions and side effects, I recommend:\n\n🔍 **Drug Interaction Checkers:**\n• Consult your pharmacist - they're experts in medication interactions\n• Ask your doctor when prescribed new medications\n• Keep an updated list of all medications you take\n\n⚠️ **Important Safety Notes:**\n• Never stop medications without consulting your healthcare provider\n• Report any unusual symptoms to your doctor immediately\n• Inform all healthcare providers about your complete medication list\n\nThis information is educational only - always seek professional medical advice."

	scheduleReply = "For medication scheduling and reminders:\n\n⏰ **Medication Management Tips:**\n• Set phone alarms for consistent timing\n• Use pill organizers for weekly planning\n• Take medications with meals if recommended\n• Never skip doses without consulting your doctor\n\n📱 **Helpful Tools:**\n• Medication reminder apps\n• Pharmacy automatic refill services\n• Calendar notifications\n\n⚠️ Always follow your doctor's specific instructions for timing and dosage."

	appointmentReply = "For medical appointments and healthcare:\n\n📅 **Scheduling Regular Checkups:**\n• Annual physical exams are important\n• Follow your doctor's recommended visit schedule\n• Prepare questions before appointments\n• Bring your medication list and medical records\n\n🏥 **When to See a Doctor:**\n• New or worsening symptoms\n• Medication side effects\n• Questions about your treatment plan\n• Routine preventive care\n\n⚠️ If you have urgent medical concerns, contact your healthcare provider immediately or seek emergency care."

	// defaultReplyTemplate 默认分类的模板
	// 始终带上当前记录数量和免责声明
	defaultReplyTemplate = "Thank you for your question about your medical records. I'm here to help you understand your health information and manage your medical documents.\n\n🔍 **What I can help with:**\n• Analyzing your uploaded prescription files\n• Explaining medication information from your records\n• Summarizing your medical history\n• Providing general health education\n\n📋 **Your Current Records:** %d record(s) available\n\n⚠️ **Important:** This information is for educational purposes only. Always consult qualified healthcare professionals for medical advice, diagnosis, or treatment decisions.\n\nFeel free to ask specific questions about your uploaded medical records or request an analysis of your prescription files!"
)

// containsAny 检查 s 是否包含任意一个关键词
func containsAny(s string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
