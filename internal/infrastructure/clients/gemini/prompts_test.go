package gemini

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/entities"
	"github.com/stretchr/testify/assert"
)

func TestBuildAnalysisPrompt_MinimalInput(t *testing.T) {
	prompt := buildAnalysisPrompt("mujhe bukhar hai", nil, nil)

	assert.True(t, strings.HasPrefix(prompt, analysisInstruction))
	assert.Contains(t, prompt, `User Input (Hindi): "mujhe bukhar hai"`)
	assert.NotContains(t, prompt, "Medical Reports")
	assert.NotContains(t, prompt, "Previous Conversations")
}

func TestBuildAnalysisPrompt_IncludesReports(t *testing.T) {
	reports := []*entities.MedicalReport{
		{
			FileName:    "cbc.pdf",
			Description: "Blood count",
			UploadedAt:  time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
		},
	}

	prompt := buildAnalysisPrompt("kamzori", reports, nil)

	assert.Contains(t, prompt, "Medical Reports (most recent first):")
	assert.Contains(t, prompt, "- File: cbc.pdf, Description: Blood count, Uploaded: 14/03/2025")
}

func TestBuildAnalysisPrompt_TruncatesReports(t *testing.T) {
	var reports []*entities.MedicalReport
	for i := 0; i < maxReportContext+3; i++ {
		reports = append(reports, &entities.MedicalReport{
			FileName:   fmt.Sprintf("report-%d.pdf", i),
			UploadedAt: time.Now(),
		})
	}

	prompt := buildAnalysisPrompt("q", reports, nil)

	assert.Contains(t, prompt, fmt.Sprintf("report-%d.pdf", maxReportContext-1))
	assert.NotContains(t, prompt, fmt.Sprintf("report-%d.pdf", maxReportContext))
}

func TestBuildAnalysisPrompt_HistoryLabels(t *testing.T) {
	ts := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	history := []*entities.ConversationTurn{
		{Sender: entities.SenderUser, Text: "sar dard", Timestamp: ts},
		{Sender: entities.SenderAI, Text: "aaram karein", Timestamp: ts},
	}

	prompt := buildAnalysisPrompt("aur kya karun", nil, history)

	assert.Contains(t, prompt, "Previous Conversations:")
	assert.Contains(t, prompt, "- उपयोगकर्ता (01/06/2025 09:30): sar dard")
	assert.Contains(t, prompt, "- एआई (01/06/2025 09:30): aaram karein")
}

func TestBuildAnalysisPrompt_KeepsNewestHistory(t *testing.T) {
	var history []*entities.ConversationTurn
	for i := 0; i < maxHistoryContext+2; i++ {
		history = append(history, &entities.ConversationTurn{
			Sender:    entities.SenderUser,
			Text:      fmt.Sprintf("turn-%d", i),
			Timestamp: time.Now(),
		})
	}

	prompt := buildAnalysisPrompt("q", nil, history)

	assert.NotContains(t, prompt, "turn-0")
	assert.NotContains(t, prompt, "turn-1")
	assert.Contains(t, prompt, fmt.Sprintf("turn-%d", maxHistoryContext+1))
}
