package gemini

import (
	"fmt"
	"strings"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/entities"
)

const (
	// maxReportContext and maxHistoryContext bound the context window
	// injected into each outbound prompt.
	maxReportContext  = 5
	maxHistoryContext = 10
)

const analysisInstruction = `The user is describing a medical symptom or asking a health-related question in Hindi. Provide a possible reason and suggested solutions in simple Hindi, easy to understand for a non-technical person living in a rural area. Avoid medical jargon where possible, or explain it clearly in Hindi. If you cannot provide medical advice, state in Hindi that you are an AI and cannot replace a doctor, and recommend consulting a healthcare professional. Provide the response strictly in JSON format with the following keys: "possibleReason" (string), "suggestedSolutions" (array of strings), and "disclaimer" (string). Only output the JSON, no other text.`

// Hindi sender labels used when replaying conversation history to the model.
const (
	senderLabelUser = "उपयोगकर्ता"
	senderLabelAI   = "एआई"
)

// buildAnalysisPrompt assembles the instruction preamble, the report and
// conversation context, and the new user text into a single prompt. The
// provider keeps no state between calls, so everything is re-sent each time.
func buildAnalysisPrompt(userText string, reports []*entities.MedicalReport, history []*entities.ConversationTurn) string {
	var b strings.Builder

	b.WriteString(analysisInstruction)
	b.WriteString("\n\nUser Input (Hindi): \"")
	b.WriteString(userText)
	b.WriteString("\"\n\n")

	if len(reports) > maxReportContext {
		reports = reports[:maxReportContext]
	}
	if len(reports) > 0 {
		b.WriteString("Medical Reports (most recent first):\n")
		for _, report := range reports {
			fmt.Fprintf(&b, "- File: %s, Description: %s, Uploaded: %s\n",
				report.FileName, report.Description, report.UploadedAt.Format("02/01/2006"))
		}
		b.WriteString("\n")
	}

	if len(history) > maxHistoryContext {
		history = history[len(history)-maxHistoryContext:]
	}
	if len(history) > 0 {
		b.WriteString("Previous Conversations:\n")
		for _, turn := range history {
			label := senderLabelAI
			if turn.Sender == entities.SenderUser {
				label = senderLabelUser
			}
			fmt.Fprintf(&b, "- %s (%s): %s\n",
				label, turn.Timestamp.Format("02/01/2006 15:04"), turn.Text)
		}
		b.WriteString("\n")
	}

	return b.String()
}
