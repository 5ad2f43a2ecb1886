package entities

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StructuredReply is the three-field JSON contract expected from the
// language model. The JSON keys are part of the wire contract with the
// model prompt and must not change.
type StructuredReply struct {
	PossibleReason     string   `json:"possibleReason"`
	SuggestedSolutions []string `json:"suggestedSolutions"`
	Disclaimer         string   `json:"disclaimer"`
}

// SpeechText flattens the reply into the sentence sequence handed to the
// speech synthesizer.
func (r *StructuredReply) SpeechText() string {
	parts := []string{r.PossibleReason}
	parts = append(parts, r.SuggestedSolutions...)
	parts = append(parts, r.Disclaimer)
	return strings.Join(parts, ". ")
}

// ExtractStructuredReply parses a model reply in two stages: a bracket
// extractor takes the substring from the first '{' to the last '}', then a
// strict decoder validates the three-key shape. Models often wrap the JSON
// in prose or Markdown fences; the extractor strips both.
func ExtractStructuredReply(raw string) (*StructuredReply, error) {
	candidate := raw
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start != -1 && end > start {
		candidate = raw[start : end+1]
	}

	var reply StructuredReply
	if err := json.Unmarshal([]byte(candidate), &reply); err != nil {
		return nil, fmt.Errorf("reply is not valid JSON: %w", err)
	}
	if strings.TrimSpace(reply.PossibleReason) == "" {
		return nil, fmt.Errorf("reply is missing possibleReason")
	}
	if reply.SuggestedSolutions == nil {
		reply.SuggestedSolutions = []string{}
	}
	return &reply, nil
}

// FallbackReply wraps an unparseable model reply so the user still sees
// the full text instead of a blank response.
func FallbackReply(raw string) *StructuredReply {
	return &StructuredReply{
		PossibleReason:     raw,
		SuggestedSolutions: []string{},
		Disclaimer:         "",
	}
}
