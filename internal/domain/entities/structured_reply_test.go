package entities_test

import (
	"testing"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/entities"
	"github.com/stretchr/testify/assert"
)

func TestExtractStructuredReply_CleanJSON(t *testing.T) {
	raw := `{"possibleReason":"Seasonal viral fever","suggestedSolutions":["Rest","Drink fluids"],"disclaimer":"Consult a doctor"}`

	reply, err := entities.ExtractStructuredReply(raw)

	assert.NoError(t, err)
	assert.Equal(t, "Seasonal viral fever", reply.PossibleReason)
	assert.Equal(t, []string{"Rest", "Drink fluids"}, reply.SuggestedSolutions)
	assert.Equal(t, "Consult a doctor", reply.Disclaimer)
}

func TestExtractStructuredReply_WrappedInMarkdownFence(t *testing.T) {
	raw := "```json\n{\"possibleReason\":\"Dehydration\",\"suggestedSolutions\":[\"Drink water\"],\"disclaimer\":\"Not medical advice\"}\n```"

	reply, err := entities.ExtractStructuredReply(raw)

	assert.NoError(t, err)
	assert.Equal(t, "Dehydration", reply.PossibleReason)
}

func TestExtractStructuredReply_WrappedInProse(t *testing.T) {
	raw := `Here is my analysis: {"possibleReason":"Migraine","suggestedSolutions":[],"disclaimer":"See a doctor"} Hope this helps.`

	reply, err := entities.ExtractStructuredReply(raw)

	assert.NoError(t, err)
	assert.Equal(t, "Migraine", reply.PossibleReason)
	assert.Empty(t, reply.SuggestedSolutions)
}

func TestExtractStructuredReply_NoBraces(t *testing.T) {
	_, err := entities.ExtractStructuredReply("I cannot answer that in JSON.")
	assert.Error(t, err)
}

func TestExtractStructuredReply_MissingReason(t *testing.T) {
	_, err := entities.ExtractStructuredReply(`{"suggestedSolutions":["Rest"],"disclaimer":"x"}`)
	assert.Error(t, err)
}

func TestExtractStructuredReply_NilSolutionsNormalized(t *testing.T) {
	reply, err := entities.ExtractStructuredReply(`{"possibleReason":"Stress","disclaimer":"x"}`)

	assert.NoError(t, err)
	assert.NotNil(t, reply.SuggestedSolutions)
	assert.Empty(t, reply.SuggestedSolutions)
}

func TestFallbackReply_CarriesRawText(t *testing.T) {
	raw := "plain text answer"
	reply := entities.FallbackReply(raw)

	assert.Equal(t, raw, reply.PossibleReason)
	assert.NotNil(t, reply.SuggestedSolutions)
	assert.Empty(t, reply.Disclaimer)
}

func TestSpeechText_JoinsAllParts(t *testing.T) {
	reply := &entities.StructuredReply{
		PossibleReason:     "Viral fever",
		SuggestedSolutions: []string{"Rest", "Hydrate"},
		Disclaimer:         "Consult a doctor",
	}

	assert.Equal(t, "Viral fever. Rest. Hydrate. Consult a doctor", reply.SpeechText())
}
