package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/taste-recommender/internal/models"
)

type RequestType string

const (
	RequestSomethingLikeBut RequestType = "something_like_but_not"
	RequestDontKnow         RequestType = "dont_know"
	RequestSurpriseMe       RequestType = "surprise_me"
	RequestGeneral          RequestType = "general"
)

// ParseRequestType rejects anything outside the four known request types.
func ParseRequestType(s string) (RequestType, error) {
	switch rt := RequestType(strings.TrimSpace(s)); rt {
	case RequestSomethingLikeBut, RequestDontKnow, RequestSurpriseMe, RequestGeneral:
		return rt, nil
	default:
		return "", fmt.Errorf("%w: %q", models.ErrInvalidRequestType, s)
	}
}

// Quick context questions, asked in this order.
var contextQuestions = []string{
	"What's your energy level right now? (drained/neutral/energized)",
	"How much attention can you give? (background/partial/full focus)",
	"What do you need emotionally? (comfort/stimulation/distraction/inspiration)",
	"How much time do you have and where are you watching?",
}

// ContextualGuidance returns the canned reply for a request type. The profile
// is optional and only used to acknowledge what has already been understood.
func ContextualGuidance(rt RequestType, profile *models.TasteProfile) string {
	switch rt {
	case RequestSomethingLikeBut:
		msg := "Let me analyze what made that content special and find something that captures those elements in a different way..."
		if profile != nil && profile.HasCoreSignals() {
			msg += " So far I'm hearing " + humanize(append(
				append([]string{}, profile.NarrativeDNA.StoryStructure...),
				profile.EmotionalTexture.PrimaryMood...,
			)) + "."
		}
		return msg
	case RequestDontKnow:
		question := contextQuestions[0]
		if profile != nil {
			if _, ok := profile.Context[models.ContextMood]; ok {
				question = contextQuestions[1]
			}
		}
		return "Let's figure this out together! Quick context check: " + question +
			" This will help me suggest something perfect for your current state."
	case RequestSurpriseMe:
		return "Let me surprise you with something that matches taste patterns you might not even realize you have..."
	default:
		return "I can help you find content recommendations. Could you tell me more about what you're looking for?"
	}
}
