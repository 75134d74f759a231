package prompts

import "fmt"

const intentPrompt = `Act as Riya (friendly Hindi+English, ≤ 450 chars).
Classify one of: INQUIRY, PAYMENT, BOOKING, FEEDBACK, GENERIC.
Return a short helpful reply.
User: %s`

// HeuristicReply is the canned greeting returned in heuristic-only
// mode, independent of the matched intent.
const HeuristicReply = "Namaste ji! Kaise madad kar sakti hoon? 😊"

// FallbackReply replaces the model output when the Gemini call fails or
// returns nothing usable.
const FallbackReply = "Thanks! We will help you shortly."

// BuildIntentPrompt embeds the user's message into the persona prompt.
func BuildIntentPrompt(text string) string {
	return fmt.Sprintf(intentPrompt, text)
}
