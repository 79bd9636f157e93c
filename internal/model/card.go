package model

const adaptiveCardSchema = "http://adaptivecards.io/schemas/adaptive-card.json"

// HelpCard is the Adaptive Card sent in answer to showHelp.
func HelpCard(searchEnabled, completionEnabled bool) map[string]interface{} {
	status := func(on bool) string {
		if on {
			return "configured"
		}
		return "not configured"
	}
	return map[string]interface{}{
		"$schema": adaptiveCardSchema,
		"type":    "AdaptiveCard",
		"version": "1.5",
		"body": []interface{}{
			map[string]interface{}{
				"type":   "TextBlock",
				"text":   "OAI Chat help",
				"weight": "Bolder",
				"size":   "Medium",
			},
			map[string]interface{}{
				"type": "TextBlock",
				"text": "Type a question and press Enter. Greetings are answered without searching; " +
					"technical questions are grounded on the search index when one is configured.",
				"wrap": true,
			},
			map[string]interface{}{
				"type": "FactSet",
				"facts": []interface{}{
					map[string]interface{}{"title": "Search", "value": status(searchEnabled)},
					map[string]interface{}{"title": "Completion", "value": status(completionEnabled)},
				},
			},
			map[string]interface{}{
				"type":     "TextBlock",
				"text":     "Use the trash button to clear the conversation. History is kept only for this view.",
				"wrap":     true,
				"isSubtle": true,
			},
		},
	}
}
