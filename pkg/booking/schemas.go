package booking

import "github.com/entrhq/courtbook/pkg/semantic"

// Intents shared by the discovery and booking steps.
const (
	candidatesInstruction          = "Find all available court booking slots, time slots, or court reservation options"
	extractCourtsInstruction       = "Extract all available court booking information including court names, time slots, locations, and any other relevant details"
	extractConfirmationInstruction = "Extract any booking confirmation message, success notification, or reservation details"
)

func stringField(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

func nullableField(description string) map[string]interface{} {
	return map[string]interface{}{"type": []string{"string", "null"}, "description": description}
}

var courtsSchema = semantic.Schema{
	Name:        "courts",
	Description: "One entry per court or time slot row shown in the listing.",
	JSON: map[string]interface{}{
		"type":     "object",
		"required": []string{"courts"},
		"properties": map[string]interface{}{
			"courts": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type":     "object",
					"required": []string{"name", "openingTimes", "location", "availability", "duration"},
					"properties": map[string]interface{}{
						"name":         stringField("the name or identifier of the court"),
						"openingTimes": stringField("the opening hours or operating times of the court"),
						"location":     stringField("the location or facility name"),
						"availability": stringField("availability status or any restrictions"),
						"duration":     nullableField("the duration of the court session in minutes"),
					},
				},
			},
		},
	},
}

var confirmationSchema = semantic.Schema{
	Name: "confirmation",
	JSON: map[string]interface{}{
		"type":     "object",
		"required": []string{"confirmationMessage", "bookingDetails", "errorMessage"},
		"properties": map[string]interface{}{
			"confirmationMessage": nullableField("any confirmation or success message"),
			"bookingDetails":      nullableField("booking details like time, court, etc."),
			"errorMessage":        nullableField("any error message if booking failed"),
		},
	},
}
