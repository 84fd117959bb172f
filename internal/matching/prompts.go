package matching

import (
	"fmt"
	"strings"
)

// systemPrompt instructs the model to score inventory items against an
// inquiry and emit a bare JSON array.
const systemPrompt = `You are an AI assistant for a lost and found system. Analyze the user's lost item inquiry and compare it against the inventory to find potential matches. Return a JSON array of matches with confidence scores (0-100). Only return items with confidence >= 40. Format: [{"itemId": "uuid", "confidence": 85, "reasons": ["reason1", "reason2"]}]`

func buildUserPrompt(inquiry InquiryDetails, items []InventoryItem) string {
	var b strings.Builder

	b.WriteString("Lost Item Inquiry:\n")
	fmt.Fprintf(&b, "Title: %s\n", inquiry.Title)
	fmt.Fprintf(&b, "Description: %s\n", inquiry.Description)
	fmt.Fprintf(&b, "Category: %s\n", orDefault(inquiry.Category, "Not specified"))
	fmt.Fprintf(&b, "Color: %s\n", orDefault(inquiry.Color, "Not specified"))
	fmt.Fprintf(&b, "Brand: %s\n", orDefault(inquiry.Brand, "Not specified"))
	fmt.Fprintf(&b, "Distinguishing Features: %s\n", orDefault(inquiry.DistinguishingFeatures, "None"))
	fmt.Fprintf(&b, "Location Lost: %s\n", orDefault(inquiry.LocationLost, "Not specified"))

	b.WriteString("\nInventory Items:\n")
	for i, item := range items {
		fmt.Fprintf(&b, "\nItem %d (ID: %s):\n", i+1, item.ID)
		fmt.Fprintf(&b, "- Name: %s\n", item.Name)
		fmt.Fprintf(&b, "- Description: %s\n", orDefault(&item.Description, "N/A"))
		fmt.Fprintf(&b, "- Category: %s\n", orDefault(item.Category, "N/A"))
		fmt.Fprintf(&b, "- Color: %s\n", orDefault(item.Color, "N/A"))
		fmt.Fprintf(&b, "- Brand: %s\n", orDefault(item.Brand, "N/A"))
		fmt.Fprintf(&b, "- Features: %s\n", orDefault(item.DistinguishingFeatures, "N/A"))
		fmt.Fprintf(&b, "- Location Found: %s\n", orDefault(item.LocationFound, "N/A"))
	}

	b.WriteString("\nReturn JSON array of potential matches.")
	return b.String()
}

func orDefault(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}
