package assistant

import (
	"encoding/json"
	"fmt"
	"strings"

	"smartinvoice/internal/model"

	"google.golang.org/genai"
)

const rules = `You are an expert Invoice Copilot. Your goal is to modify the CURRENT INVOICE based on the USER REQUEST.

RULES:
1. Analyze the CURRENT INVOICE JSON provided below.
2. Interpret the USER REQUEST (e.g., "Add an item", "Change tax", "Rewrite notes").
3. Return a JSON object containing ONLY the fields that need to change.
4. If the user wants to ADD or REMOVE items, return the COMPLETE updated 'items' array. Do not return partial arrays for items.
5. If the user asks to "Make it polite" or "Professional", rewrite the 'notes' field accordingly.
6. Infer missing details where logical (e.g., if user says "Bill to Apple", infer Cupertino address if not known, or leave blank).
7. Formatting: Date format YYYY-MM-DD.`

// Request is what the generative model receives.
type Request struct {
	Prompt string
	Schema *genai.Schema
}

// BuildPrompt combines the fixed rules, a snapshot of doc and the user's instruction.
// Logo and signature images are left out of the snapshot; the patch cannot change them.
func BuildPrompt(doc model.Invoice, instruction string) (string, error) {
	snapshot := doc.Clone()
	snapshot.Logo = ""
	snapshot.Signature = ""

	b, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("failed to encode invoice snapshot: %w", err)
	}
	quoted, err := json.Marshal(strings.TrimSpace(instruction))
	if err != nil {
		return "", fmt.Errorf("failed to encode instruction: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(rules)
	sb.WriteString("\n\nCURRENT INVOICE JSON:\n")
	sb.Write(b)
	sb.WriteString("\n\nUSER REQUEST:\n")
	sb.Write(quoted)
	sb.WriteString("\n")
	return sb.String(), nil
}

// Schema declares the partial-update output shape: every field optional.
func Schema() *genai.Schema {
	str := func() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }
	num := func() *genai.Schema { return &genai.Schema{Type: genai.TypeNumber} }

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"invoiceNumber": str(),
			"date":          str(),
			"dueDate":       str(),
			"clientName":    str(),
			"clientEmail":   str(),
			"clientAddress": str(),
			"senderName":    str(),
			"senderRegNo":   str(),
			"senderSstNo":   str(),
			"senderEmail":   str(),
			"senderAddress": str(),
			"currency":      str(),
			"taxRate":       num(),
			"notes":         str(),
			"items": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"id":          str(),
						"description": str(),
						"quantity":    num(),
						"rate":        num(),
					},
				},
			},
		},
	}
}
