package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/mailtriage/core"
)

const classifySystemPrompt = `You are an email classification assistant for a retail store.`

const classifyPromptTemplate = `Analyze the following email and classify it as either an "order_request" or "product_inquiry".
An order request is when the customer wants to purchase products.
A product inquiry is when the customer is asking for information about products.

Email Subject: %s
Email Body: %s

Classification (respond with exactly one of: "order_request" or "product_inquiry"):`

const extractSystemPrompt = `You are an order extraction assistant.`

const extractResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "order_items": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "product_name": {
            "type": "string"
          },
          "quantity": {
            "type": "integer",
            "minimum": 1
          }
        },
        "required": ["product_name", "quantity"],
        "additionalProperties": false
      }
    }
  },
  "required": ["order_items"],
  "additionalProperties": false
}`

const extractPromptTemplate = `Extract the ordered items and their quantities from the following email.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- product_name is the item name exactly as the customer wrote it.
- quantity is a whole number of at least 1.
- If the email orders nothing, return an empty order_items array.

Email Body: %s`

const respondSystemPrompt = `You are a professional customer service representative.`

const inquirySystemPrompt = `You are a knowledgeable product specialist.`

const formatSystemPrompt = `You are an email formatting assistant.`

const orderResponseTemplate = `Generate a professional email response for the following order:

Order Summary:
%s

Please include:
1. A thank you message
2. Confirmation of successful orders
3. Information about out-of-stock items
4. Next steps or alternatives for out-of-stock items
5. A professional closing

Response:`

const inquiryResponseTemplate = `Generate a professional email response for the following product inquiry:

Customer Inquiry:
%s

Relevant Products:
%s

The response should:
1. Address the specific inquiry
2. Provide relevant product information
3. Include stock availability
4. Offer additional assistance
5. Maintain a professional and helpful tone

Response:`

const noMatchResponsePrompt = `Generate a professional email response when no relevant products are found.
The response should:
1. Acknowledge the customer's inquiry
2. Explain that we couldn't find exact matches
3. Offer to help with a more specific search
4. Provide contact information for further assistance

Response:`

const formatResponseTemplate = `Format the following email response with proper structure and tone.
The response should be professional, clear, and well-organized.

Subject: %s
Content: %s

Please format the email with:
1. A professional greeting
2. Clear paragraphs
3. Proper spacing
4. A professional signature
5. Contact information

Formatted email:`

func buildClassifyPrompt(subject, body string) string {
	return fmt.Sprintf(classifyPromptTemplate, subject, body)
}

func buildExtractPrompt(body string) string {
	return fmt.Sprintf(extractPromptTemplate, extractResponseSchema, body)
}

func buildOrderResponsePrompt(summary string) string {
	return fmt.Sprintf(orderResponseTemplate, summary)
}

func buildInquiryResponsePrompt(inquiry string, candidates []core.ProductCandidate) string {
	infos := make([]string, 0, len(candidates))
	for _, c := range candidates {
		infos = append(infos, fmt.Sprintf(
			"Product: %s\nCategory: %s\nSeason: %s\nStock: %d units available",
			c.Name, c.Category, c.Season, c.Stock))
	}
	return fmt.Sprintf(inquiryResponseTemplate, inquiry, strings.Join(infos, "\n\n"))
}

func buildFormatPrompt(subject, content string) string {
	return fmt.Sprintf(formatResponseTemplate, subject, content)
}
