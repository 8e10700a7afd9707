package risk

import (
	"fmt"

	"github.com/whisperrid/backend/internal/models"
)

const assessmentTemplate = `Act as an expert KYC/AML compliance officer for WhisperrID.
Analyze the following identity verification case data and provide a concise risk assessment report.

User: %s %s (%s)
Country: %s
Document: %s (%s)
Risk Score (0-100, 100 is safe): %d
Current Status: %s

Please provide:
1. A summary of potential red flags (if any).
2. A recommendation (Approve, Reject, or Request More Info).
3. A brief explanation of the decision logic based on common compliance patterns.

Keep the tone professional and the output formatted as a clean Markdown list or paragraphs.`

const chatTemplate = `System Context: You are "WhisperrBot", an AI assistant for the WhisperrID dashboard.
User Context: %s

User Message: %s

Respond helpfully and briefly.`

// AssessmentPrompt renders the compliance officer prompt for a case
func AssessmentPrompt(c models.VerificationCase) string {
	return fmt.Sprintf(assessmentTemplate,
		c.User.FirstName, c.User.LastName, c.User.Email,
		c.Country,
		c.DocumentType, c.DocumentNumber,
		c.RiskScore,
		c.Status,
	)
}

// ChatPrompt renders the assistant prompt
func ChatPrompt(message, userContext string) string {
	return fmt.Sprintf(chatTemplate, userContext, message)
}
