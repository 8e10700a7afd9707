package storage

import (
	"fmt"

	"github.com/whisperrid/backend/internal/models"
)

// SeedCases returns the mock dataset: the four showcase cases shown on the
// dashboard followed by the fifteen generated cases of the verifications list.
func SeedCases() []models.VerificationCase {
	cases := []models.VerificationCase{
		{
			ID:             "12345",
			User:           models.User{ID: "u1", FirstName: "Ethan", LastName: "Harper", Email: "ethan@example.com", Avatar: "https://picsum.photos/32/32?random=1"},
			Status:         models.VerificationStatusApproved,
			Date:           "2024-03-15",
			DecisionTime:   "2m 15s",
			Template:       models.TemplateStandard,
			RiskScore:      98,
			Country:        "USA",
			DocumentType:   "Passport",
			DocumentNumber: "A1234567",
			Address:        "123 Maple Dr",
			DOB:            "1990-01-01",
		},
		{
			ID:             "67890",
			User:           models.User{ID: "u2", FirstName: "Olivia", LastName: "Bennett", Email: "olivia@example.com", Avatar: "https://picsum.photos/32/32?random=2"},
			Status:         models.VerificationStatusPending,
			Date:           "2024-03-15",
			DecisionTime:   "3m 05s",
			Template:       models.TemplateEnhanced,
			RiskScore:      45,
			Country:        "UK",
			DocumentType:   "Driver License",
			DocumentNumber: "D9876543",
			Address:        "456 Oak Ln",
			DOB:            "1992-05-12",
		},
		{
			ID:             "11223",
			User:           models.User{ID: "u3", FirstName: "Liam", LastName: "Carter", Email: "liam@example.com", Avatar: "https://picsum.photos/32/32?random=3"},
			Status:         models.VerificationStatusRejected,
			Date:           "2024-03-14",
			DecisionTime:   "1m 45s",
			Template:       models.TemplateStandard,
			RiskScore:      12,
			Country:        "Canada",
			DocumentType:   "ID Card",
			DocumentNumber: "C11223344",
			Address:        "789 Pine St",
			DOB:            "1988-11-23",
		},
		{
			ID:             "33445",
			User:           models.User{ID: "u4", FirstName: "Sophia", LastName: "Davis", Email: "sophia@example.com", Avatar: "https://picsum.photos/32/32?random=4"},
			Status:         models.VerificationStatusReview,
			Date:           "2024-03-14",
			DecisionTime:   "2m 30s",
			Template:       models.TemplateStandard,
			RiskScore:      95,
			Country:        "USA",
			DocumentType:   "Passport",
			DocumentNumber: "A9988776",
			Address:        "321 Elm St",
			DOB:            "1995-07-30",
		},
	}

	return append(cases, generatedCases(15)...)
}

// generatedCases builds n list entries cycling through a fixed set of names and statuses
func generatedCases(n int) []models.VerificationCase {
	firstNames := []string{"Noah", "Emma", "Liam", "Olivia", "Mason"}
	lastNames := []string{"Smith", "Johnson", "Brown", "Williams", "Jones"}
	statuses := []models.VerificationStatus{
		models.VerificationStatusApproved,
		models.VerificationStatusPending,
		models.VerificationStatusRejected,
		models.VerificationStatusReview,
	}

	cases := make([]models.VerificationCase, 0, n)
	for i := 0; i < n; i++ {
		template := models.TemplateStandard
		if i%2 == 1 {
			template = models.TemplateEnhanced
		}

		cases = append(cases, models.VerificationCase{
			ID: fmt.Sprintf("%d", 10000+i),
			User: models.User{
				ID:        fmt.Sprintf("u%d", i+100),
				FirstName: firstNames[i%len(firstNames)],
				LastName:  lastNames[i%len(lastNames)],
				Email:     fmt.Sprintf("user%d@example.com", i),
				Avatar:    fmt.Sprintf("https://picsum.photos/32/32?random=%d", i+10),
			},
			Status:         statuses[i%len(statuses)],
			Date:           "2024-03-15",
			Template:       template,
			RiskScore:      85 + (i % 15),
			Country:        "USA",
			DocumentType:   "Passport",
			DocumentNumber: fmt.Sprintf("A%d", 10000+i),
			Address:        "123 Test St",
			DOB:            "1990-01-01",
		})
	}
	return cases
}
