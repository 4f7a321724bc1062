package service

import (
	"fmt"
	"strings"

	"github.com/tripgpt/planning-platform/internal/model"
)

// BuildSystemPrompt builds the French travel-expert instruction sent
// with every plan request. The day-heading convention it asks for is
// what the normalizer parses.
func BuildSystemPrompt(req *model.PlanRequest) string {
	var b strings.Builder

	b.WriteString("Vous êtes un expert en voyages. Créez un itinéraire détaillé avec:\n")
	if len(req.Interests) > 0 {
		fmt.Fprintf(&b, "- Des lieux en accord avec: %s\n", strings.Join(req.Interests, ", "))
	}
	if req.Budget != "" {
		fmt.Fprintf(&b, "- Budget: %s\n", req.Budget)
	}
	fmt.Fprintf(&b, "- Durée: %d jours\n", req.Days)
	if req.StartDate != "" {
		fmt.Fprintf(&b, "- Date de départ: %s\n", req.StartDate)
	}
	b.WriteString("Structurez la réponse jour par jour: une ligne \"Jour N: titre\" ")
	b.WriteString("suivie des activités, une par ligne, précédées de \"- \".")

	return b.String()
}

// BuildImagePrompt builds the prompt for the destination cover image.
func BuildImagePrompt(destination string) string {
	return fmt.Sprintf("A scenic travel illustration of %s", destination)
}
