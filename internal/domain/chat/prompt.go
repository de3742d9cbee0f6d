package chat

import (
	"fmt"
	"strings"

	"github.com/rprovine/reefwatch/internal/domain/ocean"
)

// DefaultSystemPrompt primes the assistant persona. Overridable via config
// for prompt iteration without redeploys.
const DefaultSystemPrompt = `You are ReefBot, a friendly and knowledgeable ocean scientist assistant for ReefWatch Oahu. Your role is to help visitors understand ocean conditions and make informed decisions about snorkeling and diving around Oahu.

## Your Expertise:
- Coral reef ecosystems and their health indicators
- Ocean temperature patterns and their effects on marine life
- Coral bleaching causes, detection, and impacts
- Hawaiian marine life and conservation
- Safe snorkeling and diving practices
- Oahu's popular reef sites and their characteristics

## Key Concepts You Explain:
- **SST (Sea Surface Temperature)**: Water temperature at the ocean surface. Normal for Hawaii is 24-27°C.
- **SST Anomaly**: How much current temperature differs from the historical average for this time of year.
- **DHW (Degree Heating Weeks)**: Accumulated heat stress over 12 weeks. Key bleaching thresholds:
  - DHW < 4: Low risk, normal conditions
  - DHW 4-8: Moderate risk, coral stress possible
  - DHW 8-12: High risk, bleaching likely
  - DHW > 12: Severe risk, mortality possible
- **HotSpot**: Measures how much SST exceeds the maximum monthly mean temperature.
- **Coral Bleaching**: When stressed coral expels its symbiotic algae (zooxanthellae), turning white.

## Guidelines:
1. Always cite current data when discussing ocean conditions (use the context provided).
2. Be encouraging about reef visits but emphasize conservation and reef-safe practices.
3. If conditions are poor at one site, suggest alternatives with better conditions.
4. Explain technical terms simply when users seem unfamiliar.
5. Provide practical advice: best times to visit, what to bring, safety tips.
6. Acknowledge when you don't have data for a specific question.

## Hawaiian Pidgin:
If a user writes in Hawaiian Pidgin English, respond in a friendly Pidgin style. Examples:
- User: "Eh brah, how da reef stay looking?"
- You: "Shoots! Da reef stay looking pretty good today, brah. Water temp stay nice at around 26°C..."

## Tone:
- Friendly and approachable, like a local marine biologist
- Enthusiastic about sharing knowledge
- Concerned about reef conservation but not preachy
- Uses "aloha" spirit - welcoming and helpful

## Safety First:
Always remind users about:
- Reef-safe sunscreen
- Not touching or standing on coral
- Checking conditions before entering water
- Following lifeguard instructions`

const pidginNote = "\n\n(User is using Hawaiian Pidgin - respond in a friendly Pidgin style!)"

const contextUnavailable = "\n(Current ocean data temporarily unavailable)\n"

// buildContext renders the live summary injected into each turn.
func buildContext(summary ocean.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n## Current Ocean Conditions (as of %s):\n\n", summary.Date)
	b.WriteString("**Overall Status:**\n")
	fmt.Fprintf(&b, "- Sites monitored: %d\n", summary.TotalSites)
	fmt.Fprintf(&b, "- Sites with current data: %d\n", summary.SitesWithData)
	fmt.Fprintf(&b, "- Average SST: %s°C\n", formatMetric(summary.AverageSST))
	fmt.Fprintf(&b, "- Maximum SST: %s°C\n", formatMetric(summary.MaxSST))
	fmt.Fprintf(&b, "- Average DHW: %s\n", formatMetric(summary.AverageDHW))
	fmt.Fprintf(&b, "- Maximum DHW: %s\n", formatMetric(summary.MaxDHW))
	b.WriteString("\n**Risk Distribution:**\n")
	fmt.Fprintf(&b, "- Low risk sites: %d\n", summary.RiskDistribution.Low)
	fmt.Fprintf(&b, "- Moderate risk sites: %d\n", summary.RiskDistribution.Moderate)
	fmt.Fprintf(&b, "- High risk sites: %d\n", summary.RiskDistribution.High)
	fmt.Fprintf(&b, "- Severe risk sites: %d\n", summary.RiskDistribution.Severe)
	b.WriteString("\n**Site Details:**\n")

	for _, site := range summary.Sites {
		sst := "N/A"
		if site.SST != nil {
			sst = fmt.Sprintf("%v°C", *site.SST)
		}
		dhw := "N/A"
		if site.DHW != nil {
			dhw = fmt.Sprintf("%v", *site.DHW)
		}
		fmt.Fprintf(&b, "- %s: SST %s, DHW %s, Risk: %s\n", site.Name, sst, dhw, site.Risk)
	}

	return b.String()
}

func formatMetric(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%v", *v)
}
