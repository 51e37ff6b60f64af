package services

import (
	"fmt"
	"strings"

	"maps-lead-scraper/models"
)

// PrintCoverageReport formats and prints the run summary to the terminal
func PrintCoverageReport(report *models.CoverageReport, query, artifact string) {
	border := strings.Repeat("═", 55)
	thin := strings.Repeat("─", 55)

	fmt.Printf("\n╔%s╗\n", border)
	fmt.Printf("║%s║\n", center("LEAD COLLECTION SUMMARY", 55))
	fmt.Printf("╚%s╝\n", border)

	fmt.Printf("\n OVERVIEW\n%s\n", thin)
	fmt.Printf("  Search                  : %s\n", truncate(query, 40))
	fmt.Printf("  Records written         : %d\n", report.TotalRecords)
	fmt.Printf("  Artifact                : %s\n", artifact)

	if report.TotalRecords > 0 {
		fmt.Printf("\n FIELD COVERAGE\n%s\n", thin)
		row := func(label string, n int) {
			pct := float64(n) * 100 / float64(report.TotalRecords)
			fmt.Printf("  %-22s %4d  %5.1f%%  %s\n", label+":", n, pct, strings.Repeat("▓", int(pct/5)))
		}
		row("Website", report.WithWebsite)
		row("Phone", report.WithPhone)
		row("Email", report.WithEmail)
		row("Rating", report.WithRating)
		row("Opening hours", report.WithHours)
		row("Coordinates", report.WithCoords)
		row("Unclaimed", report.Unclaimed)
		row("Contacts deferred", report.Deferred)

		if len(report.SocialCoverage) > 0 {
			fmt.Printf("\n SOCIAL PROFILES\n%s\n", thin)
			for _, platform := range models.SocialPlatforms {
				if n := report.SocialCoverage[platform]; n > 0 {
					row(platform, n)
				}
			}
		}
	}

	fmt.Printf("\n%s\n\n", border)
}

func center(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return s
	}
	pad := (width - len(runes)) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-len(runes)-pad)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
