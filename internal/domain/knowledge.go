package domain

import (
	"regexp"
	"strings"
)

type KnowledgeSection struct {
	Title   string
	Content string
}

var SectionTitles = []string{
	"About Prime Mall",
	"Mission",
	"Terms",
	"Marketplace Role",
	"Privacy",
	"Refunds",
	"Shipping",
	"Support",
	"Membership",
	"Disputes",
}

var sectionBoundary = regexp.MustCompile(sectionPattern(SectionTitles))

func sectionPattern(titles []string) string {
	quoted := make([]string, 0, len(titles))
	for _, title := range titles {
		quoted = append(quoted, regexp.QuoteMeta(title+":"))
	}

	return strings.Join(quoted, "|")
}

const FallbackKnowledge = "About Prime Mall: Trusted marketplace with 500+ partner stores and 1M+ customers. " +
	"Mission: To connect customers with quality products and unbeatable value. " +
	"Terms: Users must be 18+. One account per individual. No bots allowed. " +
	"Marketplace Role: We facilitate transactions; vendors are responsible for product quality. " +
	"Privacy: We do not sell personal data. We use SSL encryption and are PCI-DSS compliant. " +
	"Refunds: 30-day window (60 for members). No returns on perishables, cosmetics, or gift cards. " +
	"Shipping: Standard (5-7 days), Express (2-3), International (10-21). " +
	"Support: support@primemall.com, 1-800-PRIME-MALL, and 24/7 Live Chat. " +
	"Membership: $99/year. Benefits include free shipping and priority support. " +
	"Disputes: Escalate to Prime Mall if vendor doesn't resolve in 48 hours."

// ParseSections splits free-form knowledge text in front of every recognized
// section title. Text before an unrecognized title stays in the previous
// section; segments without a title or content are dropped.
func ParseSections(text string) []KnowledgeSection {
	sections := make([]KnowledgeSection, 0, len(SectionTitles))

	for _, segment := range splitAtBoundaries(text) {
		trimmed := strings.TrimSpace(segment)
		if trimmed == "" {
			continue
		}

		title, content, ok := strings.Cut(trimmed, ":")
		if !ok {
			continue
		}

		title = strings.TrimSpace(title)
		content = strings.TrimSpace(content)
		if title == "" || content == "" {
			continue
		}

		sections = append(sections, KnowledgeSection{Title: title, Content: content})
	}

	return sections
}

func splitAtBoundaries(text string) []string {
	matches := sectionBoundary.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return []string{text}
	}

	segments := make([]string, 0, len(matches)+1)
	start := 0
	for _, match := range matches {
		if match[0] > start {
			segments = append(segments, text[start:match[0]])
		}
		start = match[0]
	}

	return append(segments, text[start:])
}

// FindSection returns the first section with the given title.
func FindSection(sections []KnowledgeSection, title string) (KnowledgeSection, bool) {
	for _, section := range sections {
		if section.Title == title {
			return section, true
		}
	}

	return KnowledgeSection{}, false
}
