package storefront

import (
	"fmt"
	"math"
	"strings"

	"github.com/bnema/primemall-cli/internal/application"
	"github.com/bnema/primemall-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const fundsBarWidth = 24

func RenderCart(view application.CartView) (string, error) {
	return run(func(s styles) string { return cartView(view, s) })
}

func RenderCatalog(products []domain.Product, funds *domain.Cents) (string, error) {
	return run(func(s styles) string { return catalogView(products, funds, s) })
}

func RenderFAQ(entries []domain.FaqEntry) (string, error) {
	return run(func(s styles) string { return faqView(entries, s) })
}

func RenderSections(sections []domain.KnowledgeSection) (string, error) {
	return run(func(s styles) string { return sectionsView(sections, s) })
}

func cartView(view application.CartView, s styles) string {
	lines := []string{s.title.Render("Prime Mall Cart")}

	if view.Account == nil {
		lines = append(lines, s.empty.Render("Not signed in. Run `pm account signup` or `pm account login`."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines,
		s.account.Render(fmt.Sprintf("%s <%s>", view.Account.Name, view.Account.Email)),
		fundsLine(view.Account.Funds, view.Total, s),
		s.header.Render(fmt.Sprintf("items: %d", view.Count)),
	)

	if len(view.Lines) == 0 {
		lines = append(lines, s.empty.Render("Your cart is empty."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	rows := make([]string, 0, len(view.Lines)+1)
	for _, line := range view.Lines {
		rows = append(rows, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.muted.Render(fmt.Sprintf("[%s] ", line.ItemID)),
			s.detail.Render(fmt.Sprintf("%s x%d ", line.Name, line.Quantity)),
			s.price.Render(line.Subtotal().String()),
		))
	}
	rows = append(rows, s.title.Render(fmt.Sprintf("total: %s", view.Total)))
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// fundsLine shows how much of the balance the cart is holding.
func fundsLine(funds, held domain.Cents, s styles) string {
	balance := funds + held
	heldPercent := 0.0
	if balance > 0 {
		heldPercent = float64(held) / float64(balance) * 100
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.detail.Render(fmt.Sprintf("funds: %s ", funds)),
		renderProgressBar(heldPercent, fundsBarWidth, s),
		s.muted.Render(fmt.Sprintf(" %s held", held)),
	)
}

func catalogView(products []domain.Product, funds *domain.Cents, s styles) string {
	lines := []string{
		s.title.Render("Prime Mall Catalog"),
		s.header.Render(fmt.Sprintf("products: %d", len(products))),
	}
	if len(products) == 0 {
		lines = append(lines, s.empty.Render("No products available."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, product := range products {
		row := lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.muted.Render(fmt.Sprintf("[%s] ", product.ID)),
			s.detail.Render(product.Name+" "),
			s.price.Render(product.Price.String()),
		)
		if product.Category != "" {
			row += " " + s.muted.Render("("+product.Category+")")
		}
		if funds != nil && product.Price > *funds {
			row += " " + s.warning.Render("[insufficient funds]")
		}
		lines = append(lines, row)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func faqView(entries []domain.FaqEntry, s styles) string {
	lines := []string{s.title.Render("Frequently Asked Questions")}
	for _, entry := range entries {
		block := []string{s.account.Render(entry.Question), s.muted.Render("key: " + entry.Key)}
		switch {
		case entry.Answer != nil:
			block = append(block, s.detail.Render(*entry.Answer))
		case entry.Pending:
			block = append(block, s.empty.Render("Loading answer..."))
		default:
			block = append(block, s.empty.Render(fmt.Sprintf("Run `pm faq ask %s` to load the answer.", entry.Key)))
		}
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, block...)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func sectionsView(sections []domain.KnowledgeSection, s styles) string {
	lines := []string{s.title.Render("Mall Knowledge")}
	if len(sections) == 0 {
		lines = append(lines, s.empty.Render("No knowledge sections available."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, section := range sections {
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(
			lipgloss.Left,
			s.account.Render(section.Title),
			s.detail.Render(section.Content),
		)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderProgressBar(filledPercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(filledPercent) / 100))
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}

	return v
}
