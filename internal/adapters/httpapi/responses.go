package httpapi

import (
	"time"

	"github.com/bnema/primemall-cli/internal/application"
	"github.com/bnema/primemall-cli/internal/domain"
)

type accountResponse struct {
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	FundsCents domain.Cents `json:"funds_cents"`
	Funds      string       `json:"funds"`
}

type lineResponse struct {
	ProductID     domain.ItemID `json:"product_id"`
	Name          string        `json:"name"`
	Image         string        `json:"image,omitempty"`
	UnitPrice     domain.Cents  `json:"unit_price_cents"`
	Quantity      int           `json:"quantity"`
	SubtotalCents domain.Cents  `json:"subtotal_cents"`
}

type cartResponse struct {
	Account    *accountResponse `json:"account"`
	Lines      []lineResponse   `json:"lines"`
	TotalCents domain.Cents     `json:"total_cents"`
	Total      string           `json:"total"`
	Count      int              `json:"count"`
}

type productResponse struct {
	ID          domain.ItemID `json:"id"`
	Name        string        `json:"name"`
	Category    string        `json:"category"`
	Description string        `json:"description,omitempty"`
	Image       string        `json:"image,omitempty"`
	PriceCents  domain.Cents  `json:"price_cents"`
	Price       string        `json:"price"`
}

type faqResponse struct {
	Question string  `json:"question"`
	Key      string  `json:"key"`
	Answer   *string `json:"answer"`
}

type sectionResponse struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type chatResponse struct {
	ID          string    `json:"id"`
	UserMessage string    `json:"user_message"`
	Response    string    `json:"response"`
	Intent      string    `json:"intent"`
	At          time.Time `json:"at"`
}

type checkoutResponse struct {
	SpentCents     domain.Cents `json:"spent_cents"`
	RemainingCents domain.Cents `json:"remaining_cents"`
}

func toAccountResponse(account domain.Account) *accountResponse {
	return &accountResponse{
		Name:       account.Name,
		Email:      account.Email,
		FundsCents: account.Funds,
		Funds:      account.Funds.String(),
	}
}

func toCartResponse(view application.CartView) cartResponse {
	resp := cartResponse{
		Lines:      make([]lineResponse, 0, len(view.Lines)),
		TotalCents: view.Total,
		Total:      view.Total.String(),
		Count:      view.Count,
	}
	if view.Account != nil {
		resp.Account = toAccountResponse(*view.Account)
	}
	for _, line := range view.Lines {
		resp.Lines = append(resp.Lines, lineResponse{
			ProductID:     line.ItemID,
			Name:          line.Name,
			Image:         line.Image,
			UnitPrice:     line.UnitPrice,
			Quantity:      line.Quantity,
			SubtotalCents: line.Subtotal(),
		})
	}

	return resp
}

func toProductResponses(products []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, productResponse{
			ID:          p.ID,
			Name:        p.Name,
			Category:    p.Category,
			Description: p.Description,
			Image:       p.Image,
			PriceCents:  p.Price,
			Price:       p.Price.String(),
		})
	}

	return out
}

func toFAQResponse(entry domain.FaqEntry) faqResponse {
	return faqResponse{Question: entry.Question, Key: entry.Key, Answer: entry.Answer}
}
