package application

import "github.com/bnema/primemall-cli/internal/domain"

const sessionSchemaVersion = 1

type accountRecord struct {
	Version    int    `json:"version"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	FundsCents int64  `json:"funds_cents"`
}

type cartRecord struct {
	Version int              `json:"version"`
	Lines   []cartLineRecord `json:"lines"`
}

type cartLineRecord struct {
	ItemID         string `json:"item_id"`
	Name           string `json:"name"`
	Image          string `json:"image,omitempty"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
}

func toAccountRecord(account domain.Account) accountRecord {
	return accountRecord{
		Version:    sessionSchemaVersion,
		Name:       account.Name,
		Email:      account.Email,
		FundsCents: int64(account.Funds),
	}
}

func (r accountRecord) toDomain() domain.Account {
	return domain.Account{
		Name:  r.Name,
		Email: r.Email,
		Funds: domain.Cents(r.FundsCents),
	}
}

func toCartRecord(lines []domain.CartLine) cartRecord {
	record := cartRecord{Version: sessionSchemaVersion, Lines: make([]cartLineRecord, 0, len(lines))}
	for _, line := range lines {
		record.Lines = append(record.Lines, cartLineRecord{
			ItemID:         string(line.ItemID),
			Name:           line.Name,
			Image:          line.Image,
			UnitPriceCents: int64(line.UnitPrice),
			Quantity:       line.Quantity,
		})
	}

	return record
}

func (r cartRecord) toDomain() []domain.CartLine {
	lines := make([]domain.CartLine, 0, len(r.Lines))
	for _, line := range r.Lines {
		lines = append(lines, domain.CartLine{
			ItemID:    domain.ItemID(line.ItemID),
			Name:      line.Name,
			Image:     line.Image,
			UnitPrice: domain.Cents(line.UnitPriceCents),
			Quantity:  line.Quantity,
		})
	}

	return lines
}
