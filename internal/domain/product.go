package domain

type Product struct {
	ID          ItemID
	Name        string
	Category    string
	Description string
	Image       string
	Price       Cents
}

func (p Product) Item() Item {
	return Item{ID: p.ID, Name: p.Name, Image: p.Image, Price: p.Price}
}

// DemoCatalog is the storefront's built-in product list.
var DemoCatalog = []Product{
	{ID: "1", Name: "Premium Wireless Headphones", Category: "Electronics", Price: 199_99, Image: "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400&h=400&fit=crop", Description: "Noise-cancelling over-ear headphones with 30-hour battery life."},
	{ID: "2", Name: "Smart Watch Pro", Category: "Electronics", Price: 349_99, Image: "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=400&h=400&fit=crop", Description: "Fitness tracking, notifications and a week of battery."},
	{ID: "3", Name: "Designer Leather Bag", Category: "Fashion", Price: 129_99, Description: "Hand-stitched full-grain leather tote."},
	{ID: "4", Name: "Running Shoes Elite", Category: "Sports", Price: 159_99, Description: "Lightweight trainers with responsive cushioning."},
	{ID: "5", Name: "Minimalist Desk Lamp", Category: "Home", Price: 79_99, Description: "Dimmable LED lamp with a brushed aluminium arm."},
	{ID: "6", Name: "Premium Coffee Maker", Category: "Home", Price: 249_99, Description: "Programmable brewer with thermal carafe."},
	{ID: "7", Name: "Vintage Sunglasses", Category: "Fashion", Price: 89_99, Description: "Polarized lenses in a classic acetate frame."},
	{ID: "8", Name: "Bluetooth Speaker", Category: "Electronics", Price: 119_99, Description: "Waterproof portable speaker with deep bass."},
}
