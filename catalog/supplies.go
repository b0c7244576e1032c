package catalog

import "github.com/shopspring/decimal"

// PaperSupplies returns the full price list the company can source.
// Prices are per sheet for paper, per unit otherwise.
func PaperSupplies() []Item {
	return []Item{
		// Paper types
		supply("A4 paper", "paper", "0.05"),
		supply("Letter-sized paper", "paper", "0.06"),
		supply("Cardstock", "paper", "0.15"),
		supply("Colored paper", "paper", "0.10"),
		supply("Glossy paper", "paper", "0.20"),
		supply("Matte paper", "paper", "0.18"),
		supply("Recycled paper", "paper", "0.08"),
		supply("Eco-friendly paper", "paper", "0.12"),
		supply("Poster paper", "paper", "0.25"),
		supply("Banner paper", "paper", "0.30"),
		supply("Kraft paper", "paper", "0.10"),
		supply("Construction paper", "paper", "0.07"),
		supply("Wrapping paper", "paper", "0.15"),
		supply("Glitter paper", "paper", "0.22"),
		supply("Decorative paper", "paper", "0.18"),
		supply("Letterhead paper", "paper", "0.12"),
		supply("Legal-size paper", "paper", "0.08"),
		supply("Crepe paper", "paper", "0.05"),
		supply("Photo paper", "paper", "0.25"),
		supply("Uncoated paper", "paper", "0.06"),
		supply("Butcher paper", "paper", "0.10"),
		supply("Heavyweight paper", "paper", "0.20"),
		supply("Standard copy paper", "paper", "0.04"),
		supply("Bright-colored paper", "paper", "0.12"),
		supply("Patterned paper", "paper", "0.15"),

		// Product types
		supply("Paper plates", "product", "0.10"),
		supply("Paper cups", "product", "0.08"),
		supply("Paper napkins", "product", "0.02"),
		supply("Disposable cups", "product", "0.10"),
		supply("Table covers", "product", "1.50"),
		supply("Envelopes", "product", "0.05"),
		supply("Sticky notes", "product", "0.03"),
		supply("Notepads", "product", "2.00"),
		supply("Invitation cards", "product", "0.50"),
		supply("Flyers", "product", "0.15"),
		supply("Party streamers", "product", "0.05"),
		supply("Decorative adhesive tape (washi tape)", "product", "0.20"),
		supply("Paper party bags", "product", "0.25"),
		supply("Name tags with lanyards", "product", "0.75"),
		supply("Presentation folders", "product", "0.50"),

		// Large-format items
		supply("Large poster paper (24x36 inches)", "large_format", "1.00"),
		supply("Rolls of banner paper (36-inch width)", "large_format", "2.50"),

		// Specialty papers
		supply("100 lb cover stock", "specialty", "0.50"),
		supply("80 lb text paper", "specialty", "0.40"),
		supply("250 gsm cardstock", "specialty", "0.30"),
		supply("220 gsm poster paper", "specialty", "0.35"),
	}
}

func supply(name, category, price string) Item {
	return Item{Name: name, Category: category, UnitPrice: decimal.RequireFromString(price)}
}
