package shopify

// ProductSummary is the listing-card projection of a product. Immutable once
// fetched; everything here comes straight from the Storefront API.
type ProductSummary struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Handle      string  `json:"handle"`
	Description string  `json:"description"`
	Vendor      string  `json:"vendor"`
	Category    string  `json:"category"`
	Tags        []string `json:"tags,omitempty"`
	Available   bool    `json:"available"`
	ImageURL    string  `json:"image_url"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
}

type PageInfo struct {
	HasNextPage bool   `json:"has_next_page"`
	EndCursor   string `json:"end_cursor"`
}

// CatalogPage is the result of one paged products query. Never mutated after
// creation.
type CatalogPage struct {
	Items    []ProductSummary `json:"items"`
	PageInfo PageInfo         `json:"page_info"`
}

type Image struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	AltText string `json:"alt_text"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

type Variant struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	SKU            string   `json:"sku"`
	Available      bool     `json:"available"`
	Quantity       int      `json:"quantity"`
	Price          float64  `json:"price"`
	CompareAtPrice *float64 `json:"compare_at_price,omitempty"`
	Options        []SelectedOption `json:"options"`
	ImageURL       string   `json:"image_url"`
}

type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Option struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type Metafield struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
	Type      string `json:"type"`
}

// ProductDetail is the full product record behind a product page.
type ProductDetail struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Handle          string      `json:"handle"`
	Description     string      `json:"description"`
	DescriptionHTML string      `json:"description_html"`
	Vendor          string      `json:"vendor"`
	Category        string      `json:"category"`
	Tags            []string    `json:"tags"`
	Available       bool        `json:"available"`
	Images          []Image     `json:"images"`
	Variants        []Variant   `json:"variants"`
	Options         []Option    `json:"options"`
	MinPrice        float64     `json:"min_price"`
	MaxPrice        float64     `json:"max_price"`
	Currency        string      `json:"currency"`
	Metafields      []Metafield `json:"metafields"`
}

// Wire shapes mirroring the GraphQL edges/nodes structure.

type moneyNode struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type imageNode struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	AltText string `json:"altText"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

type productNode struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Handle           string   `json:"handle"`
	Description      string   `json:"description"`
	Vendor           string   `json:"vendor"`
	ProductType      string   `json:"productType"`
	Tags             []string `json:"tags"`
	AvailableForSale bool     `json:"availableForSale"`
	Images           struct {
		Edges []struct {
			Node imageNode `json:"node"`
		} `json:"edges"`
	} `json:"images"`
	PriceRange struct {
		MinVariantPrice moneyNode `json:"minVariantPrice"`
	} `json:"priceRange"`
}

type productsConnection struct {
	PageInfo struct {
		HasNextPage bool   `json:"hasNextPage"`
		EndCursor   string `json:"endCursor"`
	} `json:"pageInfo"`
	Edges []struct {
		Node productNode `json:"node"`
	} `json:"edges"`
}

type variantNode struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	SKU               string `json:"sku"`
	AvailableForSale  bool   `json:"availableForSale"`
	QuantityAvailable int    `json:"quantityAvailable"`
	Price             moneyNode  `json:"price"`
	CompareAtPrice    *moneyNode `json:"compareAtPrice"`
	SelectedOptions   []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	} `json:"selectedOptions"`
	Image *imageNode `json:"image"`
}

type productDetailNode struct {
	productNode
	DescriptionHTML string `json:"descriptionHtml"`
	Variants        struct {
		Edges []struct {
			Node variantNode `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
	Options []struct {
		ID     string   `json:"id"`
		Name   string   `json:"name"`
		Values []string `json:"values"`
	} `json:"options"`
	PriceRange struct {
		MinVariantPrice moneyNode `json:"minVariantPrice"`
		MaxVariantPrice moneyNode `json:"maxVariantPrice"`
	} `json:"priceRange"`
	Metafields []*struct {
		Namespace string `json:"namespace"`
		Key       string `json:"key"`
		Value     string `json:"value"`
		Type      string `json:"type"`
	} `json:"metafields"`
}
