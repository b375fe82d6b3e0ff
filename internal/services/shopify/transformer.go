package shopify

import "strconv"

func parseAmount(m moneyNode) float64 {
	amount, err := strconv.ParseFloat(m.Amount, 64)
	if err != nil {
		return 0
	}
	return amount
}

func toSummary(node productNode) ProductSummary {
	summary := ProductSummary{
		ID:          node.ID,
		Title:       node.Title,
		Handle:      node.Handle,
		Description: node.Description,
		Vendor:      node.Vendor,
		Category:    node.ProductType,
		Tags:        node.Tags,
		Available:   node.AvailableForSale,
		Price:       parseAmount(node.PriceRange.MinVariantPrice),
		Currency:    node.PriceRange.MinVariantPrice.CurrencyCode,
	}
	if len(node.Images.Edges) > 0 {
		summary.ImageURL = node.Images.Edges[0].Node.URL
	}
	return summary
}

func toCatalogPage(conn productsConnection) *CatalogPage {
	page := &CatalogPage{
		Items: make([]ProductSummary, 0, len(conn.Edges)),
		PageInfo: PageInfo{
			HasNextPage: conn.PageInfo.HasNextPage,
			EndCursor:   conn.PageInfo.EndCursor,
		},
	}
	for _, edge := range conn.Edges {
		page.Items = append(page.Items, toSummary(edge.Node))
	}
	return page
}

func toProductDetail(node *productDetailNode) *ProductDetail {
	detail := &ProductDetail{
		ID:              node.ID,
		Title:           node.Title,
		Handle:          node.Handle,
		Description:     node.Description,
		DescriptionHTML: node.DescriptionHTML,
		Vendor:          node.Vendor,
		Category:        node.ProductType,
		Tags:            node.Tags,
		Available:       node.AvailableForSale,
		MinPrice:        parseAmount(node.PriceRange.MinVariantPrice),
		MaxPrice:        parseAmount(node.PriceRange.MaxVariantPrice),
		Currency:        node.PriceRange.MinVariantPrice.CurrencyCode,
	}

	for _, edge := range node.Images.Edges {
		img := edge.Node
		detail.Images = append(detail.Images, Image{
			ID:      img.ID,
			URL:     img.URL,
			AltText: img.AltText,
			Width:   img.Width,
			Height:  img.Height,
		})
	}

	for _, edge := range node.Variants.Edges {
		v := edge.Node
		variant := Variant{
			ID:        v.ID,
			Title:     v.Title,
			SKU:       v.SKU,
			Available: v.AvailableForSale,
			Quantity:  v.QuantityAvailable,
			Price:     parseAmount(v.Price),
		}
		if v.CompareAtPrice != nil {
			compareAt := parseAmount(*v.CompareAtPrice)
			variant.CompareAtPrice = &compareAt
		}
		for _, opt := range v.SelectedOptions {
			variant.Options = append(variant.Options, SelectedOption{Name: opt.Name, Value: opt.Value})
		}
		if v.Image != nil {
			variant.ImageURL = v.Image.URL
		}
		detail.Variants = append(detail.Variants, variant)
	}

	for _, opt := range node.Options {
		detail.Options = append(detail.Options, Option{
			ID:     opt.ID,
			Name:   opt.Name,
			Values: opt.Values,
		})
	}

	// Unset metafields come back as explicit nulls.
	for _, field := range node.Metafields {
		if field == nil {
			continue
		}
		detail.Metafields = append(detail.Metafields, Metafield{
			Namespace: field.Namespace,
			Key:       field.Key,
			Value:     field.Value,
			Type:      field.Type,
		})
	}

	return detail
}
