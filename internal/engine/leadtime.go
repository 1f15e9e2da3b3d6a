package engine

import "github.com/andresuchdata/replenish-engine/internal/domain"

// ResolveLeadTime determines the replenishment lead time for a product, in
// whole days, always >= 0.
//
// Resolution order: the preferred+active supplier link wins; a preferred
// link with no lead time set falls back to 7 days. Without any preferred
// link the product's own default applies. When several preferred links
// exist the one with the lowest lead time is chosen, links with an unset
// lead time last.
func ResolveLeadTime(product domain.Product, links []domain.SupplierLink) int {
	var best *domain.SupplierLink
	for i := range links {
		link := &links[i]
		if !link.IsPreferred || !link.IsActive || link.ProductID != product.ID {
			continue
		}
		if best == nil || preferLink(link, best) {
			best = link
		}
	}

	if best != nil {
		if best.LeadTimeDays != nil && *best.LeadTimeDays >= 0 {
			return *best.LeadTimeDays
		}
		return DefaultLeadTimeDays
	}

	if product.DefaultLeadTimeDays != nil && *product.DefaultLeadTimeDays >= 0 {
		return *product.DefaultLeadTimeDays
	}
	return 0
}

func preferLink(candidate, current *domain.SupplierLink) bool {
	switch {
	case candidate.LeadTimeDays == nil:
		return false
	case current.LeadTimeDays == nil:
		return true
	default:
		return *candidate.LeadTimeDays < *current.LeadTimeDays
	}
}
