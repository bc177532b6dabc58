package model

import "fmt"

// ParentKind identifies which kind of parent record the wizard is adding
// line items to. The kind drives the child record type, the linkage field
// and the user-facing name of the required price field.
type ParentKind string

// Supported parent record kinds.
const (
	ParentOpportunity ParentKind = "Opportunity"
	ParentQuote       ParentKind = "Quote"
	ParentOrder       ParentKind = "Order"
)

// ParseParentKind validates a raw kind string.
func ParseParentKind(s string) (ParentKind, error) {
	switch k := ParentKind(s); k {
	case ParentOpportunity, ParentQuote, ParentOrder:
		return k, nil
	}
	return "", fmt.Errorf("unknown parent kind %q", s)
}

// ChildType returns the record type created for each selection entry.
func (k ParentKind) ChildType() string {
	switch k {
	case ParentOpportunity:
		return "OpportunityLineItem"
	case ParentQuote:
		return "QuoteLineItem"
	case ParentOrder:
		return "OrderItem"
	}
	return ""
}

// LinkageField returns the field on the child record that references the
// parent.
func (k ParentKind) LinkageField() string {
	switch k {
	case ParentOpportunity:
		return "OpportunityId"
	case ParentQuote:
		return "QuoteId"
	case ParentOrder:
		return "OrderId"
	}
	return ""
}

// PriceLabel returns the user-facing name of the required price field.
// Opportunities and quotes call it Sales Price; orders call it Unit Price.
// The underlying field is UnitPrice either way.
func (k ParentKind) PriceLabel() string {
	if k == ParentOrder {
		return "Unit Price"
	}
	return "Sales Price"
}

func (k ParentKind) String() string {
	return string(k)
}
