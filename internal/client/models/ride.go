package models

import "github.com/dmitrijs2005/invoicextractor/internal/timex"

type UserInvoice struct {
	Type     string `json:"type"`
	PublicID string `json:"public_id"`
	Link     string `json:"link"`
}

type Ride struct {
	ID              string         `json:"id"`
	OrderTimestamp  timex.TickTime `json:"order_timestamp"`
	InvoiceLink     string         `json:"invoice_link,omitempty"`
	UserInvoices    []UserInvoice  `json:"user_invoices,omitempty"`
	PriceWithVatStr string         `json:"price_with_vat_str"`
	Stops           []string       `json:"stops"`
}

// Invoice returns the link of the ride's invoice, or "" when it has none.
// Older payloads carry it in invoice_link, newer ones in user_invoices.
func (r Ride) Invoice() string {
	if r.InvoiceLink != "" {
		return r.InvoiceLink
	}
	for _, inv := range r.UserInvoices {
		if inv.Link != "" {
			return inv.Link
		}
	}
	return ""
}

// Pagination describes one page of a listing. Pages are 1-based.
type Pagination struct {
	CurrentPage  int `json:"current_page"`
	ItemsPerPage int `json:"items_per_page"`
	TotalItems   int `json:"total_items"`
	TotalPages   int `json:"total_pages"`
}

type RideList struct {
	List       []Ride     `json:"list"`
	Pagination Pagination `json:"pagination"`
}
