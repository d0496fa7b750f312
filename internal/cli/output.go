package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fjod/go_market/internal/api"
	"github.com/fjod/go_market/internal/domain"
)

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func printProducts(page api.Page[domain.Product]) {
	w := newTable()
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tDISCOUNT\tSTOCK\tSHOP\tCATEGORY")
	for _, p := range page.Data {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.0f%%\t%d\t%s\t%s\n",
			p.ID, p.Name, p.DiscountedPrice(), p.Discount, p.Quantity, p.ShopID, p.Category.Name)
	}
	w.Flush()
	printPagination(page.Pagination)
}

func printCart(c domain.Cart, coupon *domain.Coupon, warning string) {
	if c.IsEmpty() {
		fmt.Println("cart is empty")
		return
	}
	w := newTable()
	fmt.Fprintln(w, "PRODUCT\tNAME\tQTY\tUNIT\tTOTAL")
	for _, l := range c.Lines {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%.2f\n",
			l.Product.ID, l.Product.Name, l.Quantity, l.Product.DiscountedPrice(), l.LineTotal())
	}
	w.Flush()
	fmt.Printf("shop: %s  items: %d  subtotal: %.2f  payable: %.2f\n",
		c.ShopID, c.ItemCount(), c.Subtotal(), c.PayableWith(coupon))
	if warning != "" {
		fmt.Printf("warning: %s\n", warning)
	}
}

func printOrders(page api.Page[domain.Order]) {
	w := newTable()
	fmt.Fprintln(w, "ID\tSHOP\tSTATUS\tTOTAL\tCREATED")
	for _, o := range page.Data {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\n",
			o.ID, o.ShopID, o.Status, o.TotalAmount, o.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
	printPagination(page.Pagination)
}

func printPayments(page api.Page[domain.Payment]) {
	w := newTable()
	fmt.Fprintln(w, "ID\tORDER\tAMOUNT\tMETHOD\tSTATUS")
	for _, p := range page.Data {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\n", p.ID, p.OrderID, p.Amount, p.Method, p.Status)
	}
	w.Flush()
	printPagination(page.Pagination)
}

func printUsers(page api.Page[domain.User]) {
	w := newTable()
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tSTATUS")
	for _, u := range page.Data {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role, u.Status)
	}
	w.Flush()
	printPagination(page.Pagination)
}

func printReviews(page api.Page[domain.Review]) {
	w := newTable()
	fmt.Fprintln(w, "ID\tPRODUCT\tRATING\tCOMMENT")
	for _, r := range page.Data {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", r.ID, r.ProductID, r.Rating, r.Comment)
	}
	w.Flush()
	printPagination(page.Pagination)
}

// printPagination renders exactly what the server reported; totals are
// never recomputed client-side.
func printPagination(p api.Pagination) {
	if p.TotalPage == 0 {
		return
	}
	fmt.Printf("page %d of %d (%d items)\n", p.Page, p.TotalPage, p.TotalItem)
}
