package ticket

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/dmtran91/flybooking/internal/domain"
	"github.com/jung-kurt/gofpdf"
)

// Render produces the e-ticket PDF for a booking. Bookings that are not yet
// confirmed get a PENDING watermark so the sheet cannot pass as a ticket.
func Render(b *domain.Booking) ([]byte, error) {
	if b == nil || b.Outbound == nil {
		return nil, fmt.Errorf("booking has no itinerary")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	if b.Status != domain.BookingStatusConfirmed {
		pdf.SetTextColor(230, 230, 230)
		pdf.SetFont("Helvetica", "B", 55)
		pdf.TransformBegin()
		pdf.TransformRotate(42, 60, 200)
		pdf.Text(60, 200, "PENDING")
		pdf.TransformEnd()
		pdf.SetTextColor(0, 0, 0)
	}

	// Header bar
	pdf.SetFillColor(18, 42, 76)
	pdf.Rect(0, 0, 210, 26, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 7)
	pdf.CellFormat(100, 10, "FlyBooking", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(20, 16)
	pdf.CellFormat(170, 6, "Electronic Ticket Receipt", "", 1, "L", false, 0, "")

	pdf.SetY(34)
	pdf.SetTextColor(0, 0, 0)

	sectionHeader := func(title string) {
		pdf.SetFillColor(18, 42, 76)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, value, "", 1, "L", false, 0, "")
	}

	sectionHeader("Booking")
	row("Order code", b.OrderCode)
	row("Record locator (PNR)", b.PNR)
	row("Status", strings.ToUpper(string(b.Status)))
	row("Contact", fmt.Sprintf("%s  <%s>", b.Contact.FullName, b.Contact.Email))
	pdf.Ln(3)

	legSection := func(title string, f *domain.FareOption) {
		sectionHeader(title)
		row("Flight", fmt.Sprintf("%s %s", f.Airline, f.FlightNumber))
		row("Route", fmt.Sprintf("%s - %s", f.DepartureAirport, f.ArrivalAirport))
		row("Departs", f.DepartureTime.Format("Mon, 02 Jan 2006 15:04"))
		row("Arrives", f.ArrivalTime.Format("Mon, 02 Jan 2006 15:04"))
		if f.CabinClass != "" {
			row("Cabin", f.CabinClass)
		}
		if f.BaggageAllowance != "" {
			row("Baggage", f.BaggageAllowance)
		}
		pdf.Ln(3)
	}

	legSection("Outbound flight", b.Outbound)
	if b.Inbound != nil {
		legSection("Return flight", b.Inbound)
	}

	sectionHeader("Passengers")
	for i, p := range b.Passengers {
		label := fmt.Sprintf("%d. %s", i+1, strings.ToUpper(string(p.Type)))
		row(label, fmt.Sprintf("%s %s", p.LastName, p.FirstName))
	}
	pdf.Ln(3)

	sectionHeader("Payment")
	row("Total amount", formatVND(b.TotalAmountVND))
	row("Payment status", strings.ToUpper(string(b.PaymentStatus)))
	if b.PaymentStatus == domain.PaymentStatusPending && !b.PaymentDeadline.IsZero() {
		row("Pay before", b.PaymentDeadline.Format("Mon, 02 Jan 2006 15:04"))
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.MultiCell(170, 4, fmt.Sprintf("Issued %s. Carry a valid ID matching the passenger names. Check-in counters close 40 minutes before departure for domestic flights and 60 minutes for international flights.", time.Now().Format("02 Jan 2006")), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render ticket: %w", err)
	}
	return buf.Bytes(), nil
}

func formatVND(amount int64) string {
	s := fmt.Sprintf("%d", amount)
	if amount < 0 {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ".")
	if amount < 0 {
		out = "-" + out
	}
	return out + " VND"
}
