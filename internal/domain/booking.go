package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type Leg string

const (
	LegOutbound Leg = "outbound"
	LegInbound  Leg = "inbound"
)

type Contact struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address,omitempty"`
}

type PassengerType string

const (
	PassengerAdult  PassengerType = "adult"
	PassengerChild  PassengerType = "child"
	PassengerInfant PassengerType = "infant"
)

type Passenger struct {
	Type        PassengerType `json:"type"`
	FirstName   string        `json:"first_name"`
	LastName    string        `json:"last_name"`
	DateOfBirth time.Time     `json:"date_of_birth"`
	IDCard      string        `json:"id_card,omitempty"`
}

// PassengerCounts mirrors the search form: infants travel on an adult's lap
// and are not fare-priced.
type PassengerCounts struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

func (c PassengerCounts) Priced() int {
	return c.Adults + c.Children
}

func (c PassengerCounts) Total() int {
	return c.Adults + c.Children + c.Infants
}

func (c PassengerCounts) Validate() error {
	if c.Adults < 1 {
		return errors.New("at least one adult is required")
	}
	if c.Children < 0 || c.Infants < 0 {
		return errors.New("passenger counts cannot be negative")
	}
	if c.Infants > c.Adults {
		return errors.New("each infant must be accompanied by an adult")
	}
	if c.Adults+c.Children > 9 {
		return errors.New("at most nine seated passengers per booking")
	}
	return nil
}

// AncillarySelection is one extra-baggage choice, bound to a passenger and a
// leg. Prices are VND amounts quoted by the fare provider.
type AncillarySelection struct {
	PassengerIndex int    `json:"passenger_index"`
	Leg            Leg    `json:"leg"`
	OptionID       string `json:"option_id"`
	Name           string `json:"name"`
	PriceVND       int64  `json:"price_vnd"`
}

type PaymentInfo struct {
	Method    string    `json:"method"`
	Reference string    `json:"reference,omitempty"`
	AmountVND int64     `json:"amount_vnd"`
	PaidAt    time.Time `json:"paid_at"`
	Note      string    `json:"note,omitempty"`
}

// Booking is the aggregate root. OrderCode is the public identifier handed to
// the customer, PNR the record code printed on the ticket. Created once at
// checkout confirmation and mutated only through admin actions.
type Booking struct {
	ID                 int64
	OrderCode          string
	PNR                string
	UserID             int64
	Status             BookingStatus
	PaymentStatus      PaymentStatus
	Contact            Contact
	Counts             PassengerCounts
	Passengers         []Passenger
	Outbound           *FareOption
	Inbound            *FareOption
	Ancillaries        []AncillarySelection
	TotalAmountVND     int64
	PaymentInfo        *PaymentInfo
	PaymentDeadline    time.Time
	CancellationReason string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

const (
	infantMaxYears = 2
	childMaxYears  = 12
)

// ValidatePassengers checks each passenger's date of birth against the age
// bracket implied by its type, measured at departure, and enforces the
// carrier's ID-card requirement for adults.
func ValidatePassengers(counts PassengerCounts, passengers []Passenger, departure time.Time, airlineCode string) error {
	if err := counts.Validate(); err != nil {
		return err
	}
	if len(passengers) != counts.Total() {
		return fmt.Errorf("expected %d passengers, got %d", counts.Total(), len(passengers))
	}
	for i, p := range passengers {
		if strings.TrimSpace(p.FirstName) == "" || strings.TrimSpace(p.LastName) == "" {
			return fmt.Errorf("passenger %d: name is required", i+1)
		}
		if p.DateOfBirth.IsZero() {
			return fmt.Errorf("passenger %d: date of birth is required", i+1)
		}
		age := yearsBetween(p.DateOfBirth, departure)
		switch p.Type {
		case PassengerAdult:
			if age < childMaxYears {
				return fmt.Errorf("passenger %d: adults must be at least %d at departure", i+1, childMaxYears)
			}
			if airlineRequiresIDCard(airlineCode) && strings.TrimSpace(p.IDCard) == "" {
				return fmt.Errorf("passenger %d: ID card is required for this carrier", i+1)
			}
		case PassengerChild:
			if age < infantMaxYears || age >= childMaxYears {
				return fmt.Errorf("passenger %d: children must be %d-%d at departure", i+1, infantMaxYears, childMaxYears-1)
			}
		case PassengerInfant:
			if age >= infantMaxYears {
				return fmt.Errorf("passenger %d: infants must be under %d at departure", i+1, infantMaxYears)
			}
		default:
			return fmt.Errorf("passenger %d: unknown type %q", i+1, p.Type)
		}
	}
	return nil
}

// Bamboo Airways checks adult ID cards at issue time.
func airlineRequiresIDCard(code string) bool {
	return code == "QH"
}

func yearsBetween(born, at time.Time) int {
	years := at.Year() - born.Year()
	if at.YearDay() < born.YearDay() {
		years--
	}
	return years
}
