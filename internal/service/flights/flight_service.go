package flights

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmtran91/flybooking/internal/domain"
	"github.com/dmtran91/flybooking/internal/flightapi"
	"golang.org/x/sync/errgroup"
)

type FlightUseCase interface {
	Search(ctx context.Context, input SearchInput) (*SearchResult, error)
	Ancillaries(ctx context.Context, airlineCode string) ([]domain.AncillaryOption, error)
}

// Provider is the external flight-search API.
type Provider interface {
	SearchLeg(ctx context.Context, q flightapi.LegQuery) ([]domain.FareOption, error)
	Ancillaries(ctx context.Context, airlineCode string) ([]domain.AncillaryOption, error)
}

type Cache interface {
	GetSearchResults(ctx context.Context, key string) ([]domain.FareOption, error)
	SetSearchResults(ctx context.Context, key string, options []domain.FareOption) error
}

type SearchInput struct {
	DepartureAirport string                 `json:"departure_airport"`
	ArrivalAirport   string                 `json:"arrival_airport"`
	DepartureDate    time.Time              `json:"departure_date"`
	ReturnDate       *time.Time             `json:"return_date,omitempty"`
	Counts           domain.PassengerCounts `json:"counts"`
}

type SearchResult struct {
	Outbound []domain.FareOption `json:"outbound"`
	Inbound  []domain.FareOption `json:"inbound,omitempty"`
}

type FlightService struct {
	provider Provider
	cache    Cache
}

func NewFlightService(provider Provider, cache Cache) *FlightService {
	return &FlightService{provider: provider, cache: cache}
}

// Search fetches both legs concurrently. The legs share failure semantics: if
// either search errors, the whole search fails.
func (s *FlightService) Search(ctx context.Context, input SearchInput) (*SearchResult, error) {
	if input.DepartureAirport == "" || input.ArrivalAirport == "" {
		return nil, errors.New("departure and arrival airports are required")
	}
	if input.DepartureDate.IsZero() {
		return nil, errors.New("departure date is required")
	}
	if input.ReturnDate != nil && input.ReturnDate.Before(input.DepartureDate) {
		return nil, errors.New("return date must not precede departure date")
	}
	if err := input.Counts.Validate(); err != nil {
		return nil, err
	}

	result := &SearchResult{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		options, err := s.searchLeg(gctx, flightapi.LegQuery{
			DepartureAirport: input.DepartureAirport,
			ArrivalAirport:   input.ArrivalAirport,
			Date:             input.DepartureDate,
			Adults:           input.Counts.Adults,
			Children:         input.Counts.Children,
			Infants:          input.Counts.Infants,
		})
		if err != nil {
			return err
		}
		result.Outbound = options
		return nil
	})

	if input.ReturnDate != nil {
		returnDate := *input.ReturnDate
		g.Go(func() error {
			options, err := s.searchLeg(gctx, flightapi.LegQuery{
				DepartureAirport: input.ArrivalAirport,
				ArrivalAirport:   input.DepartureAirport,
				Date:             returnDate,
				Adults:           input.Counts.Adults,
				Children:         input.Counts.Children,
				Infants:          input.Counts.Infants,
			})
			if err != nil {
				return err
			}
			result.Inbound = options
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *FlightService) searchLeg(ctx context.Context, q flightapi.LegQuery) ([]domain.FareOption, error) {
	key := legCacheKey(q)
	if s.cache != nil {
		if cached, err := s.cache.GetSearchResults(ctx, key); err == nil && cached != nil {
			return cached, nil
		}
	}

	options, err := s.provider.SearchLeg(ctx, q)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetSearchResults(ctx, key, options)
	}
	return options, nil
}

func (s *FlightService) Ancillaries(ctx context.Context, airlineCode string) ([]domain.AncillaryOption, error) {
	if airlineCode == "" {
		return nil, errors.New("airline code is required")
	}
	return s.provider.Ancillaries(ctx, airlineCode)
}

func legCacheKey(q flightapi.LegQuery) string {
	return fmt.Sprintf("%s-%s-%s-a%dc%di%d",
		q.DepartureAirport, q.ArrivalAirport, q.Date.Format("2006-01-02"),
		q.Adults, q.Children, q.Infants)
}

var _ FlightUseCase = (*FlightService)(nil)
