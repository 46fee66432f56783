package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"advancedstats/chart"
	"advancedstats/database"
)

// TicketStore is the read side of the order database.
type TicketStore interface {
	EventBySlug(ctx context.Context, organizer, slug string) (*database.Event, error)
	OtherEvents(ctx context.Context, organizer string, excludeID int64) ([]database.Event, error)
	HasOrders(ctx context.Context, eventID int64) (bool, error)
	MonthlyTicketCounts(ctx context.Context, eventID int64) ([]database.MonthlyCount, error)
}

const (
	CurrentEventColor    = "#50A167"
	ComparisonEventColor = "#3C1C4A"
)

// SeasonMonths is the sales season in display order.
var SeasonMonths = []time.Month{
	time.October,
	time.November,
	time.December,
	time.January,
	time.February,
	time.March,
	time.April,
	time.May,
}

type MonthTickets struct {
	EventName   string `json:"event_name"`
	MonthName   string `json:"month_name"`
	TicketCount int    `json:"ticket_count"`
}

// FillMissingMonths returns one entry per season month, zero where nothing was sold.
// Months outside the season are dropped.
func FillMissingMonths(counts []database.MonthlyCount, eventName string) []MonthTickets {
	byMonth := make(map[time.Month]int, len(counts))
	for _, c := range counts {
		if c.Month < 1 || c.Month > 12 {
			continue
		}
		byMonth[time.Month(c.Month)] += c.TicketCount
	}

	filled := make([]MonthTickets, 0, len(SeasonMonths))
	for _, m := range SeasonMonths {
		filled = append(filled, MonthTickets{
			EventName:   eventName,
			MonthName:   m.String(),
			TicketCount: byMonth[m],
		})
	}
	return filled
}

// Stats assembles the ticket sales statistics of events.
type Stats struct {
	Store TicketStore
	Cache Cache
}

func NewStats(store TicketStore, cache Cache) *Stats {
	if cache == nil {
		cache = NopCache{}
	}
	return &Stats{Store: store, Cache: cache}
}

// Comparison is the page context of the advanced statistics view.
type Comparison struct {
	Event        *database.Event
	Comparing    *database.Event
	Events       []database.Event
	SelectedSlug string
	HasOrders    bool
	Dataset      chart.Dataset
	Current      []MonthTickets
	Previous     []MonthTickets
}

func (s *Stats) monthlyTickets(ctx context.Context, event *database.Event) ([]MonthTickets, error) {
	counts, err := s.Cache.MonthlyCounts(event.ID)
	if err != nil {
		log.Printf("Cache read failed for %s/%s: %v", event.Organizer, event.Slug, err)
	}
	if counts == nil {
		counts, err = s.Store.MonthlyTicketCounts(ctx, event.ID)
		if err != nil {
			return nil, err
		}
		if err := s.Cache.StoreMonthlyCounts(event.ID, counts); err != nil {
			log.Printf("Cache write failed for %s/%s: %v", event.Organizer, event.Slug, err)
		}
	}
	return FillMissingMonths(counts, event.Name), nil
}

// SelloutComparison collects the monthly ticket sales of an event and, when
// comparingSlug names another event of the same organizer, of that event too.
// An unknown comparing slug means no comparison.
func (s *Stats) SelloutComparison(ctx context.Context, organizer, eventSlug, comparingSlug string) (*Comparison, error) {
	event, err := s.Store.EventBySlug(ctx, organizer, eventSlug)
	if err != nil {
		return nil, err
	}

	cmp := &Comparison{Event: event, SelectedSlug: comparingSlug}

	if comparingSlug != "" {
		cmp.Comparing, err = s.Store.EventBySlug(ctx, event.Organizer, comparingSlug)
		if errors.Is(err, database.ErrEventNotFound) {
			cmp.Comparing = nil
		} else if err != nil {
			return nil, err
		}
	}

	if cmp.Events, err = s.Store.OtherEvents(ctx, event.Organizer, event.ID); err != nil {
		return nil, err
	}
	if cmp.HasOrders, err = s.Store.HasOrders(ctx, event.ID); err != nil {
		return nil, err
	}

	if cmp.Current, err = s.monthlyTickets(ctx, event); err != nil {
		return nil, fmt.Errorf("tickets of %s: %w", event.Slug, err)
	}

	labels := make([]string, 0, len(cmp.Current))
	for _, m := range cmp.Current {
		labels = append(labels, m.MonthName)
	}
	cmp.Dataset = chart.Dataset{
		Labels:   labels,
		Datasets: []chart.Series{toSeries(event.Name, cmp.Current, CurrentEventColor)},
	}

	if cmp.Comparing != nil {
		if cmp.Previous, err = s.monthlyTickets(ctx, cmp.Comparing); err != nil {
			return nil, fmt.Errorf("tickets of %s: %w", cmp.Comparing.Slug, err)
		}
		cmp.Dataset.Datasets = append(cmp.Dataset.Datasets, toSeries(cmp.Comparing.Name, cmp.Previous, ComparisonEventColor))
	}

	return cmp, nil
}

// InvalidateEvent drops the cached statistics of an organizer's event.
func (s *Stats) InvalidateEvent(ctx context.Context, organizer, eventSlug string) error {
	event, err := s.Store.EventBySlug(ctx, organizer, eventSlug)
	if err != nil {
		return err
	}
	return s.Cache.Invalidate(event.ID)
}

func toSeries(label string, months []MonthTickets, color string) chart.Series {
	data := make([]float64, 0, len(months))
	for _, m := range months {
		data = append(data, float64(m.TicketCount))
	}
	return chart.Series{Label: label, Data: data, BackgroundColor: color}
}
