package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/grantlyhq/grantly/internal/grantly/store"
)

var ErrInvalidDate = errors.New("dates must be formatted yyyy-mm-dd")

// CalendarService is the administrative surface over the restricted-date set.
// Changes become visible to subsequent evaluations; in-flight evaluations may
// still see the previous set.
type CalendarService struct {
	cal store.CalendarStore
	loc *time.Location
}

func NewCalendarService(cal store.CalendarStore, loc *time.Location) *CalendarService {
	if loc == nil {
		loc = time.UTC
	}
	return &CalendarService{cal: cal, loc: loc}
}

func (s *CalendarService) AddDates(ctx context.Context, dates []string) error {
	days, err := s.parseDates(dates)
	if err != nil {
		return err
	}
	return s.cal.AddDates(ctx, days)
}

func (s *CalendarService) RemoveDates(ctx context.Context, dates []string) error {
	days, err := s.parseDates(dates)
	if err != nil {
		return err
	}
	return s.cal.RemoveDates(ctx, days)
}

func (s *CalendarService) ListDates(ctx context.Context) ([]string, error) {
	return s.cal.ListDates(ctx)
}

func (s *CalendarService) parseDates(dates []string) ([]time.Time, error) {
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		t, err := time.ParseInLocation(time.DateOnly, d, s.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, d)
		}
		days = append(days, t)
	}
	return days, nil
}
