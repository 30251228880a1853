package engine_test

import (
	"errors"
	"testing"
	"time"

	"github.com/warp/roster-engine/engine"
)

func TestParsePredicate_RoleCoverage(t *testing.T) {
	pred, err := engine.ParsePredicate(engine.ConstraintBinding{
		Key:       "cover-ushers",
		Predicate: "role_coverage",
		Params:    map[string]string{"role": "usher"},
	})
	if err != nil {
		t.Fatalf("ParsePredicate failed: %v", err)
	}
	rc, ok := pred.(engine.RoleCoverage)
	if !ok || rc.Role != "usher" {
		t.Errorf("expected RoleCoverage{usher}, got %#v", pred)
	}
}

func TestParsePredicate_BlackoutWindowDates(t *testing.T) {
	pred, err := engine.ParsePredicate(engine.ConstraintBinding{
		Key:       "fixed-blackout",
		Predicate: "blackout_window",
		Params:    map[string]string{"dates": "2025-12-25, 2025-12-26"},
	})
	if err != nil {
		t.Fatalf("ParsePredicate failed: %v", err)
	}
	bw := pred.(engine.BlackoutWindow)
	if len(bw.Dates) != 2 {
		t.Fatalf("expected 2 dates, got %v", bw.Dates)
	}
	if !bw.Matches(at(2025, time.December, 25, 10, 0), nil) {
		t.Error("event on a listed date must match")
	}
	if bw.Matches(at(2025, time.December, 27, 10, 0), nil) {
		t.Error("event off the listed dates must not match")
	}
}

func TestParsePredicate_BlackoutWindowBadDate(t *testing.T) {
	_, err := engine.ParsePredicate(engine.ConstraintBinding{
		Key:       "bad-blackout",
		Predicate: "blackout_window",
		Params:    map[string]string{"dates": "yesterday"},
	})
	if err == nil {
		t.Fatal("expected a parse error for a malformed date")
	}
}

func TestParsePredicate_MaxPerWeekRequiresLimit(t *testing.T) {
	_, err := engine.ParsePredicate(engine.ConstraintBinding{
		Key:       "weekly-cap",
		Predicate: "max_per_week",
	})
	if err == nil {
		t.Fatal("expected an error for a missing limit")
	}
}

func TestParsePredicate_UnknownKind(t *testing.T) {
	_, err := engine.ParsePredicate(engine.ConstraintBinding{
		Key:       "mystery",
		Predicate: "quantum_rule",
	})

	var upErr *engine.UnknownPredicateError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected *UnknownPredicateError, got %v", err)
	}
	if upErr.ConstraintKey != "mystery" || upErr.Predicate != "quantum_rule" {
		t.Errorf("error should name the binding, got %+v", upErr)
	}
}

func TestBlackoutWindow_LongWeekendsOnly(t *testing.T) {
	cal := engine.SliceCalendar{
		{Date: date(2025, time.September, 1), Label: "Labor Day", IsLongWeekend: true},
		{Date: date(2025, time.December, 25), Label: "Christmas"},
	}
	bw := engine.BlackoutWindow{LongWeekendsOnly: true}

	if !bw.Matches(at(2025, time.September, 1, 9, 0), cal) {
		t.Error("long-weekend holiday must match")
	}
	if bw.Matches(at(2025, time.December, 25, 9, 0), cal) {
		t.Error("plain holiday must not match when long_weekends_only is set")
	}

	all := engine.BlackoutWindow{}
	if !all.Matches(at(2025, time.December, 25, 9, 0), cal) {
		t.Error("without the flag, any holiday matches")
	}
}

func TestCompileConstraints_AccumulatesErrors(t *testing.T) {
	bindings := []engine.ConstraintBinding{
		{Key: "good", Predicate: "role_coverage"},
		{Key: "bad-1", Predicate: "quantum_rule"},
		{Key: "bad-2", Predicate: "max_per_week"},
	}

	compiled, errs := engine.CompileConstraints(bindings)
	if len(compiled) != 1 || compiled[0].Binding.Key != "good" {
		t.Errorf("expected only the good binding compiled, got %v", compiled)
	}
	if len(errs) != 2 {
		t.Errorf("expected both failures accumulated, got %v", errs)
	}
}
