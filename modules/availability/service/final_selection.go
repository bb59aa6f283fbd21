package service

import (
	"time"

	"meetpoll-api/modules/availability/entity"
)

type SelectionState int

const (
	SelectionUnset SelectionState = iota
	SelectionSet
)

func (s SelectionState) String() string {
	if s == SelectionSet {
		return "set"
	}
	return "unset"
}

// FinalSelection is the host's pending choice. Selecting while Set overwrites
// the previous slot; Clear always returns to Unset.
type FinalSelection struct {
	slot *entity.SelectedSlot
}

// RestoreFinalSelection rebuilds the state from a stored snapshot (nil means Unset).
func RestoreFinalSelection(slot *entity.SelectedSlot) *FinalSelection {
	if slot == nil {
		return &FinalSelection{}
	}
	cp := *slot
	return &FinalSelection{slot: &cp}
}

func (f *FinalSelection) State() SelectionState {
	if f.slot == nil {
		return SelectionUnset
	}
	return SelectionSet
}

// Select validates the slot and makes it current. The previous slot, if any, is replaced.
func (f *FinalSelection) Select(date entity.DateKey, window entity.TimeWindow, at time.Time) error {
	key, err := entity.ParseDateKey(date.String())
	if err != nil {
		return err
	}
	if !window.Valid() {
		return ErrInvalidRange
	}
	f.slot = &entity.SelectedSlot{Date: key, Window: window, SelectedAt: at}
	return nil
}

func (f *FinalSelection) Clear() {
	f.slot = nil
}

// Current returns the selected slot, with false while Unset.
func (f *FinalSelection) Current() (entity.SelectedSlot, bool) {
	if f.slot == nil {
		return entity.SelectedSlot{}, false
	}
	return *f.slot, true
}
