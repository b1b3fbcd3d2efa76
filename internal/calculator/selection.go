package calculator

import (
	"fmt"

	"github.com/Veraticus/askarray/internal/model"
)

// SelectionListener is notified after the donor category or appeal type changes.
type SelectionListener func(donor model.DonorCategory, appeal model.AppealType)

// Selection tracks the chosen donor category and appeal type and pushes
// changes to its subscribers.
type Selection struct {
	donor     model.DonorCategory
	appeal    model.AppealType
	listeners []SelectionListener
}

// NewSelection validates and stores the initial pair.
func NewSelection(donor model.DonorCategory, appeal model.AppealType) (*Selection, error) {
	if !donor.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownDonor, donor)
	}
	if !appeal.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownAppeal, appeal)
	}
	return &Selection{donor: donor, appeal: appeal}, nil
}

// Donor returns the selected donor category.
func (s *Selection) Donor() model.DonorCategory {
	return s.donor
}

// Appeal returns the selected appeal type.
func (s *Selection) Appeal() model.AppealType {
	return s.appeal
}

// Subscribe registers fn to run after every change.
func (s *Selection) Subscribe(fn SelectionListener) {
	s.listeners = append(s.listeners, fn)
}

// SetDonorCategory replaces the donor category. Subscribers run only when the
// value actually changes.
func (s *Selection) SetDonorCategory(donor model.DonorCategory) error {
	if !donor.Valid() {
		return fmt.Errorf("%w: %q", model.ErrUnknownDonor, donor)
	}
	if donor == s.donor {
		return nil
	}
	s.donor = donor
	s.notify()
	return nil
}

// SetAppealType replaces the appeal type. Subscribers run only when the value
// actually changes.
func (s *Selection) SetAppealType(appeal model.AppealType) error {
	if !appeal.Valid() {
		return fmt.Errorf("%w: %q", model.ErrUnknownAppeal, appeal)
	}
	if appeal == s.appeal {
		return nil
	}
	s.appeal = appeal
	s.notify()
	return nil
}

func (s *Selection) notify() {
	for _, fn := range s.listeners {
		fn(s.donor, s.appeal)
	}
}
