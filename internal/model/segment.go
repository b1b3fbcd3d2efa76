// Package model defines the core domain models used throughout the application.
package model

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Selection errors.
var (
	ErrUnknownDonor  = errors.New("unknown donor category")
	ErrUnknownAppeal = errors.New("unknown appeal type")
)

// DonorCategory classifies the donor segment an ask array is built for.
type DonorCategory string

// Donor categories.
const (
	DonorMajor DonorCategory = "Major Donor"
	DonorOTG   DonorCategory = "OTG"
	DonorTBZ   DonorCategory = "TBZ"
)

// DonorCategories returns every donor category in display order.
func DonorCategories() []DonorCategory {
	return []DonorCategory{DonorMajor, DonorOTG, DonorTBZ}
}

// Valid reports whether d is one of the known donor categories.
func (d DonorCategory) Valid() bool {
	switch d {
	case DonorMajor, DonorOTG, DonorTBZ:
		return true
	}
	return false
}

// Slug returns the key used for d in configuration files.
func (d DonorCategory) Slug() string {
	return slugify(string(d))
}

// Next returns the donor category after d, wrapping around.
func (d DonorCategory) Next() DonorCategory {
	all := DonorCategories()
	for i, c := range all {
		if c == d {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// ParseDonorCategory resolves a display name, slug or short alias to a DonorCategory.
func ParseDonorCategory(s string) (DonorCategory, error) {
	switch normalize(s) {
	case "majordonor", "major", "md":
		return DonorMajor, nil
	case "otg":
		return DonorOTG, nil
	case "tbz":
		return DonorTBZ, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDonor, s)
}

// AppealType is the fundraising campaign an ask array is built for.
type AppealType string

// Appeal types.
const (
	AppealHoliday AppealType = "Holiday Appeal"
	AppealPapers  AppealType = "Papers"
	AppealMonthly AppealType = "Monthly"
)

// AppealTypes returns every appeal type in display order.
func AppealTypes() []AppealType {
	return []AppealType{AppealHoliday, AppealPapers, AppealMonthly}
}

// Valid reports whether a is one of the known appeal types.
func (a AppealType) Valid() bool {
	switch a {
	case AppealHoliday, AppealPapers, AppealMonthly:
		return true
	}
	return false
}

// Label is the human readable campaign name.
func (a AppealType) Label() string {
	switch a {
	case AppealPapers:
		return "Papers and Mailouts"
	case AppealMonthly:
		return "Monthly Donations"
	}
	return string(a)
}

// Slug returns the key used for a in configuration files.
func (a AppealType) Slug() string {
	switch a {
	case AppealHoliday:
		return "holiday"
	case AppealPapers:
		return "papers"
	case AppealMonthly:
		return "monthly"
	}
	return slugify(string(a))
}

// Next returns the appeal type after a, wrapping around.
func (a AppealType) Next() AppealType {
	all := AppealTypes()
	for i, c := range all {
		if c == a {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// ParseAppealType resolves a display name, label, slug or short alias to an AppealType.
func ParseAppealType(s string) (AppealType, error) {
	switch normalize(s) {
	case "holidayappeal", "holiday":
		return AppealHoliday, nil
	case "papers", "papersandmailouts", "mailouts":
		return AppealPapers, nil
	case "monthly", "monthlydonations":
		return AppealMonthly, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAppeal, s)
}

// normalize lowercases s and drops everything but letters and digits.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func slugify(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}
