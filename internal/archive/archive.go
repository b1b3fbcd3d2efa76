// Package archive reads and writes worksheets as portable YAML documents.
package archive

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/askarray/internal/model"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Version is the document format written by Encode.
const Version = 1

// ErrUnsupportedVersion is returned for documents from a newer format.
var ErrUnsupportedVersion = errors.New("unsupported worksheet document version")

// Document is the on-disk form of a worksheet. Amounts are strings so they
// survive the round trip without float noise.
type Document struct {
	Name    string         `yaml:"name"`
	Donor   string         `yaml:"donor"`
	Appeal  string         `yaml:"appeal"`
	Bands   []BandDocument `yaml:"bands"`
	Version int            `yaml:"version"`
}

// BandDocument is the on-disk form of one band setting.
type BandDocument struct {
	Title        string   `yaml:"title"`
	Input        string   `yaml:"input"`
	Rounding     string   `yaml:"rounding,omitempty"`
	Coefficients []string `yaml:"coefficients,flow"`
	Percents     []string `yaml:"percents,flow,omitempty"`
	Collapsed    bool     `yaml:"collapsed,omitempty"`
}

// FromWorksheet converts a worksheet to its document form.
func FromWorksheet(ws *model.Worksheet) Document {
	doc := Document{
		Version: Version,
		Name:    ws.Name,
		Donor:   string(ws.Donor),
		Appeal:  string(ws.Appeal),
		Bands:   make([]BandDocument, 0, len(ws.Bands)),
	}

	for _, b := range ws.Bands {
		bd := BandDocument{
			Title:        b.Title,
			Input:        b.InputValue.String(),
			Coefficients: make([]string, model.SlotCount),
			Collapsed:    b.Collapsed,
		}
		if b.Rounding.Active() {
			bd.Rounding = string(b.Rounding)
		}
		adjusted := false
		for i := 0; i < model.SlotCount; i++ {
			bd.Coefficients[i] = b.Coefficients[i].String()
			adjusted = adjusted || !b.Percents[i].IsZero()
		}
		if adjusted {
			bd.Percents = make([]string, model.SlotCount)
			for i := 0; i < model.SlotCount; i++ {
				bd.Percents[i] = b.Percents[i].String()
			}
		}
		doc.Bands = append(doc.Bands, bd)
	}

	return doc
}

// Worksheet converts the document back, validating every field.
func (d Document) Worksheet() (*model.Worksheet, error) {
	if d.Version > Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, d.Version)
	}

	donor, err := model.ParseDonorCategory(d.Donor)
	if err != nil {
		return nil, err
	}
	appeal, err := model.ParseAppealType(d.Appeal)
	if err != nil {
		return nil, err
	}

	ws := &model.Worksheet{
		Name:   d.Name,
		Donor:  donor,
		Appeal: appeal,
		Bands:  make([]model.BandSetting, 0, len(d.Bands)),
	}

	for _, bd := range d.Bands {
		b, err := bd.setting()
		if err != nil {
			return nil, fmt.Errorf("band %q: %w", bd.Title, err)
		}
		ws.Bands = append(ws.Bands, b)
	}

	return ws, nil
}

func (bd BandDocument) setting() (model.BandSetting, error) {
	b := model.BandSetting{
		Title:     bd.Title,
		Collapsed: bd.Collapsed,
	}

	var err error
	if b.Rounding, err = model.ParseRoundingMode(bd.Rounding); err != nil {
		return b, err
	}
	if b.InputValue, err = decimal.NewFromString(bd.Input); err != nil {
		return b, fmt.Errorf("input: %w", err)
	}

	if len(bd.Coefficients) != model.SlotCount {
		return b, fmt.Errorf("expected %d coefficients, got %d", model.SlotCount, len(bd.Coefficients))
	}
	for i, s := range bd.Coefficients {
		if b.Coefficients[i], err = decimal.NewFromString(s); err != nil {
			return b, fmt.Errorf("coefficient %d: %w", i+1, err)
		}
	}

	switch len(bd.Percents) {
	case 0:
	case model.SlotCount:
		for i, s := range bd.Percents {
			if b.Percents[i], err = decimal.NewFromString(s); err != nil {
				return b, fmt.Errorf("percent %d: %w", i+1, err)
			}
		}
	default:
		return b, fmt.Errorf("expected %d percents, got %d", model.SlotCount, len(bd.Percents))
	}

	return b, nil
}

// Encode writes ws as YAML.
func Encode(w io.Writer, ws *model.Worksheet) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(FromWorksheet(ws)); err != nil {
		return fmt.Errorf("encode worksheet: %w", err)
	}
	return enc.Close()
}

// Decode reads a YAML worksheet document.
func Decode(r io.Reader) (*model.Worksheet, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse worksheet: %w", err)
	}
	return doc.Worksheet()
}

// Save writes ws to path.
func Save(path string, ws *model.Worksheet) error {
	f, err := os.Create(path) // #nosec G304
	if err != nil {
		return fmt.Errorf("write worksheet: %w", err)
	}
	if err := Encode(f, ws); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Load reads a worksheet from path.
func Load(path string) (*model.Worksheet, error) {
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("read worksheet: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}
