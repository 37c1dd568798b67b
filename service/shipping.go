package service

import (
	"bytes"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	models "pos-checkout/model"
)

var gramsPerKg = decimal.NewFromInt(1000)

// ShippingService prints shipment notices. It neither validates nor mutates.
type ShippingService struct {
	out io.Writer
}

func NewShippingService(out io.Writer) *ShippingService {
	return &ShippingService{out: out}
}

// Ship writes the notice for manifest and returns what it wrote.
func (s *ShippingService) Ship(manifest []models.ManifestLine) (models.ShipmentNotice, error) {
	notice := models.ShipmentNotice{
		Lines:         make([]models.ShipmentLine, 0, len(manifest)),
		TotalWeightKg: decimal.Zero,
	}

	var buf bytes.Buffer
	buf.WriteString("\n** Shipment notice **\n")
	for _, l := range manifest {
		kg := l.WeightKg()
		grams := kg.Mul(gramsPerKg).Round(0)
		notice.TotalWeightKg = notice.TotalWeightKg.Add(kg)
		notice.Lines = append(notice.Lines, models.ShipmentLine{Name: l.Item.Name(), Quantity: l.Quantity, Grams: grams})
		fmt.Fprintf(&buf, "%dx %s\t%sg\n", l.Quantity, l.Item.Name(), grams.StringFixed(0))
	}
	fmt.Fprintf(&buf, "Total package weight %skg\n", notice.TotalWeightKg.StringFixed(1))

	_, err := s.out.Write(buf.Bytes())
	return notice, err
}
