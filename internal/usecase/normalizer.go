package usecase

import (
	"fmt"
	"strings"
	"time"

	"quotedraft/internal/domain/companies"
	"quotedraft/internal/domain/entities"
	"quotedraft/internal/domain/lineitems"
)

// Normalization of a completed draft into the rendering collaborator's wire
// schema. Everything the renderer needs is computed here, never at render
// time: defaults, the document number, the recomputed total.

const (
	defaultCustName = "CASH SALE"
	defaultCustCode = "300-C0002"
)

var docTypePrefixes = map[entities.DocType]string{
	entities.DocTypeSale:      "SQ",
	entities.DocTypeRefurbish: "RQ",
	entities.DocTypeRental:    "RN",
}

// DocNo derives the document number: company prefix, type prefix, truck
// segment and a ddmmyy date, dash separated. Slashes in the truck number
// become dashes; a missing truck collapses to MISC.
func DocNo(d *entities.Draft, now time.Time) string {
	prefix := companies.PrefixFor(d.IssuingCompany)
	typePrefix, found := docTypePrefixes[d.DocType]
	if !found {
		typePrefix = companies.DefaultPrefix
	}

	truckPart := "MISC"
	if d.TruckNumber != "" && !entities.IsSkipped(d.TruckNumber) {
		t := strings.ReplaceAll(d.TruckNumber, "/", "-")
		t = strings.ReplaceAll(t, " ", "")
		if t != "" {
			truckPart = t
		}
	}
	return fmt.Sprintf("%s%s-%s-%s", prefix, typePrefix, truckPart, now.Format("020106"))
}

// BuildRenderPayload maps a completed draft onto the renderer schema.
func BuildRenderPayload(d *entities.Draft, now time.Time) entities.RenderPayload {
	RecalculatePhases(d)

	payload := entities.RenderPayload{
		Type:            string(d.DocType),
		CustCode:        defaultCustCode,
		CustName:        defaultCustName,
		CustomerAddress: cleanAddress(d.CustomerAddress),
		CustContact:     blankIfSkipped(d.CustomerContact),
		TruckNumber:     blankIfSkipped(d.TruckNumber),
		Body:            blankIfSkipped(d.BodyType),
		IssuingCompany:  d.IssuingCompany,
		DocNo:           DocNo(d, now),
		Description:     documentDescription(d),
		Salesperson:     blankIfSkipped(d.Salesperson),

		LineItems:         normalizeItems(d.LineItems),
		ServiceLineItems:  normalizeItems(d.ServiceLineItems),
		ExcludedLineItems: normalizeItems(d.ExcludedLineItems),
		PaymentPhases:     d.PaymentPhases,

		TotalAmount: d.TotalAmount(),
		IsProforma:  d.IsProforma,
	}

	if name := blankIfSkipped(d.CustomerName); name != "" {
		payload.CustName = name
	}

	if d.DocType == entities.DocTypeRental {
		payload.RentalPeriodType = string(d.RentalPeriodType)
		payload.ContractPeriod = d.ContractPeriod
		payload.RentalStartDate = d.RentalStartDate
		payload.RentalEndDate = d.RentalEndDate
		payload.RentalDays = d.RentalDays
		if d.SecurityDeposit != nil {
			payload.SecurityDeposit = *d.SecurityDeposit
		}
		payload.SelectedEquipment = d.SelectedEquipment
		payload.MainRentalItem = mainRentalItem(d)
	}

	return payload
}

func mainRentalItem(d *entities.Draft) *entities.LineItem {
	if d.RentalAmount == nil {
		return nil
	}
	desc := "Monthly Rental"
	if d.RentalPeriodType == entities.PeriodDaily {
		desc = fmt.Sprintf("Rental %s to %s (%d Days)", d.RentalStartDate, d.RentalEndDate, d.RentalDays)
	} else if d.ContractPeriod != "" {
		desc = fmt.Sprintf("Monthly Rental (Contract: %s)", d.ContractPeriod)
	}
	return &entities.LineItem{
		Qty:         1,
		Description: desc,
		UnitPrice:   *d.RentalAmount,
		GLCode:      "500-000",
	}
}

func documentDescription(d *entities.Draft) string {
	if d.IsProforma {
		return "Proforma Invoice"
	}
	desc := capitalize(string(d.DocType)) + " Quotation"
	if d.DocType == entities.DocTypeSale && d.LorrySaleDescription != "" {
		desc = d.LorrySaleDescription
	}
	if t := blankIfSkipped(d.TruckNumber); t != "" {
		desc += " for " + t
	}
	return desc
}

// normalizeItems clamps quantities, backfills GL codes and keeps the input
// untouched.
func normalizeItems(items []entities.LineItem) []entities.LineItem {
	out := make([]entities.LineItem, 0, len(items))
	for _, it := range items {
		if it.Qty < 1 {
			it.Qty = 1
		}
		if it.GLCode == "" {
			it.GLCode = lineitems.GLCodeFor(it.Description)
		}
		out = append(out, it)
	}
	return out
}

// cleanAddress drops blank lines and trims each remaining one.
func cleanAddress(addr string) string {
	addr = blankIfSkipped(addr)
	if addr == "" {
		return ""
	}
	var lines []string
	for _, line := range strings.Split(addr, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func blankIfSkipped(v string) string {
	v = strings.TrimSpace(v)
	if entities.IsSkipped(v) {
		return ""
	}
	return v
}
