// Package serializers converts entities to and from their JSON wire shape.
//
// Inputs hold only writable attributes as pointers so a PATCH can tell
// "absent" from "zero". Identifiers, timestamps, owners (host, guest,
// reviewer) and booking_status have no input field at all: whatever a client
// sends for them is dropped by the decoder. Outputs never carry the password.
package serializers

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/baharkarakas/stays-backend/internal/models"
	"github.com/baharkarakas/stays-backend/internal/validate"
)

// Mode selects which fields must be present.
type Mode int

const (
	Create  Mode = iota // POST
	Replace             // PUT
	Patch               // PATCH
)

const (
	msgBadUUID       = "Must be a valid UUID."
	msgBadDate       = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	msgBadNumber     = "A valid number is required."
	msgNull          = "This field may not be null."
	msgDecimalPlaces = "Ensure that there are no more than 2 decimal places."
	msgDecimalDigits = models.MsgMoneyDigits
)

func requireAll(mode Mode, errs *validate.Errs, fields map[string]bool) {
	if mode == Patch {
		return
	}
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		errs.Add(validate.Present(name, fields[name]))
	}
}

func checkMoney(errs *validate.Errs, field string, d *decimal.Decimal) {
	if d == nil {
		return
	}
	if !d.Round(2).Equal(*d) {
		errs.Set(field, msgDecimalPlaces)
	}
	if d.Abs().GreaterThanOrEqual(models.MaxMoney) {
		errs.Set(field, msgDecimalDigits)
	}
}

func parseUUID(errs *validate.Errs, field string, s *string) (uuid.UUID, bool) {
	if s == nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		errs.Set(field, msgBadUUID)
		return uuid.Nil, false
	}
	return id, true
}

func parseDate(errs *validate.Errs, field string, s *string) (models.Date, bool) {
	if s == nil {
		return models.Date{}, false
	}
	d, err := models.ParseDate(*s)
	if err != nil {
		errs.Set(field, msgBadDate)
		return models.Date{}, false
	}
	return d, true
}

// parseMoney accepts a JSON number or numeric string and checks it fits
// numeric(10,2). ok is false when the field was absent or unusable.
func parseMoney(errs *validate.Errs, field string, raw json.RawMessage) (decimal.Decimal, bool) {
	if raw == nil {
		return decimal.Decimal{}, false
	}
	if string(raw) == "null" {
		errs.Set(field, msgNull)
		return decimal.Decimal{}, false
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(raw); err != nil {
		errs.Set(field, msgBadNumber)
		return decimal.Decimal{}, false
	}
	checkMoney(errs, field, &d)
	return d, true
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }
