package dutykey

import (
	"sort"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
)

// KeyOf returns the key parts of rec, preferring stored columns and falling
// back to decoding CarNumber for rows that only carry the composite string.
func KeyOf(rec models.OutsideDuty) Key {
	if rec.Plate != "" || rec.DutyDate != "" {
		return Key{Plate: rec.Plate, Date: rec.DutyDate, Suffix: rec.Suffix}
	}
	return Decode(rec.CarNumber)
}

// FilterByDate keeps records whose duty date falls inside r.
func FilterByDate(recs []models.OutsideDuty, r domain.DateRange) []models.OutsideDuty {
	out := make([]models.OutsideDuty, 0, len(recs))
	for _, rec := range recs {
		if r.Contains(KeyOf(rec).Date) {
			out = append(out, rec)
		}
	}
	return out
}

// SortNewestFirst orders by duty date desc then created-at desc.
func SortNewestFirst(recs []models.OutsideDuty) {
	sort.SliceStable(recs, func(i, j int) bool {
		di, dj := KeyOf(recs[i]).Date, KeyOf(recs[j]).Date
		if di != dj {
			return di > dj
		}
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
}

// DisplayDate is the duty date, or the creation day when the key has none.
func DisplayDate(rec models.OutsideDuty) string {
	if d := KeyOf(rec).Date; d != "" {
		return d
	}
	if rec.CreatedAt.IsZero() {
		return ""
	}
	return rec.CreatedAt.Format(dateLayout)
}
