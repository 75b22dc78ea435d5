package activityreport

import (
	"sort"
	"time"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/progress"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/calendar"
)

const dateLayout = "2006-01-02"

// Entry is one dated manual report.
type Entry struct {
	Date        string    `json:"date"`
	Note        *string   `json:"note,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}

// BookEntry is one finished book.
type BookEntry struct {
	BookTitle     string    `json:"book_title"`
	PagesRead     int       `json:"pages_read"`
	DateCompleted string    `json:"date_completed"`
	CompletedAt   time.Time `json:"completed_at"`
}

// Record is the counter-based state of one activity in one month. Count
// always equals the number of entries (or book entries).
type Record struct {
	Count       int         `json:"count"`
	Entries     []Entry     `json:"entries,omitempty"`
	BookEntries []BookEntry `json:"book_entries,omitempty"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
}

func (r Record) hasDate(date string) bool {
	for _, e := range r.Entries {
		if e.Date == date {
			return true
		}
	}
	for _, b := range r.BookEntries {
		if b.DateCompleted == date {
			return true
		}
	}
	return false
}

func (r *Record) recount() {
	if len(r.BookEntries) > 0 {
		r.Count = len(r.BookEntries)
		return
	}
	r.Count = len(r.Entries)
}

func (r Record) clone() Record {
	out := r
	out.Entries = append([]Entry(nil), r.Entries...)
	out.BookEntries = append([]BookEntry(nil), r.BookEntries...)
	if r.CompletedAt != nil {
		t := *r.CompletedAt
		out.CompletedAt = &t
	}
	return out
}

// ReportsByMonth maps monthKey -> activityID -> record.
type ReportsByMonth map[string]map[string]Record

// Clone deep-copies the map so pending mutations never alias stored state.
func (m ReportsByMonth) Clone() ReportsByMonth {
	out := make(ReportsByMonth, len(m))
	for month, acts := range m {
		copied := make(map[string]Record, len(acts))
		for id, rec := range acts {
			copied[id] = rec.clone()
		}
		out[month] = copied
	}
	return out
}

func (m ReportsByMonth) record(month, activityID string) Record {
	return m[month][activityID]
}

func (m ReportsByMonth) put(month, activityID string, rec Record) {
	acts, ok := m[month]
	if !ok {
		acts = make(map[string]Record)
		m[month] = acts
	}
	acts[activityID] = rec
}

// AddEntry appends a dated entry. A second entry on the same date is
// rejected with ErrDuplicateDate and leaves the record unchanged.
func (m ReportsByMonth) AddEntry(month, activityID string, entry Entry) error {
	rec := m.record(month, activityID).clone()
	if rec.hasDate(entry.Date) {
		return ErrDuplicateDate
	}
	rec.Entries = append(rec.Entries, entry)
	sort.SliceStable(rec.Entries, func(i, j int) bool { return rec.Entries[i].Date < rec.Entries[j].Date })
	rec.recount()
	completed := entry.CompletedAt
	rec.CompletedAt = &completed
	m.put(month, activityID, rec)
	return nil
}

// AddBookEntry appends a finished book. Book entries share the one-per-date
// rule with dated entries.
func (m ReportsByMonth) AddBookEntry(month, activityID string, entry BookEntry) error {
	rec := m.record(month, activityID).clone()
	if rec.hasDate(entry.DateCompleted) {
		return ErrDuplicateDate
	}
	rec.BookEntries = append(rec.BookEntries, entry)
	sort.SliceStable(rec.BookEntries, func(i, j int) bool {
		return rec.BookEntries[i].DateCompleted < rec.BookEntries[j].DateCompleted
	})
	rec.recount()
	completed := entry.CompletedAt
	rec.CompletedAt = &completed
	m.put(month, activityID, rec)
	return nil
}

// RemoveEntry deletes the entry (or book entry) on date and recounts.
func (m ReportsByMonth) RemoveEntry(month, activityID, date string) error {
	rec, ok := m[month][activityID]
	if !ok {
		return ErrEntryNotFound
	}
	rec = rec.clone()
	removed := false
	entries := rec.Entries[:0]
	for _, e := range rec.Entries {
		if e.Date == date && !removed {
			removed = true
			continue
		}
		entries = append(entries, e)
	}
	books := rec.BookEntries[:0]
	for _, b := range rec.BookEntries {
		if b.DateCompleted == date && !removed {
			removed = true
			continue
		}
		books = append(books, b)
	}
	if !removed {
		return ErrEntryNotFound
	}
	rec.Entries = entries
	rec.BookEntries = books
	rec.recount()
	if rec.Count == 0 {
		rec.CompletedAt = nil
	}
	m.put(month, activityID, rec)
	return nil
}

// Project converts the counter records into progress marks: entries mark
// their date, book entries their completion date, and a record with
// neither marks the day of its CompletedAt.
func (m ReportsByMonth) Project(loc *time.Location) progress.Sheet {
	if loc == nil {
		loc = time.UTC
	}
	sheet := progress.Sheet{}
	for month, acts := range m {
		mk := calendar.MonthKey(month)
		for id, rec := range acts {
			marked := false
			for _, e := range rec.Entries {
				if markDate(sheet, mk, id, e.Date) {
					marked = true
				}
			}
			for _, b := range rec.BookEntries {
				if markDate(sheet, mk, id, b.DateCompleted) {
					marked = true
				}
			}
			if !marked && rec.CompletedAt != nil {
				at := rec.CompletedAt.In(loc)
				if mk.Contains(at) {
					sheet.Mark(month, calendar.DayKey(at.Day()), id)
				}
			}
		}
	}
	return sheet
}

func markDate(sheet progress.Sheet, month calendar.MonthKey, activityID, date string) bool {
	d, err := time.Parse(dateLayout, date)
	if err != nil || !month.Contains(d) {
		return false
	}
	sheet.Mark(month.String(), calendar.DayKey(d.Day()), activityID)
	return true
}

// Document is the stored per-employee report document.
type Document struct {
	EmployeeID string         `json:"employee_id"`
	Reports    ReportsByMonth `json:"reports"`
	Version    int64          `json:"version"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Clone deep-copies the document.
func (d Document) Clone() Document {
	out := d
	out.Reports = d.Reports.Clone()
	return out
}

// WithVersionOf carries the stored version onto a newer in-memory document.
func (d Document) WithVersionOf(stored Document) Document {
	d.Version = stored.Version
	d.UpdatedAt = stored.UpdatedAt
	return d
}
