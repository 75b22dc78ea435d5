package activity

// AutomationTrigger names the input path that feeds an activity's progress.
// Activities without a trigger are checked off day by day.
type AutomationTrigger string

const (
	TriggerNone                AutomationTrigger = ""
	TriggerManualReport        AutomationTrigger = "manual_report"
	TriggerBookReadingReport   AutomationTrigger = "book_reading_report"
	TriggerQuranReadingHistory AutomationTrigger = "quran_reading_history"
	TriggerBookReadingHistory  AutomationTrigger = "book_reading_history"
)

func (t AutomationTrigger) IsValid() bool {
	switch t {
	case TriggerNone, TriggerManualReport, TriggerBookReadingReport,
		TriggerQuranReadingHistory, TriggerBookReadingHistory:
		return true
	default:
		return false
	}
}

// IsReport reports whether the trigger is fed by the counter-based report store.
func (t AutomationTrigger) IsReport() bool {
	return t == TriggerManualReport || t == TriggerBookReadingReport
}

// IsHistory reports whether the trigger is fed by an employee reading history.
func (t AutomationTrigger) IsHistory() bool {
	return t == TriggerQuranReadingHistory || t == TriggerBookReadingHistory
}

// Activity is one trackable item of the mutaba'ah catalog.
type Activity struct {
	ID                string            `json:"id" yaml:"id"`
	Title             string            `json:"title" yaml:"title"`
	Category          string            `json:"category" yaml:"category"`
	MonthlyTarget     int               `json:"monthly_target" yaml:"monthly_target"`
	AutomationTrigger AutomationTrigger `json:"automation_trigger,omitempty" yaml:"automation_trigger"`
}

// IsDailyCadence reports whether the activity is expected (close to) every
// day. Weekly views scale the target of these activities to the bucket size.
func (a Activity) IsDailyCadence() bool {
	return a.MonthlyTarget > 7
}

// IsChecklist reports whether the activity is recorded by the daily checkbox.
func (a Activity) IsChecklist() bool {
	return a.AutomationTrigger == TriggerNone
}
