package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog(t *testing.T) {
	catalog, err := NewCatalog([]string{"Ibadah", "Tilawah"}, []Activity{
		{ID: "subuh", Title: "Shalat Subuh", Category: "Ibadah", MonthlyTarget: 20},
		{ID: "tilawah", Title: "Tilawah", Category: "Tilawah", MonthlyTarget: 20, AutomationTrigger: TriggerQuranReadingHistory},
		{ID: "dhuha", Title: "Shalat Dhuha", Category: "Ibadah", MonthlyTarget: 4},
	})
	require.NoError(t, err)

	a, err := catalog.Get("tilawah")
	require.NoError(t, err)
	assert.Equal(t, "Tilawah", a.Category)
	assert.True(t, a.AutomationTrigger.IsHistory())

	_, err = catalog.Get("missing")
	assert.ErrorIs(t, err, ErrActivityNotFound)

	groups := catalog.Grouped()
	require.Len(t, groups, 2)
	assert.Equal(t, "Ibadah", groups[0].Category)
	assert.Equal(t, []string{"subuh", "dhuha"}, []string{groups[0].Activities[0].ID, groups[0].Activities[1].ID})
	assert.Len(t, catalog.WithTrigger(TriggerNone), 2)
}

func TestNewCatalogRejectsInvalidDefinitions(t *testing.T) {
	categories := []string{"Ibadah"}
	tests := []struct {
		name       string
		categories []string
		activity   Activity
	}{
		{"no categories", nil, Activity{ID: "a", Title: "A", Category: "Ibadah", MonthlyTarget: 1}},
		{"missing id", categories, Activity{Title: "A", Category: "Ibadah", MonthlyTarget: 1}},
		{"missing title", categories, Activity{ID: "a", Category: "Ibadah", MonthlyTarget: 1}},
		{"unknown category", categories, Activity{ID: "a", Title: "A", Category: "Other", MonthlyTarget: 1}},
		{"zero target", categories, Activity{ID: "a", Title: "A", Category: "Ibadah"}},
		{"unknown trigger", categories, Activity{ID: "a", Title: "A", Category: "Ibadah", MonthlyTarget: 1, AutomationTrigger: "sms"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.categories, []Activity{tt.activity})
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}

	_, err := NewCatalog(categories, []Activity{
		{ID: "a", Title: "A", Category: "Ibadah", MonthlyTarget: 1},
		{ID: "a", Title: "B", Category: "Ibadah", MonthlyTarget: 1},
	})
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestActivityCadence(t *testing.T) {
	assert.True(t, Activity{MonthlyTarget: 8}.IsDailyCadence())
	assert.False(t, Activity{MonthlyTarget: 7}.IsDailyCadence())
	assert.True(t, Activity{}.IsChecklist())
	assert.True(t, TriggerManualReport.IsReport())
	assert.False(t, TriggerManualReport.IsHistory())
}
