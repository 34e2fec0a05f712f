package suppliers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitItemsTrimsAndDropsEmpties(t *testing.T) {
	items := SplitItems(" Sarees , Kurtis,, Lehengas ")

	assert.Equal(t, []string{"Sarees", "Kurtis", "Lehengas"}, items)
}

func TestSplitItemsEmptyInput(t *testing.T) {
	assert.Empty(t, SplitItems(""))
	assert.Empty(t, SplitItems(" , ,"))
}

func TestParseDueDate(t *testing.T) {
	raw := "2025-06-30"
	parsed, err := parseDueDate(&raw)

	assert.NoError(t, err)
	assert.Equal(t, "2025-06-30", parsed.Format("2006-01-02"))
}

func TestParseDueDateRejectsGarbage(t *testing.T) {
	raw := "30/06/2025"
	_, err := parseDueDate(&raw)

	assert.Error(t, err)
}

func TestParseDueDateNilPassesThrough(t *testing.T) {
	parsed, err := parseDueDate(nil)

	assert.NoError(t, err)
	assert.Nil(t, parsed)
}
