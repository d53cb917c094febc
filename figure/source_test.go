package figure

import (
	"errors"
	"testing"
	"time"

	"github.com/dnldd/tickplot/shared"
	"github.com/peterldowns/testy/assert"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse(shared.DateLayout, value)
	if err != nil {
		t.Fatalf("parsing date %s: %v", value, err)
	}

	return parsed
}

func testRecord(t *testing.T, date string, open float64) shared.Record {
	t.Helper()

	return shared.Record{
		Date:     day(t, date),
		Open:     open,
		High:     open + 2,
		Low:      open - 2,
		Close:    open + 1,
		Volume:   1000,
		AdjClose: open + 1,
	}
}

func testTable(t *testing.T, symbol string) *shared.Table {
	t.Helper()

	return shared.NewTable(symbol, []shared.Record{
		testRecord(t, "2000-03-02", 120),
		testRecord(t, "2000-03-01", 118),
		testRecord(t, "2000-03-03", 125),
	})
}

func TestNewSource(t *testing.T) {
	source, err := NewSource(testTable(t, "AAPL"))
	assert.NoError(t, err)
	assert.Equal(t, source.Symbol(), "AAPL")
	assert.Equal(t, source.Len(), 3)

	// Ensure the wrapped table was normalized.
	dates := source.Dates()
	assert.Equal(t, dates[0].Format(shared.DateLayout), "2000-03-01")
	assert.Equal(t, dates[2].Format(shared.DateLayout), "2000-03-03")

	// Ensure every canonical column is exposed.
	for _, field := range shared.Fields() {
		assert.True(t, source.HasField(field))
	}
	assert.Equal(t, len(source.Fields()), len(shared.Fields()))

	opens, err := source.Column(shared.FieldOpen)
	assert.NoError(t, err)
	assert.Equal(t, opens, []float64{118, 120, 125})
}

func TestNewSourceRejectsBadTables(t *testing.T) {
	table := shared.NewTable("AAPL", []shared.Record{
		testRecord(t, "2000-03-01", 118),
		testRecord(t, "2000-03-01", 120),
	})

	_, err := NewSource(table)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrData))
}

func TestSourceProject(t *testing.T) {
	source, err := NewSource(testTable(t, "AAPL"))
	assert.NoError(t, err)

	dates, values, err := source.Project(shared.FieldDate, shared.FieldOpen)
	assert.NoError(t, err)
	assert.Equal(t, len(dates), len(values))
	assert.Equal(t, values, []float64{118, 120, 125})

	// Ensure only the date field can drive the x axis.
	_, _, err = source.Project(shared.FieldOpen, shared.FieldClose)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrConfig))
}

func TestNewDerivedSource(t *testing.T) {
	dates := []time.Time{day(t, "2000-03-01"), day(t, "2000-03-02")}
	values := []float64{119, 121.5}

	source, err := NewDerivedSource("AAPL SMA(2)", shared.FieldClose, dates, values)
	assert.NoError(t, err)
	assert.Equal(t, source.Symbol(), "AAPL SMA(2)")
	assert.True(t, source.HasField(shared.FieldClose))
	assert.Equal(t, source.HasField(shared.FieldOpen), false)

	_, _, err = source.Project(shared.FieldDate, shared.FieldClose)
	assert.NoError(t, err)

	// Ensure referencing an absent column is a configuration fault.
	_, err = source.Column(shared.FieldOpen)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrConfig))
}

func TestNewDerivedSourceErrors(t *testing.T) {
	dates := []time.Time{day(t, "2000-03-01")}

	// Ensure the date field cannot be the derived column.
	_, err := NewDerivedSource("AAPL SMA(2)", shared.FieldDate, dates, []float64{119})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrConfig))

	// Ensure misaligned dates and values are rejected.
	_, err = NewDerivedSource("AAPL SMA(2)", shared.FieldClose, dates, []float64{119, 121})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrData))
}
