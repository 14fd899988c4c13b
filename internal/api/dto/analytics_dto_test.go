package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/interaction-analytics/internal/domain"
)

func validRecord() IngestRecord {
	return IngestRecord{
		ID:           "r1",
		Date:         "2024-04-01",
		Hour:         10,
		Sector:       "RETAIL",
		Channel:      "CALL_CENTER",
		ProductGroup: "CARDS",
		Tags:         []string{"TECH_ISSUE", "TECH_ISSUE", "CHURN_RISK"},
		Process:      "complaint",
		Status:       "received",
	}
}

func TestIngestRecordEvent(t *testing.T) {
	event, ok := validRecord().Event()
	require.True(t, ok)
	assert.Equal(t, "r1", event.ID)
	assert.Equal(t, domain.ChannelCallCenter, event.Channel)
	// Duplicate tags collapse into the set.
	assert.Equal(t, 2, event.Tags.Len())
}

func TestIngestRecordDropsBadDate(t *testing.T) {
	record := validRecord()
	record.Date = "01.04.2024"
	_, ok := record.Event()
	assert.False(t, ok)
}

func TestIngestRecordDropsUnknownEnum(t *testing.T) {
	record := validRecord()
	record.Channel = "PIGEON"
	_, ok := record.Event()
	assert.False(t, ok)

	record = validRecord()
	record.Tags = []string{"NOT_A_TAG"}
	_, ok = record.Event()
	assert.False(t, ok)
}

func TestIngestRecordRejectsAllSentinel(t *testing.T) {
	record := validRecord()
	record.ProductGroup = "ALL"
	_, ok := record.Event()
	assert.False(t, ok)
}

func TestIngestRecordDropsOutOfRangeHour(t *testing.T) {
	record := validRecord()
	record.Hour = 24
	_, ok := record.Event()
	assert.False(t, ok)
}
