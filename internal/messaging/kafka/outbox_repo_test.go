package kafka_test

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"go-attendance/internal/events"
	"go-attendance/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOutboxEvent(t *testing.T) {
	payload := events.ApprovalDecidedEvent{
		EventType: events.EventTypeApprovalDecided,
		RequestID: "3f1d9f4e-0000-4000-8000-000000000001",
		Decision:  "Approved",
	}

	event, err := kafka.NewOutboxEvent("REQ-1", "leave", payload.RequestID, payload.EventType, events.ApprovalDecidedTopic, payload)
	require.NoError(t, err)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, kafka.OutboxStatusPending, event.Status)
	assert.Equal(t, events.ApprovalDecidedTopic, event.Topic)
	assert.Contains(t, string(event.Payload), `"decision":"Approved"`)

	_, err = kafka.NewOutboxEvent("", "leave", "", payload.EventType, events.ApprovalDecidedTopic, payload)
	assert.EqualError(t, err, "outbox aggregate id is required")
}

func TestOutboxRepository_CreateUsesTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	event := kafka.OutboxEvent{
		ID:            "e1",
		AggregateType: "leave",
		AggregateID:   "a1",
		EventType:     events.EventTypeApprovalDecided,
		Topic:         events.ApprovalDecidedTopic,
		Payload:       []byte(`{}`),
		Status:        kafka.OutboxStatusPending,
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
		WithArgs("e1", "", "leave", "a1", events.EventTypeApprovalDecided, events.ApprovalDecidedTopic, []byte(`{}`), kafka.OutboxStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := kafka.NewOutboxRepository(db).WithTx(tx)
	require.NoError(t, repo.Create(context.Background(), event))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	due := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "request_id", "aggregate_type", "aggregate_id", "event_type", "topic", "payload", "status", "retry_count", "next_retry_at",
	}).AddRow("e1", "REQ-1", "leave", "a1", events.EventTypeApprovalDecided, events.ApprovalDecidedTopic, []byte(`{}`), kafka.OutboxStatusFailed, 2, due)

	mock.ExpectQuery(regexp.QuoteMeta("FROM outbox_events")).
		WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, 10).
		WillReturnRows(rows)

	got, err := kafka.NewOutboxRepository(db).ListPending(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "REQ-1", got[0].RequestID)
	assert.Equal(t, 2, got[0].RetryCount)
	assert.True(t, due.Equal(got[0].NextRetryAt))
}

func TestOutboxRepository_MarkFailedTruncatesReason(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	long := strings.Repeat("x", 600)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs("e1", kafka.OutboxStatusFailed, strings.Repeat("x", 500)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, kafka.NewOutboxRepository(db).MarkFailed(context.Background(), "e1", long))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailedKeepsRunesWhole(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// 499 ASCII bytes then multi-byte runes straddle the 500 limit.
	long := strings.Repeat("x", 499) + strings.Repeat("é", 10)
	want := strings.Repeat("x", 499) + "é"
	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs("e1", kafka.OutboxStatusFailed, want).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, kafka.NewOutboxRepository(db).MarkFailed(context.Background(), "e1", long))
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.True(t, utf8.ValidString(want))
}
