package consumer

import (
	"context"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/events"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/kpi"
)

func TestInvalidateRemovesEveryCachedPeriod(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	event := events.TimeRecordEvent{
		EventType:  events.TimeRecordUpserted,
		TenantID:   "t-1",
		EmployeeID: "e-1",
	}
	prefix := kpi.KeyPrefix(event.TenantID, event.EmployeeID)
	keys := []string{prefix + "2025-07-01:2025-07-31", prefix + "2025-06-01:2025-06-30"}

	mock.ExpectScan(0, prefix+"*", invalidateScanCount).SetVal(keys, 0)
	mock.ExpectDel(keys[0]).SetVal(1)
	mock.ExpectDel(keys[1]).SetVal(1)

	require.NoError(t, invalidateKPICache(context.Background(), rdb, event))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidateEmptyScanIsNoop(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	event := events.TimeRecordEvent{TenantID: "t-1", EmployeeID: "e-2"}
	mock.ExpectScan(0, kpi.KeyPrefix(event.TenantID, event.EmployeeID)+"*", invalidateScanCount).SetVal(nil, 0)

	require.NoError(t, invalidateKPICache(context.Background(), rdb, event))
	assert.NoError(t, mock.ExpectationsWereMet())
}
