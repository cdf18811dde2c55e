package db

import (
	"context"
	"sync"
	"testing"
	"time"

	"lab_inventory_lending/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApproveThenReturnRoundTrip(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	user := seedUser(t, r, "borrower@example.com")
	reviewer := seedUser(t, r, "reviewer@example.com")
	it := seedItem(t, r, 10, 0, 0, 0) // everything starts available

	req, err := r.SubmitRequest(ctx, user.ID, it.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, req.Status)
	assert.WithinDuration(t, time.Now().Add(models.DefaultLoanPeriod), req.DueDate, time.Minute)

	// submission never reserves stock
	mid, err := r.FindItemByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, mid.Available)
	assert.Equal(t, 0, mid.InUse)

	approved, err := r.ApproveRequest(ctx, req.ID, reviewer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, reviewer.ID, *approved.ReviewedBy)
	assert.NotNil(t, approved.ReviewedAt)

	mid, err = r.FindItemByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, mid.Available)
	assert.Equal(t, 4, mid.InUse)
	assert.True(t, mid.CountsValid())

	returned, err := r.ReturnRequest(ctx, req.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReturned, returned.Status)
	assert.NotNil(t, returned.ReturnedAt)

	// conservation: the approve/return pair round-trips the counters
	after, err := r.FindItemByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, after.Available)
	assert.Equal(t, 0, after.InUse)
	assert.True(t, after.CountsValid())

	// both transitions left an audit trail
	logs, err := r.ListAuditLogs(ctx, ClampPage(1, 20))
	require.NoError(t, err)
	actions := make([]string, 0, len(logs.Data))
	for _, l := range logs.Data {
		actions = append(actions, l.Action)
	}
	assert.Contains(t, actions, models.AuditRequestApproved)
	assert.Contains(t, actions, models.AuditRequestReturned)
}

func TestApproveInsufficientStockLeavesStateUnchanged(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	alice := seedUser(t, r, "alice@example.com")
	bob := seedUser(t, r, "bob@example.com")
	reviewer := seedUser(t, r, "reviewer2@example.com")
	it := seedItem(t, r, 5, 0, 0, 0)

	// both submissions pass the advisory check against available=5
	first, err := r.SubmitRequest(ctx, alice.ID, it.ID, 3)
	require.NoError(t, err)
	second, err := r.SubmitRequest(ctx, bob.ID, it.ID, 3)
	require.NoError(t, err)

	// bob gets approved first and consumes the stock
	_, err = r.ApproveRequest(ctx, second.ID, reviewer.ID)
	require.NoError(t, err)

	// the authoritative re-check at approval rejects alice
	_, err = r.ApproveRequest(ctx, first.ID, reviewer.ID)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	mid, err := r.FindItemByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, mid.Available)
	assert.Equal(t, 3, mid.InUse)
	assert.True(t, mid.CountsValid())

	// alice's request is untouched and can still be approved later
	var pending models.BorrowRequest
	require.NoError(t, r.DB.First(&pending, "id = ?", first.ID).Error)
	assert.Equal(t, models.StatusPending, pending.Status)
	assert.Nil(t, pending.ReviewedAt)
}

func TestConcurrentApprovalsStockFloor(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	reviewer := seedUser(t, r, "reviewer3@example.com")
	it := seedItem(t, r, 3, 0, 0, 0)

	// four pending requests for qty=2 each against available=3: at most one
	// can ever be reserved
	ids := make([]string, 0, 4)
	for i := 0; i < 4; i++ {
		u := seedUser(t, r, "racer"+string(rune('a'+i))+"@example.com")
		req, err := r.SubmitRequest(ctx, u.ID, it.ID, 2)
		require.NoError(t, err)
		ids = append(ids, req.ID)
	}

	var wg sync.WaitGroup
	errs := make([]error, len(ids))
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = r.ApproveRequest(ctx, id, reviewer.ID)
		}(i, id)
	}
	wg.Wait()

	var ok, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		default:
			assert.ErrorIs(t, err, ErrInsufficientStock)
			insufficient++
		}
	}
	assert.Equal(t, 1, ok, "exactly one racing approval may win")
	assert.Equal(t, 3, insufficient)

	after, err := r.FindItemByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, after.Available)
	assert.Equal(t, 2, after.InUse)
	assert.True(t, after.CountsValid())
	assert.GreaterOrEqual(t, after.Available, 0, "available must never go negative")
}

func TestActiveBorrowUniqueness(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	user := seedUser(t, r, "hoarder@example.com")
	reviewer := seedUser(t, r, "reviewer4@example.com")
	it := seedItem(t, r, 5, 0, 0, 0)

	first, err := r.SubmitRequest(ctx, user.ID, it.ID, 1)
	require.NoError(t, err)
	second, err := r.SubmitRequest(ctx, user.ID, it.ID, 1)
	require.NoError(t, err)

	_, err = r.ApproveRequest(ctx, first.ID, reviewer.ID)
	require.NoError(t, err)

	// stock is available, but the same user already holds this item
	_, err = r.ApproveRequest(ctx, second.ID, reviewer.ID)
	assert.ErrorIs(t, err, ErrActiveBorrowExists)

	// after returning the first borrow the second may proceed
	_, err = r.ReturnRequest(ctx, first.ID, user.ID)
	require.NoError(t, err)
	_, err = r.ApproveRequest(ctx, second.ID, reviewer.ID)
	assert.NoError(t, err)
}

func TestApproveNotPending(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	user := seedUser(t, r, "once@example.com")
	reviewer := seedUser(t, r, "reviewer5@example.com")
	it := seedItem(t, r, 5, 0, 0, 0)

	req, err := r.SubmitRequest(ctx, user.ID, it.ID, 2)
	require.NoError(t, err)
	_, err = r.ApproveRequest(ctx, req.ID, reviewer.ID)
	require.NoError(t, err)

	// no double approval, and no rejecting an approved request
	_, err = r.ApproveRequest(ctx, req.ID, reviewer.ID)
	assert.ErrorIs(t, err, ErrRequestNotPending)
	_, err = r.RejectRequest(ctx, req.ID, reviewer.ID)
	assert.ErrorIs(t, err, ErrRequestNotPending)

	// the failed attempts must not have reserved again
	mid, err := r.FindItemByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, mid.Available)
	assert.Equal(t, 2, mid.InUse)
}

func TestReturnNotActive(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	user := seedUser(t, r, "returner@example.com")
	reviewer := seedUser(t, r, "reviewer6@example.com")
	it := seedItem(t, r, 5, 0, 0, 0)

	req, err := r.SubmitRequest(ctx, user.ID, it.ID, 2)
	require.NoError(t, err)

	// never approved
	_, err = r.ReturnRequest(ctx, req.ID, user.ID)
	assert.ErrorIs(t, err, ErrRequestNotActive)

	_, err = r.ApproveRequest(ctx, req.ID, reviewer.ID)
	require.NoError(t, err)
	_, err = r.ReturnRequest(ctx, req.ID, user.ID)
	require.NoError(t, err)

	// no double return
	_, err = r.ReturnRequest(ctx, req.ID, user.ID)
	assert.ErrorIs(t, err, ErrRequestNotActive)

	after, err := r.FindItemByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, after.Available)
	assert.Equal(t, 0, after.InUse)
}

func TestReturnClampsAtTotal(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	user := seedUser(t, r, "clamp@example.com")
	reviewer := seedUser(t, r, "reviewer7@example.com")
	it := seedItem(t, r, 10, 0, 0, 0)

	req, err := r.SubmitRequest(ctx, user.ID, it.ID, 4)
	require.NoError(t, err)
	_, err = r.ApproveRequest(ctx, req.ID, reviewer.ID)
	require.NoError(t, err)

	// simulate an earlier bookkeeping error that already restored the stock
	require.NoError(t, r.DB.Exec(
		"UPDATE "+models.ItemTable+" SET available = 10, in_use = 0 WHERE id = ?", it.ID,
	).Error)

	_, err = r.ReturnRequest(ctx, req.ID, user.ID)
	require.NoError(t, err)

	after, err := r.FindItemByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, after.Available, "available is clamped at total")
	assert.Equal(t, 0, after.InUse, "in_use is floored at zero")
}

func TestRejectKeepsLedgerUntouched(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	user := seedUser(t, r, "rejected@example.com")
	reviewer := seedUser(t, r, "reviewer8@example.com")
	it := seedItem(t, r, 5, 0, 0, 0)

	req, err := r.SubmitRequest(ctx, user.ID, it.ID, 2)
	require.NoError(t, err)

	rejected, err := r.RejectRequest(ctx, req.ID, reviewer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.ReviewedBy)
	assert.Equal(t, reviewer.ID, *rejected.ReviewedBy)

	after, err := r.FindItemByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, after.Available)
	assert.Equal(t, 0, after.InUse)
}

func TestSubmitRequestValidation(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	user := seedUser(t, r, "submitter@example.com")
	it := seedItem(t, r, 5, 2, 3, 0)

	_, err := r.SubmitRequest(ctx, user.ID, it.ID, 0)
	assert.True(t, IsValidationError(err))

	_, err = r.SubmitRequest(ctx, user.ID, "3b58e0cb-0000-0000-0000-000000000000", 1)
	assert.ErrorIs(t, err, ErrNotFound)

	// advisory check against current stock
	_, err = r.SubmitRequest(ctx, user.ID, it.ID, 3)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestListMyRequestsNewestFirst(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	user := seedUser(t, r, "lister@example.com")
	other := seedUser(t, r, "other@example.com")
	it := seedItem(t, r, 10, 0, 0, 0)

	var last *models.BorrowRequest
	for i := 0; i < 3; i++ {
		req, err := r.SubmitRequest(ctx, user.ID, it.ID, 1)
		require.NoError(t, err)
		last = req
	}
	_, err := r.SubmitRequest(ctx, other.ID, it.ID, 1)
	require.NoError(t, err)

	page, err := r.ListMyRequests(ctx, user.ID, ClampPage(1, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalItems, "only the caller's own requests")
	assert.Equal(t, int64(2), page.TotalPages)
	require.Len(t, page.Data, 2)
	assert.Equal(t, last.ID, page.Data[0].ID, "newest first")
}
