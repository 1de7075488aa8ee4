package order

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wichananm65/fresh-meat-hub/internal/apperr"
	"github.com/wichananm65/fresh-meat-hub/internal/logger"
	"github.com/wichananm65/fresh-meat-hub/internal/pincode"
)

type allowList map[string]bool

func (a allowList) IsServiceable(pincode string) bool { return a[pincode] }

var testPincodes = allowList{"144411": true, "144401": true, "144402": true}

type countingRecorder struct {
	mu          sync.Mutex
	placed      int
	auditFailed int
}

func (r *countingRecorder) OrderPlaced() {
	r.mu.Lock()
	r.placed++
	r.mu.Unlock()
}

func (r *countingRecorder) AuditFailed() {
	r.mu.Lock()
	r.auditFailed++
	r.mu.Unlock()
}

type failingAudit struct{}

func (failingAudit) Append(Order) error { return errors.New("disk full") }

func validInput() CreateInput {
	return CreateInput{
		CustomerName: "Asha",
		Phone:        "9876543210",
		Address:      "12 Market Road",
		Pincode:      "144411",
		Items: []Item{
			{ProductID: "p1", ProductName: "Chicken Breast", Quantity: 1, Price: 250},
			{ProductID: "p2", ProductName: "Mutton Curry Cut", Quantity: 1, Price: 250, Weight: "1kg"},
		},
		TotalPrice: 500,
	}
}

func TestCreatePlacesPendingOrderAndAudits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "orders.txt")
	rec := &countingRecorder{}
	repo := NewInMemoryRepository()
	svc := NewService(repo, testPincodes,
		WithAuditLog(NewFileAuditLog(path)),
		WithRecorder(rec),
		WithLogger(logger.Discard()),
	)

	o, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotEmpty(t, o.ID)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, DefaultPaymentMode, o.PaymentMode)
	assert.Equal(t, 500.0, o.TotalPrice)
	require.Len(t, o.Items, 2)
	assert.Equal(t, "500g", o.Items[0].Weight)
	assert.Equal(t, "1kg", o.Items[1].Weight)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "Order ID: "+o.ID))
	assert.Contains(t, string(data), "Items: Chicken Breast x1, Mutton Curry Cut x1")
	assert.Contains(t, string(data), "Total: ₹500")
	assert.Equal(t, 1, rec.placed)

	stored, err := repo.GetByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, stored.ID)
}

func TestCreateRejectsUnserviceablePincode(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo, testPincodes, WithLogger(logger.Discard()))

	in := validInput()
	in.Pincode = "110001"
	in.CustomerName = ""

	_, err := svc.Create(context.Background(), in)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Equal(t, "Pincode not serviceable", apperr.Detail(err))

	n, _ := repo.Count(context.Background(), "")
	assert.Zero(t, n)
}

func TestCreateMatchesPincodeExactly(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo, pincode.NewChecker([]string{"144411"}), WithLogger(logger.Discard()))

	in := validInput()
	in.Pincode = " 144411 "
	_, err := svc.Create(context.Background(), in)
	assert.Equal(t, "Pincode not serviceable", apperr.Detail(err))

	in.Pincode = "144411"
	o, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "144411", o.Pincode)
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), testPincodes, WithLogger(logger.Discard()))

	cases := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"customer", func(in *CreateInput) { in.CustomerName = " " }},
		{"phone", func(in *CreateInput) { in.Phone = "" }},
		{"address", func(in *CreateInput) { in.Address = "" }},
		{"no items", func(in *CreateInput) { in.Items = nil }},
		{"zero quantity", func(in *CreateInput) { in.Items[0].Quantity = 0 }},
		{"negative price", func(in *CreateInput) { in.Items[1].Price = -1 }},
		{"missing product id", func(in *CreateInput) { in.Items[0].ProductID = "" }},
		{"negative total", func(in *CreateInput) { in.TotalPrice = -5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, err := svc.Create(context.Background(), in)
			assert.True(t, apperr.Is(err, apperr.KindValidation), "got %v", err)
		})
	}
}

func TestCreateKeepsCallerTotal(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), testPincodes, WithLogger(logger.Discard()))

	in := validInput()
	in.TotalPrice = 450
	o, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 450.0, o.TotalPrice)
	assert.Equal(t, 500.0, o.ItemsTotal())
}

func TestAuditFailureDoesNotFailOrder(t *testing.T) {
	rec := &countingRecorder{}
	repo := NewInMemoryRepository()
	svc := NewService(repo, testPincodes,
		WithAuditLog(failingAudit{}),
		WithRecorder(rec),
		WithLogger(logger.Discard()),
	)

	o, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, o.ID)
	assert.Equal(t, 1, rec.auditFailed)
	assert.Equal(t, 1, rec.placed)

	n, _ := repo.Count(context.Background(), "")
	assert.EqualValues(t, 1, n)
}

func TestItemsAreSnapshots(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), testPincodes, WithLogger(logger.Discard()))

	in := validInput()
	o, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	in.Items[0].ProductName = "renamed"
	got, err := svc.Get(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Chicken Breast", got.Items[0].ProductName)
}

func TestUpdateStatus(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), testPincodes, WithLogger(logger.Discard()))
	ctx := context.Background()

	o, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, o.ID, "PACKED")
	require.NoError(t, err)
	assert.Equal(t, StatusPacked, updated.Status)

	_, err = svc.UpdateStatus(ctx, o.ID, "packed")
	require.Error(t, err)
	assert.Equal(t, "Invalid status. Must be one of: PENDING, PACKED, OUT FOR DELIVERY, COMPLETED", apperr.Detail(err))

	got, _ := svc.Get(ctx, o.ID)
	assert.Equal(t, StatusPacked, got.Status, "invalid update must leave status unchanged")

	// no transition graph: moving backwards is allowed
	updated, err = svc.UpdateStatus(ctx, o.ID, "PENDING")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, updated.Status)

	_, err = svc.UpdateStatus(ctx, "missing", "COMPLETED")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestListNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tick := 0
	clock := func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	svc := NewService(NewInMemoryRepository(), testPincodes, WithClock(clock), WithLogger(logger.Discard()))
	ctx := context.Background()

	first, _ := svc.Create(ctx, validInput())
	second, _ := svc.Create(ctx, validInput())

	orders, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}

func TestRevenueCountsCompletedOnly(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo, testPincodes, WithLogger(logger.Discard()))
	ctx := context.Background()

	in := validInput()
	in.TotalPrice = 300
	done, _ := svc.Create(ctx, in)
	_, err := svc.UpdateStatus(ctx, done.ID, "COMPLETED")
	require.NoError(t, err)

	in.TotalPrice = 200
	_, _ = svc.Create(ctx, in)

	rev, err := svc.Revenue(ctx, StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, 300.0, rev)

	pending, _ := svc.Count(ctx, StatusPending)
	all, _ := svc.Count(ctx, "")
	assert.EqualValues(t, 1, pending)
	assert.EqualValues(t, 2, all)
}
