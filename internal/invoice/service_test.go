package invoice

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/wecare-vn/invoice-api/internal/dataset"
	"github.com/wecare-vn/invoice-api/internal/order"
	"github.com/wecare-vn/invoice-api/internal/pricing"
	"github.com/wecare-vn/invoice-api/internal/repo"
)

type fakeStore struct {
	mu          sync.Mutex
	header      order.Header
	headerErr   error
	lines       []order.Line
	headerCalls int
	lineCalls   int
	failAtCall  int
	onList      func()
}

func (f *fakeStore) GetHeader(ctx context.Context, id string) (order.Header, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.headerCalls++
	if f.headerErr != nil {
		return order.Header{}, f.headerErr
	}
	return f.header, nil
}

func (f *fakeStore) CountLines(ctx context.Context, orderID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.lines), nil
}

func (f *fakeStore) ListLines(ctx context.Context, orderID string, limit, offset int) ([]order.Line, error) {
	f.mu.Lock()
	f.lineCalls++
	call := f.lineCalls
	hook := f.onList
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	if f.failAtCall > 0 && call >= f.failAtCall {
		return nil, errors.New("connection reset")
	}
	if offset >= len(f.lines) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.lines) {
		end = len(f.lines)
	}
	return f.lines[offset:end], nil
}

func testHeader() order.Header {
	return order.Header{
		ID:              "SO-1001",
		Name:            "SO-1001",
		Customer:        "Công ty TNHH Minh Phát",
		VATStatusCode:   pricing.HeaderVATApplicable,
		PaymentTermCode: 283640002,
		Region:          "Sài Gòn",
	}
}

func testLines(n int) []order.Line {
	lines := make([]order.Line, n)
	for i := range lines {
		lines[i] = order.Line{
			Product:   "Ống nhựa PVC",
			Quantity:  10,
			UnitPrice: 150000,
			Discount1: 0.05,
			VATCode:   pricing.VATCodeTen,
		}
	}
	return lines
}

func newTestService(t *testing.T, store *fakeStore) *Service {
	t.Helper()
	return &Service{
		Store:    store,
		Sessions: dataset.NewSessions(),
		Log:      zerolog.Nop(),
		MaxLines: 10,
		PageSize: 2,
		Delay:    time.Millisecond,
	}
}

func TestServiceRebuildComplete(t *testing.T) {
	store := &fakeStore{header: testHeader(), lines: testLines(3)}
	svc := newTestService(t, store)

	res, err := svc.Build(context.Background(), "SO-1001")
	require.NoError(t, err)
	require.Equal(t, StatusOK, res.Status)
	require.NotNil(t, res.View)
	require.Len(t, res.View.Lines, 3)
	require.Equal(t, "1,425,000 đ", res.View.Lines[0].Subtotal)
	require.Equal(t, "4,275,000 đ", res.View.Subtotal)
	require.True(t, svc.Sessions.Completed("SO-1001", 10))
}

func TestServiceBuildServesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := &fakeStore{header: testHeader(), lines: testLines(3)}
	svc := newTestService(t, store)
	svc.Cache = NewCache(client, time.Minute)

	first, err := svc.Build(context.Background(), "SO-1001")
	require.NoError(t, err)
	require.Equal(t, StatusOK, first.Status)
	headerCalls, lineCalls := store.headerCalls, store.lineCalls

	second, err := svc.Build(context.Background(), "SO-1001")
	require.NoError(t, err)
	require.Equal(t, StatusOK, second.Status)
	require.Equal(t, first.View.GrandTotal, second.View.GrandTotal)
	require.Equal(t, headerCalls, store.headerCalls)
	require.Equal(t, lineCalls, store.lineCalls)
}

func TestServiceRebuildEmptyOrder(t *testing.T) {
	store := &fakeStore{header: testHeader()}
	svc := newTestService(t, store)

	res, err := svc.Build(context.Background(), "SO-1001")
	require.NoError(t, err)
	require.Equal(t, StatusOK, res.Status)
	require.Empty(t, res.View.Lines)
	require.Equal(t, "0 đ", res.View.GrandTotal)
	require.Zero(t, store.lineCalls)
}

func TestServiceRebuildNoData(t *testing.T) {
	store := &fakeStore{headerErr: repo.ErrNotFound}
	svc := newTestService(t, store)

	res, err := svc.Build(context.Background(), "missing")
	require.NoError(t, err)
	require.Equal(t, StatusNoData, res.Status)
	require.Nil(t, res.View)
}

func TestServiceRebuildPartialKeepsLoadedRows(t *testing.T) {
	store := &fakeStore{header: testHeader(), lines: testLines(6), failAtCall: 2}
	svc := newTestService(t, store)

	res, err := svc.Build(context.Background(), "SO-1001")
	require.NoError(t, err)
	require.Equal(t, StatusPartial, res.Status)
	require.NotNil(t, res.View)
	require.Len(t, res.View.Lines, 2)
	require.False(t, svc.Sessions.Completed("SO-1001", 10))
}

func TestServiceRebuildSupersededByNewerSession(t *testing.T) {
	store := &fakeStore{header: testHeader(), lines: testLines(6)}
	svc := newTestService(t, store)

	var once sync.Once
	store.onList = func() {
		once.Do(func() { svc.Sessions.Begin("SO-1001") })
	}

	res, err := svc.Build(context.Background(), "SO-1001")
	require.NoError(t, err)
	require.Equal(t, StatusSuperseded, res.Status)
	require.Nil(t, res.View)
}

func TestServicePreview(t *testing.T) {
	svc := &Service{Log: zerolog.Nop()}
	view := svc.Preview(order.HeaderRecord{
		Name:      "SO-2002",
		Customer:  "Khách lẻ",
		VATStatus: "191920000",
	}, []order.LineRecord{
		{Product: "Thép hộp 40x80", Quantity: "10", UnitPrice: "150000", Discount1: "0.05", VATCode: "191920003"},
	})
	require.Len(t, view.Lines, 1)
	require.Equal(t, "142,500 đ", view.Lines[0].UnitPriceAfterDiscount)
	require.Equal(t, "1,425,000 đ", view.Subtotal)
	require.Equal(t, "142,500 đ", view.VAT)
	require.Equal(t, "1,567,500 đ", view.GrandTotal)
}
