package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"brandTracker/internal/models/brand"
	"brandTracker/internal/models/task"
	"brandTracker/internal/service"
	"brandTracker/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockTaskLister struct {
	mock.Mock
}

func (m *MockTaskLister) ListTasks(ctx context.Context) service.Result[[]task.Task] {
	return m.Called(ctx).Get(0).(service.Result[[]task.Task])
}

type MockBrandLister struct {
	mock.Mock
}

func (m *MockBrandLister) ListBrands(ctx context.Context, q brand.Query) service.Result[[]brand.Brand] {
	return m.Called(ctx, q).Get(0).(service.Result[[]brand.Brand])
}

type MockSnapshotWriter struct {
	mock.Mock
}

func (m *MockSnapshotWriter) ReplaceTasks(ctx context.Context, tasks []task.Task) error {
	return m.Called(ctx, tasks).Error(0)
}

func (m *MockSnapshotWriter) ReplaceBrands(ctx context.Context, brands []brand.Brand) error {
	return m.Called(ctx, brands).Error(0)
}

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func TestRefreshWorker_Refresh(t *testing.T) {
	tasks := []task.Task{
		{ID: "t1", Status: task.StatusPending, DueDate: task.At(now.Add(-time.Hour))},
		{ID: "t2", Status: task.StatusCompleted, DueDate: task.At(now.Add(-time.Hour))},
		{ID: "t3", Status: task.StatusPending},
	}
	brands := []brand.Brand{{ID: "b1", Name: "Alpha"}}

	tests := []struct {
		name            string
		setupMock       func(*MockTaskLister, *MockBrandLister, *MockSnapshotWriter)
		expectedOverdue int
	}{
		{
			name: "success - both snapshots replaced",
			setupMock: func(tl *MockTaskLister, bl *MockBrandLister, sw *MockSnapshotWriter) {
				tl.On("ListTasks", mock.Anything).Return(service.Result[[]task.Task]{Success: true, Data: tasks})
				bl.On("ListBrands", mock.Anything, brand.Query{}).Return(service.Result[[]brand.Brand]{Success: true, Data: brands})
				sw.On("ReplaceTasks", mock.Anything, tasks).Return(nil)
				sw.On("ReplaceBrands", mock.Anything, brands).Return(nil)
			},
			expectedOverdue: 1,
		},
		{
			name: "tasks failed - only brands replaced",
			setupMock: func(tl *MockTaskLister, bl *MockBrandLister, sw *MockSnapshotWriter) {
				tl.On("ListTasks", mock.Anything).Return(service.Result[[]task.Task]{Data: []task.Task{}, Message: "Не удалось получить задачи"})
				bl.On("ListBrands", mock.Anything, brand.Query{}).Return(service.Result[[]brand.Brand]{Success: true, Data: brands})
				sw.On("ReplaceBrands", mock.Anything, brands).Return(nil)
			},
			expectedOverdue: 0,
		},
		{
			name: "store error - refresh continues",
			setupMock: func(tl *MockTaskLister, bl *MockBrandLister, sw *MockSnapshotWriter) {
				tl.On("ListTasks", mock.Anything).Return(service.Result[[]task.Task]{Success: true, Data: tasks})
				bl.On("ListBrands", mock.Anything, brand.Query{}).Return(service.Result[[]brand.Brand]{Data: []brand.Brand{}, Message: "down"})
				sw.On("ReplaceTasks", mock.Anything, tasks).Return(errors.New("db down"))
			},
			expectedOverdue: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl, bl, sw := new(MockTaskLister), new(MockBrandLister), new(MockSnapshotWriter)
			tt.setupMock(tl, bl, sw)

			w := worker.NewRefreshWorker(tl, bl, sw, nil, func() time.Time { return now })

			assert.Equal(t, tt.expectedOverdue, w.Refresh(context.Background()))

			tl.AssertExpectations(t)
			bl.AssertExpectations(t)
			sw.AssertExpectations(t)
			sw.AssertNotCalled(t, "ReplaceTasks", mock.Anything, []task.Task{})
		})
	}
}

func TestRefreshWorker_StartStops(t *testing.T) {
	refreshed := make(chan struct{}, 1)

	tl, bl, sw := new(MockTaskLister), new(MockBrandLister), new(MockSnapshotWriter)
	tl.On("ListTasks", mock.Anything).Return(service.Result[[]task.Task]{Success: true, Data: []task.Task{}})
	bl.On("ListBrands", mock.Anything, brand.Query{}).Return(service.Result[[]brand.Brand]{Success: true, Data: []brand.Brand{}})
	sw.On("ReplaceTasks", mock.Anything, mock.Anything).Return(nil)
	sw.On("ReplaceBrands", mock.Anything, mock.Anything).Return(nil).Run(func(mock.Arguments) {
		select {
		case refreshed <- struct{}{}:
		default:
		}
	})

	interval := time.Hour
	w := worker.NewRefreshWorker(tl, bl, sw, &interval, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	select {
	case <-refreshed:
	case <-time.After(time.Second):
		t.Fatal("first refresh did not run immediately")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
