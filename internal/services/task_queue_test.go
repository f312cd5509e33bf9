package services

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestTaskTypeReminder_Constant(t *testing.T) {
	if TaskTypeReminder != "reminder:send" {
		t.Errorf("TaskTypeReminder = %q, expected %q", TaskTypeReminder, "reminder:send")
	}
}

func TestReminderTask_Structure(t *testing.T) {
	task := ReminderTask{
		VaccinationID:    1,
		PatientID:        10,
		OrganizationID:   3,
		PatientName:      "Ada Clarke",
		PatientEmail:     "ada@example.com",
		VaccineName:      "MMR",
		DoseNumber:       2,
		DueDate:          "2026-09-15",
		OrganizationName: "Lakeside Clinic",
	}

	if task.VaccinationID != 1 {
		t.Errorf("VaccinationID = %d, expected 1", task.VaccinationID)
	}
	if task.PatientID != 10 {
		t.Errorf("PatientID = %d, expected 10", task.PatientID)
	}
	if task.OrganizationID != 3 {
		t.Errorf("OrganizationID = %d, expected 3", task.OrganizationID)
	}
	if task.PatientEmail != "ada@example.com" {
		t.Errorf("PatientEmail = %q, expected %q", task.PatientEmail, "ada@example.com")
	}
	if task.VaccineName != "MMR" {
		t.Errorf("VaccineName = %q, expected %q", task.VaccineName, "MMR")
	}
	if task.DoseNumber != 2 {
		t.Errorf("DoseNumber = %d, expected 2", task.DoseNumber)
	}
	if task.DueDate != "2026-09-15" {
		t.Errorf("DueDate = %q, expected %q", task.DueDate, "2026-09-15")
	}
}

func TestSyncQueue_New(t *testing.T) {
	queue := NewSyncQueue()
	if queue == nil {
		t.Error("NewSyncQueue should not return nil")
	}
}

func TestSyncQueue_IsAsync(t *testing.T) {
	queue := NewSyncQueue()
	if queue.IsAsync() {
		t.Error("SyncQueue.IsAsync() should return false")
	}
}

func TestSyncQueue_Close(t *testing.T) {
	queue := NewSyncQueue()
	err := queue.Close()
	if err != nil {
		t.Errorf("SyncQueue.Close() should return nil, got %v", err)
	}
}

func TestSyncQueue_EnqueueWithoutProcessor(t *testing.T) {
	queue := NewSyncQueue()
	task := &ReminderTask{
		VaccinationID: 1,
		PatientID:     1,
	}

	err := queue.Enqueue(task)
	if err != nil {
		t.Errorf("Enqueue without processor should not error, got %v", err)
	}
}

func TestSyncQueue_ProcessorRuns(t *testing.T) {
	queue := NewSyncQueue()

	var mu sync.Mutex
	var got *ReminderTask
	done := make(chan struct{})

	queue.SetProcessor(func(ctx context.Context, task *ReminderTask) error {
		mu.Lock()
		got = task
		mu.Unlock()
		close(done)
		return nil
	})

	if err := queue.Enqueue(&ReminderTask{VaccinationID: 7}); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("processor did not run")
	}

	mu.Lock()
	defer mu.Unlock()
	if got == nil || got.VaccinationID != 7 {
		t.Errorf("processor received %+v, expected vaccination 7", got)
	}
}

func TestAsyncQueue_IsAsync(t *testing.T) {
	queue := &AsyncQueue{}
	if !queue.IsAsync() {
		t.Error("AsyncQueue.IsAsync() should return true")
	}
}
