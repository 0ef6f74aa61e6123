// Package memory keeps every repository in process memory. It backs
// STORAGE_DRIVER=memory and the service tests.
package memory

import (
	"sort"
	"sync"

	"github.com/sitecrew/sitecrew-backend-go/internal/domain/attendance"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/payment"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/site"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/worker"
)

type Store struct {
	mu         sync.RWMutex
	sites      map[string]site.Site
	workers    map[string]worker.Worker
	attendance map[string]attendance.Record
	payments   map[string]payment.Payment
}

func NewStore() *Store {
	return &Store{
		sites:      make(map[string]site.Site),
		workers:    make(map[string]worker.Worker),
		attendance: make(map[string]attendance.Record),
		payments:   make(map[string]payment.Payment),
	}
}

func (s *Store) Sites() site.SiteRepository {
	return &siteRepository{store: s}
}

func (s *Store) Workers() worker.WorkerRepository {
	return &workerRepository{store: s}
}

func (s *Store) Attendance() attendance.AttendanceRepository {
	return &attendanceRepository{store: s}
}

func (s *Store) Payments() payment.PaymentRepository {
	return &paymentRepository{store: s}
}

func attendanceKey(workerID, siteID, date string) string {
	return siteID + "|" + date + "|" + workerID
}

// withWorker must be called with mu held.
func (s *Store) withWorker(r attendance.Record) attendance.Record {
	if w, ok := s.workers[r.WorkerID]; ok {
		r.Worker = &w
	} else {
		r.Worker = nil
	}
	return r
}

func sortAttendance(records []attendance.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date < records[j].Date
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
}

func sortPaymentsNewestFirst(payments []payment.Payment) {
	sort.SliceStable(payments, func(i, j int) bool {
		if payments[i].Date != payments[j].Date {
			return payments[i].Date > payments[j].Date
		}
		return payments[i].CreatedAt.After(payments[j].CreatedAt)
	})
}
