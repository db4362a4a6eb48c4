// Package memory is an in-process repository implementation. Values handed in
// and out are copies, so callers never share state with the store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
)

// table keeps rows keyed by id and hands out ids in insertion order.
type table[T any] struct {
	mu     sync.RWMutex
	entity string
	nextID int64
	rows   map[int64]T
}

func newTable[T any](entity string) *table[T] {
	return &table[T]{entity: entity, rows: make(map[int64]T)}
}

func (t *table[T]) insert(row T) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextID++
	t.rows[t.nextID] = row
	return t.nextID
}

func (t *table[T]) get(id int64) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, apperrors.NewNotFound(t.entity, nil)
	}
	return row, nil
}

func (t *table[T]) replace(id int64, row T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return apperrors.NewNotFound(t.entity, nil)
	}
	t.rows[id] = row
	return nil
}

func (t *table[T]) remove(id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return apperrors.NewNotFound(t.entity, nil)
	}
	delete(t.rows, id)
	return nil
}

// scan returns matching rows ordered by id. The result is never nil.
func (t *table[T]) scan(match func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := make([]int64, 0, len(t.rows))
	for id, row := range t.rows {
		if match == nil || match(row) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	return out
}

// Store holds every table.
type Store struct {
	doctors        *table[model.Doctor]
	patients       *table[model.Patient]
	appointments   *table[model.Appointment]
	equipment      *table[model.Equipment]
	medicalRecords *table[model.MedicalRecord]
}

func NewStore() *Store {
	return &Store{
		doctors:        newTable[model.Doctor](model.EntityDoctor),
		patients:       newTable[model.Patient](model.EntityPatient),
		appointments:   newTable[model.Appointment](model.EntityAppointment),
		equipment:      newTable[model.Equipment](model.EntityEquipment),
		medicalRecords: newTable[model.MedicalRecord](model.EntityMedicalRecord),
	}
}

// Repositories exposes the store through the repository contract.
func (s *Store) Repositories() repository.Repositories {
	return repository.Repositories{
		Doctors:        &doctorRepository{t: s.doctors},
		Patients:       &patientRepository{t: s.patients},
		Appointments:   &appointmentRepository{t: s.appointments},
		Equipment:      &equipmentRepository{t: s.equipment},
		MedicalRecords: &medicalRecordRepository{t: s.medicalRecords},
		Health:         s,
	}
}

func (s *Store) Ping(context.Context) error {
	return nil
}

func ptrs[T any](rows []T) []*T {
	out := make([]*T, len(rows))
	for i := range rows {
		row := rows[i]
		out[i] = &row
	}
	return out
}

func copyInt64(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
