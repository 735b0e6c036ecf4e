package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/kerem/schoolhub/internal/app/models"
	"github.com/kerem/schoolhub/internal/app/repositories"
	"github.com/kerem/schoolhub/internal/pkg/apperrors"
	"github.com/kerem/schoolhub/internal/pkg/helpers"
	"github.com/kerem/schoolhub/internal/pkg/money"
)

// In-memory stores backing the service tests. They enforce the same
// uniqueness rules the schema does so duplicate handling can be exercised
// without a database.

type memActivityStore struct {
	entries []*models.ActivityEntry
	failing bool
}

func (s *memActivityStore) Append(_ context.Context, entry *models.ActivityEntry) error {
	if s.failing {
		return errStoreFailure
	}
	entry.ID = int64(len(s.entries) + 1)
	s.entries = append(s.entries, entry)
	return nil
}

func (s *memActivityStore) Latest(_ context.Context, n int) ([]*models.ActivityEntry, error) {
	out := make([]*models.ActivityEntry, 0, n)
	for i := len(s.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.entries[i])
	}
	return out, nil
}

type memBroadcaster struct {
	payloads [][]byte
}

func (b *memBroadcaster) Broadcast(payload []byte) {
	b.payloads = append(b.payloads, payload)
}

type memClassStore struct {
	classes map[int64]*models.Class
	order   []int64
	nextID  int64
}

func newMemClassStore(classes ...*models.Class) *memClassStore {
	s := &memClassStore{classes: make(map[int64]*models.Class)}
	for _, c := range classes {
		s.classes[c.ID] = c
		s.order = append(s.order, c.ID)
		if c.ID > s.nextID {
			s.nextID = c.ID
		}
	}
	return s
}

func (s *memClassStore) Create(_ context.Context, class *models.Class) error {
	for _, c := range s.classes {
		if c.Name == class.Name {
			return apperrors.ErrClassAlreadyExists
		}
	}
	s.nextID++
	class.ID = s.nextID
	s.classes[class.ID] = class
	s.order = append(s.order, class.ID)
	return nil
}

func (s *memClassStore) GetByID(_ context.Context, id int64) (*models.Class, error) {
	class, ok := s.classes[id]
	if !ok {
		return nil, apperrors.ErrClassNotFound
	}
	return class, nil
}

func (s *memClassStore) GetAll(_ context.Context) ([]*models.Class, error) {
	out := make([]*models.Class, 0, len(s.order))
	for _, id := range s.order {
		if c, ok := s.classes[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *memClassStore) UpdateName(_ context.Context, id int64, name string) error {
	class, ok := s.classes[id]
	if !ok {
		return apperrors.ErrClassNotFound
	}
	class.Name = name
	return nil
}

func (s *memClassStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.classes[id]; !ok {
		return apperrors.ErrClassNotFound
	}
	delete(s.classes, id)
	return nil
}

func (s *memClassStore) Count(_ context.Context) (int64, error) {
	return int64(len(s.classes)), nil
}

type memStudentStore struct {
	students map[int64]*models.Student
	order    []int64
	nextID   int64
}

func newMemStudentStore(students ...*models.Student) *memStudentStore {
	s := &memStudentStore{students: make(map[int64]*models.Student)}
	for _, st := range students {
		s.students[st.ID] = st
		s.order = append(s.order, st.ID)
		if st.ID > s.nextID {
			s.nextID = st.ID
		}
	}
	return s
}

func (s *memStudentStore) Create(_ context.Context, student *models.Student) error {
	for _, st := range s.students {
		if st.StudentNo == student.StudentNo {
			return apperrors.ErrStudentNoExists
		}
	}
	s.nextID++
	student.ID = s.nextID
	s.students[student.ID] = student
	s.order = append(s.order, student.ID)
	return nil
}

func (s *memStudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	student, ok := s.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

func (s *memStudentStore) List(_ context.Context, filter repositories.StudentFilter, offset, limit int) ([]*models.Student, int64, error) {
	matched := make([]*models.Student, 0, len(s.order))
	for _, id := range s.order {
		st, ok := s.students[id]
		if !ok {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(st.Name), strings.ToLower(filter.Search)) &&
			!strings.Contains(strings.ToLower(st.StudentNo), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.ClassID != nil && (st.ClassID == nil || *st.ClassID != *filter.ClassID) {
			continue
		}
		matched = append(matched, st)
	}
	if filter.SortBy == "name" {
		sort.SliceStable(matched, func(i, j int) bool {
			if filter.SortDesc {
				return matched[i].Name > matched[j].Name
			}
			return matched[i].Name < matched[j].Name
		})
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (s *memStudentStore) Update(_ context.Context, student *models.Student) error {
	if _, ok := s.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	s.students[student.ID] = student
	return nil
}

func (s *memStudentStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(s.students, id)
	return nil
}

func (s *memStudentStore) Count(_ context.Context) (int64, error) {
	return int64(len(s.students)), nil
}

type memTeacherStore struct {
	teachers map[int64]*models.Teacher
	order    []int64
	nextID   int64
}

func newMemTeacherStore(teachers ...*models.Teacher) *memTeacherStore {
	s := &memTeacherStore{teachers: make(map[int64]*models.Teacher)}
	for _, t := range teachers {
		s.teachers[t.ID] = t
		s.order = append(s.order, t.ID)
		if t.ID > s.nextID {
			s.nextID = t.ID
		}
	}
	return s
}

func (s *memTeacherStore) Create(_ context.Context, teacher *models.Teacher) error {
	for _, t := range s.teachers {
		if t.Email == teacher.Email {
			return apperrors.ErrTeacherEmailExists
		}
	}
	s.nextID++
	teacher.ID = s.nextID
	s.teachers[teacher.ID] = teacher
	s.order = append(s.order, teacher.ID)
	return nil
}

func (s *memTeacherStore) GetByID(_ context.Context, id int64) (*models.Teacher, error) {
	teacher, ok := s.teachers[id]
	if !ok {
		return nil, apperrors.ErrTeacherNotFound
	}
	return teacher, nil
}

func (s *memTeacherStore) List(_ context.Context, filter repositories.TeacherFilter, offset, limit int) ([]*models.Teacher, int64, error) {
	matched := make([]*models.Teacher, 0, len(s.order))
	for _, id := range s.order {
		t, ok := s.teachers[id]
		if !ok {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(filter.Search)) &&
			!strings.Contains(strings.ToLower(t.Subject), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, t)
	}
	if filter.SortBy == "name" {
		sort.SliceStable(matched, func(i, j int) bool {
			if filter.SortDesc {
				return matched[i].Name > matched[j].Name
			}
			return matched[i].Name < matched[j].Name
		})
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (s *memTeacherStore) Update(_ context.Context, teacher *models.Teacher) error {
	if _, ok := s.teachers[teacher.ID]; !ok {
		return apperrors.ErrTeacherNotFound
	}
	s.teachers[teacher.ID] = teacher
	return nil
}

func (s *memTeacherStore) AssignClasses(_ context.Context, teacherID int64, classIDs []int64) error {
	teacher, ok := s.teachers[teacherID]
	if !ok {
		return apperrors.ErrTeacherNotFound
	}
	teacher.ClassIDs = classIDs
	return nil
}

func (s *memTeacherStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.teachers[id]; !ok {
		return apperrors.ErrTeacherNotFound
	}
	delete(s.teachers, id)
	return nil
}

func (s *memTeacherStore) Count(_ context.Context) (int64, error) {
	return int64(len(s.teachers)), nil
}

type memFeeStore struct {
	payments map[int64]*models.FeePayment
	order    []int64
	nextID   int64

	// revenueByClass backs the whole-ledger analytics scope; the store has
	// no class knowledge of its own.
	revenueByClass map[string]money.Amount
	debtRows       []repositories.DebtRow
}

func newMemFeeStore() *memFeeStore {
	return &memFeeStore{payments: make(map[int64]*models.FeePayment)}
}

func (s *memFeeStore) Insert(_ context.Context, payment *models.FeePayment) error {
	for _, p := range s.payments {
		if p.StudentID == payment.StudentID && p.Month == payment.Month {
			return apperrors.ErrDuplicateMonth
		}
		if p.ReceiptNo == payment.ReceiptNo {
			return apperrors.ErrDuplicateReceipt
		}
	}
	s.nextID++
	payment.ID = s.nextID
	stored := *payment
	s.payments[payment.ID] = &stored
	s.order = append(s.order, payment.ID)
	return nil
}

func (s *memFeeStore) GetByID(_ context.Context, id int64) (*models.FeePayment, error) {
	p, ok := s.payments[id]
	if !ok {
		return nil, apperrors.ErrPaymentNotFound
	}
	copied := *p
	return &copied, nil
}

func (s *memFeeStore) Update(_ context.Context, payment *models.FeePayment) error {
	if _, ok := s.payments[payment.ID]; !ok {
		return apperrors.ErrPaymentNotFound
	}
	for _, p := range s.payments {
		if p.ID != payment.ID && p.StudentID == payment.StudentID && p.Month == payment.Month {
			return apperrors.ErrDuplicateMonth
		}
	}
	stored := *payment
	s.payments[payment.ID] = &stored
	return nil
}

func (s *memFeeStore) Delete(_ context.Context, id int64) error {
	delete(s.payments, id)
	return nil
}

func (s *memFeeStore) ListByStudent(_ context.Context, studentID int64) ([]*models.FeePayment, error) {
	out := make([]*models.FeePayment, 0)
	for i := len(s.order) - 1; i >= 0; i-- {
		p, ok := s.payments[s.order[i]]
		if ok && p.StudentID == studentID {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *memFeeStore) ListByStudents(_ context.Context, studentIDs []int64) ([]*models.FeePayment, error) {
	ids := make(map[int64]bool, len(studentIDs))
	for _, id := range studentIDs {
		ids[id] = true
	}
	out := make([]*models.FeePayment, 0)
	for _, id := range s.order {
		p, ok := s.payments[id]
		if ok && ids[p.StudentID] {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *memFeeStore) SumTotal(_ context.Context) (money.Amount, error) {
	var total money.Amount
	for _, p := range s.payments {
		total += p.Amount
	}
	return total, nil
}

func (s *memFeeStore) SumByMonth(_ context.Context, month string) (money.Amount, error) {
	var total money.Amount
	for _, p := range s.payments {
		if p.Month == month {
			total += p.Amount
		}
	}
	return total, nil
}

func (s *memFeeStore) RevenueByClass(_ context.Context) (map[string]money.Amount, error) {
	return s.revenueByClass, nil
}

func (s *memFeeStore) MonthlyTotals(_ context.Context, from time.Time) ([]repositories.MonthTotal, error) {
	return monthlyTotals(s.paymentDates(), from), nil
}

func (s *memFeeStore) paymentDates() []datedAmount {
	out := make([]datedAmount, 0, len(s.order))
	for _, id := range s.order {
		if p, ok := s.payments[id]; ok {
			out = append(out, datedAmount{date: p.PaymentDate, amount: p.Amount})
		}
	}
	return out
}

func (s *memFeeStore) DebtStandings(_ context.Context, _ string) ([]repositories.DebtRow, error) {
	return s.debtRows, nil
}

type memSalaryStore struct {
	payments map[int64]*models.SalaryPayment
	order    []int64
	nextID   int64
}

func newMemSalaryStore() *memSalaryStore {
	return &memSalaryStore{payments: make(map[int64]*models.SalaryPayment)}
}

func (s *memSalaryStore) Insert(_ context.Context, payment *models.SalaryPayment) error {
	for _, p := range s.payments {
		if p.TeacherID == payment.TeacherID && p.Month == payment.Month {
			return apperrors.ErrDuplicateMonth
		}
	}
	s.nextID++
	payment.ID = s.nextID
	stored := *payment
	s.payments[payment.ID] = &stored
	s.order = append(s.order, payment.ID)
	return nil
}

func (s *memSalaryStore) GetByID(_ context.Context, id int64) (*models.SalaryPayment, error) {
	p, ok := s.payments[id]
	if !ok {
		return nil, apperrors.ErrPaymentNotFound
	}
	copied := *p
	return &copied, nil
}

func (s *memSalaryStore) Update(_ context.Context, payment *models.SalaryPayment) error {
	if _, ok := s.payments[payment.ID]; !ok {
		return apperrors.ErrPaymentNotFound
	}
	for _, p := range s.payments {
		if p.ID != payment.ID && p.TeacherID == payment.TeacherID && p.Month == payment.Month {
			return apperrors.ErrDuplicateMonth
		}
	}
	stored := *payment
	s.payments[payment.ID] = &stored
	return nil
}

func (s *memSalaryStore) Delete(_ context.Context, id int64) error {
	delete(s.payments, id)
	return nil
}

func (s *memSalaryStore) ListByTeacher(_ context.Context, teacherID int64) ([]*models.SalaryPayment, error) {
	out := make([]*models.SalaryPayment, 0)
	for i := len(s.order) - 1; i >= 0; i-- {
		p, ok := s.payments[s.order[i]]
		if ok && p.TeacherID == teacherID {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *memSalaryStore) ListByTeachers(_ context.Context, teacherIDs []int64) ([]*models.SalaryPayment, error) {
	ids := make(map[int64]bool, len(teacherIDs))
	for _, id := range teacherIDs {
		ids[id] = true
	}
	out := make([]*models.SalaryPayment, 0)
	for _, id := range s.order {
		p, ok := s.payments[id]
		if ok && ids[p.TeacherID] {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *memSalaryStore) SumTotal(_ context.Context) (money.Amount, error) {
	var total money.Amount
	for _, p := range s.payments {
		total += p.Amount
	}
	return total, nil
}

func (s *memSalaryStore) SumByMonth(_ context.Context, month string) (money.Amount, error) {
	var total money.Amount
	for _, p := range s.payments {
		if p.Month == month {
			total += p.Amount
		}
	}
	return total, nil
}

func (s *memSalaryStore) MonthlyTotals(_ context.Context, from time.Time) ([]repositories.MonthTotal, error) {
	out := make([]datedAmount, 0, len(s.order))
	for _, id := range s.order {
		if p, ok := s.payments[id]; ok {
			out = append(out, datedAmount{date: p.PaymentDate, amount: p.Amount})
		}
	}
	return monthlyTotals(out, from), nil
}

type memAdminStore struct {
	admins map[string]*models.Admin
}

func (s *memAdminStore) GetByUsername(_ context.Context, username string) (*models.Admin, error) {
	admin, ok := s.admins[username]
	if !ok {
		return nil, apperrors.ErrAdminNotFound
	}
	return admin, nil
}

type datedAmount struct {
	date   time.Time
	amount money.Amount
}

func monthlyTotals(payments []datedAmount, from time.Time) []repositories.MonthTotal {
	byKey := make(map[helpers.MonthKey]money.Amount)
	keys := make([]helpers.MonthKey, 0)
	for _, p := range payments {
		if p.date.Before(from) {
			continue
		}
		key := helpers.KeyOf(p.date)
		if _, ok := byKey[key]; !ok {
			keys = append(keys, key)
		}
		byKey[key] += p.amount
	}
	out := make([]repositories.MonthTotal, 0, len(keys))
	for _, key := range keys {
		out = append(out, repositories.MonthTotal{Year: key.Year, Month: key.Month, Total: byKey[key]})
	}
	return out
}

var errStoreFailure = errors.New("store failure")
