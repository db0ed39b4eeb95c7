package devserver

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/3ricLu/Symptomfy-sub001/pkg/errors"
)

const bcryptCost = 10 // dev server, favor startup time over hardness

// User is a stub account.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	Specialty    string
	DateOfBirth  string
	AdminLevel   string
}

// UserStore is an in-memory user store seeded with one demo account per role.
type UserStore struct {
	mu      sync.RWMutex
	byEmail map[string]*User
	byID    map[string]*User
}

// NewUserStore creates a store seeded with demo users. All demo accounts use
// the password "password123".
func NewUserStore() (*UserStore, error) {
	s := &UserStore{
		byEmail: make(map[string]*User),
		byID:    make(map[string]*User),
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcryptCost)
	if err != nil {
		return nil, err
	}

	seed := []*User{
		{ID: uuid.New().String(), Email: "patient@symptomfy.dev", Name: "Pat Example", Role: "patient", DateOfBirth: "1990-04-12"},
		{ID: uuid.New().String(), Email: "doctor@symptomfy.dev", Name: "Dr. Demo", Role: "doctor", Specialty: "General Practice"},
		{ID: uuid.New().String(), Email: "admin@symptomfy.dev", Name: "Ada Min", Role: "admin", AdminLevel: "super"},
	}
	for _, u := range seed {
		u.PasswordHash = string(hash)
		s.byEmail[u.Email] = u
		s.byID[u.ID] = u
	}

	return s, nil
}

// Authenticate checks credentials and returns the matching user.
func (s *UserStore) Authenticate(email, password string) (*User, error) {
	s.mu.RLock()
	u, ok := s.byEmail[strings.ToLower(email)]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.Unauthorized("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}
	return u, nil
}

// Create registers a new patient account.
func (s *UserStore) Create(email, password, name string) (*User, error) {
	email = strings.ToLower(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return nil, apperrors.AlreadyExists("user", "email", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         "patient",
	}
	s.byEmail[email] = u
	s.byID[u.ID] = u
	return u, nil
}

// GetByID looks up a user by id.
func (s *UserStore) GetByID(id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, apperrors.NotFound("user", id)
	}
	return u, nil
}

// Slot is a bookable appointment slot.
type Slot struct {
	ID         string    `json:"id"`
	DoctorID   string    `json:"doctor_id"`
	DoctorName string    `json:"doctor_name"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	booked     bool
}

// Appointment is a booked slot.
type Appointment struct {
	ID         string    `json:"id"`
	SlotID     string    `json:"slot_id"`
	UserID     string    `json:"-"`
	DoctorName string    `json:"doctor_name"`
	StartsAt   time.Time `json:"starts_at"`
	Status     string    `json:"status"`
}

// AppointmentStore is an in-memory slot/booking store.
type AppointmentStore struct {
	mu           sync.Mutex
	slots        map[string]*Slot
	appointments []*Appointment
}

// NewAppointmentStore creates a store seeded with free slots for the given
// doctor over the next few days.
func NewAppointmentStore(doctorID, doctorName string) *AppointmentStore {
	s := &AppointmentStore{slots: make(map[string]*Slot)}

	start := time.Now().UTC().Truncate(time.Hour).Add(24 * time.Hour)
	for day := 0; day < 3; day++ {
		for hour := 0; hour < 4; hour++ {
			begin := start.Add(time.Duration(day)*24*time.Hour + time.Duration(hour)*time.Hour)
			slot := &Slot{
				ID:         uuid.New().String(),
				DoctorID:   doctorID,
				DoctorName: doctorName,
				StartsAt:   begin,
				EndsAt:     begin.Add(30 * time.Minute),
			}
			s.slots[slot.ID] = slot
		}
	}
	return s
}

// Free returns all unbooked slots.
func (s *AppointmentStore) Free() []*Slot {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*Slot
	for _, slot := range s.slots {
		if !slot.booked {
			out = append(out, slot)
		}
	}
	return out
}

// Book reserves a slot for the user.
func (s *AppointmentStore) Book(userID, slotID string) (*Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.slots[slotID]
	if !ok {
		return nil, apperrors.NotFound("slot", slotID)
	}
	if slot.booked {
		return nil, apperrors.AlreadyExists("appointment", "slot", slotID)
	}

	slot.booked = true
	appt := &Appointment{
		ID:         uuid.New().String(),
		SlotID:     slot.ID,
		UserID:     userID,
		DoctorName: slot.DoctorName,
		StartsAt:   slot.StartsAt,
		Status:     "confirmed",
	}
	s.appointments = append(s.appointments, appt)
	return appt, nil
}

// ForUser returns the user's appointments.
func (s *AppointmentStore) ForUser(userID string) []*Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*Appointment
	for _, appt := range s.appointments {
		if appt.UserID == userID {
			out = append(out, appt)
		}
	}
	return out
}
