package model

import (
	"context"
	"slices"
)

// DatasetStore loads and saves the whole persisted document.
type DatasetStore interface {
	Load(ctx context.Context) (Dataset, error)
	Save(ctx context.Context, dataset Dataset) error
}

// Dataset is the entire durable state: every account keyed by username.
type Dataset struct {
	Users map[string]*Account `json:"users"`
}

// NewDataset returns an empty dataset ready to be persisted.
func NewDataset() Dataset {
	return Dataset{Users: map[string]*Account{}}
}

// Normalize replaces nil collections left over by decoding so that the
// document always serializes as {"users": {...}} with "students": [] arrays.
func (d *Dataset) Normalize() {
	if d.Users == nil {
		d.Users = map[string]*Account{}
	}
	for name, account := range d.Users {
		if account == nil {
			delete(d.Users, name)
			continue
		}
		if account.Students == nil {
			account.Students = []Student{}
		}
	}
}

// Account returns the account registered under username.
func (d Dataset) Account(username string) (*Account, bool) {
	account, ok := d.Users[username]
	if !ok || account == nil {
		return nil, false
	}
	return account, true
}

// Clone returns a deep copy of the dataset.
func (d Dataset) Clone() Dataset {
	out := Dataset{Users: make(map[string]*Account, len(d.Users))}
	for name, account := range d.Users {
		if account == nil {
			continue
		}
		students := make([]Student, len(account.Students))
		for i, s := range account.Students {
			students[i] = s.Clone()
		}
		out.Users[name] = &Account{PasswordHash: account.PasswordHash, Students: students}
	}
	return out
}

// Account is a registered user's credential plus the students they own.
type Account struct {
	PasswordHash string    `json:"passwordHash"`
	Students     []Student `json:"students"`
}

// NewAccount creates an account with an empty student collection.
func NewAccount(passwordHash string) *Account {
	return &Account{PasswordHash: passwordHash, Students: []Student{}}
}

// FindStudent returns the index of the student with the given id or -1.
func (a *Account) FindStudent(id int64) int {
	return slices.IndexFunc(a.Students, func(s Student) bool { return s.ID == id })
}

// RemoveStudent drops the student with the given id and reports whether the
// collection shrank.
func (a *Account) RemoveStudent(id int64) bool {
	before := len(a.Students)
	a.Students = slices.DeleteFunc(a.Students, func(s Student) bool { return s.ID == id })
	return len(a.Students) != before
}

// NextStudentID picks an id derived from the clock reading nowMillis that
// never collides with an id already present in the account.
func (a *Account) NextStudentID(nowMillis int64) int64 {
	id := nowMillis
	for _, s := range a.Students {
		if s.ID >= id {
			id = s.ID + 1
		}
	}
	return id
}

// DatasetRepository runs serialized read and load-mutate-save cycles over
// the whole dataset.
type DatasetRepository interface {
	View(ctx context.Context, fn func(Dataset) error) error
	Update(ctx context.Context, fn func(*Dataset) error) error
}
