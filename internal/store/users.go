package store

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	usersKey   = "users"
	sessionKey = "session_user"
)

func (s *Store) ListUsers() ([]User, error) {
	var users []User
	if _, err := s.getJSON(usersKey, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// RegisterUser creates a user, rejecting duplicate email addresses.
func (s *Store) RegisterUser(fullName, email, role string) (*User, error) {
	users, err := s.ListUsers()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email {
			return nil, fmt.Errorf("register user: email %q already exists", email)
		}
	}
	u := User{
		ID:       uuid.NewString(),
		FullName: fullName,
		Email:    email,
		Role:     role,
	}
	if err := s.setJSON(usersKey, append(users, u)); err != nil {
		return nil, err
	}
	return &u, nil
}

// SaveSession records the signed-in user for the next launch.
func (s *Store) SaveSession(userID string) error {
	return s.Set(sessionKey, userID)
}

// LoadSession resolves the persisted session to a user, if any.
func (s *Store) LoadSession() (*User, error) {
	id, found, err := s.Get(sessionKey)
	if err != nil || !found {
		return nil, err
	}
	users, err := s.ListUsers()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *Store) ClearSession() error {
	return s.Delete(sessionKey)
}
